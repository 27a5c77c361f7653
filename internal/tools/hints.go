package tools

import "droidenv/internal/platform"

// InstallHints suggests how to obtain a missing tool on the given platform.
func InstallHints(tool string, p platform.Profile) []string {
	switch tool {
	case "java":
		switch p.Family {
		case platform.FamilyDarwin:
			return []string{"Install a JDK via Homebrew: brew install openjdk@17"}
		case platform.FamilyLinux:
			return []string{"Install a JDK with your distro package manager, e.g. sudo apt install openjdk-17-jdk"}
		case platform.FamilyWindows:
			return []string{"Re-run setup to download OpenJDK 17 into the workspace", "or install it via winget: winget install Microsoft.OpenJDK.17"}
		default:
			return []string{"Install JDK 17 or newer using your platform's package manager"}
		}
	case "gradle", "sdkmanager":
		return []string{"Run droidenv setup to install it into the workspace"}
	}
	return nil
}
