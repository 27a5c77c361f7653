package platform

import (
	"runtime"
	"strings"
)

// Family identifies the host OS family a profile was built for.
type Family string

const (
	FamilyWindows Family = "windows"
	FamilyDarwin  Family = "darwin"
	FamilyLinux   Family = "linux"
	FamilyOther   Family = "other"
)

// Shell describes how child processes are launched and confirmed.
type Shell string

const (
	// ShellPOSIX execs the target directly and feeds an endless "y" stream,
	// the equivalent of piping from yes(1).
	ShellPOSIX Shell = "posix"
	// ShellCmd routes through cmd.exe and feeds a single "y", the
	// equivalent of "echo y |".
	ShellCmd Shell = "cmd"
)

const (
	cmdlineToolsBase = "https://dl.google.com/android/repository/"
	cmdlineToolsRev  = "9477386"

	windowsJDKURL = "https://download.java.net/java/GA/jdk17.0.2/dfd4a8d0985749f896bed50d7138ee7f/8/GPL/openjdk-17.0.2_windows-x64_bin.zip"
)

// Profile captures the platform-specific conventions used while provisioning.
type Profile struct {
	Family            Family `json:"family"`
	CmdlineToolsURL   string `json:"cmdline_tools_url"`
	JDKURL            string `json:"jdk_url,omitempty"`
	ExecutableSuffix  string `json:"executable_suffix"`
	ScriptSuffix      string `json:"script_suffix"`
	PathListSeparator string `json:"path_list_separator"`
	Shell             Shell  `json:"shell"`
}

// Current resolves the profile for the running host.
func Current() Profile {
	return Resolve(runtime.GOOS)
}

// Resolve maps a GOOS value to its profile. Unknown values get the catch-all
// profile, which follows the linux conventions.
func Resolve(goos string) Profile {
	switch strings.ToLower(strings.TrimSpace(goos)) {
	case "windows":
		return Profile{
			Family:            FamilyWindows,
			CmdlineToolsURL:   cmdlineToolsURL("win"),
			JDKURL:            windowsJDKURL,
			ExecutableSuffix:  ".exe",
			ScriptSuffix:      ".bat",
			PathListSeparator: ";",
			Shell:             ShellCmd,
		}
	case "darwin":
		return posixProfile(FamilyDarwin, "mac")
	case "linux":
		return posixProfile(FamilyLinux, "linux")
	default:
		return posixProfile(FamilyOther, "linux")
	}
}

func posixProfile(family Family, slug string) Profile {
	return Profile{
		Family:            family,
		CmdlineToolsURL:   cmdlineToolsURL(slug),
		PathListSeparator: ":",
		Shell:             ShellPOSIX,
	}
}

func cmdlineToolsURL(slug string) string {
	return cmdlineToolsBase + "commandlinetools-" + slug + "-" + cmdlineToolsRev + "_latest.zip"
}

// Executable returns the file name of a native binary, e.g. java.exe.
func (p Profile) Executable(base string) string {
	return base + p.ExecutableSuffix
}

// Script returns the file name of a launcher script, e.g. sdkmanager.bat.
func (p Profile) Script(base string) string {
	return base + p.ScriptSuffix
}

// Command returns the process name and argv used to launch exe with args.
func (p Profile) Command(exe string, args ...string) (string, []string) {
	if p.Shell == ShellCmd {
		return "cmd", append([]string{"/C", exe}, args...)
	}
	return exe, append([]string(nil), args...)
}

// Windows reports whether the profile follows windows conventions.
func (p Profile) Windows() bool {
	return p.Family == FamilyWindows
}
