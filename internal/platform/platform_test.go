package platform

import (
	"strings"
	"testing"
)

func TestResolveKnownFamilies(t *testing.T) {
	tests := []struct {
		goos      string
		family    Family
		urlSlug   string
		script    string
		exe       string
		separator string
		shell     Shell
	}{
		{"windows", FamilyWindows, "-win-", "sdkmanager.bat", "java.exe", ";", ShellCmd},
		{"darwin", FamilyDarwin, "-mac-", "sdkmanager", "java", ":", ShellPOSIX},
		{"linux", FamilyLinux, "-linux-", "sdkmanager", "java", ":", ShellPOSIX},
		{"freebsd", FamilyOther, "-linux-", "sdkmanager", "java", ":", ShellPOSIX},
		{"", FamilyOther, "-linux-", "sdkmanager", "java", ":", ShellPOSIX},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p := Resolve(tt.goos)
			if p.Family != tt.family {
				t.Fatalf("family = %q, want %q", p.Family, tt.family)
			}
			if p.CmdlineToolsURL == "" {
				t.Fatal("expected non-empty command-line tools url")
			}
			if !strings.Contains(p.CmdlineToolsURL, tt.urlSlug) || !strings.HasSuffix(p.CmdlineToolsURL, ".zip") {
				t.Fatalf("url %q does not match family slug %q", p.CmdlineToolsURL, tt.urlSlug)
			}
			if got := p.Script("sdkmanager"); got != tt.script {
				t.Fatalf("Script = %q, want %q", got, tt.script)
			}
			if got := p.Executable("java"); got != tt.exe {
				t.Fatalf("Executable = %q, want %q", got, tt.exe)
			}
			if p.PathListSeparator != tt.separator {
				t.Fatalf("separator = %q, want %q", p.PathListSeparator, tt.separator)
			}
			if p.Shell != tt.shell {
				t.Fatalf("shell = %q, want %q", p.Shell, tt.shell)
			}
		})
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	if got := Resolve(" Windows ").Family; got != FamilyWindows {
		t.Fatalf("got %q, want windows", got)
	}
}

func TestOnlyWindowsShipsDefaultJDK(t *testing.T) {
	if Resolve("windows").JDKURL == "" {
		t.Fatal("expected windows profile to carry a JDK url")
	}
	for _, goos := range []string{"darwin", "linux", "plan9"} {
		if url := Resolve(goos).JDKURL; url != "" {
			t.Fatalf("%s: expected no default JDK url, got %q", goos, url)
		}
	}
}

func TestCommandShellStyles(t *testing.T) {
	name, args := Resolve("linux").Command("/sdk/bin/sdkmanager", "platform-tools")
	if name != "/sdk/bin/sdkmanager" || len(args) != 1 || args[0] != "platform-tools" {
		t.Fatalf("posix command = %s %v", name, args)
	}

	name, args = Resolve("windows").Command(`C:\sdk\bin\sdkmanager.bat`, "--licenses")
	if name != "cmd" {
		t.Fatalf("windows command name = %q, want cmd", name)
	}
	want := []string{"/C", `C:\sdk\bin\sdkmanager.bat`, "--licenses"}
	if strings.Join(args, "|") != strings.Join(want, "|") {
		t.Fatalf("windows args = %v, want %v", args, want)
	}
}
