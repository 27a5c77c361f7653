package provision

import (
	"path/filepath"
	"strings"

	"droidenv/internal/paths"
)

// Environment is the explicit set of variables handed to child processes.
// The orchestrator never modifies its own process environment.
type Environment struct {
	SDKRoot       string   `json:"sdk_root"`
	GradleHome    string   `json:"gradle_home,omitempty"`
	JavaHome      string   `json:"java_home,omitempty"`
	Path          []string `json:"path,omitempty"`
	ListSeparator string   `json:"-"`
}

// PrependPath puts dir ahead of the existing search path entries. Repeated
// directories are ignored.
func (e *Environment) PrependPath(dir string) {
	dir = filepath.Clean(dir)
	for _, existing := range e.Path {
		if existing == dir {
			return
		}
	}
	e.Path = append([]string{dir}, e.Path...)
}

// Vars renders the environment as KEY=value pairs. currentPath is the
// inherited search path the workspace directories are prepended to.
func (e Environment) Vars(currentPath string) []string {
	sep := e.ListSeparator
	if sep == "" {
		sep = string(filepath.ListSeparator)
	}

	vars := []string{
		"ANDROID_HOME=" + e.SDKRoot,
		"ANDROID_SDK_ROOT=" + e.SDKRoot,
	}
	if e.GradleHome != "" {
		vars = append(vars, "GRADLE_HOME="+e.GradleHome)
	}
	if e.JavaHome != "" {
		vars = append(vars, "JAVA_HOME="+e.JavaHome)
	}

	entries := append([]string(nil), e.Path...)
	if currentPath != "" {
		entries = append(entries, currentPath)
	}
	if len(entries) > 0 {
		vars = append(vars, "PATH="+strings.Join(entries, sep))
	}
	return vars
}

// Existing rebuilds the environment of a workspace provisioned earlier. Only
// directories present on disk contribute, in the same order a run adds them.
func Existing(opts Options) Environment {
	ws := opts.Workspace
	env := Environment{SDKRoot: ws.SDKRoot, ListSeparator: opts.Profile.PathListSeparator}

	if home := ws.GradleHome(opts.GradleVersion); dirExists(home) {
		env.GradleHome = home
		env.PrependPath(filepath.Join(home, "bin"))
	}
	if home := ws.JDKHome(opts.JDKHomeDir); dirExists(home) {
		env.JavaHome = home
		env.PrependPath(filepath.Join(home, "bin"))
	}
	if dirExists(ws.CmdlineToolsDir) {
		env.PrependPath(filepath.Join(ws.SDKRoot, "platform-tools"))
		env.PrependPath(filepath.Join(ws.CmdlineToolsDir, "bin"))
	}
	return env
}

func dirExists(path string) bool {
	ok, err := paths.DirExists(path)
	return err == nil && ok
}
