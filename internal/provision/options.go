package provision

import (
	"strings"

	"droidenv/internal/config"
	"droidenv/internal/license"
	"droidenv/internal/paths"
	"droidenv/internal/platform"
	"droidenv/internal/scaffold"
)

// Options is the fully resolved input of a run.
type Options struct {
	Workspace paths.Workspace
	Profile   platform.Profile

	GradleVersion string
	GradleURL     string

	JDKURL      string
	JDKHomeDir  string
	JavaMinimum string

	CmdlineToolsURL string
	// Components is the ordered toolchain requirement.
	Components []string
	Licenses   []license.Record

	Python   PythonOptions
	Projects ProjectOptions
}

// PythonOptions controls the pip stage.
type PythonOptions struct {
	Enabled    bool
	Executable string
	Packages   []string
}

// ProjectOptions controls the scaffolding stage.
type ProjectOptions struct {
	Enabled bool
	Java    scaffold.JavaProject
	Kivy    scaffold.KivyProject
}

// FromConfig resolves an effective configuration against a workspace and
// platform. Empty URLs fall back to the platform defaults.
func FromConfig(ws paths.Workspace, profile platform.Profile, cfg config.Config) Options {
	cfg.ApplyDefaults()

	components := make([]string, 0, len(cfg.SDK.Components))
	for _, id := range cfg.SDK.Components {
		if id = strings.TrimSpace(id); id != "" {
			components = append(components, id)
		}
	}

	python := cfg.Python.Executable
	if strings.TrimSpace(python) == "" {
		python = "python3"
		if profile.Windows() {
			python = "python"
		}
	}

	opts := Options{
		Workspace:       ws,
		Profile:         profile,
		GradleVersion:   strings.TrimSpace(cfg.BuildSystem.Version),
		GradleURL:       cfg.BuildSystem.URL,
		JDKURL:          firstNonEmpty(cfg.JDK.URL, profile.JDKURL),
		JDKHomeDir:      cfg.JDK.HomeDir,
		JavaMinimum:     cfg.JDK.Minimum,
		CmdlineToolsURL: firstNonEmpty(cfg.SDK.CmdlineToolsURL, profile.CmdlineToolsURL),
		Components:      components,
		Licenses:        license.Merge(license.DefaultTable(profile), cfg.SDK.Licenses),
		Python: PythonOptions{
			Enabled:    cfg.Python.EnabledValue(),
			Executable: python,
			Packages:   append([]string(nil), cfg.Python.Packages...),
		},
		Projects: ProjectOptions{
			Enabled: true,
			Java: scaffold.JavaProject{
				Name:          cfg.Projects.Java.Name,
				Package:       cfg.Projects.Java.Package,
				CompileSDK:    cfg.Projects.Java.CompileSDK,
				MinSDK:        cfg.Projects.Java.MinSDK,
				PluginVersion: cfg.Projects.Java.PluginVersion,
				GradleVersion: strings.TrimSpace(cfg.BuildSystem.Version),
			},
			Kivy: scaffold.KivyProject{
				Name:   cfg.Projects.Kivy.Name,
				API:    cfg.Projects.Java.CompileSDK,
				MinAPI: cfg.Projects.Java.MinSDK,
				NDK:    componentVersion(components, "ndk"),
			},
		},
	}
	return opts
}

// componentVersion returns the version part of the first "<name>;<version>"
// id in components.
func componentVersion(components []string, name string) string {
	prefix := name + ";"
	for _, id := range components {
		if strings.HasPrefix(id, prefix) {
			return strings.TrimPrefix(id, prefix)
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
