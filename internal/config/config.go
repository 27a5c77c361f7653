package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"droidenv/internal/license"
)

// Config captures the toolchain shape provisioned into a workspace.
type Config struct {
	Version     int               `yaml:"version"`
	JDK         JDKConfig         `yaml:"jdk"`
	BuildSystem BuildSystemConfig `yaml:"build_system"`
	SDK         SDKConfig         `yaml:"sdk"`
	Python      PythonConfig      `yaml:"python"`
	Projects    ProjectsConfig    `yaml:"projects"`
}

// JDKConfig describes the Java requirement. An empty URL means the platform
// default, which is only set for windows.
type JDKConfig struct {
	Minimum string `yaml:"minimum"`
	URL     string `yaml:"url"`
	HomeDir string `yaml:"home_dir"`
}

// BuildSystemConfig selects the Gradle distribution.
type BuildSystemConfig struct {
	Version string `yaml:"version"`
	URL     string `yaml:"url"`
}

// SDKConfig lists the command-line tools archive and the ordered component
// set. Licenses are merged over the platform's built-in table.
type SDKConfig struct {
	CmdlineToolsURL string           `yaml:"cmdline_tools_url"`
	Components      []string         `yaml:"components"`
	Licenses        []license.Record `yaml:"licenses"`
}

// PythonConfig controls the optional pip stage.
type PythonConfig struct {
	Enabled    *bool    `yaml:"enabled,omitempty"`
	Executable string   `yaml:"executable"`
	Packages   []string `yaml:"packages"`
}

// EnabledValue returns the effective enabled flag applying defaults.
func (p PythonConfig) EnabledValue() bool {
	if p.Enabled == nil {
		return true
	}
	return *p.Enabled
}

// ProjectsConfig names the starter projects.
type ProjectsConfig struct {
	Java JavaProject `yaml:"java"`
	Kivy KivyProject `yaml:"kivy"`
}

// JavaProject describes the Gradle-based starter app.
type JavaProject struct {
	Name          string `yaml:"name"`
	Package       string `yaml:"package"`
	CompileSDK    int    `yaml:"compile_sdk"`
	MinSDK        int    `yaml:"min_sdk"`
	PluginVersion string `yaml:"plugin_version"`
}

// KivyProject describes the buildozer-based starter app.
type KivyProject struct {
	Name string `yaml:"name"`
}

const gradleDistributionURL = "https://services.gradle.org/distributions/gradle-%s-bin.zip"

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		JDK: JDKConfig{
			Minimum: "17",
			HomeDir: "jdk-17.0.2",
		},
		BuildSystem: BuildSystemConfig{
			Version: "8.4",
		},
		SDK: SDKConfig{
			Components: []string{
				"platform-tools",
				"platforms;android-31",
				"build-tools;31.0.0",
				"ndk;25.2.9519653",
			},
			Licenses: []license.Record{},
		},
		Python: PythonConfig{
			Enabled:  boolPtr(true),
			Packages: []string{"buildozer", "kivy", "cython"},
		},
		Projects: ProjectsConfig{
			Java: JavaProject{
				Name:          "MyJavaApp",
				Package:       "com.example.myjavaapp",
				CompileSDK:    31,
				MinSDK:        21,
				PluginVersion: "7.0.4",
			},
			Kivy: KivyProject{
				Name: "MyKivyApp",
			},
		},
	}
}

// ApplyDefaults ensures nested fields fall back to sensible defaults when the
// YAML omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if strings.TrimSpace(c.JDK.Minimum) == "" {
		c.JDK.Minimum = defaults.JDK.Minimum
	}
	if strings.TrimSpace(c.JDK.HomeDir) == "" {
		c.JDK.HomeDir = defaults.JDK.HomeDir
	}
	if strings.TrimSpace(c.BuildSystem.Version) == "" {
		c.BuildSystem.Version = defaults.BuildSystem.Version
	}
	if strings.TrimSpace(c.BuildSystem.URL) == "" {
		c.BuildSystem.URL = fmt.Sprintf(gradleDistributionURL, strings.TrimSpace(c.BuildSystem.Version))
	}
	if c.SDK.Components == nil {
		c.SDK.Components = defaults.SDK.Components
	}
	if c.Python.Enabled == nil {
		c.Python.Enabled = boolPtr(true)
	}
	if c.Python.Packages == nil {
		c.Python.Packages = defaults.Python.Packages
	}
	if c.Projects.Java.Name == "" {
		c.Projects.Java.Name = defaults.Projects.Java.Name
	}
	if c.Projects.Java.Package == "" {
		c.Projects.Java.Package = defaults.Projects.Java.Package
	}
	if c.Projects.Java.CompileSDK == 0 {
		c.Projects.Java.CompileSDK = defaults.Projects.Java.CompileSDK
	}
	if c.Projects.Java.MinSDK == 0 {
		c.Projects.Java.MinSDK = defaults.Projects.Java.MinSDK
	}
	if c.Projects.Java.PluginVersion == "" {
		c.Projects.Java.PluginVersion = defaults.Projects.Java.PluginVersion
	}
	if c.Projects.Kivy.Name == "" {
		c.Projects.Kivy.Name = defaults.Projects.Kivy.Name
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
