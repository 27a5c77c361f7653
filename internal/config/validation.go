package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

var javaPackagePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)+$`)

// Validate runs all checks against an effective configuration.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateVersions()...)
	results = append(results, c.validateURLs()...)
	results = append(results, c.validateComponents()...)
	results = append(results, c.validateLicenses()...)
	results = append(results, c.validatePython()...)
	results = append(results, c.validateProjects()...)
	return results
}

// Errors filters results down to error-level findings.
func Errors(results []ValidationResult) []ValidationResult {
	var out []ValidationResult
	for _, r := range results {
		if r.Level == "error" {
			out = append(out, r)
		}
	}
	return out
}

func (c Config) validateVersions() []ValidationResult {
	var results []ValidationResult
	if _, err := semver.NewVersion(c.JDK.Minimum); err != nil {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("jdk.minimum %q is not a version", c.JDK.Minimum),
		})
	}
	if _, err := semver.NewVersion(c.BuildSystem.Version); err != nil {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("build_system.version %q is not a semantic version", c.BuildSystem.Version),
		})
	}
	if strings.ContainsAny(c.JDK.HomeDir, `/\`) {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("jdk.home_dir %q must be a single directory name", c.JDK.HomeDir),
		})
	}
	return results
}

func (c Config) validateURLs() []ValidationResult {
	var results []ValidationResult
	check := func(key, raw string) {
		if strings.TrimSpace(raw) == "" {
			return
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("%s %q is not an http(s) URL", key, raw),
			})
		}
	}
	check("jdk.url", c.JDK.URL)
	check("build_system.url", c.BuildSystem.URL)
	check("sdk.cmdline_tools_url", c.SDK.CmdlineToolsURL)
	return results
}

func (c Config) validateComponents() []ValidationResult {
	var results []ValidationResult
	if len(c.SDK.Components) == 0 {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: "sdk.components is empty; only the command-line tools will be installed",
		})
	}
	seen := make(map[string]bool, len(c.SDK.Components))
	for _, id := range c.SDK.Components {
		trimmed := strings.TrimSpace(id)
		switch {
		case trimmed == "":
			results = append(results, ValidationResult{Level: "error", Message: "sdk.components contains an empty id"})
		case strings.ContainsAny(trimmed, " \t"):
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("component %q contains whitespace", id),
			})
		case strings.Contains(trimmed, ".."):
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("component %q escapes the installation root", id),
			})
		case seen[trimmed]:
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("component %q is listed more than once", id),
			})
		}
		seen[trimmed] = true
	}
	return results
}

func (c Config) validateLicenses() []ValidationResult {
	var results []ValidationResult
	for _, rec := range c.SDK.Licenses {
		name := strings.TrimSpace(rec.Name)
		if name == "" || strings.ContainsAny(name, `/\`) {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("license name %q is invalid", rec.Name),
			})
			continue
		}
		if len(rec.Tokens) == 0 {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("license %q has no tokens", name),
			})
		}
	}
	return results
}

func (c Config) validatePython() []ValidationResult {
	if !c.Python.EnabledValue() || len(c.Python.Packages) > 0 {
		return nil
	}
	return []ValidationResult{{
		Level:   "warning",
		Message: "python stage is enabled but python.packages is empty",
	}}
}

func (c Config) validateProjects() []ValidationResult {
	var results []ValidationResult
	if !javaPackagePattern.MatchString(c.Projects.Java.Package) {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("projects.java.package %q is not a dotted Java package", c.Projects.Java.Package),
		})
	}
	names := map[string]string{
		"projects.java.name": c.Projects.Java.Name,
		"projects.kivy.name": c.Projects.Kivy.Name,
	}
	for _, key := range []string{"projects.java.name", "projects.kivy.name"} {
		if strings.ContainsAny(names[key], `/\`) || strings.TrimSpace(names[key]) == "" {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("%s %q must be a single directory name", key, names[key]),
			})
		}
	}
	if c.Projects.Java.MinSDK > c.Projects.Java.CompileSDK {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("projects.java.min_sdk %d exceeds compile_sdk %d", c.Projects.Java.MinSDK, c.Projects.Java.CompileSDK),
		})
	}
	return results
}
