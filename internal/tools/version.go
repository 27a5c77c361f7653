package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"droidenv/internal/execx"
)

func (d *Detector) readVersion(ctx context.Context, def ToolDefinition, path string) (string, error) {
	name, args := path, append([]string(nil), def.Binary.VersionArgs...)
	if def.Binary.Script {
		name, args = d.Profile.Command(path, def.Binary.VersionArgs...)
	}

	// java -version writes to stderr, so both streams are inspected.
	result, err := d.runner().Run(ctx, name, args, execx.RunOptions{Env: d.Env})
	if err != nil {
		return "", fmt.Errorf("%s version: %w", def.Name, err)
	}
	output := strings.TrimSpace(string(result.Stdout) + "\n" + string(result.Stderr))
	version := def.parse(output)
	if version == "" {
		return "", fmt.Errorf("%s version: unrecognised output %q", def.Name, firstLine(output))
	}
	return version, nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

var (
	javaQuotedVersion  = regexp.MustCompile(`version "([^"]+)"`)
	numericVersion     = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)*`)
	gradleVersionLine  = regexp.MustCompile(`(?m)^Gradle ([0-9][0-9A-Za-z.\-]*)`)
	sdkmanagerLineOnly = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)*$`)
)

// parseJavaVersion normalises `java -version` output. Legacy "1.x" version
// strings map to x, so 1.8.0_301 becomes 8.0.301.
func parseJavaVersion(output string) string {
	raw := ""
	if m := javaQuotedVersion.FindStringSubmatch(output); m != nil {
		raw = m[1]
	} else {
		raw = numericVersion.FindString(firstLine(output))
	}
	parts := numericParts(raw)
	if len(parts) == 0 {
		return ""
	}
	if parts[0] == 1 && len(parts) > 1 {
		parts = parts[1:]
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strconv.Itoa(p)
	}
	return strings.Join(out, ".")
}

func parseGradleVersion(output string) string {
	if m := gradleVersionLine.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return ""
}

// parseSDKManagerVersion picks the bare version line; sdkmanager may print
// warnings before it.
func parseSDKManagerVersion(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if sdkmanagerLineOnly.MatchString(line) {
			return line
		}
	}
	return ""
}

func meetsMinimum(version, minimum string) (bool, error) {
	if strings.TrimSpace(minimum) == "" {
		return true, nil
	}
	if version == "" {
		return false, nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("parse version %q: %w", version, err)
	}
	m, err := semver.NewVersion(minimum)
	if err != nil {
		return false, fmt.Errorf("parse minimum %q: %w", minimum, err)
	}
	return !v.LessThan(m), nil
}

func numericParts(version string) []int {
	var parts []int
	current := strings.Builder{}
	for _, r := range version {
		if r >= '0' && r <= '9' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			val, _ := strconv.Atoi(current.String())
			parts = append(parts, val)
			current.Reset()
		}
	}
	if current.Len() > 0 {
		val, _ := strconv.Atoi(current.String())
		parts = append(parts, val)
	}
	return parts
}
