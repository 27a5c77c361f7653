package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"droidenv/internal/execx"
	"droidenv/internal/platform"
)

type fakeRunner struct {
	stdout string
	stderr string
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, command string, args []string, _ execx.RunOptions) (execx.RunResult, error) {
	f.calls = append(f.calls, append([]string{command}, args...))
	return execx.RunResult{Stdout: []byte(f.stdout), Stderr: []byte(f.stderr)}, f.err
}

func notFound(string) (string, error) { return "", errors.New("not found") }

func TestParseJavaVersion(t *testing.T) {
	cases := []struct {
		output string
		want   string
	}{
		{`openjdk version "17.0.2" 2022-01-18`, "17.0.2"},
		{`java version "1.8.0_301"`, "8.0.301"},
		{`openjdk version "21.0.1+12-LTS" 2023-10-17`, "21.0.1"},
		{`openjdk version "17-ea"`, "17"},
		{"openjdk 11.0.20 2023-07-18", "11.0.20"},
		{"no version here", ""},
	}
	for _, tc := range cases {
		if got := parseJavaVersion(tc.output); got != tc.want {
			t.Errorf("parseJavaVersion(%q) = %q, want %q", tc.output, got, tc.want)
		}
	}
}

func TestParseGradleAndSDKManagerVersions(t *testing.T) {
	gradle := "\n------------------------------------------------------------\nGradle 8.4\n------------------------------------------------------------\n"
	if got := parseGradleVersion(gradle); got != "8.4" {
		t.Fatalf("gradle version = %q", got)
	}
	sdk := "Warning: Could not create settings\n9.0\n"
	if got := parseSDKManagerVersion(sdk); got != "9.0" {
		t.Fatalf("sdkmanager version = %q", got)
	}
}

func TestMeetsMinimum(t *testing.T) {
	cases := []struct {
		version, minimum string
		want             bool
	}{
		{"17.0.2", "17", true},
		{"8.0.301", "17", false},
		{"21", "17", true},
		{"", "17", false},
		{"anything", "", true},
	}
	for _, tc := range cases {
		got, err := meetsMinimum(tc.version, tc.minimum)
		if err != nil {
			t.Fatalf("meetsMinimum(%q, %q): %v", tc.version, tc.minimum, err)
		}
		if got != tc.want {
			t.Errorf("meetsMinimum(%q, %q) = %v, want %v", tc.version, tc.minimum, got, tc.want)
		}
	}
}

func TestResolveMinimumVersion(t *testing.T) {
	def, _ := Definition("java")
	if min, notes := resolveMinimumVersion(def, map[string]string{"JAVA": "21"}); min != "21" || len(notes) != 1 {
		t.Fatalf("override = %q %v", min, notes)
	}
	if min, notes := resolveMinimumVersion(def, map[string]string{"java": "11"}); min != "17" || !strings.Contains(notes[0], "ignored") {
		t.Fatalf("lower override = %q %v", min, notes)
	}
}

func TestDetectPrefersWorkspaceJava(t *testing.T) {
	profile := platform.Resolve("linux")
	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	javaPath := filepath.Join(binDir, "java")
	if err := os.WriteFile(javaPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{stderr: `openjdk version "17.0.2" 2022-01-18`}
	d := &Detector{
		Profile:  profile,
		Runner:   runner,
		Dirs:     map[string][]string{"java": {binDir}},
		lookPath: notFound,
	}
	status, err := d.DetectOne(context.Background(), "java")
	if err != nil {
		t.Fatal(err)
	}
	if status.Source != SourceWorkspace || status.Path != javaPath {
		t.Fatalf("unexpected location %+v", status)
	}
	if !status.Satisfied || status.Version != "17.0.2" {
		t.Fatalf("unexpected status %+v", status)
	}
	if len(runner.calls) != 1 || runner.calls[0][0] != javaPath || runner.calls[0][1] != "-version" {
		t.Fatalf("unexpected invocation %v", runner.calls)
	}
}

func TestDetectScriptUsesShellOnWindows(t *testing.T) {
	runner := &fakeRunner{stdout: "Gradle 8.4\n"}
	d := &Detector{
		Profile: platform.Resolve("windows"),
		Runner:  runner,
		lookPath: func(file string) (string, error) {
			return `C:\gradle\bin\` + file, nil
		},
	}
	status, err := d.DetectOne(context.Background(), "gradle")
	if err != nil {
		t.Fatal(err)
	}
	if status.Source != SourceSystem || !status.Satisfied || status.Version != "8.4" {
		t.Fatalf("unexpected status %+v", status)
	}
	want := []string{"cmd", "/C", `C:\gradle\bin\gradle.bat`, "--version"}
	if strings.Join(runner.calls[0], " ") != strings.Join(want, " ") {
		t.Fatalf("invocation = %v, want %v", runner.calls[0], want)
	}
}

func TestDetectReportsMissingAndOldTools(t *testing.T) {
	d := &Detector{Profile: platform.Resolve("darwin"), Runner: &fakeRunner{}, lookPath: notFound}
	statuses := d.Detect(context.Background())
	if len(statuses) != 3 || statuses[0].Tool != "gradle" || statuses[1].Tool != "java" {
		t.Fatalf("unexpected statuses %+v", statuses)
	}
	for _, s := range statuses {
		if s.Satisfied || !strings.Contains(s.Error, "not found") || len(s.Notes) == 0 {
			t.Fatalf("expected missing status with hints, got %+v", s)
		}
	}

	old := &Detector{
		Profile:  platform.Resolve("linux"),
		Runner:   &fakeRunner{stderr: `java version "1.8.0_301"`},
		lookPath: func(string) (string, error) { return "/usr/bin/java", nil },
	}
	status, _ := old.DetectOne(context.Background(), "java")
	if status.Satisfied || !strings.Contains(status.Error, "below minimum 17") {
		t.Fatalf("expected version failure, got %+v", status)
	}
}

func TestDetectOneUnknownTool(t *testing.T) {
	if _, err := (&Detector{}).DetectOne(context.Background(), "ffmpeg"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}
