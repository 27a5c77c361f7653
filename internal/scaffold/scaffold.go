package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"

	"droidenv/internal/execx"
	"droidenv/internal/platform"
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(template.New("scaffold").ParseFS(templateFS, "templates/*/*.tmpl"))

// Fetcher downloads a URL to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// WrapperMode records how the Gradle wrapper was produced.
type WrapperMode string

const (
	WrapperGradle   WrapperMode = "gradle"
	WrapperFallback WrapperMode = "fallback"
	WrapperNone     WrapperMode = "none"
)

// JavaProject describes a Gradle based Android starter app.
type JavaProject struct {
	Name          string
	Package       string
	CompileSDK    int
	MinSDK        int
	PluginVersion string
	GradleVersion string
}

// KivyProject describes a buildozer based starter app.
type KivyProject struct {
	Name   string
	API    int
	MinAPI int
	NDK    string
}

// Result lists what a scaffold call produced. Files are slash separated and
// relative to Dir.
type Result struct {
	Kind    string      `json:"kind"`
	Name    string      `json:"name"`
	Dir     string      `json:"dir"`
	Files   []string    `json:"files"`
	Wrapper WrapperMode `json:"wrapper,omitempty"`
	Notes   []string    `json:"notes,omitempty"`
}

// Scaffolder writes starter projects under Root. Existing files are
// overwritten with the same contents on every call.
type Scaffolder struct {
	Root      string
	Profile   platform.Profile
	GradleExe string
	Runner    execx.Runner
	Fetcher   Fetcher
	Env       []string
	Stdout    io.Writer
	Logger    logrus.FieldLogger
}

type fileSpec struct {
	template string
	target   string
	mode     os.FileMode
}

var javaPackagePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)+$`)

// Java writes the Android project and sets up its Gradle wrapper. Wrapper
// problems are recorded as notes rather than returned.
func (s *Scaffolder) Java(ctx context.Context, p JavaProject) (Result, error) {
	if err := checkName(p.Name); err != nil {
		return Result{}, err
	}
	if !javaPackagePattern.MatchString(p.Package) {
		return Result{}, fmt.Errorf("invalid java package %q", p.Package)
	}

	dir := filepath.Join(s.Root, p.Name)
	srcDir := path.Join("app/src/main/java", strings.ReplaceAll(p.Package, ".", "/"))
	specs := []fileSpec{
		{"build.gradle.tmpl", "build.gradle", 0o644},
		{"settings.gradle.tmpl", "settings.gradle", 0o644},
		{"app_build.gradle.tmpl", "app/build.gradle", 0o644},
		{"AndroidManifest.xml.tmpl", "app/src/main/AndroidManifest.xml", 0o644},
		{"MainActivity.java.tmpl", path.Join(srcDir, "MainActivity.java"), 0o644},
		{"activity_main.xml.tmpl", "app/src/main/res/layout/activity_main.xml", 0o644},
		{"strings.xml.tmpl", "app/src/main/res/values/strings.xml", 0o644},
	}

	files, err := s.render(dir, specs, p)
	if err != nil {
		return Result{}, err
	}
	result := Result{Kind: "java", Name: p.Name, Dir: dir, Files: files}

	mode, wrapperFiles, notes := s.wrapper(ctx, dir, p.GradleVersion)
	result.Wrapper = mode
	result.Files = append(result.Files, wrapperFiles...)
	result.Notes = notes
	return result, nil
}

// Kivy writes the Python starter app and its buildozer spec.
func (s *Scaffolder) Kivy(p KivyProject) (Result, error) {
	if err := checkName(p.Name); err != nil {
		return Result{}, err
	}
	dir := filepath.Join(s.Root, p.Name)
	data := struct {
		KivyProject
		PackageName string
	}{p, packageName(p.Name)}

	files, err := s.render(dir, []fileSpec{
		{"main.py.tmpl", "main.py", 0o644},
		{"buildozer.spec.tmpl", "buildozer.spec", 0o644},
	}, data)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: "kivy", Name: p.Name, Dir: dir, Files: files}, nil
}

func (s *Scaffolder) render(dir string, specs []fileSpec, data any) ([]string, error) {
	files := make([]string, 0, len(specs))
	for _, spec := range specs {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, spec.template, data); err != nil {
			return nil, fmt.Errorf("render %s: %w", spec.target, err)
		}
		if err := writeFile(filepath.Join(dir, filepath.FromSlash(spec.target)), buf.Bytes(), spec.mode); err != nil {
			return nil, err
		}
		files = append(files, spec.target)
	}
	return files, nil
}

func (s *Scaffolder) logger() logrus.FieldLogger {
	if s.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return s.Logger
}

func writeFile(target string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	// WriteFile leaves the mode of an existing file alone.
	if err := os.Chmod(target, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", target, err)
	}
	return nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid project name %q", name)
	}
	return nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

func packageName(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "")
}
