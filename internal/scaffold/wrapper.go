package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"droidenv/internal/execx"
)

const wrapperSourceBase = "https://raw.githubusercontent.com/gradle/gradle/v%s/gradle/wrapper/%s"

// wrapperURL points at a wrapper file in the Gradle source tree for a
// release. Tags carry a patch component, so 8.4 maps to v8.4.0.
func wrapperURL(gradleVersion, file string) string {
	tag := strings.TrimSpace(gradleVersion)
	if strings.Count(tag, ".") == 1 {
		tag += ".0"
	}
	return fmt.Sprintf(wrapperSourceBase, tag, file)
}

// wrapper runs `gradle wrapper` in dir when the workspace Gradle is
// available; otherwise it downloads the wrapper files directly.
func (s *Scaffolder) wrapper(ctx context.Context, dir, gradleVersion string) (WrapperMode, []string, []string) {
	log := s.logger().WithField("project", filepath.Base(dir))

	if s.GradleExe != "" {
		if info, err := os.Stat(s.GradleExe); err == nil && !info.IsDir() {
			runner := s.Runner
			if runner == nil {
				runner = execx.CmdRunner{}
			}
			name, args := s.Profile.Command(s.GradleExe, "wrapper")
			_, err := runner.Run(ctx, name, args, execx.RunOptions{
				Dir:    dir,
				Env:    s.Env,
				Stdout: s.Stdout,
				Stderr: s.Stdout,
			})
			if err != nil {
				log.WithError(err).Warn("gradle wrapper failed; continuing without wrapper")
				return WrapperNone, nil, []string{fmt.Sprintf("gradle wrapper failed: %v", err)}
			}
			return WrapperGradle, nil, nil
		}
	}

	files, err := s.fallbackWrapper(ctx, dir, gradleVersion)
	if err != nil {
		log.WithError(err).Warn("manual wrapper setup failed")
		return WrapperNone, files, []string{fmt.Sprintf("manual wrapper setup failed: %v", err)}
	}
	log.Info("gradle not available; wrapper files downloaded directly")
	return WrapperFallback, files, []string{"gradle not available; wrapper files downloaded directly"}
}

func (s *Scaffolder) fallbackWrapper(ctx context.Context, dir, gradleVersion string) ([]string, error) {
	if s.Fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured")
	}
	if strings.TrimSpace(gradleVersion) == "" {
		return nil, fmt.Errorf("gradle version required")
	}

	var files []string
	for _, name := range []string{"gradle-wrapper.jar", "gradle-wrapper.properties"} {
		rel := "gradle/wrapper/" + name
		if err := s.Fetcher.Fetch(ctx, wrapperURL(gradleVersion, name), filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			return files, fmt.Errorf("download %s: %w", name, err)
		}
		files = append(files, rel)
	}

	scriptMode := os.FileMode(0o755)
	if s.Profile.Windows() {
		scriptMode = 0o644
	}
	scripts := []fileSpec{
		{"gradlew.tmpl", "gradlew", scriptMode},
		{"gradlew.bat.tmpl", "gradlew.bat", 0o644},
	}
	for _, spec := range scripts {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, spec.template, nil); err != nil {
			return files, fmt.Errorf("render %s: %w", spec.target, err)
		}
		if err := writeFile(filepath.Join(dir, spec.target), buf.Bytes(), spec.mode); err != nil {
			return files, err
		}
		files = append(files, spec.target)
	}
	return files, nil
}
