package sdk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"droidenv/internal/execx"
	"droidenv/internal/platform"
)

// Tool is the capability the orchestrator needs from the package tool.
type Tool interface {
	Install(ctx context.Context, component string) error
	AcceptLicenses(ctx context.Context) error
}

// Manager runs the sdkmanager executable.
type Manager struct {
	Path    string
	Profile platform.Profile
	Runner  execx.Runner
	Env     []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// ExecutablePath returns the sdkmanager location inside a command-line tools
// installation.
func ExecutablePath(cmdlineToolsDir string, p platform.Profile) string {
	return filepath.Join(cmdlineToolsDir, "bin", p.Script("sdkmanager"))
}

// Prepare makes sure the executable can be launched. Extraction does not
// always carry the execute bit across.
func (m *Manager) Prepare() error {
	info, err := os.Stat(m.Path)
	if err != nil {
		return fmt.Errorf("locate sdkmanager: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("sdkmanager path is a directory: %s", m.Path)
	}
	if m.Profile.Windows() {
		return nil
	}
	if err := os.Chmod(m.Path, 0o755); err != nil {
		return fmt.Errorf("chmod sdkmanager: %w", err)
	}
	return nil
}

// Install installs a single component id.
func (m *Manager) Install(ctx context.Context, component string) error {
	return m.run(ctx, component)
}

// AcceptLicenses answers the tool's own license prompt.
func (m *Manager) AcceptLicenses(ctx context.Context) error {
	return m.run(ctx, "--licenses")
}

func (m *Manager) run(ctx context.Context, arg string) error {
	runner := m.Runner
	if runner == nil {
		runner = execx.CmdRunner{}
	}
	name, args := m.Profile.Command(m.Path, arg)
	_, err := runner.Run(ctx, name, args, execx.RunOptions{
		Env:    m.Env,
		Stdin:  AutoConfirm(m.Profile.Shell),
		Stdout: m.Stdout,
		Stderr: m.Stderr,
	})
	if err != nil {
		return fmt.Errorf("sdkmanager %s: %w", arg, err)
	}
	return nil
}

var _ Tool = (*Manager)(nil)
