package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"droidenv/internal/execx"
	"droidenv/internal/platform"
)

// Detector locates toolchain executables, preferring workspace installs over
// the system PATH.
type Detector struct {
	Profile platform.Profile
	Runner  execx.Runner
	Env     []string
	// Dirs lists directories searched before PATH, keyed by tool name.
	Dirs     map[string][]string
	Minimums map[string]string

	lookPath func(string) (string, error)
}

// Detect returns the status of each known tool, sorted by name.
func (d *Detector) Detect(ctx context.Context) []Status {
	statuses := make([]Status, 0, len(toolDefinitions))
	for _, name := range KnownTools() {
		def, _ := Definition(name)
		statuses = append(statuses, d.detectOne(ctx, def))
	}
	return statuses
}

// DetectOne returns the status of a single tool.
func (d *Detector) DetectOne(ctx context.Context, name string) (Status, error) {
	def, ok := Definition(name)
	if !ok {
		return Status{}, fmt.Errorf("unknown tool: %s", name)
	}
	return d.detectOne(ctx, def), nil
}

func (d *Detector) detectOne(ctx context.Context, def ToolDefinition) Status {
	minimum, notes := resolveMinimumVersion(def, d.Minimums)
	status := Status{Tool: def.Name, Minimum: minimum, Notes: notes}

	path, source, err := d.locate(def)
	if err != nil {
		status.Error = err.Error()
		status.Notes = append(status.Notes, InstallHints(def.Name, d.Profile)...)
		return status
	}
	status.Path = path
	status.Source = source

	version, err := d.readVersion(ctx, def, path)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Version = version

	ok, err := meetsMinimum(version, minimum)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Satisfied = ok
	if !ok {
		status.Error = fmt.Sprintf("version %s below minimum %s", version, minimum)
	}
	return status
}

func (d *Detector) locate(def ToolDefinition) (string, Source, error) {
	file := d.Profile.Executable(def.Binary.Base)
	if def.Binary.Script {
		file = d.Profile.Script(def.Binary.Base)
	}

	for _, dir := range d.Dirs[def.Name] {
		candidate := filepath.Join(dir, file)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, SourceWorkspace, nil
		}
	}

	lookPath := d.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(file)
	if err != nil {
		return "", SourceUnknown, fmt.Errorf("%s not found in PATH", file)
	}
	return path, SourceSystem, nil
}

func (d *Detector) runner() execx.Runner {
	if d.Runner == nil {
		return execx.CmdRunner{}
	}
	return d.Runner
}
