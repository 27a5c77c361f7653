package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace captures canonical locations for a provisioned workspace.
type Workspace struct {
	Root            string
	ConfigFile      string
	SDKRoot         string
	CmdlineToolsDir string
	LicensesDir     string
	GradleRoot      string
	JDKRoot         string
	MetaDir         string
	DownloadsDir    string
	StagingDir      string
	LogsDir         string
	ProjectsDir     string
}

// Resolve determines the workspace root using the optional --workspace flag or
// the current working directory when the flag is empty.
func Resolve(workspaceFlag string) (Workspace, error) {
	var (
		root string
		err  error
	)

	if workspaceFlag != "" {
		root, err = filepath.Abs(workspaceFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return Workspace{}, fmt.Errorf("resolve workspace root: %w", err)
	}

	return New(root), nil
}

// New lays out a workspace under root without touching the filesystem.
func New(root string) Workspace {
	root = filepath.Clean(root)
	sdkRoot := filepath.Join(root, "android-sdk")
	metaDir := filepath.Join(root, ".droidenv")
	return Workspace{
		Root:            root,
		ConfigFile:      filepath.Join(root, "droidenv.yaml"),
		SDKRoot:         sdkRoot,
		CmdlineToolsDir: filepath.Join(sdkRoot, "cmdline-tools", "latest"),
		LicensesDir:     filepath.Join(sdkRoot, "licenses"),
		GradleRoot:      filepath.Join(root, "gradle"),
		JDKRoot:         filepath.Join(root, "jdk"),
		MetaDir:         metaDir,
		DownloadsDir:    filepath.Join(metaDir, "downloads"),
		StagingDir:      filepath.Join(metaDir, "staging"),
		LogsDir:         filepath.Join(metaDir, "logs"),
		ProjectsDir:     root,
	}
}

// GradleHome returns the install location for a Gradle version.
func (w Workspace) GradleHome(version string) string {
	return filepath.Join(w.GradleRoot, "gradle-"+strings.TrimSpace(version))
}

// JDKHome returns the install location for a workspace-local JDK.
func (w Workspace) JDKHome(dirName string) string {
	return filepath.Join(w.JDKRoot, dirName)
}

// Download returns the fixed download path for an archive name.
func (w Workspace) Download(name string) string {
	return filepath.Join(w.DownloadsDir, name)
}

// Staging returns the fixed staging directory for a stage name.
func (w Workspace) Staging(name string) string {
	return filepath.Join(w.StagingDir, name)
}

// Project returns the directory for a scaffolded project.
func (w Workspace) Project(name string) string {
	return filepath.Join(w.ProjectsDir, name)
}

// EnsureRoot makes sure the workspace root and the installation root exist
// on disk.
func (w Workspace) EnsureRoot() error {
	for _, dir := range []string{w.Root, w.SDKRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// EnsureMetaDirs creates the hidden .droidenv hierarchy.
func (w Workspace) EnsureMetaDirs() error {
	dirs := []string{w.MetaDir, w.DownloadsDir, w.StagingDir, w.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
