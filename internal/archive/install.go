package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrCorrupt marks archives whose contents could not be extracted or did not
// contain the expected payload.
var ErrCorrupt = errors.New("corrupt archive")

// Options tunes how the payload is located inside the staged output.
type Options struct {
	// Format overrides detection from the archive file name.
	Format Format
	// Payload names the top-level directory to relocate. When empty the
	// staged output must contain exactly one top-level directory.
	Payload string
}

// Install extracts archivePath into stagingDir, then moves the payload subtree
// to dest, replacing any previous contents. The staging directory and the
// archive are removed before returning, on success or failure. A failed
// extraction leaves dest untouched.
func Install(archivePath, stagingDir, dest string, opts Options) (retErr error) {
	defer func() {
		if err := os.RemoveAll(stagingDir); err != nil && retErr == nil {
			retErr = fmt.Errorf("remove staging dir: %w", err)
		}
		if err := os.Remove(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) && retErr == nil {
			retErr = fmt.Errorf("remove archive: %w", err)
		}
	}()

	format := opts.Format
	if format == "" {
		var err error
		format, err = FormatFromName(archivePath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	if err := os.RemoveAll(stagingDir); err != nil {
		return fmt.Errorf("clear staging dir: %w", err)
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	if err := extract(format, archivePath, stagingDir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(archivePath), err)
	}

	payload, err := locatePayload(stagingDir, opts.Payload)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(archivePath), err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("prepare destination parent: %w", err)
	}
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("replace %s: %w", dest, err)
	}
	if err := os.Rename(payload, dest); err != nil {
		return fmt.Errorf("relocate payload to %s: %w", dest, err)
	}
	return nil
}

func locatePayload(stagingDir, name string) (string, error) {
	if name != "" {
		candidate := filepath.Join(stagingDir, filepath.FromSlash(name))
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("payload directory %q not found", name)
		}
		return candidate, nil
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		return "", fmt.Errorf("read staging dir: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if ignoredTopLevel(entry.Name()) {
			continue
		}
		if !entry.IsDir() {
			return "", fmt.Errorf("unexpected top-level file %q", entry.Name())
		}
		dirs = append(dirs, entry.Name())
	}
	switch len(dirs) {
	case 0:
		return "", errors.New("archive is empty")
	case 1:
		return filepath.Join(stagingDir, dirs[0]), nil
	default:
		return "", fmt.Errorf("expected one top-level directory, found %s", strings.Join(dirs, ", "))
	}
}

func ignoredTopLevel(name string) bool {
	return name == "__MACOSX" || name == ".DS_Store"
}
