package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissing marks a verification failure.
var ErrMissing = errors.New("installation incomplete")

// MissingError lists every expected path that was absent, in manifest order.
type MissingError struct {
	Root  string
	Paths []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %d missing under %s: %s", ErrMissing, len(e.Paths), e.Root, strings.Join(e.Paths, ", "))
}

func (e *MissingError) Unwrap() error { return ErrMissing }

// Manifest turns component ids into relative directory paths. The id
// separator ';' becomes a path separator.
func Manifest(components []string) []string {
	out := make([]string, 0, len(components))
	for _, id := range components {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		out = append(out, filepath.FromSlash(strings.ReplaceAll(id, ";", "/")))
	}
	return out
}

// Check confirms every manifest path exists as a directory under root. It
// checks existence only, not contents.
func Check(root string, manifest []string) error {
	var missing []string
	for _, rel := range manifest {
		info, err := os.Stat(filepath.Join(root, rel))
		if err != nil || !info.IsDir() {
			missing = append(missing, rel)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Root: root, Paths: missing}
	}
	return nil
}

// Missing extracts the missing path list from err, if it carries one.
func Missing(err error) []string {
	var me *MissingError
	if errors.As(err, &me) {
		return me.Paths
	}
	return nil
}
