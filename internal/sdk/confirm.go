package sdk

import (
	"io"
	"strings"

	"droidenv/internal/platform"
)

const affirmative = "y\n"

// yesReader yields "y\n" forever.
type yesReader struct {
	off int
}

func (r *yesReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = affirmative[r.off]
		r.off = (r.off + 1) % len(affirmative)
	}
	return len(p), nil
}

// AutoConfirm returns the stdin stream that answers tool prompts for the
// given shell style.
func AutoConfirm(shell platform.Shell) io.Reader {
	if shell == platform.ShellCmd {
		return strings.NewReader(affirmative)
	}
	return &yesReader{}
}
