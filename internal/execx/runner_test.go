package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestCmdRunnerPassesStdinAndEnv(t *testing.T) {
	sh := requireShell(t)

	var live bytes.Buffer
	res, err := CmdRunner{}.Run(context.Background(), sh, []string{"-c", `read answer; echo "$answer:$DROIDENV_TEST"`}, RunOptions{
		Env:    []string{"DROIDENV_TEST=on"},
		Stdin:  strings.NewReader("y\n"),
		Stdout: &live,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "y:on" {
		t.Fatalf("stdout = %q, want y:on", got)
	}
	if live.String() != string(res.Stdout) {
		t.Fatalf("live output %q differs from captured %q", live.String(), res.Stdout)
	}
}

func TestCmdRunnerReportsExitStatus(t *testing.T) {
	sh := requireShell(t)

	res, err := CmdRunner{}.Run(context.Background(), sh, []string{"-c", "echo boom >&2; exit 3"}, RunOptions{})
	if err == nil {
		t.Fatal("expected non-zero exit to surface as error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit code 3, got %v", err)
	}
	if strings.TrimSpace(string(res.Stderr)) != "boom" {
		t.Fatalf("stderr = %q", res.Stderr)
	}
}
