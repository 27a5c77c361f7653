package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLayout(t *testing.T) {
	root := t.TempDir()
	ws := New(root)

	cases := map[string]string{
		"config":        filepath.Join(root, "droidenv.yaml"),
		"sdk":           filepath.Join(root, "android-sdk"),
		"cmdline-tools": filepath.Join(root, "android-sdk", "cmdline-tools", "latest"),
		"licenses":      filepath.Join(root, "android-sdk", "licenses"),
		"downloads":     filepath.Join(root, ".droidenv", "downloads"),
		"staging":       filepath.Join(root, ".droidenv", "staging"),
		"logs":          filepath.Join(root, ".droidenv", "logs"),
	}
	got := map[string]string{
		"config":        ws.ConfigFile,
		"sdk":           ws.SDKRoot,
		"cmdline-tools": ws.CmdlineToolsDir,
		"licenses":      ws.LicensesDir,
		"downloads":     ws.DownloadsDir,
		"staging":       ws.StagingDir,
		"logs":          ws.LogsDir,
	}
	for name, want := range cases {
		if got[name] != want {
			t.Errorf("%s: expected %s, got %s", name, want, got[name])
		}
	}

	if home := ws.GradleHome(" 8.4 "); home != filepath.Join(root, "gradle", "gradle-8.4") {
		t.Fatalf("unexpected gradle home %s", home)
	}
	if home := ws.JDKHome("jdk-17.0.2"); home != filepath.Join(root, "jdk", "jdk-17.0.2") {
		t.Fatalf("unexpected jdk home %s", home)
	}
}

func TestResolveUsesFlag(t *testing.T) {
	root := t.TempDir()
	ws, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ws.Root != filepath.Clean(root) {
		t.Fatalf("expected root %s, got %s", root, ws.Root)
	}
}

func TestResolveDefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	ws, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ws.Root != wd {
		t.Fatalf("expected %s, got %s", wd, ws.Root)
	}
}

func TestEnsureDirs(t *testing.T) {
	ws := New(filepath.Join(t.TempDir(), "ws"))
	if err := ws.EnsureRoot(); err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	if err := ws.EnsureMetaDirs(); err != nil {
		t.Fatalf("EnsureMetaDirs: %v", err)
	}
	for _, dir := range []string{ws.Root, ws.SDKRoot, ws.DownloadsDir, ws.StagingDir, ws.LogsDir} {
		ok, err := DirExists(dir)
		if err != nil || !ok {
			t.Fatalf("expected %s to exist (err=%v)", dir, err)
		}
	}
	ok, err := FileExists(ws.Root)
	if err != nil || ok {
		t.Fatalf("FileExists on a directory = %v, %v", ok, err)
	}
}
