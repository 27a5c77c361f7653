package cli

import (
	"fmt"
	"io"
	"os"

	"droidenv/internal/execx"
	"droidenv/internal/paths"
	"droidenv/internal/provision"
	"droidenv/internal/sdk"
)

// newSDKTool builds the package tool for an already installed workspace. It
// is swapped in tests.
var newSDKTool = func(s session, out io.Writer) (provision.SDKTool, error) {
	exe := sdk.ExecutablePath(s.ws.CmdlineToolsDir, s.profile)
	ok, err := paths.FileExists(exe)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("sdkmanager not found at %s; run droidenv setup first", exe)
	}

	m := &sdk.Manager{
		Path:    exe,
		Profile: s.profile,
		Runner:  execx.CmdRunner{},
		Env:     provision.Existing(s.opts).Vars(os.Getenv("PATH")),
		Stdout:  out,
		Stderr:  out,
	}
	if err := m.Prepare(); err != nil {
		return nil, err
	}
	return m, nil
}
