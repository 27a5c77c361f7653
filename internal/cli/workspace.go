package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"droidenv/internal/config"
	"droidenv/internal/logx"
	"droidenv/internal/paths"
	"droidenv/internal/platform"
	"droidenv/internal/provision"
)

// detectPlatform is swapped in tests.
var detectPlatform = platform.Current

// session bundles what every workspace command resolves first.
type session struct {
	ws      paths.Workspace
	cfg     config.Config
	profile platform.Profile
	opts    provision.Options
}

func loadSession() (session, error) {
	ws, err := paths.Resolve(workspaceDir)
	if err != nil {
		return session{}, err
	}

	path := ws.ConfigFile
	if strings.TrimSpace(configPath) != "" {
		path = configPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return session{}, err
	}

	profile := detectPlatform()
	return session{
		ws:      ws,
		cfg:     cfg,
		profile: profile,
		opts:    provision.FromConfig(ws, profile, cfg),
	}, nil
}

// validate turns error-level findings into a single error.
func (s session) validate() error {
	problems := config.Errors(s.cfg.Validate())
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, 0, len(problems))
	for _, p := range problems {
		errs = append(errs, errors.New(p.Message))
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}

// openLog starts a run log under the workspace. The returned writer carries
// subprocess output into the log and must be closed before the closer.
func (s session) openLog() (*logrus.Logger, io.WriteCloser, func(), error) {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	logger, closer, err := logx.New(s.ws.LogsDir, level)
	if err != nil {
		return nil, nil, nil, err
	}
	output := logger.WriterLevel(logrus.InfoLevel)
	cleanup := func() {
		_ = output.Close()
		_ = closer.Close()
	}
	return logger, output, cleanup, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
