package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"droidenv/internal/provision"
	"droidenv/internal/sdk"
	"droidenv/internal/tui"
)

var (
	setupSkipProjects bool
	setupSkipPython   bool
)

// runOrchestrator is swapped in tests.
var runOrchestrator = func(ctx context.Context, o *provision.Orchestrator) (provision.Report, error) {
	return o.Run(ctx)
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Download and install the Android toolchain into the workspace",
		Args:  cobra.NoArgs,
		RunE:  runSetup,
	}

	cmd.Flags().BoolVar(&setupSkipProjects, "skip-projects", false, "Do not scaffold the sample Java and Kivy projects")
	cmd.Flags().BoolVar(&setupSkipPython, "skip-python", false, "Do not install the Python packages")

	return cmd
}

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	mode := tui.DetectMode(out, noProgress, outputJSON)

	var status *tui.StatusWriter
	if mode == tui.ModeTUI {
		status = tui.NewStatusWriter(cmd.ErrOrStderr())
		defer status.Stop()
		status.Update("Loading config...")
	}

	s, err := loadSession()
	if err != nil {
		return err
	}
	if err := s.validate(); err != nil {
		return err
	}

	opts := s.opts
	if setupSkipProjects {
		opts.Projects.Enabled = false
	}
	if setupSkipPython {
		opts.Python.Enabled = false
	}

	logger, logOutput, closeLog, err := s.openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	orch := &provision.Orchestrator{
		Options: opts,
		Logger:  logger,
		Output:  logOutput,
	}
	if verbose && mode == tui.ModePlain {
		orch.Output = io.MultiWriter(logOutput, cmd.ErrOrStderr())
	}

	var (
		report provision.Report
		runErr error
	)

	switch mode {
	case tui.ModeTUI:
		status.Stop()
		model := tui.NewProgressModel("Provisioning "+s.ws.Root, tui.ProvisionColumns)
		tui.AddProvisionRows(&model, provision.Stages(), opts.Components)
		err := tui.RunWithWork(out, model, func(send func(tea.Msg)) {
			orch.Reporter = tui.NewProvisionReporter(send)
			report, runErr = runOrchestrator(ctx, orch)
		})
		if err != nil {
			return err
		}
	case tui.ModePlain:
		orch.Reporter = &lineReporter{w: cmd.ErrOrStderr()}
		report, runErr = runOrchestrator(ctx, orch)
	default:
		report, runErr = runOrchestrator(ctx, orch)
	}

	if mode == tui.ModeJSON {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
		return runErr
	}

	printSetupSummary(out, s.ws.Root, report)
	return runErr
}

func printSetupSummary(w io.Writer, root string, report provision.Report) {
	fmt.Fprintf(w, "Workspace: %s\n", root)
	fmt.Fprintf(w, "Run: %s (%s)\n\n", report.RunID, report.Duration().Round(time.Millisecond))

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tSTATUS\tELAPSED\tDETAIL")
	for _, st := range report.Stages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", st.Stage, st.Status, tui.NonEmptyOrDash(st.Elapsed), st.Detail)
	}
	tw.Flush()

	if len(report.Outcomes) > 0 {
		failed := report.Failed()
		fmt.Fprintf(w, "\nComponents: %d installed, %d failed\n", len(report.Outcomes)-len(failed), len(failed))
		printFailures(w, failed)
	}

	if len(report.Missing) > 0 {
		fmt.Fprintln(w, "\nMissing after install:")
		for _, p := range report.Missing {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}

	for _, res := range report.Projects {
		fmt.Fprintf(w, "\nCreated %s project %s at %s\n", res.Kind, res.Name, res.Dir)
		for _, note := range res.Notes {
			fmt.Fprintf(w, "  note: %s\n", note)
		}
	}

	if report.Environment.SDKRoot != "" {
		fmt.Fprintln(w, "\nEnvironment for child shells:")
		pathRef := "$PATH"
		if report.Platform.Windows() {
			pathRef = "%PATH%"
		}
		for _, kv := range report.Environment.Vars(pathRef) {
			fmt.Fprintf(w, "  %s\n", kv)
		}
	}
}

func printFailures(w io.Writer, failed []sdk.Outcome) {
	for _, o := range failed {
		fmt.Fprintf(w, "  failed: %s: %s\n", o.Component, o.Diagnostic)
	}
}

// lineReporter prints one line per event for non-interactive output.
type lineReporter struct {
	w io.Writer
}

func (r *lineReporter) StageStarted(stage provision.Stage) {
	fmt.Fprintf(r.w, "==> %s\n", stage)
}

func (r *lineReporter) StageSkipped(stage provision.Stage, reason string) {
	fmt.Fprintf(r.w, "==> %s skipped (%s)\n", stage, reason)
}

func (r *lineReporter) StageFinished(stage provision.Stage, err error) {
	if err != nil {
		fmt.Fprintf(r.w, "    %s failed: %v\n", stage, err)
	}
}

func (r *lineReporter) ComponentStarted(component string) {
	fmt.Fprintf(r.w, "    installing %s\n", component)
}

func (r *lineReporter) ComponentFinished(outcome sdk.Outcome) {
	if !outcome.OK {
		fmt.Fprintf(r.w, "    %s failed: %s\n", outcome.Component, strings.TrimSpace(outcome.Diagnostic))
	}
}

func (r *lineReporter) Download(string, int64, int64) {}

var _ provision.Reporter = (*lineReporter)(nil)
