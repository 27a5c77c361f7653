package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"droidenv/internal/provision"
	"droidenv/internal/tools"
	"droidenv/internal/tui"
)

type toolDetector interface {
	Detect(ctx context.Context) []tools.Status
}

// newDetector is swapped in tests.
var newDetector = func(s session) toolDetector {
	ws := s.ws
	return &tools.Detector{
		Profile: s.profile,
		Env:     provision.Existing(s.opts).Vars(os.Getenv("PATH")),
		Dirs: map[string][]string{
			"java":       {filepath.Join(ws.JDKHome(s.opts.JDKHomeDir), "bin")},
			"gradle":     {filepath.Join(ws.GradleHome(s.opts.GradleVersion), "bin")},
			"sdkmanager": {filepath.Join(ws.CmdlineToolsDir, "bin")},
		},
		Minimums: map[string]string{"java": s.opts.JavaMinimum},
	}
}

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect external tools",
	}

	cmd.AddCommand(newToolsListCmd())
	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved tool statuses",
		Args:  cobra.NoArgs,
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSession()
	if err != nil {
		return err
	}
	statuses := newDetector(s).Detect(ctx)

	if outputJSON {
		return writeJSON(cmd, statuses)
	}

	printStatusTable(cmd, statuses)
	return nil
}

func printStatusTable(cmd *cobra.Command, statuses []tools.Status) {
	out := cmd.OutOrStdout()
	if len(statuses) == 0 {
		fmt.Fprintln(out, "(no tool statuses)")
		return
	}

	rows := make([]tools.Status, len(statuses))
	copy(rows, statuses)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Tool < rows[j].Tool
	})

	fmt.Fprintf(out, "%-11s %-10s %-12s %-8s %-4s %s\n", "Tool", "Source", "Version", "Minimum", "OK", "Path")
	for _, st := range rows {
		ok := "no"
		if st.Satisfied {
			ok = "yes"
		}
		path := st.Path
		if path == "" {
			path = "(missing)"
		}
		fmt.Fprintf(out, "%-11s %-10s %-12s %-8s %-4s %s\n",
			st.Tool, tui.NonEmptyOrDash(string(st.Source)), tui.NonEmptyOrDash(st.Version), tui.NonEmptyOrDash(st.Minimum), ok, path)
		if st.Error != "" {
			fmt.Fprintf(out, "  error: %s\n", st.Error)
		}
		for _, note := range st.Notes {
			fmt.Fprintf(out, "  hint: %s\n", note)
		}
	}
}

