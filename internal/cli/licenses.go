package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"droidenv/internal/license"
)

var licensesWriteOnly bool

func newLicensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licenses",
		Short: "Write the license acceptance records and confirm them with sdkmanager",
		Args:  cobra.NoArgs,
		RunE:  runLicenses,
	}

	cmd.Flags().BoolVar(&licensesWriteOnly, "write-only", false, "Only write the record files; do not run sdkmanager")
	return cmd
}

func runLicenses(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSession()
	if err != nil {
		return err
	}
	table := s.opts.Licenses

	if licensesWriteOnly {
		if err := license.Write(s.ws.LicensesDir, table); err != nil {
			return err
		}
	} else {
		logger, logOutput, closeLog, err := s.openLog()
		if err != nil {
			return err
		}
		defer closeLog()

		tool, err := newSDKTool(s, logOutput)
		if err != nil {
			return err
		}
		if err := license.Accept(ctx, s.ws.LicensesDir, table, tool, logger); err != nil {
			return err
		}
	}

	if outputJSON {
		return writeJSON(cmd, struct {
			Dir      string           `json:"dir"`
			Licenses []license.Record `json:"licenses"`
		}{s.ws.LicensesDir, table})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Licenses written to %s\n", s.ws.LicensesDir)
	for _, rec := range table {
		fmt.Fprintf(out, "  %-36s %d token(s)\n", rec.Name, len(rec.Tokens))
	}
	return nil
}
