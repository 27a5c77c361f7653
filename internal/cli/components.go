package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"droidenv/internal/sdk"
)

func newComponentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Manage SDK components",
	}

	cmd.AddCommand(newComponentsListCmd())
	cmd.AddCommand(newComponentsInstallCmd())
	return cmd
}

func newComponentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured SDK components",
		Args:  cobra.NoArgs,
		RunE:  runComponentsList,
	}
}

func runComponentsList(cmd *cobra.Command, _ []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	if outputJSON {
		return writeJSON(cmd, s.opts.Components)
	}
	for _, id := range s.opts.Components {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func newComponentsInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [component...]",
		Short: "Install SDK components (defaults to the configured list)",
		RunE:  runComponentsInstall,
	}
}

func runComponentsInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSession()
	if err != nil {
		return err
	}

	components := s.opts.Components
	if len(args) > 0 {
		components = nil
		for _, arg := range args {
			if id := strings.TrimSpace(arg); id != "" {
				components = append(components, id)
			}
		}
	}
	if len(components) == 0 {
		return fmt.Errorf("no components to install")
	}

	logger, logOutput, closeLog, err := s.openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	tool, err := newSDKTool(s, logOutput)
	if err != nil {
		return err
	}

	reporter := &lineReporter{w: cmd.ErrOrStderr()}
	hooks := sdk.Hooks{
		Done: func(o sdk.Outcome) {
			logger.WithField("component", o.Component).WithField("ok", o.OK).Info("component finished")
		},
	}
	if !outputJSON {
		hooks.Start = reporter.ComponentStarted
	}
	outcomes := sdk.InstallComponents(ctx, tool, components, hooks)

	var errs []error
	for _, o := range sdk.Failed(outcomes) {
		errs = append(errs, fmt.Errorf("%s: %s", o.Component, o.Diagnostic))
	}

	if outputJSON {
		if err := writeJSON(cmd, outcomes); err != nil {
			return err
		}
	} else {
		printOutcomes(cmd, outcomes)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func printOutcomes(cmd *cobra.Command, outcomes []sdk.Outcome) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-40s %s\n", "Component", "Result")
	for _, o := range outcomes {
		result := "installed"
		if !o.OK {
			result = "failed"
		}
		fmt.Fprintf(out, "%-40s %s\n", o.Component, result)
		if !o.OK && o.Diagnostic != "" {
			fmt.Fprintf(out, "  error: %s\n", o.Diagnostic)
		}
	}
}
