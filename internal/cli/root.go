package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	workspaceDir string
	configPath   string
	outputJSON   bool
	noProgress   bool
	verbose      bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "droidenv",
		Short:         "Provision a self-contained Android build workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&workspaceDir, "workspace", "", "Path to workspace directory (defaults to the current directory)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (defaults to <workspace>/droidenv.yaml)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable interactive progress output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level and echo tool output")

	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newLicensesCmd())
	cmd.AddCommand(newComponentsCmd())
	cmd.AddCommand(newPlatformCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newNewCmd())

	return cmd
}
