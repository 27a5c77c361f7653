package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlatformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Show the detected host platform profile",
		Args:  cobra.NoArgs,
		RunE:  runPlatform,
	}
}

func runPlatform(cmd *cobra.Command, _ []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	p := s.profile

	if outputJSON {
		return writeJSON(cmd, p)
	}

	suffix := func(v string) string {
		if v == "" {
			return "(none)"
		}
		return v
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %s\n", "Family", p.Family)
	fmt.Fprintf(out, "%-20s %s\n", "Shell", p.Shell)
	fmt.Fprintf(out, "%-20s %s\n", "Executable suffix", suffix(p.ExecutableSuffix))
	fmt.Fprintf(out, "%-20s %s\n", "Script suffix", suffix(p.ScriptSuffix))
	fmt.Fprintf(out, "%-20s %q\n", "Path separator", p.PathListSeparator)
	fmt.Fprintf(out, "%-20s %s\n", "Command-line tools", s.opts.CmdlineToolsURL)
	fmt.Fprintf(out, "%-20s %s\n", "JDK archive", suffix(s.opts.JDKURL))
	return nil
}
