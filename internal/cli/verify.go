package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"droidenv/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [component...]",
		Short: "Check that every required component is present in the SDK root",
		RunE:  runVerify,
	}
}

type verifyResult struct {
	SDKRoot string   `json:"sdk_root"`
	Checked []string `json:"checked"`
	Missing []string `json:"missing"`
	OK      bool     `json:"ok"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	components := s.opts.Components
	if len(args) > 0 {
		components = args
	}
	manifest := verify.Manifest(components)
	checkErr := verify.Check(s.ws.SDKRoot, manifest)

	res := verifyResult{
		SDKRoot: s.ws.SDKRoot,
		Checked: manifest,
		Missing: verify.Missing(checkErr),
		OK:      checkErr == nil,
	}
	if res.Missing == nil {
		res.Missing = []string{}
	}

	if outputJSON {
		if err := writeJSON(cmd, res); err != nil {
			return err
		}
		return checkErr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "SDK root: %s\n", res.SDKRoot)
	if res.OK {
		fmt.Fprintf(out, "All %d component path(s) present\n", len(manifest))
		return nil
	}
	fmt.Fprintln(out, "Missing:")
	for _, p := range res.Missing {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return checkErr
}
