package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"droidenv/internal/execx"
	"droidenv/internal/fetch"
	"droidenv/internal/provision"
	"droidenv/internal/scaffold"
)

var (
	newJavaPackage string
	newKivyNDK     string
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a sample project in the workspace",
	}

	cmd.AddCommand(newNewJavaCmd())
	cmd.AddCommand(newNewKivyCmd())
	return cmd
}

func newNewJavaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "java [name]",
		Short: "Create a Java Android project with a Gradle wrapper",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNewJava,
	}
	cmd.Flags().StringVar(&newJavaPackage, "package", "", "Java package name (defaults to config)")
	return cmd
}

func newNewKivyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kivy [name]",
		Short: "Create a Kivy project with a buildozer spec",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNewKivy,
	}
	cmd.Flags().StringVar(&newKivyNDK, "ndk", "", "NDK version recorded in buildozer.spec (defaults to the configured ndk component)")
	return cmd
}

// newScaffolder is swapped in tests.
var newScaffolder = func(s session) *scaffold.Scaffolder {
	env := provision.Existing(s.opts)
	return &scaffold.Scaffolder{
		Root:      s.ws.ProjectsDir,
		Profile:   s.profile,
		GradleExe: filepath.Join(s.ws.GradleHome(s.opts.GradleVersion), "bin", s.profile.Script("gradle")),
		Runner:    execx.CmdRunner{},
		Fetcher:   fetch.New(),
		Env:       env.Vars(os.Getenv("PATH")),
	}
}

func runNewJava(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSession()
	if err != nil {
		return err
	}
	p := s.opts.Projects.Java
	if len(args) == 1 {
		p.Name = args[0]
	}
	if newJavaPackage != "" {
		p.Package = newJavaPackage
	}

	res, err := newScaffolder(s).Java(ctx, p)
	if err != nil {
		return err
	}
	return printScaffold(cmd, res)
}

func runNewKivy(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	p := s.opts.Projects.Kivy
	if len(args) == 1 {
		p.Name = args[0]
	}
	if newKivyNDK != "" {
		p.NDK = newKivyNDK
	}

	res, err := newScaffolder(s).Kivy(p)
	if err != nil {
		return err
	}
	return printScaffold(cmd, res)
}

func printScaffold(cmd *cobra.Command, res scaffold.Result) error {
	if outputJSON {
		return writeJSON(cmd, res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s project %s at %s\n", res.Kind, res.Name, res.Dir)
	for _, f := range res.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	if res.Wrapper != "" {
		fmt.Fprintf(out, "Gradle wrapper: %s\n", res.Wrapper)
	}
	for _, note := range res.Notes {
		fmt.Fprintf(out, "  note: %s\n", note)
	}
	return nil
}
