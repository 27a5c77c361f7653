package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"droidenv/internal/archive"
	"droidenv/internal/execx"
	"droidenv/internal/fetch"
	"droidenv/internal/license"
	"droidenv/internal/paths"
	"droidenv/internal/scaffold"
	"droidenv/internal/sdk"
	"droidenv/internal/tools"
	"droidenv/internal/verify"
)

// Fetcher downloads archives.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// SDKTool is the package tool as driven by a run: prepared once, then asked
// to accept licenses and install components.
type SDKTool interface {
	sdk.Tool
	Prepare() error
}

// JavaDetector reports whether a usable Java runtime is reachable.
type JavaDetector interface {
	DetectOne(ctx context.Context, name string) (tools.Status, error)
}

// Orchestrator runs the provisioning stages strictly in order.
type Orchestrator struct {
	Options  Options
	Fetcher  Fetcher
	Runner   execx.Runner
	Logger   logrus.FieldLogger
	Reporter Reporter
	// Output receives subprocess stdout and stderr.
	Output io.Writer
	// BasePath is the inherited search path; defaults to $PATH.
	BasePath string

	// NewTool builds the package tool wrapper; defaults to sdk.Manager.
	NewTool func(executable string, env []string) SDKTool
	// NewJavaDetector builds the Java probe for an environment; defaults to
	// tools.Detector.
	NewJavaDetector func(env Environment) JavaDetector

	now func() time.Time
}

type runState struct {
	env    Environment
	report *Report
	tool   SDKTool
}

type step struct {
	stage Stage
	skip  func() string
	run   func(ctx context.Context, st *runState) error
}

// Run executes every stage. Per-component install failures are collected in
// the report; any other failure stops the run with a *StageError.
func (o *Orchestrator) Run(ctx context.Context) (Report, error) {
	o.init()
	ws := o.Options.Workspace

	report := Report{
		RunID:     uuid.NewString(),
		Platform:  o.Options.Profile,
		StartedAt: o.now(),
	}
	st := &runState{
		env: Environment{
			SDKRoot:       ws.SDKRoot,
			ListSeparator: o.Options.Profile.PathListSeparator,
		},
		report: &report,
	}
	log := o.Logger.WithField("run_id", report.RunID)
	log.WithFields(logrus.Fields{
		"workspace": ws.Root,
		"platform":  o.Options.Profile.Family,
	}).Info("provisioning started")

	steps := []step{
		{stage: StagePrepare, run: o.prepare},
		{stage: StageBuildSystem, run: o.installBuildSystem},
		{stage: StageJDK, run: o.ensureJava},
		{stage: StageCmdlineTools, run: o.installCmdlineTools},
		{stage: StageLicenses, run: o.acceptLicenses},
		{stage: StageComponents, run: o.installComponents},
		{stage: StagePython, skip: o.skipPython, run: o.installPython},
		{stage: StageVerify, run: o.verify},
		{stage: StageProjects, skip: o.skipProjects, run: o.scaffoldProjects},
	}

	for _, s := range steps {
		if s.skip != nil {
			if reason := s.skip(); reason != "" {
				o.Reporter.StageSkipped(s.stage, reason)
				report.Stages = append(report.Stages, StageResult{Stage: s.stage, Status: "skipped", Detail: reason})
				log.WithField("stage", s.stage).Info("stage skipped: " + reason)
				continue
			}
		}

		o.Reporter.StageStarted(s.stage)
		log.WithField("stage", s.stage).Info("stage started")
		started := o.now()
		err := s.run(ctx, st)
		elapsed := o.now().Sub(started).Round(time.Millisecond).String()
		o.Reporter.StageFinished(s.stage, err)
		report.Environment = st.env

		if err != nil {
			report.Stages = append(report.Stages, StageResult{Stage: s.stage, Status: "failed", Detail: err.Error(), Elapsed: elapsed})
			report.FinishedAt = o.now()
			log.WithField("stage", s.stage).WithError(err).Error("stage failed")
			return report, err
		}
		report.Stages = append(report.Stages, StageResult{Stage: s.stage, Status: "done", Elapsed: elapsed})
		log.WithFields(logrus.Fields{"stage": s.stage, "elapsed": elapsed}).Info("stage finished")
	}

	report.FinishedAt = o.now()
	log.WithField("failed_components", len(report.Failed())).Info("provisioning finished")
	return report, nil
}

func (o *Orchestrator) init() {
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	if o.Reporter == nil {
		o.Reporter = NopReporter{}
	}
	if o.Runner == nil {
		o.Runner = execx.CmdRunner{}
	}
	if o.Fetcher == nil {
		f := fetch.New()
		f.Progress = o.Reporter.Download
		o.Fetcher = f
	}
	if o.BasePath == "" {
		o.BasePath = os.Getenv("PATH")
	}
	if o.NewTool == nil {
		o.NewTool = func(executable string, env []string) SDKTool {
			return &sdk.Manager{
				Path:    executable,
				Profile: o.Options.Profile,
				Runner:  o.Runner,
				Env:     env,
				Stdout:  o.Output,
				Stderr:  o.Output,
			}
		}
	}
	if o.NewJavaDetector == nil {
		o.NewJavaDetector = func(env Environment) JavaDetector {
			return &tools.Detector{
				Profile:  o.Options.Profile,
				Runner:   o.Runner,
				Env:      env.Vars(o.BasePath),
				Dirs:     map[string][]string{"java": {filepath.Join(o.Options.Workspace.JDKHome(o.Options.JDKHomeDir), "bin")}},
				Minimums: map[string]string{"java": o.Options.JavaMinimum},
			}
		}
	}
	if o.now == nil {
		o.now = time.Now
	}
}

func (o *Orchestrator) prepare(_ context.Context, _ *runState) error {
	ws := o.Options.Workspace
	if err := ws.EnsureRoot(); err != nil {
		return stageError(StagePrepare, KindFilesystem, err)
	}
	if err := ws.EnsureMetaDirs(); err != nil {
		return stageError(StagePrepare, KindFilesystem, err)
	}
	return nil
}

// fetchAndInstall downloads url to a fixed file name and relocates its
// payload to dest.
func (o *Orchestrator) fetchAndInstall(ctx context.Context, stage Stage, name, url, dest string, opts archive.Options) error {
	if url == "" {
		return stageError(stage, KindTransport, fmt.Errorf("no download URL configured"))
	}
	format, err := archive.FormatFromName(url)
	if err != nil {
		format = archive.FormatZip
	}
	if opts.Format == "" {
		opts.Format = format
	}

	ws := o.Options.Workspace
	archivePath := ws.Download(name + "." + string(opts.Format))
	log := o.Logger.WithFields(logrus.Fields{"stage": stage, "url": url})

	log.Info("downloading")
	if err := o.Fetcher.Fetch(ctx, url, archivePath); err != nil {
		return stageError(stage, KindFilesystem, err)
	}
	log.WithField("dest", dest).Info("installing archive")
	if err := archive.Install(archivePath, ws.Staging(name), dest, opts); err != nil {
		return stageError(stage, KindFilesystem, err)
	}
	return nil
}

func (o *Orchestrator) installBuildSystem(ctx context.Context, st *runState) error {
	home := o.Options.Workspace.GradleHome(o.Options.GradleVersion)
	if err := o.fetchAndInstall(ctx, StageBuildSystem, "gradle", o.Options.GradleURL, home, archive.Options{}); err != nil {
		return err
	}

	exe := filepath.Join(home, "bin", o.Options.Profile.Script("gradle"))
	ok, err := paths.FileExists(exe)
	if err != nil {
		return stageError(StageBuildSystem, KindFilesystem, err)
	}
	if !ok {
		return stageError(StageBuildSystem, KindVerification, fmt.Errorf("gradle executable not found at %s", exe))
	}

	st.env.GradleHome = home
	st.env.PrependPath(filepath.Join(home, "bin"))
	return nil
}

func (o *Orchestrator) ensureJava(ctx context.Context, st *runState) error {
	jdkHome := o.Options.Workspace.JDKHome(o.Options.JDKHomeDir)
	log := o.Logger.WithField("stage", StageJDK)

	status, err := o.NewJavaDetector(st.env).DetectOne(ctx, "java")
	if err != nil {
		return stageError(StageJDK, KindMissingJava, err)
	}
	if status.Satisfied {
		log.WithFields(logrus.Fields{"version": status.Version, "source": status.Source}).Info("java found")
		if status.Source == tools.SourceWorkspace {
			o.useJDK(st, jdkHome)
		}
		return nil
	}

	if o.Options.JDKURL == "" {
		return stageError(StageJDK, KindMissingJava, fmt.Errorf("java not usable (%s); install JDK %s or newer manually", status.Error, o.Options.JavaMinimum))
	}

	log.WithField("reason", status.Error).Info("installing workspace JDK")
	if err := o.fetchAndInstall(ctx, StageJDK, "jdk", o.Options.JDKURL, jdkHome, archive.Options{}); err != nil {
		return err
	}
	o.useJDK(st, jdkHome)

	status, err = o.NewJavaDetector(st.env).DetectOne(ctx, "java")
	if err != nil {
		return stageError(StageJDK, KindMissingJava, err)
	}
	if !status.Satisfied {
		return stageError(StageJDK, KindMissingJava, fmt.Errorf("installed JDK not usable: %s", status.Error))
	}
	return nil
}

func (o *Orchestrator) useJDK(st *runState, home string) {
	st.env.JavaHome = home
	st.env.PrependPath(filepath.Join(home, "bin"))
}

func (o *Orchestrator) installCmdlineTools(ctx context.Context, st *runState) error {
	ws := o.Options.Workspace
	err := o.fetchAndInstall(ctx, StageCmdlineTools, "commandlinetools", o.Options.CmdlineToolsURL, ws.CmdlineToolsDir, archive.Options{Payload: "cmdline-tools"})
	if err != nil {
		return err
	}

	st.env.PrependPath(filepath.Join(ws.SDKRoot, "platform-tools"))
	st.env.PrependPath(filepath.Join(ws.CmdlineToolsDir, "bin"))

	tool := o.NewTool(sdk.ExecutablePath(ws.CmdlineToolsDir, o.Options.Profile), st.env.Vars(o.BasePath))
	if err := tool.Prepare(); err != nil {
		return stageError(StageCmdlineTools, KindFilesystem, err)
	}
	st.tool = tool
	return nil
}

func (o *Orchestrator) acceptLicenses(ctx context.Context, st *runState) error {
	log := o.Logger.WithField("stage", StageLicenses)
	if err := license.Accept(ctx, o.Options.Workspace.LicensesDir, o.Options.Licenses, st.tool, log); err != nil {
		return stageError(StageLicenses, KindFilesystem, err)
	}
	return nil
}

func (o *Orchestrator) installComponents(ctx context.Context, st *runState) error {
	log := o.Logger.WithField("stage", StageComponents)
	st.report.Outcomes = sdk.InstallComponents(ctx, st.tool, o.Options.Components, sdk.Hooks{
		Start: func(id string) {
			o.Reporter.ComponentStarted(id)
			log.WithField("component", id).Info("installing component")
		},
		Done: func(outcome sdk.Outcome) {
			o.Reporter.ComponentFinished(outcome)
			if !outcome.OK {
				log.WithField("component", outcome.Component).Warn("component install failed: " + outcome.Diagnostic)
			}
		},
	})
	return nil
}

func (o *Orchestrator) skipPython() string {
	if !o.Options.Python.Enabled {
		return "disabled in config"
	}
	if len(o.Options.Python.Packages) == 0 {
		return "no packages configured"
	}
	return ""
}

func (o *Orchestrator) installPython(ctx context.Context, st *runState) error {
	py := o.Options.Python
	for _, pkg := range py.Packages {
		o.Logger.WithFields(logrus.Fields{"stage": StagePython, "package": pkg}).Info("pip install")
		_, err := o.Runner.Run(ctx, py.Executable, []string{"-m", "pip", "install", pkg}, execx.RunOptions{
			Env:    st.env.Vars(o.BasePath),
			Stdout: o.Output,
			Stderr: o.Output,
		})
		if err != nil {
			return stageError(StagePython, KindSubprocess, fmt.Errorf("pip install %s: %w", pkg, err))
		}
		st.report.Python = append(st.report.Python, pkg)
	}
	return nil
}

func (o *Orchestrator) verify(_ context.Context, st *runState) error {
	err := verify.Check(o.Options.Workspace.SDKRoot, verify.Manifest(o.Options.Components))
	if err != nil {
		st.report.Missing = verify.Missing(err)
		return stageError(StageVerify, KindVerification, err)
	}
	return nil
}

func (o *Orchestrator) skipProjects() string {
	if !o.Options.Projects.Enabled {
		return "not requested"
	}
	return ""
}

func (o *Orchestrator) scaffoldProjects(ctx context.Context, st *runState) error {
	s := &scaffold.Scaffolder{
		Root:      o.Options.Workspace.ProjectsDir,
		Profile:   o.Options.Profile,
		GradleExe: filepath.Join(st.env.GradleHome, "bin", o.Options.Profile.Script("gradle")),
		Runner:    o.Runner,
		Fetcher:   o.Fetcher,
		Env:       st.env.Vars(o.BasePath),
		Stdout:    o.Output,
		Logger:    o.Logger.WithField("stage", StageProjects),
	}

	java, err := s.Java(ctx, o.Options.Projects.Java)
	if err != nil {
		return stageError(StageProjects, KindFilesystem, err)
	}
	kivy, err := s.Kivy(o.Options.Projects.Kivy)
	if err != nil {
		return stageError(StageProjects, KindFilesystem, err)
	}
	st.report.Projects = append(st.report.Projects, java, kivy)
	return nil
}

// IsVerificationFailure reports whether err came from the final gate.
func IsVerificationFailure(err error) bool {
	return errors.Is(err, verify.ErrMissing)
}
