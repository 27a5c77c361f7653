package provision

import (
	"errors"
	"fmt"

	"droidenv/internal/archive"
	"droidenv/internal/fetch"
	"droidenv/internal/verify"
)

// Stage names one step of a provisioning run.
type Stage string

const (
	StagePrepare      Stage = "prepare"
	StageBuildSystem  Stage = "build-system"
	StageJDK          Stage = "jdk"
	StageCmdlineTools Stage = "cmdline-tools"
	StageLicenses     Stage = "licenses"
	StageComponents   Stage = "components"
	StagePython       Stage = "python"
	StageVerify       Stage = "verify"
	StageProjects     Stage = "projects"
)

// Stages lists every stage in execution order.
func Stages() []Stage {
	return []Stage{
		StagePrepare,
		StageBuildSystem,
		StageJDK,
		StageCmdlineTools,
		StageLicenses,
		StageComponents,
		StagePython,
		StageVerify,
		StageProjects,
	}
}

// Kind classifies a fatal failure.
type Kind string

const (
	KindTransport    Kind = "transport"
	KindCorrupt      Kind = "corrupt-archive"
	KindSubprocess   Kind = "subprocess"
	KindFilesystem   Kind = "filesystem"
	KindVerification Kind = "verification"
	KindMissingJava  Kind = "missing-java"
)

// StageError is the error returned when a stage halts the run.
type StageError struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// stageError wraps err for stage, deriving the kind from the sentinel it
// carries. fallback applies when no sentinel matches.
func stageError(stage Stage, fallback Kind, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Kind: classify(err, fallback), Err: err}
}

func classify(err error, fallback Kind) Kind {
	switch {
	case errors.Is(err, fetch.ErrTransport):
		return KindTransport
	case errors.Is(err, archive.ErrCorrupt):
		return KindCorrupt
	case errors.Is(err, verify.ErrMissing):
		return KindVerification
	default:
		return fallback
	}
}

// KindOf reports the failure kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
