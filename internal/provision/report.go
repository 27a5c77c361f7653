package provision

import (
	"time"

	"droidenv/internal/platform"
	"droidenv/internal/scaffold"
	"droidenv/internal/sdk"
)

// Report summarises a provisioning run. It is returned even when the run
// fails so callers can show partial progress.
type Report struct {
	RunID       string            `json:"run_id"`
	Platform    platform.Profile  `json:"platform"`
	Environment Environment       `json:"environment"`
	Stages      []StageResult     `json:"stages"`
	Outcomes    []sdk.Outcome     `json:"components"`
	Python      []string          `json:"python_packages,omitempty"`
	Projects    []scaffold.Result `json:"projects,omitempty"`
	Missing     []string          `json:"missing,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
}

// StageResult records how a stage ended.
type StageResult struct {
	Stage   Stage  `json:"stage"`
	Status  string `json:"status"` // "done", "skipped" or "failed"
	Detail  string `json:"detail,omitempty"`
	Elapsed string `json:"elapsed,omitempty"`
}

// Failed returns the component outcomes that did not install.
func (r Report) Failed() []sdk.Outcome {
	return sdk.Failed(r.Outcomes)
}

// Duration is the wall time of the run.
func (r Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
