package provision

import "droidenv/internal/sdk"

// Reporter receives progress events. Calls happen on the goroutine running
// the orchestrator.
type Reporter interface {
	StageStarted(stage Stage)
	StageSkipped(stage Stage, reason string)
	StageFinished(stage Stage, err error)
	ComponentStarted(component string)
	ComponentFinished(outcome sdk.Outcome)
	Download(url string, done, total int64)
}

// NopReporter ignores every event.
type NopReporter struct{}

func (NopReporter) StageStarted(Stage) {}
func (NopReporter) StageSkipped(Stage, string) {}
func (NopReporter) StageFinished(Stage, error) {}
func (NopReporter) ComponentStarted(string) {}
func (NopReporter) ComponentFinished(sdk.Outcome) {}
func (NopReporter) Download(string, int64, int64) {}

var _ Reporter = NopReporter{}
