package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"droidenv/internal/provision"
	"droidenv/internal/sdk"
)

const downloadInterval = 100 * time.Millisecond

// ProvisionColumns is the column layout used for setup runs.
var ProvisionColumns = []Column{
	{Header: "STEP", Width: 34},
	{Header: "STATUS", Width: 11},
	{Header: "DETAIL", Width: 48},
}

// StageKey and ComponentKey name the rows a ProvisionReporter updates.
func StageKey(stage provision.Stage) string { return "stage:" + string(stage) }

func ComponentKey(component string) string { return "component:" + component }

// AddProvisionRows pre-populates one row per stage, with the components
// listed beneath the components stage.
func AddProvisionRows(m *ProgressModel, stages []provision.Stage, components []string) {
	for _, stage := range stages {
		m.AddRow(StageKey(stage), []string{string(stage), "pending", ""})
		if stage != provision.StageComponents {
			continue
		}
		for _, id := range components {
			m.AddRow(ComponentKey(id), []string{"  " + id, "pending", ""})
		}
	}
}

// ProvisionReporter adapts bubbletea message sending to provision.Reporter.
// Download events are throttled so a fast transfer does not flood the
// program with messages.
type ProvisionReporter struct {
	send func(tea.Msg)

	mu       sync.Mutex
	lastSent time.Time
	now      func() time.Time
}

// NewProvisionReporter constructs a reporter that forwards to send.
func NewProvisionReporter(send func(tea.Msg)) *ProvisionReporter {
	return &ProvisionReporter{send: send, now: time.Now}
}

func (r *ProvisionReporter) StageStarted(stage provision.Stage) {
	r.send(RowUpdateMsg{Key: StageKey(stage), Fields: map[string]string{"STATUS": "running"}})
}

func (r *ProvisionReporter) StageSkipped(stage provision.Stage, reason string) {
	r.send(RowUpdateMsg{Key: StageKey(stage), Fields: map[string]string{"STATUS": "skipped", "DETAIL": reason}})
}

func (r *ProvisionReporter) StageFinished(stage provision.Stage, err error) {
	fields := map[string]string{"STATUS": "done"}
	if err != nil {
		fields["STATUS"] = "failed"
		fields["DETAIL"] = err.Error()
	}
	r.send(RowUpdateMsg{Key: StageKey(stage), Fields: fields})
}

func (r *ProvisionReporter) ComponentStarted(component string) {
	r.send(RowUpdateMsg{Key: ComponentKey(component), Fields: map[string]string{"STATUS": "installing"}})
}

func (r *ProvisionReporter) ComponentFinished(outcome sdk.Outcome) {
	fields := map[string]string{"STATUS": "installed"}
	if !outcome.OK {
		fields["STATUS"] = "failed"
		fields["DETAIL"] = outcome.Diagnostic
	}
	r.send(RowUpdateMsg{Key: ComponentKey(outcome.Component), Fields: fields})
}

func (r *ProvisionReporter) Download(url string, done, total int64) {
	finished := total > 0 && done >= total
	r.mu.Lock()
	now := r.now()
	if !finished && now.Sub(r.lastSent) < downloadInterval {
		r.mu.Unlock()
		return
	}
	r.lastSent = now
	r.mu.Unlock()
	r.send(DownloadMsg{URL: url, Done: done, Total: total})
}

var _ provision.Reporter = (*ProvisionReporter)(nil)
