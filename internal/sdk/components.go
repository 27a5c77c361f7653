package sdk

import "context"

// Outcome records the result of one component install attempt.
type Outcome struct {
	Component  string `json:"component"`
	OK         bool   `json:"ok"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Hooks observe the install loop. Either field may be nil.
type Hooks struct {
	Start func(component string)
	Done  func(outcome Outcome)
}

// InstallComponents installs each component in order, one attempt each. A
// failing component is recorded and the loop moves on.
func InstallComponents(ctx context.Context, tool Tool, components []string, hooks Hooks) []Outcome {
	outcomes := make([]Outcome, 0, len(components))
	for _, id := range components {
		if hooks.Start != nil {
			hooks.Start(id)
		}
		outcome := Outcome{Component: id, OK: true}
		if err := tool.Install(ctx, id); err != nil {
			outcome.OK = false
			outcome.Diagnostic = err.Error()
		}
		outcomes = append(outcomes, outcome)
		if hooks.Done != nil {
			hooks.Done(outcome)
		}
	}
	return outcomes
}

// Failed filters outcomes down to the failed attempts.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.OK {
			failed = append(failed, o)
		}
	}
	return failed
}
