package harness

import "github.com/roach88/oneclick/internal/platform"

// TraceEvent is one published event as seen by the harness tap.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// StepError records a step that failed.
type StepError struct {
	Step   int    `json:"step"`
	Action string `json:"action"`
	Code   string `json:"code"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion and step expectation held.
	Pass bool `json:"pass"`

	// Trace lists published events ordered by bus sequence number.
	Trace []TraceEvent `json:"trace"`

	WindowCalls []string       `json:"window_calls"`
	Opened      []string       `json:"opened"`
	ExitCodes   []int          `json:"exit_codes"`
	Tray        *platform.Menu `json:"tray,omitempty"`

	// StepErrors lists steps that returned an error, expected or not.
	StepErrors []StepError `json:"step_errors,omitempty"`

	// Errors contains assertion and expectation failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Trace:       []TraceEvent{},
		WindowCalls: []string{},
		Opened:      []string{},
		ExitCodes:   []int{},
		Errors:      []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
