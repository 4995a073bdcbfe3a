package domain

import "context"

// Selection is a snapshot of the user's highlighted text. Start and End are
// byte offsets into the document; Revision identifies the document state the
// snapshot was taken from.
type Selection struct {
	Text     string
	Start    int
	End      int
	Revision uint64
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Text == ""
}

// InvocationRequest captures a command invocation from the CLI or an editor binding.
type InvocationRequest struct {
	Context context.Context
	Command CommandKey
}

// InvocationResult is propagated back to the CLI.
type InvocationResult struct {
	Command  CommandKey
	Outcome  InvocationOutcome
	Selected string
	Inserted string
	Model    string
}

// DispatchState is the per-command state machine position.
type DispatchState string

const (
	StateIdle    DispatchState = "idle"
	StateRunning DispatchState = "running"
)
