package domain

import "time"

// InvocationOutcome summarises how a dispatched command ended.
type InvocationOutcome string

const (
	OutcomeSuccess  InvocationOutcome = "success"
	OutcomeFailed   InvocationOutcome = "failed"
	OutcomeSkipped  InvocationOutcome = "skipped"
	OutcomeRejected InvocationOutcome = "rejected"
)

// HistoryRecord captures one command invocation.
type HistoryRecord struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Command    CommandKey        `json:"command"`
	Model      string            `json:"model"`
	Outcome    InvocationOutcome `json:"outcome"`
	DurationMS int64             `json:"duration_ms"`
	Error      string            `json:"error,omitempty"`
}
