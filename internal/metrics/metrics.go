// Package metrics provides draw instrumentation backends.
package metrics

import "time"

// Outcome labels for RecordDraw.
const (
	OutcomeOK                  = "ok"
	OutcomeInsufficientMembers = "insufficient_members"
	OutcomeUnresolvable        = "unresolvable"
	OutcomePersistenceError    = "persistence_error"
	OutcomeCanceled            = "canceled"
)

// DrawRecorder receives one observation per draw.
type DrawRecorder interface {
	RecordDraw(outcome string, attempts int, duration time.Duration)
}
