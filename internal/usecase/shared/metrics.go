package shared

import "time"

// Recorder receives engine measurements. Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveRequest records one pipeline request. outcome is "ok" or an errs.Kind.
	ObserveRequest(name, kind, outcome string, d time.Duration)
	ConflictRetried(operation string, attempt int)
	ConflictExhausted(operation string)
	LedgerAppended(action string)
}

type NopRecorder struct{}

func (NopRecorder) ObserveRequest(string, string, string, time.Duration) {}
func (NopRecorder) ConflictRetried(string, int)                          {}
func (NopRecorder) ConflictExhausted(string)                             {}
func (NopRecorder) LedgerAppended(string)                                {}
