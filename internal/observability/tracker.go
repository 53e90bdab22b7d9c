package observability

import (
	"log"
	"time"
)

// Tracker records an observation for every outbound dependency call,
// success and failure alike. It is passed explicitly into components at
// construction so tests can substitute a recorder; there is no package-level
// instance.
type Tracker interface {
	TrackDependency(operation, endpoint string, duration time.Duration, success bool)
}

// LogTracker writes dependency observations to the process log.
type LogTracker struct{}

func NewLogTracker() LogTracker {
	return LogTracker{}
}

func (LogTracker) TrackDependency(operation, endpoint string, duration time.Duration, success bool) {
	log.Printf("level=info component=observability msg=\"api dependency\" operation=%s endpoint=%s duration_ms=%d success=%t",
		operation, endpoint, duration.Milliseconds(), success)
}

// NopTracker discards observations.
type NopTracker struct{}

func (NopTracker) TrackDependency(string, string, time.Duration, bool) {}
