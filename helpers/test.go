package helpers

import (
	"time"
)

// TestNow returns a fixed time (2026-02-11 12:00:00 UTC) so tests get deterministic sample offsets and latencies.
func TestNow() time.Time {
	return time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
}

// TestClock returns a now func that starts at TestNow and advances by step on every call.
// Used by tests that need a measurable elapsed time between two reads.
func TestClock(step time.Duration) func() time.Time {
	current := TestNow()
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}
