package interfaces

import "time"

// TimeProvider supplies the current time for latency measurement and sample offsets.
// Injected so tests can use a fixed or stepping clock instead of time.Now().
//
// Constructed in cmd/main as service.NewTimeProvider(time.Now).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time
}
