package service

import (
	"sync"
	"time"

	"mycomparer/helpers"
	"mycomparer/interfaces"
)

// clock implements interfaces.TimeProvider. Calls to now are serialized: the warmer and every
// instrumented client read it from their own goroutines, and the stepping clocks in helpers are not
// safe for concurrent use.
type clock struct {
	mu  sync.Mutex
	now func() time.Time
}

// NewTimeProvider wraps now. Panics on nil now.
//
// Called from cmd/main with time.Now().UTC; shared by the recorder, the client cache, discovery and the warmer.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &clock{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}
