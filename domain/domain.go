package domain

import "time"

// LocalRegion is the region value carried by instances that only serve local-only slots.
const LocalRegion = "local"

// DefaultDiscoveryTimeout bounds one instance's "list collections" call during discovery.
const DefaultDiscoveryTimeout = 5 * time.Second

// DefaultWarmupTimeout bounds one instance's warm-up request.
const DefaultWarmupTimeout = 4 * time.Second

// MetricsCapacity is the fixed size of the metrics sample ring buffer.
const MetricsCapacity = 100

// DefaultPageSize and SingleResultPageSize are the two page sizes the UI toggles between.
const (
	DefaultPageSize      = 20
	SingleResultPageSize = 1
)

// TestCollectionPrefix marks scratch collections skipped by the default-collection fallback.
const TestCollectionPrefix = "test_"
