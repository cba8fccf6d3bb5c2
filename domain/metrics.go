package domain

import "time"

// MetricsSample is one completed query observation.
// TimestampOffset is measured from the recorder's start.
type MetricsSample struct {
	InstanceID      string        `json:"instance_id"`
	LatencyMs       int64         `json:"latency_ms"`
	HitCount        int           `json:"hit_count"`
	TimestampOffset time.Duration `json:"timestamp_offset"`
	QueryText       string        `json:"query"`
	CollectionName  string        `json:"collection"`
	Debounced       bool          `json:"debounced"`
}
