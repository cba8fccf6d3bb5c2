package interfaces

import "mycomparer/domain"

// MetricsRecorder collects per-query latency samples. Strictly observational: nothing read from it
// feeds back into resolution or caching.
//
// Implemented by service.metricsRecorder. Written from service.instrumentedClient after every
// completed query; read by handlers for diagnostics.
//
//go:generate moq -stub -out mock/metrics_recorder.go -pkg mock . MetricsRecorder
type MetricsRecorder interface {
	// Record appends a sample to the bounded ring buffer and updates the last-latency snapshot.
	Record(instanceID string, latencyMs int64, hitCount int, qc domain.QueryContext)

	// Samples returns the buffered samples, oldest first.
	Samples() []domain.MetricsSample

	// LastLatency returns instance id → latency (ms) of its most recent sample.
	LastLatency() map[string]int64
}
