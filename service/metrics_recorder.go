package service

import (
	"sync"
	"time"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

// queryMetrics mirrors recorded samples into Prometheus, labelled by instance id.
type queryMetrics struct {
	latency *prometheus.HistogramVec
	hits    *prometheus.GaugeVec
	total   *prometheus.CounterVec
}

func newQueryMetrics(reg prometheus.Registerer) (*queryMetrics, error) {
	if reg == nil {
		return nil, nil // export disabled
	}
	m := &queryMetrics{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mycomparer",
			Subsystem: "query",
			Name:      "latency_milliseconds",
			Help:      "Wall-clock latency of completed backend queries",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"instance"}),
		hits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mycomparer",
			Subsystem: "query",
			Name:      "last_hit_count",
			Help:      "Hit count reported by the most recent query per instance",
		}, []string{"instance"}),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mycomparer",
			Subsystem: "query",
			Name:      "completed_total",
			Help:      "Completed backend queries",
		}, []string{"instance"}),
	}
	for _, c := range []prometheus.Collector{m.latency, m.hits, m.total} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// metricsRecorder implements interfaces.MetricsRecorder: a fixed-capacity ring buffer of samples plus an
// instance → last latency snapshot. Oldest samples are overwritten once the buffer is full.
// Fields under mu: buf (len == capacity once full), next (write position), full, last.
type metricsRecorder struct {
	clock   interfaces.TimeProvider
	started time.Time
	metrics *queryMetrics

	mu   sync.Mutex
	buf  []domain.MetricsSample
	next int
	full bool
	last map[string]int64
}

// NewMetricsRecorder creates a recorder holding the last domain.MetricsCapacity samples. Panics on nil clock.
//
// Parameters: clock: source of sample offsets, measured from construction; reg: Prometheus registerer
// for latency histogram, hit gauge and query counter; nil disables export.
//
// Returns: (recorder, nil); (nil, error) when a collector is already registered in reg.
//
// Called from cmd/main; the recorder is handed to the client cache and the HTTP handlers.
func NewMetricsRecorder(clock interfaces.TimeProvider, reg prometheus.Registerer) (interfaces.MetricsRecorder, error) {
	clock = helpers.NilPanic(clock, "service.metrics_recorder.go: clock is required")
	metrics, err := newQueryMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &metricsRecorder{
		clock:   clock,
		started: clock.Now(),
		metrics: metrics,
		buf:     make([]domain.MetricsSample, 0, domain.MetricsCapacity),
		last:    make(map[string]int64),
	}, nil
}

// Record appends one sample, evicting the oldest when the buffer is full, and updates the last-latency snapshot.
//
// Called from instrumentedClient.Search once per completed query.
func (r *metricsRecorder) Record(instanceID string, latencyMs int64, hitCount int, qc domain.QueryContext) {
	sample := domain.MetricsSample{
		InstanceID:      instanceID,
		LatencyMs:       latencyMs,
		HitCount:        hitCount,
		TimestampOffset: r.clock.Now().Sub(r.started),
		QueryText:       qc.Query,
		CollectionName:  qc.Collection,
		Debounced:       qc.Debounced,
	}

	r.mu.Lock()
	if r.full {
		r.buf[r.next] = sample
	} else {
		r.buf = append(r.buf, sample)
	}
	r.next = (r.next + 1) % domain.MetricsCapacity
	if r.next == 0 {
		r.full = true
	}
	r.last[instanceID] = latencyMs
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.latency.WithLabelValues(instanceID).Observe(float64(latencyMs))
		r.metrics.hits.WithLabelValues(instanceID).Set(float64(hitCount))
		r.metrics.total.WithLabelValues(instanceID).Inc()
	}
}

// Samples returns a copy of the buffered samples, oldest first.
func (r *metricsRecorder) Samples() []domain.MetricsSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.MetricsSample, 0, len(r.buf))
	if r.full {
		out = append(out, r.buf[r.next:]...)
		out = append(out, r.buf[:r.next]...)
		return out
	}
	return append(out, r.buf...)
}

// LastLatency returns a copy of the instance → latest latency snapshot.
func (r *metricsRecorder) LastLatency() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64, len(r.last))
	for k, v := range r.last {
		out[k] = v
	}
	return out
}
