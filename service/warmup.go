package service

import (
	"context"
	"net/http"
	"time"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// WarmupResult is the outcome of one warm-up request. Err is nil when the backend answered at all.
type WarmupResult struct {
	InstanceID string
	Elapsed    time.Duration
	Err        error
}

// Warmer opens the transport to every remote backend once, so the first real query does not pay for the
// TCP and TLS handshake.
type Warmer struct {
	client   *http.Client
	adapters interfaces.AdapterProvider
	clock    interfaces.TimeProvider
	timeout  time.Duration
	logger   log.Logger
}

// NewWarmer creates a Warmer. Panics on nil client, adapters, clock or logger.
//
// Parameters: client: the http.Client shared with the adapters (its connection pool is what gets warmed);
// adapters: health URL per engine; clock: request timing; timeout: per-request bound (domain.DefaultWarmupTimeout); logger: logger.
//
// Called from cmd/main.
func NewWarmer(client *http.Client, adapters interfaces.AdapterProvider, clock interfaces.TimeProvider, timeout time.Duration, logger log.Logger) *Warmer {
	return &Warmer{
		client:   helpers.NilPanic(client, "service.warmup.go: http client is required"),
		adapters: helpers.NilPanic(adapters, "service.warmup.go: adapters is required"),
		clock:    helpers.NilPanic(clock, "service.warmup.go: clock is required"),
		timeout:  timeout,
		logger:   log.With(helpers.NilPanic(logger, "service.warmup.go: logger is required"), "component", "warmup"),
	}
}

// Targets returns the instances a warm-up pass contacts: enabled, not local, and reachable from the page
// (plain http is skipped when the page is secure).
func Targets(instances []domain.BackendInstance, pageSecure bool) []domain.BackendInstance {
	var out []domain.BackendInstance
	for _, inst := range instances {
		if !inst.Enabled || inst.IsLocal() {
			continue
		}
		if pageSecure && helpers.IsInsecureAddress(inst.Address) {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// Warmup GETs the health URL of every target concurrently and logs the timing. Results are informational
// and never fed back into discovery or resolution.
//
// Returns: one result per target, in registry order.
//
// Called once from cmd/main at startup, alongside the first discovery.
func (w *Warmer) Warmup(ctx context.Context, instances []domain.BackendInstance, pageSecure bool) []WarmupResult {
	targets := Targets(instances, pageSecure)
	results := make([]WarmupResult, len(targets))
	var g errgroup.Group
	for i, inst := range targets {
		g.Go(func() error {
			started := w.clock.Now()
			err := w.ping(ctx, inst)
			results[i] = WarmupResult{InstanceID: inst.ID, Elapsed: w.clock.Now().Sub(started), Err: err}
			if err != nil {
				level.Warn(w.logger).Log("msg", "warmup failed", "instance", inst.ID, "elapsed", results[i].Elapsed, "err", err)
			} else {
				level.Info(w.logger).Log("msg", "warmup", "instance", inst.ID, "elapsed", results[i].Elapsed)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (w *Warmer) ping(ctx context.Context, inst domain.BackendInstance) error {
	adapter, err := w.adapters.Adapter(inst.Engine)
	if err != nil {
		return err
	}
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, adapter.HealthURL(inst), nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
