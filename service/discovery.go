package service

import (
	"context"
	"time"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// discoveryService implements interfaces.Discoverer. Every pass lists all enabled instances
// concurrently and builds a fresh domain.CollectionIndex; failed instances are logged and left out.
type discoveryService struct {
	registry domain.Registry
	adapters interfaces.AdapterProvider
	clock    interfaces.TimeProvider
	timeout  time.Duration
	logger   log.Logger
}

type listing struct {
	infos []domain.CollectionInfo
	err   error
}

// NewDiscoveryService creates the discovery service. Panics on nil adapters, clock or logger, or on a
// non-positive timeout.
//
// Parameters: registry: instance registry (only enabled instances are queried); adapters: engine adapter
// lookup; clock: pass duration in the summary log; timeout: per-instance bound on the listing call (domain.DefaultDiscoveryTimeout in prod);
// logger: failures at warn, pass summary at info.
//
// Returns: interfaces.Discoverer (*discoveryService).
//
// Called from cmd/main.
func NewDiscoveryService(registry domain.Registry, adapters interfaces.AdapterProvider, clock interfaces.TimeProvider, timeout time.Duration, logger log.Logger) interfaces.Discoverer {
	if timeout <= 0 {
		panic("service.discovery.go: timeout must be positive")
	}
	return &discoveryService{
		registry: registry,
		adapters: helpers.NilPanic(adapters, "service.discovery.go: adapters is required"),
		clock:    helpers.NilPanic(clock, "service.discovery.go: clock is required"),
		timeout:  timeout,
		logger:   log.With(helpers.NilPanic(logger, "service.discovery.go: logger is required"), "component", "discovery"),
	}
}

// Discover queries every enabled instance and waits for all of them to settle. A timed-out, unreachable or
// failing instance contributes nothing; the pass itself never fails.
//
// Parameter ctx: cancels every outstanding listing; each listing additionally gets its own timeout.
//
// Returns: the new collection index, to replace the previous one wholesale.
//
// Called from Comparator.Discover at startup and on POST /v1/discover.
func (d *discoveryService) Discover(ctx context.Context) domain.CollectionIndex {
	started := d.clock.Now()
	enabled := d.registry.Enabled()
	results := make([]listing, len(enabled))

	var g errgroup.Group
	for i, inst := range enabled {
		g.Go(func() error {
			results[i] = d.list(ctx, inst)
			return nil
		})
	}
	_ = g.Wait()

	index := domain.CollectionIndex{}
	ok := 0
	for i, inst := range enabled {
		if results[i].err != nil {
			level.Warn(d.logger).Log(
				"msg", "list collections failed",
				"instance", inst.ID,
				"engine", inst.Engine,
				"err", results[i].err,
			)
			continue
		}
		ok++
		for _, info := range results[i].infos {
			index.Add(inst, info)
		}
	}
	level.Info(d.logger).Log(
		"msg", "discovery finished",
		"elapsed", d.clock.Now().Sub(started),
		"collections", len(index),
		"instances_ok", ok,
		"instances_total", len(enabled),
	)
	return index
}

// list races one instance's listing against the discovery timeout. The call runs in its own goroutine so
// an adapter that ignores ctx still cannot hold the pass past the timeout.
func (d *discoveryService) list(ctx context.Context, inst domain.BackendInstance) listing {
	adapter, err := d.adapters.Adapter(inst.Engine)
	if err != nil {
		return listing{err: err}
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan listing, 1)
	go func() {
		infos, err := adapter.ListCollections(ctx, inst)
		done <- listing{infos: infos, err: err}
	}()
	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return listing{err: ctx.Err()}
	}
}
