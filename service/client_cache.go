package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ClientCache memoizes instrumented client handles by domain.ClientKey. Each Refresh is one resolution pass:
// it computes the required key set for the active slots, builds the missing handles, then evicts every entry
// outside that set and inserts the new ones in a single commit. Starting a pass cancels the previous one; a
// superseded or cancelled pass never touches the cache.
// Fields under mu: entries, generation (id of the newest pass), cancel (cancels the newest pass).
type ClientCache struct {
	adapters  interfaces.AdapterProvider
	recorder  interfaces.MetricsRecorder
	clock     interfaces.TimeProvider
	queryRate float64
	logger    log.Logger

	mu         sync.Mutex
	entries    map[domain.ClientKey]interfaces.ClientHandle
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

// requirement is one active slot's client identity for the current pass.
type requirement struct {
	adapter interfaces.EngineAdapter
	spec    domain.ClientSpec
}

// NewClientCache creates an empty cache. Panics on nil adapters, recorder, clock or logger.
//
// Parameters: adapters: engine adapter lookup; recorder: receives one sample per completed query;
// clock: latency measurement; queryRate: per-handle queries per second, 0 = unlimited; logger: logger.
//
// Returns: *ClientCache.
//
// Called from cmd/main; used by Comparator.Apply.
func NewClientCache(
	adapters interfaces.AdapterProvider,
	recorder interfaces.MetricsRecorder,
	clock interfaces.TimeProvider,
	queryRate float64,
	logger log.Logger,
) *ClientCache {
	return &ClientCache{
		adapters:  helpers.NilPanic(adapters, "service.client_cache.go: adapters is required"),
		recorder:  helpers.NilPanic(recorder, "service.client_cache.go: recorder is required"),
		clock:     helpers.NilPanic(clock, "service.client_cache.go: clock is required"),
		queryRate: queryRate,
		logger:    log.With(helpers.NilPanic(logger, "service.client_cache.go: logger is required"), "component", "client_cache"),
		entries:   make(map[domain.ClientKey]interfaces.ClientHandle),
	}
}

// Refresh runs one resolution pass for slots under shaping.
//
// Phases: (1) for each active slot, schema introspection when the engine requires it, then the client key;
// (2) under the lock, list the required keys that have no entry; (3) build those handles concurrently
// outside the lock; (4) under the lock, evict every entry whose key is not required, insert built handles
// and assemble the result. Entries change only in phase 4. After every network call the pass checks that
// it is still the newest one; if not it stops, closes what it built and returns ErrStalePass. Introspection or construction failures leave that slot without a handle and are retried
// on the next pass.
//
// Parameters: ctx: caller context, also cancelled for this pass when a newer pass starts;
// slots: output of ResolveSlots; shaping: collection, sort and page size in effect.
//
// Returns: (instance id → handle for every active slot that has one, nil); (nil, error wrapping ErrStalePass)
// when superseded; (nil, ctx error) when ctx was cancelled by the caller.
//
// Called from Comparator.Apply.
func (c *ClientCache) Refresh(ctx context.Context, slots []domain.ResolvedSlot, shaping domain.ShapingParams) (map[string]interfaces.ClientHandle, error) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	required, err := c.requirements(ctx, gen, slots, shaping)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if err := c.checkLocked(ctx, gen); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	var missing []requirement
	scheduled := make(map[domain.ClientKey]bool)
	for _, r := range required {
		if _, ok := c.entries[r.spec.Key]; ok || scheduled[r.spec.Key] {
			continue
		}
		scheduled[r.spec.Key] = true
		missing = append(missing, r)
	}
	c.mu.Unlock()

	built := make([]interfaces.ClientHandle, len(missing))
	var g errgroup.Group
	for i, r := range missing {
		g.Go(func() error {
			h, err := r.adapter.BuildClient(ctx, r.spec)
			if err != nil {
				if ctx.Err() == nil {
					level.Warn(c.logger).Log("msg", "build client failed", "key", r.spec.Key.String(), "err", err)
				}
				return nil
			}
			built[i] = newInstrumentedClient(h, c.recorder, c.clock, c.limiter())
			return nil
		})
	}
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkLocked(ctx, gen); err != nil {
		closeAll(built)
		return nil, err
	}
	wanted := make(map[domain.ClientKey]bool, len(required))
	for _, r := range required {
		wanted[r.spec.Key] = true
	}
	for key, h := range c.entries {
		if !wanted[key] {
			_ = h.Close()
			delete(c.entries, key)
			level.Debug(c.logger).Log("msg", "evicted client", "key", key.String())
		}
	}
	for i, h := range built {
		if h == nil {
			continue
		}
		key := missing[i].spec.Key
		if _, exists := c.entries[key]; exists {
			_ = h.Close()
			continue
		}
		c.entries[key] = h
	}
	out := make(map[string]interfaces.ClientHandle, len(required))
	for _, r := range required {
		if h, ok := c.entries[r.spec.Key]; ok {
			out[r.spec.Instance.ID] = h
		}
	}
	return out, nil
}

// requirements computes the client spec of every active slot. Schema lookups run concurrently; each one
// is followed by a staleness check.
func (c *ClientCache) requirements(ctx context.Context, gen uint64, slots []domain.ResolvedSlot, shaping domain.ShapingParams) ([]requirement, error) {
	found := make([]*requirement, len(slots))
	var g errgroup.Group
	for i, slot := range slots {
		if !slot.Active() {
			continue
		}
		adapter, err := c.adapters.Adapter(slot.Engine)
		if err != nil {
			level.Warn(c.logger).Log("msg", "no adapter for slot", "slot", slot.SlotID, "err", err)
			continue
		}
		inst := *slot.Instance
		g.Go(func() error {
			var fields []string
			if adapter.RequiresSchema() {
				f, err := adapter.GetSchema(ctx, inst, shaping.Collection)
				if staleErr := c.check(ctx, gen); staleErr != nil {
					return staleErr
				}
				if err != nil {
					level.Warn(c.logger).Log("msg", "schema introspection failed", "instance", inst.ID, "collection", shaping.Collection, "err", err)
					return nil
				}
				if len(f) == 0 {
					level.Warn(c.logger).Log("msg", "schema introspection failed", "instance", inst.ID, "collection", shaping.Collection, "err", ErrNoQueryableFields)
					return nil
				}
				fields = f
			}
			key, ok := adapter.ClientKey(inst, shaping, fields)
			if !ok {
				return nil
			}
			found[i] = &requirement{
				adapter: adapter,
				spec:    domain.ClientSpec{Key: key, Instance: inst, Shaping: shaping, QueryFields: fields},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := c.check(ctx, gen); err != nil {
		return nil, err
	}
	out := make([]requirement, 0, len(found))
	for _, r := range found {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (c *ClientCache) check(ctx context.Context, gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkLocked(ctx, gen)
}

// checkLocked reports ErrStalePass when a newer pass started or the cache was closed, and the ctx error
// when the caller gave up.
func (c *ClientCache) checkLocked(ctx context.Context, gen uint64) error {
	if gen != c.generation || c.closed {
		return fmt.Errorf("%w: pass %d", ErrStalePass, gen)
	}
	return ctx.Err()
}

func (c *ClientCache) limiter() *rate.Limiter {
	if c.queryRate <= 0 {
		return nil
	}
	burst := int(c.queryRate)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.queryRate), burst)
}

// Keys returns the cached keys, rendered and sorted. Used by diagnostics and tests.
func (c *ClientCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	return keys
}

// Close cancels the running pass and closes every cached handle. Later passes return ErrStalePass.
func (c *ClientCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.closed = true
	var errs []error
	for key, h := range c.entries {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(c.entries, key)
	}
	return errors.Join(errs...)
}

func closeAll(handles []interfaces.ClientHandle) {
	for _, h := range handles {
		if h != nil {
			_ = h.Close()
		}
	}
}
