package service

import (
	"context"

	"mycomparer/domain"
	"mycomparer/interfaces"

	"golang.org/x/time/rate"
)

// instrumentedClient decorates an adapter handle: every completed query reports its latency and hit count
// to the metrics recorder exactly once. Failed or cancelled queries report nothing. An optional limiter
// throttles queries per handle.
type instrumentedClient struct {
	inner    interfaces.ClientHandle
	recorder interfaces.MetricsRecorder
	clock    interfaces.TimeProvider
	limiter  *rate.Limiter
}

func newInstrumentedClient(inner interfaces.ClientHandle, recorder interfaces.MetricsRecorder, clock interfaces.TimeProvider, limiter *rate.Limiter) *instrumentedClient {
	return &instrumentedClient{inner: inner, recorder: recorder, clock: clock, limiter: limiter}
}

func (c *instrumentedClient) ID() string { return c.inner.ID() }

func (c *instrumentedClient) InstanceID() string { return c.inner.InstanceID() }

// Search waits for the limiter, runs the query and records one sample when it completed.
func (c *instrumentedClient) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.SearchResult{}, err
		}
	}
	started := c.clock.Now()
	res, err := c.inner.Search(ctx, req)
	if err != nil {
		return res, err
	}
	if ctx.Err() != nil {
		return domain.SearchResult{}, ctx.Err()
	}
	elapsed := c.clock.Now().Sub(started)
	c.recorder.Record(c.inner.InstanceID(), elapsed.Milliseconds(), res.NbHits, domain.QueryContext{
		Query:      req.Query,
		Collection: req.Collection,
		Debounced:  req.Debounced,
	})
	return res, nil
}

func (c *instrumentedClient) Close() error { return c.inner.Close() }
