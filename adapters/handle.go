package adapters

import (
	"context"
	"sync/atomic"

	"mycomparer/domain"

	"github.com/google/uuid"
)

// searchFunc executes one query for a handle.
type searchFunc func(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error)

// handle implements interfaces.ClientHandle for every engine; the engine-specific wire format
// lives in search. Each construction gets a fresh uuid so diagnostics can tell rebuilt handles apart.
type handle struct {
	id         string
	instanceID string
	search     searchFunc
	closed     atomic.Bool
}

func newHandle(instanceID string, search searchFunc) *handle {
	return &handle{
		id:         uuid.NewString(),
		instanceID: instanceID,
		search:     search,
	}
}

// ID returns the per-construction uuid.
func (h *handle) ID() string { return h.id }

// InstanceID returns the backend instance id.
func (h *handle) InstanceID() string { return h.instanceID }

// Search runs req unless the handle was closed.
func (h *handle) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	if h.closed.Load() {
		return domain.SearchResult{}, ErrHandleClosed
	}
	return h.search(ctx, req)
}

// Close marks the handle closed. The shared http.Client stays open. Idempotent.
func (h *handle) Close() error {
	h.closed.Store(true)
	return nil
}
