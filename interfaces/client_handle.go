package interfaces

import (
	"context"

	"mycomparer/domain"
)

// ClientHandle executes queries against one backend instance with fixed shaping parameters.
// Built by EngineAdapter.BuildClient, owned by service.clientCache, used by service.Comparator.Search.
//
//go:generate moq -stub -out mock/client_handle.go -pkg mock . ClientHandle
type ClientHandle interface {
	// ID is a per-construction identifier; two handles for the same key built at different times differ.
	ID() string

	// InstanceID returns the backend instance the handle talks to.
	InstanceID() string

	// Search runs req and returns the normalized result.
	// Returns: (result, nil) on success; (zero, error) on transport/decode failure or when ctx is done.
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error)

	// Close releases resources held by the handle. Called by the cache on eviction; idempotent.
	Close() error
}
