package interfaces

import (
	"context"

	"mycomparer/domain"
)

// Discoverer builds a fresh CollectionIndex from every enabled instance of the registry.
// Individual instance failures are logged and skipped; the returned index holds whatever succeeded.
//
// Implemented by service.discoveryService. Called from service.Comparator.Discover.
//
//go:generate moq -stub -out mock/discoverer.go -pkg mock . Discoverer
type Discoverer interface {
	// Discover queries all enabled instances concurrently and waits for all of them to settle.
	// Returns: the complete replacement index. Never fails because of a single instance; only a
	// cancelled ctx makes the result partial.
	Discover(ctx context.Context) domain.CollectionIndex
}
