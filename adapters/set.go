package adapters

import (
	"errors"
	"fmt"
	"net/http"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"
)

// ErrHandleClosed is returned by a client handle used after the cache evicted it.
var ErrHandleClosed = errors.New("client handle is closed")

// ErrUnknownEngine is returned by Set.Adapter for an engine kind without an adapter.
var ErrUnknownEngine = errors.New("unknown engine")

// Set maps every engine kind to its adapter. Built once in cmd/main and shared by discovery,
// the client cache, facet fallback and warm-up.
type Set struct {
	adapters map[domain.EngineKind]interfaces.EngineAdapter
	settings map[domain.EngineKind]interfaces.SettingsSource
}

// NewSet creates the default adapter set over one shared http.Client. Panics on nil client.
func NewSet(client *http.Client) *Set {
	client = helpers.NilPanic(client, "adapters.set.go: http client is required")
	flapjack := NewFlapjackAdapter(client)
	return NewSetFrom(
		[]interfaces.EngineAdapter{flapjack, NewAlgoliaAdapter(client), NewMeilisearchAdapter(client), NewTypesenseAdapter(client)},
		map[domain.EngineKind]interfaces.SettingsSource{domain.EngineFlapjack: flapjack},
	)
}

// NewSetFrom builds a Set from explicit adapters (tests inject mocks here). A later adapter for
// the same engine replaces an earlier one.
func NewSetFrom(adapters []interfaces.EngineAdapter, settings map[domain.EngineKind]interfaces.SettingsSource) *Set {
	s := &Set{
		adapters: make(map[domain.EngineKind]interfaces.EngineAdapter, len(adapters)),
		settings: make(map[domain.EngineKind]interfaces.SettingsSource, len(settings)),
	}
	for _, a := range adapters {
		s.adapters[a.Engine()] = a
	}
	for k, v := range settings {
		s.settings[k] = v
	}
	return s
}

// Adapter returns the adapter for engine or an error wrapping ErrUnknownEngine.
func (s *Set) Adapter(engine domain.EngineKind) (interfaces.EngineAdapter, error) {
	a, ok := s.adapters[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}
	return a, nil
}

// SettingsSource returns the facet settings source for engine, if the engine has one.
func (s *Set) SettingsSource(engine domain.EngineKind) (interfaces.SettingsSource, bool) {
	src, ok := s.settings[engine]
	return src, ok
}
