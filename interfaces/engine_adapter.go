package interfaces

import (
	"context"

	"mycomparer/domain"
)

// EngineAdapter hides one engine kind's address scheme, auth headers and response envelopes behind
// the uniform listing/schema/client shape. One implementation per domain.EngineKind; dispatch is by
// Engine(), never by inspecting responses.
//
// Implemented by adapters.flapjackAdapter, algoliaAdapter, meilisearchAdapter, typesenseAdapter.
// Called from service.discoveryService (ListCollections), service.clientCache (RequiresSchema,
// GetSchema, ClientKey, BuildClient) and service.Warmup (HealthURL).
//
//go:generate moq -stub -out mock/engine_adapter.go -pkg mock . EngineAdapter
type EngineAdapter interface {
	// Engine returns the engine kind this adapter serves.
	Engine() domain.EngineKind

	// ListCollections returns every collection hosted by inst, normalized to {name, docCount, fields}.
	// Returns: (infos, nil) on success, including an empty slice when the engine answered with a
	// non-success status; (nil, error) on transport, decode or ctx errors.
	// Called from service.discoveryService.Discover, once per enabled instance, under the discovery timeout.
	ListCollections(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error)

	// RequiresSchema reports whether ClientKey needs the queryable field list from GetSchema.
	RequiresSchema() bool

	// GetSchema returns the queryable fields of collection on inst. Engines that do not need a
	// schema return (nil, nil).
	// Returns: (fields, nil) on success (possibly empty); (nil, error) on request failure or non-success status.
	// Called from service.clientCache.Refresh before the key of a schema-driven engine can be computed.
	GetSchema(ctx context.Context, inst domain.BackendInstance, collection string) ([]string, error)

	// ClientKey computes the cache identity for inst under shaping; fields is the GetSchema
	// output for schema-driven engines. ok=false means no client should exist for this combination
	// (e.g. an engine that cannot honour the selected sort).
	ClientKey(inst domain.BackendInstance, shaping domain.ShapingParams, fields []string) (key domain.ClientKey, ok bool)

	// BuildClient constructs a query-executing handle for spec. The returned handle is not instrumented;
	// service.clientCache wraps it.
	// Returns: (handle, nil) on success; (nil, error) when construction fails or ctx is done.
	BuildClient(ctx context.Context, spec domain.ClientSpec) (ClientHandle, error)

	// HealthURL returns the URL used to warm up the transport to inst.
	HealthURL(inst domain.BackendInstance) string
}

// SettingsSource is implemented by adapters that can supply auxiliary facet settings for a collection.
// Called from service.FacetFallback, one instance at a time.
//
//go:generate moq -stub -out mock/settings_source.go -pkg mock . SettingsSource
type SettingsSource interface {
	// FetchFacetSettings returns facet attributes and value counts of collection on inst.
	// Returns: (settings, nil) when the instance answered (settings may be empty); (zero, error) otherwise.
	FetchFacetSettings(ctx context.Context, inst domain.BackendInstance, collection string) (domain.FacetSettings, error)
}

// AdapterProvider resolves the adapter for an engine kind.
//
// Implemented by adapters.Set. Used by service.discoveryService, service.clientCache,
// service.FacetFallback and service.Warmup.
//
//go:generate moq -stub -out mock/adapter_provider.go -pkg mock . AdapterProvider
type AdapterProvider interface {
	// Adapter returns the adapter for engine, or an error wrapping adapters.ErrUnknownEngine.
	Adapter(engine domain.EngineKind) (EngineAdapter, error)

	// SettingsSource returns the facet settings source for engine; ok=false when the engine has none.
	SettingsSource(engine domain.EngineKind) (SettingsSource, bool)
}
