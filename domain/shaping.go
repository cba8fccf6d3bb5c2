package domain

// ShapingParams is the query configuration that determines client identity. Which fields
// matter depends on the engine kind (see the adapters' ClientKey).
type ShapingParams struct {
	Collection string
	SortBy     string
	PageSize   int
}

// ClientKey is the composite identity of a cached client handle. Shaping holds only the
// parameters relevant to Engine, already flattened by the engine's adapter.
type ClientKey struct {
	InstanceID string
	Engine     EngineKind
	Shaping    string
}

// String renders the key as "instance:engine:shaping" for logs and diagnostics.
func (k ClientKey) String() string {
	return k.InstanceID + ":" + string(k.Engine) + ":" + k.Shaping
}

// ClientSpec is everything an adapter needs to build a client handle for one key.
// QueryFields is only set for schema-driven engines.
type ClientSpec struct {
	Key         ClientKey
	Instance    BackendInstance
	Shaping     ShapingParams
	QueryFields []string
}

// PageSizeFor returns SingleResultPageSize when oneResultOnly is on, else DefaultPageSize.
func PageSizeFor(oneResultOnly bool) int {
	if oneResultOnly {
		return SingleResultPageSize
	}
	return DefaultPageSize
}
