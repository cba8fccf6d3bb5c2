package domain

// EngineKind is the search technology a backend instance runs. Each slot is bound to one kind.
type EngineKind string

const (
	EngineFlapjack    EngineKind = "flapjack"
	EngineAlgolia     EngineKind = "algolia"
	EngineMeilisearch EngineKind = "meilisearch"
	EngineTypesense   EngineKind = "typesense"
)

// EngineKinds lists every supported engine kind in a stable order.
var EngineKinds = []EngineKind{EngineFlapjack, EngineAlgolia, EngineMeilisearch, EngineTypesense}

// Valid reports whether k is one of EngineKinds.
func (k EngineKind) Valid() bool {
	for _, known := range EngineKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Short returns the two-letter label used in collection listings (fj, al, ms, ts).
func (k EngineKind) Short() string {
	switch k {
	case EngineFlapjack:
		return "fj"
	case EngineAlgolia:
		return "al"
	case EngineMeilisearch:
		return "ms"
	case EngineTypesense:
		return "ts"
	}
	return string(k)
}
