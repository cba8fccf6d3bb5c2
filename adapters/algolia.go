package adapters

import (
	"context"
	"net/http"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"
)

// algoliaAdapter implements interfaces.EngineAdapter for hosted algolia. Sort expressions are not
// supported, so no client exists while a sort is selected.
type algoliaAdapter struct {
	client *http.Client
}

// NewAlgoliaAdapter creates the algolia adapter. Panics on nil client.
func NewAlgoliaAdapter(client *http.Client) *algoliaAdapter {
	return &algoliaAdapter{client: helpers.NilPanic(client, "adapters.algolia.go: http client is required")}
}

func (a *algoliaAdapter) Engine() domain.EngineKind { return domain.EngineAlgolia }

func (a *algoliaAdapter) RequiresSchema() bool { return false }

func (a *algoliaAdapter) ListCollections(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
	return algoliaListIndexes(ctx, a.client, inst.BaseURL(), algoliaHeaders(inst.Credentials.AppID, inst.Credentials.APIKey))
}

func (a *algoliaAdapter) GetSchema(context.Context, domain.BackendInstance, string) ([]string, error) {
	return nil, nil
}

// ClientKey is (id, algolia) and only exists when no sort is selected.
func (a *algoliaAdapter) ClientKey(inst domain.BackendInstance, shaping domain.ShapingParams, _ []string) (domain.ClientKey, bool) {
	if shaping.SortBy != "" {
		return domain.ClientKey{}, false
	}
	return domain.ClientKey{InstanceID: inst.ID, Engine: domain.EngineAlgolia}, true
}

func (a *algoliaAdapter) BuildClient(ctx context.Context, spec domain.ClientSpec) (interfaces.ClientHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := spec.Instance.BaseURL()
	headers := algoliaHeaders(spec.Instance.Credentials.AppID, spec.Instance.Credentials.APIKey)
	return newHandle(spec.Instance.ID, func(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
		body := algoliaQueryRequest{Query: req.Query, HitsPerPage: req.HitsPerPage, Filters: req.Filters}
		res, err := algoliaQuery(ctx, a.client, base, req.Collection, headers, body)
		if err != nil {
			return domain.SearchResult{}, err
		}
		return res.toSearchResult(), nil
	}), nil
}

// HealthURL uses a zero-hit index listing; the algolia DSN has no health endpoint.
func (a *algoliaAdapter) HealthURL(inst domain.BackendInstance) string {
	return inst.BaseURL() + "/1/indexes?page=0&hitsPerPage=0"
}
