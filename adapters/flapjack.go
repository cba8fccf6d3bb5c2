package adapters

import (
	"context"
	"net/http"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"
)

// Flapjack instances accept any credentials; these are used when none are configured.
const (
	flapjackDefaultAppID  = "test-app"
	flapjackDefaultAPIKey = "test-key"
)

// flapjackAdapter implements interfaces.EngineAdapter and interfaces.SettingsSource for flapjack.
// Clients are keyed by sort only: page size travels with each request.
type flapjackAdapter struct {
	client *http.Client
}

// NewFlapjackAdapter creates the flapjack adapter. Panics on nil client.
func NewFlapjackAdapter(client *http.Client) *flapjackAdapter {
	return &flapjackAdapter{client: helpers.NilPanic(client, "adapters.flapjack.go: http client is required")}
}

func (a *flapjackAdapter) Engine() domain.EngineKind { return domain.EngineFlapjack }

func (a *flapjackAdapter) RequiresSchema() bool { return false }

func (a *flapjackAdapter) headers(inst domain.BackendInstance) map[string]string {
	appID, apiKey := inst.Credentials.AppID, inst.Credentials.APIKey
	if appID == "" {
		appID = flapjackDefaultAppID
	}
	if apiKey == "" {
		apiKey = flapjackDefaultAPIKey
	}
	return algoliaHeaders(appID, apiKey)
}

// ListCollections lists GET /1/indexes; "entries" is the document count, fields are not reported.
func (a *flapjackAdapter) ListCollections(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
	return algoliaListIndexes(ctx, a.client, inst.BaseURL(), a.headers(inst))
}

func (a *flapjackAdapter) GetSchema(context.Context, domain.BackendInstance, string) ([]string, error) {
	return nil, nil
}

// ClientKey is (id, flapjack, sort).
func (a *flapjackAdapter) ClientKey(inst domain.BackendInstance, shaping domain.ShapingParams, _ []string) (domain.ClientKey, bool) {
	return domain.ClientKey{InstanceID: inst.ID, Engine: domain.EngineFlapjack, Shaping: shaping.SortBy}, true
}

// BuildClient returns a handle that injects the sort expression into every query body.
func (a *flapjackAdapter) BuildClient(ctx context.Context, spec domain.ClientSpec) (interfaces.ClientHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := spec.Instance.BaseURL()
	headers := a.headers(spec.Instance)
	sortBy := spec.Shaping.SortBy
	return newHandle(spec.Instance.ID, func(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
		body := algoliaQueryRequest{Query: req.Query, HitsPerPage: req.HitsPerPage, Filters: req.Filters}
		if sortBy != "" {
			body.Sort = []string{sortBy}
		}
		res, err := algoliaQuery(ctx, a.client, base, req.Collection, headers, body)
		if err != nil {
			return domain.SearchResult{}, err
		}
		return res.toSearchResult(), nil
	}), nil
}

// FetchFacetSettings reads /1/indexes/{c}/settings and the facet value counts.
func (a *flapjackAdapter) FetchFacetSettings(ctx context.Context, inst domain.BackendInstance, collection string) (domain.FacetSettings, error) {
	settings, err := algoliaFacetSettings(ctx, a.client, inst.BaseURL(), collection, a.headers(inst))
	if err != nil {
		return domain.FacetSettings{}, err
	}
	settings.SourceInstanceID = inst.ID
	return settings, nil
}

func (a *flapjackAdapter) HealthURL(inst domain.BackendInstance) string {
	return inst.BaseURL() + "/health"
}
