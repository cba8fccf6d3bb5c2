package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"

	"golang.org/x/sync/errgroup"
)

// meilisearchAdapter implements interfaces.EngineAdapter for meilisearch. Clients ignore sort and
// page size in their identity; the limit travels with each request.
type meilisearchAdapter struct {
	client *http.Client
}

// NewMeilisearchAdapter creates the meilisearch adapter. Panics on nil client.
func NewMeilisearchAdapter(client *http.Client) *meilisearchAdapter {
	return &meilisearchAdapter{client: helpers.NilPanic(client, "adapters.meilisearch.go: http client is required")}
}

type meilisearchIndex struct {
	UID               string `json:"uid"`
	NumberOfDocuments int64  `json:"numberOfDocuments"`
}

type meilisearchStats struct {
	NumberOfDocuments int64 `json:"numberOfDocuments"`
}

type meilisearchSearchRequest struct {
	Q      string `json:"q"`
	Limit  int    `json:"limit,omitempty"`
	Filter string `json:"filter,omitempty"`
}

type meilisearchSearchResponse struct {
	Hits               []map[string]any `json:"hits"`
	EstimatedTotalHits *int             `json:"estimatedTotalHits"`
	TotalHits          *int             `json:"totalHits"`
}

func (a *meilisearchAdapter) Engine() domain.EngineKind { return domain.EngineMeilisearch }

func (a *meilisearchAdapter) RequiresSchema() bool { return false }

func bearer(apiKey string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

// ListCollections lists GET /indexes (either {"results": [...]} or a bare array). Indexes whose
// listing omits numberOfDocuments get a concurrent /indexes/{uid}/stats call; a failed stats call
// counts as zero documents.
func (a *meilisearchAdapter) ListCollections(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
	base := inst.BaseURL()
	headers := bearer(inst.Credentials.APIKey)
	var raw json.RawMessage
	err := doJSON(ctx, a.client, http.MethodGet, base+"/indexes", headers, nil, &raw)
	if errors.Is(err, ErrUnexpectedStatus) {
		return []domain.CollectionInfo{}, nil
	}
	if err != nil {
		return nil, err
	}
	indexes, err := decodeMeilisearchIndexes(raw)
	if err != nil {
		return nil, err
	}

	counts := make([]int64, len(indexes))
	g, gctx := errgroup.WithContext(ctx)
	for i, idx := range indexes {
		if idx.NumberOfDocuments != 0 {
			counts[i] = idx.NumberOfDocuments
			continue
		}
		g.Go(func() error {
			var stats meilisearchStats
			statsURL := base + "/indexes/" + url.PathEscape(idx.UID) + "/stats"
			if err := doJSON(gctx, a.client, http.MethodGet, statsURL, headers, nil, &stats); err == nil {
				counts[i] = stats.NumberOfDocuments
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.CollectionInfo, 0, len(indexes))
	for i, idx := range indexes {
		out = append(out, domain.CollectionInfo{Name: idx.UID, DocCount: counts[i], Fields: []string{}})
	}
	return out, nil
}

func decodeMeilisearchIndexes(raw json.RawMessage) ([]meilisearchIndex, error) {
	var envelope struct {
		Results []meilisearchIndex `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		return envelope.Results, nil
	}
	var bare []meilisearchIndex
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

func (a *meilisearchAdapter) GetSchema(context.Context, domain.BackendInstance, string) ([]string, error) {
	return nil, nil
}

// ClientKey is (id, meilisearch).
func (a *meilisearchAdapter) ClientKey(inst domain.BackendInstance, _ domain.ShapingParams, _ []string) (domain.ClientKey, bool) {
	return domain.ClientKey{InstanceID: inst.ID, Engine: domain.EngineMeilisearch}, true
}

func (a *meilisearchAdapter) BuildClient(ctx context.Context, spec domain.ClientSpec) (interfaces.ClientHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := spec.Instance.BaseURL()
	headers := bearer(spec.Instance.Credentials.APIKey)
	return newHandle(spec.Instance.ID, func(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
		var raw meilisearchSearchResponse
		reqURL := base + "/indexes/" + url.PathEscape(req.Collection) + "/search"
		body := meilisearchSearchRequest{Q: req.Query, Limit: req.HitsPerPage, Filter: req.Filters}
		if err := doJSON(ctx, a.client, http.MethodPost, reqURL, headers, body, &raw); err != nil {
			return domain.SearchResult{}, err
		}
		res := domain.SearchResult{Hits: raw.Hits}
		switch {
		case raw.EstimatedTotalHits != nil:
			res.NbHits = *raw.EstimatedTotalHits
		case raw.TotalHits != nil:
			res.NbHits = *raw.TotalHits
		}
		if res.Hits == nil {
			res.Hits = []map[string]any{}
		}
		return res, nil
	}), nil
}

func (a *meilisearchAdapter) HealthURL(inst domain.BackendInstance) string {
	return inst.BaseURL() + "/health"
}
