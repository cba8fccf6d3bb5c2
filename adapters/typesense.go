package adapters

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"
)

const headerTypesenseAPIKey = "X-TYPESENSE-API-KEY"

// typesenseAdapter implements interfaces.EngineAdapter for typesense. It is the schema-driven
// engine: a client needs the collection's queryable string fields (query_by), so its key embeds
// sort, page size and the field list.
type typesenseAdapter struct {
	client *http.Client
}

// NewTypesenseAdapter creates the typesense adapter. Panics on nil client.
func NewTypesenseAdapter(client *http.Client) *typesenseAdapter {
	return &typesenseAdapter{client: helpers.NilPanic(client, "adapters.typesense.go: http client is required")}
}

type typesenseField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type typesenseCollection struct {
	Name         string           `json:"name"`
	NumDocuments int64            `json:"num_documents"`
	Fields       []typesenseField `json:"fields"`
}

type typesenseSearchResponse struct {
	Found int `json:"found"`
	Hits  []struct {
		Document map[string]any `json:"document"`
	} `json:"hits"`
}

func (a *typesenseAdapter) Engine() domain.EngineKind { return domain.EngineTypesense }

func (a *typesenseAdapter) RequiresSchema() bool { return true }

// baseURL defaults to https and appends the configured port when the address has none.
func (a *typesenseAdapter) baseURL(inst domain.BackendInstance) string {
	base := inst.BaseURL()
	if inst.Port == 0 {
		return base
	}
	u, err := url.Parse(base)
	if err != nil || u.Port() != "" {
		return base
	}
	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(inst.Port))
	return u.String()
}

func typesenseHeaders(inst domain.BackendInstance) map[string]string {
	return map[string]string{headerTypesenseAPIKey: inst.Credentials.APIKey}
}

// ListCollections lists GET /collections; string-typed fields are reported directly.
func (a *typesenseAdapter) ListCollections(ctx context.Context, inst domain.BackendInstance) ([]domain.CollectionInfo, error) {
	var raw []typesenseCollection
	err := doJSON(ctx, a.client, http.MethodGet, a.baseURL(inst)+"/collections", typesenseHeaders(inst), nil, &raw)
	if errors.Is(err, ErrUnexpectedStatus) {
		return []domain.CollectionInfo{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.CollectionInfo, 0, len(raw))
	for _, col := range raw {
		fields := []string{}
		for _, f := range col.Fields {
			if f.Type == "string" {
				fields = append(fields, f.Name)
			}
		}
		out = append(out, domain.CollectionInfo{Name: col.Name, DocCount: col.NumDocuments, Fields: fields})
	}
	return out, nil
}

// GetSchema reads GET /collections/{c} and returns the string and string[] fields except objectID.
func (a *typesenseAdapter) GetSchema(ctx context.Context, inst domain.BackendInstance, collection string) ([]string, error) {
	var schema typesenseCollection
	reqURL := a.baseURL(inst) + "/collections/" + url.PathEscape(collection)
	if err := doJSON(ctx, a.client, http.MethodGet, reqURL, typesenseHeaders(inst), nil, &schema); err != nil {
		return nil, err
	}
	fields := []string{}
	for _, f := range schema.Fields {
		if (f.Type == "string" || f.Type == "string[]") && f.Name != "objectID" {
			fields = append(fields, f.Name)
		}
	}
	return fields, nil
}

// ClientKey is (id, typesense, sort:pageSize:fields). No key without queryable fields.
func (a *typesenseAdapter) ClientKey(inst domain.BackendInstance, shaping domain.ShapingParams, fields []string) (domain.ClientKey, bool) {
	if len(fields) == 0 {
		return domain.ClientKey{}, false
	}
	shape := shaping.SortBy + ":" + strconv.Itoa(shaping.PageSize) + ":" + strings.Join(fields, ",")
	return domain.ClientKey{InstanceID: inst.ID, Engine: domain.EngineTypesense, Shaping: shape}, true
}

// BuildClient bakes query_by, sort_by and per_page into the handle.
func (a *typesenseAdapter) BuildClient(ctx context.Context, spec domain.ClientSpec) (interfaces.ClientHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(spec.QueryFields) == 0 {
		return nil, errors.New("typesense client requires query fields")
	}
	base := a.baseURL(spec.Instance)
	headers := typesenseHeaders(spec.Instance)
	queryBy := strings.Join(spec.QueryFields, ",")
	sortBy := spec.Shaping.SortBy
	perPage := spec.Shaping.PageSize
	return newHandle(spec.Instance.ID, func(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
		params := url.Values{}
		q := req.Query
		if q == "" {
			q = "*"
		}
		params.Set("q", q)
		params.Set("query_by", queryBy)
		if sortBy != "" {
			params.Set("sort_by", sortBy)
		}
		if perPage > 0 {
			params.Set("per_page", strconv.Itoa(perPage))
		}
		if req.Filters != "" {
			params.Set("filter_by", req.Filters)
		}
		reqURL := base + "/collections/" + url.PathEscape(req.Collection) + "/documents/search?" + params.Encode()
		var raw typesenseSearchResponse
		if err := doJSON(ctx, a.client, http.MethodGet, reqURL, headers, nil, &raw); err != nil {
			return domain.SearchResult{}, err
		}
		hits := make([]map[string]any, 0, len(raw.Hits))
		for _, h := range raw.Hits {
			hits = append(hits, h.Document)
		}
		return domain.SearchResult{Hits: hits, NbHits: raw.Found}, nil
	}), nil
}

func (a *typesenseAdapter) HealthURL(inst domain.BackendInstance) string {
	return a.baseURL(inst) + "/health"
}
