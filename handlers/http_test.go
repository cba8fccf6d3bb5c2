package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mycomparer/domain"
	"mycomparer/helpers"
	"mycomparer/interfaces"
	"mycomparer/interfaces/mock"
	"mycomparer/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegistry = domain.Registry{
	Instances: []domain.BackendInstance{
		{ID: "fj-1", Engine: domain.EngineFlapjack, Region: "us", Address: "https://fj1.example", Enabled: true},
		{ID: "ms-1", Engine: domain.EngineMeilisearch, Region: "us", Address: "http://ms1.example", Enabled: true},
	},
	Slots: []domain.ServiceSlot{
		{SlotID: "flapjack", Engine: domain.EngineFlapjack, Label: "Flapjack"},
		{SlotID: "meilisearch", Engine: domain.EngineMeilisearch, Label: "Meilisearch"},
	},
}

func testAdapter(engine domain.EngineKind) *mock.EngineAdapterMock {
	return &mock.EngineAdapterMock{
		EngineFunc: func() domain.EngineKind { return engine },
		ClientKeyFunc: func(inst domain.BackendInstance, shaping domain.ShapingParams, fields []string) (domain.ClientKey, bool) {
			return domain.ClientKey{InstanceID: inst.ID, Engine: engine, Shaping: shaping.SortBy}, true
		},
		BuildClientFunc: func(ctx context.Context, spec domain.ClientSpec) (interfaces.ClientHandle, error) {
			return &mock.ClientHandleMock{
				IDFunc:         func() string { return "handle-" + spec.Instance.ID },
				InstanceIDFunc: func() string { return spec.Instance.ID },
				SearchFunc: func(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
					return domain.SearchResult{Hits: []map[string]any{{"objectID": "1", "filters": req.Filters}}, NbHits: 7}, nil
				},
			}, nil
		},
	}
}

type testServer struct {
	echo       *echo.Echo
	comparator *service.Comparator
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	adapters := map[domain.EngineKind]interfaces.EngineAdapter{
		domain.EngineFlapjack:    testAdapter(domain.EngineFlapjack),
		domain.EngineMeilisearch: testAdapter(domain.EngineMeilisearch),
	}
	provider := &mock.AdapterProviderMock{
		AdapterFunc: func(engine domain.EngineKind) (interfaces.EngineAdapter, error) {
			return adapters[engine], nil
		},
	}
	discoverer := &mock.DiscovererMock{
		DiscoverFunc: func(ctx context.Context) domain.CollectionIndex {
			idx := domain.CollectionIndex{}
			idx.Add(testRegistry.Instances[0], domain.CollectionInfo{Name: "bestbuy", DocCount: 120})
			idx.Add(testRegistry.Instances[1], domain.CollectionInfo{Name: "bestbuy", DocCount: 80})
			return idx
		},
	}
	logger := log.NewNopLogger()
	clock := service.NewTimeProvider(helpers.TestClock(0))
	reg := prometheus.NewRegistry()
	recorder, err := service.NewMetricsRecorder(clock, reg)
	require.NoError(t, err)
	cache := service.NewClientCache(provider, recorder, clock, 0, logger)
	comparator := service.NewComparator(testRegistry, discoverer, cache, service.NewFacetFallback(provider, logger), recorder,
		service.Selection{Region: "us"}, logger)
	t.Cleanup(func() { _ = comparator.Close() })

	e, err := NewRouter(context.Background(), NewHTTPServer(comparator, recorder, logger), reg, logger)
	require.NoError(t, err)
	return testServer{echo: e, comparator: comparator}
}

func (s testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s testServer) ready(t *testing.T) {
	t.Helper()
	s.comparator.Discover(context.Background())
	_, err := s.comparator.Apply(context.Background(), s.comparator.Selection())
	require.NoError(t, err)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[service.ErrResponse](t, rec)
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestNewHTTPServer_Panics(t *testing.T) {
	t.Run("comparator_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "handlers.http.go: comparator is required", func() {
			NewHTTPServer(nil, &mock.MetricsRecorderMock{}, log.NewNopLogger())
		})
	})
}

func TestHTTPServer_GetHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, service.ErrCodeNotReady, errorCode(t, rec))

	s.ready(t)
	rec = s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "serving", decode[HealthResponse](t, rec).Status)
}

func TestHTTPServer_GetCollections(t *testing.T) {
	s := newTestServer(t)
	s.ready(t)

	rec := s.do(http.MethodGet, "/v1/collections", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[CollectionsResponse](t, rec)
	assert.Equal(t, []CollectionInfo{{Name: "bestbuy", DocCount: 120, Engines: []string{"flapjack", "meilisearch"}}}, got.Collections)
}

func TestHTTPServer_GetCollection(t *testing.T) {
	s := newTestServer(t)
	s.ready(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/v1/collections/bestbuy", http.StatusOK},
		{"missing", "/v1/collections/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNotFound {
				assert.Equal(t, service.ErrCodeNotFound, errorCode(t, rec))
			}
		})
	}
}

func TestHTTPServer_GetRegions(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/v1/regions", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"us"}, decode[RegionsResponse](t, rec).Regions)
}

func TestHTTPServer_PutSelection(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"ok", `{"region":"us","page_secure":true}`, http.StatusOK, ""},
		{"missing_region", `{"collection":"bestbuy"}`, http.StatusBadRequest, service.ErrCodeBadParameter},
		{"unknown_field", `{"region":"us","colour":"red"}`, http.StatusBadRequest, service.ErrCodeBadParameter},
		{"wrong_type", `{"region":"us","dev_mode":"yes"}`, http.StatusBadRequest, service.ErrCodeBadParameter},
		{"blank_region", `{"region":"  "}`, http.StatusBadRequest, service.ErrCodeBadParameter},
		{"invalid_json", `{invalid`, http.StatusBadRequest, service.ErrCodeBadParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.ready(t)

			rec := s.do(http.MethodPut, "/v1/selection", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}
			got := decode[SlotsResponse](t, rec)
			assert.Equal(t, uint64(2), got.Pass)
			assert.Equal(t, "bestbuy", got.Selection.Collection)
			assert.True(t, got.Selection.PageSecure)
			require.Len(t, got.Slots, 2)
			assert.True(t, got.Slots[0].Active)
			assert.Equal(t, "handle-fj-1", got.Slots[0].ClientID)
			assert.False(t, got.Slots[1].Active)
			assert.Equal(t, domain.ReasonMixedContent, got.Slots[1].Reason)
			assert.Empty(t, got.Slots[1].ClientID)
		})
	}
}

func TestHTTPServer_GetSlots(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/v1/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[SlotsResponse](t, rec).Slots)

	s.ready(t)
	rec = s.do(http.MethodGet, "/v1/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[SlotsResponse](t, rec)
	require.Len(t, got.Slots, 2)
	assert.Equal(t, "fj-1", got.Slots[0].InstanceID)
	assert.Nil(t, got.Slots[0].LatencyMs)
	assert.Equal(t, []string{}, got.Facets.Attributes)
}

func TestHTTPServer_PostDiscover(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/v1/discover", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[CollectionsResponse](t, rec).Collections, 1)
	assert.True(t, s.comparator.Discovered())
	assert.Equal(t, uint64(1), s.comparator.Snapshot().Pass)
	assert.Equal(t, "bestbuy", s.comparator.Selection().Collection)
}

func TestHTTPServer_PostSearch(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/v1/search", `{"query":"tv"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.ready(t)
	rec = s.do(http.MethodPost, "/v1/search", `{"query":"tv","selected_facets":{"brand":["acme",""]}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[SearchResponse](t, rec)
	require.Len(t, got.Results, 2)
	assert.Equal(t, 7, got.Results[0].NbHits)
	assert.Equal(t, `(brand:"acme")`, got.Results[0].Hits[0]["filters"])
	assert.Empty(t, got.Results[0].Error)
	assert.Equal(t, 7, got.Results[1].NbHits)
	assert.Equal(t, `(brand = "acme")`, got.Results[1].Hits[0]["filters"])

	rec = s.do(http.MethodGet, "/v1/metrics/samples", "")
	require.Equal(t, http.StatusOK, rec.Code)
	samples := decode[SamplesResponse](t, rec)
	require.Len(t, samples.Samples, 2)
	assert.Equal(t, "tv", samples.Samples[0].Query)
	assert.Equal(t, "bestbuy", samples.Samples[0].Collection)
	assert.Contains(t, samples.LastLatency, "fj-1")
	assert.Contains(t, samples.LastLatency, "ms-1")

	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mycomparer_query_completed_total{instance="fj-1"} 1`)
}

func TestHTTPServer_PostSearch_Invalid(t *testing.T) {
	s := newTestServer(t)
	s.ready(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing_query", `{"custom_filter":"brand:acme"}`},
		{"facets_not_lists", `{"query":"tv","selected_facets":{"brand":"acme"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/v1/search", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, service.ErrCodeBadParameter, errorCode(t, rec))
		})
	}
}

func TestHTTPServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/v1/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.ErrCodeNotFound, errorCode(t, rec))
}
