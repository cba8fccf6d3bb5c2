package handlers

import (
	"github.com/labstack/echo/v4"
)

// ServerInterface lists the operations described by openapi.yaml.
type ServerInterface interface {
	// (GET /v1/collections)
	GetCollections(ctx echo.Context) error
	// (GET /v1/collections/{name})
	GetCollection(ctx echo.Context, name string) error
	// (GET /v1/regions)
	GetRegions(ctx echo.Context) error
	// (GET /v1/slots)
	GetSlots(ctx echo.Context) error
	// (PUT /v1/selection)
	PutSelection(ctx echo.Context) error
	// (POST /v1/discover)
	PostDiscover(ctx echo.Context) error
	// (POST /v1/search)
	PostSearch(ctx echo.Context) error
	// (GET /v1/metrics/samples)
	GetSamples(ctx echo.Context) error
	// (GET /health)
	GetHealth(ctx echo.Context) error
}

// RegisterHandlers adds every ServerInterface route to router.
func RegisterHandlers(router *echo.Echo, si ServerInterface) {
	router.GET("/v1/collections", si.GetCollections)
	router.GET("/v1/collections/:name", func(c echo.Context) error {
		return si.GetCollection(c, c.Param("name"))
	})
	router.GET("/v1/regions", si.GetRegions)
	router.GET("/v1/slots", si.GetSlots)
	router.PUT("/v1/selection", si.PutSelection)
	router.POST("/v1/discover", si.PostDiscover)
	router.POST("/v1/search", si.PostSearch)
	router.GET("/v1/metrics/samples", si.GetSamples)
	router.GET("/health", si.GetHealth)
}

type CollectionInfo struct {
	Name      string   `json:"name"`
	DocCount  int64    `json:"doc_count"`
	Engines   []string `json:"engines"`
	LocalOnly bool     `json:"local_only"`
}

type CollectionsResponse struct {
	Collections []CollectionInfo `json:"collections"`
}

type RegionsResponse struct {
	Regions []string `json:"regions"`
}

type SelectionRequest struct {
	Collection    string `json:"collection"`
	Region        string `json:"region"`
	DevMode       bool   `json:"dev_mode"`
	SortBy        string `json:"sort_by"`
	OneResultOnly bool   `json:"one_result_only"`
	PageSecure    bool   `json:"page_secure"`
	Debounced     bool   `json:"debounced"`
}

// SlotInfo is one resolved slot merged with its chart row. ClientID is empty when no client serves it.
type SlotInfo struct {
	SlotID     string `json:"slot_id"`
	Label      string `json:"label"`
	Engine     string `json:"engine"`
	InstanceID string `json:"instance_id,omitempty"`
	Region     string `json:"region,omitempty"`
	Note       string `json:"note,omitempty"`
	Active     bool   `json:"active"`
	Reason     string `json:"reason,omitempty"`
	LatencyMs  *int64 `json:"latency_ms"`
	ClientID   string `json:"client_id,omitempty"`
}

type FacetsInfo struct {
	SourceInstanceID string                    `json:"source_instance_id,omitempty"`
	Attributes       []string                  `json:"attributes"`
	Values           map[string]map[string]int `json:"values"`
}

type SlotsResponse struct {
	Pass      uint64           `json:"pass"`
	Selection SelectionRequest `json:"selection"`
	Slots     []SlotInfo       `json:"slots"`
	Facets    FacetsInfo       `json:"facets"`
}

type SearchRequest struct {
	Query          string              `json:"query"`
	CustomFilter   string              `json:"custom_filter"`
	SelectedFacets map[string][]string `json:"selected_facets"`
}

type SlotResultInfo struct {
	SlotID     string           `json:"slot_id"`
	Engine     string           `json:"engine"`
	InstanceID string           `json:"instance_id,omitempty"`
	Hits       []map[string]any `json:"hits"`
	NbHits     int              `json:"nb_hits"`
	Reason     string           `json:"reason,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type SearchResponse struct {
	Results []SlotResultInfo `json:"results"`
}

type SampleInfo struct {
	InstanceID string `json:"instance_id"`
	LatencyMs  int64  `json:"latency_ms"`
	HitCount   int    `json:"hit_count"`
	OffsetMs   int64  `json:"offset_ms"`
	Query      string `json:"query"`
	Collection string `json:"collection"`
	Debounced  bool   `json:"debounced"`
}

type SamplesResponse struct {
	Samples     []SampleInfo     `json:"samples"`
	LastLatency map[string]int64 `json:"last_latency_ms"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
