// Package handlers contains the HTTP API of mycomparer.
package handlers

import (
	"errors"
	"net/http"

	"mycomparer/helpers"
	"mycomparer/interfaces"
	"mycomparer/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface on top of a Comparator session.
type HTTPServer struct {
	comparator *service.Comparator
	recorder   interfaces.MetricsRecorder
	logger     log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil comparator, recorder or logger.
func NewHTTPServer(comparator *service.Comparator, recorder interfaces.MetricsRecorder, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		comparator: helpers.NilPanic(comparator, "handlers.http.go: comparator is required"),
		recorder:   helpers.NilPanic(recorder, "handlers.http.go: recorder is required"),
		logger:     log.With(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "http_server"),
	}
}

// GetCollections (GET /v1/collections) returns the discovered collections.
func (h *HTTPServer) GetCollections(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toCollectionsResponse(h.comparator.Collections()))
}

// GetCollection (GET /v1/collections/{name}) returns one collection, 404 when it was not discovered.
func (h *HTTPServer) GetCollection(ectx echo.Context, name string) error {
	c, err := h.comparator.Collection(name)
	if err != nil {
		return service.NewNotFoundError("collection not found", err)
	}
	return ectx.JSON(http.StatusOK, toCollectionInfo(c))
}

func (h *HTTPServer) GetRegions(ectx echo.Context) error {
	regions := h.comparator.Regions()
	if regions == nil {
		regions = []string{}
	}
	return ectx.JSON(http.StatusOK, RegionsResponse{Regions: regions})
}

// GetSlots (GET /v1/slots) returns the published snapshot with chart rows.
func (h *HTTPServer) GetSlots(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toSlotsResponse(h.comparator.Snapshot(), h.comparator.Chart()))
}

// PutSelection (PUT /v1/selection) applies a new selection. When a newer selection superseded this one the
// latest published snapshot is returned instead.
func (h *HTTPServer) PutSelection(ectx echo.Context) error {
	var req SelectionRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	sel, err := fromSelectionRequest(req)
	if err != nil {
		return err
	}
	if err := h.apply(ectx, sel); err != nil {
		return err
	}
	return h.GetSlots(ectx)
}

// PostDiscover (POST /v1/discover) reruns discovery, reapplies the current selection and returns the
// collections.
func (h *HTTPServer) PostDiscover(ectx echo.Context) error {
	h.comparator.Discover(ectx.Request().Context())
	if err := h.apply(ectx, h.comparator.Selection()); err != nil {
		return err
	}
	return h.GetCollections(ectx)
}

func (h *HTTPServer) apply(ectx echo.Context, sel service.Selection) error {
	_, err := h.comparator.Apply(ectx.Request().Context(), sel)
	if errors.Is(err, service.ErrStalePass) {
		level.Debug(h.logger).Log("msg", "selection superseded", "collection", sel.Collection, "region", sel.Region)
		return nil
	}
	if err != nil {
		return service.NewApplyError(err)
	}
	return nil
}

// PostSearch (POST /v1/search) runs a query on every slot.
func (h *HTTPServer) PostSearch(ectx echo.Context) error {
	if !h.comparator.Discovered() {
		return service.NewAPIError(service.ErrCodeNotReady, "discovery has not finished", nil)
	}
	var req SearchRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	results := h.comparator.Search(ectx.Request().Context(), fromSearchRequest(req))
	return ectx.JSON(http.StatusOK, toSearchResponse(results))
}

// GetSamples (GET /v1/metrics/samples) returns the recorded samples, oldest first.
func (h *HTTPServer) GetSamples(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toSamplesResponse(h.recorder.Samples(), h.recorder.LastLatency()))
}

// GetHealth (GET /health) reports 200 once the first discovery pass finished, 503 before.
func (h *HTTPServer) GetHealth(ectx echo.Context) error {
	if !h.comparator.Discovered() {
		return service.NewAPIError(service.ErrCodeNotReady, "discovery has not finished", nil)
	}
	return ectx.JSON(http.StatusOK, HealthResponse{Status: "serving"})
}
