package handlers

import (
	"context"

	"mycomparer/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter assembles the echo instance: JSON error handler, OpenAPI request validation, API routes and
// the prometheus endpoint.
//
// Called from cmd/main.
func NewRouter(ctx context.Context, si ServerInterface, gatherer prometheus.Gatherer, logger log.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, logger)
	e.Use(validator)
	RegisterHandlers(e, si)
	RegisterMetrics(e, gatherer)
	return e, nil
}
