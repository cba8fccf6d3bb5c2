package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler installs the JSON error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	return map[string]int{
		ErrCodeBadParameter: http.StatusBadRequest,
		ErrCodeNotFound:     http.StatusNotFound,
		ErrCodeSuperseded:   http.StatusConflict,
		ErrCodeNotReady:     http.StatusServiceUnavailable,
		ErrCodeInternal:     http.StatusInternalServerError,
	}
}

// HTTPErrorHandler renders handler errors as ErrResponse.
type HTTPErrorHandler struct {
	statusByCode map[string]int
	logger       log.Logger
}

func NewHTTPErrorHandler(statusByCode map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		statusByCode: statusByCode,
		logger:       log.With(logger, "component", "http_error"),
	}
}

func (h *HTTPErrorHandler) statusCode(code string) int {
	if status, ok := h.statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Handler handles errors returned by echo handlers. Echo errors caused by request validation become
// bad_parameter; everything without an APIError becomes internal_server_error.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := ToAPIError(err)
	if apiErr == nil {
		apiErr = NewAPIError(ErrCodeInternal, "an internal server error has occurred", err)
	}

	var statusCode int
	var he *echo.HTTPError
	if errors.As(err, &he) && ToAPIError(err) == nil {
		code := ErrCodeInternal
		switch {
		case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
			code = ErrCodeNotFound
		case he.Internal != nil:
			if inner, ok := he.Internal.(*echo.HTTPError); ok {
				he = inner
			}
			var requestErr *openapi3filter.RequestError
			if errors.As(he.Internal, &requestErr) {
				code = ErrCodeBadParameter
			}
		}
		msg, _ := he.Message.(string)
		apiErr = NewAPIError(code, msg, err)
		statusCode = he.Code
	} else {
		statusCode = h.statusCode(apiErr.Code)
	}

	if statusCode >= http.StatusInternalServerError {
		level.Error(h.logger).Log("msg", "HTTP request error", "path", c.Path(), "err", err)
	} else {
		level.Debug(h.logger).Log("msg", "HTTP request rejected", "path", c.Path(), "err", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: apiErr})
}

// ErrResponse from server.
type ErrResponse struct {
	Error *APIError `json:"error,omitempty"`
}
