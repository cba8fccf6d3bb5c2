package service

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeInternal means that an internal server error has occurred.
	ErrCodeInternal = "internal_server_error"
	// ErrCodeNotFound means that the named collection, slot or instance does not exist.
	ErrCodeNotFound = "entity_not_found"
	// ErrCodeBadParameter means that a provided parameter does not match the declared one.
	ErrCodeBadParameter = "bad_parameter"
	// ErrCodeSuperseded means that a newer selection replaced the one being applied.
	ErrCodeSuperseded = "superseded"
	// ErrCodeNotReady means that no discovery pass has finished yet.
	ErrCodeNotReady = "not_ready"
)

// APIError is an error reported to HTTP clients of mycomparer.
type APIError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

func NewAPIError(code string, message string, inner error) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// NewBadParameterError wraps inner as bad_parameter, unless inner already carries an APIError.
func NewBadParameterError(message string, inner error) *APIError {
	if apiErr := ToAPIError(inner); apiErr != nil {
		return apiErr
	}
	return NewAPIError(ErrCodeBadParameter, message, inner)
}

func NewNotFoundError(message string, inner error) *APIError {
	if apiErr := ToAPIError(inner); apiErr != nil {
		return apiErr
	}
	return NewAPIError(ErrCodeNotFound, message, inner)
}

// NewApplyError classifies an error returned by Comparator.Apply.
func NewApplyError(err error) *APIError {
	if apiErr := ToAPIError(err); apiErr != nil {
		return apiErr
	}
	if errors.Is(err, ErrStalePass) {
		return NewAPIError(ErrCodeSuperseded, "selection was replaced by a newer one", err)
	}
	return NewAPIError(ErrCodeInternal, "failed to apply selection", err)
}

func (e APIError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

func (e APIError) Unwrap() error {
	return e.Inner
}

// ToAPIError returns the APIError in err's chain, or nil.
func ToAPIError(err error) *APIError {
	var e *APIError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsAPIError reports whether err carries an APIError with code.
func IsAPIError(err error, code string) bool {
	if apiErr := ToAPIError(err); apiErr != nil {
		return apiErr.Code == code
	}
	return false
}
