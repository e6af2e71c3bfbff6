package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Validation is returned when input fails a local structural or domain check.
// It never corresponds to a network round trip.
type Validation struct {
	Message string
}

func (e *Validation) Error() string { return e.Message }

// NewValidation builds a Validation error with a formatted message.
func NewValidation(format string, args ...any) *Validation {
	return &Validation{Message: fmt.Sprintf(format, args...)}
}

// Upstream is a non-2xx response from the shipping provider. Data carries the
// raw response body so callers can forward it unchanged.
type Upstream struct {
	Status  int
	Message string
	Data    json.RawMessage
}

func (e *Upstream) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

// Transport is a failure below the HTTP layer (dial, timeout, body decode).
// Its status is fixed at 500 and it carries no response body.
type Transport struct {
	Message string
}

func (e *Transport) Error() string { return e.Message }

// StatusOf maps an error to the HTTP status the router should respond with.
func StatusOf(err error) int {
	var (
		val *Validation
		up  *Upstream
	)
	switch {
	case errors.As(err, &val):
		return http.StatusBadRequest
	case errors.As(err, &up):
		return up.Status
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf extracts the human-readable message for the uniform error response.
func MessageOf(err error) string {
	var (
		val *Validation
		up  *Upstream
		tr  *Transport
	)
	switch {
	case errors.As(err, &val):
		return val.Message
	case errors.As(err, &up):
		return up.Message
	case errors.As(err, &tr):
		return tr.Message
	default:
		return err.Error()
	}
}
