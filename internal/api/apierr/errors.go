package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/follgramer/DiamantesProPlayers/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes returned on the wire. Clients branch on these: bad input
// must be corrected, aborted/internal calls are safe to retry.
const (
	CodeInvalidArgument = "invalid-argument"
	CodeNotFound        = "not-found"
	CodeUnauthorized    = "unauthorized"
	CodeAborted         = "aborted"
	CodeInternal        = "internal"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidPlayerID),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrZeroAmount),
		errors.Is(err, model.ErrAmountTooLarge):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidArgument, err.Error()}}

	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Account not found"}}

	case errors.Is(err, model.ErrTxAborted):
		return &httpError{http.StatusConflict, APIError{CodeAborted, "Transaction could not commit, try again"}}

	default:
		// Never leak internal detail; callers log the cause server-side
		return &httpError{http.StatusInternalServerError, APIError{CodeInternal, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidArgument, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Valid API key required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternal, "Internal server error"}}
}
