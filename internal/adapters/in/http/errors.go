package http

import (
	"errors"
	"net/http"

	"ineed/internal/pkg/errs"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFromError maps application errors to HTTP status codes. Unrecognized
// errors are treated as internal so their details never leak to clients.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrOperationTimedOut):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(status int, err error) Error {
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	return Error{Code: status, Message: message}
}
