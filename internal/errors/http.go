package errors

import (
	"context"
	"errors"
	"net/http"
)

// FromStatus maps a backend HTTP status to an AppError carrying message.
// It returns nil for 2xx and 3xx statuses.
func FromStatus(status int, message string) error {
	if status < http.StatusBadRequest {
		return nil
	}
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusNotFound:
		return NotFound(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return Validation(message)
	case http.StatusUnauthorized:
		return Unauthorized(message)
	case http.StatusForbidden:
		return Forbidden(message)
	case http.StatusConflict:
		return Conflict(message)
	case http.StatusTooManyRequests:
		return Unavailable(message)
	}
	if status >= http.StatusInternalServerError {
		return Unavailable(message)
	}
	return Validation(message)
}

// FromTransport wraps a failed round trip. Context cancellation is passed through
// untouched so callers can tell an abandoned request from a backend outage.
func FromTransport(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return Wrap(err, ErrCodeUnavailable, "member service is unreachable")
}

// HTTPStatus returns the response status for err.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
