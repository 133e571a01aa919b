package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/memberhub/portal/internal/errors"
)

const errMsgFixBelow = "Please fix the errors below."

// ErrorRenderer renders a page with the given status and data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, status int, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional when only FieldErrors are set)
	Err error
	// FieldErrors contains field-level validation errors (field name → message)
	FieldErrors map[string]string
	// Renderer renders the page again with the error attached
	Renderer ErrorRenderer
	PageMeta PageMeta
	// Data preserves form values and page state across the re-render
	Data map[string]any
	// StatusCode overrides the status derived from Err
	StatusCode int
}

// RenderError re-renders a page with a general error message and any field errors.
// Application errors that name a field are shown next to that field.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)
	generalError := processError(opts.Err, &opts.FieldErrors)

	if len(opts.FieldErrors) > 0 {
		builder.WithFieldErrors(opts.FieldErrors)
	}
	if generalError != "" {
		builder.WithError(generalError)
	} else if len(opts.FieldErrors) > 0 {
		builder.WithError(errMsgFixBelow)
	}
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	status := opts.StatusCode
	if status == 0 {
		status = DetermineErrorStatus(opts.Err, opts.FieldErrors)
	}
	opts.Renderer(opts.W, opts.R, status, builder.Build())
}

// DetermineErrorStatus picks the response status for a failed form submission.
func DetermineErrorStatus(err error, fieldErrors map[string]string) int {
	if err == nil {
		if len(fieldErrors) > 0 {
			return http.StatusUnprocessableEntity
		}
		return http.StatusOK
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case "":
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusInternalServerError
	default:
		return apperrors.HTTPStatus(err)
	}
}

// processError returns a user-facing message for err. Validation errors that name a field
// are moved into fieldErrors and the general message asks the user to fix them.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out. Please try again."
	}
	if errors.Is(err, context.Canceled) {
		return "Request was canceled."
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return "An error occurred. Please try again."
	}

	switch appErr.Code {
	case apperrors.ErrCodeValidation:
		if appErr.Field != "" && fieldErrors != nil {
			if *fieldErrors == nil {
				*fieldErrors = make(map[string]string)
			}
			(*fieldErrors)[appErr.Field] = appErr.Message
			return errMsgFixBelow
		}
		return appErr.Message
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForbidden:
		return appErr.Message
	case apperrors.ErrCodeUnauthorized:
		return "Your credentials were not accepted."
	case apperrors.ErrCodeNotFound:
		return "That item no longer exists."
	case apperrors.ErrCodeUnavailable:
		return "The member service is unavailable right now. Please try again shortly."
	default:
		return "An error occurred. Please try again."
	}
}

// inlineError returns the message shown in place of a list that failed to load.
func inlineError(err error) string {
	return processError(err, nil)
}
