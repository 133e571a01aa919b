package httpx

import (
	"net/http"
	"strings"

	apperrors "github.com/memberhub/portal/internal/errors"
)

// NotFound is the terminal page for unmatched paths. It never redirects.
// Browsers get the HTML page in the public layout; other clients get JSON.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	labelRoute(r.Context(), PageNotFound)
	if !IsBrowserRequest(r) || h.T == nil {
		WriteAppError(w, apperrors.NotFound("not found"))
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Page not found", CurrentPage: PageNotFound}).
		With("Layout", "public").
		Build()
	h.render(w, r, http.StatusNotFound, data)
}

// IsBrowserRequest reports whether r came from a browser rather than an API client:
// htmx requests, requests without Accept, and requests that accept text/html.
func IsBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}
