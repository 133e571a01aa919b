package httpx

import (
	"net/http"
)

// guardRedirectEvent is handled by static/js/portal.js with location.replace.
const guardRedirectEvent = "guard:redirect"

// HTMXResponse provides a fluent API for building HTMX responses.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX creates a new HTMXResponse for fluent response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect instructs htmx to navigate to url and answers 204 No Content.
// The handler must return immediately afterwards.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Replace asks the page to replace its location with path, leaving no history entry behind.
// Nothing is swapped into the page. The handler must return immediately afterwards.
func (h *HTMXResponse) Replace(path string) {
	SetHXReswap(h.w, "none")
	SetHXTrigger(h.w, guardRedirectEvent, map[string]string{"path": path})
	h.w.WriteHeader(http.StatusOK)
}

// Trigger triggers a client-side event after swap with optional payload. Chainable.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// PushURL pushes url into the browser history for the new content. Chainable.
func (h *HTMXResponse) PushURL(url string) *HTMXResponse {
	SetHXPushURL(h.w, url)
	return h
}

// redirectAfterPost sends the browser to path after a successful form submission:
// 303 See Other for plain forms, Hx-Redirect for htmx.
func redirectAfterPost(w http.ResponseWriter, r *http.Request, path string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(path)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
