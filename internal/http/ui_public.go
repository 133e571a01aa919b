package httpx

import (
	"context"
	"net/http"

	"github.com/memberhub/portal/internal/domain/model"
	"github.com/memberhub/portal/internal/http/validation"
)

// Welcome serves the landing page.
func (h *UIHandlers) Welcome(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{Title: "Welcome"}})
}

// Membership explains how to join.
func (h *UIHandlers) Membership(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{Title: "Membership"}})
}

// AccountPending is shown to members whose account awaits approval.
func (h *UIHandlers) AccountPending(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{Title: "Account pending"}})
}

// AccountDeactivated is shown to banned members.
func (h *UIHandlers) AccountDeactivated(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: PageMeta{Title: "Account deactivated"}})
}

// AboutUs renders the about page with its contact form.
func (h *UIHandlers) AboutUs(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "About us"}).
		With("Form", aboutUsForm(r)).
		Build()
	h.render(w, r, http.StatusOK, data)
}

// aboutUsForm prefills the sender for signed-in members.
func aboutUsForm(r *http.Request) model.MessageInput {
	var in model.MessageInput
	if u := CurrentUser(r.Context()); u != nil {
		in.Name = u.DisplayName()
		in.Email = u.Email
	}
	return in
}

// SendMessage handles the contact form.
// POST /aboutus.
func (h *UIHandlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	in := model.MessageInput{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Subject: formValue(r, "subject"),
		Body:    formValue(r, "body"),
	}
	form := map[string]any{"Form": in}

	v := validation.New().
		Validate("name", in.Name, validation.Required("Name", 100)).
		Validate("email", in.Email, validation.Email("E-mail")).
		Validate("subject", in.Subject, validation.Optional("Subject", 200)).
		Validate("body", in.Body, validation.Required("Message", 5000))
	if !v.Valid() {
		h.renderFormError(w, r, nil, v.Errors(), form)
		return
	}

	if err := h.Messages.Send(r.Context(), in); err != nil {
		h.renderFormError(w, r, err, nil, form)
		return
	}
	redirectAfterPost(w, r, withNotice("/aboutus", "message-sent"))
}

// PublicEvents lists upcoming events to everyone.
func (h *UIHandlers) PublicEvents(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Events"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			list, err := h.Events.List(ctx, backendToken(ctx), model.EventTabFuture, page)
			if err != nil {
				return err
			}
			addEventList(r, data, list, "/public_events")
			return nil
		},
	})
}
