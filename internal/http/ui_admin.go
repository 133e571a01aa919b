package httpx

import (
	"context"
	"net/http"
	"time"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/http/uiutil"
	"github.com/memberhub/portal/internal/http/validation"
)

// AdminOverview shows headline counts.
func (h *UIHandlers) AdminOverview(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Admin"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			o, err := h.Admin.Overview(ctx, backendToken(ctx))
			if err != nil {
				return err
			}
			data["Overview"] = o
			return nil
		},
	})
}

// --- Permissions ---

// AdminPermissions lists pending and current members.
func (h *UIHandlers) AdminPermissions(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta:  PageMeta{Title: "Permissions"},
		Fetch: h.fetchPermissions,
	})
}

func (h *UIHandlers) fetchPermissions(ctx context.Context, data map[string]any) error {
	view, err := h.Members.Permissions(ctx, backendToken(ctx))
	if err != nil {
		return err
	}
	data["Pending"] = view.Pending
	data["Current"] = view.Current
	data["Roles"] = domainauth.Roles()
	return nil
}

// ApproveMember admits a pending member.
// POST /admin/permissions/approve.
func (h *UIHandlers) ApproveMember(w http.ResponseWriter, r *http.Request) {
	h.reviewMember(w, r, h.Members.Approve)
}

// RejectMember refuses a pending member.
// POST /admin/permissions/reject.
func (h *UIHandlers) RejectMember(w http.ResponseWriter, r *http.Request) {
	h.reviewMember(w, r, h.Members.Reject)
}

type reviewFunc func(ctx context.Context, token string, actor domainauth.User, userID string) error

func (h *UIHandlers) reviewMember(w http.ResponseWriter, r *http.Request, review reviewFunc) {
	u, ok := actor(r.Context())
	if !ok {
		h.NotFound(w, r)
		return
	}
	if err := review(r.Context(), backendToken(r.Context()), u, formValue(r, "user_id")); err != nil {
		h.permissionsError(w, r, err)
		return
	}
	redirectAfterPost(w, r, withNotice("/admin/permissions", "saved"))
}

// ChangeRole moves a current member to another role.
// POST /admin/permissions/role.
func (h *UIHandlers) ChangeRole(w http.ResponseWriter, r *http.Request) {
	u, ok := actor(r.Context())
	if !ok {
		h.NotFound(w, r)
		return
	}
	role, err := domainauth.ParseRole(formValue(r, "role"))
	if err != nil {
		h.permissionsError(w, r, &apperrors.AppError{
			Code:    apperrors.ErrCodeValidation,
			Message: "choose a valid role",
			Cause:   err,
		})
		return
	}
	if err := h.Members.ChangeRole(r.Context(), backendToken(r.Context()), u, formValue(r, "user_id"), role); err != nil {
		h.permissionsError(w, r, err)
		return
	}
	redirectAfterPost(w, r, withNotice("/admin/permissions", "saved"))
}

// permissionsError re-renders the console with err shown above the tables.
func (h *UIHandlers) permissionsError(w http.ResponseWriter, r *http.Request, err error) {
	data := map[string]any{}
	if fetchErr := h.fetchPermissions(r.Context(), data); fetchErr != nil {
		h.logger().WarnContext(r.Context(), "reload permissions failed", "error", fetchErr)
	}
	if appErr := asFieldless(err); appErr != nil {
		err = appErr
	}
	h.renderFormError(w, r, err, nil, data)
}

// asFieldless drops the field from validation errors; the console has one form per row
// so the message is shown above the tables instead.
func asFieldless(err error) error {
	field := apperrors.GetField(err)
	if field == "" {
		return nil
	}
	return &apperrors.AppError{
		Code:    apperrors.GetCode(err),
		Message: inlineError(err),
		Cause:   err,
	}
}

// --- Events ---

// eventForm holds event form values as typed, so invalid input is echoed back unchanged.
type eventForm struct {
	ID          string
	Mode        FormMode
	Title       string
	Description string
	Location    string
	StartDate   string
	EndDate     string
	ImageURL    string
}

func (h *UIHandlers) eventFormFrom(e *model.Event) eventForm {
	return eventForm{
		ID:          e.ID,
		Mode:        FormModeEdit,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   uiutil.FormatDateTimeLocal(e.StartDate, h.Location),
		EndDate:     uiutil.FormatDateTimeLocal(e.EndDate, h.Location),
		ImageURL:    e.ImageURL,
	}
}

func parseEventForm(r *http.Request, mode FormMode) eventForm {
	return eventForm{
		ID:          r.PathValue("eventId"),
		Mode:        mode,
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Location:    formValue(r, "location"),
		StartDate:   formValue(r, "start_date"),
		EndDate:     formValue(r, "end_date"),
		ImageURL:    formValue(r, "image_url"),
	}
}

// input validates the form and converts it for the service.
func (f eventForm) input(loc *time.Location) (model.EventInput, map[string]string) {
	v := validation.New().
		Validate("title", f.Title, validation.Required("Title", 200)).
		Validate("description", f.Description, validation.Optional("Description", 5000)).
		Validate("location", f.Location, validation.Optional("Location", 200)).
		Validate("start_date", f.StartDate, validation.DateTime("Start", uiutil.DateTimeLocalLayout)).
		Validate("end_date", f.EndDate, validation.DateTime("End", uiutil.DateTimeLocalLayout)).
		Validate("image_url", f.ImageURL, validation.OptionalHTTPURL("Image URL", 2048))
	if !v.Valid() {
		return model.EventInput{}, v.Errors()
	}

	start, _ := uiutil.ParseDateTimeLocal(f.StartDate, loc)
	end, _ := uiutil.ParseDateTimeLocal(f.EndDate, loc)
	if end.Before(start) {
		v.Add("end_date", "End must not be before start.")
		return model.EventInput{}, v.Errors()
	}
	return model.EventInput{
		Title:       f.Title,
		Description: f.Description,
		Location:    f.Location,
		StartDate:   start,
		EndDate:     end,
		ImageURL:    f.ImageURL,
	}, nil
}

// AdminEvents lists events by tab with a create form.
func (h *UIHandlers) AdminEvents(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Manage events"},
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Form"] = eventForm{Mode: FormModeCreate}
			return h.fetchAdminEvents(r, data)
		},
	})
}

func (h *UIHandlers) fetchAdminEvents(r *http.Request, data map[string]any) error {
	ctx := r.Context()
	tab := model.ParseEventTab(r.URL.Query().Get("tab"))
	data["Tab"] = string(tab)
	list, err := h.Events.List(ctx, backendToken(ctx), tab, pageParam(r))
	if err != nil {
		return err
	}
	addEventList(r, data, list, "/admin/events")
	return nil
}

// CreateEvent adds an event.
// POST /admin/events.
func (h *UIHandlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	form := parseEventForm(r, FormModeCreate)
	in, fieldErrs := form.input(h.Location)

	var err error
	if fieldErrs == nil {
		if _, err = h.Events.Create(r.Context(), backendToken(r.Context()), in); err == nil {
			redirectAfterPost(w, r, withNotice("/admin/events", "created"))
			return
		}
	}

	data := map[string]any{"Form": form}
	if listErr := h.fetchAdminEvents(r, data); listErr != nil {
		data["ListError"] = inlineError(listErr)
	}
	h.renderFormError(w, r, err, fieldErrs, data)
}

// AdminEventEdit renders the edit form for one event.
func (h *UIHandlers) AdminEventEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("eventId")
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Edit event"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			e, err := h.Events.Get(ctx, backendToken(ctx), id)
			if err != nil {
				return err
			}
			data["Form"] = h.eventFormFrom(e)
			data["Event"] = e
			return nil
		},
	})
}

// UpdateEvent saves the edit form.
// POST /admin/events/{eventId}.
func (h *UIHandlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	form := parseEventForm(r, FormModeEdit)
	in, fieldErrs := form.input(h.Location)
	if fieldErrs != nil {
		h.renderFormError(w, r, nil, fieldErrs, map[string]any{"Form": form})
		return
	}
	if _, err := h.Events.Update(r.Context(), backendToken(r.Context()), form.ID, in); err != nil {
		h.renderFormError(w, r, err, nil, map[string]any{"Form": form})
		return
	}
	redirectAfterPost(w, r, withNotice("/admin/events", "saved"))
}

// DeleteEvent removes an event.
// POST /admin/events/{eventId}/delete.
func (h *UIHandlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteOpts{
		ID:       r.PathValue("eventId"),
		Delete:   h.Events.Delete,
		Redirect: "/admin/events",
	})
}

// --- Announcements ---

// AdminAnnouncements lists announcements with a create form.
func (h *UIHandlers) AdminAnnouncements(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Manage announcements"},
		Fetch: func(_ context.Context, data map[string]any) error {
			data["Form"] = model.AnnouncementInput{}
			return h.fetchAdminAnnouncements(r, data)
		},
	})
}

func (h *UIHandlers) fetchAdminAnnouncements(r *http.Request, data map[string]any) error {
	ctx := r.Context()
	list, err := h.Announcements.List(ctx, backendToken(ctx), pageParam(r))
	if err != nil {
		return err
	}
	data["Announcements"] = list.Announcements
	withPagination(r, data, PaginationData{Page: list.Page, TotalPages: list.TotalPages, BasePath: "/admin/announcements"})
	return nil
}

// CreateAnnouncement posts an announcement.
// POST /admin/announcements.
func (h *UIHandlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	in := model.AnnouncementInput{Title: formValue(r, "title"), Body: formValue(r, "body")}
	v := validation.New().
		Validate("title", in.Title, validation.Required("Title", 200)).
		Validate("body", in.Body, validation.Required("Body", 10000))

	var err error
	if v.Valid() {
		if _, err = h.Announcements.Create(r.Context(), backendToken(r.Context()), in); err == nil {
			redirectAfterPost(w, r, withNotice("/admin/announcements", "created"))
			return
		}
	}

	data := map[string]any{"Form": in}
	if listErr := h.fetchAdminAnnouncements(r, data); listErr != nil {
		data["ListError"] = inlineError(listErr)
	}
	h.renderFormError(w, r, err, v.Errors(), data)
}

// DeleteAnnouncement removes an announcement.
// POST /admin/announcements/{id}/delete.
func (h *UIHandlers) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteOpts{
		ID:       r.PathValue("id"),
		Delete:   h.Announcements.Delete,
		Redirect: "/admin/announcements",
	})
}

// --- Messages ---

// AdminMessages lists contact-form messages.
func (h *UIHandlers) AdminMessages(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Messages"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			list, err := h.Messages.List(ctx, backendToken(ctx), page)
			if err != nil {
				return err
			}
			data["Messages"] = list.Messages
			withPagination(r, data, PaginationData{Page: list.Page, TotalPages: list.TotalPages, BasePath: "/admin/messages"})
			return nil
		},
	})
}

// DeleteMessage removes a message.
// POST /admin/messages/{id}/delete.
func (h *UIHandlers) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteOpts{
		ID:       r.PathValue("id"),
		Delete:   h.Messages.Delete,
		Redirect: "/admin/messages",
	})
}

// deleteOpts encapsulates common delete-handling behavior for admin lists.
type deleteOpts struct {
	ID       string
	Delete   func(ctx context.Context, token, id string) error
	Redirect string
}

// handleDelete deletes and returns to the list. A missing item counts as deleted;
// other failures are reported on the list page.
func (h *UIHandlers) handleDelete(w http.ResponseWriter, r *http.Request, opts deleteOpts) {
	if opts.ID == "" {
		h.NotFound(w, r)
		return
	}
	err := opts.Delete(r.Context(), backendToken(r.Context()), opts.ID)
	if err != nil && !apperrors.IsNotFound(err) {
		h.logger().WarnContext(r.Context(), "delete failed", "path", r.URL.Path, "error", err)
		code := apperrors.GetCode(err)
		if code == "" {
			code = apperrors.ErrCodeInternal
		}
		redirectAfterPost(w, r, opts.Redirect+"?error="+string(code))
		return
	}
	redirectAfterPost(w, r, withNotice(opts.Redirect, "deleted"))
}
