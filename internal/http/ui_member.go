package httpx

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/memberhub/portal/internal/domain/model"
	"github.com/memberhub/portal/internal/http/validation"
	"github.com/memberhub/portal/internal/service"
)

// Dashboard shows upcoming events and the latest announcements. The two lists load in
// parallel and fail independently.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Dashboard"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			token := backendToken(ctx)
			var (
				g             errgroup.Group
				events        []model.Event
				announcements []model.Announcement
				eventsErr     error
				announceErr   error
			)
			g.Go(func() error {
				events, eventsErr = h.Events.Upcoming(ctx, token, dashboardEventCount)
				return nil
			})
			g.Go(func() error {
				announcements, announceErr = h.Announcements.Latest(ctx, token, dashboardAnnouncementCount)
				return nil
			})
			_ = g.Wait()

			data["Events"] = events
			data["Announcements"] = announcements
			if eventsErr != nil {
				h.logger().WarnContext(ctx, "dashboard events failed", "error", eventsErr)
				data["EventsError"] = inlineError(eventsErr)
			}
			if announceErr != nil {
				h.logger().WarnContext(ctx, "dashboard announcements failed", "error", announceErr)
				data["AnnouncementsError"] = inlineError(announceErr)
			}
			return nil
		},
	})
}

// Profiles lists active members.
func (h *UIHandlers) Profiles(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Members"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			members, err := h.Members.Directory(ctx, backendToken(ctx))
			data["Members"] = members
			return err
		},
	})
}

// Profile shows one member.
func (h *UIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Profile"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			m, err := h.Members.Profile(ctx, backendToken(ctx), id)
			if err != nil {
				return err
			}
			data["Member"] = m
			data["Title"] = m.FullName()
			if u := CurrentUser(ctx); u != nil {
				data["IsSelf"] = u.ID == m.ID
			}
			return nil
		},
	})
}

// ProfileEditPage renders the signed-in member's profile form.
func (h *UIHandlers) ProfileEditPage(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Edit profile"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			u := CurrentUser(ctx)
			if u == nil {
				return nil
			}
			m, err := h.Members.Profile(ctx, backendToken(ctx), u.ID)
			if err != nil {
				return err
			}
			data["Form"] = model.ProfileInput{
				FirstName:       m.FirstName,
				LastName:        m.LastName,
				Bio:             m.Bio,
				Phone:           m.Phone,
				ProfileImageURL: m.ProfileImageURL,
			}
			return nil
		},
	})
}

// UpdateProfile saves the profile form.
// POST /profile/edit.
func (h *UIHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	in := model.ProfileInput{
		FirstName:       formValue(r, "firstname"),
		LastName:        formValue(r, "lastname"),
		Bio:             formValue(r, "bio"),
		Phone:           formValue(r, "phone"),
		ProfileImageURL: formValue(r, "profile_image_url"),
	}
	data := map[string]any{"Form": in}

	v := validation.New().
		Validate("firstname", in.FirstName, validation.Required("First name", 50)).
		Validate("lastname", in.LastName, validation.Required("Last name", 50)).
		Validate("bio", in.Bio, validation.Optional("Bio", 1000)).
		Validate("phone", in.Phone, validation.Optional("Phone", 30)).
		Validate("profile_image_url", in.ProfileImageURL, validation.OptionalHTTPURL("Profile image", 2048))
	if !v.Valid() {
		h.renderFormError(w, r, nil, v.Errors(), data)
		return
	}

	m, err := h.Members.UpdateProfile(r.Context(), backendToken(r.Context()), in)
	if err != nil {
		h.renderFormError(w, r, err, nil, data)
		return
	}
	redirectAfterPost(w, r, withNotice("/profile/"+m.ID, "saved"))
}

// EventsPage lists events by tab with pagination. Tab and page changes arrive as htmx
// fragment requests and only the content area is re-rendered.
func (h *UIHandlers) EventsPage(w http.ResponseWriter, r *http.Request) {
	tab := model.ParseEventTab(r.URL.Query().Get("tab"))
	page := pageParam(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Events"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["Tab"] = string(tab)
			list, err := h.Events.List(ctx, backendToken(ctx), tab, page)
			if err != nil {
				return err
			}
			addEventList(r, data, list, r.URL.Path)
			return nil
		},
	})
}

// AnnouncementsPage lists announcements, newest first.
func (h *UIHandlers) AnnouncementsPage(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Announcements"},
		Fetch: func(ctx context.Context, data map[string]any) error {
			list, err := h.Announcements.List(ctx, backendToken(ctx), page)
			if err != nil {
				return err
			}
			data["Announcements"] = list.Announcements
			withPagination(r, data, PaginationData{Page: list.Page, TotalPages: list.TotalPages, BasePath: r.URL.Path})
			return nil
		},
	})
}

func addEventList(r *http.Request, data map[string]any, list *service.EventList, basePath string) {
	data["Events"] = list.Events
	data["Tab"] = string(list.Tab)
	data["EventCount"] = list.Count
	withPagination(r, data, PaginationData{Page: list.Page, TotalPages: list.TotalPages, BasePath: basePath})
}

// withPagination adds pagination fields to data built elsewhere.
func withPagination(r *http.Request, data map[string]any, p PaginationData) {
	(&TemplateDataBuilder{data: data, r: r}).WithPagination(p)
}
