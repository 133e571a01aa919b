package backend

import (
	"context"
	"net/http"

	"github.com/memberhub/portal/internal/domain/model"
	"github.com/memberhub/portal/internal/ports"
)

var (
	_ ports.AnnouncementBackend = (*Client)(nil)
	_ ports.MessageBackend      = (*Client)(nil)
)

func (cl *Client) ListAnnouncements(ctx context.Context, token string, q model.ListQuery) (model.ListPage[model.Announcement], error) {
	resp, err := cl.do(ctx, call{
		endpoint: "announcements.list",
		method:   http.MethodGet,
		path:     "/api/announcements",
		query:    pageQuery(q),
		token:    token,
	})
	if err != nil {
		return model.ListPage[model.Announcement]{}, err
	}

	var wire []wireAnnouncement
	count, err := announcementsEnvelope.decodeList(resp.body, &wire)
	if err != nil {
		return model.ListPage[model.Announcement]{}, err
	}
	page := model.ListPage[model.Announcement]{Items: make([]model.Announcement, 0, len(wire)), Count: count}
	for _, w := range wire {
		page.Items = append(page.Items, w.toAnnouncement())
	}
	return page, nil
}

func (cl *Client) CreateAnnouncement(ctx context.Context, token string, in model.AnnouncementInput) (model.Announcement, error) {
	resp, err := cl.do(ctx, call{
		endpoint: "announcements.create",
		method:   http.MethodPost,
		path:     "/api/announcements",
		token:    token,
		body:     wireAnnouncementInput{Title: in.Title, Content: in.Body},
	})
	if err != nil {
		return model.Announcement{}, err
	}
	var w wireAnnouncement
	if _, err := announcementEnvelope.decode(resp.body, &w); err != nil {
		return model.Announcement{}, err
	}
	return w.toAnnouncement(), nil
}

func (cl *Client) DeleteAnnouncement(ctx context.Context, token, id string) error {
	_, err := cl.do(ctx, call{
		endpoint: "announcements.delete",
		method:   http.MethodDelete,
		path:     "/api/announcements/" + escape(id),
		token:    token,
	})
	return err
}

// CreateMessage posts a contact-form message. It needs no token.
func (cl *Client) CreateMessage(ctx context.Context, in model.MessageInput) error {
	_, err := cl.do(ctx, call{
		endpoint: "messages.create",
		method:   http.MethodPost,
		path:     "/api/messages",
		body:     in,
	})
	return err
}

func (cl *Client) ListMessages(ctx context.Context, token string, q model.ListQuery) (model.ListPage[model.Message], error) {
	resp, err := cl.do(ctx, call{
		endpoint: "messages.list",
		method:   http.MethodGet,
		path:     "/api/messages",
		query:    pageQuery(q),
		token:    token,
	})
	if err != nil {
		return model.ListPage[model.Message]{}, err
	}

	var wire []wireMessage
	count, err := messagesEnvelope.decodeList(resp.body, &wire)
	if err != nil {
		return model.ListPage[model.Message]{}, err
	}
	page := model.ListPage[model.Message]{Items: make([]model.Message, 0, len(wire)), Count: count}
	for _, w := range wire {
		page.Items = append(page.Items, w.toMessage())
	}
	return page, nil
}

func (cl *Client) DeleteMessage(ctx context.Context, token, id string) error {
	_, err := cl.do(ctx, call{
		endpoint: "messages.delete",
		method:   http.MethodDelete,
		path:     "/api/messages/" + escape(id),
		token:    token,
	})
	return err
}
