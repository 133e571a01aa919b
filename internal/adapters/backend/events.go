package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/memberhub/portal/internal/domain/model"
	"github.com/memberhub/portal/internal/ports"
)

var _ ports.EventBackend = (*Client)(nil)

// pageQuery renders q in the service's skip/limit convention.
func pageQuery(q model.ListQuery) url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(q.Offset))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Filter != "" {
		v.Set("type", q.Filter)
	}
	v.Set("getCount", "true")
	return v
}

func (cl *Client) ListEvents(ctx context.Context, token string, q model.ListQuery) (model.ListPage[model.Event], error) {
	resp, err := cl.do(ctx, call{
		endpoint: "events.list",
		method:   http.MethodGet,
		path:     "/api/events",
		query:    pageQuery(q),
		token:    token,
	})
	if err != nil {
		return model.ListPage[model.Event]{}, err
	}

	var wire []wireEvent
	count, err := eventListEnvelope.decodeList(resp.body, &wire)
	if err != nil {
		return model.ListPage[model.Event]{}, err
	}
	page := model.ListPage[model.Event]{Items: make([]model.Event, 0, len(wire)), Count: count}
	for _, w := range wire {
		page.Items = append(page.Items, w.toEvent())
	}
	return page, nil
}

func (cl *Client) GetEvent(ctx context.Context, token, id string) (model.Event, error) {
	resp, err := cl.do(ctx, call{
		endpoint: "events.get",
		method:   http.MethodGet,
		path:     "/api/events/" + escape(id),
		token:    token,
	})
	if err != nil {
		return model.Event{}, err
	}
	return decodeEvent(resp.body)
}

func (cl *Client) CreateEvent(ctx context.Context, token string, in model.EventInput) (model.Event, error) {
	resp, err := cl.do(ctx, call{
		endpoint: "events.create",
		method:   http.MethodPost,
		path:     "/api/events",
		token:    token,
		body:     in,
	})
	if err != nil {
		return model.Event{}, err
	}
	return decodeEvent(resp.body)
}

func (cl *Client) UpdateEvent(ctx context.Context, token, id string, in model.EventInput) (model.Event, error) {
	resp, err := cl.do(ctx, call{
		endpoint: "events.update",
		method:   http.MethodPut,
		path:     "/api/events/" + escape(id),
		token:    token,
		body:     in,
	})
	if err != nil {
		return model.Event{}, err
	}
	return decodeEvent(resp.body)
}

func (cl *Client) DeleteEvent(ctx context.Context, token, id string) error {
	_, err := cl.do(ctx, call{
		endpoint: "events.delete",
		method:   http.MethodDelete,
		path:     "/api/events/" + escape(id),
		token:    token,
	})
	return err
}

func decodeEvent(body []byte) (model.Event, error) {
	var w wireEvent
	if _, err := eventEnvelope.decode(body, &w); err != nil {
		return model.Event{}, err
	}
	return w.toEvent(), nil
}
