package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
)

// EventServiceOptions groups dependencies for EventService.
type EventServiceOptions struct {
	Backend   ports.EventBackend // Required
	Sanitizer TextSanitizer      // Optional: defaults to NewTextSanitizer
	Logger    *slog.Logger       // Optional
}

// EventService lists and edits events for member and admin pages.
type EventService struct {
	backend   ports.EventBackend
	sanitizer TextSanitizer
	logger    *slog.Logger
}

// NewEventService constructs a new EventService.
func NewEventService(opts EventServiceOptions) (*EventService, error) {
	if opts.Backend == nil {
		return nil, errors.New("EventBackend is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "event_service")
	}

	return &EventService{
		backend:   opts.Backend,
		sanitizer: sanitizerOrDefault(opts.Sanitizer),
		logger:    logger,
	}, nil
}

// MustNewEventService constructs a new EventService and panics on error.
func MustNewEventService(opts EventServiceOptions) *EventService {
	svc, err := NewEventService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // startup wiring
	}
	return svc
}

// EventList is one page of a tabbed event listing.
type EventList struct {
	Events     []model.Event
	Tab        model.EventTab
	Page       int // 1-based
	TotalPages int
	Count      int
}

// List fetches one page of events for tab. page is 1-based; values below 1 select the first page.
func (s *EventService) List(ctx context.Context, token string, tab model.EventTab, page int) (*EventList, error) {
	if page < 1 {
		page = 1
	}
	q := model.PageQuery(page-1, model.EventsPerPage, string(tab))

	res, err := s.backend.ListEvents(ctx, token, q)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]model.Event, len(res.Items))
	for i, e := range res.Items {
		events[i] = s.clean(e)
	}
	return &EventList{
		Events:     events,
		Tab:        tab,
		Page:       page,
		TotalPages: model.PageCount(res.Count, q.Limit),
		Count:      res.Count,
	}, nil
}

// Upcoming returns at most n future events, soonest first as the backend orders them.
func (s *EventService) Upcoming(ctx context.Context, token string, n int) ([]model.Event, error) {
	if n <= 0 {
		return nil, nil
	}
	res, err := s.backend.ListEvents(ctx, token, model.PageQuery(0, n, string(model.EventTabFuture)))
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	out := make([]model.Event, 0, min(n, len(res.Items)))
	for _, e := range res.Items {
		if len(out) == n {
			break
		}
		out = append(out, s.clean(e))
	}
	return out, nil
}

// Get fetches a single event.
func (s *EventService) Get(ctx context.Context, token, id string) (*model.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NotFound("event not found")
	}
	e, err := s.backend.GetEvent(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	e = s.clean(e)
	return &e, nil
}

// Create validates and stores a new event.
func (s *EventService) Create(ctx context.Context, token string, in model.EventInput) (*model.Event, error) {
	if err := s.prepare(&in); err != nil {
		return nil, err
	}
	e, err := s.backend.CreateEvent(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "event created", "id", e.ID)
	}
	e = s.clean(e)
	return &e, nil
}

// Update validates and replaces an event's editable fields.
func (s *EventService) Update(ctx context.Context, token, id string, in model.EventInput) (*model.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NotFound("event not found")
	}
	if err := s.prepare(&in); err != nil {
		return nil, err
	}
	e, err := s.backend.UpdateEvent(ctx, token, id, in)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	e = s.clean(e)
	return &e, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.NotFound("event not found")
	}
	if err := s.backend.DeleteEvent(ctx, token, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "event deleted", "id", id)
	}
	return nil
}

func (s *EventService) prepare(in *model.EventInput) error {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	in.Description = s.sanitizer.Sanitize(in.Description)
	return nil
}

func (s *EventService) clean(e model.Event) model.Event {
	e.Description = s.sanitizer.Sanitize(e.Description)
	return e
}
