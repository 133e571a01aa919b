package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/memberhub/portal/internal/domain/model"
	"github.com/memberhub/portal/internal/ports"
)

// AdminBackends are the backends the overview reads counts from.
type AdminBackends struct {
	Members       ports.MemberBackend
	Events        ports.EventBackend
	Announcements ports.AnnouncementBackend
	Messages      ports.MessageBackend
}

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Backends AdminBackends // Required: all four
}

// AdminService builds the admin landing page summary.
type AdminService struct {
	b AdminBackends
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) (*AdminService, error) {
	b := opts.Backends
	if b.Members == nil || b.Events == nil || b.Announcements == nil || b.Messages == nil {
		return nil, errors.New("all admin backends are required")
	}
	return &AdminService{b: b}, nil
}

// MustNewAdminService constructs a new AdminService and panics on error.
func MustNewAdminService(opts AdminServiceOptions) *AdminService {
	svc, err := NewAdminService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // startup wiring
	}
	return svc
}

// countQuery asks for a single row; only the total is used.
var countQuery = model.ListQuery{Limit: 1}

// Overview fetches every count concurrently. The first failure cancels the rest.
func (s *AdminService) Overview(ctx context.Context, token string) (*model.AdminOverview, error) {
	var out model.AdminOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pending, err := s.b.Members.ListPendingMembers(gctx, token)
		if err != nil {
			return fmt.Errorf("count pending members: %w", err)
		}
		out.PendingMembers = len(pending)
		return nil
	})
	g.Go(func() error {
		active, err := s.b.Members.ListProfiles(gctx, token)
		if err != nil {
			return fmt.Errorf("count active members: %w", err)
		}
		out.ActiveMembers = len(active)
		return nil
	})
	g.Go(func() error {
		q := countQuery
		q.Filter = string(model.EventTabFuture)
		res, err := s.b.Events.ListEvents(gctx, token, q)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		out.UpcomingEvents = res.Count
		return nil
	})
	g.Go(func() error {
		res, err := s.b.Announcements.ListAnnouncements(gctx, token, countQuery)
		if err != nil {
			return fmt.Errorf("count announcements: %w", err)
		}
		out.Announcements = res.Count
		return nil
	})
	g.Go(func() error {
		res, err := s.b.Messages.ListMessages(gctx, token, countQuery)
		if err != nil {
			return fmt.Errorf("count messages: %w", err)
		}
		out.Messages = res.Count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
