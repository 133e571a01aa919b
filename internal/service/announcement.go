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

// AnnouncementsPerPage is the page size of announcement listings.
const AnnouncementsPerPage = 10

// AnnouncementServiceOptions groups dependencies for AnnouncementService.
type AnnouncementServiceOptions struct {
	Backend   ports.AnnouncementBackend // Required
	Sanitizer TextSanitizer             // Optional: defaults to NewTextSanitizer
	Logger    *slog.Logger              // Optional
}

// AnnouncementService lists, posts and removes announcements.
type AnnouncementService struct {
	backend   ports.AnnouncementBackend
	sanitizer TextSanitizer
	logger    *slog.Logger
}

// NewAnnouncementService constructs a new AnnouncementService.
func NewAnnouncementService(opts AnnouncementServiceOptions) (*AnnouncementService, error) {
	if opts.Backend == nil {
		return nil, errors.New("AnnouncementBackend is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "announcement_service")
	}
	return &AnnouncementService{
		backend:   opts.Backend,
		sanitizer: sanitizerOrDefault(opts.Sanitizer),
		logger:    logger,
	}, nil
}

// MustNewAnnouncementService constructs a new AnnouncementService and panics on error.
func MustNewAnnouncementService(opts AnnouncementServiceOptions) *AnnouncementService {
	svc, err := NewAnnouncementService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // startup wiring
	}
	return svc
}

// AnnouncementList is one page of announcements, newest first.
type AnnouncementList struct {
	Announcements []model.Announcement
	Page          int // 1-based
	TotalPages    int
	Count         int
}

// List fetches one page of announcements. page is 1-based.
func (s *AnnouncementService) List(ctx context.Context, token string, page int) (*AnnouncementList, error) {
	if page < 1 {
		page = 1
	}
	q := model.PageQuery(page-1, AnnouncementsPerPage, "")
	res, err := s.backend.ListAnnouncements(ctx, token, q)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	items := make([]model.Announcement, len(res.Items))
	for i, a := range res.Items {
		items[i] = s.clean(a)
	}
	return &AnnouncementList{
		Announcements: items,
		Page:          page,
		TotalPages:    model.PageCount(res.Count, q.Limit),
		Count:         res.Count,
	}, nil
}

// Latest returns at most n of the newest announcements.
func (s *AnnouncementService) Latest(ctx context.Context, token string, n int) ([]model.Announcement, error) {
	if n <= 0 {
		return nil, nil
	}
	res, err := s.backend.ListAnnouncements(ctx, token, model.PageQuery(0, n, ""))
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	items := res.Items
	if len(items) > n {
		items = items[:n]
	}
	out := make([]model.Announcement, len(items))
	for i, a := range items {
		out[i] = s.clean(a)
	}
	return out, nil
}

// Create validates and posts an announcement.
func (s *AnnouncementService) Create(ctx context.Context, token string, in model.AnnouncementInput) (*model.Announcement, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	in.Body = s.sanitizer.Sanitize(in.Body)

	a, err := s.backend.CreateAnnouncement(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "announcement posted", "id", a.ID)
	}
	a = s.clean(a)
	return &a, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.NotFound("announcement not found")
	}
	if err := s.backend.DeleteAnnouncement(ctx, token, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

func (s *AnnouncementService) clean(a model.Announcement) model.Announcement {
	a.Body = s.sanitizer.Sanitize(a.Body)
	return a
}
