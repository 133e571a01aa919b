package ports

import (
	"context"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/model"
)

// Every method takes the caller's backend token; the backend performs its own authorisation.

// EventBackend reads and writes events.
type EventBackend interface {
	ListEvents(ctx context.Context, token string, q model.ListQuery) (model.ListPage[model.Event], error)
	GetEvent(ctx context.Context, token, id string) (model.Event, error)
	CreateEvent(ctx context.Context, token string, in model.EventInput) (model.Event, error)
	UpdateEvent(ctx context.Context, token, id string, in model.EventInput) (model.Event, error)
	DeleteEvent(ctx context.Context, token, id string) error
}

// MemberBackend reads member profiles and performs staff actions on accounts.
type MemberBackend interface {
	ListProfiles(ctx context.Context, token string) ([]model.Member, error)
	GetProfile(ctx context.Context, token, id string) (model.Member, error)
	UpdateProfile(ctx context.Context, token string, in model.ProfileInput) (model.Member, error)
	ListCurrentMembers(ctx context.Context, token string) ([]model.Member, error)
	ListPendingMembers(ctx context.Context, token string) ([]model.Member, error)
	UpdateRole(ctx context.Context, token, userID string, role domainauth.Role) error
	ApproveMember(ctx context.Context, token, userID string) error
	RejectMember(ctx context.Context, token, userID string) error
}

// AnnouncementBackend reads and writes announcements.
type AnnouncementBackend interface {
	ListAnnouncements(ctx context.Context, token string, q model.ListQuery) (model.ListPage[model.Announcement], error)
	CreateAnnouncement(ctx context.Context, token string, in model.AnnouncementInput) (model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, token, id string) error
}

// MessageBackend handles contact-form messages.
type MessageBackend interface {
	CreateMessage(ctx context.Context, in model.MessageInput) error
	ListMessages(ctx context.Context, token string, q model.ListQuery) (model.ListPage[model.Message], error)
	DeleteMessage(ctx context.Context, token, id string) error
}
