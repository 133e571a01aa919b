package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/memberhub/portal/internal/domain/access"
	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
)

// MemberServiceOptions groups dependencies for MemberService.
type MemberServiceOptions struct {
	Backend ports.MemberBackend // Required
	Logger  *slog.Logger        // Optional
}

// MemberService serves the member directory, profile editing and the permissions console.
type MemberService struct {
	backend ports.MemberBackend
	logger  *slog.Logger
}

// NewMemberService constructs a new MemberService.
func NewMemberService(opts MemberServiceOptions) (*MemberService, error) {
	if opts.Backend == nil {
		return nil, errors.New("MemberBackend is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberService{
		backend: opts.Backend,
		logger:  logger.With("component", "member_service"),
	}, nil
}

// MustNewMemberService constructs a new MemberService and panics on error.
func MustNewMemberService(opts MemberServiceOptions) *MemberService {
	svc, err := NewMemberService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // startup wiring
	}
	return svc
}

// Directory returns the active members visible to any signed-in member, sorted by name.
func (s *MemberService) Directory(ctx context.Context, token string) ([]model.Member, error) {
	members, err := s.backend.ListProfiles(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	sortMembers(members)
	return members, nil
}

// Profile returns one member's profile.
func (s *MemberService) Profile(ctx context.Context, token, id string) (*model.Member, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NotFound("profile not found")
	}
	m, err := s.backend.GetProfile(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &m, nil
}

// UpdateProfile validates and saves the caller's own profile.
func (s *MemberService) UpdateProfile(ctx context.Context, token string, in model.ProfileInput) (*model.Member, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	m, err := s.backend.UpdateProfile(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &m, nil
}

// PermissionsView is everything the permissions console shows.
type PermissionsView struct {
	Pending []model.Member
	Current []model.Member
}

// Permissions loads pending and current members in parallel. Current members carry e-mail
// addresses from the staff-only listing merged by ID.
func (s *MemberService) Permissions(ctx context.Context, token string) (*PermissionsView, error) {
	var (
		profiles  []model.Member
		withEmail []model.Member
		pending   []model.Member
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = s.backend.ListProfiles(gctx, token)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		withEmail, err = s.backend.ListCurrentMembers(gctx, token)
		if err != nil {
			return fmt.Errorf("list current members: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pending, err = s.backend.ListPendingMembers(gctx, token)
		if err != nil {
			return fmt.Errorf("list pending members: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	current := model.MergeEmails(profiles, withEmail)
	sortMembers(current)
	sortMembers(pending)
	return &PermissionsView{Pending: pending, Current: current}, nil
}

// ChangeRole moves a current member to newRole after checking the actor's rights.
// No backend write happens when the check fails, including when the role would not change.
func (s *MemberService) ChangeRole(ctx context.Context, token string, actor domainauth.User, targetID string, newRole domainauth.Role) error {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return apperrors.ValidationField("userId", "member is required")
	}

	members, err := s.backend.ListCurrentMembers(ctx, token)
	if err != nil {
		return fmt.Errorf("list current members: %w", err)
	}
	target, ok := findMember(members, targetID)
	if !ok {
		return apperrors.NotFound("member not found")
	}

	if err := access.CanChangeRole(actor, target.AsUser(), newRole); err != nil {
		return roleChangeError(err)
	}

	if err := s.backend.UpdateRole(ctx, token, targetID, newRole); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	s.logger.InfoContext(ctx, "member role changed",
		"actor_id", actor.ID,
		"target_id", targetID,
		"from", target.Role,
		"to", newRole,
	)
	return nil
}

// Approve admits a pending member.
func (s *MemberService) Approve(ctx context.Context, token string, actor domainauth.User, userID string) error {
	return s.decide(ctx, "approve", actor, userID, func(id string) error {
		return s.backend.ApproveMember(ctx, token, id)
	})
}

// Reject refuses a pending member.
func (s *MemberService) Reject(ctx context.Context, token string, actor domainauth.User, userID string) error {
	return s.decide(ctx, "reject", actor, userID, func(id string) error {
		return s.backend.RejectMember(ctx, token, id)
	})
}

func (s *MemberService) decide(ctx context.Context, action string, actor domainauth.User, userID string, call func(string) error) error {
	if !access.HasPermission(actor.Role, access.PermApproveMembers) {
		return apperrors.Forbidden("only admins and moderators can review members")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return apperrors.ValidationField("userId", "member is required")
	}
	if err := call(userID); err != nil {
		return fmt.Errorf("%s member: %w", action, err)
	}
	s.logger.InfoContext(ctx, "pending member reviewed", "action", action, "actor_id", actor.ID, "target_id", userID)
	return nil
}

func roleChangeError(err error) error {
	switch {
	case errors.Is(err, domainauth.ErrInvalidRole):
		return &apperrors.AppError{Code: apperrors.ErrCodeValidation, Message: "choose a valid role", Field: "newRole", Cause: err}
	case errors.Is(err, access.ErrRoleUnchanged):
		return &apperrors.AppError{Code: apperrors.ErrCodeValidation, Message: "choose a different role", Field: "newRole", Cause: err}
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeForbidden, err.Error())
	}
}

func findMember(members []model.Member, id string) (model.Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Member{}, false
}

func sortMembers(members []model.Member) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := strings.ToLower(members[i].FullName()), strings.ToLower(members[j].FullName())
		if a != b {
			return a < b
		}
		return members[i].ID < members[j].ID
	})
}
