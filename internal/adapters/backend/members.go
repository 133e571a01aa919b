package backend

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/model"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
)

var _ ports.MemberBackend = (*Client)(nil)

func (cl *Client) ListProfiles(ctx context.Context, token string) ([]model.Member, error) {
	return cl.listMembers(ctx, call{
		endpoint: "profiles.list",
		method:   http.MethodGet,
		path:     "/api/profiles",
		token:    token,
	}, activeMembersEnvelope)
}

func (cl *Client) GetProfile(ctx context.Context, token, id string) (model.Member, error) {
	resp, err := cl.do(ctx, call{
		endpoint: "profiles.get",
		method:   http.MethodGet,
		path:     "/api/profiles/" + escape(id),
		token:    token,
	})
	if err != nil {
		return model.Member{}, err
	}
	return decodeMember(resp.body)
}

func (cl *Client) UpdateProfile(ctx context.Context, token string, in model.ProfileInput) (model.Member, error) {
	resp, err := cl.do(ctx, call{
		endpoint: "profiles.update",
		method:   http.MethodPut,
		path:     "/api/profiles",
		token:    token,
		body:     in,
	})
	if err != nil {
		return model.Member{}, err
	}
	return decodeMember(resp.body)
}

func (cl *Client) ListCurrentMembers(ctx context.Context, token string) ([]model.Member, error) {
	return cl.listMembers(ctx, call{
		endpoint: "admin.current_members",
		method:   http.MethodGet,
		path:     "/api/admin/current-members",
		token:    token,
	}, currentMembersEnvelope)
}

func (cl *Client) ListPendingMembers(ctx context.Context, token string) ([]model.Member, error) {
	return cl.listMembers(ctx, call{
		endpoint: "admin.pending_members",
		method:   http.MethodGet,
		path:     "/api/admin/pending-members",
		token:    token,
	}, pendingMembersEnvelope)
}

func (cl *Client) UpdateRole(ctx context.Context, token, userID string, role domainauth.Role) error {
	_, err := cl.do(ctx, call{
		endpoint: "admin.update_role",
		method:   http.MethodPost,
		path:     "/api/admin/update-role",
		token:    token,
		body:     map[string]string{"userIdToUpdate": userID, "newRole": string(role)},
	})
	return err
}

func (cl *Client) ApproveMember(ctx context.Context, token, userID string) error {
	_, err := cl.do(ctx, call{
		endpoint: "admin.approve",
		method:   http.MethodPost,
		path:     "/api/admin/approve",
		token:    token,
		body:     map[string]string{"userId": userID},
	})
	return err
}

func (cl *Client) RejectMember(ctx context.Context, token, userID string) error {
	_, err := cl.do(ctx, call{
		endpoint: "admin.reject",
		method:   http.MethodPost,
		path:     "/api/admin/reject",
		token:    token,
		body:     map[string]string{"userId": userID},
	})
	return err
}

// listMembers decodes a member list, skipping records with roles the portal does not know.
func (cl *Client) listMembers(ctx context.Context, c call, env envelope) ([]model.Member, error) {
	resp, err := cl.do(ctx, c)
	if err != nil {
		return nil, err
	}
	var wire []wireUser
	if _, err := env.decodeList(resp.body, &wire); err != nil {
		return nil, err
	}

	out := make([]model.Member, 0, len(wire))
	for _, w := range wire {
		m, err := w.toMember()
		if err != nil {
			cl.logger.WarnContext(ctx, "skipping member with unknown role",
				slog.String("endpoint", c.endpoint),
				slog.String("member_id", w.ID),
				slog.String("role", w.Role),
			)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeMember(body []byte) (model.Member, error) {
	var w wireUser
	if _, err := profileEnvelope.decode(body, &w); err != nil {
		return model.Member{}, err
	}
	m, err := w.toMember()
	if err != nil {
		return model.Member{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "member service returned an unknown role")
	}
	return m, nil
}
