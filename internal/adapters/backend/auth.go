package backend

import (
	"context"
	"net/http"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
)

var _ ports.AuthBackend = (*Client)(nil)

func (cl *Client) Signup(ctx context.Context, req ports.SignupRequest) (ports.AuthResult, error) {
	return cl.authenticate(ctx, call{
		endpoint: "auth.signup",
		method:   http.MethodPost,
		path:     "/api/auth/signup",
		body:     req,
	})
}

func (cl *Client) Login(ctx context.Context, email, password string) (ports.AuthResult, error) {
	return cl.authenticate(ctx, call{
		endpoint: "auth.login",
		method:   http.MethodPost,
		path:     "/api/auth/login",
		body:     map[string]string{"email": email, "password": password},
	})
}

func (cl *Client) Logout(ctx context.Context, token string) error {
	_, err := cl.do(ctx, call{
		endpoint: "auth.logout",
		method:   http.MethodPost,
		path:     "/api/auth/logout",
		token:    token,
	})
	return err
}

// VerifyEmail submits the e-mailed code. The service may rotate the token; the old one is
// kept when it does not.
func (cl *Client) VerifyEmail(ctx context.Context, token, code string) (ports.AuthResult, error) {
	res, err := cl.authenticate(ctx, call{
		endpoint: "auth.verify_email",
		method:   http.MethodPost,
		path:     "/api/auth/verify-email",
		token:    token,
		body:     map[string]string{"code": code},
	})
	if err != nil {
		return ports.AuthResult{}, err
	}
	if res.Token == "" {
		res.Token = token
		res.ExpiresAt, _ = TokenExpiry(token)
	}
	return res, nil
}

func (cl *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := cl.do(ctx, call{
		endpoint: "auth.forgot_password",
		method:   http.MethodPost,
		path:     "/api/auth/forgot-password",
		body:     map[string]string{"email": email},
	})
	return err
}

func (cl *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	_, err := cl.do(ctx, call{
		endpoint: "auth.reset_password",
		method:   http.MethodPost,
		path:     "/api/auth/reset-password/" + escape(resetToken),
		body:     map[string]string{"password": password},
	})
	return err
}

func (cl *Client) CheckAuth(ctx context.Context, token string) (domainauth.User, error) {
	if token == "" {
		return domainauth.User{}, apperrors.Unauthorized("no backend token")
	}
	resp, err := cl.do(ctx, call{
		endpoint: "auth.check",
		method:   http.MethodGet,
		path:     "/api/auth/check-auth",
		token:    token,
	})
	if err != nil {
		return domainauth.User{}, err
	}
	return decodeUser(resp.body)
}

// authenticate performs c and reads the user and token from the reply.
func (cl *Client) authenticate(ctx context.Context, c call) (ports.AuthResult, error) {
	resp, err := cl.do(ctx, c)
	if err != nil {
		return ports.AuthResult{}, err
	}
	user, err := decodeUser(resp.body)
	if err != nil {
		return ports.AuthResult{}, err
	}

	token := cl.tokenFrom(resp)
	if token == "" {
		token = tokenEnvelope.searchString(resp.body)
	}
	res := ports.AuthResult{User: user, Token: token}
	res.ExpiresAt, _ = TokenExpiry(token)
	return res, nil
}

func decodeUser(body []byte) (domainauth.User, error) {
	var w wireUser
	if _, err := userEnvelope.decode(body, &w); err != nil {
		return domainauth.User{}, err
	}
	if w.ID == "" {
		return domainauth.User{}, apperrors.Unavailable("member service returned a user without an id")
	}
	u, err := w.toUser()
	if err != nil {
		return domainauth.User{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "member service returned an unknown role")
	}
	return u, nil
}
