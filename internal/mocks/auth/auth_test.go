package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	apperrors "github.com/memberhub/portal/internal/errors"
	"github.com/memberhub/portal/internal/ports"
)

func TestFakeAuthBackend_SignupLoginCheck(t *testing.T) {
	ctx := context.Background()
	f := NewFakeAuthBackend()

	res, err := f.Signup(ctx, ports.SignupRequest{FirstName: "Ada", LastName: "L", Email: "Ada@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RolePending, res.User.Role)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)

	_, err = f.Signup(ctx, ports.SignupRequest{Email: "ada@example.com"})
	assert.True(t, apperrors.IsConflict(err))

	_, err = f.Login(ctx, "ada@example.com", "wrong")
	assert.True(t, apperrors.IsUnauthorized(err))

	login, err := f.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)

	f.SetRole("ada@example.com", domainauth.RoleMember)
	u, err := f.CheckAuth(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleMember, u.Role)

	require.NoError(t, f.Logout(ctx, login.Token))
	_, err = f.CheckAuth(ctx, login.Token)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, 1, f.Calls("Logout"))
}

func TestFakeAuthBackend_VerifyEmail(t *testing.T) {
	ctx := context.Background()
	f := NewFakeAuthBackend()
	token := f.AddAccount(domainauth.User{Email: "a@example.com", Role: domainauth.RolePending}, "pw")

	_, err := f.VerifyEmail(ctx, token, "000000")
	assert.True(t, apperrors.IsValidation(err))

	res, err := f.VerifyEmail(ctx, token, DefaultVerificationCode)
	require.NoError(t, err)
	assert.True(t, res.User.IsVerified)
	assert.Equal(t, token, res.Token)
}

func TestFakeAuthBackend_PasswordReset(t *testing.T) {
	ctx := context.Background()
	f := NewFakeAuthBackend()
	f.AddAccount(domainauth.User{Email: "a@example.com", Role: domainauth.RoleMember}, "old-password")

	require.NoError(t, f.ForgotPassword(ctx, "nobody@example.com"))
	_, ok := f.ResetTokenFor("nobody@example.com")
	assert.False(t, ok)

	require.NoError(t, f.ForgotPassword(ctx, "a@example.com"))
	reset, ok := f.ResetTokenFor("a@example.com")
	require.True(t, ok)

	require.NoError(t, f.ResetPassword(ctx, reset, "new-password"))
	assert.True(t, apperrors.IsValidation(f.ResetPassword(ctx, reset, "again")))

	_, err := f.Login(ctx, "a@example.com", "new-password")
	require.NoError(t, err)
}
