package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/ports"
	"github.com/memberhub/portal/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))
	ctx := context.Background()

	session := testutil.SessionWithRole("test-session-1", domainauth.RoleMember)
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	require.NotNil(t, got.User)
	assert.Equal(t, session.User.ID, got.User.ID)
	assert.Equal(t, domainauth.RoleMember, got.Role())
	assert.Equal(t, session.BackendToken, got.BackendToken)
	assert.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))

	_, err := store.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testutil.SessionWithRole("test-session-delete", domainauth.RoleAdmin)))
	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_TTLFollowsExpiry(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	session := testutil.SessionWithRole("test-session-ttl", domainauth.RoleMember)
	session.ExpiresAt = time.Now().Add(10 * time.Minute)
	require.NoError(t, store.Save(ctx, session))

	ttl, err := client.TTL(ctx, DefaultPrefix+"test-session-ttl").Result()
	require.NoError(t, err)
	assert.InDelta(t, (10 * time.Minute).Seconds(), ttl.Seconds(), 5)
}

func TestSessionStore_RejectsExpired(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))

	session := testutil.SessionWithRole("expired", domainauth.RoleMember)
	session.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, store.Save(context.Background(), session))

	assert.Error(t, store.Save(context.Background(), domainauth.Session{ExpiresAt: time.Now().Add(time.Hour)}))
}

func TestSessionStore_ExpiredOnRead(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	now := time.Now()
	clock := now

	store := NewSessionStore(client, SessionStoreOptions{Now: func() time.Time { return clock }})
	session := testutil.SessionWithRole("ages", domainauth.RoleMember)
	session.ExpiresAt = now.Add(time.Hour)
	require.NoError(t, store.Save(ctx, session))

	clock = now.Add(2 * time.Hour)
	_, err := store.Get(ctx, "ages")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	exists, err := client.Exists(ctx, DefaultPrefix+"ages").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestSessionStore_CorruptRecordDropped(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, DefaultPrefix+"bad", `{"id":"bad","user":{"id":"u","role":"owner"}}`, time.Hour).Err())

	_, err := store.Get(ctx, "bad")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_List(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t), SessionStoreOptions{Prefix: "test:list:"})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testutil.SessionWithRole("a", domainauth.RoleMember)))
	require.NoError(t, store.Save(ctx, testutil.SessionWithRole("b", domainauth.RoleAdmin)))

	sessions, err := store.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
