package redis

// Package redis provides the Redis-backed session store.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/ports"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "session:"

// SessionStore keeps one JSON value per session with a TTL matching ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Prefix string
	Now    func() time.Time
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, opts ...SessionStoreOptions) *SessionStore {
	s := &SessionStore{client: client, prefix: DefaultPrefix, now: time.Now}
	if len(opts) > 0 {
		if opts[0].Prefix != "" {
			s.prefix = opts[0].Prefix
		}
		if opts[0].Now != nil {
			s.now = opts[0].Now
		}
	}
	return s
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A record we cannot decode (e.g. a retired role) is unusable; drop it.
		if delErr := s.Delete(ctx, id); delErr != nil {
			return domainauth.Session{}, errors.Join(fmt.Errorf("unmarshal session: %w", err), delErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	if sess.Expired(s.now()) {
		if delErr := s.Delete(ctx, id); delErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", delErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// List scans the key space for sessions. Undecodable or expired entries are skipped.
func (s *SessionStore) List(ctx context.Context) ([]domainauth.Session, error) {
	var (
		out    []domainauth.Session
		cursor uint64
	)
	now := s.now()
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		for _, key := range keys {
			sess, err := s.Get(ctx, strings.TrimPrefix(key, s.prefix))
			if errors.Is(err, ports.ErrSessionNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if !sess.Expired(now) {
				out = append(out, sess)
			}
		}
		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}
