package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxActivityRetries = 3

// RedisStore keeps each session as a JSON blob under prefix+token with a TTL
// matching the session expiry. Redis evicts expired sessions itself.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a redis-backed store. An empty prefix defaults to "session:".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func ttlUntil(t time.Time) time.Duration {
	ttl := time.Until(t)
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

// Create stores a new session.
func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if err := validForWrite(session); err != nil {
		return err
	}
	blob, err := encode(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.Token), blob, ttlUntil(session.ExpiresAt)).Err()
}

// Get retrieves a session by token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	blob, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	session, err := decode(blob)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Update replaces an existing session.
func (s *RedisStore) Update(ctx context.Context, session *Session) error {
	if err := validForWrite(session); err != nil {
		return err
	}
	blob, err := encode(session)
	if err != nil {
		return err
	}

	ok, err := s.client.SetXX(ctx, s.key(session.Token), blob, ttlUntil(session.ExpiresAt)).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// UpdateActivity moves the last activity time and expiry. The rewrite runs
// under WATCH so a concurrent Update is never overwritten with stale data;
// on conflict the record is re-read, and an update older than the stored
// activity is skipped.
func (s *RedisStore) UpdateActivity(ctx context.Context, token string, lastActivity, expiresAt time.Time) error {
	key := s.key(token)
	touch := func(tx *redis.Tx) error {
		blob, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		session, err := decode(blob)
		if err != nil {
			return err
		}
		if !lastActivity.After(session.LastActivityAt) {
			return nil
		}
		session.LastActivityAt = lastActivity
		session.ExpiresAt = expiresAt
		if blob, err = encode(session); err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetXX(ctx, key, blob, ttlUntil(expiresAt))
			return nil
		})
		return err
	}

	for range maxActivityRetries {
		err := s.client.Watch(ctx, touch, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return ErrActivityConflict
}

// Delete removes a session by token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

// DeleteExpired is a no-op; keys carry their own TTL.
func (s *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}
