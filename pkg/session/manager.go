package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/homedata/pkg/cookie"
)

// Manager loads, persists and destroys sessions.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
	serialize     bool
	locks         *tokenLocks
	activityChan  chan activityUpdate
	done          chan struct{}
	stopped       chan struct{}
	closeOnce     sync.Once
	ownedStore    *MemoryStore
}

type activityUpdate struct {
	token     string
	at        time.Time
	expiresAt time.Time
}

// New creates a session manager. Without WithTransport a cookie manager is
// required for the default cookie transport.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config:       DefaultConfig(),
		logger:       slog.New(slog.DiscardHandler),
		serialize:    true,
		locks:        newTokenLocks(),
		activityChan: make(chan activityUpdate, 1000),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.ownedStore = NewMemoryStore(m.config.CleanupInterval)
		m.store = m.ownedStore
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			return nil, ErrNoTransport
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	go m.activityWorker()

	return m, nil
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// load resolves the request token to a session. A missing, unknown or
// expired token yields a pending session; stale is true when the client
// presented a token that no longer names a session.
func (m *Manager) load(ctx context.Context, token string) (sess *Session, stale bool, err error) {
	if token == "" {
		return newPending(), false, nil
	}

	sess, err = m.store.Get(ctx, token)
	switch {
	case err == nil:
		return sess, false, nil
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
		return newPending(), true, nil
	default:
		return nil, false, err
	}
}

// save persists sess if anything requires it. Headers must still be
// writable when a new session is issued.
func (m *Manager) save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess.destroyed || !sess.modified {
		return nil
	}

	now := time.Now()

	if !sess.persisted {
		if len(sess.Data) == 0 {
			sess.modified = false
			return nil
		}
		token, err := generateToken()
		if err != nil {
			return err
		}
		sess.Token = token
		sess.LastActivityAt = now
		sess.ExpiresAt = m.config.expiry(sess.CreatedAt, now)
		if err := m.store.Create(ctx, sess); err != nil {
			return err
		}
		sess.persisted = true
		sess.modified = false
		return m.transport.SetToken(w, sess.Token, m.config.IdleTimeout)
	}

	sess.LastActivityAt = now
	sess.ExpiresAt = m.config.expiry(sess.CreatedAt, now)
	if err := m.store.Update(ctx, sess); err != nil {
		return err
	}
	sess.modified = false
	return nil
}

// touch queues an activity update for an unmodified, persisted session.
func (m *Manager) touch(sess *Session) {
	if sess.destroyed || !sess.persisted || sess.modified {
		return
	}
	if time.Since(sess.LastActivityAt) < m.config.ActivityUpdateThreshold {
		return
	}
	now := time.Now()
	select {
	case m.activityChan <- activityUpdate{token: sess.Token, at: now, expiresAt: m.config.expiry(sess.CreatedAt, now)}:
	default:
		// drop when the worker is behind
	}
}

// Destroy deletes the request's session record and clears the client token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if sess, ok := FromContext(r.Context()); ok {
		sess.destroyed = true
		sess.Data = make(map[string]any)
		sess.modified = false
		if sess.persisted {
			if err := m.store.Delete(ctx, sess.Token); err != nil {
				return err
			}
		}
	} else if token, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}

	return m.transport.ClearToken(w)
}

func (m *Manager) activityWorker() {
	defer close(m.stopped)
	apply := func(u activityUpdate) {
		if err := m.store.UpdateActivity(context.Background(), u.token, u.at, u.expiresAt); err != nil && !errors.Is(err, ErrSessionNotFound) {
			m.logger.Warn("session activity update failed", slog.String("error", err.Error()))
		}
	}
	for {
		select {
		case u := <-m.activityChan:
			apply(u)
		case <-m.done:
			for {
				select {
				case u := <-m.activityChan:
					apply(u)
				default:
					return
				}
			}
		}
	}
}

// Close drains pending activity updates and stops the worker. The default
// memory store created by New is closed too; stores passed with WithStore
// belong to the caller.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	<-m.stopped
	if m.ownedStore != nil {
		return m.ownedStore.Close()
	}
	return nil
}

// generateToken creates a cryptographically secure token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
