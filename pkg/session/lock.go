package session

import (
	"context"
	"sync"
)

// tokenLocks serializes requests that share a session token.
type tokenLocks struct {
	mu    sync.Mutex
	locks map[string]*tokenLock
}

type tokenLock struct {
	ch   chan struct{}
	refs int
}

func newTokenLocks() *tokenLocks {
	return &tokenLocks{locks: make(map[string]*tokenLock)}
}

// lock blocks until token is free or ctx is done. The returned func releases it.
func (l *tokenLocks) lock(ctx context.Context, token string) (func(), error) {
	l.mu.Lock()
	tl, ok := l.locks[token]
	if !ok {
		tl = &tokenLock{ch: make(chan struct{}, 1)}
		l.locks[token] = tl
	}
	tl.refs++
	l.mu.Unlock()

	select {
	case tl.ch <- struct{}{}:
		return func() {
			<-tl.ch
			l.release(token, tl)
		}, nil
	case <-ctx.Done():
		l.release(token, tl)
		return nil, ctx.Err()
	}
}

func (l *tokenLocks) release(token string, tl *tokenLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tl.refs--
	if tl.refs == 0 {
		delete(l.locks, token)
	}
}
