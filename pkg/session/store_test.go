package session_test

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/homedata/pkg/session"
)

func newStoredSession(ttl time.Duration) *session.Session {
	now := time.Now()
	return &session.Session{
		ID:             uuid.New(),
		Token:          uuid.NewString(),
		Data:           map[string]any{"messages": []string{"hello"}},
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// testStore runs the behaviour every Store must share.
func testStore(t *testing.T, store session.Store) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
		assert.False(t, got.IsNew())
		assert.False(t, got.IsModified())

		msgs, ok := got.GetStrings("messages")
		require.True(t, ok)
		assert.Equal(t, []string{"hello"}, msgs)
	})

	t.Run("returned session is detached", func(t *testing.T) {
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		got.Set("extra", "value")

		again, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		_, ok := again.Get("extra")
		assert.False(t, ok)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := store.Get(ctx, "does-not-exist")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("invalid session", func(t *testing.T) {
		assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Update(ctx, nil), session.ErrInvalidSession)
	})

	t.Run("update", func(t *testing.T) {
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		s.Set("messages", []string{})
		require.NoError(t, store.Update(ctx, s))

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		msgs, ok := got.GetStrings("messages")
		require.True(t, ok)
		assert.Empty(t, msgs)

		missing := newStoredSession(time.Hour)
		assert.ErrorIs(t, store.Update(ctx, missing), session.ErrSessionNotFound)
	})

	t.Run("update activity", func(t *testing.T) {
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		at := time.Now().Add(time.Minute).Truncate(time.Millisecond)
		exp := at.Add(2 * time.Hour)
		require.NoError(t, store.UpdateActivity(ctx, s.Token, at, exp))

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		assert.WithinDuration(t, at, got.LastActivityAt, time.Millisecond)
		assert.WithinDuration(t, exp, got.ExpiresAt, time.Millisecond)
		_, ok := got.Get("messages")
		assert.True(t, ok, "activity updates keep data")
	})

	t.Run("delete", func(t *testing.T) {
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))
		require.NoError(t, store.Delete(ctx, s.Token))

		_, err := store.Get(ctx, s.Token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		assert.NoError(t, store.Delete(ctx, s.Token))
	})

	t.Run("expired", func(t *testing.T) {
		s := newStoredSession(-time.Minute)
		require.NoError(t, store.Create(ctx, s))

		_, err := store.Get(ctx, s.Token)
		assert.True(t, err != nil)
		assert.NoError(t, store.DeleteExpired(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	testStore(t, store)

	t.Run("delete expired", func(t *testing.T) {
		ctx := context.Background()
		expired := newStoredSession(-time.Minute)
		live := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, expired))
		require.NoError(t, store.Create(ctx, live))

		before := store.Len()
		require.NoError(t, store.DeleteExpired(ctx))
		assert.Less(t, store.Len(), before)

		_, err := store.Get(ctx, live.Token)
		assert.NoError(t, err)
	})
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(10 * time.Millisecond)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Create(context.Background(), newStoredSession(-time.Minute)))
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewRedisStore(client, "test:")
	testStore(t, store)

	t.Run("ttl follows expiry", func(t *testing.T) {
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(context.Background(), s))

		assert.True(t, mr.Exists("test:"+s.Token))
		ttl := mr.TTL("test:" + s.Token)
		assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

		mr.FastForward(2 * time.Hour)
		_, err := store.Get(context.Background(), s.Token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("older activity keeps newer data", func(t *testing.T) {
		ctx := context.Background()
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		touchedAt := time.Now()
		s.LastActivityAt = touchedAt.Add(time.Second)
		s.Set("messages", []string{"hello", "newer"})
		require.NoError(t, store.Update(ctx, s))

		require.NoError(t, store.UpdateActivity(ctx, s.Token, touchedAt, touchedAt.Add(time.Hour)))

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		msgs, _ := got.GetStrings("messages")
		assert.Equal(t, []string{"hello", "newer"}, msgs)
		assert.WithinDuration(t, s.LastActivityAt, got.LastActivityAt, time.Millisecond)
	})

	t.Run("activity updates never drop concurrent writes", func(t *testing.T) {
		ctx := context.Background()
		s := newStoredSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				at := time.Now()
				err := store.UpdateActivity(ctx, s.Token, at, at.Add(time.Hour))
				if err != nil && !errors.Is(err, session.ErrActivityConflict) {
					assert.NoError(t, err)
					return
				}
			}
		}()

		want := []string{"hello"}
		for i := range 50 {
			want = append(want, strconv.Itoa(i))
			s.LastActivityAt = time.Now()
			s.Set("messages", want)
			require.NoError(t, store.Update(ctx, s))
		}
		wg.Wait()

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		msgs, _ := got.GetStrings("messages")
		assert.Equal(t, want, msgs)
	})
}

func TestMongoStore(t *testing.T) {
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL not set")
	}

	ctx := context.Background()
	client, err := mongo.Connect(options.Client().ApplyURI(url))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	coll := client.Database("homedata_test").Collection("sessions_" + uuid.NewString()[:8])
	t.Cleanup(func() { _ = coll.Drop(ctx) })

	store, err := session.NewMongoStore(ctx, coll)
	require.NoError(t, err)

	testStore(t, store)
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store, err := session.NewStore(ctx, session.Config{Store: session.StoreMemory}, session.Backends{})
	require.NoError(t, err)
	assert.IsType(t, &session.MemoryStore{}, store)

	_, err = session.NewStore(ctx, session.Config{Store: session.StoreRedis}, session.Backends{})
	assert.ErrorIs(t, err, session.ErrUnknownStoreKind)

	_, err = session.NewStore(ctx, session.Config{Store: "bogus"}, session.Backends{})
	assert.ErrorIs(t, err, session.ErrUnknownStoreKind)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err = session.NewStore(ctx, session.Config{Store: session.StoreRedis}, session.Backends{Redis: client})
	require.NoError(t, err)
	assert.IsType(t, &session.RedisStore{}, store)
}
