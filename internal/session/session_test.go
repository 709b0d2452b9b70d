package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitChallengeAPI/internal/apperror"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "sess:"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, "abc", map[string]string{"userId": "u-1"}, time.Hour))
	assert.True(t, mr.Exists("sess:abc"))

	values, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "u-1", values["userId"])

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Load(ctx, "abc")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, "abc", map[string]string{"userId": "u-1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "abc")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Load(ctx, "abc")
	require.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	require.ErrorIs(t, store.Ping(ctx), apperror.ErrStoreUnavailable)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "abc", map[string]string{"userId": "u-1"}, time.Minute))
	values, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	values["userId"] = "mutated"

	again, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "u-1", again["userId"])

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, "abc")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func newManager(store Store) *Manager {
	return NewManager(store, []byte("0123456789abcdef0123456789abcdef"), CookieConfig{
		Name: "sid",
		TTL:  time.Hour,
	})
}

func TestManagerIssuesAndReadsCookie(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := newManager(store)

	first, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.True(t, first.IsNew())
	assert.Empty(t, first.UserID())

	first.SetUserID("u-1")
	rr := httptest.NewRecorder()
	require.NoError(t, manager.Save(ctx, rr, first))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	second, err := manager.Load(ctx, req)
	require.NoError(t, err)
	assert.False(t, second.IsNew())
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "u-1", second.UserID())
}

func TestManagerIgnoresTamperedCookie(t *testing.T) {
	ctx := context.Background()
	manager := newManager(NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "forged"})

	s, err := manager.Load(ctx, req)
	require.NoError(t, err)
	assert.True(t, s.IsNew())
	assert.Empty(t, s.UserID())
}

func TestManagerDestroyExpiresCookie(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	manager := newManager(store)

	s, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	s.SetUserID("u-1")
	require.NoError(t, manager.Save(ctx, httptest.NewRecorder(), s))

	rr := httptest.NewRecorder()
	require.NoError(t, manager.Destroy(ctx, rr, s))

	_, err = store.Load(ctx, s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestContextRoundTrip(t *testing.T) {
	s := &Session{ID: "abc"}
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
