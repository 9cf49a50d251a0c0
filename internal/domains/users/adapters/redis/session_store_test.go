package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

func setupTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func TestSaveGetDelete(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok", UserID: 3, ExpiresAt: expires}))
	assert.True(t, mr.Exists("session:tok"))
	assert.Greater(t, mr.TTL("session:tok"), 59*time.Minute)

	session, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(3), session.UserID)
	assert.True(t, expires.Equal(session.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionExpiresWithKey(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Session{Token: "tok", UserID: 1, ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSaveAlreadyExpiredStoresNothing(t *testing.T) {
	store, mr := setupTestStore(t)

	require.NoError(t, store.Save(context.Background(), &domain.Session{Token: "tok", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}))
	assert.False(t, mr.Exists("session:tok"))
}
