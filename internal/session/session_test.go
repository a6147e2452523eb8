package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return NewRedisRevoker(rdb), mr
}

func TestRedisRevoker(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown session is not revoked", func(t *testing.T) {
		r, _ := setupRedis(t)
		revoked, err := r.IsRevoked(ctx, "sid-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked session is reported", func(t *testing.T) {
		r, mr := setupRedis(t)
		require.NoError(t, r.Revoke(ctx, "sid-1", time.Hour))

		revoked, err := r.IsRevoked(ctx, "sid-1")
		require.NoError(t, err)
		assert.True(t, revoked)
		assert.Equal(t, time.Hour, mr.TTL(revokedPrefix+"sid-1"))
	})

	t.Run("revocation expires with the token", func(t *testing.T) {
		r, mr := setupRedis(t)
		require.NoError(t, r.Revoke(ctx, "sid-2", time.Minute))
		mr.FastForward(2 * time.Minute)

		revoked, err := r.IsRevoked(ctx, "sid-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		r, mr := setupRedis(t)
		require.NoError(t, r.Revoke(ctx, "sid-3", 0))
		assert.False(t, mr.Exists(revokedPrefix+"sid-3"))
	})

	t.Run("redis down surfaces an error", func(t *testing.T) {
		r, mr := setupRedis(t)
		mr.Close()
		_, err := r.IsRevoked(ctx, "sid-4")
		assert.Error(t, err)
	})
}

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	r, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer r.Close()

	_, err = Connect(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestNoopRevoker(t *testing.T) {
	var r Revoker = NoopRevoker{}
	require.NoError(t, r.Revoke(context.Background(), "sid", time.Hour))
	revoked, err := r.IsRevoked(context.Background(), "sid")
	require.NoError(t, err)
	assert.False(t, revoked)
}
