package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/logger"
)

func newRedisStoreTest(t *testing.T, prefix string) (*redisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return newRedisStore(rdb, prefix, logger.Nop()), mr
}

func TestRedisStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	kv, mr := newRedisStoreTest(t, "ek:")

	_, err := kv.Get(ctx, "auth-users")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "auth-users", []byte(`[]`)))

	// stored under the namespaced key
	raw, err := mr.Get("ek:auth-users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)

	got, err := kv.Get(ctx, "auth-users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, kv.Delete(ctx, "auth-users"))
	assert.False(t, mr.Exists("ek:auth-users"))

	// second delete is not an error
	assert.NoError(t, kv.Delete(ctx, "auth-users"))
}

func TestRedisStore_Keys(t *testing.T) {
	ctx := context.Background()
	kv, mr := newRedisStoreTest(t, "ek:")

	require.NoError(t, mr.Set("foreign", "x"))
	require.NoError(t, kv.Set(ctx, "b", []byte("2")))
	require.NoError(t, kv.Set(ctx, "a", []byte("1")))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestRedisStore_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	kv, _ := newRedisStoreTest(t, "")

	swapped, err := kv.CompareAndSwap(ctx, "k", nil, []byte("v1"))
	require.NoError(t, err)
	assert.True(t, swapped)

	swapped, err = kv.CompareAndSwap(ctx, "k", nil, []byte("v2"))
	require.NoError(t, err)
	assert.False(t, swapped, "key already exists")

	swapped, err = kv.CompareAndSwap(ctx, "k", []byte("stale"), []byte("v2"))
	require.NoError(t, err)
	assert.False(t, swapped, "previous value does not match")

	swapped, err = kv.CompareAndSwap(ctx, "k", []byte("v1"), []byte("v2"))
	require.NoError(t, err)
	assert.True(t, swapped)

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	swapped, err = kv.CompareAndSwap(ctx, "absent", []byte("v1"), []byte("v2"))
	require.NoError(t, err)
	assert.False(t, swapped)
}

func TestRedisStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	kv, mr := newRedisStoreTest(t, "")
	mr.Close()

	_, err := kv.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestNewRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	kv, err := NewRedisStore(context.Background(), config.Redis{Address: mr.Addr(), KeyPrefix: "ek:"}, logger.Nop())
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("ek:k"))
}

func TestNewRedisStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisStore(context.Background(), config.Redis{Address: addr}, logger.Nop())
	assert.ErrorIs(t, err, ErrRedisUnavailable)
}
