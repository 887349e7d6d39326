package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/models"
)

func TestNewKVStore_Memory(t *testing.T) {
	kv, err := NewKVStore(context.Background(), config.Storage{Driver: config.DriverMemory}, logger.Nop())
	require.NoError(t, err)
	defer kv.Close()

	_, ok := kv.(Swapper)
	assert.True(t, ok)
}

func TestNewKVStore_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	kv, err := NewKVStore(context.Background(), config.Storage{
		Driver: config.DriverRedis,
		Redis:  config.Redis{Address: mr.Addr()},
	}, logger.Nop())
	require.NoError(t, err)
	defer kv.Close()

	_, ok := kv.(Swapper)
	assert.True(t, ok)
}

func TestNewKVStore_UnknownDriver(t *testing.T) {
	_, err := NewKVStore(context.Background(), config.Storage{Driver: "etcd"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestRepositories_ShareStore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repos := NewRepositories(kv, logger.Nop())

	require.NoError(t, repos.UserRepository.Append(ctx, testUser("a@x.com")))
	require.NoError(t, repos.SessionRepository.Set(ctx, models.Session{ID: "u1", Email: "a@x.com", DisplayName: "A"}))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{SessionKey, UsersKey}, keys)

	assert.NoError(t, repos.Close())
}
