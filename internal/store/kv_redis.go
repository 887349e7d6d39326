package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/logger"
)

// ErrRedisUnavailable is returned when the Redis server cannot be reached at
// startup.
var ErrRedisUnavailable = errors.New("redis unavailable")

const scanBatchSize = 100

// ARGV[1] is "1" when a previous value is expected, ARGV[2] that value,
// ARGV[3] the new value. Returns 1 when the value was written.
const compareAndSwapScript = `
local current = redis.call("GET", KEYS[1])
if ARGV[1] == "0" then
  if current then
    return 0
  end
elseif current ~= ARGV[2] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[3])
return 1
`

var compareAndSwapLua = redis.NewScript(compareAndSwapScript)

// redisStore is the [KVStore] over a Redis server. Every key is namespaced
// with prefix.
type redisStore struct {
	rdb    redis.UniversalClient
	prefix string
	logger *logger.Logger
}

// NewRedisStore connects to Redis and returns a [KVStore] that also
// implements [Swapper].
func NewRedisStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (KVStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisStore").Str("address", cfg.Address).Msg("error connecting redis (ping)")
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	log.Info().Str("func", "NewRedisStore").Msg("connected to redis successfully")

	return newRedisStore(rdb, cfg.KeyPrefix, log), nil
}

func newRedisStore(rdb redis.UniversalClient, prefix string, log *logger.Logger) *redisStore {
	return &redisStore{rdb: rdb, prefix: prefix, logger: log}
}

func (s *redisStore) key(key string) string {
	return s.prefix + key
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisStore.Get").Msg("error reading key")
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisStore.Set").Msg("error writing key")
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisStore.Delete").Msg("error deleting key")
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *redisStore) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)

	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	slices.Sort(keys)
	return slices.Compact(keys), nil
}

// CompareAndSwap implements [Swapper] with a Lua script so the compare and
// the write run as one atomic server-side step.
func (s *redisStore) CompareAndSwap(ctx context.Context, key string, prev, next []byte) (bool, error) {
	expectPrev := "1"
	if prev == nil {
		expectPrev = "0"
	}

	res, err := compareAndSwapLua.Run(ctx, s.rdb, []string{s.key(key)}, expectPrev, prev, next).Int()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisStore.CompareAndSwap").Msg("error running swap script")
		return false, fmt.Errorf("redis compare-and-swap %q: %w", key, err)
	}

	return res == 1, nil
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}
