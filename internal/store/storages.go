package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/logger"
)

// Repositories groups the repositories the credential core runs on,
// together with the store they share.
type Repositories struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository

	kv KVStore
}

// NewRepositories builds every repository over the same kv store.
func NewRepositories(kv KVStore, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(kv, log),
		SessionRepository: NewSessionRepository(kv, log),
		kv:                kv,
	}
}

// Close releases the shared store.
func (r *Repositories) Close() error {
	return r.kv.Close()
}

// NewKVStore opens the backend selected by cfg.Driver. SQL backends are
// migrated before use.
func NewKVStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (KVStore, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		log.Info().Str("driver", config.DriverMemory).Msg("using in-memory kv store")
		return NewMemoryStore(), nil

	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, log)

	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, log)

	case config.DriverRedis:
		return NewRedisStore(ctx, cfg.Redis, log)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func migrated(db *DB, log *logger.Logger) (KVStore, error) {
	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewKVStore").Msg("error migrating database")
		_ = db.Close()
		return nil, err
	}
	return NewSQLStore(db, log), nil
}
