package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/validators"
	"github.com/MKhiriev/energy-keeper/models"
)

// SessionKey is the KV key holding the current session record.
const SessionKey = "auth-session"

type sessionRepository struct {
	kv     KVStore
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] over kv.
func NewSessionRepository(kv KVStore, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		kv:     kv,
		logger: logger,
	}
}

func (r *sessionRepository) Get(ctx context.Context) (models.Session, error) {
	raw, err := r.kv.Get(ctx, SessionKey)
	if err != nil {
		return models.Session{}, err
	}

	session, err := validators.DecodeSession(raw)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrCorruptSession, err)
	}

	return session, nil
}

func (r *sessionRepository) Set(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = r.kv.Set(ctx, SessionKey, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
