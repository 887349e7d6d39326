package store

import (
	"context"

	"github.com/MKhiriev/energy-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KVStore is the asynchronous key-value persistence the credential core runs
// on. Values are opaque byte slices; the repositories encode them as JSON.
type KVStore interface {
	// Get returns the value stored under key or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)
	// Close releases the backend's resources.
	Close() error
}

// Swapper is implemented by stores that can replace a value atomically.
//
// CompareAndSwap writes next under key only if the current value equals prev.
// A nil prev means the key must be absent. It reports whether the write
// happened.
type Swapper interface {
	CompareAndSwap(ctx context.Context, key string, prev, next []byte) (bool, error)
}

// UserRepository persists the list of registered accounts.
type UserRepository interface {
	// List returns every well-formed stored user. Malformed entries are skipped.
	List(ctx context.Context) ([]models.StoredUser, error)
	// FindByEmail returns the user with the exact email or [ErrUserNotFound].
	FindByEmail(ctx context.Context, email string) (models.StoredUser, error)
	// Append adds user to the list unless its email is already registered,
	// in which case [ErrEmailTaken] is returned.
	Append(ctx context.Context, user models.StoredUser) error
}

// SessionRepository persists the single current-session slot.
type SessionRepository interface {
	// Get returns the stored session. Any read or shape problem is an error.
	Get(ctx context.Context) (models.Session, error)
	Set(ctx context.Context, session models.Session) error
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
