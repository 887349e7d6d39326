package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/validators"
	"github.com/MKhiriev/energy-keeper/models"
)

// UsersKey is the KV key holding the JSON array of stored users.
const UsersKey = "auth-users"

// Compare-and-swap retry policy of [UserRepository.Append].
const (
	appendMaxRetries = 8
	appendBackoff    = 5 * time.Millisecond
)

// userRepository is the KV-backed implementation of [UserRepository]. The
// whole list lives under [UsersKey].
type userRepository struct {
	kv     KVStore
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] over kv.
func NewUserRepository(kv KVStore, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		kv:     kv,
		logger: logger,
	}
}

// userList is one read of the stored list.
type userList struct {
	// raw is the value exactly as read; nil when the key is absent.
	raw []byte
	// entries keeps every element verbatim, malformed ones included, so a
	// write-back never drops data this build cannot parse.
	entries []json.RawMessage
	// users holds the well-formed entries.
	users []models.StoredUser
	// skippedEmails holds the string emails of malformed entries. They
	// still reserve the address.
	skippedEmails []string
}

// emailOnly pulls the email out of an entry the record decoder rejected.
type emailOnly struct {
	Email *string `json:"email"`
}

func (l userList) find(email string) (models.StoredUser, bool) {
	for _, u := range l.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.StoredUser{}, false
}

// taken reports whether any stored entry, malformed ones included, carries
// email.
func (l userList) taken(email string) bool {
	if _, ok := l.find(email); ok {
		return true
	}
	for _, e := range l.skippedEmails {
		if e == email {
			return true
		}
	}
	return false
}

func (r *userRepository) load(ctx context.Context) (userList, error) {
	log := logger.FromContext(ctx)

	raw, err := r.kv.Get(ctx, UsersKey)
	if errors.Is(err, ErrKeyNotFound) {
		return userList{}, nil
	}
	if err != nil {
		return userList{}, fmt.Errorf("read user list: %w", err)
	}

	var entries []json.RawMessage
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		log.Error().Str("func", "*userRepository.load").Msg("user list is not a JSON array")
		return userList{}, ErrCorruptUserList
	}
	if err = json.Unmarshal(trimmed, &entries); err != nil {
		log.Err(err).Str("func", "*userRepository.load").Msg("user list is not a JSON array")
		return userList{}, fmt.Errorf("%w: %w", ErrCorruptUserList, err)
	}

	list := userList{raw: raw, entries: entries, users: make([]models.StoredUser, 0, len(entries))}
	for i, entry := range entries {
		u, err := validators.DecodeStoredUser(entry)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping malformed user record")

			var shape emailOnly
			if json.Unmarshal(entry, &shape) == nil && shape.Email != nil {
				list.skippedEmails = append(list.skippedEmails, *shape.Email)
			}
			continue
		}
		list.users = append(list.users, u)
	}

	return list, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.StoredUser, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return list.users, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.StoredUser, error) {
	list, err := r.load(ctx)
	if err != nil {
		return models.StoredUser{}, err
	}

	u, ok := list.find(email)
	if !ok {
		return models.StoredUser{}, ErrUserNotFound
	}
	return u, nil
}

// Append runs read, duplicate check, append and write. On a store that
// implements [Swapper] the write is a compare-and-swap against the value
// read, and a lost race repeats the whole cycle, duplicate check included.
// Other stores get a plain read-modify-write.
func (r *userRepository) Append(ctx context.Context, user models.StoredUser) error {
	swapper, ok := r.kv.(Swapper)
	if !ok {
		return r.appendOnce(ctx, user, func(ctx context.Context, _ userList, next []byte) error {
			return r.kv.Set(ctx, UsersKey, next)
		})
	}

	backoff := retry.WithMaxRetries(appendMaxRetries, retry.NewExponential(appendBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return r.appendOnce(ctx, user, func(ctx context.Context, list userList, next []byte) error {
			swapped, err := swapper.CompareAndSwap(ctx, UsersKey, list.raw, next)
			if err != nil {
				return err
			}
			if !swapped {
				logger.FromContext(ctx).Debug().Msg("user list changed concurrently, retrying append")
				return retry.RetryableError(ErrWriteConflict)
			}
			return nil
		})
	})
}

func (r *userRepository) appendOnce(ctx context.Context, user models.StoredUser, write func(context.Context, userList, []byte) error) error {
	list, err := r.load(ctx)
	if err != nil {
		return err
	}

	if list.taken(user.Email) {
		return ErrEmailTaken
	}

	entry, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}

	entries := make([]json.RawMessage, 0, len(list.entries)+1)
	entries = append(entries, list.entries...)
	entries = append(entries, entry)

	next, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode user list: %w", err)
	}

	return write(ctx, list, next)
}
