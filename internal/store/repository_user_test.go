package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/models"
)

// plainStore hides the Swapper implementation of the wrapped store.
type plainStore struct {
	KVStore
}

// failingStore fails every call with err.
type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) ([]byte, error) { return nil, s.err }
func (s failingStore) Set(context.Context, string, []byte) error   { return s.err }
func (s failingStore) Delete(context.Context, string) error        { return s.err }
func (s failingStore) Keys(context.Context) ([]string, error)      { return nil, s.err }
func (s failingStore) Close() error                                { return nil }

func testUser(email string) models.StoredUser {
	return models.StoredUser{
		ID:           "id-" + email,
		Email:        email,
		DisplayName:  "User " + email,
		PasswordHash: strings.Repeat("ab", 32),
		Salt:         strings.Repeat("cd", 16),
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestUserRepository_EmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore(), logger.Nop())

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = repo.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_AppendAndFind(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	repo := NewUserRepository(kv, logger.Nop())

	require.NoError(t, repo.Append(ctx, testUser("a@x.com")))
	require.NoError(t, repo.Append(ctx, testUser("b@x.com")))

	found, err := repo.FindByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, testUser("b@x.com"), found)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// stored as a JSON array with camelCase fields
	raw, err := kv.Get(ctx, UsersKey)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "a@x.com", decoded[0]["email"])
	assert.Contains(t, decoded[0], "passwordHash")
	assert.Contains(t, decoded[0], "displayName")
	assert.Contains(t, decoded[0], "createdAt")
}

func TestUserRepository_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore(), logger.Nop())

	require.NoError(t, repo.Append(ctx, testUser("a@x.com")))
	require.NoError(t, repo.Append(ctx, testUser("A@x.com")))

	_, err := repo.FindByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_AppendDuplicate(t *testing.T) {
	ctx := context.Background()

	for name, kv := range map[string]KVStore{
		"swapper": NewMemoryStore(),
		"plain":   plainStore{NewMemoryStore()},
	} {
		t.Run(name, func(t *testing.T) {
			repo := NewUserRepository(kv, logger.Nop())

			require.NoError(t, repo.Append(ctx, testUser("a@x.com")))

			dup := testUser("a@x.com")
			dup.ID = "other"
			err := repo.Append(ctx, dup)
			assert.ErrorIs(t, err, ErrEmailTaken)

			users, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 1)
			assert.Equal(t, "id-a@x.com", users[0].ID)
		})
	}
}

func TestUserRepository_CorruptList(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{`{"email":"a@x.com"}`, `"users"`, `null`, `[{"broken"`, ``} {
		t.Run(raw, func(t *testing.T) {
			kv := NewMemoryStore()
			require.NoError(t, kv.Set(ctx, UsersKey, []byte(raw)))
			repo := NewUserRepository(kv, logger.Nop())

			_, err := repo.List(ctx)
			assert.ErrorIs(t, err, ErrCorruptUserList)

			_, err = repo.FindByEmail(ctx, "a@x.com")
			assert.ErrorIs(t, err, ErrCorruptUserList)

			err = repo.Append(ctx, testUser("a@x.com"))
			assert.ErrorIs(t, err, ErrCorruptUserList)

			// the corrupt value is left untouched
			stored, err := kv.Get(ctx, UsersKey)
			require.NoError(t, err)
			assert.Equal(t, raw, string(stored))
		})
	}
}

func TestUserRepository_MalformedEntriesSkippedAndPreserved(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	good, err := json.Marshal(testUser("a@x.com"))
	require.NoError(t, err)
	initial := fmt.Sprintf(`[42,{"email":"ghost@x.com"},%s]`, good)
	require.NoError(t, kv.Set(ctx, UsersKey, []byte(initial)))

	repo := NewUserRepository(kv, logger.Nop())

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)

	_, err = repo.FindByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, repo.Append(ctx, testUser("b@x.com")))

	raw, err := kv.Get(ctx, UsersKey)
	require.NoError(t, err)
	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 4)
	assert.JSONEq(t, `42`, string(entries[0]))
	assert.JSONEq(t, `{"email":"ghost@x.com"}`, string(entries[1]))
}

func TestUserRepository_MalformedEntryStillReservesEmail(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	initial := `[{"id":"u1","email":"a@x.com","displayName":"A","passwordHash":"` +
		strings.Repeat("ab", 32) + `","salt":"abcd","createdAt":"2026-01-02T03:04:05Z"}]`
	require.NoError(t, kv.Set(ctx, UsersKey, []byte(initial)))

	repo := NewUserRepository(kv, logger.Nop())

	err := repo.Append(ctx, testUser("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	raw, err := kv.Get(ctx, UsersKey)
	require.NoError(t, err)
	assert.JSONEq(t, initial, string(raw))

	// a plain read-modify-write store takes the same path
	require.ErrorIs(t, NewUserRepository(plainStore{kv}, logger.Nop()).Append(ctx, testUser("a@x.com")), ErrEmailTaken)

	// non-string emails reserve nothing
	require.NoError(t, kv.Set(ctx, UsersKey, []byte(`[{"id":"u2","email":7}]`)))
	require.NoError(t, repo.Append(ctx, testUser("b@x.com")))
}

func TestUserRepository_ConcurrentAppendSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore(), logger.Nop())

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := testUser("race@x.com")
			u.ID = fmt.Sprintf("id-%d", i)

			err := repo.Append(ctx, u)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrEmailTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, taken)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_ConcurrentAppendDistinctEmails(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore(), logger.Nop())

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Append(ctx, testUser(fmt.Sprintf("user%d@x.com", i)))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, workers)
}

func TestUserRepository_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("store offline")
	repo := NewUserRepository(failingStore{err: boom}, logger.Nop())

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = repo.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, boom)

	err = repo.Append(ctx, testUser("a@x.com"))
	assert.ErrorIs(t, err, boom)
}

// swapErrStore reads fine but fails every compare-and-swap.
type swapErrStore struct {
	KVStore
	err error
}

func (s swapErrStore) CompareAndSwap(context.Context, string, []byte, []byte) (bool, error) {
	return false, s.err
}

func TestUserRepository_AppendSwapError(t *testing.T) {
	boom := errors.New("write failed")
	repo := NewUserRepository(swapErrStore{KVStore: NewMemoryStore(), err: boom}, logger.Nop())

	err := repo.Append(context.Background(), testUser("a@x.com"))
	assert.ErrorIs(t, err, boom)
}

// losingStore never wins a compare-and-swap.
type losingStore struct {
	KVStore
	attempts int
}

func (s *losingStore) CompareAndSwap(context.Context, string, []byte, []byte) (bool, error) {
	s.attempts++
	return false, nil
}

func TestUserRepository_AppendGivesUpAfterRetries(t *testing.T) {
	kv := &losingStore{KVStore: NewMemoryStore()}
	repo := NewUserRepository(kv, logger.Nop())

	err := repo.Append(context.Background(), testUser("a@x.com"))
	assert.ErrorIs(t, err, ErrWriteConflict)
	assert.Equal(t, appendMaxRetries+1, kv.attempts)
}
