package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/energy-keeper/internal/logger"
)

// Transient-error retry policy of the SQL store.
const (
	sqlMaxRetries   = 3
	sqlRetryBackoff = 50 * time.Millisecond
)

// sqlStore is the [KVStore] over a single kv_entries table. It serves both
// SQLite and PostgreSQL; only placeholders and error classification differ.
type sqlStore struct {
	db      *DB
	queries kvQueries
	logger  *logger.Logger
}

// NewSQLStore wraps an open, migrated connection as a [KVStore] that also
// implements [Swapper].
func NewSQLStore(db *DB, log *logger.Logger) KVStore {
	log.Debug().Str("dialect", db.dialect).Msg("creating sql kv store")
	return &sqlStore{
		db:      db,
		queries: newKVQueries(db.placeholder),
		logger:  log,
	}
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.queries.get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.withRetry(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sqlStore.Get").Str("sqlstate", postgresError(err)).Msg("error reading key")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return []byte(value), nil
}

func (s *sqlStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.queries.upsert(key, value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = s.exec(ctx, "*sqlStore.Set", query, args)
	return err
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.queries.delete(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = s.exec(ctx, "*sqlStore.Delete", query, args)
	return err
}

func (s *sqlStore) Keys(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.queries.keys()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlStore.Keys").Msg("error listing keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return keys, nil
}

// CompareAndSwap implements [Swapper] with a single conditional statement:
// INSERT ... ON CONFLICT DO NOTHING when prev is nil, otherwise
// UPDATE ... WHERE value = prev. One affected row means the swap happened.
func (s *sqlStore) CompareAndSwap(ctx context.Context, key string, prev, next []byte) (bool, error) {
	var (
		query string
		args  []any
		err   error
	)
	if prev == nil {
		query, args, err = s.queries.insertIfAbsent(key, next)
	} else {
		query, args, err = s.queries.replaceIfEqual(key, prev, next)
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := s.exec(ctx, "*sqlStore.CompareAndSwap", query, args)
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// exec runs a DML statement with the transient-error retry policy and
// returns the number of affected rows.
func (s *sqlStore) exec(ctx context.Context, funcName, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	var affected int64
	err := s.withRetry(ctx, func(ctx context.Context) error {
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Str("sqlstate", postgresError(err)).Msg("error executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// withRetry runs fn, repeating it while the backend classifies the failure
// as [Retryable].
func (s *sqlStore) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db.errorClassificator == nil {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(sqlMaxRetries, retry.NewExponential(sqlRetryBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && s.db.errorClassificator.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}
