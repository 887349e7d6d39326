package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	kvTable       = "kv_entries"
	kvKeyColumn   = "entry_key"
	kvValueColumn = "entry_value"
	kvUpdatedAt   = "updated_at"
)

// kvQueries builds the statements of the SQL key-value store for one
// placeholder dialect.
type kvQueries struct {
	builder sq.StatementBuilderType
}

func newKVQueries(placeholder sq.PlaceholderFormat) kvQueries {
	return kvQueries{builder: sq.StatementBuilder.PlaceholderFormat(placeholder)}
}

func (q kvQueries) get(key string) (string, []any, error) {
	return q.builder.
		Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
}

// upsert inserts or replaces the value of key. ON CONFLICT ... excluded is
// understood by both PostgreSQL and SQLite >= 3.24.
func (q kvQueries) upsert(key string, value []byte) (string, []any, error) {
	return q.builder.
		Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn, kvUpdatedAt).
		Values(key, string(value), sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (" + kvKeyColumn + ") DO UPDATE SET " +
			kvValueColumn + " = excluded." + kvValueColumn + ", " +
			kvUpdatedAt + " = excluded." + kvUpdatedAt).
		ToSql()
}

// insertIfAbsent writes value only when key does not exist yet.
func (q kvQueries) insertIfAbsent(key string, value []byte) (string, []any, error) {
	return q.builder.
		Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn, kvUpdatedAt).
		Values(key, string(value), sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (" + kvKeyColumn + ") DO NOTHING").
		ToSql()
}

// replaceIfEqual writes next only when the stored value still equals prev.
func (q kvQueries) replaceIfEqual(key string, prev, next []byte) (string, []any, error) {
	return q.builder.
		Update(kvTable).
		Set(kvValueColumn, string(next)).
		Set(kvUpdatedAt, sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{kvKeyColumn: key}).
		Where(sq.Eq{kvValueColumn: string(prev)}).
		ToSql()
}

func (q kvQueries) delete(key string) (string, []any, error) {
	return q.builder.
		Delete(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
}

func (q kvQueries) keys() (string, []any, error) {
	return q.builder.
		Select(kvKeyColumn).
		From(kvTable).
		OrderBy(kvKeyColumn).
		ToSql()
}
