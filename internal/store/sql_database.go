package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/migrations"
)

// DB is an open SQL connection together with the dialect details the KV
// queries and migrations need.
type DB struct {
	*sql.DB

	// dialect is the goose dialect name ("sqlite3" or "pgx").
	dialect     string
	placeholder sq.PlaceholderFormat

	// errorClassificator is nil for backends without retryable error codes.
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
