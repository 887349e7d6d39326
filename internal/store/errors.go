package store

import "errors"

// Sentinel errors returned by stores and repositories to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrKeyNotFound is returned by [KVStore.Get] when the key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptUserList is returned when the value under the user-list key is
	// not a JSON array.
	ErrCorruptUserList = errors.New("stored user list is corrupt")

	// ErrCorruptSession is returned when the session slot holds something
	// that is not a well-formed session record.
	ErrCorruptSession = errors.New("stored session is corrupt")

	// ErrUserNotFound is returned when no stored user matches the email.
	ErrUserNotFound = errors.New("no user was found")

	// ErrEmailTaken is returned when an append targets an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWriteConflict is returned when a compare-and-swap kept losing to
	// concurrent writers until the retry budget ran out.
	ErrWriteConflict = errors.New("concurrent write conflict")

	// ErrUnknownDriver is returned by [NewKVStore] for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors. These are wrapped by the SQL store
// when an operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan kv row")
)
