package store

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
// It indicates whether a failed database operation should be retried or
// abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, and data errors.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. the database file is temporarily locked by another
	// connection).
	Retryable
)

// ErrorClassificator classifies low-level database errors so repositories can
// decide between retrying and surfacing the failure.
type ErrorClassificator interface {
	// Classify maps err to a [ErrorClassification]. A nil err is NonRetryable.
	Classify(err error) ErrorClassification

	// IsConstraintViolation reports whether err is a uniqueness or other
	// constraint violation raised by the driver.
	IsConstraintViolation(err error) bool
}

// SQLiteErrorClassifier implements [ErrorClassificator] for the
// mattn/go-sqlite3 driver. It inspects the sqlite3 error code and maps it to
// a [ErrorClassification] value.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
//
// Retryable codes:
//   - SQLITE_BUSY, SQLITE_LOCKED — another connection holds the file or a
//     table lock; the operation can succeed once the lock is released.
//
// Everything else (constraint violations, data errors, corrupt files) is
// NonRetryable.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}

	return NonRetryable
}

// IsConstraintViolation implements [ErrorClassificator] for sqlite3 errors.
func (c *SQLiteErrorClassifier) IsConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
