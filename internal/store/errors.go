package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrMissingStoreScope is returned when a queue or cache operation is
	// attempted without a store id. Every operation must be tenant-scoped.
	ErrMissingStoreScope = errors.New("missing store scope")

	// ErrInvalidQueueItem is returned when an enqueue attempt carries an
	// unknown entity type or operation.
	ErrInvalidQueueItem = errors.New("invalid queue item")

	// ErrQueueItemNotFound is returned when a status transition targets a
	// queue item (identified by queue_id) that does not exist.
	ErrQueueItemNotFound = errors.New("queue item was not found")

	// ErrDuplicateClientRef is returned when an INSERT collides with the
	// uniqueness constraint on the idempotency token, meaning the same
	// logical mutation has already been recorded.
	ErrDuplicateClientRef = errors.New("client ref already recorded")

	// ErrSaleNotFound is returned when a query targets a cached sale
	// (identified by offline_id and store_id) that does not exist.
	ErrSaleNotFound = errors.New("sale was not found")

	// ErrSaleGroupNotFound is returned when a query targets a cached sale
	// group that does not exist.
	ErrSaleGroupNotFound = errors.New("sale group was not found")

	// ErrAdjustmentNotFound is returned when a query targets a cached
	// inventory adjustment that does not exist.
	ErrAdjustmentNotFound = errors.New("inventory adjustment was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
