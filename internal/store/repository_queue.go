// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/utils"
	"github.com/MKhiriev/go-pos-sync/models"
)

// queueRepository is the SQLite-backed implementation of [QueueRepository].
// It executes all mutation-queue operations against the "sync_queue" table
// using the embedded [*DB] connection.
//
// FIFO order is carried by the table's autoincrement rowid column: items are
// always listed ordered by id ASC, so a drain replays mutations in the exact
// order the cashier performed them.
type queueRepository struct {
	*DB
	logger *logger.Logger
	uuid   *utils.UUIDGenerator
}

// NewQueueRepository constructs a [QueueRepository] backed by the provided
// database connection and logger.
func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
		uuid:   utils.NewUUIDGenerator(),
	}
}

// Enqueue records a new pending mutation in the sync_queue table.
//
// The operation is purely local and never touches the network, so it succeeds
// regardless of connectivity. A fresh queue id is always assigned; a client
// ref is generated only when the item does not already carry one, so that a
// retried enqueue of the same logical mutation keeps its idempotency token.
func (q *queueRepository) Enqueue(ctx context.Context, item models.QueueItem) (models.QueueItem, error) {
	log := logger.FromContext(ctx)

	if item.StoreID == "" {
		return models.QueueItem{}, ErrMissingStoreScope
	}
	if !item.EntityType.Valid() || !item.Operation.Valid() {
		log.Error().
			Str("func", "queueRepository.Enqueue").
			Str("entity_type", string(item.EntityType)).
			Str("operation", string(item.Operation)).
			Msg("rejecting queue item with unknown entity type or operation")
		return models.QueueItem{}, fmt.Errorf("%w: entity_type=%q operation=%q", ErrInvalidQueueItem, item.EntityType, item.Operation)
	}

	item.QueueID = q.uuid.Generate()
	if item.ClientRef == "" {
		item.ClientRef = q.uuid.Generate()
	}
	item.Status = models.QueueStatusPending
	item.FailureReason = ""
	item.RetryCount = 0

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query, args, err := sq.Insert("sync_queue").
		Columns(
			"queue_id", "store_id", "entity_type", "operation",
			"payload", "client_ref", "status", "failure_reason",
			"retry_count", "created_at", "updated_at",
		).
		Values(
			item.QueueID, item.StoreID, item.EntityType, item.Operation,
			[]byte(item.Payload), item.ClientRef, item.Status, item.FailureReason,
			item.RetryCount, item.CreatedAt, item.UpdatedAt,
		).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Msg("failed to build insert query")
		return models.QueueItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.DB.ExecContext(ctx, query, args...); err != nil {
		if q.errorClassificator.IsConstraintViolation(err) {
			log.Warn().
				Str("func", "queueRepository.Enqueue").
				Str("client_ref", item.ClientRef).
				Msg("client ref already present in queue")
			return models.QueueItem{}, fmt.Errorf("%w: %s", ErrDuplicateClientRef, item.ClientRef)
		}

		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("queue_id", item.QueueID).
			Msg("failed to insert queue item")
		return models.QueueItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().
		Str("func", "queueRepository.Enqueue").
		Str("queue_id", item.QueueID).
		Str("entity_type", string(item.EntityType)).
		Msg("queue item enqueued")

	return item, nil
}

// ListPending returns every item with status pending or failed for the store,
// ordered by enqueue (rowid) order. Each call re-queries the table, so a
// caller draining the queue always sees the current state rather than a
// frozen snapshot.
func (q *queueRepository) ListPending(ctx context.Context, storeID string) ([]models.QueueItem, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return nil, ErrMissingStoreScope
	}

	query, args, err := sq.Select(
		"queue_id", "store_id", "entity_type", "operation",
		"payload", "client_ref", "status", "failure_reason",
		"retry_count", "created_at", "updated_at",
	).
		From("sync_queue").
		Where(sq.Eq{
			"store_id": storeID,
			"status":   []models.QueueStatus{models.QueueStatusPending, models.QueueStatusFailed},
		}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.ListPending").
			Str("store_id", storeID).
			Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.ListPending").
			Str("store_id", storeID).
			Msg("failed to execute query for listing pending queue items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.QueueItem, 0, 16)

	for rows.Next() {
		var item models.QueueItem

		scanErr := rows.Scan(
			&item.QueueID,
			&item.StoreID,
			&item.EntityType,
			&item.Operation,
			&item.Payload,
			&item.ClientRef,
			&item.Status,
			&item.FailureReason,
			&item.RetryCount,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.ListPending").
				Str("store_id", storeID).
				Msg("failed to scan queue item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "queueRepository.ListPending").
			Str("store_id", storeID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// MarkSyncing transitions the item identified by queueID to the syncing
// status. Returns [ErrQueueItemNotFound] when no row matches.
func (q *queueRepository) MarkSyncing(ctx context.Context, queueID string) error {
	return q.transition(ctx, "queueRepository.MarkSyncing", markQueueItemSyncing, time.Now().UTC(), queueID)
}

// MarkSynced transitions the item identified by queueID to the synced status
// and clears any recorded failure reason.
func (q *queueRepository) MarkSynced(ctx context.Context, queueID string) error {
	return q.transition(ctx, "queueRepository.MarkSynced", markQueueItemSynced, time.Now().UTC(), queueID)
}

// MarkFailed transitions the item identified by queueID to the failed status,
// records the failure reason and increments the retry count. Failed items
// remain in the queue and are retried on the next drain pass.
func (q *queueRepository) MarkFailed(ctx context.Context, queueID, reason string) error {
	return q.transition(ctx, "queueRepository.MarkFailed", markQueueItemFailed, reason, time.Now().UTC(), queueID)
}

func (q *queueRepository) transition(ctx context.Context, fn, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Msg("failed to execute queue status transition")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Msg("failed to get number of affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrQueueItemNotFound
	}

	return nil
}

// Count returns the number of items with status pending or failed for the
// store. This is the figure surfaced to the UI badge and used by the engine
// to decide whether a drain has work to do.
func (q *queueRepository) Count(ctx context.Context, storeID string) (int, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return 0, ErrMissingStoreScope
	}

	query, args, err := sq.Select("COUNT(*)").
		From("sync_queue").
		Where(sq.Eq{
			"store_id": storeID,
			"status":   []models.QueueStatus{models.QueueStatusPending, models.QueueStatusFailed},
		}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Count").
			Str("store_id", storeID).
			Msg("failed to build count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = q.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Count").
			Str("store_id", storeID).
			Msg("failed to count pending queue items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Clear deletes every queue item belonging to the store, regardless of
// status. This is the explicit user-invoked escape hatch for a poisoned
// queue; the engine itself never calls it.
func (q *queueRepository) Clear(ctx context.Context, storeID string) error {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return ErrMissingStoreScope
	}

	result, err := q.DB.ExecContext(ctx, clearQueueForStore, storeID)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Clear").
			Str("store_id", storeID).
			Msg("failed to clear queue")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil {
		log.Info().
			Str("func", "queueRepository.Clear").
			Str("store_id", storeID).
			Int64("deleted", affected).
			Msg("queue cleared")
	}

	return nil
}

// recoverInFlightItems resets every item stuck in 'syncing' back to
// 'pending'. Called once when the store is opened: a drain is strictly
// sequential per store, so any 'syncing' row at startup was left behind by
// a crash mid-item. Replaying it is safe because the remote duplicate
// check on client_ref turns an already-landed write into a skip.
func recoverInFlightItems(ctx context.Context, db *DB, log *logger.Logger) error {
	result, err := db.ExecContext(ctx, recoverInFlightQueueItems, time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "recoverInFlightItems").
			Msg("failed to recover in-flight queue items")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil && affected > 0 {
		log.Info().
			Str("func", "recoverInFlightItems").
			Int64("recovered", affected).
			Msg("reset interrupted queue items to pending")
	}

	return nil
}
