// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

// adjustmentRepository is the SQLite-backed implementation of
// [AdjustmentRepository] over the local "inventory_adjustments" cache table.
// Adjustments are create-only, so there is no update path besides linking
// the remote identity.
type adjustmentRepository struct {
	*DB
	logger *logger.Logger
}

// NewAdjustmentRepository constructs an [AdjustmentRepository] backed by the
// provided database connection and logger.
func NewAdjustmentRepository(db *DB, logger *logger.Logger) AdjustmentRepository {
	return &adjustmentRepository{
		DB:     db,
		logger: logger,
	}
}

// Save inserts the adjustment into the local cache. Returns
// [ErrDuplicateClientRef] when an adjustment with the same client ref
// already exists.
func (a *adjustmentRepository) Save(ctx context.Context, adjustment models.InventoryAdjustment) error {
	log := logger.FromContext(ctx)

	if adjustment.StoreID == "" {
		return ErrMissingStoreScope
	}

	_, err := a.DB.ExecContext(ctx, saveAdjustment,
		adjustment.OfflineID,
		adjustment.SyncedRemoteID,
		adjustment.StoreID,
		adjustment.ClientRef,
		adjustment.ProductID,
		adjustment.Delta,
		adjustment.Reason,
		adjustment.AdjustedBy,
		adjustment.CreatedAt,
	)
	if err != nil {
		if a.errorClassificator.IsConstraintViolation(err) {
			log.Warn().
				Str("func", "adjustmentRepository.Save").
				Str("client_ref", adjustment.ClientRef).
				Msg("adjustment with this client ref already cached")
			return fmt.Errorf("%w: %s", ErrDuplicateClientRef, adjustment.ClientRef)
		}

		log.Err(err).
			Str("func", "adjustmentRepository.Save").
			Str("offline_id", adjustment.OfflineID).
			Msg("failed to insert inventory adjustment")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the cached adjustment identified by offlineID within the store.
func (a *adjustmentRepository) Get(ctx context.Context, storeID, offlineID string) (models.InventoryAdjustment, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return models.InventoryAdjustment{}, ErrMissingStoreScope
	}

	var adjustment models.InventoryAdjustment
	err := a.DB.QueryRowContext(ctx, getAdjustment, storeID, offlineID).Scan(
		&adjustment.OfflineID,
		&adjustment.SyncedRemoteID,
		&adjustment.StoreID,
		&adjustment.ClientRef,
		&adjustment.ProductID,
		&adjustment.Delta,
		&adjustment.Reason,
		&adjustment.AdjustedBy,
		&adjustment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.InventoryAdjustment{}, fmt.Errorf("%w: offline_id=%s", ErrAdjustmentNotFound, offlineID)
		}

		log.Err(err).
			Str("func", "adjustmentRepository.Get").
			Str("store_id", storeID).
			Str("offline_id", offlineID).
			Msg("failed to get inventory adjustment")
		return models.InventoryAdjustment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return adjustment, nil
}

// ListByStore returns all cached adjustments for the store, newest first.
func (a *adjustmentRepository) ListByStore(ctx context.Context, storeID string) ([]models.InventoryAdjustment, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return nil, ErrMissingStoreScope
	}

	rows, err := a.DB.QueryContext(ctx, listAdjustmentsByStore, storeID)
	if err != nil {
		log.Err(err).
			Str("func", "adjustmentRepository.ListByStore").
			Str("store_id", storeID).
			Msg("failed to execute query for listing adjustments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	adjustments := make([]models.InventoryAdjustment, 0, 16)

	for rows.Next() {
		var adjustment models.InventoryAdjustment

		scanErr := rows.Scan(
			&adjustment.OfflineID,
			&adjustment.SyncedRemoteID,
			&adjustment.StoreID,
			&adjustment.ClientRef,
			&adjustment.ProductID,
			&adjustment.Delta,
			&adjustment.Reason,
			&adjustment.AdjustedBy,
			&adjustment.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "adjustmentRepository.ListByStore").
				Str("store_id", storeID).
				Msg("failed to scan adjustment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		adjustments = append(adjustments, adjustment)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "adjustmentRepository.ListByStore").
			Str("store_id", storeID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return adjustments, nil
}

// MarkSynced links the adjustment's local identity to remoteID.
func (a *adjustmentRepository) MarkSynced(ctx context.Context, offlineID string, remoteID int64) error {
	log := logger.FromContext(ctx)

	result, err := a.DB.ExecContext(ctx, markAdjustmentSynced, remoteID, offlineID)
	if err != nil {
		log.Err(err).
			Str("func", "adjustmentRepository.MarkSynced").
			Str("offline_id", offlineID).
			Int64("remote_id", remoteID).
			Msg("failed to mark adjustment synced")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: offline_id=%s", ErrAdjustmentNotFound, offlineID)
	}

	return nil
}
