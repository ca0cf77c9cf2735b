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

// saleGroupRepository is the SQLite-backed implementation of
// [SaleGroupRepository] over the local "sale_groups" cache table.
type saleGroupRepository struct {
	*DB
	logger *logger.Logger
}

// NewSaleGroupRepository constructs a [SaleGroupRepository] backed by the
// provided database connection and logger.
func NewSaleGroupRepository(db *DB, logger *logger.Logger) SaleGroupRepository {
	return &saleGroupRepository{
		DB:     db,
		logger: logger,
	}
}

// Save inserts the group into the local cache. Returns
// [ErrDuplicateClientRef] when a group with the same client ref already
// exists.
func (g *saleGroupRepository) Save(ctx context.Context, group models.SaleGroup) error {
	log := logger.FromContext(ctx)

	if group.StoreID == "" {
		return ErrMissingStoreScope
	}

	_, err := g.DB.ExecContext(ctx, saveSaleGroup,
		group.OfflineID,
		group.SyncedRemoteID,
		group.StoreID,
		group.ClientRef,
		group.TotalAmount,
		group.ItemCount,
		group.PaymentMethod,
		group.Status,
		group.CreatedBy,
		group.CreatedAt,
	)
	if err != nil {
		if g.errorClassificator.IsConstraintViolation(err) {
			log.Warn().
				Str("func", "saleGroupRepository.Save").
				Str("client_ref", group.ClientRef).
				Msg("sale group with this client ref already cached")
			return fmt.Errorf("%w: %s", ErrDuplicateClientRef, group.ClientRef)
		}

		log.Err(err).
			Str("func", "saleGroupRepository.Save").
			Str("offline_id", group.OfflineID).
			Msg("failed to insert sale group")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the cached group identified by offlineID within the store.
func (g *saleGroupRepository) Get(ctx context.Context, storeID, offlineID string) (models.SaleGroup, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return models.SaleGroup{}, ErrMissingStoreScope
	}

	var group models.SaleGroup
	err := g.DB.QueryRowContext(ctx, getSaleGroup, storeID, offlineID).Scan(
		&group.OfflineID,
		&group.SyncedRemoteID,
		&group.StoreID,
		&group.ClientRef,
		&group.TotalAmount,
		&group.ItemCount,
		&group.PaymentMethod,
		&group.Status,
		&group.CreatedBy,
		&group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SaleGroup{}, fmt.Errorf("%w: offline_id=%s", ErrSaleGroupNotFound, offlineID)
		}

		log.Err(err).
			Str("func", "saleGroupRepository.Get").
			Str("store_id", storeID).
			Str("offline_id", offlineID).
			Msg("failed to get sale group")
		return models.SaleGroup{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return group, nil
}

// ListByStore returns all cached sale groups for the store, newest first.
func (g *saleGroupRepository) ListByStore(ctx context.Context, storeID string) ([]models.SaleGroup, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return nil, ErrMissingStoreScope
	}

	rows, err := g.DB.QueryContext(ctx, listSaleGroupsByStore, storeID)
	if err != nil {
		log.Err(err).
			Str("func", "saleGroupRepository.ListByStore").
			Str("store_id", storeID).
			Msg("failed to execute query for listing sale groups")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	groups := make([]models.SaleGroup, 0, 16)

	for rows.Next() {
		var group models.SaleGroup

		scanErr := rows.Scan(
			&group.OfflineID,
			&group.SyncedRemoteID,
			&group.StoreID,
			&group.ClientRef,
			&group.TotalAmount,
			&group.ItemCount,
			&group.PaymentMethod,
			&group.Status,
			&group.CreatedBy,
			&group.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "saleGroupRepository.ListByStore").
				Str("store_id", storeID).
				Msg("failed to scan sale group row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		groups = append(groups, group)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "saleGroupRepository.ListByStore").
			Str("store_id", storeID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return groups, nil
}

// Update overwrites the mutable fields of the cached group. Returns
// [ErrSaleGroupNotFound] when no cached row matches.
func (g *saleGroupRepository) Update(ctx context.Context, group models.SaleGroup) error {
	log := logger.FromContext(ctx)

	if group.StoreID == "" {
		return ErrMissingStoreScope
	}

	result, err := g.DB.ExecContext(ctx, updateSaleGroup,
		group.TotalAmount,
		group.ItemCount,
		group.PaymentMethod,
		group.Status,
		group.StoreID,
		group.OfflineID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "saleGroupRepository.Update").
			Str("store_id", group.StoreID).
			Str("offline_id", group.OfflineID).
			Msg("failed to update sale group")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: offline_id=%s", ErrSaleGroupNotFound, group.OfflineID)
	}

	return nil
}

// MarkSynced links the group's local identity to remoteID. Line items still
// waiting in the queue look this value up to fill in their parent reference.
func (g *saleGroupRepository) MarkSynced(ctx context.Context, offlineID string, remoteID int64) error {
	log := logger.FromContext(ctx)

	result, err := g.DB.ExecContext(ctx, markSaleGroupSynced, remoteID, offlineID)
	if err != nil {
		log.Err(err).
			Str("func", "saleGroupRepository.MarkSynced").
			Str("offline_id", offlineID).
			Int64("remote_id", remoteID).
			Msg("failed to mark sale group synced")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: offline_id=%s", ErrSaleGroupNotFound, offlineID)
	}

	return nil
}
