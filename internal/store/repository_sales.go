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

// saleRepository is the SQLite-backed implementation of [SaleRepository].
// It maintains the local "sales" cache table that mirrors what the remote
// backend will eventually hold.
type saleRepository struct {
	*DB
	logger *logger.Logger
}

// NewSaleRepository constructs a [SaleRepository] backed by the provided
// database connection and logger.
func NewSaleRepository(db *DB, logger *logger.Logger) SaleRepository {
	return &saleRepository{
		DB:     db,
		logger: logger,
	}
}

// Save inserts the sale into the local cache. Returns
// [ErrDuplicateClientRef] when a sale with the same client ref already
// exists; the caller treats that as an already-recorded mutation.
func (s *saleRepository) Save(ctx context.Context, sale models.Sale) error {
	log := logger.FromContext(ctx)

	if sale.StoreID == "" {
		return ErrMissingStoreScope
	}

	_, err := s.DB.ExecContext(ctx, saveSale,
		sale.OfflineID,
		sale.SyncedRemoteID,
		sale.StoreID,
		sale.ClientRef,
		sale.SaleGroupRef,
		sale.DeviceSerial,
		sale.ProductName,
		sale.Quantity,
		sale.UnitPrice,
		sale.TotalPrice,
		sale.PaymentMethod,
		sale.CreatedBy,
		sale.CreatedAt,
	)
	if err != nil {
		if s.errorClassificator.IsConstraintViolation(err) {
			log.Warn().
				Str("func", "saleRepository.Save").
				Str("client_ref", sale.ClientRef).
				Msg("sale with this client ref already cached")
			return fmt.Errorf("%w: %s", ErrDuplicateClientRef, sale.ClientRef)
		}

		log.Err(err).
			Str("func", "saleRepository.Save").
			Str("offline_id", sale.OfflineID).
			Msg("failed to insert sale")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Get returns the cached sale identified by offlineID within the store.
func (s *saleRepository) Get(ctx context.Context, storeID, offlineID string) (models.Sale, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return models.Sale{}, ErrMissingStoreScope
	}

	var sale models.Sale
	err := s.DB.QueryRowContext(ctx, getSale, storeID, offlineID).Scan(
		&sale.OfflineID,
		&sale.SyncedRemoteID,
		&sale.StoreID,
		&sale.ClientRef,
		&sale.SaleGroupRef,
		&sale.DeviceSerial,
		&sale.ProductName,
		&sale.Quantity,
		&sale.UnitPrice,
		&sale.TotalPrice,
		&sale.PaymentMethod,
		&sale.CreatedBy,
		&sale.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sale{}, fmt.Errorf("%w: offline_id=%s", ErrSaleNotFound, offlineID)
		}

		log.Err(err).
			Str("func", "saleRepository.Get").
			Str("store_id", storeID).
			Str("offline_id", offlineID).
			Msg("failed to get sale")
		return models.Sale{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return sale, nil
}

// ListByStore returns all cached sales for the store, newest first.
func (s *saleRepository) ListByStore(ctx context.Context, storeID string) ([]models.Sale, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return nil, ErrMissingStoreScope
	}

	rows, err := s.DB.QueryContext(ctx, listSalesByStore, storeID)
	if err != nil {
		log.Err(err).
			Str("func", "saleRepository.ListByStore").
			Str("store_id", storeID).
			Msg("failed to execute query for listing sales")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sales := make([]models.Sale, 0, 16)

	for rows.Next() {
		var sale models.Sale

		scanErr := rows.Scan(
			&sale.OfflineID,
			&sale.SyncedRemoteID,
			&sale.StoreID,
			&sale.ClientRef,
			&sale.SaleGroupRef,
			&sale.DeviceSerial,
			&sale.ProductName,
			&sale.Quantity,
			&sale.UnitPrice,
			&sale.TotalPrice,
			&sale.PaymentMethod,
			&sale.CreatedBy,
			&sale.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "saleRepository.ListByStore").
				Str("store_id", storeID).
				Msg("failed to scan sale row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		sales = append(sales, sale)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "saleRepository.ListByStore").
			Str("store_id", storeID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return sales, nil
}

// Update overwrites the mutable fields of the cached sale. Identity and
// reconciliation columns are left untouched. Returns [ErrSaleNotFound]
// when no cached row matches.
func (s *saleRepository) Update(ctx context.Context, sale models.Sale) error {
	log := logger.FromContext(ctx)

	if sale.StoreID == "" {
		return ErrMissingStoreScope
	}

	result, err := s.DB.ExecContext(ctx, updateSale,
		sale.ProductName,
		sale.Quantity,
		sale.UnitPrice,
		sale.TotalPrice,
		sale.PaymentMethod,
		sale.StoreID,
		sale.OfflineID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "saleRepository.Update").
			Str("store_id", sale.StoreID).
			Str("offline_id", sale.OfflineID).
			Msg("failed to update sale")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: offline_id=%s", ErrSaleNotFound, sale.OfflineID)
	}

	return nil
}

// MarkSynced links the sale's local identity to remoteID, making the record
// reconciled. Returns [ErrSaleNotFound] when no cached row matches.
func (s *saleRepository) MarkSynced(ctx context.Context, offlineID string, remoteID int64) error {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, markSaleSynced, remoteID, offlineID)
	if err != nil {
		log.Err(err).
			Str("func", "saleRepository.MarkSynced").
			Str("offline_id", offlineID).
			Int64("remote_id", remoteID).
			Msg("failed to mark sale synced")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: offline_id=%s", ErrSaleNotFound, offlineID)
	}

	return nil
}
