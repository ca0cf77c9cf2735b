// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pos-sync/internal/config"
	"github.com/MKhiriev/go-pos-sync/internal/logger"
)

// Storages groups all local storage repositories into a single value that
// can be passed around the service layer.
type Storages struct {
	// QueueRepository is the SQLite-backed mutation queue.
	QueueRepository QueueRepository

	// SaleRepository is the local cache of sales.
	SaleRepository SaleRepository

	// SaleGroupRepository is the local cache of sale groups.
	SaleGroupRepository SaleGroupRepository

	// AdjustmentRepository is the local cache of inventory adjustments.
	AdjustmentRepository AdjustmentRepository
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Resets queue items interrupted mid-sync by a previous crash back to
//     pending so the next drain picks them up.
//  4. Constructs and returns a [Storages] value wired to fresh repositories
//     sharing the single connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	if err := recoverInFlightItems(context.Background(), db, logger); err != nil {
		return nil, fmt.Errorf("queue recovery failed: %w", err)
	}

	return &Storages{
		QueueRepository:      NewQueueRepository(db, logger),
		SaleRepository:       NewSaleRepository(db, logger),
		SaleGroupRepository:  NewSaleGroupRepository(db, logger),
		AdjustmentRepository: NewAdjustmentRepository(db, logger),
	}, nil
}
