// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	markQueueItemSyncing = `
		UPDATE sync_queue SET
			status     = 'syncing',
			updated_at = ?
		WHERE queue_id = ?;`

	markQueueItemSynced = `
		UPDATE sync_queue SET
			status         = 'synced',
			failure_reason = '',
			updated_at     = ?
		WHERE queue_id = ?;`

	markQueueItemFailed = `
		UPDATE sync_queue SET
			status         = 'failed',
			failure_reason = ?,
			retry_count    = retry_count + 1,
			updated_at     = ?
		WHERE queue_id = ?;`

	clearQueueForStore = `
		DELETE FROM sync_queue
		WHERE store_id = ?;`

	recoverInFlightQueueItems = `
		UPDATE sync_queue SET
			status     = 'pending',
			updated_at = ?
		WHERE status = 'syncing';`

	saveSale = `
		INSERT INTO sales (
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			sale_group_ref,
			device_serial,
			product_name,
			quantity,
			unit_price,
			total_price,
			payment_method,
			created_by,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getSale = `
		SELECT
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			sale_group_ref,
			device_serial,
			product_name,
			quantity,
			unit_price,
			total_price,
			payment_method,
			created_by,
			created_at
		FROM sales
		WHERE store_id = ? AND offline_id = ?;`

	listSalesByStore = `
		SELECT
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			sale_group_ref,
			device_serial,
			product_name,
			quantity,
			unit_price,
			total_price,
			payment_method,
			created_by,
			created_at
		FROM sales
		WHERE store_id = ?
		ORDER BY created_at DESC;`

	markSaleSynced = `
		UPDATE sales SET
			synced_remote_id = ?
		WHERE offline_id = ?;`

	updateSale = `
		UPDATE sales SET
			product_name   = ?,
			quantity       = ?,
			unit_price     = ?,
			total_price    = ?,
			payment_method = ?
		WHERE store_id = ? AND offline_id = ?;`

	saveSaleGroup = `
		INSERT INTO sale_groups (
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			total_amount,
			item_count,
			payment_method,
			status,
			created_by,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getSaleGroup = `
		SELECT
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			total_amount,
			item_count,
			payment_method,
			status,
			created_by,
			created_at
		FROM sale_groups
		WHERE store_id = ? AND offline_id = ?;`

	listSaleGroupsByStore = `
		SELECT
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			total_amount,
			item_count,
			payment_method,
			status,
			created_by,
			created_at
		FROM sale_groups
		WHERE store_id = ?
		ORDER BY created_at DESC;`

	markSaleGroupSynced = `
		UPDATE sale_groups SET
			synced_remote_id = ?
		WHERE offline_id = ?;`

	updateSaleGroup = `
		UPDATE sale_groups SET
			total_amount   = ?,
			item_count     = ?,
			payment_method = ?,
			status         = ?
		WHERE store_id = ? AND offline_id = ?;`

	saveAdjustment = `
		INSERT INTO inventory_adjustments (
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			product_id,
			delta,
			reason,
			adjusted_by,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	getAdjustment = `
		SELECT
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			product_id,
			delta,
			reason,
			adjusted_by,
			created_at
		FROM inventory_adjustments
		WHERE store_id = ? AND offline_id = ?;`

	listAdjustmentsByStore = `
		SELECT
			offline_id,
			synced_remote_id,
			store_id,
			client_ref,
			product_id,
			delta,
			reason,
			adjusted_by,
			created_at
		FROM inventory_adjustments
		WHERE store_id = ?
		ORDER BY created_at DESC;`

	markAdjustmentSynced = `
		UPDATE inventory_adjustments SET
			synced_remote_id = ?
		WHERE offline_id = ?;`
)
