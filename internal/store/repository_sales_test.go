package store

import (
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

var saleColumns = []string{
	"offline_id", "synced_remote_id", "store_id", "client_ref",
	"sale_group_ref", "device_serial", "product_name", "quantity",
	"unit_price", "total_price", "payment_method", "created_by", "created_at",
}

func testSale(now time.Time) models.Sale {
	return models.Sale{
		OfflineID:     "off-1",
		StoreID:       "store-1",
		ClientRef:     "ref-1",
		SaleGroupRef:  "grp-1",
		DeviceSerial:  "IMEI-0001",
		ProductName:   "Phone X",
		Quantity:      1,
		UnitPrice:     45000,
		TotalPrice:    45000,
		PaymentMethod: "cash",
		CreatedBy:     "cashier@store.example",
		CreatedAt:     now,
	}
}

// ── Save ──

func TestSaleSave(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("INSERT INTO sales").
			WithArgs(
				"off-1", nil, "store-1", "ref-1", "grp-1", "IMEI-0001",
				"Phone X", int64(1), int64(45000), int64(45000),
				"cash", "cashier@store.example", now,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Save(testContext(), testSale(now))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: missing store scope", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		sale := testSale(now)
		sale.StoreID = ""

		err := repo.Save(testContext(), sale)

		assert.ErrorIs(t, err, ErrMissingStoreScope)
	})

	t.Run("error: duplicate client ref", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("INSERT INTO sales").
			WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

		err := repo.Save(testContext(), testSale(now))

		assert.ErrorIs(t, err, ErrDuplicateClientRef)
	})

	t.Run("error: insert failure", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("INSERT INTO sales").
			WillReturnError(errors.New("disk I/O error"))

		err := repo.Save(testContext(), testSale(now))

		assert.ErrorIs(t, err, ErrExecutingStatement)
	})
}

// ── Get ──

func TestSaleGet(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("success: unreconciled sale", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT").
			WithArgs("store-1", "off-1").
			WillReturnRows(sqlmock.NewRows(saleColumns).
				AddRow("off-1", nil, "store-1", "ref-1", "grp-1", "IMEI-0001",
					"Phone X", int64(1), int64(45000), int64(45000),
					"cash", "cashier@store.example", now))

		sale, err := repo.Get(testContext(), "store-1", "off-1")

		require.NoError(t, err)
		assert.Equal(t, "off-1", sale.OfflineID)
		assert.Nil(t, sale.SyncedRemoteID)
		assert.False(t, sale.Reconciled())
	})

	t.Run("success: reconciled sale", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT").
			WithArgs("store-1", "off-1").
			WillReturnRows(sqlmock.NewRows(saleColumns).
				AddRow("off-1", int64(9001), "store-1", "ref-1", "", "",
					"Phone X", int64(1), int64(45000), int64(45000),
					"cash", "cashier@store.example", now))

		sale, err := repo.Get(testContext(), "store-1", "off-1")

		require.NoError(t, err)
		require.NotNil(t, sale.SyncedRemoteID)
		assert.Equal(t, int64(9001), *sale.SyncedRemoteID)
		assert.True(t, sale.Reconciled())
	})

	t.Run("error: not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT").
			WithArgs("store-1", "off-missing").
			WillReturnRows(sqlmock.NewRows(saleColumns))

		_, err := repo.Get(testContext(), "store-1", "off-missing")

		assert.ErrorIs(t, err, ErrSaleNotFound)
	})

	t.Run("error: missing store scope", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		_, err := repo.Get(testContext(), "", "off-1")

		assert.ErrorIs(t, err, ErrMissingStoreScope)
	})
}

// ── ListByStore ──

func TestSaleListByStore(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT").
			WithArgs("store-1").
			WillReturnRows(sqlmock.NewRows(saleColumns).
				AddRow("off-2", nil, "store-1", "ref-2", "", "",
					"Charger", int64(2), int64(1500), int64(3000),
					"card", "cashier@store.example", now).
				AddRow("off-1", int64(9001), "store-1", "ref-1", "", "IMEI-0001",
					"Phone X", int64(1), int64(45000), int64(45000),
					"cash", "cashier@store.example", now.Add(-time.Hour)))

		sales, err := repo.ListByStore(testContext(), "store-1")

		require.NoError(t, err)
		require.Len(t, sales, 2)
		assert.Equal(t, "off-2", sales[0].OfflineID)
		assert.Equal(t, "off-1", sales[1].OfflineID)
	})

	t.Run("error: query failure", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT").
			WillReturnError(errors.New("database is locked"))

		_, err := repo.ListByStore(testContext(), "store-1")

		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}

// ── MarkSynced ──

func TestSaleMarkSynced(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("UPDATE sales").
			WithArgs(int64(9001), "off-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkSynced(testContext(), "off-1", 9001)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("UPDATE sales").
			WithArgs(int64(9001), "off-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkSynced(testContext(), "off-missing", 9001)

		assert.ErrorIs(t, err, ErrSaleNotFound)
	})
}

// ── Update ──

func TestSaleUpdate(t *testing.T) {
	t.Run("success: only mutable columns written", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		sale := testSale(time.Now().UTC())
		sale.Quantity = 2
		sale.TotalPrice = 90000

		mock.ExpectExec("UPDATE sales").
			WithArgs(
				sale.ProductName, sale.Quantity, sale.UnitPrice,
				sale.TotalPrice, sale.PaymentMethod,
				sale.StoreID, sale.OfflineID,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(testContext(), sale)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("UPDATE sales").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(testContext(), testSale(time.Now().UTC()))

		assert.ErrorIs(t, err, ErrSaleNotFound)
	})

	t.Run("error: missing store scope", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := NewSaleRepository(newDBFromSQL(db), logger.Nop())

		sale := testSale(time.Now().UTC())
		sale.StoreID = ""

		err := repo.Update(testContext(), sale)

		assert.ErrorIs(t, err, ErrMissingStoreScope)
	})
}
