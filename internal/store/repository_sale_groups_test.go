package store

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/models"
)

var saleGroupColumns = []string{
	"offline_id", "synced_remote_id", "store_id", "client_ref",
	"total_amount", "item_count", "payment_method", "status",
	"created_by", "created_at",
}

func TestSaleGroupSaveAndGet(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	group := models.SaleGroup{
		OfflineID:     "grp-1",
		StoreID:       "store-1",
		ClientRef:     "ref-grp-1",
		TotalAmount:   48000,
		ItemCount:     2,
		PaymentMethod: "cash",
		Status:        "completed",
		CreatedBy:     "cashier@store.example",
		CreatedAt:     now,
	}

	t.Run("save success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("INSERT INTO sale_groups").
			WithArgs(
				"grp-1", nil, "store-1", "ref-grp-1",
				int64(48000), 2, "cash", "completed",
				"cashier@store.example", now,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Save(testContext(), group)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save duplicate client ref", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("INSERT INTO sale_groups").
			WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

		err := repo.Save(testContext(), group)

		assert.ErrorIs(t, err, ErrDuplicateClientRef)
	})

	t.Run("get reconciled group", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT").
			WithArgs("store-1", "grp-1").
			WillReturnRows(sqlmock.NewRows(saleGroupColumns).
				AddRow("grp-1", int64(501), "store-1", "ref-grp-1",
					int64(48000), 2, "cash", "completed",
					"cashier@store.example", now))

		got, err := repo.Get(testContext(), "store-1", "grp-1")

		require.NoError(t, err)
		require.NotNil(t, got.SyncedRemoteID)
		assert.Equal(t, int64(501), *got.SyncedRemoteID)
		assert.True(t, got.Reconciled())
	})

	t.Run("get not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectQuery("SELECT").
			WithArgs("store-1", "grp-missing").
			WillReturnRows(sqlmock.NewRows(saleGroupColumns))

		_, err := repo.Get(testContext(), "store-1", "grp-missing")

		assert.ErrorIs(t, err, ErrSaleGroupNotFound)
	})
}

func TestSaleGroupMarkSynced(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("UPDATE sale_groups").
			WithArgs(int64(501), "grp-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkSynced(testContext(), "grp-1", 501)

		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("UPDATE sale_groups").
			WithArgs(int64(501), "grp-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkSynced(testContext(), "grp-missing", 501)

		assert.ErrorIs(t, err, ErrSaleGroupNotFound)
	})
}

func TestSaleGroupUpdate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("UPDATE sale_groups").
			WithArgs(int64(130000), 2, "card", "completed", "store-1", "grp-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(testContext(), models.SaleGroup{
			OfflineID:     "grp-1",
			StoreID:       "store-1",
			TotalAmount:   130000,
			ItemCount:     2,
			PaymentMethod: "card",
			Status:        "completed",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		mock.ExpectExec("UPDATE sale_groups").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(testContext(), models.SaleGroup{OfflineID: "grp-missing", StoreID: "store-1"})

		assert.ErrorIs(t, err, ErrSaleGroupNotFound)
	})

	t.Run("missing store scope", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := NewSaleGroupRepository(newDBFromSQL(db), logger.Nop())

		err := repo.Update(testContext(), models.SaleGroup{OfflineID: "grp-1"})

		assert.ErrorIs(t, err, ErrMissingStoreScope)
	})
}
