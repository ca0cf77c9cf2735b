package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/MKhiriev/go-pos-sync/internal/mock"
	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

func testSession() models.Session {
	return models.Session{
		UserID:  1,
		StoreID: "store-1",
		Email:   "cashier@store.uz",
	}
}

func TestCreateSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	sales := mock.NewMockSaleRepository(ctrl)
	queue := mock.NewMockQueueRepository(ctrl)

	var saved models.Sale
	sales.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sale models.Sale) error {
			saved = sale
			return nil
		})

	var enqueued models.QueueItem
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.QueueItem) (models.QueueItem, error) {
			enqueued = item
			item.QueueID = "q-1"
			return item, nil
		})

	svc := NewSalesService(sales, queue, logger.Nop())

	created, err := svc.CreateSale(context.Background(), testSession(), models.Sale{
		ProductName:   "Redmi Note 12",
		Quantity:      1,
		UnitPrice:     25000,
		TotalPrice:    25000,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	// local identity assigned, session scope applied
	assert.NotEmpty(t, created.OfflineID)
	assert.NotEmpty(t, created.ClientRef)
	assert.Equal(t, "store-1", created.StoreID)
	assert.Equal(t, "cashier@store.uz", created.CreatedBy)
	assert.Nil(t, created.SyncedRemoteID)
	assert.False(t, created.CreatedAt.IsZero())

	assert.Equal(t, created, saved)

	// the queue entry carries the same idempotency token as the cached row
	assert.Equal(t, models.EntityTypeSale, enqueued.EntityType)
	assert.Equal(t, models.OperationCreate, enqueued.Operation)
	assert.Equal(t, created.ClientRef, enqueued.ClientRef)
	assert.Equal(t, "store-1", enqueued.StoreID)

	var payload models.Sale
	require.NoError(t, json.Unmarshal(enqueued.Payload, &payload))
	assert.Equal(t, created.OfflineID, payload.OfflineID)
	assert.Equal(t, "Redmi Note 12", payload.ProductName)
}

func TestCreateSale_MissingStoreScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewSalesService(
		mock.NewMockSaleRepository(ctrl),
		mock.NewMockQueueRepository(ctrl),
		logger.Nop(),
	)

	_, err := svc.CreateSale(context.Background(), models.Session{Email: "x@y.z"}, models.Sale{})
	assert.ErrorIs(t, err, store.ErrMissingStoreScope)
}

func TestUpdateSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	sales := mock.NewMockSaleRepository(ctrl)
	queue := mock.NewMockQueueRepository(ctrl)

	cached := models.Sale{
		OfflineID:     "off-1",
		StoreID:       "store-1",
		ClientRef:     "ref-create",
		ProductName:   "Redmi Note 12",
		Quantity:      1,
		UnitPrice:     25000,
		TotalPrice:    25000,
		PaymentMethod: "cash",
		CreatedBy:     "cashier@store.uz",
	}

	sales.EXPECT().
		Get(gomock.Any(), "store-1", "off-1").
		Return(cached, nil)

	var updated models.Sale
	sales.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sale models.Sale) error {
			updated = sale
			return nil
		})

	var enqueued models.QueueItem
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.QueueItem) (models.QueueItem, error) {
			enqueued = item
			item.QueueID = "q-2"
			return item, nil
		})

	svc := NewSalesService(sales, queue, logger.Nop())

	out, err := svc.UpdateSale(context.Background(), testSession(), "off-1", models.Sale{
		Quantity:      2,
		TotalPrice:    50000,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	// mutable fields merged, identity untouched
	assert.Equal(t, int64(2), out.Quantity)
	assert.Equal(t, int64(50000), out.TotalPrice)
	assert.Equal(t, "card", out.PaymentMethod)
	assert.Equal(t, "Redmi Note 12", out.ProductName)
	assert.Equal(t, "off-1", out.OfflineID)
	assert.Equal(t, "ref-create", out.ClientRef)
	assert.Equal(t, out, updated)

	// an update mutation is queued; the enqueue assigns its own client ref
	assert.Equal(t, models.EntityTypeSale, enqueued.EntityType)
	assert.Equal(t, models.OperationUpdate, enqueued.Operation)
	assert.Empty(t, enqueued.ClientRef)
	assert.Equal(t, "store-1", enqueued.StoreID)

	var payload models.Sale
	require.NoError(t, json.Unmarshal(enqueued.Payload, &payload))
	assert.Equal(t, "off-1", payload.OfflineID)
	assert.Equal(t, int64(2), payload.Quantity)
}

func TestUpdateSale_NotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	sales := mock.NewMockSaleRepository(ctrl)

	sales.EXPECT().
		Get(gomock.Any(), "store-1", "missing").
		Return(models.Sale{}, store.ErrSaleNotFound)

	svc := NewSalesService(sales, mock.NewMockQueueRepository(ctrl), logger.Nop())

	_, err := svc.UpdateSale(context.Background(), testSession(), "missing", models.Sale{})
	assert.ErrorIs(t, err, store.ErrSaleNotFound)
}

func TestListSales_ScopedToSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sales := mock.NewMockSaleRepository(ctrl)

	sales.EXPECT().
		ListByStore(gomock.Any(), "store-1").
		Return([]models.Sale{{OfflineID: "off-1"}}, nil)

	svc := NewSalesService(sales, mock.NewMockQueueRepository(ctrl), logger.Nop())

	out, err := svc.ListSales(context.Background(), testSession())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
