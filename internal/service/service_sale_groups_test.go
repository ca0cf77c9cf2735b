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

func TestCreateSaleGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	groups := mock.NewMockSaleGroupRepository(ctrl)
	queue := mock.NewMockQueueRepository(ctrl)

	groups.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	var enqueued models.QueueItem
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.QueueItem) (models.QueueItem, error) {
			enqueued = item
			return item, nil
		})

	svc := NewSaleGroupsService(groups, queue, logger.Nop())

	created, err := svc.CreateSaleGroup(context.Background(), testSession(), models.SaleGroup{
		TotalAmount:   130000,
		ItemCount:     2,
		PaymentMethod: "card",
		Status:        "open",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.OfflineID)
	assert.Equal(t, "store-1", created.StoreID)
	assert.Equal(t, models.EntityTypeSaleGroup, enqueued.EntityType)
	assert.Equal(t, created.ClientRef, enqueued.ClientRef)
}

func TestUpdateSaleGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	groups := mock.NewMockSaleGroupRepository(ctrl)
	queue := mock.NewMockQueueRepository(ctrl)

	cached := models.SaleGroup{
		OfflineID:     "off-g-1",
		StoreID:       "store-1",
		ClientRef:     "ref-g-create",
		TotalAmount:   130000,
		ItemCount:     2,
		PaymentMethod: "card",
		Status:        "open",
	}

	groups.EXPECT().
		Get(gomock.Any(), "store-1", "off-g-1").
		Return(cached, nil)

	var updated models.SaleGroup
	groups.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, group models.SaleGroup) error {
			updated = group
			return nil
		})

	var enqueued models.QueueItem
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.QueueItem) (models.QueueItem, error) {
			enqueued = item
			return item, nil
		})

	svc := NewSaleGroupsService(groups, queue, logger.Nop())

	out, err := svc.UpdateSaleGroup(context.Background(), testSession(), "off-g-1", models.SaleGroup{
		Status: "completed",
	})
	require.NoError(t, err)

	// only the status changed; totals and identity carried over
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, int64(130000), out.TotalAmount)
	assert.Equal(t, "ref-g-create", out.ClientRef)
	assert.Equal(t, out, updated)

	assert.Equal(t, models.EntityTypeSaleGroup, enqueued.EntityType)
	assert.Equal(t, models.OperationUpdate, enqueued.Operation)
	assert.Empty(t, enqueued.ClientRef)

	var payload models.SaleGroup
	require.NoError(t, json.Unmarshal(enqueued.Payload, &payload))
	assert.Equal(t, "completed", payload.Status)
}

func TestUpdateSaleGroup_NotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	groups := mock.NewMockSaleGroupRepository(ctrl)

	groups.EXPECT().
		Get(gomock.Any(), "store-1", "missing").
		Return(models.SaleGroup{}, store.ErrSaleGroupNotFound)

	svc := NewSaleGroupsService(groups, mock.NewMockQueueRepository(ctrl), logger.Nop())

	_, err := svc.UpdateSaleGroup(context.Background(), testSession(), "missing", models.SaleGroup{})
	assert.ErrorIs(t, err, store.ErrSaleGroupNotFound)
}
