package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pos-sync/internal/store"
	"github.com/MKhiriev/go-pos-sync/models"
)

func TestCreateSale(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.sales.created = models.Sale{
		OfflineID:   "off-1",
		StoreID:     "store-1",
		ClientRef:   "ref-1",
		ProductName: "iPhone 13 128GB",
	}

	body := `{"product_name": "iPhone 13 128GB", "quantity": 1, "unit_price": 65000, "total_price": 65000, "payment_method": "cash"}`
	req := authorizedRequest(t, http.MethodPost, srv.URL+"/api/sales", body)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Sale
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "off-1", created.OfflineID)
	assert.Equal(t, "ref-1", created.ClientRef)

	// the service receives the session parsed from the bearer token
	assert.Equal(t, "store-1", doubles.sales.gotSession.StoreID)
	assert.Equal(t, "cashier@store.uz", doubles.sales.gotSession.Email)
	assert.Equal(t, "iPhone 13 128GB", doubles.sales.gotSale.ProductName)
}

func TestCreateSale_InvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	req := authorizedRequest(t, http.MethodPost, srv.URL+"/api/sales", `{broken`)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSale_ServiceError(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.sales.createErr = store.ErrMissingStoreScope

	req := authorizedRequest(t, http.MethodPost, srv.URL+"/api/sales", `{}`)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateSale(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.sales.updated = models.Sale{
		OfflineID:     "off-1",
		StoreID:       "store-1",
		ProductName:   "iPhone 13 128GB",
		PaymentMethod: "card",
	}

	body := `{"payment_method": "card"}`
	req := authorizedRequest(t, http.MethodPatch, srv.URL+"/api/sales/off-1", body)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Sale
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "card", updated.PaymentMethod)

	// the path parameter and the decoded patch both reach the service
	assert.Equal(t, "off-1", doubles.sales.gotOfflineID)
	assert.Equal(t, "card", doubles.sales.gotPatch.PaymentMethod)
	assert.Equal(t, "store-1", doubles.sales.gotSession.StoreID)
}

func TestUpdateSale_NotFound(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.sales.updateErr = store.ErrSaleNotFound

	req := authorizedRequest(t, http.MethodPatch, srv.URL+"/api/sales/missing", `{}`)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListSales(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.sales.list = []models.Sale{
		{OfflineID: "off-1", ProductName: "iPhone 13 128GB"},
		{OfflineID: "off-2", ProductName: "Redmi Note 12"},
	}

	resp, err := srv.Client().Do(authorizedRequest(t, http.MethodGet, srv.URL+"/api/sales", ""))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sales []models.Sale
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sales))
	assert.Len(t, sales, 2)
}

func TestCreateSaleGroup(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.saleGroups.created = models.SaleGroup{OfflineID: "off-g-1", ItemCount: 2}

	body := `{"total_amount": 130000, "item_count": 2, "payment_method": "card"}`
	req := authorizedRequest(t, http.MethodPost, srv.URL+"/api/sale-groups", body)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.SaleGroup
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "off-g-1", created.OfflineID)
}

func TestUpdateSaleGroup(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.saleGroups.updated = models.SaleGroup{OfflineID: "off-g-1", Status: "completed"}

	body := `{"status": "completed", "total_amount": 130000}`
	req := authorizedRequest(t, http.MethodPatch, srv.URL+"/api/sale-groups/off-g-1", body)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.SaleGroup
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, "off-g-1", doubles.saleGroups.gotOfflineID)
}

func TestCreateAdjustment(t *testing.T) {
	srv, doubles := newTestServer(t)
	doubles.adjustments.created = models.InventoryAdjustment{OfflineID: "off-a-1", Delta: -3}

	body := `{"product_id": 42, "delta": -3, "reason": "damaged in transit"}`
	req := authorizedRequest(t, http.MethodPost, srv.URL+"/api/inventory-adjustments", body)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.InventoryAdjustment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "off-a-1", created.OfflineID)
}
