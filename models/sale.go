package models

import "time"

// Sale is a locally cached sold line item.
//
// OfflineID is the local-only identity assigned at creation time, before a
// remote identity exists. SyncedRemoteID is populated once the remote write
// succeeds; from that point the record is considered reconciled and is never
// re-submitted.
type Sale struct {
	OfflineID      string `json:"offline_id"`
	SyncedRemoteID *int64 `json:"synced_remote_id,omitempty"`

	StoreID   string `json:"store_id"`
	ClientRef string `json:"client_ref"`

	// SaleGroupRef is the OfflineID of the parent sale group, if the sale
	// was part of a basket checkout. The group's remote identity must exist
	// before this sale can be uploaded.
	SaleGroupRef string `json:"sale_group_ref,omitempty"`

	// DeviceSerial is the serial/IMEI of the device sold. Together with
	// CreatedBy it forms the natural key used as a secondary duplicate
	// check during sync.
	DeviceSerial string `json:"device_serial,omitempty"`

	ProductName   string `json:"product_name"`
	Quantity      int64  `json:"quantity"`
	UnitPrice     int64  `json:"unit_price"`
	TotalPrice    int64  `json:"total_price"`
	PaymentMethod string `json:"payment_method"`

	// CreatedBy is the email of the cashier who recorded the sale.
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Reconciled reports whether the sale's local and remote identities have
// been linked.
func (s Sale) Reconciled() bool {
	return s.SyncedRemoteID != nil
}

// ToRemote converts the sale to the remote record representation.
// saleGroupRemoteID is the reconciled remote id of the parent group, or nil
// for a standalone sale.
func (s Sale) ToRemote(saleGroupRemoteID *int64) RemoteRecord {
	rec := RemoteRecord{
		"store_id":       s.StoreID,
		"client_ref":     s.ClientRef,
		"product_name":   s.ProductName,
		"quantity":       s.Quantity,
		"unit_price":     s.UnitPrice,
		"total_price":    s.TotalPrice,
		"payment_method": s.PaymentMethod,
		"created_by":     s.CreatedBy,
		"created_at":     s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s.DeviceSerial != "" {
		rec["device_serial"] = s.DeviceSerial
	}
	if saleGroupRemoteID != nil {
		rec["sale_group_id"] = *saleGroupRemoteID
	}
	return rec
}
