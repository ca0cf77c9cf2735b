package models

import "time"

// SaleGroup is a locally cached checkout basket grouping several sales paid
// for together. A group is enqueued before its line items, so within one
// drain pass the group reaches the server first and the sales can reference
// its remote identity.
type SaleGroup struct {
	OfflineID      string `json:"offline_id"`
	SyncedRemoteID *int64 `json:"synced_remote_id,omitempty"`

	StoreID   string `json:"store_id"`
	ClientRef string `json:"client_ref"`

	TotalAmount   int64  `json:"total_amount"`
	ItemCount     int    `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Reconciled reports whether the group's local and remote identities have
// been linked.
func (g SaleGroup) Reconciled() bool {
	return g.SyncedRemoteID != nil
}

// ToRemote converts the group to the remote record representation.
func (g SaleGroup) ToRemote() RemoteRecord {
	return RemoteRecord{
		"store_id":       g.StoreID,
		"client_ref":     g.ClientRef,
		"total_amount":   g.TotalAmount,
		"item_count":     g.ItemCount,
		"payment_method": g.PaymentMethod,
		"status":         g.Status,
		"created_by":     g.CreatedBy,
		"created_at":     g.CreatedAt.UTC().Format(time.RFC3339),
	}
}
