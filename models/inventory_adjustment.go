package models

import "time"

// InventoryAdjustment is a locally cached manual stock correction. It is
// create-only: once recorded, an adjustment is never edited, only compensated
// by a new adjustment.
type InventoryAdjustment struct {
	OfflineID      string `json:"offline_id"`
	SyncedRemoteID *int64 `json:"synced_remote_id,omitempty"`

	StoreID   string `json:"store_id"`
	ClientRef string `json:"client_ref"`

	ProductID int64 `json:"product_id"`

	// Delta is the signed stock change (negative for write-offs).
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`

	AdjustedBy string    `json:"adjusted_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// Reconciled reports whether the adjustment's local and remote identities
// have been linked.
func (a InventoryAdjustment) Reconciled() bool {
	return a.SyncedRemoteID != nil
}

// ToRemote converts the adjustment to the remote record representation.
func (a InventoryAdjustment) ToRemote() RemoteRecord {
	return RemoteRecord{
		"store_id":    a.StoreID,
		"client_ref":  a.ClientRef,
		"product_id":  a.ProductID,
		"delta":       a.Delta,
		"reason":      a.Reason,
		"adjusted_by": a.AdjustedBy,
		"created_at":  a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
