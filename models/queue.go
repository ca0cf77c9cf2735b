package models

import (
	"encoding/json"
	"time"
)

// QueueStatus is the lifecycle state of a queued mutation.
//
// Allowed transitions: pending → syncing → {synced | failed},
// failed → syncing on the next drain pass.
type QueueStatus string

const (
	QueueStatusPending QueueStatus = "pending"
	QueueStatusSyncing QueueStatus = "syncing"
	QueueStatusSynced  QueueStatus = "synced"
	QueueStatusFailed  QueueStatus = "failed"
)

// QueueItem is one local mutation awaiting remote confirmation.
//
// QueueID is assigned at enqueue time and never reused. ClientRef is the
// idempotency token carried through to the remote system; it is the sole
// mechanism for detecting that a mutation already landed remotely after a
// connectivity gap.
type QueueItem struct {
	QueueID    string          `json:"queue_id"`
	StoreID    string          `json:"store_id"`
	EntityType EntityType      `json:"entity_type"`
	Operation  Operation       `json:"operation"`
	Payload    json.RawMessage `json:"payload"`
	ClientRef  string          `json:"client_ref"`
	Status     QueueStatus     `json:"status"`

	// FailureReason holds the last error message; empty unless
	// Status == QueueStatusFailed.
	FailureReason string `json:"failure_reason,omitempty"`

	// RetryCount is the number of failed attempts so far. Retries are not
	// capped; an item stays eligible until it syncs or the queue is cleared.
	RetryCount int `json:"retry_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
