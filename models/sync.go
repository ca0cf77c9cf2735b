package models

import "time"

// SyncResult is the summary of one drain pass over the queue.
type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// SyncProgress reports how far an in-flight drain has advanced.
type SyncProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// SyncStatus is the observable engine state exposed to the UI layer.
type SyncStatus struct {
	Online     bool         `json:"online"`
	Syncing    bool         `json:"syncing"`
	Paused     bool         `json:"paused"`
	QueueCount int          `json:"queue_count"`
	Progress   SyncProgress `json:"progress"`
	LastSyncAt *time.Time   `json:"last_sync_at,omitempty"`
	LastError  string       `json:"last_error,omitempty"`
}
