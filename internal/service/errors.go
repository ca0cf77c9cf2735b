package service

import "errors"

var (
	// ErrSyncPaused is returned when a drain is requested while the engine is
	// paused. The queue is left untouched.
	ErrSyncPaused = errors.New("sync is paused")

	// ErrOffline is returned when a drain is requested without connectivity.
	ErrOffline = errors.New("device is offline")

	// ErrUpdateNotSupported is returned by handlers for entity types that are
	// create-only (inventory adjustments are never edited, only compensated).
	ErrUpdateNotSupported = errors.New("update operation is not supported for this entity type")

	// ErrParentNotReconciled is returned when a sale references a sale group
	// whose remote identity does not exist yet. The item stays failed and is
	// retried after the group has synced.
	ErrParentNotReconciled = errors.New("parent sale group is not reconciled yet")

	// ErrNotReconciled is returned when an update targets a record that has no
	// remote identity yet. FIFO order means the create is still ahead in the
	// queue; the update fails and is retried after it lands.
	ErrNotReconciled = errors.New("record is not reconciled yet")

	ErrInvalidPayload = errors.New("invalid queue item payload")
)
