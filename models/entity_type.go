package models

import "fmt"

// EntityType identifies which domain entity a queued mutation belongs to.
// The set is closed: every value must have a registered sync handler, and the
// handler registry refuses to start if one is missing.
type EntityType string

const (
	// EntityTypeSale is a single sold line item (one device/product sold).
	EntityTypeSale EntityType = "sale"

	// EntityTypeSaleGroup is a checkout basket grouping one or more sales
	// paid for together. A sale group must reach the server before any of
	// its line items.
	EntityTypeSaleGroup EntityType = "sale_group"

	// EntityTypeInventoryAdjustment is a manual stock correction
	// (write-off, recount, damaged goods).
	EntityTypeInventoryAdjustment EntityType = "inventory_adjustment"
)

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeSale, EntityTypeSaleGroup, EntityTypeInventoryAdjustment:
		return true
	}
	return false
}

// RemoteTable returns the remote collection name the entity is stored under.
func (t EntityType) RemoteTable() string {
	switch t {
	case EntityTypeSale:
		return "sales"
	case EntityTypeSaleGroup:
		return "sale_groups"
	case EntityTypeInventoryAdjustment:
		return "inventory_adjustments"
	}
	return string(t)
}

// Operation is the kind of mutation a queue item replays against the server.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
)

// Valid reports whether op is a known operation kind.
func (op Operation) Valid() bool {
	return op == OperationCreate || op == OperationUpdate
}

// ErrUnknownEntityType is returned when a queue item carries an entity type
// that has no registered handler.
var ErrUnknownEntityType = fmt.Errorf("unknown entity type")
