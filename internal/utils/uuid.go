package utils

import "github.com/google/uuid"

// UUIDGenerator produces client-side identifiers (queue ids, offline ids,
// idempotency tokens). Version 7 UUIDs are preferred because they are
// time-ordered, which keeps local rowid order and id order roughly aligned.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
