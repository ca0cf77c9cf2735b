// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the hosted backend.
//
// The primary abstraction is [RemoteService], which decouples the sync layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewRESTRemoteService]) speaking the PostgREST-style dialect of the hosted
// data service: table endpoints under /rest/v1/{table} with eq. query
// filters, and remote procedures under /rest/v1/rpc/{name}.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnavailable] for 502/503).
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-pos-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_service_mock.go -package=mock

// RemoteService defines transport-agnostic communication with the hosted
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
//
// All methods except SetToken/Token require connectivity and honour ctx
// cancellation; the sync engine relies on that to abort a drain mid-item.
type RemoteService interface {
	// SetToken stores the user's bearer token that will be attached to all
	// subsequent requests alongside the project API key. Called once a
	// session is established for a store.
	SetToken(token string)

	// Token returns the bearer token currently stored in the service, or an
	// empty string if no token has been set yet.
	Token() string

	// Query fetches all rows of table matching the equality filter. An empty
	// result is returned as a nil/empty slice, not an error.
	Query(ctx context.Context, table string, filter models.Filter) ([]models.RemoteRecord, error)

	// Insert creates one row in table and returns the stored representation,
	// including the server-assigned numeric id. Returns [ErrConflict]
	// (wrapped) when the row violates a uniqueness constraint — for the sync
	// flow that means the mutation already landed under its client ref.
	Insert(ctx context.Context, table string, record models.RemoteRecord) (models.RemoteRecord, error)

	// Update applies changes to all rows of table matching the equality
	// filter and returns the updated representations.
	Update(ctx context.Context, table string, filter models.Filter, changes models.RemoteRecord) ([]models.RemoteRecord, error)

	// InvokeProcedure calls the named remote procedure with args and returns
	// the raw JSON result for the caller to decode.
	InvokeProcedure(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)

	// Ping probes the backend health endpoint. A nil return means the
	// backend is reachable; the connectivity monitor treats any error as
	// offline.
	Ping(ctx context.Context) error
}
