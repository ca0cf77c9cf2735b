// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors mapped from remote HTTP status codes. Callers match these
// with [errors.Is] to decide whether a failed sync attempt is worth retrying.
var (
	ErrBadRequest          = errors.New("remote rejected request")
	ErrUnauthorized        = errors.New("remote unauthorized")
	ErrForbidden           = errors.New("remote forbidden")
	ErrNotFound            = errors.New("remote resource not found")
	ErrConflict            = errors.New("remote conflict")
	ErrUnavailable         = errors.New("remote unavailable")
	ErrInternalServerError = errors.New("remote internal server error")
)
