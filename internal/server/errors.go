// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errMissingHTTPAddress means the control API cannot be served: without
	// a listen address the POS UI has nothing to talk to.
	errMissingHTTPAddress = errors.New("no http listen address configured")
)
