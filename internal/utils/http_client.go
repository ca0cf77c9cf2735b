package utils

import (
	"github.com/go-resty/resty/v2"
)

// userAgent identifies the sync client on every outbound request, which
// lets the remote backend tell POS devices apart from other API consumers
// in its access logs.
const userAgent = "go-pos-sync"

// HTTPClient wraps resty.Client for all traffic to the remote backend.
// It embeds *resty.Client so the adapter can use the fluent request API
// directly; base URL, timeout and auth headers are configured by the
// adapter itself.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a fresh HTTPClient with its own connection pool.
// Every remote adapter gets an independent instance so per-store request
// timeouts never interfere with each other.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", userAgent)

	return &HTTPClient{Client: client}
}
