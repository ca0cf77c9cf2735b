// Package http implements the local HTTP surface consumed by the UI layer.
//
// It exposes route wiring, request handlers, and middleware for the device's
// REST API: optimistic sale/adjustment recording and the sync control
// endpoints. Authentication, request tracing, and access logging are handled
// in this package before requests are delegated to the service layer.
package http
