// Package server wires and runs the device's control API server.
//
// It owns the HTTP server lifecycle: startup, signal handling, and graceful
// shutdown.
package server
