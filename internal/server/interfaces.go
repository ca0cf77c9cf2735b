package server

// Server is the lifecycle contract for the HTTP server hosting the local
// sync API. RunServer blocks until a shutdown signal arrives; Shutdown
// releases the listener and lets in-flight requests finish.
type Server interface {
	RunServer()
	Shutdown()
}
