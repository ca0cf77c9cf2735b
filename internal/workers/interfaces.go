// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way. Two workers ship with the
// sync stack: the connectivity probe and the drain trigger controller.
package workers

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to spawn their goroutines internally and
// return; the aggregate Run call must not block on any single worker.
type Worker interface {
	Run()
}
