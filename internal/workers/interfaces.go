// Package workers provides abstractions for managing and running
// background workers in the daemon.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution; implementations are expected to spawn
// goroutines internally and return. Stop blocks until the worker's
// background work has fully wound down and is safe to call on a worker
// that was never started.
type Worker interface {
	Run()
	Stop()
}
