// Package workers provides the background processes of the sync daemon: the
// connectivity monitor, its probe signal source, and the periodic drain job.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

// Worker is the interface implemented by every background worker.
//
// Run starts the worker's execution; implementations spawn goroutines
// internally and return immediately. Stop cancels the worker and blocks
// until its goroutines have exited. Stop is safe to call when the worker is
// not running.
type Worker interface {
	Run()
	Stop()
}
