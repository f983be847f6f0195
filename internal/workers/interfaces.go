// Package workers runs the long-lived parts of the client side by side.
// It defines the Worker interface and a Workers aggregate that starts all
// workers and stops them together.
package workers

import "context"

// Worker is a long-running component. Run blocks until ctx is cancelled or
// the worker fails, and returns only after the worker released everything
// it started.
type Worker interface {
	Run(ctx context.Context) error
}
