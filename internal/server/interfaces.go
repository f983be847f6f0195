package server

import "context"

// Server defines the lifecycle of the alert listener.
type Server interface {
	// RunServer serves requests and blocks until the server stops. A stop
	// requested through Shutdown is not an error.
	RunServer() error
	// Shutdown stops accepting requests and waits for in-flight ones until
	// ctx expires.
	Shutdown(ctx context.Context) error
}
