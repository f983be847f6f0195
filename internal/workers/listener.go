package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pim-sync/internal/server"
)

const listenerShutdownTimeout = 5 * time.Second

// ListenerWorker serves the alert listener until ctx is cancelled.
type ListenerWorker struct {
	server server.Server
}

func NewListenerWorker(srv server.Server) *ListenerWorker {
	return &ListenerWorker{server: srv}
}

func (w *ListenerWorker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- w.server.RunServer() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listenerShutdownTimeout)
	defer cancel()

	if err := w.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
