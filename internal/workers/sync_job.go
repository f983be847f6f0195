package workers

import (
	"context"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/models"
)

// SyncJobWorker keeps the sync job running for the lifetime of the worker.
// A two-way session is queued right after start.
type SyncJobWorker struct {
	job service.SyncJob
}

func NewSyncJobWorker(job service.SyncJob) *SyncJobWorker {
	return &SyncJobWorker{job: job}
}

func (w *SyncJobWorker) Run(ctx context.Context) error {
	if err := w.job.Start(ctx); err != nil {
		return err
	}
	defer w.job.Stop()

	w.job.Trigger(models.SyncTwoWay)
	logger.FromContext(ctx).Info().Msg("sync job started")

	<-ctx.Done()
	return nil
}
