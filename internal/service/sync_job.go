package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

type syncJob struct {
	runner   SessionRunner
	schedule string
	trigger  chan models.SyncMode

	mu     sync.Mutex
	cancel context.CancelFunc
	cron   *cron.Cron
	wg     sync.WaitGroup
}

// NewSyncJob creates a [SyncJob] that runs two-way sessions on the cron
// schedule and sessions of any mode on Trigger. An empty schedule disables
// periodic runs. The job is idle until Start is called.
func NewSyncJob(runner SessionRunner, schedule string) SyncJob {
	return &syncJob{
		runner:   runner,
		schedule: schedule,
		trigger:  make(chan models.SyncMode, 1),
	}
}

// Start implements [SyncJob]. It stops any previously running job first.
func (j *syncJob) Start(ctx context.Context) error {
	j.Stop()

	c := cron.New()
	if j.schedule != "" {
		if _, err := c.AddFunc(j.schedule, func() { j.Trigger(models.SyncTwoWay) }); err != nil {
			return fmt.Errorf("invalid sync schedule %q: %w", j.schedule, err)
		}
	}

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.cron = c
	j.wg.Add(1)
	j.mu.Unlock()

	c.Start()

	go func() {
		defer j.wg.Done()
		log := logger.FromContext(jobCtx)

		for {
			select {
			case <-jobCtx.Done():
				return
			case mode := <-j.trigger:
				counters, err := j.runner.Run(jobCtx, mode)
				if errors.Is(err, ErrSessionInProgress) {
					log.Debug().Str("mode", mode.String()).Msg("session already running, trigger dropped")
					continue
				}
				if err != nil {
					log.Err(err).Str("func", "syncJob.Start").Str("mode", mode.String()).Msg("sync session failed")
					continue
				}
				log.Info().
					Str("mode", mode.String()).
					Int("sent", counters.Sent()).
					Int("received", counters.Received()).
					Msg("sync session completed")
			}
		}
	}()

	return nil
}

func (j *syncJob) Trigger(mode models.SyncMode) bool {
	select {
	case j.trigger <- mode:
		return true
	default:
		return false
	}
}

// Stop implements [SyncJob]. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel, c := j.cancel, j.cron
	j.cancel, j.cron = nil, nil
	j.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
