package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pim-sync/models"
)

type runnerFunc func(ctx context.Context, mode models.SyncMode) (models.SyncCounters, error)

func (f runnerFunc) Run(ctx context.Context, mode models.SyncMode) (models.SyncCounters, error) {
	return f(ctx, mode)
}

func TestSyncJob_TriggerRunsSession(t *testing.T) {
	ran := make(chan models.SyncMode, 1)
	job := NewSyncJob(runnerFunc(func(_ context.Context, mode models.SyncMode) (models.SyncCounters, error) {
		ran <- mode
		return models.SyncCounters{}, nil
	}), "")

	require.NoError(t, job.Start(testContext()))
	defer job.Stop()

	assert.True(t, job.Trigger(models.SyncOneWayFromServer))

	select {
	case mode := <-ran:
		assert.Equal(t, models.SyncOneWayFromServer, mode)
	case <-time.After(2 * time.Second):
		t.Fatal("triggered session did not run")
	}
}

func TestSyncJob_TriggerIsCoalesced(t *testing.T) {
	job := NewSyncJob(runnerFunc(func(context.Context, models.SyncMode) (models.SyncCounters, error) {
		return models.SyncCounters{}, nil
	}), "")

	// Not started: the first trigger fills the queue, the second is dropped.
	assert.True(t, job.Trigger(models.SyncTwoWay))
	assert.False(t, job.Trigger(models.SyncSlow))
}

func TestSyncJob_Schedule(t *testing.T) {
	ran := make(chan models.SyncMode, 4)
	job := NewSyncJob(runnerFunc(func(_ context.Context, mode models.SyncMode) (models.SyncCounters, error) {
		ran <- mode
		return models.SyncCounters{}, ErrSessionInProgress
	}), "@every 1s")

	require.NoError(t, job.Start(testContext()))
	defer job.Stop()

	select {
	case mode := <-ran:
		assert.Equal(t, models.SyncTwoWay, mode)
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled session did not run")
	}
}

func TestSyncJob_InvalidSchedule(t *testing.T) {
	job := NewSyncJob(runnerFunc(nil), "every now and then")
	assert.Error(t, job.Start(testContext()))
}

func TestSyncJob_StopWaitsForSession(t *testing.T) {
	entered := make(chan struct{})
	finished := false

	job := NewSyncJob(runnerFunc(func(ctx context.Context, _ models.SyncMode) (models.SyncCounters, error) {
		close(entered)
		<-ctx.Done()
		finished = true
		return models.SyncCounters{}, ctx.Err()
	}), "")

	require.NoError(t, job.Start(testContext()))
	job.Trigger(models.SyncTwoWay)
	<-entered

	job.Stop()
	assert.True(t, finished)

	job.Stop()
}
