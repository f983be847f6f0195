package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pim-sync/internal/alert"
	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/models"
)

type recordingJob struct {
	triggered []models.SyncMode
}

func (j *recordingJob) Start(context.Context) error { return nil }
func (j *recordingJob) Stop()                       {}

func (j *recordingJob) Trigger(mode models.SyncMode) bool {
	j.triggered = append(j.triggered, mode)
	return true
}

func TestAlertService_HandleAlert(t *testing.T) {
	creds := config.Alert{ServerID: "srv1", Password: "pw", Nonce: "n1"}

	entry := func(syncType int, uri string) models.AlertSync {
		return models.AlertSync{SyncType: syncType, ContentType: 0x07, StoreURI: uri}
	}

	tests := []struct {
		name     string
		syncs    []models.AlertSync
		password string
		want     bool
		wantMode []models.SyncMode
	}{
		{
			name:     "matching store triggers its mode",
			syncs:    []models.AlertSync{entry(models.AlertSyncOneWayFromClient, "cal"), entry(models.AlertSyncRefreshFromServer, "card")},
			password: "pw",
			want:     true,
			wantMode: []models.SyncMode{models.SyncRefreshFromServer},
		},
		{
			name:     "wrong credentials are ignored",
			syncs:    []models.AlertSync{entry(models.AlertSyncTwoWay, "card")},
			password: "other",
		},
		{
			name:     "other stores are ignored",
			syncs:    []models.AlertSync{entry(models.AlertSyncTwoWay, "cal")},
			password: "pw",
		},
		{
			name:     "unsupported sync type is ignored",
			syncs:    []models.AlertSync{entry(3, "card")},
			password: "pw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := alert.Marshal(models.AlertMessage{
				Version:   12,
				SessionID: 42,
				ServerID:  "srv1",
				Syncs:     tt.syncs,
			}, "srv1", tt.password, "n1")
			require.NoError(t, err)

			job := &recordingJob{}
			accepted, err := NewAlertService(creds, "card", job).HandleAlert(testContext(), raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, accepted)
			assert.Equal(t, tt.wantMode, job.triggered)
		})
	}
}

func TestAlertService_Malformed(t *testing.T) {
	job := &recordingJob{}
	accepted, err := NewAlertService(config.Alert{ServerID: "s", Password: "p"}, "card", job).
		HandleAlert(testContext(), []byte{1, 2, 3})

	assert.ErrorIs(t, err, alert.ErrMalformedAlert)
	assert.False(t, accepted)
	assert.Empty(t, job.triggered)
}
