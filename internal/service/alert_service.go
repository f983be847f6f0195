package service

import (
	"context"

	"github.com/MKhiriev/go-pim-sync/internal/alert"
	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
)

type alertService struct {
	credentials config.Alert
	storeURI    string
	job         SyncJob
}

// NewAlertService returns an [AlertService] that authenticates alerts with
// credentials and triggers job for alerts naming storeURI.
func NewAlertService(credentials config.Alert, storeURI string, job SyncJob) AlertService {
	return &alertService{credentials: credentials, storeURI: storeURI, job: job}
}

func (s *alertService) HandleAlert(ctx context.Context, raw []byte) (bool, error) {
	log := logger.FromContext(ctx)

	msg, err := alert.Parse(raw)
	if err != nil {
		log.Err(err).Str("func", "alertService.HandleAlert").Int("bytes", len(raw)).Msg("malformed server alert")
		return false, err
	}

	if !alert.IsValid(msg, s.credentials.ServerID, s.credentials.Password, s.credentials.Nonce) {
		log.Warn().Str("server_id", msg.ServerID).Uint16("session_id", msg.SessionID).Msg("ignoring unauthenticated server alert")
		return false, nil
	}

	for _, entry := range msg.Syncs {
		if entry.StoreURI != s.storeURI {
			continue
		}

		mode, ok := entry.Mode()
		if !ok {
			log.Warn().Int("sync_type", entry.SyncType).Msg("ignoring alert with unsupported sync type")
			return false, nil
		}

		queued := s.job.Trigger(mode)
		log.Info().
			Str("mode", mode.String()).
			Uint16("session_id", msg.SessionID).
			Bool("queued", queued).
			Msg("server alert accepted")
		return true, nil
	}

	log.Debug().Int("entries", len(msg.Syncs)).Msg("server alert names no local store")
	return false, nil
}
