package service

import (
	"github.com/MKhiriev/go-pim-sync/internal/codec"
	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
)

type ClientServices struct {
	Source       SyncSource
	Driver       *SessionDriver
	SyncJob      SyncJob
	AlertService AlertService
}

// NewClientServices wires the contact sync source to peer. A nil peer
// selects [DryRunPeer].
func NewClientServices(cfg *config.StructuredConfig, storages *store.ClientStorages, peer Peer, logger *logger.Logger) *ClientServices {
	if peer == nil {
		peer = NewDryRunPeer()
	}

	source := NewContactSyncSource(SessionContext{
		Config:      cfg.App,
		Items:       storages.Items,
		ItemStates:  storages.ItemStates,
		SessionLogs: storages.SessionLogs,
		Codec:       codec.NewVCard(),
		IDs:         utils.NewUUIDGenerator(),
		Logger:      logger,
	})
	driver := NewSessionDriver(source, peer, logger)
	job := NewSyncJob(driver, cfg.Workers.SyncSchedule)

	return &ClientServices{
		Source:       source,
		Driver:       driver,
		SyncJob:      job,
		AlertService: NewAlertService(cfg.Alert, cfg.App.StoreURI, job),
	}
}
