package http

import (
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/models"
)

type Handler struct {
	alerts    service.AlertService
	job       service.SyncJob
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		alerts:    services.AlertService,
		job:       services.SyncJob,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
