package handler

import (
	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/handler/http"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/models"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the alert listener handler. It fails when no listener
// address is configured.
func NewHandlers(services *service.ClientServices, buildInfo models.AppBuildInfo, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, ErrNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, buildInfo, logger)}, nil
}
