package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/handler"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/server"
	"github.com/MKhiriev/go-pim-sync/internal/service"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/internal/workers"
	"github.com/MKhiriev/go-pim-sync/models"
)

type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp opens the local database and wires every component. The alert
// listener is only started when cfg.Server.HTTPAddress is set.
func NewApp(cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	services := service.NewClientServices(cfg, storages, nil, logger)
	running := []workers.Worker{workers.NewSyncJobWorker(services.SyncJob)}

	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, buildInfo, cfg.Server, logger)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("create handlers: %w", err)
		}
		srv, err := server.NewServer(handlers, cfg.Server, logger)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("create server: %w", err)
		}
		running = append(running, workers.NewListenerWorker(srv))
	} else {
		logger.Info().Msg("alert listener disabled, relying on the sync schedule")
	}

	return &App{
		storages: storages,
		services: services,
		workers:  workers.NewWorkers(running...),
		logger:   logger,
	}, nil
}

// Run blocks until SIGTERM, SIGINT or SIGQUIT, or until a worker fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(a.logger.WithContext(ctx))
}

func (a *App) run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Err(err).Msg("failed to close storage")
		}
	}()

	if err := a.workers.Run(ctx); err != nil {
		return fmt.Errorf("client stopped: %w", err)
	}

	a.logger.Info().Msg("client shut down gracefully")
	return nil
}
