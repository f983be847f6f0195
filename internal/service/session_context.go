package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-pim-sync/internal/codec"
	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
)

// SessionContext carries everything a sync source needs. It is built once
// per source and outlives individual sessions.
type SessionContext struct {
	// Config holds the source name, batch size, capacity and conflict policy.
	Config config.App

	Items       store.ItemStore
	ItemStates  store.ItemStateRepository
	SessionLogs store.SessionLogRepository

	Codec codec.Codec

	// IDs seeds item state table suffixes.
	IDs store.IDGenerator

	Logger *logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (sc SessionContext) now() time.Time {
	if sc.Now != nil {
		return sc.Now()
	}
	return time.Now()
}

// log returns the logger attached to ctx, falling back to the configured
// one when ctx carries none.
func (sc SessionContext) log(ctx context.Context) *logger.Logger {
	if sc.Logger != nil && zerolog.Ctx(ctx).GetLevel() == zerolog.Disabled {
		return sc.Logger
	}
	return logger.FromContext(ctx)
}
