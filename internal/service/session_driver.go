package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

// SessionDriver runs sync sessions of one source against one peer, one
// session at a time.
type SessionDriver struct {
	source SyncSource
	peer   Peer
	logger *logger.Logger

	mu sync.Mutex
}

func NewSessionDriver(source SyncSource, peer Peer, logger *logger.Logger) *SessionDriver {
	return &SessionDriver{source: source, peer: peer, logger: logger}
}

// Run starts a session in mode, hands the source to the peer and closes the
// session with the peer's outcome. A call made while another session runs
// fails with [ErrSessionInProgress].
func (d *SessionDriver) Run(ctx context.Context, mode models.SyncMode) (models.SyncCounters, error) {
	if !d.mu.TryLock() {
		return models.SyncCounters{}, ErrSessionInProgress
	}
	defer d.mu.Unlock()

	log := d.logger.ForSession(d.source.Name(), mode.String())
	ctx = log.WithContext(ctx)

	actual, err := d.source.OnSyncStart(ctx, mode)
	if err != nil {
		log.Err(err).Str("func", "SessionDriver.Run").Msg("failed to start session")
		endErr := d.source.OnSyncEnd(context.WithoutCancel(ctx), false, models.Status{Code: models.StatusCommandFailed})
		return d.source.Counters(), errors.Join(err, endErr)
	}

	status, err := d.peer.Exchange(ctx, d.source, actual)
	if err != nil {
		log.Err(err).Str("func", "SessionDriver.Run").Msg("record exchange failed")
		status = models.Status{Code: models.StatusCommandFailed, Data: err.Error()}
	} else if !status.IsSuccess() {
		err = fmt.Errorf("%w: status %d %s", ErrSessionFailed, status.Code, status.Data)
	}

	// The session log must be written even when ctx was cancelled.
	endErr := d.source.OnSyncEnd(context.WithoutCancel(ctx), err == nil, status)

	return d.source.Counters(), errors.Join(err, endErr)
}
