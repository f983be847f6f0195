package service

import (
	"context"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

// DryRunPeer is the [Peer] used when no transport is configured. It reads
// the outgoing stream and acknowledges nothing, so every change stays
// pending and the previous anchor is kept.
type DryRunPeer struct{}

func NewDryRunPeer() *DryRunPeer {
	return &DryRunPeer{}
}

func (p *DryRunPeer) Exchange(ctx context.Context, source SyncSource, mode models.SyncMode) (models.Status, error) {
	log := logger.FromContext(ctx)

	if !mode.SendsToServer() {
		return models.Status{Code: models.StatusNotSupported, Data: "mode receives from server"}, nil
	}

	get := source.GetChangedRecords
	if mode.IsFull() {
		get = source.GetAllRecords
	}
	records, err := get(ctx)
	if err != nil {
		return models.Status{}, err
	}

	var drained int
	for {
		record, ok, err := records.Next(ctx)
		if err != nil {
			return models.Status{}, err
		}
		if !ok {
			break
		}

		drained++
		log.Debug().
			Str("local_id", record.LocalID).
			Str("change", record.ChangeType.String()).
			Int("bytes", len(record.Data)).
			Msg("dry run record")
	}

	log.Info().Int("records", drained).Int("size", records.Size()).Msg("dry run finished")
	return models.Status{Code: models.StatusCommandFailed, Data: "no transport configured"}, nil
}
