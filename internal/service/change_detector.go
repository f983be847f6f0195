// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

type changeDetector struct {
	items  store.ItemStore
	states store.ItemStateRepository
	now    func() time.Time
}

// NewChangeDetector returns a [ChangeDetector] that compares items against
// the item state table and writes the resulting changes to states.
func NewChangeDetector(items store.ItemStore, states store.ItemStateRepository) ChangeDetector {
	return &changeDetector{items: items, states: states, now: time.Now}
}

// ComputeChanges implements [ChangeDetector]. A row write that fails is
// logged and skipped; the item is then picked up again by the next pass.
func (d *changeDetector) ComputeChanges(ctx context.Context, mode models.DetectMode) (models.ChangeSet, error) {
	log := logger.FromContext(ctx)
	started := d.now()

	rows, err := d.states.LoadAll(ctx)
	if err != nil {
		log.Err(err).Str("func", "changeDetector.ComputeChanges").Msg("failed to load item state table")
		return models.ChangeSet{}, fmt.Errorf("load item states: %w", err)
	}

	changes := models.ChangeSet{StateValid: len(rows) > 0}
	unmatched := make(map[string]models.ItemState, len(rows))
	for _, row := range rows {
		unmatched[row.ItemID] = row
	}

	for v, err := range d.items.Versions(ctx) {
		if ctx.Err() != nil {
			return changes, fmt.Errorf("%w: %w", ErrSyncAborted, ctx.Err())
		}

		if errors.Is(err, store.ErrItemUnreadable) {
			// The item exists but cannot be read; leave its row alone.
			log.Warn().Err(err).Str("func", "changeDetector.ComputeChanges").Str("item_id", v.ID).Msg("skipping unreadable item")
			delete(unmatched, v.ID)
			changes.Live++
			continue
		}
		if err != nil {
			log.Err(err).Str("func", "changeDetector.ComputeChanges").Msg("failed to enumerate items")
			return changes, fmt.Errorf("enumerate items: %w", err)
		}

		changes.Live++
		row, known := unmatched[v.ID]
		delete(unmatched, v.ID)

		if !known {
			if _, err = d.states.Insert(ctx, v.ID, models.ChangeAdd, v.Version); err != nil {
				log.Err(err).Str("func", "changeDetector.ComputeChanges").Str("item_id", v.ID).Msg("failed to track new item")
				continue
			}
			changes.Added++
			continue
		}

		d.compare(ctx, row, v, &changes)
	}

	// A cancellation after the last item still aborts the pass.
	if ctx.Err() != nil {
		return changes, fmt.Errorf("%w: %w", ErrSyncAborted, ctx.Err())
	}

	vanished := make([]models.ItemState, 0, len(unmatched))
	for _, row := range unmatched {
		vanished = append(vanished, row)
	}
	slices.SortFunc(vanished, func(a, b models.ItemState) int {
		return int(a.RowID - b.RowID)
	})

	for _, row := range vanished {
		if ctx.Err() != nil {
			return changes, fmt.Errorf("%w: %w", ErrSyncAborted, ctx.Err())
		}
		d.vanish(ctx, row, mode, &changes)
	}

	changes.Duration = d.now().Sub(started)

	log.Debug().
		Str("func", "changeDetector.ComputeChanges").
		Int("added", changes.Added).
		Int("modified", changes.Modified).
		Int("deleted", changes.Deleted).
		Int("live", changes.Live).
		Bool("state_valid", changes.StateValid).
		Dur("duration", changes.Duration).
		Msg("change detection finished")

	return changes, nil
}

// compare classifies an item that already has a row.
func (d *changeDetector) compare(ctx context.Context, row models.ItemState, v models.ItemVersion, changes *models.ChangeSet) {
	log := logger.FromContext(ctx)

	if row.Version == v.Version {
		switch row.ChangeType {
		case models.ChangeAdd:
			changes.Added++
		case models.ChangeReplace:
			changes.Modified++
		case models.ChangeDelete:
			// The item came back before its deletion was acknowledged.
			row.ChangeType = models.ChangeReplace
			if err := d.states.Update(ctx, row); err != nil {
				log.Err(err).Str("func", "changeDetector.compare").Int64("row_id", row.RowID).Msg("failed to revive item state")
				return
			}
			changes.Modified++
		}
		return
	}

	row.Version = v.Version
	if row.ChangeType != models.ChangeAdd {
		row.ChangeType = models.ChangeReplace
	}
	if err := d.states.Update(ctx, row); err != nil {
		log.Err(err).Str("func", "changeDetector.compare").Int64("row_id", row.RowID).Msg("failed to record modification")
		return
	}

	if row.ChangeType == models.ChangeAdd {
		changes.Added++
	} else {
		changes.Modified++
	}
}

// vanish handles a row whose item no longer exists.
func (d *changeDetector) vanish(ctx context.Context, row models.ItemState, mode models.DetectMode, changes *models.ChangeSet) {
	log := logger.FromContext(ctx)

	if mode == models.DetectFull {
		if err := d.states.Remove(ctx, row.RowID); err != nil {
			log.Err(err).Str("func", "changeDetector.vanish").Int64("row_id", row.RowID).Msg("failed to remove item state")
		}
		return
	}

	if row.ChangeType != models.ChangeDelete {
		row.ChangeType = models.ChangeDelete
		if err := d.states.Update(ctx, row); err != nil {
			log.Err(err).Str("func", "changeDetector.vanish").Int64("row_id", row.RowID).Msg("failed to record deletion")
			return
		}
	}
	changes.Deleted++
}
