// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/internal/codec"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

// changeEnumerator walks the item state table in row id order and keeps at
// most one page of encoded records in memory. Each page costs one
// FetchBatch call.
type changeEnumerator struct {
	items     store.ItemStore
	states    store.ItemStateRepository
	codec     codec.Codec
	mapper    *IdentifierMapper
	cacheSize int

	changedOnly bool
	size        int

	afterRowID int64
	lastPage   bool
	exhausted  bool
	cache      []models.Record

	// onYield observes every record handed out.
	onYield func(models.Record)
}

func newChangeEnumerator(ctx context.Context, sc SessionContext, mapper *IdentifierMapper, changedOnly bool, onYield func(models.Record)) (*changeEnumerator, error) {
	cacheSize := sc.Config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}

	e := &changeEnumerator{
		items:       sc.Items,
		states:      sc.ItemStates,
		codec:       sc.Codec,
		mapper:      mapper,
		cacheSize:   cacheSize,
		changedOnly: changedOnly,
		onYield:     onYield,
	}

	if err := e.resize(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *changeEnumerator) Size() int {
	return e.size
}

func (e *changeEnumerator) SetChangedOnly(ctx context.Context, changedOnly bool) error {
	if e.changedOnly == changedOnly {
		return nil
	}

	e.changedOnly = changedOnly
	return e.resize(ctx)
}

func (e *changeEnumerator) resize(ctx context.Context) error {
	size, err := e.states.Count(ctx, e.changedOnly)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	e.size = size
	return nil
}

func (e *changeEnumerator) Next(ctx context.Context) (models.Record, bool, error) {
	for {
		if e.exhausted {
			return models.Record{}, false, nil
		}

		if len(e.cache) > 0 {
			record := e.cache[0]
			e.cache[0] = models.Record{}
			e.cache = e.cache[1:]
			if e.onYield != nil {
				e.onYield(record)
			}
			return record, true, nil
		}

		if e.lastPage {
			e.exhausted = true
			e.cache = nil
			continue
		}

		if ctx.Err() != nil {
			return models.Record{}, false, fmt.Errorf("%w: %w", ErrSyncAborted, ctx.Err())
		}

		if err := e.fill(ctx); err != nil {
			return models.Record{}, false, err
		}
	}
}

// fill loads the next page of rows and encodes their items.
func (e *changeEnumerator) fill(ctx context.Context) error {
	log := logger.FromContext(ctx)

	rows, err := e.states.Page(ctx, e.afterRowID, e.cacheSize, e.changedOnly)
	if err != nil {
		log.Err(err).Str("func", "changeEnumerator.fill").Int64("after_row_id", e.afterRowID).Msg("failed to read item state page")
		return fmt.Errorf("read item state page: %w", err)
	}
	if len(rows) < e.cacheSize {
		e.lastPage = true
	}
	if len(rows) == 0 {
		return nil
	}
	e.afterRowID = rows[len(rows)-1].RowID

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ChangeType != models.ChangeDelete {
			ids = append(ids, row.ItemID)
		}
	}

	found := make(map[string]models.Item, len(ids))
	if len(ids) > 0 {
		items, err := e.items.FetchBatch(ctx, ids)
		if err != nil {
			log.Err(err).Str("func", "changeEnumerator.fill").Int("ids", len(ids)).Msg("failed to fetch items")
			return fmt.Errorf("fetch items: %w", err)
		}
		for _, item := range items {
			found[item.ID] = item
		}
	}

	e.cache = make([]models.Record, 0, len(rows))
	for _, row := range rows {
		record := models.Record{
			LocalID:    e.mapper.LocalID(row),
			ChangeType: row.ChangeType,
		}

		if row.ChangeType != models.ChangeDelete {
			item, ok := found[row.ItemID]
			if !ok {
				log.Warn().Str("func", "changeEnumerator.fill").Str("item_id", row.ItemID).Msg("item vanished since change detection, skipping")
				continue
			}
			data, err := e.codec.Encode(item.Contact)
			if err != nil {
				log.Warn().Err(err).Str("func", "changeEnumerator.fill").Str("item_id", row.ItemID).Msg("failed to encode item, skipping")
				continue
			}
			record.ContentType = e.codec.ContentType()
			record.Data = data
		}

		e.cache = append(e.cache, record)
	}

	return nil
}
