// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

// itemStateRepository is the SQLite-backed implementation of
// [ItemStateRepository]. item_states rows are slots: a removed row keeps its
// row_id with item_id set to NULL and the lowest such slot is reused by the
// next insert under the next generation.
type itemStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemStateRepository constructs an [ItemStateRepository] backed by db.
func NewItemStateRepository(db *DB, logger *logger.Logger) ItemStateRepository {
	return &itemStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *itemStateRepository) Suffix(ctx context.Context) (string, error) {
	var suffix string
	err := r.DB.QueryRowContext(ctx, getItemStateSuffix).Scan(&suffix)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrStateNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "itemStateRepository.Suffix").Msg("failed to read table suffix")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return suffix, nil
}

// Rebuild empties the table and records the suffix of the new instance in
// one transaction.
func (r *itemStateRepository) Rebuild(ctx context.Context, suffix string) error {
	log := logger.FromContext(ctx)

	err := r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}
		defer tx.Rollback()

		if _, err = tx.ExecContext(ctx, deleteAllItemStates); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err = tx.ExecContext(ctx, upsertItemStateSuffix, suffix); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemStateRepository.Rebuild").
			Str("suffix", suffix).
			Msg("failed to rebuild item state table")
		return err
	}

	return nil
}

func (r *itemStateRepository) LoadAll(ctx context.Context) ([]models.ItemState, error) {
	return r.query(ctx, "itemStateRepository.LoadAll", getAllItemStates)
}

func (r *itemStateRepository) Page(ctx context.Context, afterRowID int64, limit int, changedOnly bool) ([]models.ItemState, error) {
	query, args, err := buildItemStatePageQuery(afterRowID, limit, changedOnly)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "itemStateRepository.Page").Msg("failed to create query")
		return nil, err
	}

	return r.query(ctx, "itemStateRepository.Page", query, args...)
}

func (r *itemStateRepository) Count(ctx context.Context, changedOnly bool) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildItemStateCountQuery(changedOnly)
	if err != nil {
		log.Err(err).Str("func", "itemStateRepository.Count").Msg("failed to create query")
		return 0, err
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "itemStateRepository.Count").
			Bool("changed_only", changedOnly).
			Msg("failed to count item states")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *itemStateRepository) GetByRowID(ctx context.Context, rowID int64) (models.ItemState, error) {
	state, err := scanItemState(r.DB.QueryRowContext(ctx, getItemStateByRowID, rowID))
	if err != nil && !errors.Is(err, ErrStateNotFound) {
		logger.FromContext(ctx).Err(err).
			Str("func", "itemStateRepository.GetByRowID").
			Int64("row_id", rowID).
			Msg("failed to read item state")
	}

	return state, err
}

func (r *itemStateRepository) GetByItemID(ctx context.Context, itemID string) (models.ItemState, error) {
	state, err := scanItemState(r.DB.QueryRowContext(ctx, getItemStateByItemID, itemID))
	if err != nil && !errors.Is(err, ErrStateNotFound) {
		logger.FromContext(ctx).Err(err).
			Str("func", "itemStateRepository.GetByItemID").
			Str("item_id", itemID).
			Msg("failed to read item state")
	}

	return state, err
}

// Insert places a new row into the lowest free slot, bumping its generation,
// or appends one at generation 0 when no slot is free.
func (r *itemStateRepository) Insert(ctx context.Context, itemID string, changeType models.ChangeType, version string) (models.ItemState, error) {
	log := logger.FromContext(ctx)

	state := models.ItemState{ItemID: itemID, ChangeType: changeType, Version: version}
	err := r.withRetry(ctx, func(ctx context.Context) error {
		var err error
		state.RowID, state.Generation, err = r.insertTx(ctx, state)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemStateRepository.Insert").
			Str("item_id", itemID).
			Msg("failed to insert item state")
		return models.ItemState{}, err
	}

	return state, nil
}

func (r *itemStateRepository) insertTx(ctx context.Context, state models.ItemState) (rowID, generation int64, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, selectFreeItemStateSlot).Scan(&rowID, &generation)
	switch {
	case err == nil:
		generation++
		if _, err = tx.ExecContext(ctx, reuseItemStateSlot, generation, state.ItemID, state.ChangeType, state.Version, rowID); err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.ExecContext(ctx, insertItemState, state.ItemID, state.ChangeType, state.Version)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if rowID, err = result.LastInsertId(); err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		generation = 0
	default:
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return rowID, generation, nil
}

func (r *itemStateRepository) Update(ctx context.Context, state models.ItemState) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.withRetry(ctx, func(ctx context.Context) error {
		result, err := r.DB.ExecContext(ctx, updateItemState, state.ChangeType, state.Version, state.RowID)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemStateRepository.Update").
			Int64("row_id", state.RowID).
			Str("item_id", state.ItemID).
			Msg("failed to update item state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: row_id=%d", ErrStateNotFound, state.RowID)
	}

	return nil
}

func (r *itemStateRepository) Remove(ctx context.Context, rowID int64) error {
	err := r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.DB.ExecContext(ctx, freeItemStateSlot, rowID)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "itemStateRepository.Remove").
			Int64("row_id", rowID).
			Msg("failed to remove item state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *itemStateRepository) query(ctx context.Context, funcName, query string, args ...any) ([]models.ItemState, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query for item states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var states []models.ItemState
	for rows.Next() {
		state, err := scanItemState(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan item state row")
			return nil, err
		}
		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return states, nil
}

func scanItemState(row rowScanner) (models.ItemState, error) {
	var state models.ItemState
	err := row.Scan(&state.RowID, &state.Generation, &state.ItemID, &state.ChangeType, &state.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ItemState{}, ErrStateNotFound
	}
	if err != nil {
		return models.ItemState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return state, nil
}
