// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pim-sync/models"
)

const (
	contactsTable   = "contacts"
	itemStatesTable = "item_states"
)

var (
	contactColumns = []string{
		"id",
		"revision",
		"family_name",
		"given_name",
		"display_name",
		"organization",
		"phones",
		"emails",
		"note",
	}

	itemStateColumns = []string{
		"row_id",
		"generation",
		"item_id",
		"change_type",
		"version",
	}
)

const (
	getContact = `
		SELECT
			id,
			revision,
			family_name,
			given_name,
			display_name,
			organization,
			phones,
			emails,
			note
		FROM contacts
		WHERE id = ?;`

	insertContact = `
		INSERT INTO contacts (
			id,
			revision,
			family_name,
			given_name,
			display_name,
			organization,
			phones,
			emails,
			note
		) VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?);`

	updateContact = `
		UPDATE contacts SET
			revision     = revision + 1,
			family_name  = ?,
			given_name   = ?,
			display_name = ?,
			organization = ?,
			phones       = ?,
			emails       = ?,
			note         = ?
		WHERE id = ?
		RETURNING revision;`

	deleteContact = `DELETE FROM contacts WHERE id = ?;`

	deleteAllContacts = `DELETE FROM contacts;`

	countContacts = `SELECT COUNT(*) FROM contacts;`
)

const (
	getItemStateSuffix = `SELECT suffix FROM item_state_meta WHERE id = 1;`

	upsertItemStateSuffix = `
		INSERT INTO item_state_meta (id, suffix) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET suffix = excluded.suffix;`

	deleteAllItemStates = `DELETE FROM item_states;`

	getAllItemStates = `
		SELECT row_id, generation, item_id, change_type, version
		FROM item_states
		WHERE item_id IS NOT NULL
		ORDER BY row_id;`

	getItemStateByRowID = `
		SELECT row_id, generation, item_id, change_type, version
		FROM item_states
		WHERE row_id = ? AND item_id IS NOT NULL;`

	getItemStateByItemID = `
		SELECT row_id, generation, item_id, change_type, version
		FROM item_states
		WHERE item_id = ?;`

	selectFreeItemStateSlot = `
		SELECT row_id, generation
		FROM item_states
		WHERE item_id IS NULL
		ORDER BY row_id
		LIMIT 1;`

	reuseItemStateSlot = `
		UPDATE item_states SET
			generation  = ?,
			item_id     = ?,
			change_type = ?,
			version     = ?
		WHERE row_id = ?;`

	insertItemState = `
		INSERT INTO item_states (item_id, change_type, version)
		VALUES (?, ?, ?);`

	updateItemState = `
		UPDATE item_states SET
			change_type = ?,
			version     = ?
		WHERE row_id = ? AND item_id IS NOT NULL;`

	// a removed row keeps its slot with item_id cleared
	freeItemStateSlot = `
		UPDATE item_states SET
			item_id     = NULL,
			change_type = 0,
			version     = ''
		WHERE row_id = ?;`
)

const (
	getSessionLog = `
		SELECT
			source,
			last_anchor,
			next_anchor,
			totals,
			last_status,
			last_sync_at
		FROM session_log
		WHERE source = ?;`

	upsertSessionLog = `
		INSERT INTO session_log (
			source,
			last_anchor,
			next_anchor,
			totals,
			last_status,
			last_sync_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (source) DO UPDATE SET
			last_anchor  = excluded.last_anchor,
			next_anchor  = excluded.next_anchor,
			totals       = excluded.totals,
			last_status  = excluded.last_status,
			last_sync_at = excluded.last_sync_at;`
)

// buildFetchContactsQuery selects the contacts whose ids are listed.
func buildFetchContactsQuery(ids []string) (string, []any, error) {
	query, args, err := sq.Select(contactColumns...).
		From(contactsTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildContactVersionsQuery selects one keyset page of (id, revision) pairs
// ordered by id.
func buildContactVersionsQuery(afterID string, limit int) (string, []any, error) {
	query, args, err := sq.Select("id", "revision").
		From(contactsTable).
		Where(sq.Gt{"id": afterID}).
		OrderBy("id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func itemStateFilter(changedOnly bool) sq.And {
	filter := sq.And{sq.NotEq{"item_id": nil}}
	if changedOnly {
		return append(filter, sq.NotEq{"change_type": int(models.ChangeNone)})
	}

	return append(filter, sq.NotEq{"change_type": int(models.ChangeDelete)})
}

// buildItemStatePageQuery selects one keyset page of item state rows.
func buildItemStatePageQuery(afterRowID int64, limit int, changedOnly bool) (string, []any, error) {
	query, args, err := sq.Select(itemStateColumns...).
		From(itemStatesTable).
		Where(sq.Gt{"row_id": afterRowID}).
		Where(itemStateFilter(changedOnly)).
		OrderBy("row_id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildItemStateCountQuery(changedOnly bool) (string, []any, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(itemStatesTable).
		Where(itemStateFilter(changedOnly)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
