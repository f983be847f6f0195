package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

// versionPageSize bounds how many (id, revision) pairs are held while the
// contact table is enumerated.
const versionPageSize = 256

// contactRepository is the SQLite-backed address book implementing
// [ItemStore]. The version token of a contact is its revision counter, which
// is bumped by every update.
type contactRepository struct {
	*DB
	ids    IDGenerator
	logger *logger.Logger
}

// NewContactRepository constructs an [ItemStore] over the contacts table.
func NewContactRepository(db *DB, ids IDGenerator, logger *logger.Logger) ItemStore {
	return &contactRepository{
		DB:     db,
		ids:    ids,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

type contactVersion struct {
	models.ItemVersion
	readable bool
}

// Versions walks the contacts table in id order, one page at a time, so
// that no cursor stays open while the caller writes to the database.
func (c *contactRepository) Versions(ctx context.Context) iter.Seq2[models.ItemVersion, error] {
	return func(yield func(models.ItemVersion, error) bool) {
		afterID := ""
		for {
			page, err := c.versionPage(ctx, afterID)
			if err != nil {
				yield(models.ItemVersion{}, err)
				return
			}

			for _, v := range page {
				if !v.readable {
					if !yield(v.ItemVersion, fmt.Errorf("%w: id=%s", ErrItemUnreadable, v.ID)) {
						return
					}
					continue
				}
				if !yield(v.ItemVersion, nil) {
					return
				}
			}

			if len(page) < versionPageSize {
				return
			}
			afterID = page[len(page)-1].ID
		}
	}
}

func (c *contactRepository) versionPage(ctx context.Context, afterID string) ([]contactVersion, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildContactVersionsQuery(afterID, versionPageSize)
	if err != nil {
		log.Err(err).Str("func", "contactRepository.versionPage").Msg("failed to create query")
		return nil, err
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.versionPage").
			Str("after_id", afterID).
			Msg("failed to execute query for contact versions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	page := make([]contactVersion, 0, versionPageSize)
	for rows.Next() {
		var (
			id       string
			revision sql.NullInt64
		)
		if err := rows.Scan(&id, &revision); err != nil {
			log.Err(err).Str("func", "contactRepository.versionPage").Msg("failed to scan contact version row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		page = append(page, contactVersion{
			ItemVersion: models.ItemVersion{ID: id, Version: strconv.FormatInt(revision.Int64, 10)},
			readable:    revision.Valid,
		})
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "contactRepository.versionPage").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return page, nil
}

func (c *contactRepository) Fetch(ctx context.Context, id string) (models.Item, error) {
	log := logger.FromContext(ctx)

	item, err := scanContact(c.DB.QueryRowContext(ctx, getContact, id))
	if err != nil {
		if !errors.Is(err, ErrItemNotFound) {
			log.Err(err).
				Str("func", "contactRepository.Fetch").
				Str("item_id", id).
				Msg("failed to read contact")
		}
		return models.Item{}, err
	}

	return item, nil
}

// FetchBatch loads the listed contacts with a single IN query. Unreadable
// contacts are logged and left out, like unknown ids.
func (c *contactRepository) FetchBatch(ctx context.Context, ids []string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := buildFetchContactsQuery(ids)
	if err != nil {
		log.Err(err).Str("func", "contactRepository.FetchBatch").Msg("failed to create query")
		return nil, err
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.FetchBatch").
			Int("ids count", len(ids)).
			Msg("failed to execute query for contact batch")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, len(ids))
	for rows.Next() {
		item, err := scanContact(rows)
		if errors.Is(err, ErrItemUnreadable) {
			log.Warn().Err(err).Str("func", "contactRepository.FetchBatch").Msg("skipping unreadable contact")
			continue
		}
		if err != nil {
			log.Err(err).Str("func", "contactRepository.FetchBatch").Msg("failed to scan contact row")
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "contactRepository.FetchBatch").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return items, nil
}

func (c *contactRepository) Create(ctx context.Context, contact models.Contact) (models.Item, error) {
	log := logger.FromContext(ctx)

	phones, emails, err := encodeContactLists(contact)
	if err != nil {
		return models.Item{}, err
	}

	id := c.ids.Generate()
	err = c.withRetry(ctx, func(ctx context.Context) error {
		_, err := c.DB.ExecContext(ctx, insertContact,
			id,
			contact.FamilyName,
			contact.GivenName,
			contact.DisplayName,
			contact.Organization,
			phones,
			emails,
			contact.Note,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.Create").
			Str("item_id", id).
			Msg("failed to insert contact")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return models.Item{ID: id, Version: "1", Contact: contact}, nil
}

// Update overwrites the contact and returns it with its new version.
func (c *contactRepository) Update(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	phones, emails, err := encodeContactLists(item.Contact)
	if err != nil {
		return models.Item{}, err
	}

	var revision int64
	err = c.withRetry(ctx, func(ctx context.Context) error {
		return c.DB.QueryRowContext(ctx, updateContact,
			item.Contact.FamilyName,
			item.Contact.GivenName,
			item.Contact.DisplayName,
			item.Contact.Organization,
			phones,
			emails,
			item.Contact.Note,
			item.ID,
		).Scan(&revision)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, fmt.Errorf("%w: id=%s", ErrItemNotFound, item.ID)
	}
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.Update").
			Str("item_id", item.ID).
			Msg("failed to update contact")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	item.Version = strconv.FormatInt(revision, 10)
	return item, nil
}

func (c *contactRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := c.withRetry(ctx, func(ctx context.Context) error {
		result, err := c.DB.ExecContext(ctx, deleteContact, id)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.Delete").
			Str("item_id", id).
			Msg("failed to delete contact")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: id=%s", ErrItemNotFound, id)
	}

	return nil
}

func (c *contactRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := c.DB.QueryRowContext(ctx, countContacts).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "contactRepository.Count").Msg("failed to count contacts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (c *contactRepository) DeleteAll(ctx context.Context) error {
	err := c.withRetry(ctx, func(ctx context.Context) error {
		_, err := c.DB.ExecContext(ctx, deleteAllContacts)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "contactRepository.DeleteAll").Msg("failed to delete contacts")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func scanContact(row rowScanner) (models.Item, error) {
	var (
		item     models.Item
		revision int64
		phones   string
		emails   string
	)

	err := row.Scan(
		&item.ID,
		&revision,
		&item.Contact.FamilyName,
		&item.Contact.GivenName,
		&item.Contact.DisplayName,
		&item.Contact.Organization,
		&phones,
		&emails,
		&item.Contact.Note,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if item.Contact.Phones, err = decodeContactList(phones); err != nil {
		return models.Item{}, fmt.Errorf("%w: id=%s phones: %w", ErrItemUnreadable, item.ID, err)
	}
	if item.Contact.Emails, err = decodeContactList(emails); err != nil {
		return models.Item{}, fmt.Errorf("%w: id=%s emails: %w", ErrItemUnreadable, item.ID, err)
	}

	item.Version = strconv.FormatInt(revision, 10)
	return item, nil
}

func encodeContactLists(contact models.Contact) (string, string, error) {
	phones, err := json.Marshal(nonNil(contact.Phones))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode phones: %w", err)
	}

	emails, err := json.Marshal(nonNil(contact.Emails))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode emails: %w", err)
	}

	return string(phones), string(emails), nil
}

// decodeContactList returns nil for an empty list.
func decodeContactList(raw string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
