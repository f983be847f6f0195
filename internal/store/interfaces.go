package store

import (
	"context"
	"iter"

	"github.com/MKhiriev/go-pim-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ItemStore is the platform record store holding the synchronizable items.
type ItemStore interface {
	// Versions enumerates every live item exactly once. A per-item error
	// wrapping [ErrItemUnreadable] may be skipped by the caller; any other
	// error ends the enumeration.
	Versions(ctx context.Context) iter.Seq2[models.ItemVersion, error]
	Fetch(ctx context.Context, id string) (models.Item, error)
	// FetchBatch returns the items found for ids. Unknown ids are omitted.
	FetchBatch(ctx context.Context, ids []string) ([]models.Item, error)
	Create(ctx context.Context, contact models.Contact) (models.Item, error)
	Update(ctx context.Context, item models.Item) (models.Item, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// ItemStateRepository persists the item state table. Rows live in reusable
// slots: removing a row frees its RowID and the lowest free RowID is handed
// out on the next insert.
type ItemStateRepository interface {
	// Suffix returns the identifier suffix of the current table instance or
	// [ErrStateNotFound] when the table was never built.
	Suffix(ctx context.Context) (string, error)
	// Rebuild drops every row and starts a new table instance with suffix.
	Rebuild(ctx context.Context, suffix string) error

	LoadAll(ctx context.Context) ([]models.ItemState, error)
	// Page returns up to limit rows with RowID greater than afterRowID in
	// RowID order. With changedOnly, only pending rows are returned;
	// otherwise pending deletions are left out.
	Page(ctx context.Context, afterRowID int64, limit int, changedOnly bool) ([]models.ItemState, error)
	Count(ctx context.Context, changedOnly bool) (int, error)

	GetByRowID(ctx context.Context, rowID int64) (models.ItemState, error)
	GetByItemID(ctx context.Context, itemID string) (models.ItemState, error)
	Insert(ctx context.Context, itemID string, changeType models.ChangeType, version string) (models.ItemState, error)
	Update(ctx context.Context, state models.ItemState) error
	Remove(ctx context.Context, rowID int64) error
}

// SessionLogRepository persists anchors and counters per sync source.
type SessionLogRepository interface {
	// Get returns the log of source. A source that never synced yields an
	// empty log, not an error.
	Get(ctx context.Context, source string) (models.SessionLog, error)
	Save(ctx context.Context, log models.SessionLog) error
}

// IDGenerator produces new item identifiers.
type IDGenerator interface {
	Generate() string
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
