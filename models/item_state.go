package models

// ChangeType is the pending sync status of a tracked item relative to the
// last successful sync.
type ChangeType int8

const (
	// ChangeNone means the item is in sync with the server.
	ChangeNone ChangeType = iota
	// ChangeAdd means the item was created locally and not yet acknowledged.
	ChangeAdd
	// ChangeReplace means the item was modified locally and not yet acknowledged.
	ChangeReplace
	// ChangeDelete means the item was removed locally and the deletion is
	// not yet acknowledged. A Delete row has no live counterpart.
	ChangeDelete
)

// String returns a human-readable representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeAdd:
		return "add"
	case ChangeReplace:
		return "replace"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// IsPending reports whether the change still awaits acknowledgement.
func (c ChangeType) IsPending() bool {
	return c != ChangeNone
}

// ItemState is the persisted bookkeeping row that links a store item to its
// last known sync status.
type ItemState struct {
	// RowID is the storage slot of the row. Slots are reused after a row is
	// removed, so RowID alone is not a stable external identifier.
	RowID int64 `json:"row_id"`

	// Generation counts how many times the slot has been reused. Together
	// with RowID it names the row for the lifetime of the table instance.
	Generation int64 `json:"generation"`

	// ItemID is the record store identifier. At most one row exists per ItemID.
	ItemID string `json:"item_id"`

	ChangeType ChangeType `json:"change_type"`

	// Version is the item version recorded when the row was last refreshed.
	Version string `json:"version"`
}
