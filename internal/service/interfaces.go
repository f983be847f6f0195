package service

import (
	"context"

	"github.com/MKhiriev/go-pim-sync/models"
)

// ChangeDetector diffs the live record store against the item state table
// and records the outcome in that table.
type ChangeDetector interface {
	// ComputeChanges enumerates every live item once. New items get an Add
	// row and items with a changed version a Replace row. Rows of vanished
	// items are marked Delete in [models.DetectChangesOnly] mode and removed
	// in [models.DetectFull] mode.
	// Returns an error wrapping [ErrSyncAborted] when ctx is cancelled.
	ComputeChanges(ctx context.Context, mode models.DetectMode) (models.ChangeSet, error)
}

// RecordEnumerator is a finite, non-restartable stream of outgoing records.
type RecordEnumerator interface {
	// Size returns the number of records the current mode covers.
	Size() int

	// SetChangedOnly switches between pending changes and all items and
	// re-derives Size. Records already fetched are kept.
	SetChangedOnly(ctx context.Context, changedOnly bool) error

	// Next returns the next record. ok is false once the stream is
	// exhausted, and stays false on later calls.
	Next(ctx context.Context) (record models.Record, ok bool, err error)
}

// SyncSource is the record-store side of a sync session. The session layer
// calls OnSyncStart, any number of record and result calls, then OnSyncEnd.
type SyncSource interface {
	// Name returns the source name the session log is kept under.
	Name() string

	// OnSyncStart prepares a session in the requested mode and returns the
	// mode actually used. A missing anchor or an empty item state table
	// turns any non-refresh mode into a slow sync.
	OnSyncStart(ctx context.Context, requested models.SyncMode) (models.SyncMode, error)

	GetAllRecords(ctx context.Context) (RecordEnumerator, error)
	GetChangedRecords(ctx context.Context) (RecordEnumerator, error)

	AddRecordBegin(ctx context.Context, parentID, parentGlobalID, globalID, contentType string) error
	AddRecordData(ctx context.Context, data []byte) error
	// AddRecordEnd applies the buffered record when commit is true and
	// returns its local identifier.
	AddRecordEnd(ctx context.Context, commit bool) (string, error)

	ReplaceRecordBegin(ctx context.Context, localID, contentType string, fieldLevel bool) error
	ReplaceRecordData(ctx context.Context, data []byte) error
	ReplaceRecordEnd(ctx context.Context, commit bool) (string, error)

	// DeleteRecord removes the item; an unknown id is treated as already
	// deleted.
	DeleteRecord(ctx context.Context, localID string) error

	// CopyRecord and MoveRecord always fail with [ErrUnsupportedOperation].
	CopyRecord(ctx context.Context, localID, newParentID string) (string, error)
	MoveRecord(ctx context.Context, localID, newParentID string) error

	OnAddResult(ctx context.Context, localID string, status models.Status) error
	OnReplaceResult(ctx context.Context, localID string, status models.Status) error
	OnDeleteResult(ctx context.Context, localID string, status models.Status) error

	// OnSyncEnd persists counters and commits the anchor according to the
	// session outcome.
	OnSyncEnd(ctx context.Context, success bool, status models.Status) error

	Progress() models.Progress
	Handshake() models.Handshake
	Counters() models.SyncCounters
}

// Peer moves records between a [SyncSource] and the sync server.
type Peer interface {
	// Exchange runs the record exchange of one session and returns the
	// final session status.
	Exchange(ctx context.Context, source SyncSource, mode models.SyncMode) (models.Status, error)
}

// SessionRunner runs complete sync sessions.
type SessionRunner interface {
	Run(ctx context.Context, mode models.SyncMode) (models.SyncCounters, error)
}

// AlertService handles server-alert notifications.
type AlertService interface {
	// HandleAlert parses and authenticates raw and, when it names the local
	// store, schedules a session. accepted is false for alerts that fail
	// authentication or target other stores; those are ignored silently.
	// A structurally invalid alert yields an error.
	HandleAlert(ctx context.Context, raw []byte) (accepted bool, err error)
}

// SyncJob runs sessions on a schedule and on demand.
type SyncJob interface {
	// Start launches the scheduler and the session loop. They run until ctx
	// is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Trigger queues a session in mode. It returns false if a session is
	// already queued.
	Trigger(mode models.SyncMode) bool

	// Stop halts the scheduler and waits for a running session to finish.
	Stop()
}
