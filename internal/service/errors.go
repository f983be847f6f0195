package service

import "errors"

var (
	// ErrSyncAborted is returned when the session context is cancelled. It
	// wraps the context error.
	ErrSyncAborted = errors.New("sync aborted")

	// ErrDeviceFull is returned when an inbound add would exceed the
	// configured address book capacity.
	ErrDeviceFull = errors.New("device full")

	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidIdentifier    = errors.New("invalid local identifier")

	// ErrNoRecordInProgress is returned for streamed record calls without a
	// matching begin.
	ErrNoRecordInProgress = errors.New("no record in progress")

	ErrSessionInProgress = errors.New("sync session already in progress")
	ErrSessionNotStarted = errors.New("sync session not started")

	// ErrSessionFailed is returned by the session driver when the peer ended
	// the session with a non-success status.
	ErrSessionFailed = errors.New("sync session failed")
)
