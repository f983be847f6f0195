package models

import (
	"errors"
	"fmt"
)

// ErrUnknownSyncMode is returned by [ParseSyncMode] for unrecognized names.
var ErrUnknownSyncMode = errors.New("unknown sync mode")

// SyncMode is the kind of session negotiated with the server.
type SyncMode int

const (
	SyncTwoWay SyncMode = iota
	SyncSlow
	SyncOneWayFromClient
	SyncOneWayFromServer
	SyncRefreshFromClient
	SyncRefreshFromServer
)

// String returns a human-readable representation of the mode.
func (m SyncMode) String() string {
	switch m {
	case SyncTwoWay:
		return "two-way"
	case SyncSlow:
		return "slow"
	case SyncOneWayFromClient:
		return "one-way-from-client"
	case SyncOneWayFromServer:
		return "one-way-from-server"
	case SyncRefreshFromClient:
		return "refresh-from-client"
	case SyncRefreshFromServer:
		return "refresh-from-server"
	default:
		return "unknown"
	}
}

// IsRefresh reports whether the mode replaces one side entirely.
func (m SyncMode) IsRefresh() bool {
	return m == SyncRefreshFromClient || m == SyncRefreshFromServer
}

// IsFull reports whether the mode re-evaluates the whole collection instead
// of relying on anchors.
func (m SyncMode) IsFull() bool {
	return m == SyncSlow || m.IsRefresh()
}

// SendsToServer reports whether local changes flow to the server.
func (m SyncMode) SendsToServer() bool {
	return m != SyncOneWayFromServer && m != SyncRefreshFromServer
}

// ParseSyncMode is the inverse of [SyncMode.String].
func ParseSyncMode(name string) (SyncMode, error) {
	for m := SyncTwoWay; m <= SyncRefreshFromServer; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return SyncTwoWay, fmt.Errorf("%w: %q", ErrUnknownSyncMode, name)
}
