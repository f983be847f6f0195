package models

// Sync type values carried in the high nibble of a server alert entry.
const (
	AlertSyncTwoWay            = 6
	AlertSyncOneWayFromClient  = 7
	AlertSyncRefreshFromClient = 8
	AlertSyncOneWayFromServer  = 9
	AlertSyncRefreshFromServer = 10
)

// AlertSync is one store entry requested by a server alert.
type AlertSync struct {
	// SyncType is the raw sync type nibble (see AlertSync* constants).
	SyncType int `json:"sync_type"`

	// ContentType is the 24-bit content type id. It is parsed but not used.
	ContentType uint32 `json:"content_type"`

	StoreURI string `json:"store_uri"`
}

// Mode maps the requested sync type onto a [SyncMode]. ok is false for
// values outside the server-alerted range.
func (s AlertSync) Mode() (mode SyncMode, ok bool) {
	switch s.SyncType {
	case AlertSyncTwoWay:
		return SyncTwoWay, true
	case AlertSyncOneWayFromClient:
		return SyncOneWayFromClient, true
	case AlertSyncRefreshFromClient:
		return SyncRefreshFromClient, true
	case AlertSyncOneWayFromServer:
		return SyncOneWayFromServer, true
	case AlertSyncRefreshFromServer:
		return SyncRefreshFromServer, true
	default:
		return SyncTwoWay, false
	}
}

// AlertMessage is a parsed server-alert notification. Values are immutable
// once returned by the parser.
type AlertMessage struct {
	Digest [16]byte `json:"digest"`

	Version   int  `json:"version"`
	UIMode    int  `json:"ui_mode"`
	Initiator bool `json:"initiator"`

	SessionID uint16 `json:"session_id"`
	ServerID  string `json:"server_id"`

	Syncs []AlertSync `json:"syncs"`

	// VendorData holds the bytes following the last entry, nil if none.
	VendorData []byte `json:"vendor_data,omitempty"`

	// Raw is the complete message the alert was parsed from. The digest is
	// verified against it.
	Raw []byte `json:"-"`
}
