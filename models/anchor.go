package models

import "time"

// SyncAnchors holds the session-position markers of a sync source.
//
// Last is the anchor confirmed by the previous successful session; an empty
// Last forces a full sync. Next is the anchor proposed for the current
// session and becomes Last only when the session succeeds.
type SyncAnchors struct {
	Last string `json:"last"`
	Next string `json:"next"`
}

// SessionLog is the persisted per-source record of past sessions.
type SessionLog struct {
	Source     string       `json:"source"`
	Anchors    SyncAnchors  `json:"anchors"`
	Totals     SyncCounters `json:"totals"`
	LastStatus int          `json:"last_status"`
	LastSyncAt *time.Time   `json:"last_sync_at,omitempty"`
}
