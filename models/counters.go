package models

// SyncCounters collects per-session statistics. The same values feed
// reporting and the anchor-commit decision at session end.
type SyncCounters struct {
	SentAdds     int `json:"sent_adds"`
	SentReplaces int `json:"sent_replaces"`
	SentDeletes  int `json:"sent_deletes"`

	// Inbound counts every add, replace or delete the peer started to send,
	// whether or not it could be applied.
	Inbound          int `json:"inbound"`
	ReceivedAdds     int `json:"received_adds"`
	ReceivedReplaces int `json:"received_replaces"`
	ReceivedDeletes  int `json:"received_deletes"`
	ReceiveFailures  int `json:"receive_failures"`

	Acknowledged int `json:"acknowledged"`
	AckFailures  int `json:"ack_failures"`
	Conflicts    int `json:"conflicts"`
}

// Add accumulates other into c.
func (c *SyncCounters) Add(other SyncCounters) {
	c.SentAdds += other.SentAdds
	c.SentReplaces += other.SentReplaces
	c.SentDeletes += other.SentDeletes
	c.Inbound += other.Inbound
	c.ReceivedAdds += other.ReceivedAdds
	c.ReceivedReplaces += other.ReceivedReplaces
	c.ReceivedDeletes += other.ReceivedDeletes
	c.ReceiveFailures += other.ReceiveFailures
	c.Acknowledged += other.Acknowledged
	c.AckFailures += other.AckFailures
	c.Conflicts += other.Conflicts
}

// Sent returns the number of records handed to the peer.
func (c SyncCounters) Sent() int {
	return c.SentAdds + c.SentReplaces + c.SentDeletes
}

// Received returns the number of inbound changes applied locally.
func (c SyncCounters) Received() int {
	return c.ReceivedAdds + c.ReceivedReplaces + c.ReceivedDeletes
}

// Progress reports transfer progress by direction.
type Progress struct {
	SendTotal int `json:"send_total"`
	Sent      int `json:"sent"`
	Received  int `json:"received"`
}

// Handshake is the session metadata exposed to the session layer.
type Handshake struct {
	// ClientTime is the client timestamp at session start, UTC, formatted as
	// yyyyMMdd'T'HHmmss'Z'.
	ClientTime     string `json:"client_time"`
	ConflictPolicy int    `json:"conflict_policy"`

	// DetectionDuration is the time spent in change detection in
	// milliseconds, reported separately from the main timing window.
	DetectionDuration int64 `json:"detection_duration"`
}
