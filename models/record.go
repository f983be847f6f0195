package models

// Record is one outgoing protocol record produced by the change enumerator.
type Record struct {
	// LocalID is the protocol-visible identifier derived from the item state row.
	LocalID string `json:"local_id"`

	ChangeType  ChangeType `json:"change_type"`
	ContentType string     `json:"content_type,omitempty"`

	// Data holds the encoded item. It is empty for deletions.
	Data []byte `json:"data,omitempty"`
}
