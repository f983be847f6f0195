package models

import "time"

// DetectMode selects how change detection treats items that disappeared from
// the record store.
type DetectMode int

const (
	// DetectChangesOnly marks vanished items as pending deletions.
	DetectChangesOnly DetectMode = iota
	// DetectFull removes rows of vanished items outright.
	DetectFull
)

// ChangeSet summarizes one change detection pass. The changes themselves stay
// in the item state table; only the counts are kept in memory.
type ChangeSet struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Deleted  int `json:"deleted"`
	Live     int `json:"live"`

	// StateValid is false when the item state table held no item rows before
	// the pass, which forces a full sync upstream.
	StateValid bool `json:"state_valid"`

	Duration time.Duration `json:"duration"`
}

// Pending returns the number of changes that will be offered to the server.
func (c ChangeSet) Pending() int {
	return c.Added + c.Modified + c.Deleted
}
