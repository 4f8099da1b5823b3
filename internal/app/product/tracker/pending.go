package tracker

import "github.com/light-bringer/procat-batchedit/internal/app/product/domain"

// PendingChangeSet is a snapshot of the three pending buckets.
// Products are copies; mutating them does not affect the tracker.
type PendingChangeSet struct {
	Created []*domain.Product
	Updated []*domain.Product
	Deleted []*domain.Product
}

// IsEmpty returns true if no bucket holds a change.
func (s PendingChangeSet) IsEmpty() bool {
	return s.Count() == 0
}

// Count returns the total number of pending changes.
func (s PendingChangeSet) Count() int {
	return len(s.Created) + len(s.Updated) + len(s.Deleted)
}

// CommitResult summarises a successful commit.
type CommitResult struct {
	// CreatedIDs holds the identifiers assigned to new products, in creation order
	CreatedIDs []string
	Updated    int
	Deleted    int
}
