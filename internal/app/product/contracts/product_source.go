package contracts

import (
	"context"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
)

// ChangeBatch is the set of pending changes a commit hands to a source.
// Created products already carry the identifier assigned by the commit.
type ChangeBatch struct {
	Created []*domain.Product
	Updated []*domain.Product
	Deleted []*domain.Product
	Events  []domain.DomainEvent
}

// IsEmpty returns true if the batch holds no product changes.
func (b *ChangeBatch) IsEmpty() bool {
	return len(b.Created) == 0 && len(b.Updated) == 0 && len(b.Deleted) == 0
}

// Count returns the number of product changes in the batch.
func (b *ChangeBatch) Count() int {
	return len(b.Created) + len(b.Updated) + len(b.Deleted)
}

// ProductSource is the authoritative record source behind the working set.
type ProductSource interface {
	// Fetch returns the full current product collection
	Fetch(ctx context.Context) ([]*domain.Product, error)

	// Apply writes the whole batch or nothing.
	// Returns domain.ErrSourceConflict if an updated or deleted product no longer exists
	Apply(ctx context.Context, batch *ChangeBatch) error
}
