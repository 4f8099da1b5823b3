// Package tracker keeps the working copy of the product collection together
// with the pending created, updated and deleted buckets.
//
// A Tracker is not safe for concurrent use. Callers that share one across
// goroutines serialise access themselves (see the session package).
package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/pkg/clock"
)

// IDGenerator assigns identifiers to products created by a commit.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUID identifiers.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// Tracker holds the working set and the pending change buckets.
type Tracker struct {
	source contracts.ProductSource
	ids    IDGenerator
	clock  clock.Clock

	rows  []*domain.Product
	index map[string]*domain.Product // by row key

	created *bucket // by row key
	updated *bucket // by id
	deleted *bucket // by id
}

// New creates an empty Tracker bound to a record source.
func New(source contracts.ProductSource, ids IDGenerator, clk clock.Clock) *Tracker {
	return &Tracker{
		source:  source,
		ids:     ids,
		clock:   clk,
		index:   make(map[string]*domain.Product),
		created: newBucket(),
		updated: newBucket(),
		deleted: newBucket(),
	}
}

// Read fetches the full collection from the source and loads it.
func (t *Tracker) Read(ctx context.Context) error {
	records, err := t.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}
	t.Load(records)
	return nil
}

// Load replaces the working set with a fresh snapshot and clears all pending buckets.
func (t *Tracker) Load(records []*domain.Product) {
	t.rows = make([]*domain.Product, 0, len(records))
	t.index = make(map[string]*domain.Product, len(records))
	for _, p := range records {
		t.rows = append(t.rows, p)
		t.index[p.Key()] = p
	}
	t.clearBuckets()
}

// Rows returns the working set in display order, including unsaved edits.
func (t *Tracker) Rows() []*domain.Product {
	out := make([]*domain.Product, len(t.rows))
	copy(out, t.rows)
	return out
}

// Find returns the working-set product with the given row key.
func (t *Tracker) Find(key string) (*domain.Product, error) {
	p, ok := t.index[key]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// Create adds a new product to the working set and to the created bucket.
func (t *Tracker) Create(p *domain.Product) error {
	if !p.IsNew() {
		return fmt.Errorf("create product %s with id %s: %w", p.Key(), p.ID(), domain.ErrInvalidReference)
	}
	if _, exists := t.index[p.Key()]; exists {
		return fmt.Errorf("create product %s twice: %w", p.Key(), domain.ErrInvalidReference)
	}

	t.rows = append(t.rows, p)
	t.index[p.Key()] = p
	t.created.upsert(p.Key(), p)
	p.MarkChanged()

	return nil
}

// Update records an edit of a working-set product. Products without an id
// go to the created bucket, the others to the updated bucket.
func (t *Tracker) Update(p *domain.Product) error {
	if err := t.checkMember(p); err != nil {
		return err
	}
	if p.IsDeleted() {
		return domain.ErrProductDeleted
	}

	if p.IsNew() {
		t.created.upsert(p.Key(), p)
	} else {
		t.updated.upsert(p.ID(), p)
	}
	p.MarkChanged()

	return nil
}

// Remove marks a product for deletion. A product that was never committed is
// dropped from the created bucket and the working set instead.
// Removing an already deleted product is a no-op.
func (t *Tracker) Remove(p *domain.Product) error {
	if err := t.checkMember(p); err != nil {
		return err
	}
	if p.IsDeleted() {
		return nil
	}

	if p.IsNew() {
		t.created.remove(p.Key())
		t.dropRow(p)
		return nil
	}

	p.MarkDeleted()
	t.updated.remove(p.ID())
	t.deleted.upsert(p.ID(), p)

	return nil
}

// HasChanges returns true if any pending bucket is non-empty.
func (t *Tracker) HasChanges() bool {
	return t.created.len() > 0 || t.updated.len() > 0 || t.deleted.len() > 0
}

// Pending returns a snapshot of the pending buckets.
func (t *Tracker) Pending() PendingChangeSet {
	return PendingChangeSet{
		Created: t.created.snapshot(),
		Updated: t.updated.snapshot(),
		Deleted: t.deleted.snapshot(),
	}
}

// Commit applies all pending changes to the source in one batch.
//
// New products get their identifiers here. If the source rejects the batch the
// error wraps domain.ErrCommitFailed and the tracker is left exactly as it was.
func (t *Tracker) Commit(ctx context.Context) (*CommitResult, error) {
	if !t.HasChanges() {
		return &CommitResult{}, nil
	}

	now := t.clock.Now()
	batch := &contracts.ChangeBatch{}
	assigned := make([]string, 0, t.created.len())

	for _, p := range t.created.values() {
		id := t.ids.NewID()
		assigned = append(assigned, id)

		c := p.WithID(id)
		batch.Created = append(batch.Created, c)
		batch.Events = append(batch.Events, domain.NewCreatedEvent(c, now))
	}

	for _, p := range t.updated.values() {
		c := p.Clone()
		batch.Updated = append(batch.Updated, c)
		batch.Events = append(batch.Events, domain.NewUpdatedEvent(c, now))
	}

	for _, p := range t.deleted.values() {
		c := p.Clone()
		batch.Deleted = append(batch.Deleted, c)
		batch.Events = append(batch.Events, domain.NewDeletedEvent(c, now))
	}

	if err := t.source.Apply(ctx, batch); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
	}

	// The source accepted the batch, merge it into the working set
	for i, p := range t.created.values() {
		p.MarkCommitted(assigned[i])
	}
	for _, p := range t.updated.values() {
		p.MarkCommitted(p.ID())
	}
	for _, p := range t.deleted.values() {
		t.dropRow(p)
	}

	result := &CommitResult{
		CreatedIDs: assigned,
		Updated:    t.updated.len(),
		Deleted:    t.deleted.len(),
	}
	t.clearBuckets()

	return result, nil
}

// Rollback discards all pending changes without touching the source and
// returns what was discarded.
func (t *Tracker) Rollback() PendingChangeSet {
	discarded := t.Pending()

	for _, p := range t.updated.values() {
		p.Revert()
	}
	for _, p := range t.deleted.values() {
		p.Revert()
	}
	for _, p := range t.created.values() {
		t.dropRow(p)
	}
	t.clearBuckets()

	return discarded
}

// checkMember rejects products that are not the working-set instance for their key.
func (t *Tracker) checkMember(p *domain.Product) error {
	if p == nil {
		return domain.ErrInvalidReference
	}
	if row, ok := t.index[p.Key()]; !ok || row != p {
		return fmt.Errorf("product %s: %w", p.Key(), domain.ErrInvalidReference)
	}
	return nil
}

func (t *Tracker) dropRow(p *domain.Product) {
	delete(t.index, p.Key())
	for i, row := range t.rows {
		if row == p {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return
		}
	}
}

func (t *Tracker) clearBuckets() {
	t.created.clear()
	t.updated.clear()
	t.deleted.clear()
}
