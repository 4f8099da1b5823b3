package repo

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/google/btree"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
)

type memRow struct {
	seq    uint64
	id     string
	fields domain.ProductFields
}

// MemorySource is an in-process ProductSource. Rows keep their insertion
// order, and a batch is applied to a copy of the tree that replaces the
// current one only when every change succeeded.
type MemorySource struct {
	mu     sync.RWMutex
	tree   *btree.BTreeG[*memRow]
	ids    map[string]*memRow
	next   uint64
	outbox contracts.OutboxRepository
	events []*contracts.OutboxEvent

	failNext error
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		tree:   btree.NewG(32, func(a, b *memRow) bool { return a.seq < b.seq }),
		ids:    map[string]*memRow{},
		outbox: NewOutboxRepo(),
	}
}

// Seed stores products under their ids, bypassing change tracking.
// A product whose id is already stored replaces the stored fields.
func (s *MemorySource) Seed(products ...*domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range products {
		seq := s.next + 1
		if current, exists := s.ids[p.ID()]; exists {
			seq = current.seq
		} else {
			s.next = seq
		}
		row := &memRow{seq: seq, id: p.ID(), fields: p.Fields()}
		s.tree.ReplaceOrInsert(row)
		s.ids[row.id] = row
	}
}

// FailNextApply makes the next Apply return err without changing anything.
func (s *MemorySource) FailNextApply(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failNext = err
}

// Fetch returns every stored product in insertion order.
func (s *MemorySource) Fetch(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*domain.Product, 0, s.tree.Len())
	s.tree.Ascend(func(row *memRow) bool {
		products = append(products, domain.ReconstructProduct(row.id, row.id, row.fields.Copy()))
		return true
	})
	return products, nil
}

// Apply stores the batch atomically.
func (s *MemorySource) Apply(ctx context.Context, batch *contracts.ChangeBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}

	tree := s.tree.Clone()
	ids := maps.Clone(s.ids)
	next := s.next

	for _, p := range batch.Created {
		if _, exists := ids[p.ID()]; exists {
			return fmt.Errorf("insert product %s: %w", p.ID(), domain.ErrSourceConflict)
		}
		next++
		row := &memRow{seq: next, id: p.ID(), fields: p.Fields()}
		tree.ReplaceOrInsert(row)
		ids[row.id] = row
	}

	for _, p := range batch.Updated {
		current, exists := ids[p.ID()]
		if !exists {
			return fmt.Errorf("update product %s: %w", p.ID(), domain.ErrSourceConflict)
		}
		row := &memRow{seq: current.seq, id: current.id, fields: p.Fields()}
		tree.ReplaceOrInsert(row)
		ids[row.id] = row
	}

	for _, p := range batch.Deleted {
		current, exists := ids[p.ID()]
		if !exists {
			return fmt.Errorf("delete product %s: %w", p.ID(), domain.ErrSourceConflict)
		}
		tree.Delete(current)
		delete(ids, current.id)
	}

	events := make([]*contracts.OutboxEvent, 0, len(batch.Events))
	for _, event := range batch.Events {
		outboxEvent, err := s.outbox.EnrichEvent(event)
		if err != nil {
			return err
		}
		events = append(events, outboxEvent)
	}

	s.tree = tree
	s.ids = ids
	s.next = next
	s.events = append(s.events, events...)

	return nil
}

// Len returns the number of stored products.
func (s *MemorySource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Len()
}

// Events returns the outbox events written by successful batches, oldest first.
func (s *MemorySource) Events() []*contracts.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*contracts.OutboxEvent, len(s.events))
	copy(out, s.events)
	return out
}
