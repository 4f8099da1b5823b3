// Package committer collects Spanner mutations from several repositories and
// applies them in one transaction.
//
// Repositories return mutations instead of writing, a source collects them
// into a CommitPlan, and the plan is applied at the end:
//
//	plan := committer.NewPlan()
//	for _, p := range batch.Created {
//	    mut, err := products.InsertMut(p)
//	    ...
//	    plan.Add(mut)
//	}
//	for _, event := range batch.Events {
//	    plan.Add(outbox.InsertMut(event))
//	}
//	return c.ApplyWithExistenceCheck(ctx, check, plan)
//
// Either every mutation in the plan is applied or none is.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/procat-batchedit/internal/pkg/query"
)

// ErrRowsMissing is returned when rows the plan expects to exist are gone.
var ErrRowsMissing = errors.New("rows missing")

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// ExistenceCheck names rows that must exist when the plan is applied.
type ExistenceCheck struct {
	Table     string
	KeyColumn string
	Keys      []string
}

// Missing returns the keys of the check absent from found.
func (ec ExistenceCheck) Missing(found map[string]bool) []string {
	var missing []string
	for _, key := range ec.Keys {
		if !found[key] {
			missing = append(missing, key)
		}
	}
	return missing
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithReadWriteTransaction runs fn within a read-write transaction.
// This is useful when you need to perform reads before building mutations.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyWithExistenceCheck applies the plan after verifying, in the same
// read-write transaction, that every key of check still exists.
//
// Returns an error wrapping ErrRowsMissing when a key is gone; nothing is written then.
func (c *Committer) ApplyWithExistenceCheck(ctx context.Context, check ExistenceCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}
	if len(check.Keys) == 0 {
		return c.Apply(ctx, plan)
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		stmt := query.From(check.Table).
			Select(check.KeyColumn).
			Where(query.In(check.KeyColumn, check.Keys)).
			Build()

		found := make(map[string]bool, len(check.Keys))
		iter := txn.Query(ctx, stmt)
		defer iter.Stop()
		for {
			row, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read %s keys: %w", check.Table, err)
			}
			var key string
			if err := row.Column(0, &key); err != nil {
				return fmt.Errorf("failed to parse %s key: %w", check.Table, err)
			}
			found[key] = true
		}

		if missing := check.Missing(found); len(missing) > 0 {
			return fmt.Errorf("%s %v: %w", check.Table, missing, ErrRowsMissing)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrRowsMissing) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with existence check: %w", err)
	}

	return nil
}
