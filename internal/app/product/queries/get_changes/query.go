package get_changes

import (
	"context"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
)

// Query handles the get changes query.
type Query struct {
	session *session.Session
}

// NewQuery creates a new get changes query.
func NewQuery(s *session.Session) *Query {
	return &Query{session: s}
}

// Execute returns the pending created, updated and deleted rows.
func (q *Query) Execute(ctx context.Context) (*contracts.ChangesResult, error) {
	var pending tracker.PendingChangeSet
	err := q.session.Do(func(t *tracker.Tracker) error {
		pending = t.Pending()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &contracts.ChangesResult{
		Created:    contracts.RowsFromProducts(pending.Created),
		Updated:    contracts.RowsFromProducts(pending.Updated),
		Deleted:    contracts.RowsFromProducts(pending.Deleted),
		HasChanges: !pending.IsEmpty(),
	}, nil
}
