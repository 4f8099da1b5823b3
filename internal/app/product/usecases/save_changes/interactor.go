package save_changes

import (
	"context"

	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
)

// Interactor handles the save changes use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new save changes interactor.
func NewInteractor(s *session.Session) *Interactor {
	return &Interactor{session: s}
}

// Execute commits every pending change in one batch.
// On failure nothing is applied and the pending changes are kept.
func (i *Interactor) Execute(ctx context.Context) (*tracker.CommitResult, error) {
	var result *tracker.CommitResult
	err := i.session.Do(func(t *tracker.Tracker) error {
		var err error
		result, err = t.Commit(ctx)
		return err
	})
	if err != nil {
		i.session.Logf("save failed: %v", err)
		return nil, err
	}

	i.session.Logf("saved: %d created, %d updated, %d deleted",
		len(result.CreatedIDs), result.Updated, result.Deleted)
	return result, nil
}
