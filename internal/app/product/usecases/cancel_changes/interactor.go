package cancel_changes

import (
	"context"

	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
)

// Interactor handles the cancel changes use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new cancel changes interactor.
func NewInteractor(s *session.Session) *Interactor {
	return &Interactor{session: s}
}

// Execute discards every pending change and returns how many were discarded.
func (i *Interactor) Execute(ctx context.Context) (int, error) {
	var discarded tracker.PendingChangeSet
	err := i.session.Do(func(t *tracker.Tracker) error {
		discarded = t.Rollback()
		return nil
	})
	if err != nil {
		return 0, err
	}

	if n := discarded.Count(); n > 0 {
		i.session.Logf("discarded %d pending changes", n)
	}
	return discarded.Count(), nil
}
