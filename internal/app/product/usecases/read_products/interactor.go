package read_products

import (
	"context"

	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
)

// Interactor handles the read products use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new read products interactor.
func NewInteractor(s *session.Session) *Interactor {
	return &Interactor{session: s}
}

// Execute reloads the working set from the source, discarding pending changes.
// It returns the number of loaded rows.
func (i *Interactor) Execute(ctx context.Context) (int, error) {
	var loaded int
	err := i.session.Do(func(t *tracker.Tracker) error {
		if err := t.Read(ctx); err != nil {
			return err
		}
		loaded = len(t.Rows())
		return nil
	})
	if err != nil {
		return 0, err
	}

	i.session.Logf("loaded %d products", loaded)
	return loaded, nil
}
