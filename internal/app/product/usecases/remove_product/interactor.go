package remove_product

import (
	"context"

	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
)

// Request identifies the row to remove.
type Request struct {
	Key string
}

// Interactor handles the remove product use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new remove product interactor.
func NewInteractor(s *session.Session) *Interactor {
	return &Interactor{session: s}
}

// Execute marks the row for deletion, or drops it when it was never saved.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.session.Do(func(t *tracker.Tracker) error {
		product, err := t.Find(req.Key)
		if err != nil {
			return err
		}
		return t.Remove(product)
	})
}
