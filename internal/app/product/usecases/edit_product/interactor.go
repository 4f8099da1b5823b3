package edit_product

import (
	"context"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
)

// Request contains the row key and the edited cells.
type Request struct {
	Key   string
	Patch validation.Patch
}

// Interactor handles the edit product use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new edit product interactor.
func NewInteractor(s *session.Session) *Interactor {
	return &Interactor{session: s}
}

// Execute merges the patch onto the row and records the edit.
// It reports false when the row already held the submitted values.
func (i *Interactor) Execute(ctx context.Context, req *Request) (bool, error) {
	var modified bool
	err := i.session.Do(func(t *tracker.Tracker) error {
		// 1. Load row from working set
		product, err := t.Find(req.Key)
		if err != nil {
			return err
		}
		if product.IsDeleted() {
			return domain.ErrProductDeleted
		}

		// 2. Validate the edited cells on top of the current values
		fields, err := validation.ValidatePatch(product.Fields(), req.Patch)
		if err != nil {
			return err
		}

		// 3. Assign values, skipping the tracker when nothing differs
		modified, err = product.AssignValues(fields)
		if err != nil || !modified {
			return err
		}

		// 4. Record update
		return t.Update(product)
	})
	if err != nil {
		return false, err
	}

	return modified, nil
}
