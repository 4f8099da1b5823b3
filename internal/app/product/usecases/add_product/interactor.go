package add_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
)

// Request contains the raw form values of the new row.
type Request struct {
	Form validation.Form
}

// Interactor handles the add product use case.
type Interactor struct {
	session *session.Session
}

// NewInteractor creates a new add product interactor.
func NewInteractor(s *session.Session) *Interactor {
	return &Interactor{session: s}
}

// Execute validates the form and adds a new row to the working set.
// It returns the row key; the product id is assigned on save.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. Validate form
	fields, err := validation.Validate(req.Form)
	if err != nil {
		return "", err
	}

	// 2. Create domain aggregate
	product, err := domain.NewProduct(uuid.New().String(), fields)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	// 3. Track it
	err = i.session.Do(func(t *tracker.Tracker) error {
		return t.Create(product)
	})
	if err != nil {
		return "", err
	}

	return product.Key(), nil
}
