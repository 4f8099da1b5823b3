package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/get_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/list_rows"
	"github.com/light-bringer/procat-batchedit/internal/app/product/repo"
	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/add_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/cancel_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/edit_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/read_products"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/remove_product"
	"github.com/light-bringer/procat-batchedit/internal/app/product/usecases/save_changes"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
	"github.com/light-bringer/procat-batchedit/internal/pkg/clock"
)

// Services holds all use cases and queries of one editing session.
type Services struct {
	// Commands
	ReadProducts  *read_products.Interactor
	AddProduct    *add_product.Interactor
	EditProduct   *edit_product.Interactor
	RemoveProduct *remove_product.Interactor
	SaveChanges   *save_changes.Interactor
	CancelChanges *cancel_changes.Interactor

	// Queries
	ListRows   *list_rows.Query
	GetChanges *get_changes.Query

	// Infrastructure
	Source *repo.MemorySource
}

// setupTest wires a session over a memory source seeded with products.
func setupTest(t *testing.T, seed ...*domain.Product) *Services {
	t.Helper()

	src := repo.NewMemorySource()
	src.Seed(seed...)

	clk := clock.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	s := session.New(tracker.New(src, tracker.UUIDGenerator{}, clk), nil)

	services := &Services{
		ReadProducts:  read_products.NewInteractor(s),
		AddProduct:    add_product.NewInteractor(s),
		EditProduct:   edit_product.NewInteractor(s),
		RemoveProduct: remove_product.NewInteractor(s),
		SaveChanges:   save_changes.NewInteractor(s),
		CancelChanges: cancel_changes.NewInteractor(s),
		ListRows:      list_rows.NewQuery(s, 0),
		GetChanges:    get_changes.NewQuery(s),
		Source:        src,
	}

	if _, err := services.ReadProducts.Execute(ctx()); err != nil {
		t.Fatalf("read products: %v", err)
	}

	return services
}

// seedProduct builds a stored product whose id and row key are id.
func seedProduct(id, name, price string, units int64) *domain.Product {
	m, err := domain.ParseMoney(price)
	if err != nil {
		panic(err)
	}
	return domain.ReconstructProduct(id, id, domain.ProductFields{
		ProductName:  name,
		UnitPrice:    m,
		UnitsInStock: units,
	})
}

func form(name, price, units string) validation.Form {
	return validation.Form{ProductName: name, UnitPrice: price, UnitsInStock: units}
}

func str(s string) *string { return &s }

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
