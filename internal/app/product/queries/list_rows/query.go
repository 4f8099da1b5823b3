package list_rows

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/SierraSoftworks/connor"

	"github.com/light-bringer/procat-batchedit/internal/app/product/contracts"
	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/app/product/session"
	"github.com/light-bringer/procat-batchedit/internal/app/product/tracker"
)

// Sortable and filterable row fields.
const (
	FieldProductID    = "ProductID"
	FieldProductName  = "ProductName"
	FieldUnitPrice    = "UnitPrice"
	FieldUnitsInStock = "UnitsInStock"
	FieldDiscontinued = "Discontinued"
	FieldStyle        = "Style"
)

// ErrUnknownField is returned when sorting by a field the grid does not have.
var ErrUnknownField = errors.New("unknown field")

// ErrInvalidFilter is returned when the filter expression cannot be evaluated.
var ErrInvalidFilter = errors.New("invalid filter")

// Request contains view parameters.
type Request struct {
	// ChangedOnly keeps only rows with a pending change
	ChangedOnly bool
	// Filter is a connor expression over the row fields, e.g. {"UnitPrice": {"$gt": 10}}
	Filter   map[string]interface{}
	SortBy   string
	SortDesc bool
	Skip     int
	Take     int
}

// Query handles the list rows query.
type Query struct {
	session  *session.Session
	pageSize int
}

// NewQuery creates a new list rows query. Requests without Take get pageSize
// rows; a pageSize of zero means no paging.
func NewQuery(s *session.Session, pageSize int) *Query {
	return &Query{
		session:  s,
		pageSize: pageSize,
	}
}

// Execute returns one page of the working set with row styles.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ViewResult, error) {
	var (
		products   []*domain.Product
		hasChanges bool
	)
	err := q.session.Do(func(t *tracker.Tracker) error {
		// Snapshot the values, later edits must not show through
		for _, p := range t.Rows() {
			products = append(products, p.Clone())
		}
		hasChanges = t.HasChanges()
		return nil
	})
	if err != nil {
		return nil, err
	}

	products, err = filterProducts(products, req)
	if err != nil {
		return nil, err
	}

	if req.SortBy != "" {
		if err := sortProducts(products, req.SortBy, req.SortDesc); err != nil {
			return nil, err
		}
	}

	take := req.Take
	if take <= 0 {
		take = q.pageSize
	}

	return &contracts.ViewResult{
		Rows:       contracts.RowsFromProducts(page(products, req.Skip, take)),
		Total:      len(products),
		Skip:       req.Skip,
		Take:       take,
		HasChanges: hasChanges,
	}, nil
}

func filterProducts(products []*domain.Product, req *Request) ([]*domain.Product, error) {
	hasFilter := len(req.Filter) > 0
	if !hasFilter && !req.ChangedOnly {
		return products, nil
	}

	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if req.ChangedOnly && !domain.StyleFor(p.Flags()).IsPending() {
			continue
		}
		if hasFilter {
			match, err := connor.Match(req.Filter, productData(p))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
			}
			if !match {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// productData exposes a row the way a decoded JSON document looks, numbers as float64.
func productData(p *domain.Product) map[string]interface{} {
	return map[string]interface{}{
		FieldProductID:    p.ID(),
		FieldProductName:  p.ProductName(),
		FieldUnitPrice:    p.UnitPrice().Float64(),
		FieldUnitsInStock: float64(p.UnitsInStock()),
		FieldDiscontinued: p.Discontinued(),
		FieldStyle:        string(domain.StyleFor(p.Flags())),
	}
}

func sortProducts(products []*domain.Product, field string, desc bool) error {
	var less func(a, b *domain.Product) bool

	switch field {
	case FieldProductID:
		less = func(a, b *domain.Product) bool { return a.ID() < b.ID() }
	case FieldProductName:
		less = func(a, b *domain.Product) bool {
			return strings.ToLower(a.ProductName()) < strings.ToLower(b.ProductName())
		}
	case FieldUnitPrice:
		less = func(a, b *domain.Product) bool { return a.UnitPrice().Cmp(b.UnitPrice()) < 0 }
	case FieldUnitsInStock:
		less = func(a, b *domain.Product) bool { return a.UnitsInStock() < b.UnitsInStock() }
	case FieldDiscontinued:
		less = func(a, b *domain.Product) bool { return !a.Discontinued() && b.Discontinued() }
	default:
		return fmt.Errorf("sort by %q: %w", field, ErrUnknownField)
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
	return nil
}

func page(products []*domain.Product, skip, take int) []*domain.Product {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(products) {
		return []*domain.Product{}
	}
	products = products[skip:]
	if take > 0 && take < len(products) {
		products = products[:take]
	}
	return products
}
