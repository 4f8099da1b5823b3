package contracts

import "github.com/light-bringer/procat-batchedit/internal/app/product/domain"

// RowDTO is a working-set row as the display surface renders it.
type RowDTO struct {
	Key          string
	ProductID    string // empty until the row is committed
	ProductName  string
	UnitPrice    string
	UnitsInStock int64
	Discontinued bool
	Style        domain.RowStyle
}

// RowFromProduct maps a working-set product to a RowDTO.
func RowFromProduct(p *domain.Product) *RowDTO {
	return &RowDTO{
		Key:          p.Key(),
		ProductID:    p.ID(),
		ProductName:  p.ProductName(),
		UnitPrice:    p.UnitPrice().String(),
		UnitsInStock: p.UnitsInStock(),
		Discontinued: p.Discontinued(),
		Style:        domain.StyleFor(p.Flags()),
	}
}

// RowsFromProducts maps a slice of products.
func RowsFromProducts(products []*domain.Product) []*RowDTO {
	rows := make([]*RowDTO, 0, len(products))
	for _, p := range products {
		rows = append(rows, RowFromProduct(p))
	}
	return rows
}

// ViewResult is one page of the grid view.
type ViewResult struct {
	Rows       []*RowDTO
	Total      int // rows matching the filter, before paging
	Skip       int
	Take       int
	HasChanges bool
}

// ChangesResult lists the pending changes per bucket.
type ChangesResult struct {
	Created    []*RowDTO
	Updated    []*RowDTO
	Deleted    []*RowDTO
	HasChanges bool
}
