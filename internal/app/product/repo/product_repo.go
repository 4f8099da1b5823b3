package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/models/m_product"
	"github.com/light-bringer/procat-batchedit/internal/pkg/query"
)

// ProductRepo builds products table mutations and reads the full collection.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client) *ProductRepo {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	data, err := domainToData(product)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a product (only dirty fields).
// It returns nil when no field is dirty.
func (r *ProductRepo) UpdateMut(product *domain.Product) (*spanner.Mutation, error) {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldProductName) {
		updates[m_product.ProductName] = product.ProductName()
	}

	if changes.Dirty(domain.FieldUnitPrice) {
		price := product.UnitPrice()
		if !price.IsSafeForStorage() {
			return nil, fmt.Errorf("unit price exceeds storage capacity: %w", domain.ErrMoneyOverflow)
		}
		updates[m_product.UnitPriceNumerator] = price.Numerator()
		updates[m_product.UnitPriceDenominator] = price.Denominator()
	}

	if changes.Dirty(domain.FieldUnitsInStock) {
		updates[m_product.UnitsInStock] = product.UnitsInStock()
	}

	if changes.Dirty(domain.FieldDiscontinued) {
		updates[m_product.Discontinued] = product.Discontinued()
	}

	return r.model.UpdateMut(product.ID(), updates), nil
}

// DeleteMut creates a mutation for deleting a product.
func (r *ProductRepo) DeleteMut(product *domain.Product) *spanner.Mutation {
	return r.model.DeleteMut(product.ID())
}

// ListAll reads every product in insertion order.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		OrderBy(m_product.CreatedAt, query.Asc).
		OrderBy(m_product.ProductID, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var products []*domain.Product
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		product, err := dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// domainToData converts a domain Product to database Data.
func domainToData(product *domain.Product) (*m_product.Data, error) {
	price := product.UnitPrice()
	if !price.IsSafeForStorage() {
		return nil, fmt.Errorf("unit price exceeds storage capacity: %w", domain.ErrMoneyOverflow)
	}

	return &m_product.Data{
		ProductID:            product.ID(),
		ProductName:          product.ProductName(),
		UnitPriceNumerator:   price.Numerator(),
		UnitPriceDenominator: price.Denominator(),
		UnitsInStock:         product.UnitsInStock(),
		Discontinued:         product.Discontinued(),
	}, nil
}

// dataToDomain converts database Data to a domain Product keyed by its id.
func dataToDomain(data *m_product.Data) (*domain.Product, error) {
	price, err := domain.NewMoney(data.UnitPriceNumerator, data.UnitPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price for product %s: %w", data.ProductID, err)
	}

	return domain.ReconstructProduct(data.ProductID, data.ProductID, domain.ProductFields{
		ProductName:  data.ProductName,
		UnitPrice:    price,
		UnitsInStock: data.UnitsInStock,
		Discontinued: data.Discontinued,
	}), nil
}
