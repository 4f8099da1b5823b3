package m_product

import (
	"time"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID            string
	ProductName          string
	UnitPriceNumerator   int64
	UnitPriceDenominator int64
	UnitsInStock         int64
	Discontinued         bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
