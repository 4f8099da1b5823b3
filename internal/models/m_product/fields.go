package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID            = "product_id"
	ProductName          = "product_name"
	UnitPriceNumerator   = "unit_price_numerator"
	UnitPriceDenominator = "unit_price_denominator"
	UnitsInStock         = "units_in_stock"
	Discontinued         = "discontinued"
	CreatedAt            = "created_at"
	UpdatedAt            = "updated_at"
)

// Columns lists every column in table order.
var Columns = []string{
	ProductID,
	ProductName,
	UnitPriceNumerator,
	UnitPriceDenominator,
	UnitsInStock,
	Discontinued,
	CreatedAt,
	UpdatedAt,
}
