package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "product_name", "units_in_stock").
		Build()

	assert.Equal(t, "SELECT product_id, product_name, units_in_stock FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("products").Build()

	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Where(Eq("discontinued", false)).
		Where(In("product_id", []string{"a", "b"})).
		Build()

	assert.Equal(t, "SELECT product_id FROM products WHERE discontinued = @p0 AND product_id IN UNNEST(@p1)", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": false,
		"p1": []string{"a", "b"},
	}, stmt.Params)
}

func TestBuilder_OrderBy(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		OrderBy("created_at", Asc).
		OrderBy("product_id", Desc).
		Build()

	assert.Equal(t, "SELECT product_id FROM products ORDER BY created_at ASC, product_id DESC", stmt.SQL)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("product_id").OrderBy("created_at", Asc)

	withWhere := base.Where(Eq("discontinued", false))
	withOrder := base.OrderBy("product_id", Asc)

	assert.Equal(t, "SELECT product_id FROM products ORDER BY created_at ASC", base.Build().SQL)
	assert.Equal(t, "SELECT product_id FROM products WHERE discontinued = @p0 ORDER BY created_at ASC", withWhere.Build().SQL)
	assert.Equal(t, "SELECT product_id FROM products ORDER BY created_at ASC, product_id ASC", withOrder.Build().SQL)
}

func TestCondition_Eq(t *testing.T) {
	sql, params := Eq("product_name", "Chai").SQL(3)

	assert.Equal(t, "product_name = @p3", sql)
	assert.Equal(t, map[string]interface{}{"p3": "Chai"}, params)
}

func TestCondition_In(t *testing.T) {
	sql, params := In("product_id", []string{"a", "b"}).SQL(1)

	assert.Equal(t, "product_id IN UNNEST(@p1)", sql)
	assert.Equal(t, map[string]interface{}{"p1": []string{"a", "b"}}, params)
}
