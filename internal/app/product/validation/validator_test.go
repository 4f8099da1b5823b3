package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
)

func TestValidate(t *testing.T) {
	t.Run("accepts a complete form", func(t *testing.T) {
		fields, err := Validate(Form{ProductName: "Chai", UnitPrice: "18.00", UnitsInStock: "39", Discontinued: true})
		require.NoError(t, err)
		assert.Equal(t, "Chai", fields.ProductName)
		assert.Equal(t, "18.00", fields.UnitPrice.String())
		assert.Equal(t, int64(39), fields.UnitsInStock)
		assert.True(t, fields.Discontinued)
	})

	t.Run("empty price is zero", func(t *testing.T) {
		fields, err := Validate(Form{ProductName: "Chai", UnitsInStock: "0"})
		require.NoError(t, err)
		assert.True(t, fields.UnitPrice.IsZero())
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := Validate(Form{ProductName: "  ", UnitsInStock: "1"})
		assertFieldErrors(t, err, domain.FieldProductName)
	})

	t.Run("missing stock", func(t *testing.T) {
		_, err := Validate(Form{ProductName: "Chai"})
		assertFieldErrors(t, err, domain.FieldUnitsInStock)
	})

	t.Run("stock pattern", func(t *testing.T) {
		for _, units := range []string{"1000", "-1", "1.5", "12a", "abc"} {
			_, err := Validate(Form{ProductName: "Chai", UnitsInStock: units})
			assertFieldErrors(t, err, domain.FieldUnitsInStock)
		}
		for _, units := range []string{"0", "7", "42", "999", "007"} {
			_, err := Validate(Form{ProductName: "Chai", UnitsInStock: units})
			assert.NoError(t, err, units)
		}
	})

	t.Run("negative or malformed price", func(t *testing.T) {
		_, err := Validate(Form{ProductName: "Chai", UnitPrice: "-1", UnitsInStock: "1"})
		assertFieldErrors(t, err, domain.FieldUnitPrice)

		_, err = Validate(Form{ProductName: "Chai", UnitPrice: "cheap", UnitsInStock: "1"})
		assertFieldErrors(t, err, domain.FieldUnitPrice)
	})

	t.Run("reports every rejected field", func(t *testing.T) {
		_, err := Validate(Form{UnitPrice: "-3"})
		assertFieldErrors(t, err, domain.FieldProductName, domain.FieldUnitPrice, domain.FieldUnitsInStock)
		assert.Contains(t, err.Error(), "product_name: is required")
	})
}

func TestValidate_Price(t *testing.T) {
	t.Run("accepts plain decimals up to cents", func(t *testing.T) {
		for _, price := range []string{"0", "18", "18.2", "18.25", ".5", " 7.10 "} {
			_, err := Validate(Form{ProductName: "Chai", UnitPrice: price, UnitsInStock: "1"})
			assert.NoError(t, err, price)
		}
	})

	t.Run("rejects more than two decimal places", func(t *testing.T) {
		_, err := Validate(Form{ProductName: "Chai", UnitPrice: "18.205", UnitsInStock: "1"})
		assertFieldErrors(t, err, domain.FieldUnitPrice)
		assert.Contains(t, err.Error(), "at most two decimal places")
	})

	t.Run("rejects exponents and fractions", func(t *testing.T) {
		for _, price := range []string{"1e30", "1e100000", "1/3", "1/4", "0x10"} {
			_, err := Validate(Form{ProductName: "Chai", UnitPrice: price, UnitsInStock: "1"})
			assertFieldErrors(t, err, domain.FieldUnitPrice)
		}
	})

	t.Run("rejects prices the store cannot hold", func(t *testing.T) {
		_, err := Validate(Form{ProductName: "Chai", UnitPrice: "100000000000000000000000000000", UnitsInStock: "1"})
		assertFieldErrors(t, err, domain.FieldUnitPrice)
		assert.Contains(t, err.Error(), "too large")
	})
}

func TestValidatePatch(t *testing.T) {
	price, err := domain.ParseMoney("18.205")
	require.NoError(t, err)
	current := domain.ProductFields{ProductName: "Chai", UnitPrice: price, UnitsInStock: 39}

	t.Run("untouched cells keep their exact values", func(t *testing.T) {
		name := "Chai Tea"
		fields, err := ValidatePatch(current, Patch{ProductName: &name})
		require.NoError(t, err)

		assert.Equal(t, "Chai Tea", fields.ProductName)
		assert.True(t, fields.UnitPrice.Equals(price))
		assert.Equal(t, int64(39), fields.UnitsInStock)
	})

	t.Run("does not alias the current price", func(t *testing.T) {
		fields, err := ValidatePatch(current, Patch{})
		require.NoError(t, err)
		assert.NotSame(t, current.UnitPrice, fields.UnitPrice)
	})

	t.Run("checks only the set cells", func(t *testing.T) {
		units := "1000"
		empty := ""
		_, err := ValidatePatch(current, Patch{UnitsInStock: &units, ProductName: &empty})
		assertFieldErrors(t, err, domain.FieldProductName, domain.FieldUnitsInStock)
	})

	t.Run("edited price follows the price rules", func(t *testing.T) {
		huge := "1e30"
		_, err := ValidatePatch(current, Patch{UnitPrice: &huge})
		assertFieldErrors(t, err, domain.FieldUnitPrice)
	})
}

func TestForm_Apply(t *testing.T) {
	form := Form{ProductName: "Chai", UnitPrice: "18.00", UnitsInStock: "39"}

	name := "Chai Tea"
	discontinued := true
	patched := form.Apply(Patch{ProductName: &name, Discontinued: &discontinued})

	assert.Equal(t, "Chai Tea", patched.ProductName)
	assert.Equal(t, "39", patched.UnitsInStock)
	assert.True(t, patched.Discontinued)
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{ProductName: &name}.IsEmpty())
}

func assertFieldErrors(t *testing.T, err error, fields ...string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	var verr *Error
	require.True(t, errors.As(err, &verr))

	got := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		got = append(got, f.Field)
	}
	assert.Equal(t, fields, got)
}
