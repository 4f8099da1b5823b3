// Package validation checks candidate field values coming from the grid
// editor before they reach the change tracker.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
)

// ErrInvalid matches every validation failure via errors.Is.
var ErrInvalid = errors.New("validation failed")

var (
	unitsInStockPattern = regexp.MustCompile(`^[0-9]{1,3}$`)
	unitPricePattern    = regexp.MustCompile(`^-?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
)

// Form holds the raw editor values of one grid row.
type Form struct {
	ProductName  string
	UnitPrice    string
	UnitsInStock string
	Discontinued bool
}

// Patch carries the values of a partial edit. Nil means no change.
type Patch struct {
	ProductName  *string
	UnitPrice    *string
	UnitsInStock *string
	Discontinued *bool
}

// IsEmpty returns true if the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.ProductName == nil && p.UnitPrice == nil && p.UnitsInStock == nil && p.Discontinued == nil
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every rejected field of a form.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalid) true.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Apply overlays the patch on the form.
func (f Form) Apply(p Patch) Form {
	if p.ProductName != nil {
		f.ProductName = *p.ProductName
	}
	if p.UnitPrice != nil {
		f.UnitPrice = *p.UnitPrice
	}
	if p.UnitsInStock != nil {
		f.UnitsInStock = *p.UnitsInStock
	}
	if p.Discontinued != nil {
		f.Discontinued = *p.Discontinued
	}
	return f
}

// Validate accepts or rejects a complete form. On success it returns the parsed fields.
func Validate(form Form) (domain.ProductFields, error) {
	var fields domain.ProductFields
	var errs []FieldError

	fields.ProductName, errs = checkName(form.ProductName, errs)
	fields.UnitPrice, errs = checkPrice(form.UnitPrice, errs)
	fields.UnitsInStock, errs = checkUnitsInStock(form.UnitsInStock, errs)
	fields.Discontinued = form.Discontinued

	if len(errs) > 0 {
		return domain.ProductFields{}, &Error{Fields: errs}
	}
	return fields, nil
}

// ValidatePatch checks only the cells the patch sets and overlays them on
// current. Untouched values are kept as they are, never re-parsed.
func ValidatePatch(current domain.ProductFields, p Patch) (domain.ProductFields, error) {
	fields := current.Copy()
	var errs []FieldError

	if p.ProductName != nil {
		fields.ProductName, errs = checkName(*p.ProductName, errs)
	}
	if p.UnitPrice != nil {
		fields.UnitPrice, errs = checkPrice(*p.UnitPrice, errs)
	}
	if p.UnitsInStock != nil {
		fields.UnitsInStock, errs = checkUnitsInStock(*p.UnitsInStock, errs)
	}
	if p.Discontinued != nil {
		fields.Discontinued = *p.Discontinued
	}

	if len(errs) > 0 {
		return domain.ProductFields{}, &Error{Fields: errs}
	}
	return fields, nil
}

func checkName(name string, errs []FieldError) (string, []FieldError) {
	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: domain.FieldProductName, Message: "is required"})
	}
	return name, errs
}

// checkPrice accepts plain decimals with at most two places. An empty value is zero.
func checkPrice(raw string, errs []FieldError) (*domain.Money, []FieldError) {
	raw = strings.TrimSpace(raw)
	if raw != "" && !unitPricePattern.MatchString(raw) {
		return nil, append(errs, FieldError{Field: domain.FieldUnitPrice, Message: "must be a decimal number"})
	}

	price, err := domain.ParseMoney(raw)
	switch {
	case err != nil:
		return nil, append(errs, FieldError{Field: domain.FieldUnitPrice, Message: "must be a decimal number"})
	case price.IsNegative():
		return nil, append(errs, FieldError{Field: domain.FieldUnitPrice, Message: "cannot be negative"})
	case !price.HasAtMostCents():
		return nil, append(errs, FieldError{Field: domain.FieldUnitPrice, Message: "must have at most two decimal places"})
	case !price.IsSafeForStorage():
		return nil, append(errs, FieldError{Field: domain.FieldUnitPrice, Message: "is too large"})
	}
	return price, errs
}

func checkUnitsInStock(raw string, errs []FieldError) (int64, []FieldError) {
	units := strings.TrimSpace(raw)
	switch {
	case units == "":
		return 0, append(errs, FieldError{Field: domain.FieldUnitsInStock, Message: "is required"})
	case !unitsInStockPattern.MatchString(units):
		return 0, append(errs, FieldError{Field: domain.FieldUnitsInStock, Message: "must be a whole number from 0 to 999"})
	}
	n, _ := strconv.ParseInt(units, 10, 64)
	return n, errs
}
