package domain

// Field names for change tracking
const (
	FieldProductName  = "product_name"
	FieldUnitPrice    = "unit_price"
	FieldUnitsInStock = "units_in_stock"
	FieldDiscontinued = "discontinued"
)

// MaxUnitsInStock is the largest stock value the grid editor accepts.
const MaxUnitsInStock = 999

// ProductFields holds the business fields edited in the grid.
type ProductFields struct {
	ProductName  string
	UnitPrice    *Money
	UnitsInStock int64
	Discontinued bool
}

// Copy returns a deep copy of the fields.
func (f ProductFields) Copy() ProductFields {
	f.UnitPrice = f.UnitPrice.Copy()
	return f
}

// Validate checks the domain invariants of the field values.
func (f ProductFields) Validate() error {
	if f.ProductName == "" {
		return ErrEmptyName
	}
	if f.UnitPrice != nil && f.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	if f.UnitsInStock < 0 || f.UnitsInStock > MaxUnitsInStock {
		return ErrInvalidUnitsInStock
	}
	return nil
}

// Product is a row of the batch-edit grid.
//
// The key identifies the row inside the working set; the id is assigned by a
// commit and is empty until then. The committed field values are kept so a
// rollback can restore them.
type Product struct {
	key       string
	id        string
	fields    ProductFields
	committed ProductFields

	// Transient flags, cleared by commit and rollback
	changed bool
	deleted bool

	// Change tracking for partial updates in the source
	changes *ChangeTracker
}

// NewProduct creates a product that does not exist in the source yet.
func NewProduct(key string, fields ProductFields) (*Product, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if fields.UnitPrice == nil {
		fields.UnitPrice = ZeroMoney()
	}

	p := &Product{
		key:       key,
		fields:    fields.Copy(),
		committed: fields.Copy(),
		changes:   NewChangeTracker(),
	}

	// Mark all fields as dirty for a new product
	p.changes.MarkDirty(FieldProductName)
	p.changes.MarkDirty(FieldUnitPrice)
	p.changes.MarkDirty(FieldUnitsInStock)
	p.changes.MarkDirty(FieldDiscontinued)

	return p, nil
}

// ReconstructProduct reconstitutes a Product loaded from a source.
func ReconstructProduct(key, id string, fields ProductFields) *Product {
	if fields.UnitPrice == nil {
		fields.UnitPrice = ZeroMoney()
	}
	return &Product{
		key:       key,
		id:        id,
		fields:    fields.Copy(),
		committed: fields.Copy(),
		changes:   NewChangeTracker(), // Start with clean slate
	}
}

// Getters
func (p *Product) Key() string              { return p.key }
func (p *Product) ID() string               { return p.id }
func (p *Product) ProductName() string      { return p.fields.ProductName }
func (p *Product) UnitPrice() *Money        { return p.fields.UnitPrice.Copy() }
func (p *Product) UnitsInStock() int64      { return p.fields.UnitsInStock }
func (p *Product) Discontinued() bool       { return p.fields.Discontinued }
func (p *Product) Fields() ProductFields    { return p.fields.Copy() }
func (p *Product) Committed() ProductFields { return p.committed.Copy() }
func (p *Product) Changes() *ChangeTracker  { return p.changes }
func (p *Product) IsChanged() bool          { return p.changed }
func (p *Product) IsDeleted() bool          { return p.deleted }

// IsNew returns true if the product has never been committed to a source.
func (p *Product) IsNew() bool {
	return p.id == ""
}

// Flags returns the inputs of the row style.
func (p *Product) Flags() RowFlags {
	return RowFlags{
		Deleted: p.deleted,
		Created: p.IsNew(),
		Changed: p.changed,
	}
}

// AssignValues copies the edited values into the product and marks the
// modified fields dirty. It reports whether any value actually changed.
func (p *Product) AssignValues(fields ProductFields) (bool, error) {
	if err := fields.Validate(); err != nil {
		return false, err
	}
	if fields.UnitPrice == nil {
		fields.UnitPrice = ZeroMoney()
	}

	modified := false

	if fields.ProductName != p.fields.ProductName {
		p.fields.ProductName = fields.ProductName
		p.changes.MarkDirty(FieldProductName)
		modified = true
	}

	if !fields.UnitPrice.Equals(p.fields.UnitPrice) {
		p.fields.UnitPrice = fields.UnitPrice.Copy()
		p.changes.MarkDirty(FieldUnitPrice)
		modified = true
	}

	if fields.UnitsInStock != p.fields.UnitsInStock {
		p.fields.UnitsInStock = fields.UnitsInStock
		p.changes.MarkDirty(FieldUnitsInStock)
		modified = true
	}

	if fields.Discontinued != p.fields.Discontinued {
		p.fields.Discontinued = fields.Discontinued
		p.changes.MarkDirty(FieldDiscontinued)
		modified = true
	}

	return modified, nil
}

// MarkChanged flags the product as dirty since the last commit.
func (p *Product) MarkChanged() {
	p.changed = true
}

// MarkDeleted flags the product for removal on the next commit.
func (p *Product) MarkDeleted() {
	p.deleted = true
}

// Revert restores the committed field values and clears all transient state.
func (p *Product) Revert() {
	p.fields = p.committed.Copy()
	p.changed = false
	p.deleted = false
	p.changes.Clear()
}

// MarkCommitted records the current values as committed. A new product takes
// the identifier assigned by the commit.
func (p *Product) MarkCommitted(id string) {
	if p.id == "" {
		p.id = id
	}
	p.committed = p.fields.Copy()
	p.changed = false
	p.deleted = false
	p.changes.Clear()
}

// WithID returns a copy of the product carrying the given identifier.
func (p *Product) WithID(id string) *Product {
	c := p.Clone()
	c.id = id
	return c
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	return &Product{
		key:       p.key,
		id:        p.id,
		fields:    p.fields.Copy(),
		committed: p.committed.Copy(),
		changed:   p.changed,
		deleted:   p.deleted,
		changes:   p.changes.Copy(),
	}
}
