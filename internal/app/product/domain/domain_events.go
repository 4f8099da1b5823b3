package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ProductCreatedEvent is emitted when a commit inserts a new product.
type ProductCreatedEvent struct {
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	UnitPrice    string    `json:"unit_price"`
	UnitsInStock int64     `json:"units_in_stock"`
	Discontinued bool      `json:"discontinued"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e *ProductCreatedEvent) EventType() string {
	return "product.created"
}

func (e *ProductCreatedEvent) AggregateID() string {
	return e.ProductID
}

// ProductUpdatedEvent is emitted when a commit overwrites a product.
type ProductUpdatedEvent struct {
	ProductID     string    `json:"product_id"`
	ChangedFields []string  `json:"changed_fields"`
	ProductName   string    `json:"product_name"`
	UnitPrice     string    `json:"unit_price"`
	UnitsInStock  int64     `json:"units_in_stock"`
	Discontinued  bool      `json:"discontinued"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (e *ProductUpdatedEvent) EventType() string {
	return "product.updated"
}

func (e *ProductUpdatedEvent) AggregateID() string {
	return e.ProductID
}

// ProductDeletedEvent is emitted when a commit removes a product.
type ProductDeletedEvent struct {
	ProductID string    `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *ProductDeletedEvent) EventType() string {
	return "product.deleted"
}

func (e *ProductDeletedEvent) AggregateID() string {
	return e.ProductID
}

// NewCreatedEvent builds the creation event for a product that carries its new id.
func NewCreatedEvent(p *Product, now time.Time) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		ProductID:    p.ID(),
		ProductName:  p.ProductName(),
		UnitPrice:    p.UnitPrice().String(),
		UnitsInStock: p.UnitsInStock(),
		Discontinued: p.Discontinued(),
		CreatedAt:    now,
	}
}

// NewUpdatedEvent builds the update event for a changed product.
func NewUpdatedEvent(p *Product, now time.Time) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		ProductID:     p.ID(),
		ChangedFields: p.Changes().DirtyFields(),
		ProductName:   p.ProductName(),
		UnitPrice:     p.UnitPrice().String(),
		UnitsInStock:  p.UnitsInStock(),
		Discontinued:  p.Discontinued(),
		UpdatedAt:     now,
	}
}

// NewDeletedEvent builds the deletion event for a product.
func NewDeletedEvent(p *Product, now time.Time) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		ProductID: p.ID(),
		DeletedAt: now,
	}
}
