package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound     = errors.New("product not found")
	ErrEmptyName           = errors.New("product name cannot be empty")
	ErrInvalidPrice        = errors.New("unit price cannot be negative")
	ErrInvalidUnitsInStock = errors.New("units in stock must be between 0 and 999")
	ErrMoneyOverflow       = errors.New("money value exceeds storage capacity")

	// Change tracking errors
	ErrInvalidReference = errors.New("product is not part of the working set")
	ErrProductDeleted   = errors.New("product is marked for deletion")
	ErrCommitFailed     = errors.New("commit failed")

	// Source errors
	ErrSourceConflict = errors.New("source rejected the change batch")
)
