package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Money represents a unit price with exact decimal arithmetic using big.Rat.
// It stores the value as a rational number (numerator/denominator) so that
// grid input like "18.20" round-trips without floating-point drift.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(1820, 100) represents 18.20
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator <= 0 {
		return nil, fmt.Errorf("denominator must be positive, got %d", denominator)
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// ParseMoney parses a decimal string such as "18.2" or "1820/100".
// An empty string yields a zero price.
func ParseMoney(s string) (*Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZeroMoney(), nil
	}

	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal value %q", s)
	}
	return &Money{rat: rat}, nil
}

// ZeroMoney returns a zero price.
func ZeroMoney() *Money {
	return &Money{rat: new(big.Rat)}
}

// Numerator returns the numerator of the normalized rational number.
func (m *Money) Numerator() int64 {
	return m.rat.Num().Int64()
}

// Denominator returns the denominator of the normalized rational number.
func (m *Money) Denominator() int64 {
	return m.rat.Denom().Int64()
}

// IsSafeForStorage reports whether numerator and denominator fit the int64
// columns used by the products table.
func (m *Money) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}

// HasAtMostCents reports whether the value needs no more than two decimal places.
func (m *Money) HasAtMostCents() bool {
	return new(big.Rat).Mul(m.rat, big.NewRat(100, 1)).IsInt()
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// Cmp compares two values and returns -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.rat.Cmp(other.rat)
}

// Equals returns true if this Money value equals another.
// Two nil values are equal.
func (m *Money) Equals(other *Money) bool {
	if m == nil || other == nil {
		return m == nil && other == nil
	}
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display and filtering only).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns the value with two decimal places.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	if m == nil {
		return nil
	}
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
