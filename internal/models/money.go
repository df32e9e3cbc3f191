package models

import (
	"github.com/shopspring/decimal"
)

// Money is a monetary amount that is written to JSON as a number literal with
// exactly two fractional digits, straight from the decimal value.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal amount
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON writes the amount as a bare JSON number, e.g. 1199.10
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// Rate is an annual percentage rate, written to JSON as a bare number with
// the precision it was given.
type Rate struct {
	decimal.Decimal
}

// NewRate wraps a decimal rate
func NewRate(d decimal.Decimal) Rate {
	return Rate{Decimal: d}
}

// MarshalJSON writes the rate as a bare JSON number, e.g. 5.5
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string
func (r *Rate) UnmarshalJSON(data []byte) error {
	return r.Decimal.UnmarshalJSON(data)
}
