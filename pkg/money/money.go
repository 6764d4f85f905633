package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrDivisionByZero = errors.New("division by zero")

var hundred = decimal.NewFromInt(100)

// Money is an exact decimal amount. The zero value is exactly 0.
type Money struct {
	amount decimal.Decimal
}

func Zero() Money {
	return Money{}
}

func New(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

func FromInt(units int64) Money {
	return Money{amount: decimal.NewFromInt(units)}
}

// Parse reads a plain decimal string such as "12.50".
func Parse(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return Money{amount: d}, nil
}

// MustParse is Parse for constants and tests.
func MustParse(value string) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return m
}

func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, m := range amounts {
		total = total.Add(m.amount)
	}
	return Money{amount: total}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal compares numerically, so 10 equals 10.00.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Percentage returns m as a percentage of of, rounded half-up to 4 fractional digits.
func (m Money) Percentage(of Money) (decimal.Decimal, error) {
	if of.amount.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	return m.amount.Mul(hundred).DivRound(of.amount, 4), nil
}

func (m Money) String() string {
	return m.amount.String()
}

// StringFixed renders the amount with exactly places fractional digits.
func (m Money) StringFixed(places int32) string {
	return m.amount.StringFixed(places)
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON accepts both 12.5 and "12.5".
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = d
	return nil
}
