package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable non-negative monetary amount backed by a fixed-point
// decimal. All prices, discounts, and totals in the engine are Money values;
// subtraction clamps at zero so a discount can never drive a total negative.
//
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount))
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromInt creates a Money value from a whole number of currency units.
func NewMoneyFromInt(v int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(v))
}

// NewMoneyFromString parses a Money value from its decimal string form.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// SubFloor returns m − other, clamped at zero. This is the only subtraction
// the engine performs: a discount larger than the price yields a zero price,
// never a negative one.
func (m Money) SubFloor(other Money) Money {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}
	}
	return Money{amount: result}
}

// MulInt returns the amount multiplied by a whole quantity.
func (m Money) MulInt(q int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(q)))}
}

// DiscountPercent returns the amount reduced by the given percentage,
// i.e. m × (100 − percent) / 100. Percent is expected to be within [0, 100];
// values above 100 clamp to zero.
func (m Money) DiscountPercent(percent int) Money {
	if percent <= 0 {
		return m
	}
	if percent >= 100 {
		return Money{}
	}
	factor := decimal.NewFromInt(int64(100 - percent)).Div(decimal.NewFromInt(100))
	return Money{amount: m.amount.Mul(factor)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// Decimal returns the underlying decimal amount for persistence mapping.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the decimal string form of the amount.
func (m Money) String() string {
	return m.amount.String()
}
