package model

import (
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact fractional amount in a single currency. The denominator
// is always a positive power of ten matching the currency's minor unit
// (100 for USD, 1 for JPY). Money is immutable; every operation returns a
// new value. The only lossy step is rendering via StringFixed.
type Money struct {
	num      int64
	denom    int64
	currency string
}

// MinorUnitDigits returns the number of minor-unit decimal digits for a
// currency code. Unknown codes fall back to 2.
func MinorUnitDigits(currency string) int32 {
	if c := gomoney.GetCurrency(currency); c != nil {
		return int32(c.Fraction)
	}
	return 2
}

func pow10(digits int32) int64 {
	n := int64(1)
	for i := int32(0); i < digits; i++ {
		n *= 10
	}
	return n
}

// tenExp returns e such that denom == 10^e, or false if denom is not a
// positive power of ten.
func tenExp(denom int64) (int32, bool) {
	if denom <= 0 {
		return 0, false
	}
	var e int32
	for denom > 1 {
		if denom%10 != 0 {
			return 0, false
		}
		denom /= 10
		e++
	}
	return e, true
}

// NewMoney builds a Money from a numerator/denominator pair. The
// denominator must be a positive power of ten.
func NewMoney(num, denom int64, currency string) (Money, error) {
	if _, ok := tenExp(denom); !ok {
		return Money{}, fmt.Errorf("money denominator %d is not a positive power of ten", denom)
	}
	return Money{num: num, denom: denom, currency: currency}, nil
}

// MoneyFromMinorUnits builds a Money from a count of the currency's minor
// units (e.g. cents for USD).
func MoneyFromMinorUnits(n int64, currency string) Money {
	return Money{num: n, denom: pow10(MinorUnitDigits(currency)), currency: currency}
}

// ZeroMoney returns the zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return MoneyFromMinorUnits(0, currency)
}

// ParseMoney parses a decimal string like "123.45" into an exact Money.
// It rejects input carrying more precision than the currency's minor unit.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	digits := MinorUnitDigits(currency)
	scaled := d.Shift(digits)
	if !scaled.IsInteger() {
		return Money{}, fmt.Errorf("amount %q has more precision than %s allows", s, currency)
	}
	return Money{num: scaled.IntPart(), denom: pow10(digits), currency: currency}, nil
}

func (m Money) Numerator() int64   { return m.num }
func (m Money) Denominator() int64 { return m.denom }
func (m Money) Currency() string   { return m.currency }

// Add returns m + n. Both operands must share a currency.
func (m Money) Add(n Money) (Money, error) {
	if m.currency != n.currency {
		return Money{}, fmt.Errorf("add %s to %s: %w", n.currency, m.currency, ErrCurrencyMismatch)
	}
	// Denominators are powers of ten, so the LCM is the larger one.
	denom := m.denom
	if n.denom > denom {
		denom = n.denom
	}
	num := m.num*(denom/m.denom) + n.num*(denom/n.denom)
	return Money{num: num, denom: denom, currency: m.currency}, nil
}

// Sub returns m - n. Both operands must share a currency.
func (m Money) Sub(n Money) (Money, error) {
	return m.Add(n.Neg())
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{num: -m.num, denom: m.denom, currency: m.currency}
}

// Scale returns m multiplied by an integer factor.
func (m Money) Scale(k int64) Money {
	return Money{num: m.num * k, denom: m.denom, currency: m.currency}
}

// Cmp compares two amounts of the same currency. It returns -1, 0 or +1.
func (m Money) Cmp(n Money) (int, error) {
	if m.currency != n.currency {
		return 0, fmt.Errorf("compare %s with %s: %w", m.currency, n.currency, ErrCurrencyMismatch)
	}
	l, r := m.num*n.denom, n.num*m.denom
	switch {
	case l < r:
		return -1, nil
	case l > r:
		return 1, nil
	}
	return 0, nil
}

// Equal reports whether two amounts are numerically equal and share a
// currency.
func (m Money) Equal(n Money) bool {
	if m.currency != n.currency {
		return false
	}
	c, _ := m.Cmp(n)
	return c == 0
}

func (m Money) IsZero() bool { return m.num == 0 }

func (m Money) Sign() int {
	switch {
	case m.num < 0:
		return -1
	case m.num > 0:
		return 1
	}
	return 0
}

// Decimal returns the exact decimal value of m.
func (m Money) Decimal() decimal.Decimal {
	e, _ := tenExp(m.denom)
	return decimal.New(m.num, -e)
}

// StringFixed renders m with the given number of decimal places, rounding
// halves away from zero. This is the single lossy step.
func (m Money) StringFixed(places int32) string {
	return m.Decimal().StringFixed(places)
}

// String renders m at its currency's minor-unit precision, followed by the
// currency code.
func (m Money) String() string {
	return m.StringFixed(MinorUnitDigits(m.currency)) + " " + m.currency
}

// FractionToDecimal converts a stored numerator/denominator pair to an
// exact decimal. Denominators are expected to be powers of ten; anything
// else falls back to decimal division.
func FractionToDecimal(num, denom int64) decimal.Decimal {
	if e, ok := tenExp(denom); ok {
		return decimal.New(num, -e)
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(denom))
}
