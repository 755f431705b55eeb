package domain

import (
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Money is a monetary amount stored as an integer count of 1/10,000ths of a
// currency unit. Balances never touch binary floating point: repeated
// additions and subtractions stay exact.
type Money int64

// moneyScale is the number of decimal digits carried by Money.
const moneyScale = 4

var scaleFactor = decimal.New(1, moneyScale)

var (
	ErrNegativeAmount = errors.New("negative amount")
	ErrAmountTooLarge = errors.New("amount too large")
)

// ParseMoney converts decimal text like "1.5" or ".1111" into Money,
// rounding half away from zero at the fourth decimal digit.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parse amount %q", s)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(ErrNegativeAmount, "amount %q", s)
	}

	scaled := d.Mul(scaleFactor).Round(0)
	if scaled.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 {
		return 0, errors.Wrapf(ErrAmountTooLarge, "amount %q", s)
	}

	return Money(scaled.IntPart()), nil
}

// String renders the exact decimal value, trailing zeros trimmed,
// so 20000 prints as "2" and 15000 as "1.5".
func (m Money) String() string {
	return decimal.New(int64(m), -moneyScale).String()
}
