package entity

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is a quantity of an asset in whole base units.
type Amount uint64

// ParseAmount parses a decimal string into base units. Negative values,
// fractional base units and values past the uint64 range are rejected. Zero
// parses successfully; operations that forbid it reject it themselves.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative value %s", ErrInvalidAmount, s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: fractional base units in %s", ErrInvalidAmount, s)
	}
	bi := d.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: value %s out of range", ErrInvalidAmount, s)
	}
	return Amount(bi.Uint64()), nil
}

// String renders the amount as the decimal string used on the wire.
func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
