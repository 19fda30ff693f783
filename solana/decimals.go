package solana

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ApplyDecimals converts a UI amount to base units. Digits past decimals are
// truncated.
func ApplyDecimals(amount decimal.Decimal, decimals uint8) (uint64, error) {
	v := amount.Shift(int32(decimals)).Truncate(0)
	if v.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", amount)
	}
	n := v.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("amount %s overflows u64 with %d decimals", amount, decimals)
	}
	return n.Uint64(), nil
}

func UnapplyDecimals(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals))
}

// ParseAmount reads a UI amount such as "1.5" and returns it in base units.
func ParseAmount(amount string, decimals uint8) (uint64, error) {
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return ApplyDecimals(v, decimals)
}
