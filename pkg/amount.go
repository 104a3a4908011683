package pkg

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// ParseAmount parses a base 10 integer amount of asset units.
func ParseAmount(amount string) (sdkmath.Int, error) {
	v, ok := sdkmath.NewIntFromString(amount)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid amount %q", amount)
	}
	return v, nil
}

// AmountToFloat64 is lossy above 2^53 and only meant for metrics.
func AmountToFloat64(amount sdkmath.Int) float64 {
	if amount.IsNil() {
		return 0
	}

	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
