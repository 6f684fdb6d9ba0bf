package utils

import (
	"fmt"
	"math"
)

// Round rounds a number to 2 decimal places for monetary calculations.
// Rounding mode is half away from zero (math.Round).
func Round(num float64) float64 {
	return math.Round(num*MoneyPrecision) / MoneyPrecision
}

// Round4 rounds to 4 decimal places, used for back-derived surcharge rates.
func Round4(num float64) float64 {
	return math.Round(num*RatePrecision) / RatePrecision
}

// ToCents converts a currency amount to integer cents.
func ToCents(amount float64) int {
	return int(math.Round(amount * MoneyPrecision))
}

// FromCents converts integer cents back to a currency amount.
func FromCents(cents int) float64 {
	return float64(cents) / MoneyPrecision
}

// DistributeCents splits totalCents across n recipients so that the
// results sum to totalCents exactly and differ by at most one cent.
// The first |remainder| recipients carry the extra cent; for negative
// totals the extra cent is negative. The split is deterministic and
// order-dependent.
func DistributeCents(totalCents int, n int) ([]int, error) {
	if n <= 0 {
		return nil, NewValidationError(fmt.Sprintf("cannot distribute cents across %d recipients", n))
	}

	base := totalCents / n
	rem := totalCents % n

	extra := 0
	if rem > 0 {
		extra = 1
	} else if rem < 0 {
		extra = -1
		rem = -rem
	}

	result := make([]int, n)
	for i := range result {
		result[i] = base
		if i < rem {
			result[i] += extra
		}
	}
	return result, nil
}
