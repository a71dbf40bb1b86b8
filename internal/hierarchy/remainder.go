package hierarchy

import (
	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/model"
)

// Hundred is the whole of an allocation, in percent.
var Hundred = decimal.NewFromInt(100)

// Sum returns the total percentage of allocs, resolved or not.
func Sum(allocs []model.Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Percentage)
	}
	return total
}

// Remainder returns the unallocated share, max(0, 100 - Σ percentage).
// Over-allocation clamps to zero.
func Remainder(allocs []model.Allocation) decimal.Decimal {
	rest := Hundred.Sub(Sum(allocs))
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
