// Package redistribute rescales a column of booth-level counts so the
// column sums exactly to an authoritative total while distorting the
// original distribution as little as integer arithmetic allows. The
// method is floor-proportional allocation with largest-remainder
// rounding; all intermediate arithmetic is exact decimal, so two runs
// on the same input always produce the same output and no float ever
// reaches a result.
package redistribute

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Column corrects one column's per-row values so they sum exactly to
// target. The input slice is never mutated. Returns the corrected
// values and the number of rows whose value changed.
//
// The caller guarantees target >= 0 and values[i] >= 0; the
// orchestrator validates both before any column reaches here.
//
// Rules, in order:
//   - target == 0 forces every row to 0.
//   - rawSum == target is a no-op.
//   - rawSum == 0 falls back to uniform 1/N proportions.
//   - otherwise each row keeps its raw proportion of the target,
//     floored, and the leftover units go one each to the rows with the
//     largest fractional remainders, earliest row first on ties.
func Column(values []int64, target int64) ([]int64, int) {
	corrected := make([]int64, len(values))
	if len(values) == 0 {
		return corrected, 0
	}

	if target == 0 {
		return corrected, countChanged(values, corrected)
	}

	rawSum := sum(values)
	if rawSum == target {
		copy(corrected, values)
		return corrected, 0
	}

	// Proportion source: the raw values themselves, or uniform weights
	// when the whole column is zero.
	weights := values
	weightSum := rawSum
	if rawSum == 0 {
		weights = make([]int64, len(values))
		for i := range weights {
			weights[i] = 1
		}
		weightSum = int64(len(values))
	}

	remainders := allocate(corrected, weights, weightSum, target)
	distribute(corrected, remainders, target)
	return corrected, countChanged(values, corrected)
}

// rowRemainder pairs a row with the fractional remainder of its floor
// allocation.
type rowRemainder struct {
	row      int
	fraction decimal.Decimal
}

// allocate writes floor(target * weight/weightSum) per row and returns
// the fractional remainders. QuoRem at precision 0 gives the exact
// integer quotient and remainder of the rational target*weight /
// weightSum, so the floor is exact with no float involved.
func allocate(corrected, weights []int64, weightSum, target int64) []rowRemainder {
	den := decimal.NewFromInt(weightSum)
	scale := decimal.NewFromInt(target)
	remainders := make([]rowRemainder, len(weights))
	for i, w := range weights {
		quotient, remainder := scale.Mul(decimal.NewFromInt(w)).QuoRem(den, 0)
		corrected[i] = quotient.IntPart()
		remainders[i] = rowRemainder{row: i, fraction: remainder}
	}
	return remainders
}

// distribute hands out the leftover units after flooring. Flooring
// leaves a non-negative leftover smaller than the row count; the
// negative branch handles an allocation that overshoots.
func distribute(corrected []int64, remainders []rowRemainder, target int64) {
	leftover := target - sum(corrected)
	if leftover == 0 {
		return
	}

	if leftover > 0 {
		// Largest fractional remainder first; stable sort keeps row
		// order on ties.
		sort.SliceStable(remainders, func(i, j int) bool {
			return remainders[i].fraction.GreaterThan(remainders[j].fraction)
		})
		for i := 0; leftover > 0 && i < len(remainders); i++ {
			corrected[remainders[i].row]++
			leftover--
		}
		return
	}

	// Overshoot: take single units back from the smallest remainders,
	// never sending a row below zero.
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].fraction.LessThan(remainders[j].fraction)
	})
	for leftover < 0 {
		taken := false
		for i := 0; leftover < 0 && i < len(remainders); i++ {
			if corrected[remainders[i].row] > 0 {
				corrected[remainders[i].row]--
				leftover++
				taken = true
			}
		}
		if !taken {
			// Every row is zero; nothing left to take. Unreachable for
			// target >= 0.
			return
		}
	}
}

func sum(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}

func countChanged(before, after []int64) int {
	changed := 0
	for i := range before {
		if before[i] != after[i] {
			changed++
		}
	}
	return changed
}
