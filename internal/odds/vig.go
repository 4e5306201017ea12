package odds

import "math"

// Overround returns the book's hold on a two-way market: total implied probability minus 1.
// -110/-110 → 0.0476. Negative values mean the two prices together are an arbitrage.
func Overround(oddsA, oddsB int) float64 {
	if oddsA == 0 || oddsB == 0 {
		return 0
	}
	return AmericanToImplied(oddsA) + AmericanToImplied(oddsB) - 1.0
}

// RemoveVig removes the vig from a two-way market proportionally.
// trueProbA = impliedA / (impliedA + impliedB)
func RemoveVig(impliedA, impliedB float64) (float64, float64) {
	if impliedA <= 0 || impliedB <= 0 {
		return 0, 0
	}

	total := impliedA + impliedB
	return impliedA / total, impliedB / total
}

// RemoveVigFromAmerican converts American odds to vig-free probabilities
func RemoveVigFromAmerican(oddsA, oddsB int) (float64, float64) {
	return RemoveVig(AmericanToImplied(oddsA), AmericanToImplied(oddsB))
}

// RemoveVigPower removes vig using the power method.
// Finds k such that p1^k + p2^k = 1. Longshots are deflated more than favorites,
// which matches the favorite-longshot bias in college lines.
func RemoveVigPower(impliedA, impliedB float64) (float64, float64) {
	if impliedA <= 0 || impliedB <= 0 || impliedA >= 1 || impliedB >= 1 {
		return RemoveVig(impliedA, impliedB)
	}

	if math.Abs(impliedA+impliedB-1.0) < 1e-9 {
		return impliedA, impliedB
	}

	k := findPowerExponent(impliedA, impliedB)
	return math.Pow(impliedA, k), math.Pow(impliedB, k)
}

// findPowerExponent bisects for k in [0.01, 10] with p1^k + p2^k = 1
func findPowerExponent(p1, p2 float64) float64 {
	const (
		tolerance = 1e-9
		maxIters  = 100
	)

	low, high := 0.01, 10.0
	for i := 0; i < maxIters; i++ {
		mid := (low + high) / 2
		sum := math.Pow(p1, mid) + math.Pow(p2, mid)

		if math.Abs(sum-1.0) < tolerance {
			return mid
		}
		// higher k shrinks both terms
		if sum > 1 {
			low = mid
		} else {
			high = mid
		}
	}

	return (low + high) / 2
}

// RemoveVigPowerFromAmerican converts American odds to vig-free probabilities using the power method
func RemoveVigPowerFromAmerican(oddsA, oddsB int) (float64, float64) {
	return RemoveVigPower(AmericanToImplied(oddsA), AmericanToImplied(oddsB))
}
