package analysis

import (
	"math"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// CalculateKellyDecimal computes the Kelly criterion bankroll fraction for decimal odds
// f* = (p * d - 1) / (d - 1), floored at 0, capped at 1, then scaled by fraction
func CalculateKellyDecimal(trueProb, decimalOdds, fraction float64) float64 {
	if decimalOdds <= 1 || trueProb <= 0 || trueProb >= 1 {
		return 0
	}

	kelly := (trueProb*decimalOdds - 1) / (decimalOdds - 1)
	kelly = math.Max(0, kelly)
	kelly = math.Min(kelly, 1.0)

	return kelly * fraction
}

// CalculateKelly computes the Kelly fraction for American odds
func CalculateKelly(trueProb float64, americanOdds int, fraction float64) float64 {
	return CalculateKellyDecimal(trueProb, odds.AmericanToDecimal(americanOdds), fraction)
}

// KellyStake returns the dollar amount to bet given a bankroll.
// maxBet caps the result when positive (0 = no cap).
func KellyStake(trueProb float64, americanOdds int, fraction, bankroll, maxBet float64) float64 {
	pct := CalculateKelly(trueProb, americanOdds, fraction)
	if pct <= 0 || bankroll <= 0 {
		return 0
	}

	stake := bankroll * pct
	if maxBet > 0 && stake > maxBet {
		stake = maxBet
	}
	return stake
}
