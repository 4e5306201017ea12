// Package arbitrage computes stake splits across the two sides of a market and
// reports whether the split guarantees a profit.
//
// All functions are pure: they allocate only local state, never round, and are
// safe to call from any number of goroutines.
package arbitrage

import (
	"math"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/mathutil"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// Result is the full breakdown of a two-sided stake split.
// Stakes are always populated; ArbitrageExists says whether the split is risk free.
type Result struct {
	TotalStake       float64 `json:"total_stake"`
	OddsA            int     `json:"odds_a"`
	OddsB            int     `json:"odds_b"`
	DecimalA         float64 `json:"decimal_a"`
	DecimalB         float64 `json:"decimal_b"`
	ImpliedA         float64 `json:"implied_a"`
	ImpliedB         float64 `json:"implied_b"`
	TotalImplied     float64 `json:"total_implied"`
	ArbitrageExists  bool    `json:"arbitrage_exists"`
	ProfitMarginPct  float64 `json:"profit_margin_pct"`
	StakeA           float64 `json:"stake_a"`
	StakeB           float64 `json:"stake_b"`
	PayoutA          float64 `json:"payout_a"`
	PayoutB          float64 `json:"payout_b"`
	GuaranteedProfit float64 `json:"guaranteed_profit"`
}

// Compute splits totalStake across two American prices in proportion to their implied
// probabilities. Arbitrage exists only when the implied probabilities sum to strictly less
// than 1; at exactly 1 the split breaks even and is not reported as an opportunity.
func Compute(totalStake float64, oddsA, oddsB int) (Result, error) {
	if err := validateStake("total_stake", totalStake); err != nil {
		return Result{}, err
	}
	if err := validateOdds("odds_a", oddsA); err != nil {
		return Result{}, err
	}
	if err := validateOdds("odds_b", oddsB); err != nil {
		return Result{}, err
	}

	decA := odds.AmericanToDecimal(oddsA)
	decB := odds.AmericanToDecimal(oddsB)
	impliedA := 1 / decA
	impliedB := 1 / decB
	totalImplied := impliedA + impliedB

	r := Result{
		TotalStake:      totalStake,
		OddsA:           oddsA,
		OddsB:           oddsB,
		DecimalA:        decA,
		DecimalB:        decB,
		ImpliedA:        impliedA,
		ImpliedB:        impliedB,
		TotalImplied:    totalImplied,
		ArbitrageExists: totalImplied < 1.0,
	}
	if r.ArbitrageExists {
		r.ProfitMarginPct = (1/totalImplied - 1) * 100
	}

	// The split is shown whether or not it is risk free.
	r.StakeA = totalStake * (impliedA / totalImplied)
	r.StakeB = totalStake * (impliedB / totalImplied)
	r.PayoutA = r.StakeA * decA
	r.PayoutB = r.StakeB * decB
	r.GuaranteedProfit = math.Min(r.PayoutA, r.PayoutB) - totalStake

	return r, nil
}

func validateStake(field string, stake float64) error {
	if !mathutil.IsFinite(stake) {
		return &InputError{Field: field, Value: stake, Reason: "must be a finite number"}
	}
	if stake <= 0 {
		return &InputError{Field: field, Value: stake, Reason: "must be positive"}
	}
	return nil
}

func validateOdds(field string, american int) error {
	if err := odds.ValidateAmerican(american); err != nil {
		return &InputError{Field: field, Value: float64(american), Reason: err.Error()}
	}
	return nil
}
