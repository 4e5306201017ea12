package arbitrage

import (
	"fmt"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// HedgePlan is the opposite-side bet that equalizes payouts on an existing wager.
type HedgePlan struct {
	ExistingStake float64 `json:"existing_stake"`
	ExistingOdds  int     `json:"existing_odds"`
	HedgeOdds     int     `json:"hedge_odds"`
	HedgeStake    float64 `json:"hedge_stake"`
	TotalOutlay   float64 `json:"total_outlay"`
	Payout        float64 `json:"payout"`
	LockedProfit  float64 `json:"locked_profit"` // negative when the hedge only limits a loss
	Locked        bool    `json:"locked"`
}

// Hedge sizes the bet on the other side so both outcomes pay the same.
// hedgeStake = existingStake * decimal(existing) / decimal(hedge)
func Hedge(existingStake float64, existingOdds, hedgeOdds int) (HedgePlan, error) {
	if err := validateStake("existing_stake", existingStake); err != nil {
		return HedgePlan{}, err
	}
	if err := validateOdds("existing_odds", existingOdds); err != nil {
		return HedgePlan{}, err
	}
	if err := validateOdds("hedge_odds", hedgeOdds); err != nil {
		return HedgePlan{}, err
	}

	decExisting := odds.AmericanToDecimal(existingOdds)
	decHedge := odds.AmericanToDecimal(hedgeOdds)

	payout := existingStake * decExisting
	hedgeStake := payout / decHedge
	outlay := existingStake + hedgeStake
	profit := payout - outlay

	return HedgePlan{
		ExistingStake: existingStake,
		ExistingOdds:  existingOdds,
		HedgeOdds:     hedgeOdds,
		HedgeStake:    hedgeStake,
		TotalOutlay:   outlay,
		Payout:        payout,
		LockedProfit:  profit,
		Locked:        profit > 0,
	}, nil
}

// Describe renders the plan as a one-line summary for alerts and CLI output
func (p HedgePlan) Describe() string {
	verb := "LIMIT LOSS"
	if p.Locked {
		verb = "LOCK"
	}
	return fmt.Sprintf("%s: bet $%.2f at %s against $%.2f at %s. Payout $%.2f either way, net $%.2f",
		verb, p.HedgeStake, odds.FormatAmerican(p.HedgeOdds),
		p.ExistingStake, odds.FormatAmerican(p.ExistingOdds), p.Payout, p.LockedProfit)
}
