package format

import (
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/arbitrage"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// ArbitrageDisplay is the rounded, printable form of an arbitrage.Result
type ArbitrageDisplay struct {
	OddsA            string `json:"odds_a"`
	OddsB            string `json:"odds_b"`
	ImpliedA         string `json:"implied_a"`
	ImpliedB         string `json:"implied_b"`
	TotalImplied     string `json:"total_implied"`
	FairA            string `json:"fair_a"` // vig removed proportionally
	FairB            string `json:"fair_b"`
	Hold             string `json:"hold"` // negative when the prices cross
	ProfitMargin     string `json:"profit_margin"`
	StakeA           string `json:"stake_a"`
	StakeB           string `json:"stake_b"`
	PayoutA          string `json:"payout_a"`
	PayoutB          string `json:"payout_b"`
	GuaranteedProfit string `json:"guaranteed_profit"`
	Headline         string `json:"headline"`
}

// ArbitrageView rounds every monetary and probability field of r for display
func ArbitrageView(r arbitrage.Result) ArbitrageDisplay {
	fairA, fairB := odds.RemoveVigFromAmerican(r.OddsA, r.OddsB)
	d := ArbitrageDisplay{
		OddsA:            odds.FormatAmerican(r.OddsA),
		OddsB:            odds.FormatAmerican(r.OddsB),
		ImpliedA:         Percent(r.ImpliedA),
		ImpliedB:         Percent(r.ImpliedB),
		TotalImplied:     Percent(r.TotalImplied),
		FairA:            Percent(fairA),
		FairB:            Percent(fairB),
		Hold:             Percent(odds.Overround(r.OddsA, r.OddsB)),
		ProfitMargin:     Margin(r.ProfitMarginPct),
		StakeA:           Money(r.StakeA),
		StakeB:           Money(r.StakeB),
		PayoutA:          Money(r.PayoutA),
		PayoutB:          Money(r.PayoutB),
		GuaranteedProfit: Money(r.GuaranteedProfit),
	}
	if r.ArbitrageExists {
		d.Headline = "Arbitrage available: " + d.ProfitMargin + " guaranteed return"
	} else {
		d.Headline = "No arbitrage: combined implied probability " + d.TotalImplied
	}
	return d
}

// HedgeDisplay is the rounded form of an arbitrage.HedgePlan
type HedgeDisplay struct {
	HedgeStake   string `json:"hedge_stake"`
	TotalOutlay  string `json:"total_outlay"`
	Payout       string `json:"payout"`
	LockedProfit string `json:"locked_profit"`
	Summary      string `json:"summary"`
}

// HedgeView rounds a hedge plan for display
func HedgeView(p arbitrage.HedgePlan) HedgeDisplay {
	return HedgeDisplay{
		HedgeStake:   Money(p.HedgeStake),
		TotalOutlay:  Money(p.TotalOutlay),
		Payout:       Money(p.Payout),
		LockedProfit: Money(p.LockedProfit),
		Summary:      p.Describe(),
	}
}
