package analysis

import (
	"math"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// Config holds edge detection settings
type Config struct {
	EVThreshold   float64 // Minimum EV per unit staked to flag a side (e.g., 0.03 = 3%)
	KellyFraction float64 // Fraction of Kelly to recommend (e.g., 0.25 = quarter Kelly)
	Bankroll      float64 // Dollars the Kelly stake is sized on, 0 = no dollar stake
	MaxBet        float64 // Cap on the dollar stake, 0 = no cap
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		EVThreshold:   0.03,
		KellyFraction: 0.25,
		Bankroll:      1000,
	}
}

// Edge compares the model's probability for one side with the best available price
type Edge struct {
	Side       string  `json:"side"` // "home" or "away"
	Sportsbook string  `json:"sportsbook"`
	Odds       int     `json:"odds"`
	ModelProb  float64 `json:"model_prob"`  // model probability after confidence shrinkage
	MarketProb float64 `json:"market_prob"` // implied by the price, vig included
	FairProb   float64 `json:"fair_prob"`   // vig-free consensus, 0 when unavailable
	FairOdds   int     `json:"fair_odds"`   // American price matching ModelProb
	EV         float64 `json:"ev"`          // expected profit per unit staked
	Kelly      float64 `json:"kelly"`       // recommended bankroll fraction
	Stake      float64 `json:"stake"`       // Kelly stake in dollars on cfg.Bankroll
	Value      bool    `json:"value"`
}

// ShrinkToward blends observed toward prior. weight 1 keeps observed, 0 returns prior.
func ShrinkToward(observed, prior, weight float64) float64 {
	weight = math.Max(0, math.Min(1, weight))
	return weight*observed + (1-weight)*prior
}

// CalculateEV calculates the expected profit per unit staked at American odds
// EV = p * (decimal - 1) - (1 - p)
func CalculateEV(trueProb float64, americanOdds int) float64 {
	dec := odds.AmericanToDecimal(americanOdds)
	if dec <= 1 || trueProb <= 0 || trueProb >= 1 {
		return 0
	}
	return trueProb*(dec-1) - (1 - trueProb)
}

// FindEdges scores both moneyline sides against the best prices.
// The model's home probability is shrunk toward the vig-free consensus by (1 - confidence)
// when a consensus exists. Sides without a quote are skipped.
func FindEdges(modelHome, confidence float64, best odds.BestPrices, consensus *odds.MoneylineConsensus, cfg Config) []Edge {
	if modelHome <= 0 || modelHome >= 1 {
		return nil
	}

	home := modelHome
	var fairHome, fairAway float64
	if consensus != nil {
		fairHome, fairAway = consensus.HomeTrueProb, consensus.AwayTrueProb
		home = ShrinkToward(modelHome, fairHome, confidence)
	}

	var edges []Edge
	if best.Home != nil {
		edges = append(edges, scoreSide("home", home, fairHome, *best.Home, cfg))
	}
	if best.Away != nil {
		edges = append(edges, scoreSide("away", 1-home, fairAway, *best.Away, cfg))
	}
	return edges
}

func scoreSide(side string, prob, fair float64, price odds.BestPrice, cfg Config) Edge {
	ev := CalculateEV(prob, price.Odds)
	fairOdds, _ := odds.ImpliedToAmerican(prob)
	return Edge{
		Side:       side,
		Sportsbook: price.Sportsbook,
		Odds:       price.Odds,
		ModelProb:  prob,
		MarketProb: odds.AmericanToImplied(price.Odds),
		FairProb:   fair,
		FairOdds:   fairOdds,
		EV:         ev,
		Kelly:      CalculateKellyDecimal(prob, odds.AmericanToDecimal(price.Odds), cfg.KellyFraction),
		Stake:      KellyStake(prob, price.Odds, cfg.KellyFraction, cfg.Bankroll, cfg.MaxBet),
		Value:      ev >= cfg.EVThreshold,
	}
}
