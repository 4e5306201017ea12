package positions

import (
	"fmt"
	"strings"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/arbitrage"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// Hedge actions
const (
	ActionLock   = "lock"   // hedging guarantees a profit
	ActionReduce = "reduce" // hedging only caps the loss
)

// HedgeOpportunity represents an opportunity to hedge an existing bet
type HedgeOpportunity struct {
	Bet         Bet                 `json:"bet"`
	QuoteOdds   int                 `json:"quote_odds"` // current price on the opposite side
	Plan        arbitrage.HedgePlan `json:"plan"`
	Action      string              `json:"action"`
	Description string              `json:"description"`
}

// FindHedges prices a hedge for every bet whose matchup has an opposing quote.
// quotes maps matchup to the current American odds on the other side of that bet.
// Bets with an unusable quote are skipped.
func FindHedges(bets []Bet, quotes map[string]int) []HedgeOpportunity {
	opportunities := []HedgeOpportunity{}

	normalized := make(map[string]int, len(quotes))
	for k, v := range quotes {
		normalized[matchupKey(k)] = v
	}

	for _, bet := range bets {
		quote, ok := normalized[matchupKey(bet.Matchup)]
		if !ok {
			continue
		}

		opp, err := checkHedge(bet, quote)
		if err != nil {
			continue
		}
		opportunities = append(opportunities, opp)
	}

	return opportunities
}

func checkHedge(bet Bet, quote int) (HedgeOpportunity, error) {
	plan, err := arbitrage.Hedge(bet.Stake, bet.Odds, quote)
	if err != nil {
		return HedgeOpportunity{}, err
	}

	action := ActionReduce
	if plan.Locked {
		action = ActionLock
	}

	return HedgeOpportunity{
		Bet:       bet,
		QuoteOdds: quote,
		Plan:      plan,
		Action:    action,
		Description: fmt.Sprintf("%s (%s %s): %s",
			bet.Matchup, bet.Team, odds.FormatAmerican(bet.Odds), plan.Describe()),
	}, nil
}

func matchupKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
