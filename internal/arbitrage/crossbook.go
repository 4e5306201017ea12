package arbitrage

import (
	"fmt"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// Opportunity is a risk-free split across the best prices of two different books
type Opportunity struct {
	HomeBook    string `json:"home_book"`
	AwayBook    string `json:"away_book"`
	Result      Result `json:"result"`
	Description string `json:"description"`
}

// FindCrossBook takes the best moneyline per side across books and checks whether
// staking both guarantees a profit. Returns nil when a side is unquoted or no arbitrage exists.
func FindCrossBook(totalStake float64, lines []odds.BookLine) (*Opportunity, error) {
	best := odds.BestMoneylines(lines)
	if best.Home == nil || best.Away == nil {
		return nil, nil
	}

	r, err := Compute(totalStake, best.Home.Odds, best.Away.Odds)
	if err != nil {
		return nil, fmt.Errorf("computing cross-book split: %w", err)
	}
	if !r.ArbitrageExists {
		return nil, nil
	}

	return &Opportunity{
		HomeBook: best.Home.Sportsbook,
		AwayBook: best.Away.Sportsbook,
		Result:   r,
		Description: fmt.Sprintf(
			"ARB: Home %s@%s $%.2f + Away %s@%s $%.2f. Margin=%.2f%%. Guaranteed profit=$%.2f",
			odds.FormatAmerican(r.OddsA), best.Home.Sportsbook, r.StakeA,
			odds.FormatAmerican(r.OddsB), best.Away.Sportsbook, r.StakeB,
			r.ProfitMarginPct, r.GuaranteedProfit,
		),
	}, nil
}
