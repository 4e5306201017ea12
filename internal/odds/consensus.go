package odds

import (
	"strings"
	"time"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/mathutil"
)

const (
	// CFBSpreadStdDev is the standard deviation of college football margin vs spread.
	// College margins are wider than the NFL's ~13.5 because of mismatched rosters.
	CFBSpreadStdDev = 15.5

	// CFBTotalStdDev is the standard deviation of college football totals vs the posted line
	CFBTotalStdDev = 16.0
)

// MarketType represents the type of betting market
type MarketType string

const (
	MarketMoneyline MarketType = "moneyline"
	MarketSpread    MarketType = "spread"
	MarketTotal     MarketType = "total"
)

// BookLine is one sportsbook's quotes for a matchup. Zero odds mean the market is not offered.
type BookLine struct {
	Sportsbook     string  `json:"sportsbook"`
	HomeMoneyline  int     `json:"home_moneyline,omitempty"`
	AwayMoneyline  int     `json:"away_moneyline,omitempty"`
	HomeSpread     float64 `json:"spread,omitempty"`
	HomeSpreadOdds int     `json:"spread_home_odds,omitempty"`
	AwaySpreadOdds int     `json:"spread_away_odds,omitempty"`
	Total          float64 `json:"total,omitempty"`
	OverOdds       int     `json:"over_odds,omitempty"`
	UnderOdds      int     `json:"under_odds,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// HasMoneyline reports whether both moneyline sides are quoted
func (l BookLine) HasMoneyline() bool {
	return l.HomeMoneyline != 0 && l.AwayMoneyline != 0
}

// HasSpread reports whether both spread sides are quoted
func (l BookLine) HasSpread() bool {
	return l.HomeSpreadOdds != 0 && l.AwaySpreadOdds != 0
}

// HasTotal reports whether both total sides are quoted
func (l BookLine) HasTotal() bool {
	return l.OverOdds != 0 && l.UnderOdds != 0 && l.Total > 0
}

// Consensus holds vig-free probabilities for a matchup averaged across books
type Consensus struct {
	Moneyline *MoneylineConsensus `json:"moneyline,omitempty"`
	Spread    *SpreadConsensus    `json:"spread,omitempty"`
	Total     *TotalConsensus     `json:"total,omitempty"`
}

// MoneylineConsensus holds consensus probabilities for moneyline
type MoneylineConsensus struct {
	HomeTrueProb float64 `json:"home_true_prob"`
	AwayTrueProb float64 `json:"away_true_prob"`
	Hold         float64 `json:"hold"` // weighted average overround of the books used
	BookCount    int     `json:"book_count"`
}

// SpreadConsensus holds consensus cover probabilities at the reference line
type SpreadConsensus struct {
	HomeSpread    float64 `json:"home_spread"`
	HomeCoverProb float64 `json:"home_cover_prob"`
	AwayCoverProb float64 `json:"away_cover_prob"`
	BookCount     int     `json:"book_count"`
}

// TotalConsensus holds consensus over/under probabilities at the reference line
type TotalConsensus struct {
	Line      float64 `json:"line"`
	OverProb  float64 `json:"over_prob"`
	UnderProb float64 `json:"under_prob"`
	BookCount int     `json:"book_count"`
}

// bookWeights favors books that move first on college lines. Unlisted books weigh 1.0.
var bookWeights = map[string]float64{
	"pinnacle":   1.5,
	"circa":      1.4,
	"draftkings": 1.2,
	"fanduel":    1.2,
	"bovada":     0.8,
	"mybookie":   0.6,
}

// BookWeight returns the consensus weight for a sportsbook name
func BookWeight(name string) float64 {
	if w, ok := bookWeights[strings.ToLower(strings.TrimSpace(name))]; ok {
		return w
	}
	return 1.0
}

// weightedProb holds a probability pair with its consensus weight
type weightedProb struct {
	a, b   float64
	weight float64
}

// isLineFresh checks if a book's quotes are within the staleness threshold.
// Unparseable or missing timestamps count as fresh.
func isLineFresh(line BookLine, maxAgeSec int, now time.Time) bool {
	if maxAgeSec <= 0 || line.UpdatedAt == "" {
		return true
	}
	t, err := time.Parse(time.RFC3339, line.UpdatedAt)
	if err != nil {
		return true
	}
	return now.Sub(t) <= time.Duration(maxAgeSec)*time.Second
}

// CalculateConsensus computes consensus true probabilities from multiple books.
// Spread and total probabilities are normalized to the reference line, the line quoted
// by the most books (earliest book wins ties).
func CalculateConsensus(lines []BookLine, maxOddsAgeSec ...int) Consensus {
	maxAge := 0
	if len(maxOddsAgeSec) > 0 {
		maxAge = maxOddsAgeSec[0]
	}
	now := time.Now()

	var fresh []BookLine
	for _, l := range lines {
		if isLineFresh(l, maxAge, now) {
			fresh = append(fresh, l)
		}
	}

	var consensus Consensus
	var mlProbs, spreadProbs, totalProbs []weightedProb
	var holdSum float64

	spreadLine, hasSpreadLine := referenceLine(fresh, func(l BookLine) (float64, bool) {
		return l.HomeSpread, l.HasSpread()
	})
	totalLine, hasTotalLine := referenceLine(fresh, func(l BookLine) (float64, bool) {
		return l.Total, l.HasTotal()
	})

	for _, l := range fresh {
		w := BookWeight(l.Sportsbook)

		if l.HasMoneyline() {
			home, away := RemoveVigPowerFromAmerican(l.HomeMoneyline, l.AwayMoneyline)
			if home > 0 && away > 0 {
				mlProbs = append(mlProbs, weightedProb{home, away, w})
				holdSum += Overround(l.HomeMoneyline, l.AwayMoneyline) * w
			}
		}

		if l.HasSpread() && hasSpreadLine {
			home, away := RemoveVigPowerFromAmerican(l.HomeSpreadOdds, l.AwaySpreadOdds)
			if home > 0 && away > 0 {
				home, away = normalizeSpreadProb(home, away, l.HomeSpread, spreadLine)
				spreadProbs = append(spreadProbs, weightedProb{home, away, w})
			}
		}

		if l.HasTotal() && hasTotalLine {
			over, under := RemoveVigPowerFromAmerican(l.OverOdds, l.UnderOdds)
			if over > 0 && under > 0 {
				over, under = normalizeTotalProb(over, under, l.Total, totalLine)
				totalProbs = append(totalProbs, weightedProb{over, under, w})
			}
		}
	}

	if len(mlProbs) > 0 {
		home, away := weightedAverage(mlProbs)
		consensus.Moneyline = &MoneylineConsensus{
			HomeTrueProb: home,
			AwayTrueProb: away,
			Hold:         holdSum / totalWeight(mlProbs),
			BookCount:    len(mlProbs),
		}
	}

	if len(spreadProbs) > 0 {
		home, away := weightedAverage(spreadProbs)
		consensus.Spread = &SpreadConsensus{
			HomeSpread:    spreadLine,
			HomeCoverProb: home,
			AwayCoverProb: away,
			BookCount:     len(spreadProbs),
		}
	}

	if len(totalProbs) > 0 {
		over, under := weightedAverage(totalProbs)
		consensus.Total = &TotalConsensus{
			Line:      totalLine,
			OverProb:  over,
			UnderProb: under,
			BookCount: len(totalProbs),
		}
	}

	return consensus
}

// referenceLine returns the most commonly quoted line among books that offer the market
func referenceLine(lines []BookLine, pick func(BookLine) (float64, bool)) (float64, bool) {
	counts := make(map[float64]int)
	var order []float64
	for _, l := range lines {
		v, ok := pick(l)
		if !ok {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return 0, false
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}

func totalWeight(probs []weightedProb) float64 {
	var w float64
	for _, p := range probs {
		w += p.weight
	}
	return w
}

func weightedAverage(probs []weightedProb) (float64, float64) {
	var aSum, bSum, wSum float64
	for _, p := range probs {
		aSum += p.a * p.weight
		bSum += p.b * p.weight
		wSum += p.weight
	}
	return aSum / wSum, bSum / wSum
}

// normalizeSpreadProb adjusts spread probabilities from bookLine to targetLine.
// ATS margin is modeled as N(0, CFBSpreadStdDev); a higher home number is easier to cover.
func normalizeSpreadProb(homeCover, awayCover, bookLine, targetLine float64) (float64, float64) {
	if bookLine == targetLine {
		return homeCover, awayCover
	}

	bookZ := mathutil.NormalInvCDF(homeCover)
	targetZ := bookZ + (targetLine-bookLine)/CFBSpreadStdDev

	adjustedHome := mathutil.Clamp(mathutil.NormalCDF(targetZ), 0.01, 0.99)
	return adjustedHome, 1.0 - adjustedHome
}

// normalizeTotalProb adjusts over/under probabilities from bookLine to targetLine.
// A lower target is easier to go over.
func normalizeTotalProb(overProb, underProb, bookLine, targetLine float64) (float64, float64) {
	if bookLine == targetLine {
		return overProb, underProb
	}

	bookZ := mathutil.NormalInvCDF(overProb)
	targetZ := bookZ - (targetLine-bookLine)/CFBTotalStdDev

	adjustedOver := mathutil.Clamp(mathutil.NormalCDF(targetZ), 0.01, 0.99)
	return adjustedOver, 1.0 - adjustedOver
}

// BestPrice is the most favorable price for one side and the book offering it
type BestPrice struct {
	Sportsbook string `json:"sportsbook"`
	Odds       int    `json:"odds"`
}

// BestPrices holds the best moneyline available on each side
type BestPrices struct {
	Home *BestPrice `json:"home,omitempty"`
	Away *BestPrice `json:"away,omitempty"`
}

// BestMoneylines returns the highest-paying moneyline per side across books.
// Books quoting only one side still contribute that side.
func BestMoneylines(lines []BookLine) BestPrices {
	var best BestPrices
	for _, l := range lines {
		if l.HomeMoneyline != 0 {
			if best.Home == nil || AmericanToDecimal(l.HomeMoneyline) > AmericanToDecimal(best.Home.Odds) {
				best.Home = &BestPrice{Sportsbook: l.Sportsbook, Odds: l.HomeMoneyline}
			}
		}
		if l.AwayMoneyline != 0 {
			if best.Away == nil || AmericanToDecimal(l.AwayMoneyline) > AmericanToDecimal(best.Away.Odds) {
				best.Away = &BestPrice{Sportsbook: l.Sportsbook, Odds: l.AwayMoneyline}
			}
		}
	}
	return best
}
