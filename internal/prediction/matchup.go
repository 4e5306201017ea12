package prediction

import (
	"fmt"
	"math"
	"strings"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/analysis"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/arbitrage"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/format"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

// Win probability sources, in the order Build tries them
const (
	SourcePayload  = "payload"
	SourceAnalysis = "analysis"
	SourceSpread   = "spread_model"
	SourceDefault  = "default"
)

// defaultConfidence is used when neither the payload nor the report states one
const defaultConfidence = 0.5

// Matchup is the fully defaulted view of one game
type Matchup struct {
	Home            teams.Badge    `json:"home"`
	Away            teams.Badge    `json:"away"`
	HomeWinProb     float64        `json:"home_win_prob"`
	AwayWinProb     float64        `json:"away_win_prob"`
	WinProbSource   string         `json:"win_prob_source"`
	PredictedSpread *float64       `json:"predicted_spread,omitempty"`
	ImpliedSpread   *float64       `json:"implied_spread,omitempty"` // from the win probability when no spread is predicted
	PredictedTotal  *float64       `json:"predicted_total,omitempty"`
	ProjectedScore  *Score         `json:"projected_score,omitempty"`
	Confidence      float64        `json:"confidence"`
	EPADifferential *float64       `json:"epa_differential,omitempty"`
	Stats           []StatRow      `json:"stats"`
	ATS             ATSComparison  `json:"ats"`
	Market          *MarketSection `json:"market,omitempty"`
	KeyFactors      []string       `json:"key_factors,omitempty"`
	Display         MatchupDisplay `json:"display"`
}

// Score is a projected final score
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// StatRow compares one metric across both teams. Advantage is "home", "away" or "even".
type StatRow struct {
	Metric       string  `json:"metric"`
	Home         float64 `json:"home"`
	Away         float64 `json:"away"`
	Differential float64 `json:"differential"`
	Advantage    string  `json:"advantage"`
}

// ATSRecord is one team's record against the spread
type ATSRecord struct {
	Wins     int      `json:"wins"`
	Losses   int      `json:"losses"`
	Pushes   int      `json:"pushes"`
	Record   string   `json:"record"`
	CoverPct *float64 `json:"cover_pct,omitempty"` // nil with no decided games
}

// ATSComparison holds both ATS records
type ATSComparison struct {
	Home ATSRecord `json:"home"`
	Away ATSRecord `json:"away"`
}

// MarketSection summarizes sportsbook prices against the model
type MarketSection struct {
	Consensus odds.Consensus         `json:"consensus"`
	Best      odds.BestPrices        `json:"best"`
	Edges     []analysis.Edge        `json:"edges,omitempty"`
	Arbitrage *arbitrage.Opportunity `json:"arbitrage,omitempty"`
	Books     int                    `json:"books"`
}

// MatchupDisplay carries the rounded strings the dashboard prints
type MatchupDisplay struct {
	HomeWinProb string `json:"home_win_prob"`
	AwayWinProb string `json:"away_win_prob"`
	Spread      string `json:"spread,omitempty"`
	Total       string `json:"total,omitempty"`
	Confidence  string `json:"confidence"`
	Edge        string `json:"edge,omitempty"`
}

// Normalizer maps payloads onto Matchups. It is the one place defaults are applied.
type Normalizer struct {
	Roster        teams.Roster
	Analysis      analysis.Config
	DefaultStake  float64 // stake used to size cross-book arbitrage
	SpreadStdDev  float64 // 0 uses odds.CFBSpreadStdDev
	MaxOddsAgeSec int    // quotes older than this are left out of the consensus, 0 keeps all
}

// NewNormalizer returns a Normalizer with default analysis settings and a $100 stake
func NewNormalizer(roster teams.Roster) *Normalizer {
	return &Normalizer{
		Roster:       roster,
		Analysis:     analysis.DefaultConfig(),
		DefaultStake: 100,
		SpreadStdDev: odds.CFBSpreadStdDev,
	}
}

// Build produces the view model for p. A nil payload yields the demo matchup.
func (n *Normalizer) Build(p *Payload) (Matchup, error) {
	if p == nil {
		p = DemoPayload()
	}

	var summary AnalysisSummary
	if p.FormattedAnalysis != nil {
		summary = ParseAnalysis(*p.FormattedAnalysis)
	}

	m := Matchup{
		Home:       teams.BadgeFor(p.HomeTeam, n.Roster),
		Away:       teams.BadgeFor(p.AwayTeam, n.Roster),
		KeyFactors: summary.KeyFactors,
	}
	isHome, isAway := n.matcher(p.HomeTeam), n.matcher(p.AwayTeam)

	m.PredictedSpread = p.PredictedSpread
	if m.PredictedSpread == nil {
		if v, ok := summary.HomeSpread(isHome, isAway); ok {
			m.PredictedSpread = &v
		}
	}
	m.PredictedTotal = firstFloat(p.PredictedTotal, summary.PredictedTotal)
	m.EPADifferential = summary.EPADifferential
	if m.EPADifferential == nil {
		m.EPADifferential = epaDifferential(p.Home, p.Away)
	}
	if summary.Scores != nil {
		m.ProjectedScore = orientScore(summary, isHome)
	}

	m.HomeWinProb, m.WinProbSource = n.homeWinProb(p, summary, isHome, isAway, m.PredictedSpread)
	m.AwayWinProb = 1 - m.HomeWinProb
	if m.PredictedSpread == nil && m.WinProbSource != SourceDefault {
		v := analysis.WinProbToSpread(m.HomeWinProb, n.SpreadStdDev)
		m.ImpliedSpread = &v
	}

	m.Confidence = defaultConfidence
	if c := firstFloat(p.Confidence, summary.Confidence); c != nil {
		m.Confidence = math.Max(0, math.Min(1, *c))
	}

	m.Stats = compareStats(p.Home, p.Away)
	m.ATS = ATSComparison{Home: atsRecord(p.Home), Away: atsRecord(p.Away)}

	if len(p.MarketLines) > 0 {
		market, err := n.market(p.MarketLines, m.HomeWinProb, m.Confidence)
		if err != nil {
			return Matchup{}, err
		}
		m.Market = market
	}

	m.Display = display(m)
	return m, nil
}

// matcher treats a reported name as query when the names are equal ignoring case or
// both resolve to the same roster team
func (n *Normalizer) matcher(query string) TeamMatcher {
	want, ok := teams.Resolve(query, n.Roster)
	return func(reported string) bool {
		if strings.EqualFold(strings.TrimSpace(reported), strings.TrimSpace(query)) {
			return true
		}
		if !ok {
			return false
		}
		got, found := teams.Resolve(reported, n.Roster)
		return found && got.School == want.School
	}
}

func (n *Normalizer) homeWinProb(p *Payload, s AnalysisSummary, isHome, isAway TeamMatcher, spread *float64) (float64, string) {
	if p.HomeWinProb != nil && *p.HomeWinProb > 0 && *p.HomeWinProb < 1 {
		return *p.HomeWinProb, SourcePayload
	}
	if v, ok := s.HomeWinProb(isHome, isAway); ok && v > 0 && v < 1 {
		return v, SourceAnalysis
	}
	if spread != nil {
		return analysis.SpreadToWinProb(*spread, n.SpreadStdDev), SourceSpread
	}
	return 0.5, SourceDefault
}

func (n *Normalizer) market(lines []odds.BookLine, homeProb, confidence float64) (*MarketSection, error) {
	consensus := odds.CalculateConsensus(lines, n.MaxOddsAgeSec)
	best := odds.BestMoneylines(lines)

	sec := &MarketSection{
		Consensus: consensus,
		Best:      best,
		Edges:     analysis.FindEdges(homeProb, confidence, best, consensus.Moneyline, n.Analysis),
		Books:     len(lines),
	}

	stake := n.DefaultStake
	if stake <= 0 {
		stake = 100
	}
	opp, err := arbitrage.FindCrossBook(stake, lines)
	if err != nil {
		return nil, fmt.Errorf("market section: %w", err)
	}
	sec.Arbitrage = opp
	return sec, nil
}

func firstFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func orientScore(s AnalysisSummary, isHome TeamMatcher) *Score {
	sc := *s.Scores
	if isHome(s.ScoreTeams[1]) && !isHome(s.ScoreTeams[0]) {
		return &Score{Home: sc[1], Away: sc[0]}
	}
	return &Score{Home: sc[0], Away: sc[1]}
}

func epaDifferential(home, away *TeamStats) *float64 {
	if home == nil || away == nil || home.EPAPerPlay == nil || away.EPAPerPlay == nil {
		return nil
	}
	d := *home.EPAPerPlay - *away.EPAPerPlay
	return &d
}

type statMetric struct {
	name          string
	get           func(*TeamStats) *float64
	lowerIsBetter bool
}

var statMetrics = []statMetric{
	{"EPA/Play", func(s *TeamStats) *float64 { return s.EPAPerPlay }, false},
	{"EPA Allowed", func(s *TeamStats) *float64 { return s.EPAAllowed }, true},
	{"Success Rate", func(s *TeamStats) *float64 { return s.SuccessRate }, false},
	{"Explosiveness", func(s *TeamStats) *float64 { return s.Explosiveness }, false},
}

// compareStats emits a row for each metric both teams report
func compareStats(home, away *TeamStats) []StatRow {
	rows := []StatRow{}
	if home == nil || away == nil {
		return rows
	}
	for _, sm := range statMetrics {
		h, a := sm.get(home), sm.get(away)
		if h == nil || a == nil {
			continue
		}
		diff := *h - *a
		adv := "even"
		switch {
		case diff > 0 && !sm.lowerIsBetter, diff < 0 && sm.lowerIsBetter:
			adv = "home"
		case diff != 0:
			adv = "away"
		}
		rows = append(rows, StatRow{Metric: sm.name, Home: *h, Away: *a, Differential: diff, Advantage: adv})
	}
	return rows
}

func atsRecord(s *TeamStats) ATSRecord {
	var r ATSRecord
	if s != nil {
		r.Wins = derefInt(s.ATSWins)
		r.Losses = derefInt(s.ATSLosses)
		r.Pushes = derefInt(s.ATSPushes)
	}
	r.Record = fmt.Sprintf("%d-%d", r.Wins, r.Losses)
	if r.Pushes > 0 {
		r.Record = fmt.Sprintf("%s-%d", r.Record, r.Pushes)
	}
	if decided := r.Wins + r.Losses; decided > 0 {
		pct := float64(r.Wins) / float64(decided)
		r.CoverPct = &pct
	}
	return r
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func display(m Matchup) MatchupDisplay {
	d := MatchupDisplay{
		HomeWinProb: format.Percent(m.HomeWinProb),
		AwayWinProb: format.Percent(m.AwayWinProb),
		Confidence:  format.Percent(m.Confidence),
	}
	if m.PredictedSpread != nil {
		d.Spread = label(m.Home) + " " + format.Spread(*m.PredictedSpread)
	}
	if m.PredictedTotal != nil {
		d.Total = format.Fixed(*m.PredictedTotal, 1)
	}
	if m.Market != nil {
		for _, e := range m.Market.Edges {
			if e.Value {
				team := label(m.Home)
				if e.Side == "away" {
					team = label(m.Away)
				}
				d.Edge = fmt.Sprintf("%s %s @ %s (EV %s)", team, odds.FormatAmerican(e.Odds), e.Sportsbook, format.Percent(e.EV))
				break
			}
		}
	}
	return d
}

func label(b teams.Badge) string {
	if b.Abbreviation != "" {
		return b.Abbreviation
	}
	return b.Name
}
