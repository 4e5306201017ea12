package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/analysis"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(teams.DefaultRoster())
}

func TestBuildNilPayloadUsesDemo(t *testing.T) {
	m, err := newTestNormalizer().Build(nil)
	require.NoError(t, err)

	assert.Equal(t, "Ohio State", m.Home.Name)
	assert.Equal(t, "OSU", m.Home.Abbreviation)
	assert.True(t, m.Home.Matched)
	assert.Equal(t, "Michigan", m.Away.Name)

	assert.Equal(t, SourceAnalysis, m.WinProbSource)
	assert.InDelta(t, 0.684, m.HomeWinProb, 1e-9)
	assert.InDelta(t, 1.0, m.HomeWinProb+m.AwayWinProb, 1e-12)

	require.NotNil(t, m.PredictedSpread)
	assert.Equal(t, -7.5, *m.PredictedSpread)
	require.NotNil(t, m.PredictedTotal)
	assert.Equal(t, 48.5, *m.PredictedTotal)
	assert.InDelta(t, 0.82, m.Confidence, 1e-9)

	require.NotNil(t, m.ProjectedScore)
	assert.Equal(t, Score{Home: 28, Away: 20}, *m.ProjectedScore)

	require.Len(t, m.Stats, 4)
	for _, row := range m.Stats {
		assert.Equal(t, "home", row.Advantage, row.Metric)
	}

	assert.Equal(t, "8-3", m.ATS.Home.Record)
	assert.Equal(t, "6-5-1", m.ATS.Away.Record)
	require.NotNil(t, m.ATS.Home.CoverPct)
	assert.InDelta(t, 8.0/11.0, *m.ATS.Home.CoverPct, 1e-9)

	require.NotNil(t, m.Market)
	assert.Equal(t, 3, m.Market.Books)
	require.NotNil(t, m.Market.Consensus.Moneyline)
	assert.Equal(t, 3, m.Market.Consensus.Moneyline.BookCount)
	assert.Nil(t, m.Market.Arbitrage)
	assert.Len(t, m.Market.Edges, 2)

	assert.Len(t, m.KeyFactors, 3)
	assert.Equal(t, "68.4%", m.Display.HomeWinProb)
	assert.Equal(t, "OSU -7.5", m.Display.Spread)
	assert.Equal(t, "48.5", m.Display.Total)
}

func TestBuildEmptyPayloadDefaults(t *testing.T) {
	m, err := newTestNormalizer().Build(&Payload{HomeTeam: "Nowhere Tech", AwayTeam: "Somewhere A&T"})
	require.NoError(t, err)

	assert.False(t, m.Home.Matched)
	assert.Equal(t, "Nowhere Tech", m.Home.Name)
	assert.Equal(t, teams.DefaultPrimaryColor, m.Home.PrimaryColor)

	assert.Equal(t, SourceDefault, m.WinProbSource)
	assert.Equal(t, 0.5, m.HomeWinProb)
	assert.Equal(t, defaultConfidence, m.Confidence)
	assert.NotNil(t, m.Stats)
	assert.Empty(t, m.Stats)
	assert.Equal(t, "0-0", m.ATS.Home.Record)
	assert.Nil(t, m.ATS.Home.CoverPct)
	assert.Nil(t, m.Market)
	assert.Nil(t, m.PredictedSpread)
	assert.Nil(t, m.ImpliedSpread)
	assert.Empty(t, m.Display.Spread)
}

func TestBuildWinProbFromSpread(t *testing.T) {
	m, err := newTestNormalizer().Build(&Payload{
		HomeTeam:        "Alabama",
		AwayTeam:        "Auburn",
		PredictedSpread: Float(-7.5),
	})
	require.NoError(t, err)

	assert.Equal(t, SourceSpread, m.WinProbSource)
	assert.InDelta(t, analysis.SpreadToWinProb(-7.5, odds.CFBSpreadStdDev), m.HomeWinProb, 1e-12)
	assert.Greater(t, m.HomeWinProb, 0.5)
	assert.Nil(t, m.ImpliedSpread)
}

func TestBuildPayloadProbabilityWins(t *testing.T) {
	report := "Win Probability: Alabama 40% | Auburn 60%"
	m, err := newTestNormalizer().Build(&Payload{
		HomeTeam:          "Alabama",
		AwayTeam:          "Auburn",
		HomeWinProb:       Float(0.7),
		FormattedAnalysis: &report,
	})
	require.NoError(t, err)

	assert.Equal(t, SourcePayload, m.WinProbSource)
	assert.Equal(t, 0.7, m.HomeWinProb)

	// no predicted spread, so one is implied from the probability
	require.Nil(t, m.PredictedSpread)
	require.NotNil(t, m.ImpliedSpread)
	assert.Less(t, *m.ImpliedSpread, 0.0)
	assert.InDelta(t, 0.7, analysis.SpreadToWinProb(*m.ImpliedSpread, odds.CFBSpreadStdDev), 1e-6)
}

func TestBuildFlagsValueEdge(t *testing.T) {
	m, err := newTestNormalizer().Build(&Payload{
		HomeTeam:    "Ohio State",
		AwayTeam:    "Michigan",
		HomeWinProb: Float(0.75),
		Confidence:  Float(1),
		MarketLines: []odds.BookLine{
			{Sportsbook: "BookA", HomeMoneyline: -150, AwayMoneyline: 130},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, m.Market)
	require.Len(t, m.Market.Edges, 2)

	home := m.Market.Edges[0]
	assert.True(t, home.Value)
	assert.InDelta(t, 0.25, home.EV, 1e-9)
	assert.Equal(t, "OSU -150 @ BookA (EV 25.0%)", m.Display.Edge)
}

func TestBuildFindsCrossBookArbitrage(t *testing.T) {
	n := newTestNormalizer()
	n.DefaultStake = 1000

	m, err := n.Build(&Payload{
		HomeTeam: "Texas",
		AwayTeam: "Texas A&M",
		MarketLines: []odds.BookLine{
			{Sportsbook: "BookA", HomeMoneyline: 200, AwayMoneyline: -300},
			{Sportsbook: "BookB", HomeMoneyline: -300, AwayMoneyline: -150},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, m.Market)
	require.NotNil(t, m.Market.Arbitrage)

	arb := m.Market.Arbitrage
	assert.Equal(t, "BookA", arb.HomeBook)
	assert.Equal(t, "BookB", arb.AwayBook)
	assert.InDelta(t, 71.43, arb.Result.GuaranteedProfit, 0.01)
}

func TestBuildOrientsScoreToHome(t *testing.T) {
	report := "Predicted Score: Michigan 24 - Ohio State 21"
	m, err := newTestNormalizer().Build(&Payload{
		HomeTeam:          "Ohio State",
		AwayTeam:          "Michigan",
		FormattedAnalysis: &report,
	})
	require.NoError(t, err)
	require.NotNil(t, m.ProjectedScore)
	assert.Equal(t, Score{Home: 21, Away: 24}, *m.ProjectedScore)
}

func TestBuildEPAFromStats(t *testing.T) {
	m, err := newTestNormalizer().Build(&Payload{
		HomeTeam: "Oregon",
		AwayTeam: "USC",
		Home:     &TeamStats{EPAPerPlay: Float(0.25)},
		Away:     &TeamStats{EPAPerPlay: Float(0.10)},
	})
	require.NoError(t, err)
	require.NotNil(t, m.EPADifferential)
	assert.InDelta(t, 0.15, *m.EPADifferential, 1e-9)
	require.Len(t, m.Stats, 1)
	assert.Equal(t, "EPA/Play", m.Stats[0].Metric)
}
