package prediction

import "github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"

const demoAnalysis = `GAMEDAY+ PREDICTION REPORT
Win Probability: Ohio State 68.4% | Michigan 31.6%
Predicted Spread: Ohio State -7.5
Predicted Total: 48.5
Predicted Score: Ohio State 28 - Michigan 20
Confidence: 82.0%
EPA Differential: +0.142

Key Factors:
- Ohio State offense ranks 3rd nationally in EPA/play
- Michigan defense allows a 38% success rate on early downs
- Home field in Columbus worth roughly 2.5 points
`

// DemoPayload returns the matchup shown when no prediction has been supplied
func DemoPayload() *Payload {
	return &Payload{
		HomeTeam:       "Ohio State Buckeyes",
		AwayTeam:       "Michigan Wolverines",
		PredictedTotal: Float(48.5),
		Home: &TeamStats{
			EPAPerPlay:    Float(0.312),
			EPAAllowed:    Float(-0.081),
			SuccessRate:   Float(0.512),
			Explosiveness: Float(1.34),
			ATSWins:       Int(8),
			ATSLosses:     Int(3),
		},
		Away: &TeamStats{
			EPAPerPlay:    Float(0.170),
			EPAAllowed:    Float(-0.044),
			SuccessRate:   Float(0.448),
			Explosiveness: Float(1.21),
			ATSWins:       Int(6),
			ATSLosses:     Int(5),
			ATSPushes:     Int(1),
		},
		MarketLines: []odds.BookLine{
			{Sportsbook: "DraftKings", HomeMoneyline: -250, AwayMoneyline: 205, HomeSpread: -6.5, HomeSpreadOdds: -110, AwaySpreadOdds: -110, Total: 47.5, OverOdds: -110, UnderOdds: -110},
			{Sportsbook: "FanDuel", HomeMoneyline: -240, AwayMoneyline: 195, HomeSpread: -6.5, HomeSpreadOdds: -112, AwaySpreadOdds: -108, Total: 47.5, OverOdds: -105, UnderOdds: -115},
			{Sportsbook: "Pinnacle", HomeMoneyline: -245, AwayMoneyline: 210, HomeSpread: -7.0, HomeSpreadOdds: -105, AwaySpreadOdds: -105, Total: 48.0, OverOdds: -104, UnderOdds: -106},
		},
		FormattedAnalysis: String(demoAnalysis),
	}
}
