package analysis

import (
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/mathutil"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// SpreadToWinProb converts a predicted home spread (negative = home favored) into a
// home win probability, treating the final margin as N(-spread, stdDev).
// stdDev <= 0 uses odds.CFBSpreadStdDev.
func SpreadToWinProb(homeSpread, stdDev float64) float64 {
	if stdDev <= 0 {
		stdDev = odds.CFBSpreadStdDev
	}
	return mathutil.NormalCDF(-homeSpread / stdDev)
}

// WinProbToSpread is the inverse of SpreadToWinProb
func WinProbToSpread(homeWinProb, stdDev float64) float64 {
	if stdDev <= 0 {
		stdDev = odds.CFBSpreadStdDev
	}
	return -mathutil.NormalInvCDF(homeWinProb) * stdDev
}
