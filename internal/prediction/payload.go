package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/odds"
)

// ErrEmptyPayload is returned by DecodePayload when the body holds no JSON value
var ErrEmptyPayload = errors.New("empty prediction payload")

// ErrMissingSportsbook is returned for a market line that does not name its book
var ErrMissingSportsbook = errors.New("market line missing sportsbook")

var errTrailingData = errors.New("decode prediction payload: trailing data after object")

// TeamStats holds the per-team efficiency numbers the predictor reports. Every field is optional.
type TeamStats struct {
	EPAPerPlay    *float64 `json:"epa_per_play,omitempty"`
	EPAAllowed    *float64 `json:"epa_allowed,omitempty"`
	SuccessRate   *float64 `json:"success_rate,omitempty"`
	Explosiveness *float64 `json:"explosiveness,omitempty"`
	ATSWins       *int     `json:"ats_wins,omitempty"`
	ATSLosses     *int     `json:"ats_losses,omitempty"`
	ATSPushes     *int     `json:"ats_pushes,omitempty"`
}

// Payload is the prediction document produced upstream. Missing values stay nil;
// defaults are applied once, in Normalizer.Build.
type Payload struct {
	HomeTeam          string          `json:"home_team"`
	AwayTeam          string          `json:"away_team"`
	HomeWinProb       *float64        `json:"home_win_prob,omitempty"`
	PredictedSpread   *float64        `json:"predicted_spread,omitempty"` // home perspective, negative = home favored
	PredictedTotal    *float64        `json:"predicted_total,omitempty"`
	Confidence        *float64        `json:"confidence,omitempty"` // 0-1
	Home              *TeamStats      `json:"home_stats,omitempty"`
	Away              *TeamStats      `json:"away_stats,omitempty"`
	MarketLines       []odds.BookLine `json:"market_lines,omitempty"`
	FormattedAnalysis *string         `json:"formatted_analysis,omitempty"`
}

// DecodePayload reads a single Payload from r. Unknown fields are rejected so schema
// drift upstream shows up as an error instead of silently missing data.
func DecodePayload(r io.Reader) (*Payload, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPayload
		}
		return nil, fmt.Errorf("decode prediction payload: %w", err)
	}
	if dec.More() {
		return nil, errTrailingData
	}

	p.HomeTeam = strings.TrimSpace(p.HomeTeam)
	p.AwayTeam = strings.TrimSpace(p.AwayTeam)
	for _, l := range p.MarketLines {
		if err := validateLine(l); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func validateLine(l odds.BookLine) error {
	if strings.TrimSpace(l.Sportsbook) == "" {
		return ErrMissingSportsbook
	}
	return nil
}

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }
