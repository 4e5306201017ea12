package prediction

import (
	"regexp"
	"strconv"
	"strings"
)

// AnalysisSummary holds the values recovered from the predictor's formatted report.
// Fields the report does not mention stay nil.
type AnalysisSummary struct {
	WinProbs        []TeamProb `json:"win_probs,omitempty"` // in report order
	SpreadTeam      string     `json:"spread_team,omitempty"`
	SpreadLine      *float64   `json:"spread_line,omitempty"`
	PredictedTotal  *float64   `json:"predicted_total,omitempty"`
	ScoreTeams      [2]string  `json:"score_teams,omitempty"`
	Scores          *[2]int    `json:"scores,omitempty"`
	Confidence      *float64   `json:"confidence,omitempty"` // 0-1
	EPADifferential *float64   `json:"epa_differential,omitempty"`
	KeyFactors      []string   `json:"key_factors,omitempty"`
}

// TeamProb is one team's reported win probability, 0-1
type TeamProb struct {
	Team string  `json:"team"`
	Prob float64 `json:"prob"`
}

// WinProb returns the probability reported for team, matched exactly
func (s AnalysisSummary) WinProb(team string) (float64, bool) {
	for _, wp := range s.WinProbs {
		if wp.Team == team {
			return wp.Prob, true
		}
	}
	return 0, false
}

const teamName = `([A-Za-z\p{L}&.'() ]+?)`

var (
	reWinProb    = regexp.MustCompile(`(?i)win probability:\s*(.+)`)
	reTeamPct    = regexp.MustCompile(teamName + `\s+(\d+(?:\.\d+)?)%`)
	reSpread     = regexp.MustCompile(`(?i)predicted spread:\s*` + teamName + `\s+([+-]?\d+(?:\.\d+)?)`)
	reTotal      = regexp.MustCompile(`(?i)predicted total:\s*(\d+(?:\.\d+)?)`)
	reScore      = regexp.MustCompile(`(?i)predicted score:\s*` + teamName + `\s+(\d+)\s*[-–]\s*` + teamName + `\s+(\d+)`)
	reConfidence = regexp.MustCompile(`(?i)confidence:\s*(\d+(?:\.\d+)?)\s*%`)
	reEPA        = regexp.MustCompile(`(?i)epa differential:\s*([+-]?\d+(?:\.\d+)?)`)
	reFactors    = regexp.MustCompile(`(?i)^\s*key factors:?\s*$`)
	reBullet     = regexp.MustCompile(`^\s*[-*•]\s+(.+?)\s*$`)
)

// ParseAnalysis extracts structured values from a formatted analysis report such as:
//
//	Win Probability: Ohio State 68.4% | Michigan 31.6%
//	Predicted Spread: Ohio State -7.5
//	Predicted Total: 48.5
//	Predicted Score: Ohio State 28 - Michigan 20
//	Confidence: 82.0%
//	EPA Differential: +0.142
//	Key Factors:
//	- Ohio State offense ranks 3rd in EPA/play
func ParseAnalysis(text string) AnalysisSummary {
	var s AnalysisSummary
	inFactors := false

	for _, line := range strings.Split(text, "\n") {
		if reFactors.MatchString(line) {
			inFactors = true
			continue
		}
		if inFactors {
			if m := reBullet.FindStringSubmatch(line); m != nil {
				s.KeyFactors = append(s.KeyFactors, m[1])
				continue
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			inFactors = false
		}

		switch {
		case reWinProb.MatchString(line):
			rest := reWinProb.FindStringSubmatch(line)[1]
			for _, m := range reTeamPct.FindAllStringSubmatch(rest, -1) {
				if v, ok := parseFloat(m[2]); ok {
					s.WinProbs = append(s.WinProbs, TeamProb{Team: cleanTeam(m[1]), Prob: v / 100})
				}
			}
		case reSpread.MatchString(line):
			m := reSpread.FindStringSubmatch(line)
			if v, ok := parseFloat(m[2]); ok {
				s.SpreadTeam = cleanTeam(m[1])
				s.SpreadLine = &v
			}
		case reTotal.MatchString(line):
			if v, ok := parseFloat(reTotal.FindStringSubmatch(line)[1]); ok {
				s.PredictedTotal = &v
			}
		case reScore.MatchString(line):
			m := reScore.FindStringSubmatch(line)
			a, errA := strconv.Atoi(m[2])
			b, errB := strconv.Atoi(m[4])
			if errA == nil && errB == nil {
				s.ScoreTeams = [2]string{cleanTeam(m[1]), cleanTeam(m[3])}
				s.Scores = &[2]int{a, b}
			}
		case reConfidence.MatchString(line):
			if v, ok := parseFloat(reConfidence.FindStringSubmatch(line)[1]); ok {
				v /= 100
				s.Confidence = &v
			}
		case reEPA.MatchString(line):
			if v, ok := parseFloat(reEPA.FindStringSubmatch(line)[1]); ok {
				s.EPADifferential = &v
			}
		}
	}
	return s
}

// TeamMatcher reports whether a team name from the report refers to a given side
type TeamMatcher func(reported string) bool

// HomeWinProb looks up the parsed win probability for the home side, falling back to
// the complement of the away side's probability. The first matching team in report
// order wins.
func (s AnalysisSummary) HomeWinProb(isHome, isAway TeamMatcher) (float64, bool) {
	for _, wp := range s.WinProbs {
		if isHome(wp.Team) {
			return wp.Prob, true
		}
	}
	for _, wp := range s.WinProbs {
		if isAway(wp.Team) {
			return 1 - wp.Prob, true
		}
	}
	return 0, false
}

// HomeSpread converts the parsed spread into the home perspective
func (s AnalysisSummary) HomeSpread(isHome, isAway TeamMatcher) (float64, bool) {
	if s.SpreadLine == nil {
		return 0, false
	}
	switch {
	case isHome(s.SpreadTeam):
		return *s.SpreadLine, true
	case isAway(s.SpreadTeam):
		return -*s.SpreadLine, true
	}
	return 0, false
}

func cleanTeam(s string) string {
	return strings.Trim(strings.TrimSpace(s), "|:,")
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	return v, err == nil
}
