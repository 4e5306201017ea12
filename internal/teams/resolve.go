package teams

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MatchKind records how a query was resolved
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchPartial MatchKind = "partial"
	MatchNone    MatchKind = "none"
)

// fold lower-cases s for comparison. NFC first so "José" typed with a combining
// accent compares equal to the precomposed form.
// A Caser holds state, so each call gets its own.
func fold(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(s)))
}

// Resolve finds the roster entry for a free-text team name.
// Returns nil, false when nothing matches; that is an expected outcome, not an error.
func Resolve(query string, roster Roster) (*Team, bool) {
	t, kind := ResolveKind(query, roster)
	return t, kind != MatchNone
}

// ResolveKind is Resolve that also reports whether the match was exact or partial.
//
// An exact case-insensitive match on School always wins. Otherwise every entry whose
// School appears inside the query is a candidate and the longest School wins, so
// "Ohio State Buckeyes" resolves to "Ohio State" rather than "Ohio". Equal-length
// candidates resolve to the earliest roster entry.
func ResolveKind(query string, roster Roster) (*Team, MatchKind) {
	q := fold(query)
	if q == "" {
		return nil, MatchNone
	}

	best := -1
	bestLen := 0
	for i := range roster {
		name := fold(roster[i].School)
		if name == "" {
			continue
		}
		if name == q {
			return &roster[i], MatchExact
		}
		// roster name must sit inside the query, never the reverse
		if strings.Contains(q, name) && len(name) > bestLen {
			best = i
			bestLen = len(name)
		}
	}

	if best < 0 {
		return nil, MatchNone
	}
	return &roster[best], MatchPartial
}
