package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEveryRosterEntryExactly(t *testing.T) {
	roster := DefaultRoster()
	require.NotEmpty(t, roster)

	for i := range roster {
		got, kind := ResolveKind(roster[i].School, roster)
		require.NotNil(t, got, roster[i].School)
		assert.Equal(t, roster[i], *got)
		assert.Equal(t, MatchExact, kind, roster[i].School)
	}
}

func TestResolveLongestPartialWins(t *testing.T) {
	roster := Roster{{School: "Ohio"}, {School: "Ohio State"}}

	got, ok := Resolve("Ohio State", roster)
	require.True(t, ok)
	assert.Equal(t, "Ohio State", got.School)

	got, kind := ResolveKind("Ohio State Buckeyes", roster)
	require.NotNil(t, got)
	assert.Equal(t, "Ohio State", got.School)
	assert.Equal(t, MatchPartial, kind)
}

func TestResolveExactBeatsLongerPartial(t *testing.T) {
	// "Michigan State" is longer and contained in nothing; "Michigan" is an exact hit
	roster := Roster{{School: "Michigan State"}, {School: "Michigan"}}

	got, kind := ResolveKind("michigan", roster)
	require.NotNil(t, got)
	assert.Equal(t, "Michigan", got.School)
	assert.Equal(t, MatchExact, kind)
}

func TestResolveContainmentDirection(t *testing.T) {
	// query inside a roster name is not a match
	roster := Roster{{School: "Ohio State"}}

	got, ok := Resolve("Ohio", roster)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestResolveNoMatch(t *testing.T) {
	got, kind := ResolveKind("Nonexistent Team XYZ", DefaultRoster())
	assert.Nil(t, got)
	assert.Equal(t, MatchNone, kind)

	got, ok := Resolve("   ", DefaultRoster())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestResolveCaseInsensitive(t *testing.T) {
	roster := DefaultRoster()

	upper, ok := Resolve("OHIO STATE", roster)
	require.True(t, ok)
	lower, ok := Resolve("ohio state", roster)
	require.True(t, ok)
	assert.Equal(t, upper, lower)
	assert.Equal(t, "Ohio State", upper.School)
}

func TestResolveTieGoesToEarliestEntry(t *testing.T) {
	roster := Roster{{School: "Texas", Abbreviation: "A"}, {School: "Tulsa", Abbreviation: "B"}}

	got, ok := Resolve("Texas vs Tulsa", roster)
	require.True(t, ok)
	assert.Equal(t, "A", got.Abbreviation)
}

func TestResolveFeedNames(t *testing.T) {
	roster := DefaultRoster()

	tests := []struct {
		query string
		want  string
	}{
		{"Michigan State Spartans", "Michigan State"},
		{"Miami (OH) RedHawks", "Miami (OH)"},
		{"Texas A&M Aggies", "Texas A&M"},
		{"#3 Georgia Bulldogs", "Georgia"},
		{"San José State Spartans", "San José State"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := Resolve(tt.query, roster)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.School)
		})
	}
}

func TestBadgeFor(t *testing.T) {
	roster := DefaultRoster()

	b := BadgeFor("Ohio State Buckeyes", roster)
	assert.True(t, b.Matched)
	assert.Equal(t, "Ohio State", b.Name)
	assert.Equal(t, "OSU", b.Abbreviation)
	assert.Equal(t, "#BB0000", b.PrimaryColor)
	assert.NotEmpty(t, b.Logo)

	miss := BadgeFor("Springfield Isotopes", roster)
	assert.False(t, miss.Matched)
	assert.Equal(t, "Springfield Isotopes", miss.Name)
	assert.Equal(t, DefaultPrimaryColor, miss.PrimaryColor)
	assert.Equal(t, DefaultAltColor, miss.AltColor)
}

func TestBadgeForMissingColors(t *testing.T) {
	b := BadgeFor("Ohio", Roster{{School: "Ohio"}})
	assert.True(t, b.Matched)
	assert.Equal(t, DefaultPrimaryColor, b.PrimaryColor)
	assert.Empty(t, b.Logo)
}
