package teams

// Neutral colors for teams that are not on the roster
const (
	DefaultPrimaryColor = "#6B7280"
	DefaultAltColor     = "#FFFFFF"
)

// Badge is what the dashboard needs to draw a team: name, colors and logo.
type Badge struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	PrimaryColor string `json:"primary_color"`
	AltColor     string `json:"alt_color"`
	Logo         string `json:"logo,omitempty"`
	Matched      bool   `json:"matched"`
}

// BadgeFor resolves query and falls back to the raw query with neutral colors.
func BadgeFor(query string, roster Roster) Badge {
	t, ok := Resolve(query, roster)
	if !ok {
		return Badge{
			Name:         query,
			PrimaryColor: DefaultPrimaryColor,
			AltColor:     DefaultAltColor,
		}
	}

	b := Badge{
		Name:         t.School,
		Abbreviation: t.Abbreviation,
		PrimaryColor: t.PrimaryColor,
		AltColor:     t.AltColor,
		Logo:         t.Logo(),
		Matched:      true,
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = DefaultPrimaryColor
	}
	if b.AltColor == "" {
		b.AltColor = DefaultAltColor
	}
	return b
}
