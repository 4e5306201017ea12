// Package teams holds the static roster of college football programs and resolves
// free-text team names from upstream feeds to roster entries.
package teams

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Team is one roster entry. School is the canonical display name and the matching key.
type Team struct {
	School       string   `json:"school" yaml:"school"`
	Abbreviation string   `json:"abbreviation" yaml:"abbreviation"`
	Mascot       string   `json:"mascot,omitempty" yaml:"mascot,omitempty"`
	Conference   string   `json:"conference,omitempty" yaml:"conference,omitempty"`
	PrimaryColor string   `json:"color" yaml:"color"`
	AltColor     string   `json:"alt_color" yaml:"alt_color"`
	Logos        []string `json:"logos,omitempty" yaml:"logos,omitempty"`
}

// Logo returns the first logo URL, or "" when the team has none
func (t Team) Logo() string {
	if len(t.Logos) == 0 {
		return ""
	}
	return t.Logos[0]
}

// Roster is the read-only list of teams. Callers pass it in; nothing here mutates it.
type Roster []Team

//go:embed roster.json
var defaultRosterJSON []byte

// DefaultRoster returns the embedded FBS roster.
func DefaultRoster() Roster {
	var r Roster
	if err := json.Unmarshal(defaultRosterJSON, &r); err != nil {
		panic(fmt.Sprintf("embedded roster is invalid: %v", err))
	}
	return r
}

// LoadRoster reads a roster from a .json, .yaml or .yml file and validates it.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	var r Roster
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &r)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &r)
	default:
		return nil, fmt.Errorf("unsupported roster format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding roster %s: %w", path, err)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that every school is named and unique ignoring case.
func (r Roster) Validate() error {
	seen := make(map[string]int, len(r))
	for i, t := range r {
		key := fold(t.School)
		if key == "" {
			return fmt.Errorf("roster entry %d has an empty school name", i)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("duplicate school %q at entries %d and %d", t.School, prev, i)
		}
		seen[key] = i
	}
	return nil
}
