// Package activity holds the per-activity configuration data: weight
// vectors, tri-tier suitability tables and shadow-window avoidance
// rules. These are data, not logic; compiled-in defaults can be
// overridden from a YAML file.
package activity

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultActivity is the fallback profile for unknown activity keys.
const DefaultActivity = "travel"

// TriTier is an excellent/good/poor partition of a calendar index
// space. Indices in none of the sets score neutral.
type TriTier struct {
	Excellent []int `yaml:"excellent"`
	Good      []int `yaml:"good"`
	Poor      []int `yaml:"poor"`
}

// Rate scores an index against the three tiers with the given
// magnitudes, returning neutral for unlisted indices.
func (t TriTier) Rate(idx int, excellent, good, poor, neutral float64) float64 {
	switch {
	case containsInt(t.Excellent, idx):
		return excellent
	case containsInt(t.Good, idx):
		return good
	case containsInt(t.Poor, idx):
		return poor
	}
	return neutral
}

// Profile is the full configuration for one activity category.
type Profile struct {
	Weights      map[string]float64 `yaml:"weights"`
	Mansions     TriTier            `yaml:"mansions"`
	LunarDays    TriTier            `yaml:"lunarDays"`
	Hours        TriTier            `yaml:"hours"`
	AvoidWindows []string           `yaml:"avoidWindows"` // shadow windows this activity avoids
}

// Tables maps lowercase activity keys to their profiles.
type Tables struct {
	Profiles map[string]Profile `yaml:"activities"`
}

// Lookup returns the profile for an activity, case-insensitively, and
// falls back to the default profile for unknown keys. Total: never
// fails for any string input.
func (t *Tables) Lookup(activityKey string) Profile {
	key := Normalize(activityKey)
	if p, ok := t.Profiles[key]; ok {
		return p
	}
	return t.Profiles[DefaultActivity]
}

// Normalize canonicalizes an activity key.
func Normalize(activityKey string) string {
	return strings.ToLower(strings.TrimSpace(activityKey))
}

// Load reads a YAML override file and merges it over the defaults.
// Activities present in the file replace the default profile wholesale.
func Load(path string) (*Tables, error) {
	tables := Defaults()
	if path == "" {
		return tables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity file: %w", err)
	}

	var override Tables
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("failed to parse activity file: %w", err)
	}

	for key, profile := range override.Profiles {
		tables.Profiles[Normalize(key)] = profile
	}
	return tables, nil
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
