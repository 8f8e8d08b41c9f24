// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identity

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// aliasFile is the YAML shape of an on-disk alias table supplement.
type aliasFile struct {
	OutletAliases    map[string]string `yaml:"outlet_aliases"`
	CriticAliases    map[string]string `yaml:"critic_aliases"`
	DisplayOverrides map[string]string `yaml:"display_overrides"`
}

// DefaultTables returns the built-in alias tables. The keys are slugified
// raw strings (outlets) and normalized critic keys (critics), so lookups
// happen after the mechanical normalization step.
func DefaultTables() Tables {
	return Tables{
		OutletAliases: map[string]string{
			// Historical slugs and renames.
			"ny-times":            "nytimes",
			"new-york-times":      "nytimes",
			"nyt":                 "nytimes",
			"ny-post":             "nypost",
			"new-york-post":       "nypost",
			"wsj":                 "wall-street-journal",
			"time-out":            "timeout-new-york",
			"time-out-ny":         "timeout-new-york",
			"time-out-new-york":   "timeout-new-york",
			"hollywood-reporter":  "thr",
			"ent-weekly":          "entertainment-weekly",
			"ew":                  "entertainment-weekly",
			"nymag":               "vulture",
			"new-york-magazine":   "vulture",
			"huffpo":              "huffpost",
			"huffington-post":     "huffpost",
			"ap":                  "associated-press",
			"broadwayworld-com":   "broadwayworld",
			"theatermania-com":    "theatermania",
			"nydn":                "daily-news",
			"new-york-daily-news": "daily-news",
			"am-new-york":         "amny",
			"amnewyork":           "amny",
		},
		CriticAliases: map[string]string{
			// Nickname and typo variants of the same person.
			"benjamin brantley":     "ben brantley",
			"ben brantly":           "ben brantley",
			"jess green":            "jesse green",
			"christopher jones":     "chris jones",
			"elizabeth vincentelli": "elisabeth vincentelli",
		},
		DisplayOverrides: map[string]string{
			"nytimes":             "The New York Times",
			"nypost":              "New York Post",
			"wall-street-journal": "The Wall Street Journal",
			"thr":                 "The Hollywood Reporter",
			"timeout-new-york":    "Time Out New York",
			"amny":                "amNewYork",
			"huffpost":            "HuffPost",
			"usa-today":           "USA Today",
			"npr":                 "NPR",
		},
	}
}

// LoadTables returns the default tables with any on-disk supplements merged
// over them. Either path may be empty. Supplement entries win over built-ins
// so typo corrections can ship without a code change.
func LoadTables(outletAliasFile, criticAliasFile string) (Tables, error) {
	tables := DefaultTables()
	for _, path := range []string{outletAliasFile, criticAliasFile} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Tables{}, fmt.Errorf("reading alias file %s: %w", path, err)
		}
		var af aliasFile
		if err := yaml.Unmarshal(data, &af); err != nil {
			return Tables{}, fmt.Errorf("parsing alias file %s: %w", path, err)
		}
		for k, v := range af.OutletAliases {
			tables.OutletAliases[Slugify(k)] = v
		}
		for k, v := range af.CriticAliases {
			tables.CriticAliases[CriticKey(k)] = CriticKey(v)
		}
		for k, v := range af.DisplayOverrides {
			tables.DisplayOverrides[k] = v
		}
	}
	return tables, nil
}
