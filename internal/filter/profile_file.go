package filter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stwalsh4118/estates/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned for profile files that cannot be used.
var ErrInvalidProfile = errors.New("invalid filter profile")

const (
	strategyFixed   = "fixed"
	strategyDynamic = "dynamic"
)

type profileFile struct {
	Profiles map[string]profileDoc `yaml:"profiles"`
}

type profileDoc struct {
	SearchMode   string        `yaml:"search_mode"`
	Categories   []categoryDoc `yaml:"categories"`
	Ranges       []rangeDoc    `yaml:"ranges"`
	SearchFields []string      `yaml:"search_fields"`
}

type categoryDoc struct {
	Key     string `yaml:"key"`
	Field   string `yaml:"field"`
	Numeric bool   `yaml:"numeric"`
}

type rangeDoc struct {
	Key         string `yaml:"key"`
	Field       string `yaml:"field"`
	Unit        string `yaml:"unit"`
	Strategy    string `yaml:"strategy"`
	Breakpoints []int  `yaml:"breakpoints"`
	Threshold   int    `yaml:"threshold"`
}

// LoadProfiles returns the default profiles, replacing any listing type
// defined in the YAML file at path. An empty path returns the defaults.
func LoadProfiles(path string) (Profiles, error) {
	if path == "" {
		return DefaultProfiles(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter profiles: %w", err)
	}
	return ParseProfiles(data)
}

// ParseProfiles decodes a YAML profile document on top of the defaults.
func ParseProfiles(data []byte) (Profiles, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse filter profiles: %w", err)
	}

	profiles := DefaultProfiles()
	for name, doc := range file.Profiles {
		t, err := models.ParseListingType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		profile, err := doc.toProfile(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProfile, name, err)
		}
		profiles[t] = profile
	}
	return profiles, nil
}

func (d profileDoc) toProfile(t models.ListingType) (Profile, error) {
	profile := Profile{
		Type:         t,
		SearchMode:   SearchNarrows,
		SearchFields: d.SearchFields,
	}

	switch strings.ToLower(d.SearchMode) {
	case "", string(SearchNarrows):
	case string(SearchOverrides):
		profile.SearchMode = SearchOverrides
	default:
		return Profile{}, fmt.Errorf("unknown search_mode %q", d.SearchMode)
	}

	if len(profile.SearchFields) == 0 {
		profile.SearchFields = defaultSearchFields
	}

	seen := map[string]bool{SearchKey: true}
	for _, c := range d.Categories {
		if c.Key == "" || c.Field == "" {
			return Profile{}, fmt.Errorf("category needs key and field")
		}
		if seen[c.Key] {
			return Profile{}, fmt.Errorf("duplicate key %q", c.Key)
		}
		seen[c.Key] = true
		profile.Categories = append(profile.Categories, CategoryField(c))
	}

	for _, r := range d.Ranges {
		if r.Key == "" || r.Field == "" {
			return Profile{}, fmt.Errorf("range needs key and field")
		}
		if seen[r.Key] {
			return Profile{}, fmt.Errorf("duplicate key %q", r.Key)
		}
		seen[r.Key] = true

		strategy, err := r.strategy()
		if err != nil {
			return Profile{}, fmt.Errorf("range %q: %w", r.Key, err)
		}
		profile.Ranges = append(profile.Ranges, RangeField{Key: r.Key, Field: r.Field, Strategy: strategy})
	}

	return profile, nil
}

func (r rangeDoc) strategy() (BucketStrategy, error) {
	switch r.Strategy {
	case strategyFixed:
		if len(r.Breakpoints) == 0 {
			return nil, fmt.Errorf("fixed strategy needs breakpoints")
		}
		for i := 1; i < len(r.Breakpoints); i++ {
			if r.Breakpoints[i] <= r.Breakpoints[i-1] {
				return nil, fmt.Errorf("breakpoints must be strictly ascending")
			}
		}
		return FixedLadder{Breakpoints: r.Breakpoints, Unit: r.Unit}, nil
	case strategyDynamic:
		if r.Threshold < 0 {
			return nil, fmt.Errorf("threshold must be non-negative")
		}
		return DynamicSplit{Threshold: r.Threshold, Unit: r.Unit}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", r.Strategy)
	}
}
