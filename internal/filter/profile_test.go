package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/estates/internal/models"
)

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles()

	for _, lt := range models.ListingTypes() {
		profile, ok := profiles.Lookup(lt)
		require.True(t, ok, "missing profile for %s", lt)
		assert.Equal(t, lt, profile.Type)
		assert.Equal(t, SearchNarrows, profile.SearchMode)
		assert.Equal(t, []string{"name", "location", "description"}, profile.SearchFields)
	}

	_, ok := profiles.Lookup("offices")
	assert.False(t, ok)
}

func TestProfileKeys(t *testing.T) {
	profile := DefaultProfiles()[models.ListingTypeBudgetHome]

	assert.Equal(t,
		[]string{"location", "propertyType", "facing", "status", "builtUpArea", "priceRange", SearchKey},
		profile.Keys())
}

const overrideYAML = `
profiles:
  projects:
    search_mode: override
    categories:
      - key: city
        field: city
    ranges:
      - key: carpetArea
        field: carpet_area
        unit: sq.ft
        strategy: fixed
        breakpoints: [500, 1000]
      - key: builtUpArea
        field: built_up_area
        strategy: dynamic
        threshold: 250
`

func TestParseProfiles(t *testing.T) {
	profiles, err := ParseProfiles([]byte(overrideYAML))
	require.NoError(t, err)

	project := profiles[models.ListingTypeProject]
	assert.Equal(t, SearchOverrides, project.SearchMode)
	assert.Equal(t, []CategoryField{{Key: "city", Field: "city"}}, project.Categories)
	require.Len(t, project.Ranges, 2)
	assert.Equal(t, FixedLadder{Breakpoints: []int{500, 1000}, Unit: "sq.ft"}, project.Ranges[0].Strategy)
	assert.Equal(t, DynamicSplit{Threshold: 250}, project.Ranges[1].Strategy)
	assert.Equal(t, defaultSearchFields, project.SearchFields)

	// untouched profiles keep their defaults
	assert.Equal(t, DefaultProfiles()[models.ListingTypePlot], profiles[models.ListingTypePlot])
}

func TestParseProfiles_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown listing type",
			yaml: "profiles:\n  offices:\n    categories: []\n",
		},
		{
			name: "unknown strategy",
			yaml: "profiles:\n  plots:\n    ranges:\n      - {key: a, field: a, strategy: log}\n",
		},
		{
			name: "descending breakpoints",
			yaml: "profiles:\n  plots:\n    ranges:\n      - {key: a, field: a, strategy: fixed, breakpoints: [300, 200]}\n",
		},
		{
			name: "fixed without breakpoints",
			yaml: "profiles:\n  plots:\n    ranges:\n      - {key: a, field: a, strategy: fixed}\n",
		},
		{
			name: "duplicate key",
			yaml: "profiles:\n  plots:\n    categories:\n      - {key: a, field: a}\n      - {key: a, field: b}\n",
		},
		{
			name: "key collides with search",
			yaml: "profiles:\n  plots:\n    categories:\n      - {key: searchTerm, field: name}\n",
		},
		{
			name: "missing field",
			yaml: "profiles:\n  plots:\n    categories:\n      - {key: a}\n",
		},
		{
			name: "unknown search mode",
			yaml: "profiles:\n  plots:\n    search_mode: fuzzy\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProfiles([]byte(tc.yaml))
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}

	_, err := ParseProfiles([]byte("profiles: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoadProfiles(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		profiles, err := LoadProfiles("")
		require.NoError(t, err)
		assert.Equal(t, DefaultProfiles(), profiles)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(overrideYAML), 0o600))

		profiles, err := LoadProfiles(path)
		require.NoError(t, err)
		assert.Equal(t, SearchOverrides, profiles[models.ListingTypeProject].SearchMode)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read filter profiles")
	})
}
