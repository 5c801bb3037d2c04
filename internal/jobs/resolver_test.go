// resolver_test.go: tests for reference data name reconciliation
package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildsight/wildsight-go/internal/datastore"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()
	resolver := NewResolver(setupTestStore(t), UserSnapshot{})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"title cases each word", "Arctic skua", "Arctic Skua"},
		{"collapses internal whitespace", "  black-headed   gull ", "Black-Headed Gull"},
		{"keeps acronyms intact", "BOCC5", "BOCC5"},
		{"mixed acronym and word", "IUCN red list", "IUCN Red List"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.NormalizeName(tt.input))
		})
	}
}

func TestResolverSpecies(t *testing.T) {
	t.Parallel()

	t.Run("creates category and species together", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		resolver := NewResolver(store, UserSnapshot{ID: 2})

		species, err := resolver.Species("birds", "arctic skua", "Stercorarius parasiticus")
		require.NoError(t, err)
		assert.Equal(t, "Arctic Skua", species.Name)
		assert.Equal(t, "Stercorarius parasiticus", species.ScientificName)

		category, err := store.GetCategoryByName("Birds")
		require.NoError(t, err)
		assert.Equal(t, category.ID, species.CategoryID)
		assert.Equal(t, uint(2), category.CreatedBy)
	})

	t.Run("repeated resolution never duplicates", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		resolver := NewResolver(store, UserSnapshot{})

		first, err := resolver.Species("Birds", "Arctic Skua", "")
		require.NoError(t, err)

		// whitespace and lower-casing differences resolve to the same record
		second, err := resolver.Species(" birds ", "arctic  skua", "")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		category, err := store.GetCategoryByName("Birds")
		require.NoError(t, err)
		assert.Len(t, category.Species, 1)
	})

	t.Run("adds a species to an existing category", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		resolver := NewResolver(store, UserSnapshot{})

		_, err := resolver.Species("Birds", "Robin", "")
		require.NoError(t, err)
		_, err = resolver.Species("Birds", "Arctic Skua", "")
		require.NoError(t, err)

		category, err := store.GetCategoryByName("Birds")
		require.NoError(t, err)
		assert.Len(t, category.Species, 2)
	})
}

func TestResolverRating(t *testing.T) {
	t.Parallel()

	t.Run("creates scheme and rating together", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		resolver := NewResolver(store, UserSnapshot{})

		rating, err := resolver.Rating("BOCC5", "red")
		require.NoError(t, err)
		assert.Equal(t, "Red", rating.Name)

		scheme, err := store.GetStatusSchemeByName("BOCC5")
		require.NoError(t, err)
		assert.Equal(t, scheme.ID, rating.StatusSchemeID)
	})

	t.Run("repeated resolution never duplicates", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		resolver := NewResolver(store, UserSnapshot{})

		first, err := resolver.Rating("BOCC5", "Red")
		require.NoError(t, err)
		second, err := resolver.Rating("BOCC5", "Red")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		scheme, err := store.GetStatusSchemeByName("BOCC5")
		require.NoError(t, err)
		assert.Len(t, scheme.Ratings, 1)
	})
}

func TestResolverLocation(t *testing.T) {
	t.Parallel()

	t.Run("creates a missing location from the candidate", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		resolver := NewResolver(store, UserSnapshot{})

		latitude := 51.6741
		location, err := resolver.Location(&datastore.Location{
			Name:     "radley  lakes",
			County:   "Oxfordshire",
			Country:  "United Kingdom",
			Latitude: &latitude,
		})
		require.NoError(t, err)
		assert.Equal(t, "Radley Lakes", location.Name)
		assert.NotZero(t, location.ID)
	})

	t.Run("finds an existing location by normalized name", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		resolver := NewResolver(store, UserSnapshot{})

		existing := datastore.Location{Name: "Radley Lakes", County: "Oxfordshire", Country: "United Kingdom"}
		require.NoError(t, store.CreateLocation(&existing))

		// the candidate's other fields are ignored for an existing location
		found, err := resolver.Location(&datastore.Location{
			Name:    "radley lakes",
			County:  "Somewhere Else",
			Country: "United Kingdom",
		})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, found.ID)
		assert.Equal(t, "Oxfordshire", found.County)
	})
}
