// reference_test.go: tests for category, species and location operations
package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildsight/wildsight-go/internal/errors"
)

func TestCreateCategory(t *testing.T) {
	t.Parallel()

	t.Run("creates and retrieves by name", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)

		category := Category{Name: "Birds", GenderRecorded: true, CreatedBy: 1}
		require.NoError(t, ds.CreateCategory(&category))
		assert.NotZero(t, category.ID)

		found, err := ds.GetCategoryByName("Birds")
		require.NoError(t, err)
		assert.Equal(t, category.ID, found.ID)
		assert.True(t, found.GenderRecorded)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)

		err := ds.CreateCategory(&Category{Name: "   "})
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)

		require.NoError(t, ds.CreateCategory(&Category{Name: "Birds"}))
		err := ds.CreateCategory(&Category{Name: "Birds"})
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConflict))
	})

	t.Run("lookup of missing name is a not-found error", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)

		_, err := ds.GetCategoryByName("Mammals")
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Parallel()

	t.Run("cascades to species", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)
		category, species := seedCategoryWithSpecies(t, ds, "Birds", "Robin")

		require.NoError(t, ds.DeleteCategory(category.ID))

		_, err := ds.GetCategory(category.ID)
		assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
		_, err = ds.GetSpecies(species.ID)
		assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	})

	t.Run("blocked while sightings reference its species", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)
		category, species := seedCategoryWithSpecies(t, ds, "Birds", "Robin")
		location := seedLocation(t, ds, "Radley Lakes")

		sighting := Sighting{LocationID: location.ID, SpeciesID: species.ID, Date: "2021-12-14"}
		require.NoError(t, ds.CreateSighting(&sighting))

		err := ds.DeleteCategory(category.ID)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConflict))
	})
}

func TestSpecies(t *testing.T) {
	t.Parallel()

	t.Run("belongs to its category", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)
		category, species := seedCategoryWithSpecies(t, ds, "Birds", "Robin")

		found, err := ds.GetSpeciesByName("Robin")
		require.NoError(t, err)
		assert.Equal(t, species.ID, found.ID)
		assert.Equal(t, category.Name, found.Category.Name)
	})

	t.Run("requires a category", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)

		err := ds.CreateSpecies(&Species{Name: "Robin"})
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})

	t.Run("delete blocked while sightings reference it", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)
		_, species := seedCategoryWithSpecies(t, ds, "Birds", "Robin")
		location := seedLocation(t, ds, "Radley Lakes")

		sighting := Sighting{LocationID: location.ID, SpeciesID: species.ID, Date: "2021-12-14"}
		require.NoError(t, ds.CreateSighting(&sighting))

		err := ds.DeleteSpecies(species.ID)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConflict))

		// removing the sighting unblocks the delete
		require.NoError(t, ds.DB.Delete(&Sighting{}, sighting.ID).Error)
		assert.NoError(t, ds.DeleteSpecies(species.ID))
	})
}

func TestLocation(t *testing.T) {
	t.Parallel()

	t.Run("requires county and country", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)

		err := ds.CreateLocation(&Location{Name: "Radley Lakes", Country: "United Kingdom"})
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

		err = ds.CreateLocation(&Location{Name: "Radley Lakes", County: "Oxfordshire"})
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})

	t.Run("stores optional coordinates", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)

		latitude := 51.6741
		longitude := -1.2402
		location := Location{
			Name:      "Radley Lakes",
			County:    "Oxfordshire",
			Country:   "United Kingdom",
			Latitude:  &latitude,
			Longitude: &longitude,
		}
		require.NoError(t, ds.CreateLocation(&location))

		found, err := ds.GetLocation(location.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Latitude)
		assert.InDelta(t, latitude, *found.Latitude, 0.0001)
	})

	t.Run("delete blocked while sightings reference it", func(t *testing.T) {
		t.Parallel()
		ds := setupTestDB(t)
		_, species := seedCategoryWithSpecies(t, ds, "Birds", "Robin")
		location := seedLocation(t, ds, "Radley Lakes")

		sighting := Sighting{LocationID: location.ID, SpeciesID: species.ID, Date: "2021-12-14"}
		require.NoError(t, ds.CreateSighting(&sighting))

		err := ds.DeleteLocation(location.ID)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConflict))
	})
}
