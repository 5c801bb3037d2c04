// import_ratings_test.go: tests for the status rating import job
package jobs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildsight/wildsight-go/internal/errors"
)

const ratingsHeader = "Species,Category,Scheme,Rating,Region,Start,End\n"

func TestStatusRatingImport(t *testing.T) {
	t.Parallel()

	t.Run("imports a rating with its reference data", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)

		csvData := ratingsHeader +
			"Arctic Skua,Birds,BOCC5,Red,United Kingdom,01/12/2021,\n"
		runner := NewStatusRatingImportJob(strings.NewReader(csvData), "ratings.csv", UserSnapshot{ID: 4})

		runErr, status := runAndWait(t, store, runner, UserSnapshot{ID: 4})
		require.NoError(t, runErr)
		assert.Empty(t, status.Error)
		assert.Equal(t, "File=ratings.csv", status.Parameters)

		species, err := store.GetSpeciesByName("Arctic Skua")
		require.NoError(t, err)
		assert.Equal(t, "Birds", species.Category.Name)

		ratings, err := store.GetSpeciesStatusRatings(species.ID)
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		assert.Equal(t, "Red", ratings[0].Rating.Name)
		assert.Equal(t, "BOCC5", ratings[0].Rating.Scheme.Name)
		assert.Equal(t, "United Kingdom", ratings[0].Region)
		assert.Equal(t, "2021-12-01", ratings[0].Start)
		assert.Nil(t, ratings[0].End)
	})

	t.Run("repeated import reuses reference data", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)

		csvData := ratingsHeader +
			"Arctic Skua,Birds,BOCC5,Amber,United Kingdom,01/01/2015,\n" +
			"Arctic Skua,Birds,BOCC5,Red,United Kingdom,01/12/2021,\n"
		runner := NewStatusRatingImportJob(strings.NewReader(csvData), "ratings.csv", UserSnapshot{})

		runErr, _ := runAndWait(t, store, runner, UserSnapshot{})
		require.NoError(t, runErr)

		scheme, err := store.GetStatusSchemeByName("BOCC5")
		require.NoError(t, err)
		assert.Len(t, scheme.Ratings, 2)

		// the second row closed the rating the first row opened
		species, err := store.GetSpeciesByName("Arctic Skua")
		require.NoError(t, err)
		ratings, err := store.GetSpeciesStatusRatings(species.ID)
		require.NoError(t, err)
		require.Len(t, ratings, 2)
		for i := range ratings {
			if ratings[i].Rating.Name == "Amber" {
				assert.NotNil(t, ratings[i].End)
			} else {
				assert.Nil(t, ratings[i].End)
			}
		}
	})

	t.Run("parses an explicit end date", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)

		csvData := ratingsHeader +
			"Arctic Skua,Birds,BOCC4,Amber,United Kingdom,01/01/2015,30/11/2021\n"
		runner := NewStatusRatingImportJob(strings.NewReader(csvData), "ratings.csv", UserSnapshot{})

		runErr, _ := runAndWait(t, store, runner, UserSnapshot{})
		require.NoError(t, runErr)

		species, err := store.GetSpeciesByName("Arctic Skua")
		require.NoError(t, err)
		ratings, err := store.GetSpeciesStatusRatings(species.ID)
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		require.NotNil(t, ratings[0].End)
		assert.Equal(t, "2021-11-30", *ratings[0].End)
	})

	t.Run("validation failure reports the 1-based row and applies nothing", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)

		csvData := ratingsHeader +
			"Arctic Skua,Birds,BOCC5,Red,United Kingdom,01/12/2021,\n" +
			"Robin,Birds,BOCC5,Green,United Kingdom,not-a-date,\n"
		runner := NewStatusRatingImportJob(strings.NewReader(csvData), "ratings.csv", UserSnapshot{})

		runErr, status := runAndWait(t, store, runner, UserSnapshot{})
		require.Error(t, runErr)
		assert.True(t, errors.HasCategory(runErr, errors.CategoryValidation))
		assert.Contains(t, runErr.Error(), "row 2")
		assert.Equal(t, runErr.Error(), status.Error)

		// valid rows before the bad one were not applied
		_, err := store.GetSpeciesByName("Arctic Skua")
		assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	})

	t.Run("rejects blank required columns", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)

		csvData := ratingsHeader +
			"Arctic Skua,Birds,BOCC5,Red, ,01/12/2021,\n"
		runner := NewStatusRatingImportJob(strings.NewReader(csvData), "ratings.csv", UserSnapshot{})

		runErr, _ := runAndWait(t, store, runner, UserSnapshot{})
		require.Error(t, runErr)
		assert.Contains(t, runErr.Error(), "row 1")
		assert.Contains(t, runErr.Error(), "region")
	})

	t.Run("rejects a short row", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)

		csvData := ratingsHeader +
			"Arctic Skua,Birds,BOCC5\n"
		runner := NewStatusRatingImportJob(strings.NewReader(csvData), "ratings.csv", UserSnapshot{})

		runErr, _ := runAndWait(t, store, runner, UserSnapshot{})
		require.Error(t, runErr)
		assert.Contains(t, runErr.Error(), "row 1")
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		runner := NewStatusRatingImportJob(strings.NewReader(""), "ratings.csv", UserSnapshot{})

		runErr, _ := runAndWait(t, store, runner, UserSnapshot{})
		require.Error(t, runErr)
		assert.Contains(t, runErr.Error(), "header")
	})

	t.Run("header-only file imports nothing", func(t *testing.T) {
		t.Parallel()
		store := setupTestStore(t)
		runner := NewStatusRatingImportJob(strings.NewReader(ratingsHeader), "ratings.csv", UserSnapshot{})

		runErr, status := runAndWait(t, store, runner, UserSnapshot{})
		assert.NoError(t, runErr)
		assert.Empty(t, status.Error)
	})
}
