// datastore_test.go: shared test helpers for the datastore package
package datastore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DataStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&Category{},
		&Species{},
		&Location{},
		&Sighting{},
		&StatusScheme{},
		&StatusRating{},
		&SpeciesStatusRating{},
		&JobStatus{},
	)
	require.NoError(t, err)

	return &DataStore{DB: db}
}

// seedCategoryWithSpecies creates a category holding one species
func seedCategoryWithSpecies(t *testing.T, ds *DataStore, categoryName, speciesName string) (Category, Species) {
	t.Helper()

	category := Category{Name: categoryName}
	require.NoError(t, ds.CreateCategory(&category))

	species := Species{Name: speciesName, CategoryID: category.ID}
	require.NoError(t, ds.CreateSpecies(&species))

	return category, species
}

// seedLocation creates a location with the required fields populated
func seedLocation(t *testing.T, ds *DataStore, name string) Location {
	t.Helper()

	location := Location{Name: name, County: "Oxfordshire", Country: "United Kingdom"}
	require.NoError(t, ds.CreateLocation(&location))

	return location
}
