// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"log"
	"os"
	"time"

	"github.com/wildsight/wildsight-go/internal/conf"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Interface abstracts the underlying database implementation and defines the
// operations available on the store.
type Interface interface {
	Open() error
	Close() error

	// categories
	CreateCategory(category *Category) error
	GetCategory(id uint) (Category, error)
	GetCategoryByName(name string) (Category, error)
	GetCategories() ([]Category, error)
	UpdateCategory(category *Category) error
	DeleteCategory(id uint) error

	// species
	CreateSpecies(species *Species) error
	GetSpecies(id uint) (Species, error)
	GetSpeciesByName(name string) (Species, error)
	GetSpeciesByCategory(categoryID uint) ([]Species, error)
	UpdateSpecies(species *Species) error
	DeleteSpecies(id uint) error

	// locations
	CreateLocation(location *Location) error
	GetLocation(id uint) (Location, error)
	GetLocationByName(name string) (Location, error)
	GetLocations() ([]Location, error)
	UpdateLocation(location *Location) error
	DeleteLocation(id uint) error

	// sightings
	CreateSighting(sighting *Sighting) error
	GetSighting(id uint) (Sighting, error)
	SearchSightings(filter *SightingFilter) ([]Sighting, error)
	GetLifeList(categoryID uint) ([]LifeListEntry, error)

	// status schemes and ratings
	CreateStatusScheme(scheme *StatusScheme) error
	GetStatusScheme(id uint) (StatusScheme, error)
	GetStatusSchemeByName(name string) (StatusScheme, error)
	GetStatusSchemes() ([]StatusScheme, error)
	DeleteStatusScheme(id uint) error
	CreateStatusRating(rating *StatusRating) error
	GetStatusRating(id uint) (StatusRating, error)
	DeleteStatusRating(id uint) error
	CreateSpeciesStatusRating(rating *SpeciesStatusRating) error
	GetSpeciesStatusRatings(speciesID uint) ([]SpeciesStatusRating, error)

	// job statuses
	CreateJobStatus(status *JobStatus) error
	CloseJobStatus(id uint, endedAt time.Time, errorText string, user uint) error
	GetJobStatus(id uint) (JobStatus, error)
	SearchJobStatuses(filter *JobStatusFilter) ([]JobStatus, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new store instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// Close is a no-op for stores without connection-level cleanup.
func (ds *DataStore) Close() error {
	return nil
}

// Open on the embedded DataStore is overridden by the concrete stores.
func (ds *DataStore) Open() error {
	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	models := []any{
		&Category{},
		&Species{},
		&Location{},
		&Sighting{},
		&StatusScheme{},
		&StatusRating{},
		&SpeciesStatusRating{},
		&JobStatus{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return dbError(err, "auto_migrate", "", "db_type", dbType)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}

	return nil
}
