// model.go this code defines the data model for the application
package datastore

import (
	"time"

	"github.com/wildsight/wildsight-go/internal/errors"
)

// DateFormat is the storage format for calendar dates.
const DateFormat = "2006-01-02"

// Gender records the sex of the animals seen in a sighting.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
	GenderBoth
)

var genderNames = map[Gender]string{
	GenderUnknown: "Unknown",
	GenderMale:    "Male",
	GenderFemale:  "Female",
	GenderBoth:    "Both",
}

// String returns the display name for the gender value.
func (g Gender) String() string {
	if name, ok := genderNames[g]; ok {
		return name
	}
	return "Unknown"
}

// ParseGender maps a display name back to a Gender value.
func ParseGender(name string) (Gender, error) {
	for g, n := range genderNames {
		if n == name {
			return g, nil
		}
	}
	return GenderUnknown, errors.Newf("unrecognised gender %q", name).
		Component("datastore").
		Category(errors.CategoryValidation).
		Context("field", "gender").
		Build()
}

// Category groups species, e.g. Birds or Mammals
type Category struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"uniqueIndex;not null"`
	GenderRecorded bool   // true if sightings of this category's species record gender
	Species        []Species `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedBy      uint
	UpdatedBy      uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Species represents a single species belonging to exactly one category
type Species struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"uniqueIndex;not null"`
	ScientificName string
	CategoryID     uint     `gorm:"index;not null"`
	Category       Category `gorm:"foreignKey:CategoryID"`
	CreatedBy      uint
	UpdatedBy      uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Location is a place where sightings are recorded
type Location struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Address   string
	City      string
	County    string `gorm:"not null"`
	Postcode  string
	Country   string `gorm:"not null"`
	Latitude  *float64
	Longitude *float64
	CreatedBy uint
	UpdatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sighting records one species seen at one location on one date.
// At most one sighting may exist per (location, species, date) triple.
type Sighting struct {
	ID         uint     `gorm:"primaryKey"`
	LocationID uint     `gorm:"not null;uniqueIndex:idx_sightings_location_species_date"`
	Location   Location `gorm:"foreignKey:LocationID"`
	SpeciesID  uint     `gorm:"not null;uniqueIndex:idx_sightings_location_species_date"`
	Species    Species  `gorm:"foreignKey:SpeciesID"`
	Date       string   `gorm:"not null;uniqueIndex:idx_sightings_location_species_date;index:idx_sightings_date"`
	Number     *int     // optional count of animals seen
	Gender     Gender
	WithYoung  bool
	Notes      string `gorm:"type:text"`
	CreatedBy  uint
	UpdatedBy  uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StatusScheme is a conservation status scheme, e.g. BOCC5
type StatusScheme struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Ratings   []StatusRating `gorm:"foreignKey:StatusSchemeID;constraint:OnDelete:CASCADE"`
	CreatedBy uint
	UpdatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusRating is a single rating within a conservation status scheme.
// Rating names are unique within their parent scheme.
type StatusRating struct {
	ID             uint         `gorm:"primaryKey"`
	Name           string       `gorm:"not null;uniqueIndex:idx_status_ratings_scheme_name"`
	StatusSchemeID uint         `gorm:"not null;uniqueIndex:idx_status_ratings_scheme_name"`
	Scheme         StatusScheme `gorm:"foreignKey:StatusSchemeID"`
	CreatedBy      uint
	UpdatedBy      uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SpeciesStatusRating assigns a conservation status rating to a species for a
// named region over a period. An open rating has no end date or an end date
// in the future; creating a new rating closes any overlapping open rating for
// the same species, scheme and region.
type SpeciesStatusRating struct {
	ID             uint         `gorm:"primaryKey"`
	SpeciesID      uint         `gorm:"index;not null"`
	Species        Species      `gorm:"foreignKey:SpeciesID"`
	StatusRatingID uint         `gorm:"index;not null"`
	Rating         StatusRating `gorm:"foreignKey:StatusRatingID"`
	Region         string       `gorm:"not null"`
	Start          string       `gorm:"column:start_date;not null"`
	End            *string      `gorm:"column:end_date"`
	CreatedBy      uint
	UpdatedBy      uint
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JobStatus tracks one run of a background import or export job. The row is
// created when the job launches and closed exactly once when it completes,
// then never mutated again.
type JobStatus struct {
	ID            uint   `gorm:"primaryKey"`
	CorrelationID string `gorm:"index"`
	Name          string `gorm:"index;not null"`
	Parameters    string `gorm:"type:text"`
	Start         time.Time `gorm:"index;not null"`
	End           *time.Time
	Error         string `gorm:"type:text"`
	CreatedBy     uint
	UpdatedBy     uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LifeListEntry is one row of the life list: a species that has been sighted
// at least once, with its category.
type LifeListEntry struct {
	Category string
	Species  string
}

// SightingFilter restricts sighting searches. Zero values leave the
// corresponding dimension unfiltered. Dates use DateFormat.
type SightingFilter struct {
	FromDate   string
	ToDate     string
	LocationID uint
	SpeciesID  uint
}

// JobStatusFilter restricts job status searches.
type JobStatusFilter struct {
	Name     string
	FromDate *time.Time
	ToDate   *time.Time
}
