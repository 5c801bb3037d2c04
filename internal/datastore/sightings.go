// sightings.go: sighting persistence, search and life list queries
package datastore

import (
	"time"
)

// CreateSighting inserts a new sighting. The database enforces at most one
// sighting per (location, species, date) triple; violations surface as
// conflict errors.
func (ds *DataStore) CreateSighting(sighting *Sighting) error {
	if sighting.LocationID == 0 {
		return validationError("sighting must reference a location", "location_id", sighting.LocationID)
	}
	if sighting.SpeciesID == 0 {
		return validationError("sighting must reference a species", "species_id", sighting.SpeciesID)
	}
	if _, err := time.Parse(DateFormat, sighting.Date); err != nil {
		return validationError("sighting date is invalid", "date", sighting.Date)
	}
	if err := ds.DB.Create(sighting).Error; err != nil {
		return mapWriteError(err, "create_sighting", "duplicate_sighting")
	}
	return nil
}

// GetSighting retrieves a sighting by its ID with species, category and
// location details.
func (ds *DataStore) GetSighting(id uint) (Sighting, error) {
	var sighting Sighting
	err := ds.DB.
		Preload("Species.Category").
		Preload("Location").
		First(&sighting, id).Error
	if err != nil {
		return Sighting{}, mapLookupError(err, "sighting", id)
	}
	return sighting, nil
}

// SearchSightings retrieves sightings matching the filter, with species,
// category and location details preloaded for rendering and export.
func (ds *DataStore) SearchSightings(filter *SightingFilter) ([]Sighting, error) {
	query := ds.DB.
		Preload("Species.Category").
		Preload("Location")

	if filter != nil {
		if filter.FromDate != "" {
			query = query.Where("date >= ?", filter.FromDate)
		}
		if filter.ToDate != "" {
			query = query.Where("date <= ?", filter.ToDate)
		}
		if filter.LocationID != 0 {
			query = query.Where("location_id = ?", filter.LocationID)
		}
		if filter.SpeciesID != 0 {
			query = query.Where("species_id = ?", filter.SpeciesID)
		}
	}

	var sightings []Sighting
	if err := query.Order("date ASC, id ASC").Find(&sightings).Error; err != nil {
		return nil, dbError(err, "search_sightings", "")
	}
	return sightings, nil
}

// GetLifeList returns the distinct set of species ever sighted, with their
// categories, optionally restricted to one category (0 means all).
func (ds *DataStore) GetLifeList(categoryID uint) ([]LifeListEntry, error) {
	query := ds.DB.Table("sightings").
		Select("categories.name AS category, species.name AS species").
		Joins("JOIN species ON species.id = sightings.species_id").
		Joins("JOIN categories ON categories.id = species.category_id").
		Group("categories.name, species.name").
		Order("categories.name ASC, species.name ASC")

	if categoryID != 0 {
		query = query.Where("species.category_id = ?", categoryID)
	}

	var entries []LifeListEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, dbError(err, "get_life_list", "")
	}
	return entries, nil
}
