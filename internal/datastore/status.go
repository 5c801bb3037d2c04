// status.go: CRUD operations for conservation status schemes and ratings
package datastore

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// CreateStatusScheme inserts a new conservation status scheme.
func (ds *DataStore) CreateStatusScheme(scheme *StatusScheme) error {
	if strings.TrimSpace(scheme.Name) == "" {
		return validationError("status scheme name must not be blank", "name", scheme.Name)
	}
	if err := ds.DB.Create(scheme).Error; err != nil {
		return mapWriteError(err, "create_status_scheme", "duplicate_scheme_name")
	}
	return nil
}

// GetStatusScheme retrieves a scheme by its ID, including its ratings.
func (ds *DataStore) GetStatusScheme(id uint) (StatusScheme, error) {
	var scheme StatusScheme
	if err := ds.DB.Preload("Ratings").First(&scheme, id).Error; err != nil {
		return StatusScheme{}, mapLookupError(err, "status scheme", id)
	}
	return scheme, nil
}

// GetStatusSchemeByName retrieves a scheme by its exact name, including its ratings.
func (ds *DataStore) GetStatusSchemeByName(name string) (StatusScheme, error) {
	var scheme StatusScheme
	if err := ds.DB.Preload("Ratings").Where("name = ?", name).First(&scheme).Error; err != nil {
		return StatusScheme{}, mapLookupError(err, "status scheme", name)
	}
	return scheme, nil
}

// GetStatusSchemes retrieves all schemes with their ratings.
func (ds *DataStore) GetStatusSchemes() ([]StatusScheme, error) {
	var schemes []StatusScheme
	if err := ds.DB.Preload("Ratings").Find(&schemes).Error; err != nil {
		return nil, dbError(err, "get_status_schemes", "")
	}
	return schemes, nil
}

// DeleteStatusScheme removes a scheme and all of its ratings. Ratings that are
// referenced by species status ratings block the delete.
func (ds *DataStore) DeleteStatusScheme(id uint) error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&SpeciesStatusRating{}).
			Joins("JOIN status_ratings ON status_ratings.id = species_status_ratings.status_rating_id").
			Where("status_ratings.status_scheme_id = ?", id).
			Count(&count).Error
		if err != nil {
			return dbError(err, "delete_status_scheme", "")
		}
		if count > 0 {
			return conflictError(errorReferencedRating, "delete_status_scheme", "rating_in_use")
		}

		if err := tx.Where("status_scheme_id = ?", id).Delete(&StatusRating{}).Error; err != nil {
			return dbError(err, "delete_status_scheme", "")
		}
		if err := tx.Delete(&StatusScheme{}, id).Error; err != nil {
			return dbError(err, "delete_status_scheme", "")
		}
		return nil
	})
}

// CreateStatusRating inserts a new rating under its scheme. Rating names are
// unique within the scheme.
func (ds *DataStore) CreateStatusRating(rating *StatusRating) error {
	if strings.TrimSpace(rating.Name) == "" {
		return validationError("status rating name must not be blank", "name", rating.Name)
	}
	if rating.StatusSchemeID == 0 {
		return validationError("status rating must belong to a scheme", "status_scheme_id", rating.StatusSchemeID)
	}
	if err := ds.DB.Create(rating).Error; err != nil {
		return mapWriteError(err, "create_status_rating", "duplicate_rating_name")
	}
	return nil
}

// GetStatusRating retrieves a rating by its ID, including its scheme.
func (ds *DataStore) GetStatusRating(id uint) (StatusRating, error) {
	var rating StatusRating
	if err := ds.DB.Preload("Scheme").First(&rating, id).Error; err != nil {
		return StatusRating{}, mapLookupError(err, "status rating", id)
	}
	return rating, nil
}

// DeleteStatusRating removes a rating. The delete is blocked while species
// status ratings reference it.
func (ds *DataStore) DeleteStatusRating(id uint) error {
	var count int64
	if err := ds.DB.Model(&SpeciesStatusRating{}).Where("status_rating_id = ?", id).Count(&count).Error; err != nil {
		return dbError(err, "delete_status_rating", "")
	}
	if count > 0 {
		return conflictError(errorReferencedRating, "delete_status_rating", "rating_in_use")
	}
	if err := ds.DB.Delete(&StatusRating{}, id).Error; err != nil {
		return dbError(err, "delete_status_rating", "")
	}
	return nil
}

// CreateSpeciesStatusRating assigns a rating to a species for a region. Any
// open rating for the same species, scheme and region is closed by setting
// its end date to today, in the same transaction as the insert.
func (ds *DataStore) CreateSpeciesStatusRating(rating *SpeciesStatusRating) error {
	if strings.TrimSpace(rating.Region) == "" {
		return validationError("species status rating region must not be blank", "region", rating.Region)
	}
	if _, err := time.Parse(DateFormat, rating.Start); err != nil {
		return validationError("species status rating start date is invalid", "start", rating.Start)
	}
	if rating.End != nil {
		if _, err := time.Parse(DateFormat, *rating.End); err != nil {
			return validationError("species status rating end date is invalid", "end", *rating.End)
		}
		// DateFormat strings compare lexically in calendar order
		if *rating.End < rating.Start {
			return validationError("species status rating end date precedes start date", "end", *rating.End)
		}
	}

	return ds.DB.Transaction(func(tx *gorm.DB) error {
		var statusRating StatusRating
		if err := tx.First(&statusRating, rating.StatusRatingID).Error; err != nil {
			return mapLookupError(err, "status rating", rating.StatusRatingID)
		}

		today := time.Now().Format(DateFormat)

		// Close any rating for the same species, scheme and region that is
		// still open (no end date, or an end date in the future).
		var open []SpeciesStatusRating
		err := tx.
			Joins("JOIN status_ratings ON status_ratings.id = species_status_ratings.status_rating_id").
			Where("species_status_ratings.species_id = ?", rating.SpeciesID).
			Where("species_status_ratings.region = ?", rating.Region).
			Where("status_ratings.status_scheme_id = ?", statusRating.StatusSchemeID).
			Where("species_status_ratings.end_date IS NULL OR species_status_ratings.end_date >= ?", today).
			Find(&open).Error
		if err != nil {
			return dbError(err, "close_open_species_status_ratings", "")
		}

		for i := range open {
			endDate := today
			open[i].End = &endDate
			open[i].UpdatedBy = rating.CreatedBy
			if err := tx.Save(&open[i]).Error; err != nil {
				return dbError(err, "close_open_species_status_ratings", "")
			}
		}

		if err := tx.Create(rating).Error; err != nil {
			return mapWriteError(err, "create_species_status_rating", "duplicate_species_status_rating")
		}
		return nil
	})
}

// GetSpeciesStatusRatings retrieves all status ratings for a species, with
// rating and scheme details.
func (ds *DataStore) GetSpeciesStatusRatings(speciesID uint) ([]SpeciesStatusRating, error) {
	var ratings []SpeciesStatusRating
	err := ds.DB.
		Preload("Rating.Scheme").
		Preload("Species").
		Where("species_id = ?", speciesID).
		Find(&ratings).Error
	if err != nil {
		return nil, dbError(err, "get_species_status_ratings", "")
	}
	return ratings, nil
}
