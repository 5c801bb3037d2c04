// reference.go: CRUD operations for categories, species and locations
package datastore

import (
	"strings"

	"gorm.io/gorm"
)

// CreateCategory inserts a new category. The name must be non-blank and
// unique across all categories.
func (ds *DataStore) CreateCategory(category *Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return validationError("category name must not be blank", "name", category.Name)
	}
	if err := ds.DB.Create(category).Error; err != nil {
		return mapWriteError(err, "create_category", "duplicate_category_name")
	}
	return nil
}

// GetCategory retrieves a category by its ID, including its species.
func (ds *DataStore) GetCategory(id uint) (Category, error) {
	var category Category
	if err := ds.DB.Preload("Species").First(&category, id).Error; err != nil {
		return Category{}, mapLookupError(err, "category", id)
	}
	return category, nil
}

// GetCategoryByName retrieves a category by its exact name, including its species.
func (ds *DataStore) GetCategoryByName(name string) (Category, error) {
	var category Category
	if err := ds.DB.Preload("Species").Where("name = ?", name).First(&category).Error; err != nil {
		return Category{}, mapLookupError(err, "category", name)
	}
	return category, nil
}

// GetCategories retrieves all categories.
func (ds *DataStore) GetCategories() ([]Category, error) {
	var categories []Category
	if err := ds.DB.Preload("Species").Find(&categories).Error; err != nil {
		return nil, dbError(err, "get_categories", "")
	}
	return categories, nil
}

// UpdateCategory saves changes to an existing category.
func (ds *DataStore) UpdateCategory(category *Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return validationError("category name must not be blank", "name", category.Name)
	}
	if err := ds.DB.Save(category).Error; err != nil {
		return mapWriteError(err, "update_category", "duplicate_category_name")
	}
	return nil
}

// DeleteCategory removes a category and all of its species. Species that are
// referenced by sightings block the delete.
func (ds *DataStore) DeleteCategory(id uint) error {
	return ds.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Sighting{}).
			Joins("JOIN species ON species.id = sightings.species_id").
			Where("species.category_id = ?", id).
			Count(&count).Error
		if err != nil {
			return dbError(err, "delete_category", "")
		}
		if count > 0 {
			return conflictError(
				errorReferencedSpecies, "delete_category", "species_in_use")
		}

		if err := tx.Where("category_id = ?", id).Delete(&Species{}).Error; err != nil {
			return dbError(err, "delete_category", "")
		}
		if err := tx.Delete(&Category{}, id).Error; err != nil {
			return dbError(err, "delete_category", "")
		}
		return nil
	})
}

// CreateSpecies inserts a new species under its category.
func (ds *DataStore) CreateSpecies(species *Species) error {
	if strings.TrimSpace(species.Name) == "" {
		return validationError("species name must not be blank", "name", species.Name)
	}
	if species.CategoryID == 0 {
		return validationError("species must belong to a category", "category_id", species.CategoryID)
	}
	if err := ds.DB.Create(species).Error; err != nil {
		return mapWriteError(err, "create_species", "duplicate_species_name")
	}
	return nil
}

// GetSpecies retrieves a species by its ID, including its category.
func (ds *DataStore) GetSpecies(id uint) (Species, error) {
	var species Species
	if err := ds.DB.Preload("Category").First(&species, id).Error; err != nil {
		return Species{}, mapLookupError(err, "species", id)
	}
	return species, nil
}

// GetSpeciesByName retrieves a species by its exact name.
func (ds *DataStore) GetSpeciesByName(name string) (Species, error) {
	var species Species
	if err := ds.DB.Preload("Category").Where("name = ?", name).First(&species).Error; err != nil {
		return Species{}, mapLookupError(err, "species", name)
	}
	return species, nil
}

// GetSpeciesByCategory retrieves all species belonging to a category.
func (ds *DataStore) GetSpeciesByCategory(categoryID uint) ([]Species, error) {
	var species []Species
	if err := ds.DB.Where("category_id = ?", categoryID).Find(&species).Error; err != nil {
		return nil, dbError(err, "get_species_by_category", "")
	}
	return species, nil
}

// UpdateSpecies saves changes to an existing species.
func (ds *DataStore) UpdateSpecies(species *Species) error {
	if strings.TrimSpace(species.Name) == "" {
		return validationError("species name must not be blank", "name", species.Name)
	}
	if err := ds.DB.Save(species).Error; err != nil {
		return mapWriteError(err, "update_species", "duplicate_species_name")
	}
	return nil
}

// DeleteSpecies removes a species. The delete is blocked while sightings
// reference the species.
func (ds *DataStore) DeleteSpecies(id uint) error {
	var count int64
	if err := ds.DB.Model(&Sighting{}).Where("species_id = ?", id).Count(&count).Error; err != nil {
		return dbError(err, "delete_species", "")
	}
	if count > 0 {
		return conflictError(errorReferencedSpecies, "delete_species", "species_in_use")
	}
	if err := ds.DB.Delete(&Species{}, id).Error; err != nil {
		return dbError(err, "delete_species", "")
	}
	return nil
}

// CreateLocation inserts a new location. Name, county and country are required.
func (ds *DataStore) CreateLocation(location *Location) error {
	if strings.TrimSpace(location.Name) == "" {
		return validationError("location name must not be blank", "name", location.Name)
	}
	if strings.TrimSpace(location.County) == "" {
		return validationError("location county must not be blank", "county", location.County)
	}
	if strings.TrimSpace(location.Country) == "" {
		return validationError("location country must not be blank", "country", location.Country)
	}
	if err := ds.DB.Create(location).Error; err != nil {
		return mapWriteError(err, "create_location", "duplicate_location_name")
	}
	return nil
}

// GetLocation retrieves a location by its ID.
func (ds *DataStore) GetLocation(id uint) (Location, error) {
	var location Location
	if err := ds.DB.First(&location, id).Error; err != nil {
		return Location{}, mapLookupError(err, "location", id)
	}
	return location, nil
}

// GetLocationByName retrieves a location by its exact name.
func (ds *DataStore) GetLocationByName(name string) (Location, error) {
	var location Location
	if err := ds.DB.Where("name = ?", name).First(&location).Error; err != nil {
		return Location{}, mapLookupError(err, "location", name)
	}
	return location, nil
}

// GetLocations retrieves all locations.
func (ds *DataStore) GetLocations() ([]Location, error) {
	var locations []Location
	if err := ds.DB.Find(&locations).Error; err != nil {
		return nil, dbError(err, "get_locations", "")
	}
	return locations, nil
}

// UpdateLocation saves changes to an existing location.
func (ds *DataStore) UpdateLocation(location *Location) error {
	if strings.TrimSpace(location.Name) == "" {
		return validationError("location name must not be blank", "name", location.Name)
	}
	if err := ds.DB.Save(location).Error; err != nil {
		return mapWriteError(err, "update_location", "duplicate_location_name")
	}
	return nil
}

// DeleteLocation removes a location. The delete is blocked while sightings
// reference the location.
func (ds *DataStore) DeleteLocation(id uint) error {
	var count int64
	if err := ds.DB.Model(&Sighting{}).Where("location_id = ?", id).Count(&count).Error; err != nil {
		return dbError(err, "delete_location", "")
	}
	if count > 0 {
		return conflictError(errorReferencedLocation, "delete_location", "location_in_use")
	}
	if err := ds.DB.Delete(&Location{}, id).Error; err != nil {
		return dbError(err, "delete_location", "")
	}
	return nil
}
