// resolver.go: find-or-create reconciliation of reference data by name
package jobs

import (
	"strings"

	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resolver maps human-readable names onto persistent reference data records,
// creating records that do not yet exist. Every import job reconciles its
// rows through a resolver so repeated imports never duplicate categories,
// species, locations, schemes or ratings.
type Resolver struct {
	store  datastore.Interface
	user   UserSnapshot
	titler cases.Caser
}

// NewResolver creates a resolver acting as the given user.
func NewResolver(store datastore.Interface, user UserSnapshot) *Resolver {
	return &Resolver{
		store: store,
		user:  user,
		// NoLower keeps acronyms such as scheme names intact
		titler: cases.Title(language.English, cases.NoLower),
	}
}

// NormalizeName collapses internal whitespace and applies title casing to a
// display name.
func (r *Resolver) NormalizeName(name string) string {
	return r.titler.String(collapseWhitespace(name))
}

// collapseWhitespace trims a string and collapses internal runs of
// whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Species finds or creates the species with the given name under the given
// category, creating the category first when it does not exist. Zero, one or
// two records may be created per call; existing records are never duplicated.
func (r *Resolver) Species(categoryName, speciesName, scientificName string) (datastore.Species, error) {
	categoryName = r.NormalizeName(categoryName)
	speciesName = r.NormalizeName(speciesName)
	// Scientific names keep their botanical casing
	scientificName = collapseWhitespace(scientificName)

	category, err := r.store.GetCategoryByName(categoryName)
	if err != nil {
		if !errors.HasCategory(err, errors.CategoryNotFound) {
			return datastore.Species{}, err
		}
		category = datastore.Category{
			Name:      categoryName,
			CreatedBy: r.user.ID,
			UpdatedBy: r.user.ID,
		}
		if err := r.store.CreateCategory(&category); err != nil {
			return datastore.Species{}, err
		}
		// A brand-new category cannot already contain a matching species
		return r.createSpecies(&category, speciesName, scientificName)
	}

	// Per-category species counts are small, so a linear scan is fine here.
	for i := range category.Species {
		if category.Species[i].Name == speciesName {
			return category.Species[i], nil
		}
	}

	return r.createSpecies(&category, speciesName, scientificName)
}

func (r *Resolver) createSpecies(category *datastore.Category, name, scientificName string) (datastore.Species, error) {
	species := datastore.Species{
		Name:           name,
		ScientificName: scientificName,
		CategoryID:     category.ID,
		CreatedBy:      r.user.ID,
		UpdatedBy:      r.user.ID,
	}
	if err := r.store.CreateSpecies(&species); err != nil {
		return datastore.Species{}, err
	}
	return species, nil
}

// Rating finds or creates the rating with the given name under the given
// conservation status scheme, creating the scheme first when it does not
// exist.
func (r *Resolver) Rating(schemeName, ratingName string) (datastore.StatusRating, error) {
	schemeName = r.NormalizeName(schemeName)
	ratingName = r.NormalizeName(ratingName)

	scheme, err := r.store.GetStatusSchemeByName(schemeName)
	if err != nil {
		if !errors.HasCategory(err, errors.CategoryNotFound) {
			return datastore.StatusRating{}, err
		}
		scheme = datastore.StatusScheme{
			Name:      schemeName,
			CreatedBy: r.user.ID,
			UpdatedBy: r.user.ID,
		}
		if err := r.store.CreateStatusScheme(&scheme); err != nil {
			return datastore.StatusRating{}, err
		}
		return r.createRating(&scheme, ratingName)
	}

	for i := range scheme.Ratings {
		if scheme.Ratings[i].Name == ratingName {
			return scheme.Ratings[i], nil
		}
	}

	return r.createRating(&scheme, ratingName)
}

func (r *Resolver) createRating(scheme *datastore.StatusScheme, name string) (datastore.StatusRating, error) {
	rating := datastore.StatusRating{
		Name:           name,
		StatusSchemeID: scheme.ID,
		CreatedBy:      r.user.ID,
		UpdatedBy:      r.user.ID,
	}
	if err := r.store.CreateStatusRating(&rating); err != nil {
		return datastore.StatusRating{}, err
	}
	return rating, nil
}

// Location finds the location matching the candidate's name, or creates the
// candidate when no match exists. The candidate's name is normalized before
// the lookup.
func (r *Resolver) Location(candidate *datastore.Location) (datastore.Location, error) {
	name := r.NormalizeName(candidate.Name)

	location, err := r.store.GetLocationByName(name)
	if err == nil {
		return location, nil
	}
	if !errors.HasCategory(err, errors.CategoryNotFound) {
		return datastore.Location{}, err
	}

	location = datastore.Location{
		Name:      name,
		Address:   candidate.Address,
		City:      candidate.City,
		County:    candidate.County,
		Postcode:  candidate.Postcode,
		Country:   candidate.Country,
		Latitude:  candidate.Latitude,
		Longitude: candidate.Longitude,
		CreatedBy: r.user.ID,
		UpdatedBy: r.user.ID,
	}
	if err := r.store.CreateLocation(&location); err != nil {
		return datastore.Location{}, err
	}
	return location, nil
}
