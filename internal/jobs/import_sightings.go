// import_sightings.go: CSV import of sightings with their reference data
package jobs

import (
	"fmt"
	"io"
	"strings"

	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/errors"
)

// Column layout of the sightings import file. The header row is required but
// its content is ignored.
const (
	sightingColSpecies = iota
	sightingColScientificName
	sightingColCategory
	sightingColNumber
	sightingColGender
	sightingColWithYoung
	sightingColDate
	sightingColLocation
	sightingColAddress
	sightingColCity
	sightingColCounty
	sightingColPostcode
	sightingColCountry
	sightingColLatitude
	sightingColLongitude
	sightingColNotes
	sightingColumnCount
)

// SightingsImportJob imports sightings from a CSV stream, finding or
// creating the referenced categories, species and locations. Validation is
// fail-fast over the whole file with 1-based row numbers; application is
// row-at-a-time, so a duplicate sighting aborts the job while earlier rows
// stay persisted.
type SightingsImportJob struct {
	Source     io.Reader
	SourceName string
	User       UserSnapshot
}

// NewSightingsImportJob creates the import unit of work.
func NewSightingsImportJob(source io.Reader, sourceName string, user UserSnapshot) *SightingsImportJob {
	return &SightingsImportJob{Source: source, SourceName: sourceName, User: user}
}

// Name identifies the job type in job status records.
func (j *SightingsImportJob) Name() string {
	return "Sightings Import"
}

// Params serializes the source for the job status record.
func (j *SightingsImportJob) Params() string {
	return fmt.Sprintf("File=%s", j.SourceName)
}

// Run reads, validates and applies the import file.
func (j *SightingsImportJob) Run(store datastore.Interface) error {
	rows, err := readAllRows(j.Name(), j.Source)
	if err != nil {
		return err
	}

	// Phase one: validate every row before anything is applied
	for i, row := range rows {
		if err := j.validateRow(row); err != nil {
			return rowError(j.Name(), i+1, err)
		}
	}

	// Phase two: apply each row in its own transaction scope
	resolver := NewResolver(store, j.User)
	for _, row := range rows {
		if err := j.applyRow(store, resolver, row); err != nil {
			return err
		}
	}

	return nil
}

// validateRow checks the column schema of one data row.
func (j *SightingsImportJob) validateRow(row []string) error {
	if len(row) != sightingColumnCount {
		return errors.Newf("expected %d columns, found %d", sightingColumnCount, len(row)).Build()
	}

	required := []struct {
		col  int
		name string
	}{
		{sightingColSpecies, "species"},
		{sightingColCategory, "category"},
		{sightingColDate, "date"},
		{sightingColLocation, "location"},
		{sightingColCounty, "county"},
		{sightingColCountry, "country"},
	}
	for _, field := range required {
		if strings.TrimSpace(row[field.col]) == "" {
			return errors.Newf("%s must not be blank", field.name).Build()
		}
	}

	if _, err := parseOptionalInt(row[sightingColNumber]); err != nil {
		return errors.Newf("invalid number %q", row[sightingColNumber]).Build()
	}
	if _, err := datastore.ParseGender(row[sightingColGender]); err != nil {
		return errors.Newf("invalid gender %q", row[sightingColGender]).Build()
	}
	if _, err := parseWithYoung(row[sightingColWithYoung]); err != nil {
		return errors.Newf("invalid with-young value %q", row[sightingColWithYoung]).Build()
	}
	if _, err := parseImportDate(row[sightingColDate]); err != nil {
		return errors.Newf("invalid date %q", row[sightingColDate]).Build()
	}
	if _, err := parseOptionalFloat(row[sightingColLatitude]); err != nil {
		return errors.Newf("invalid latitude %q", row[sightingColLatitude]).Build()
	}
	if _, err := parseOptionalFloat(row[sightingColLongitude]); err != nil {
		return errors.Newf("invalid longitude %q", row[sightingColLongitude]).Build()
	}

	return nil
}

// applyRow resolves the reference data for one row and creates the sighting.
func (j *SightingsImportJob) applyRow(store datastore.Interface, resolver *Resolver, row []string) error {
	species, err := resolver.Species(
		row[sightingColCategory], row[sightingColSpecies], row[sightingColScientificName])
	if err != nil {
		return err
	}

	latitude, _ := parseOptionalFloat(row[sightingColLatitude])
	longitude, _ := parseOptionalFloat(row[sightingColLongitude])
	location, err := resolver.Location(&datastore.Location{
		Name:      row[sightingColLocation],
		Address:   strings.TrimSpace(row[sightingColAddress]),
		City:      strings.TrimSpace(row[sightingColCity]),
		County:    strings.TrimSpace(row[sightingColCounty]),
		Postcode:  strings.TrimSpace(row[sightingColPostcode]),
		Country:   strings.TrimSpace(row[sightingColCountry]),
		Latitude:  latitude,
		Longitude: longitude,
	})
	if err != nil {
		return err
	}

	number, _ := parseOptionalInt(row[sightingColNumber])
	gender, _ := datastore.ParseGender(row[sightingColGender])
	withYoung, _ := parseWithYoung(row[sightingColWithYoung])
	date, _ := parseImportDate(row[sightingColDate])

	sighting := datastore.Sighting{
		LocationID: location.ID,
		SpeciesID:  species.ID,
		Date:       date.Format(datastore.DateFormat),
		Number:     number,
		Gender:     gender,
		WithYoung:  withYoung,
		Notes:      strings.TrimSpace(row[sightingColNotes]),
		CreatedBy:  j.User.ID,
		UpdatedBy:  j.User.ID,
	}
	return store.CreateSighting(&sighting)
}
