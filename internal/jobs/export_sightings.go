// export_sightings.go: CSV export of sightings matching a filter
package jobs

import (
	"encoding/csv"
	"fmt"

	"github.com/wildsight/wildsight-go/internal/datastore"
)

// sightingsExportHeader is the fixed column schema of the sightings export.
var sightingsExportHeader = []string{
	"Species", "Category", "Number", "Gender", "WithYoung", "Date",
	"Location", "Address", "City", "County", "Postcode", "Country",
	"Latitude", "Longitude",
}

// SightingsExportJob streams sightings matching a filter to a CSV file.
type SightingsExportJob struct {
	Filter   datastore.SightingFilter
	FilePath string
}

// NewSightingsExportJob creates the export unit of work for the given filter
// and output path.
func NewSightingsExportJob(filter datastore.SightingFilter, filePath string) *SightingsExportJob {
	return &SightingsExportJob{Filter: filter, FilePath: filePath}
}

// Name identifies the job type in job status records.
func (j *SightingsExportJob) Name() string {
	return "Sightings Export"
}

// Params serializes the filter and target file for the job status record.
func (j *SightingsExportJob) Params() string {
	return fmt.Sprintf("From=%s To=%s LocationID=%d SpeciesID=%d File=%s",
		j.Filter.FromDate, j.Filter.ToDate, j.Filter.LocationID, j.Filter.SpeciesID, j.FilePath)
}

// Run queries the matching sightings and writes the export file.
func (j *SightingsExportJob) Run(store datastore.Interface) error {
	sightings, err := store.SearchSightings(&j.Filter)
	if err != nil {
		return err
	}

	return writeCSVFile(j.Name(), j.FilePath, func(w *csv.Writer) error {
		if err := w.Write(sightingsExportHeader); err != nil {
			return err
		}
		for i := range sightings {
			if err := w.Write(sightingExportRow(&sightings[i])); err != nil {
				return err
			}
		}
		return nil
	})
}

// sightingExportRow renders one sighting as an export row.
func sightingExportRow(s *datastore.Sighting) []string {
	return []string{
		s.Species.Name,
		s.Species.Category.Name,
		formatOptionalInt(s.Number),
		s.Gender.String(),
		formatWithYoung(s.WithYoung),
		formatExportDate(s.Date),
		s.Location.Name,
		s.Location.Address,
		s.Location.City,
		s.Location.County,
		s.Location.Postcode,
		s.Location.Country,
		formatOptionalFloat(s.Location.Latitude),
		formatOptionalFloat(s.Location.Longitude),
	}
}
