// import_ratings.go: CSV import of conservation status ratings
package jobs

import (
	"fmt"
	"io"
	"strings"

	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/errors"
)

// Column layout of the status rating import file. The header row is required
// but its content is ignored.
const (
	ratingColSpecies = iota
	ratingColCategory
	ratingColScheme
	ratingColRating
	ratingColRegion
	ratingColStart
	ratingColEnd
	ratingColumnCount
)

// StatusRatingImportJob imports species conservation status ratings from a
// CSV stream. The whole file is validated before any row is applied; a
// validation failure aborts the import with a 1-based row number and leaves
// the store untouched. Rows are then applied one at a time, so an apply-time
// failure leaves earlier rows persisted.
type StatusRatingImportJob struct {
	Source     io.Reader
	SourceName string
	User       UserSnapshot
}

// NewStatusRatingImportJob creates the import unit of work.
func NewStatusRatingImportJob(source io.Reader, sourceName string, user UserSnapshot) *StatusRatingImportJob {
	return &StatusRatingImportJob{Source: source, SourceName: sourceName, User: user}
}

// Name identifies the job type in job status records.
func (j *StatusRatingImportJob) Name() string {
	return "Status Rating Import"
}

// Params serializes the source for the job status record.
func (j *StatusRatingImportJob) Params() string {
	return fmt.Sprintf("File=%s", j.SourceName)
}

// Run reads, validates and applies the import file.
func (j *StatusRatingImportJob) Run(store datastore.Interface) error {
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
func (j *StatusRatingImportJob) validateRow(row []string) error {
	if len(row) != ratingColumnCount {
		return errors.Newf("expected %d columns, found %d", ratingColumnCount, len(row)).Build()
	}

	names := []string{"species", "category", "scheme", "rating", "region", "start date"}
	for col, name := range names {
		if strings.TrimSpace(row[col]) == "" {
			return errors.Newf("%s must not be blank", name).Build()
		}
	}

	if _, err := parseImportDate(row[ratingColStart]); err != nil {
		return errors.Newf("invalid start date %q", row[ratingColStart]).Build()
	}
	if row[ratingColEnd] != "" {
		if _, err := parseImportDate(row[ratingColEnd]); err != nil {
			return errors.Newf("invalid end date %q", row[ratingColEnd]).Build()
		}
	}

	return nil
}

// applyRow resolves the reference data for one row and creates the rating.
func (j *StatusRatingImportJob) applyRow(store datastore.Interface, resolver *Resolver, row []string) error {
	species, err := resolver.Species(row[ratingColCategory], row[ratingColSpecies], "")
	if err != nil {
		return err
	}

	rating, err := resolver.Rating(row[ratingColScheme], row[ratingColRating])
	if err != nil {
		return err
	}

	start, _ := parseImportDate(row[ratingColStart])
	speciesRating := datastore.SpeciesStatusRating{
		SpeciesID:      species.ID,
		StatusRatingID: rating.ID,
		Region:         collapseWhitespace(row[ratingColRegion]),
		Start:          start.Format(datastore.DateFormat),
		CreatedBy:      j.User.ID,
		UpdatedBy:      j.User.ID,
	}
	if row[ratingColEnd] != "" {
		end, _ := parseImportDate(row[ratingColEnd])
		endDate := end.Format(datastore.DateFormat)
		speciesRating.End = &endDate
	}

	return store.CreateSpeciesStatusRating(&speciesRating)
}
