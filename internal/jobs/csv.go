// csv.go: shared CSV parsing, formatting and file handling for the
// import/export jobs
package jobs

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/errors"
)

// ImportDateFormat is the day/month/year date layout used in CSV files.
const ImportDateFormat = "02/01/2006"

const (
	withYoungYes = "Yes"
	withYoungNo  = "No"
)

// rowError builds a validation error carrying the 1-based data row number.
func rowError(jobName string, row int, cause error) error {
	return errors.Newf("%s: invalid data on row %d: %v", jobName, row, cause).
		Component("jobs").
		Category(errors.CategoryValidation).
		Context("job", jobName).
		Context("row", row).
		Build()
}

// readAllRows fully reads a CSV stream, returning the data rows after the
// mandatory header row. Rows are allowed to have varying field counts; the
// per-job validators enforce the column schema with row-indexed errors.
func readAllRows(jobName string, r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.New(err).
			Component("jobs").
			Category(errors.CategoryValidation).
			Context("job", jobName).
			Build()
	}
	if len(records) == 0 {
		return nil, errors.Newf("%s: file is missing the header row", jobName).
			Component("jobs").
			Category(errors.CategoryValidation).
			Context("job", jobName).
			Build()
	}

	// The header row is required but its content is ignored
	return records[1:], nil
}

// parseImportDate parses a mandatory DD/MM/YYYY date.
func parseImportDate(value string) (time.Time, error) {
	return time.Parse(ImportDateFormat, value)
}

// parseOptionalInt parses an optional integer column; blank means absent.
func parseOptionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// parseOptionalFloat parses an optional decimal column; blank means absent.
func parseOptionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// parseWithYoung maps the Yes/No column onto a bool.
func parseWithYoung(value string) (bool, error) {
	switch value {
	case withYoungYes:
		return true, nil
	case withYoungNo:
		return false, nil
	default:
		return false, errors.Newf("unrecognised with-young value %q", value).Build()
	}
}

// formatWithYoung maps a bool onto the Yes/No column text.
func formatWithYoung(withYoung bool) string {
	if withYoung {
		return withYoungYes
	}
	return withYoungNo
}

// formatExportDate converts a stored calendar date to the DD/MM/YYYY export
// format. Dates that fail to parse are exported as stored.
func formatExportDate(stored string) string {
	date, err := time.Parse(datastore.DateFormat, stored)
	if err != nil {
		return stored
	}
	return date.Format(ImportDateFormat)
}

// formatOptionalInt renders an optional integer column; absent means blank.
func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

// formatOptionalFloat renders an optional decimal column; absent means blank.
func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// writeCSVFile writes a CSV file through the given row writer. The data is
// written to a temporary file in the target directory and renamed into place
// on success, so a failed export never leaves a partial file under the
// advertised name. Missing directories are created.
func writeCSVFile(jobName, path string, write func(w *csv.Writer) error) error {
	fileError := func(err error, operation string) error {
		return errors.New(err).
			Component("jobs").
			Category(errors.CategoryFileIO).
			Context("job", jobName).
			Context("operation", operation).
			Context("path", path).
			Build()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileError(err, "create_export_directory")
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fileError(err, "create_temp_file")
	}
	tempFileName := tempFile.Name()
	defer os.Remove(tempFileName)

	writer := csv.NewWriter(tempFile)
	if err := write(writer); err != nil {
		tempFile.Close()
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tempFile.Close()
		return fileError(err, "write_csv")
	}
	if err := tempFile.Close(); err != nil {
		return fileError(err, "close_temp_file")
	}

	if err := os.Rename(tempFileName, path); err != nil {
		return fileError(err, "publish_export_file")
	}
	return nil
}
