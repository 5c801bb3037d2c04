// export_lifelist.go: CSV export of the life list
package jobs

import (
	"encoding/csv"
	"fmt"

	"github.com/wildsight/wildsight-go/internal/datastore"
)

// lifeListExportHeader is the fixed column schema of the life list export.
var lifeListExportHeader = []string{"Category", "Species"}

// LifeListExportJob writes the distinct set of species ever sighted,
// optionally restricted to one category, to a CSV file.
type LifeListExportJob struct {
	CategoryID uint // 0 exports all categories
	FilePath   string
}

// NewLifeListExportJob creates the export unit of work.
func NewLifeListExportJob(categoryID uint, filePath string) *LifeListExportJob {
	return &LifeListExportJob{CategoryID: categoryID, FilePath: filePath}
}

// Name identifies the job type in job status records.
func (j *LifeListExportJob) Name() string {
	return "Life List Export"
}

// Params serializes the filter and target file for the job status record.
func (j *LifeListExportJob) Params() string {
	return fmt.Sprintf("CategoryID=%d File=%s", j.CategoryID, j.FilePath)
}

// Run queries the life list and writes the export file.
func (j *LifeListExportJob) Run(store datastore.Interface) error {
	entries, err := store.GetLifeList(j.CategoryID)
	if err != nil {
		return err
	}

	return writeCSVFile(j.Name(), j.FilePath, func(w *csv.Writer) error {
		if err := w.Write(lifeListExportHeader); err != nil {
			return err
		}
		for i := range entries {
			if err := w.Write([]string{entries[i].Category, entries[i].Species}); err != nil {
				return err
			}
		}
		return nil
	})
}
