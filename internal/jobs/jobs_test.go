// jobs_test.go: shared test helpers for the jobs package
package jobs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wildsight/wildsight-go/internal/datastore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestStore creates an in-memory SQLite store for testing
func setupTestStore(t *testing.T) *datastore.DataStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&datastore.Category{},
		&datastore.Species{},
		&datastore.Location{},
		&datastore.Sighting{},
		&datastore.StatusScheme{},
		&datastore.StatusRating{},
		&datastore.SpeciesStatusRating{},
		&datastore.JobStatus{},
	)
	require.NoError(t, err)

	return &datastore.DataStore{DB: db}
}

// runAndWait starts a job for the runner and returns the error delivered on
// completion alongside the finalized job status row.
func runAndWait(t *testing.T, store *datastore.DataStore, runner Runner, user UserSnapshot) (error, datastore.JobStatus) {
	t.Helper()

	job := NewJob(store, runner, user)
	require.NoError(t, job.Start())
	runErr := job.Wait()

	status, err := store.GetJobStatus(job.StatusID())
	require.NoError(t, err)
	return runErr, status
}
