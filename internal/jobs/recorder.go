// recorder.go: job status lifecycle around the persistent store
package jobs

import (
	"fmt"
	"time"

	"github.com/wildsight/wildsight-go/internal/datastore"
)

// Recorder opens a job status row when a job launches and closes it exactly
// once when the job completes.
type Recorder struct {
	store datastore.Interface
}

// NewRecorder creates a recorder backed by the given store.
func NewRecorder(store datastore.Interface) *Recorder {
	return &Recorder{store: store}
}

// Open inserts a job status row with no end timestamp and returns its ID.
func (r *Recorder) Open(jobName, params string, startedAt time.Time, user UserSnapshot) (uint, error) {
	status := datastore.JobStatus{
		Name:       jobName,
		Parameters: params,
		Start:      startedAt,
		CreatedBy:  user.ID,
		UpdatedBy:  user.ID,
	}
	if err := r.store.CreateJobStatus(&status); err != nil {
		return 0, err
	}
	return status.ID, nil
}

// Close finalizes a job status row, recording the end timestamp and, for
// failed runs, the error text verbatim. Calling Close without a matching
// Open is a caller error and is not guarded against.
func (r *Recorder) Close(id uint, endedAt time.Time, runErr error, user UserSnapshot) error {
	errorText := ""
	if runErr != nil {
		errorText = runErr.Error()
	}
	return r.store.CloseJobStatus(id, endedAt, errorText, user.ID)
}

// Search lists job status rows filtered by exact name and start date range.
// Any filter field may be left at its zero value to skip it.
func (r *Recorder) Search(name string, fromDate, toDate *time.Time) ([]datastore.JobStatus, error) {
	return r.store.SearchJobStatuses(&datastore.JobStatusFilter{
		Name:     name,
		FromDate: fromDate,
		ToDate:   toDate,
	})
}

// Runtime formats the elapsed runtime of a finished job as HH:MM:SS. The
// second return value is false while the job is still open.
func Runtime(status *datastore.JobStatus) (string, bool) {
	if status.End == nil {
		return "", false
	}
	elapsed := status.End.Sub(status.Start)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	seconds := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds), true
}
