// jobstatus.go: persistence for background job status records
package datastore

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateJobStatus inserts a new job status row with no end timestamp. A
// correlation ID is assigned when the caller does not supply one.
func (ds *DataStore) CreateJobStatus(status *JobStatus) error {
	if strings.TrimSpace(status.Name) == "" {
		return validationError("job status name must not be blank", "name", status.Name)
	}
	if status.CorrelationID == "" {
		status.CorrelationID = uuid.NewString()
	}
	if status.Start.IsZero() {
		status.Start = time.Now()
	}
	if err := ds.DB.Create(status).Error; err != nil {
		return mapWriteError(err, "create_job_status", "duplicate_job_status")
	}
	return nil
}

// CloseJobStatus records the end of a job run, setting the end timestamp and
// the error text for failed runs. Rows are closed exactly once; pairing with
// a prior CreateJobStatus is the caller's responsibility.
func (ds *DataStore) CloseJobStatus(id uint, endedAt time.Time, errorText string, user uint) error {
	result := ds.DB.Model(&JobStatus{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"end":        endedAt,
			"error":      errorText,
			"updated_by": user,
		})
	if result.Error != nil {
		return dbError(result.Error, "close_job_status", "")
	}
	if result.RowsAffected == 0 {
		return notFoundError("job status", id)
	}
	return nil
}

// GetJobStatus retrieves a job status row by its ID.
func (ds *DataStore) GetJobStatus(id uint) (JobStatus, error) {
	var status JobStatus
	if err := ds.DB.First(&status, id).Error; err != nil {
		return JobStatus{}, mapLookupError(err, "job status", id)
	}
	return status, nil
}

// SearchJobStatuses retrieves job status rows matching the filter. Results
// are not ordered; callers sort as needed.
func (ds *DataStore) SearchJobStatuses(filter *JobStatusFilter) ([]JobStatus, error) {
	query := ds.DB.Model(&JobStatus{})

	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name = ?", filter.Name)
		}
		if filter.FromDate != nil {
			query = query.Where("start >= ?", *filter.FromDate)
		}
		if filter.ToDate != nil {
			query = query.Where("start <= ?", *filter.ToDate)
		}
	}

	var statuses []JobStatus
	if err := query.Find(&statuses).Error; err != nil {
		return nil, dbError(err, "search_job_statuses", "")
	}
	return statuses, nil
}
