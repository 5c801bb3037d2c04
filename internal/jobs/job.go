// Package jobs implements the background data-exchange subsystem: CSV import
// and export workers that run on their own goroutine, reconcile reference
// data and record their outcome as a persistent job status row.
package jobs

import (
	"log/slog"
	"sync"
	"time"

	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/errors"
	"github.com/wildsight/wildsight-go/internal/logging"
)

// UserSnapshot is a plain value copy of the acting user's identity, captured
// when a job is constructed. Jobs outlive the request that started them, so
// they must never hold the original request-scoped user object.
type UserSnapshot struct {
	ID uint
}

// Runner is one unit of import or export work executed by a Job.
type Runner interface {
	// Name identifies the job type in job status records.
	Name() string
	// Params returns the serialized job parameters for the status record.
	Params() string
	// Run performs the unit of work against the store.
	Run(store datastore.Interface) error
}

type jobState int

const (
	stateCreated jobState = iota
	stateRunning
	stateCompleted
)

// Job runs a single unit of work on its own goroutine, captures any failure
// and re-delivers it to the caller that waits on completion. The job status
// row is always finalized before the worker goroutine exits, whether the
// unit of work succeeded, failed or panicked.
type Job struct {
	store    datastore.Interface
	recorder *Recorder
	runner   Runner
	user     UserSnapshot
	log      *slog.Logger

	mu       sync.Mutex
	state    jobState
	statusID uint
	done     chan error

	waitOnce sync.Once
	waitErr  error
}

// NewJob constructs a job for the given unit of work. The user snapshot is
// captured by value here, at construction time.
func NewJob(store datastore.Interface, runner Runner, user UserSnapshot) *Job {
	return &Job{
		store:    store,
		recorder: NewRecorder(store),
		runner:   runner,
		user:     user,
		log:      logging.ForService("jobs"),
		done:     make(chan error, 1),
	}
}

// StatusID returns the ID of the job status row opened by Start. It is zero
// until Start has been called.
func (j *Job) StatusID() uint {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.statusID
}

// Start opens the job status row and launches the worker goroutine. Each
// call to Start on a fresh job spins up exactly one goroutine; starting the
// same job twice is a programmer error.
func (j *Job) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.state != stateCreated {
		return errors.Newf("job %s has already been started", j.runner.Name()).
			Component("jobs").
			Category(errors.CategoryJobExecution).
			Build()
	}

	statusID, err := j.recorder.Open(j.runner.Name(), j.runner.Params(), time.Now(), j.user)
	if err != nil {
		return err
	}
	j.statusID = statusID
	j.state = stateRunning

	go j.run()
	return nil
}

// run executes the unit of work, finalizing the job status row and
// delivering the captured error before the goroutine returns.
func (j *Job) run() {
	var runErr error

	defer func() {
		if r := recover(); r != nil {
			runErr = errors.Newf("job %s panicked: %v", j.runner.Name(), r).
				Component("jobs").
				Category(errors.CategoryJobExecution).
				Priority(errors.PriorityHigh).
				Build()
		}

		if err := j.recorder.Close(j.statusID, time.Now(), runErr, j.user); err != nil {
			if j.log != nil {
				j.log.Error("failed to close job status",
					"job", j.runner.Name(),
					"status_id", j.statusID,
					"error", err)
			}
		}

		j.mu.Lock()
		j.state = stateCompleted
		j.mu.Unlock()

		j.done <- runErr
	}()

	runErr = j.runner.Run(j.store)
}

// Wait blocks until the worker goroutine finishes and returns the error it
// captured, if any. This is the sole error-propagation path back to the
// initiator; callers that skip Wait must poll job status records instead.
func (j *Job) Wait() error {
	j.mu.Lock()
	if j.state == stateCreated {
		j.mu.Unlock()
		return errors.Newf("job %s has not been started", j.runner.Name()).
			Component("jobs").
			Category(errors.CategoryJobExecution).
			Build()
	}
	j.mu.Unlock()

	j.waitOnce.Do(func() {
		j.waitErr = <-j.done
	})
	return j.waitErr
}
