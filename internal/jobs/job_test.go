// job_test.go: tests for the job lifecycle and error delivery
package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildsight/wildsight-go/internal/datastore"
	"github.com/wildsight/wildsight-go/internal/errors"
)

// fakeRunner is a scripted unit of work for exercising the job lifecycle.
type fakeRunner struct {
	name  string
	err   error
	panic any
	ran   bool
}

func (f *fakeRunner) Name() string   { return f.name }
func (f *fakeRunner) Params() string { return "Fake=true" }

func (f *fakeRunner) Run(store datastore.Interface) error {
	f.ran = true
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

func TestJobSuccess(t *testing.T) {
	t.Parallel()
	store := setupTestStore(t)
	runner := &fakeRunner{name: "Fake Job"}

	runErr, status := runAndWait(t, store, runner, UserSnapshot{ID: 7})

	assert.NoError(t, runErr)
	assert.True(t, runner.ran)
	assert.Equal(t, "Fake Job", status.Name)
	assert.Equal(t, "Fake=true", status.Parameters)
	assert.Equal(t, uint(7), status.CreatedBy)
	require.NotNil(t, status.End)
	assert.Empty(t, status.Error)
}

func TestJobFailure(t *testing.T) {
	t.Parallel()
	store := setupTestStore(t)
	cause := errors.Newf("the row was bad").Build()
	runner := &fakeRunner{name: "Fake Job", err: cause}

	runErr, status := runAndWait(t, store, runner, UserSnapshot{})

	// the runner's error reaches the waiter unchanged
	require.Error(t, runErr)
	assert.Equal(t, cause.Error(), runErr.Error())

	// and the status row records it verbatim
	require.NotNil(t, status.End)
	assert.Equal(t, cause.Error(), status.Error)
}

func TestJobPanic(t *testing.T) {
	t.Parallel()
	store := setupTestStore(t)
	runner := &fakeRunner{name: "Fake Job", panic: "boom"}

	runErr, status := runAndWait(t, store, runner, UserSnapshot{})

	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "panicked")
	assert.Contains(t, runErr.Error(), "boom")
	require.NotNil(t, status.End)
	assert.Contains(t, status.Error, "boom")
}

func TestJobDoubleStart(t *testing.T) {
	t.Parallel()
	store := setupTestStore(t)
	job := NewJob(store, &fakeRunner{name: "Fake Job"}, UserSnapshot{})

	require.NoError(t, job.Start())
	err := job.Start()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryJobExecution))

	require.NoError(t, job.Wait())
}

func TestJobWaitBeforeStart(t *testing.T) {
	t.Parallel()
	store := setupTestStore(t)
	job := NewJob(store, &fakeRunner{name: "Fake Job"}, UserSnapshot{})

	err := job.Wait()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryJobExecution))
}

func TestJobWaitIsRepeatable(t *testing.T) {
	t.Parallel()
	store := setupTestStore(t)
	cause := errors.Newf("the row was bad").Build()
	job := NewJob(store, &fakeRunner{name: "Fake Job", err: cause}, UserSnapshot{})

	require.NoError(t, job.Start())

	first := job.Wait()
	second := job.Wait()
	require.Error(t, first)
	assert.Equal(t, first, second)
}

func TestRuntime(t *testing.T) {
	t.Parallel()

	start := time.Date(2022, 1, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour + 23*time.Minute + 45*time.Second)

	t.Run("finished job", func(t *testing.T) {
		t.Parallel()
		status := datastore.JobStatus{Start: start, End: &end}
		runtime, ok := Runtime(&status)
		assert.True(t, ok)
		assert.Equal(t, "01:23:45", runtime)
	})

	t.Run("open job", func(t *testing.T) {
		t.Parallel()
		status := datastore.JobStatus{Start: start}
		runtime, ok := Runtime(&status)
		assert.False(t, ok)
		assert.Empty(t, runtime)
	})
}

func TestRecorderSearch(t *testing.T) {
	t.Parallel()
	store := setupTestStore(t)
	recorder := NewRecorder(store)

	start := time.Date(2022, 1, 10, 9, 0, 0, 0, time.UTC)
	id, err := recorder.Open("Sightings Export", "From=, To=", start, UserSnapshot{ID: 3})
	require.NoError(t, err)
	require.NoError(t, recorder.Close(id, start.Add(time.Minute), nil, UserSnapshot{ID: 3}))

	statuses, err := recorder.Search("Sightings Export", nil, nil)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, id, statuses[0].ID)
	require.NotNil(t, statuses[0].End)

	statuses, err = recorder.Search("Life List Export", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}
