// Package runlog records import runs in BigQuery.
package runlog

import (
	"context"
	"time"
)

// Run statuses.
const (
	StatusRunning = "RUNNING"
	StatusSuccess = "SUCCESS"
	StatusPartial = "PARTIAL"
	StatusFailed  = "FAILED"
)

const maxErrorLen = 2000

// Counts are the totals of one run.
type Counts struct {
	Extracted int
	Created   int
	Failed    int
}

// Run is one row of the import_runs table.
type Run struct {
	RunID        string    `bigquery:"run_id"`
	Source       string    `bigquery:"source"`
	StartedTS    time.Time `bigquery:"started_ts"`
	FinishedTS   time.Time `bigquery:"finished_ts"`
	Status       string    `bigquery:"status"`
	Extracted    int64     `bigquery:"extracted"`
	Created      int64     `bigquery:"created"`
	Failed       int64     `bigquery:"failed"`
	ErrorMessage string    `bigquery:"error_message"`
}

// Recorder logs the start and end of import runs.
type Recorder interface {
	// Start records a RUNNING run for source and returns its ID.
	Start(ctx context.Context, source string) (string, error)

	// Finish records the outcome of a run.
	Finish(ctx context.Context, runID string, counts Counts, runErr error) error
}

// Nop is a Recorder that records nothing.
type Nop struct{}

func (Nop) Start(ctx context.Context, source string) (string, error) { return "", nil }

func (Nop) Finish(ctx context.Context, runID string, counts Counts, runErr error) error {
	return nil
}

// FinishStatus derives the final status of a run.
func FinishStatus(counts Counts, runErr error) string {
	switch {
	case runErr != nil:
		return StatusFailed
	case counts.Failed > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	return msg
}
