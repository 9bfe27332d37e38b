package runlog

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const importRunsTable = "import_runs"

// BigQueryRecorder writes runs to <dataset>.import_runs.
type BigQueryRecorder struct {
	client  *bigquery.Client
	dataset string
}

// NewBigQueryRecorder creates a recorder with its own BigQuery client.
func NewBigQueryRecorder(ctx context.Context, projectID, dataset string, opts ...option.ClientOption) (*BigQueryRecorder, error) {
	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryRecorder: creating client: %w", err)
	}
	return NewBigQueryRecorderWithClient(client, dataset), nil
}

// NewBigQueryRecorderWithClient creates a recorder using the provided
// BigQuery client.
func NewBigQueryRecorderWithClient(client *bigquery.Client, dataset string) *BigQueryRecorder {
	return &BigQueryRecorder{client: client, dataset: dataset}
}

// Close closes the BigQuery client connection.
func (r *BigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// EnsureTable creates the import_runs table if it does not exist.
func (r *BigQueryRecorder) EnsureTable(ctx context.Context) error {
	q := r.client.Query(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.%s (
			run_id        STRING NOT NULL,
			source        STRING,
			started_ts    TIMESTAMP NOT NULL,
			finished_ts   TIMESTAMP,
			status        STRING,
			extracted     INT64,
			created       INT64,
			failed        INT64,
			error_message STRING
		)
	`, r.dataset, importRunsTable))

	if err := r.runAndWait(ctx, q); err != nil {
		return fmt.Errorf("EnsureTable: %w", err)
	}
	return nil
}

// Start inserts a RUNNING row and returns the generated run ID.
func (r *BigQueryRecorder) Start(ctx context.Context, source string) (string, error) {
	runID := uuid.NewString()

	q := r.client.Query(fmt.Sprintf(`
		INSERT %s.%s (run_id, source, started_ts, status)
		VALUES (@run_id, @source, @started_ts, @status)
	`, r.dataset, importRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "source", Value: source},
		{Name: "started_ts", Value: time.Now()},
		{Name: "status", Value: StatusRunning},
	}

	if err := r.runAndWait(ctx, q); err != nil {
		return "", fmt.Errorf("Start: %w", err)
	}
	return runID, nil
}

// Finish sets the final status, counts, finished_ts and error_message.
func (r *BigQueryRecorder) Finish(ctx context.Context, runID string, counts Counts, runErr error) error {
	q := r.client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    extracted = @extracted,
		    created = @created,
		    failed = @failed,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, r.dataset, importRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: FinishStatus(counts, runErr)},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "extracted", Value: counts.Extracted},
		{Name: "created", Value: counts.Created},
		{Name: "failed", Value: counts.Failed},
		{Name: "error_message", Value: errorMessage(runErr)},
		{Name: "run_id", Value: runID},
	}

	if err := r.runAndWait(ctx, q); err != nil {
		return fmt.Errorf("Finish: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (r *BigQueryRecorder) Recent(ctx context.Context, limit int) ([]Run, error) {
	q := r.client.Query(fmt.Sprintf(`
		SELECT
			run_id,
			source,
			started_ts,
			IFNULL(finished_ts, started_ts) AS finished_ts,
			IFNULL(status, '') AS status,
			IFNULL(extracted, 0) AS extracted,
			IFNULL(created, 0) AS created,
			IFNULL(failed, 0) AS failed,
			IFNULL(error_message, '') AS error_message
		FROM %s.%s
		ORDER BY started_ts DESC
		LIMIT @limit
	`, r.dataset, importRunsTable))
	q.Parameters = []bigquery.QueryParameter{{Name: "limit", Value: limit}}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("Recent: reading query: %w", err)
	}

	var runs []Run
	for {
		var run Run
		err := it.Next(&run)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Recent: iterating: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (r *BigQueryRecorder) runAndWait(ctx context.Context, q *bigquery.Query) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}

	return nil
}
