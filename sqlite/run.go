package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asafar/dockb"
)

// Compile-time interface verification.
var _ dockb.RunRecorder = (*RunService)(nil)

// RunService implements dockb.RunRecorder using SQLite and serves run
// history queries.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// RecordRun inserts a completed run.
func (s *RunService) RecordRun(ctx context.Context, run *dockb.Run) error {
	if run.ID == "" {
		return dockb.Errorf(dockb.EINVALID, "run ID is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, authenticated, strategy, pages_fetched, pages_failed, records, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(run.Authenticated),
		run.Strategy, run.PagesFetched, run.PagesFailed, run.Records, run.Error)
	if err != nil {
		return dockb.Errorf(dockb.EINTERNAL, "insert run: %v", err)
	}
	return nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*dockb.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, authenticated, strategy, pages_fetched, pages_failed, records, error
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, dockb.Errorf(dockb.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RecentRuns returns the most recent runs, newest first. A non-positive
// limit defaults to 20.
func (s *RunService) RecentRuns(ctx context.Context, limit int) ([]*dockb.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, authenticated, strategy, pages_fetched, pages_failed, records, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*dockb.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// scanRun reads one runs row through the given scan function.
func scanRun(scan func(dest ...any) error) (*dockb.Run, error) {
	var run dockb.Run
	var startedAt, finishedAt string
	var authenticated int

	if err := scan(&run.ID, &startedAt, &finishedAt, &authenticated,
		&run.Strategy, &run.PagesFetched, &run.PagesFailed, &run.Records, &run.Error); err != nil {
		return nil, err
	}

	var err error
	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at")
	if err != nil {
		return nil, err
	}
	run.Authenticated = authenticated != 0
	return &run, nil
}

// parseRFC3339 parses a stored timestamp, naming the column on failure.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
