package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunAborted   = "aborted"
)

// Run is a row from the runs table.
type Run struct {
	ID         string
	InputFile  string
	OutputFile string
	Backend    string
	Model      string
	Start      int
	Limit      int
	Attempted  int
	Written    int
	Failed     int
	Status     string
	CreatedAt  time.Time
}

// RunFailure explains why one sentence of a run produced no row.
type RunFailure struct {
	RunID  string
	Index  int
	Source string
	Reason string
}

// CreateRun inserts a running run record and returns its ID.
func (s *Store) CreateRun(ctx context.Context, inputFile, outputFile, backend, model string, start, limit int) (string, error) {
	id := newRunID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_file, output_file, backend, model, start_idx, limit_count, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, inputFile, outputFile, backend, model, start, limit, RunRunning)
	return id, err
}

// RecordFailure stores the reason the sentence at index was skipped.
func (s *Store) RecordFailure(ctx context.Context, runID string, index int, source, reason string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO run_failures (run_id, item_idx, source_text, reason) VALUES (?, ?, ?, ?)`,
		runID, index, source, reason)
	return err
}

// FinishRun sets the final counters and status of a run.
func (s *Store) FinishRun(ctx context.Context, runID, status string, attempted, written, failed int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, attempted = ?, written = ?, failed = ?, updated_at = ? WHERE id = ?`,
		status, attempted, written, failed, time.Now(), runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input_file, output_file, backend, COALESCE(model, ''), start_idx, limit_count, attempted, written, failed, status, created_at FROM runs WHERE id = ?`,
		runID).Scan(&r.ID, &r.InputFile, &r.OutputFile, &r.Backend, &r.Model, &r.Start, &r.Limit, &r.Attempted, &r.Written, &r.Failed, &r.Status, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRuns returns the most recent runs first. limit ≤ 0 returns all of them.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, input_file, output_file, backend, COALESCE(model, ''), start_idx, limit_count, attempted, written, failed, status, created_at FROM runs ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.InputFile, &r.OutputFile, &r.Backend, &r.Model, &r.Start, &r.Limit, &r.Attempted, &r.Written, &r.Failed, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunFailures returns the skipped sentences of a run in index order.
func (s *Store) GetRunFailures(ctx context.Context, runID string) ([]RunFailure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, item_idx, source_text, reason FROM run_failures WHERE run_id = ? ORDER BY item_idx`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []RunFailure
	for rows.Next() {
		var f RunFailure
		if err := rows.Scan(&f.RunID, &f.Index, &f.Source, &f.Reason); err != nil {
			return nil, err
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}
