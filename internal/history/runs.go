package history

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateRun inserts a new run in the running state
func (db *DB) CreateRun(run *Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = RunStatusRunning
	}

	query := `
		INSERT INTO runs (id, request, max_attempts, status, attempts_used, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.Exec(query,
		run.ID,
		run.Request,
		run.MaxAttempts,
		run.Status,
		run.AttemptsUsed,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun records the terminal outcome of a run
func (db *DB) FinishRun(id, status string, attemptsUsed int, output, feedback, errMsg string) error {
	query := `
		UPDATE runs
		SET status = ?, attempts_used = ?, output = ?, feedback = ?, error = ?, completed_at = ?
		WHERE id = ?
	`

	res, err := db.conn.Exec(query, status, attemptsUsed, output, feedback, errMsg, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finish result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", id)
	}

	return nil
}

// RecordAttempt inserts an attempt row for a run
func (db *DB) RecordAttempt(a *Attempt) error {
	query := `
		INSERT INTO attempts (run_id, number, accepted, feedback)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.conn.Exec(query, a.RunID, a.Number, a.Accepted, a.Feedback)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}

	return nil
}

// GetRun retrieves a run by its ID.
// Returns nil, nil if the run does not exist.
func (db *DB) GetRun(id string) (*Run, error) {
	query := `
		SELECT id, request, max_attempts, status, attempts_used,
		       COALESCE(output, ''), COALESCE(feedback, ''), COALESCE(error, ''),
		       started_at, completed_at
		FROM runs
		WHERE id = ?
	`

	run := &Run{}
	err := db.conn.QueryRow(query, id).Scan(
		&run.ID,
		&run.Request,
		&run.MaxAttempts,
		&run.Status,
		&run.AttemptsUsed,
		&run.Output,
		&run.Feedback,
		&run.Error,
		&run.StartedAt,
		&run.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, request, max_attempts, status, attempts_used,
		       COALESCE(output, ''), COALESCE(feedback, ''), COALESCE(error, ''),
		       started_at, completed_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(
			&run.ID,
			&run.Request,
			&run.MaxAttempts,
			&run.Status,
			&run.AttemptsUsed,
			&run.Output,
			&run.Feedback,
			&run.Error,
			&run.StartedAt,
			&run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// ListAttempts returns all attempts for a run, in attempt order
func (db *DB) ListAttempts(runID string) ([]*Attempt, error) {
	query := `
		SELECT run_id, number, accepted, COALESCE(feedback, ''), created_at
		FROM attempts
		WHERE run_id = ?
		ORDER BY number ASC
	`

	rows, err := db.conn.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*Attempt
	for rows.Next() {
		a := &Attempt{}
		if err := rows.Scan(&a.RunID, &a.Number, &a.Accepted, &a.Feedback, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
