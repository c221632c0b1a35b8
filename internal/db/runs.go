package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveRun records a finished analysis run
func (db *DB) SaveRun(ctx context.Context, run *Run) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO analysis_runs (id, resume_id, job_id, job_title, overall_score, cached)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET overall_score = $5, cached = $6`,
		run.ID, run.ResumeID, run.JobID, run.JobTitle, run.OverallScore, run.Cached,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves an analysis run by ID. Returns nil if not found.
func (db *DB) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, job_id, job_title, overall_score, cached, created_at
		 FROM analysis_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.ResumeID, &run.JobID, &run.JobTitle, &run.OverallScore, &run.Cached, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent analysis runs, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, job_id, job_title, overall_score, cached, created_at
		 FROM analysis_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.ResumeID, &run.JobID, &run.JobTitle, &run.OverallScore, &run.Cached, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun deletes an analysis run and all its artifacts (via cascade)
func (db *DB) DeleteRun(ctx context.Context, id string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM analysis_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// SaveArtifact stores the JSON output of one stage of a run
func (db *DB) SaveArtifact(ctx context.Context, runID, step, category string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, category, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, step) DO UPDATE SET category = $3, content = $4, created_at = NOW()`,
		runID, step, category, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// GetArtifact retrieves the raw JSON of a stage output. Returns nil if not found.
func (db *DB) GetArtifact(ctx context.Context, runID, step string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", step, err)
	}
	return content, nil
}

// ListArtifacts lists the stage outputs stored for a run in the order they were written
func (db *DB) ListArtifacts(ctx context.Context, runID string) ([]ArtifactSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, step, category, created_at FROM artifacts
		 WHERE run_id = $1 ORDER BY created_at ASC, step ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := []ArtifactSummary{}
	for rows.Next() {
		var a ArtifactSummary
		if err := rows.Scan(&a.ID, &a.Step, &a.Category, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
