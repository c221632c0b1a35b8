package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// SaveJob stores analyzed job requirements under job.ID
func (db *DB) SaveJob(ctx context.Context, job *types.JobRequirements) error {
	if job.ID == "" {
		return fmt.Errorf("job requirements have no ID")
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job requirements: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_descriptions (id, title, requirements)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET title = $2, requirements = $3`,
		job.ID, job.Title, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

// GetJob retrieves job requirements by ID. Returns nil if not found.
func (db *DB) GetJob(ctx context.Context, id string) (*types.JobRequirements, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx, `SELECT requirements FROM job_descriptions WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}

	var job types.JobRequirements
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job %s: %w", id, err)
	}
	return &job, nil
}
