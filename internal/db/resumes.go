package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// SaveResume stores a resume analysis, replacing any previous record with the same ID
func (db *DB) SaveResume(ctx context.Context, analysis *types.ResumeAnalysis) error {
	if analysis.ResumeID == "" {
		return fmt.Errorf("resume analysis has no ID")
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal resume analysis: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, filename, content_hash, analysis)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET filename = $2, content_hash = $3, analysis = $4`,
		analysis.ResumeID, analysis.Filename, analysis.ContentHash, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume %s: %w", analysis.ResumeID, err)
	}
	return nil
}

// GetResume retrieves a resume analysis by ID. Returns nil if not found.
func (db *DB) GetResume(ctx context.Context, id string) (*types.ResumeAnalysis, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx, `SELECT analysis FROM resumes WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume %s: %w", id, err)
	}

	var analysis types.ResumeAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume %s: %w", id, err)
	}
	return &analysis, nil
}
