package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// SaveScore stores a score for its resume/job pair and returns the record ID.
// Scoring the same pair again replaces the result but keeps the ID.
func (db *DB) SaveScore(ctx context.Context, score *types.ScoreResult) (string, error) {
	if score.ResumeID == "" || score.JobID == "" {
		return "", fmt.Errorf("score result needs a resume and job ID")
	}
	payload, err := json.Marshal(score)
	if err != nil {
		return "", fmt.Errorf("failed to marshal score: %w", err)
	}

	var id string
	err = db.pool.QueryRow(ctx,
		`INSERT INTO score_results (id, resume_id, job_id, overall_score, result)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (resume_id, job_id) DO UPDATE
		 SET overall_score = $4, result = $5, created_at = NOW()
		 RETURNING id`,
		uuid.NewString(), score.ResumeID, score.JobID, score.OverallScore, payload,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to save score: %w", err)
	}
	return id, nil
}

// GetScore retrieves a score by record ID. Returns nil if not found.
func (db *DB) GetScore(ctx context.Context, id string) (*types.ScoreResult, error) {
	return db.scanScore(ctx, `SELECT result FROM score_results WHERE id = $1`, id)
}

// GetScoreFor retrieves the score of a resume/job pair. Returns nil if not found.
func (db *DB) GetScoreFor(ctx context.Context, resumeID, jobID string) (*types.ScoreResult, error) {
	return db.scanScore(ctx, `SELECT result FROM score_results WHERE resume_id = $1 AND job_id = $2`, resumeID, jobID)
}

func (db *DB) scanScore(ctx context.Context, query string, args ...any) (*types.ScoreResult, error) {
	var payload []byte
	if err := db.pool.QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	var score types.ScoreResult
	if err := json.Unmarshal(payload, &score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score: %w", err)
	}
	return &score, nil
}

// ListScoresByResume returns every score for a resume, best first
func (db *DB) ListScoresByResume(ctx context.Context, resumeID string) ([]types.ScoreResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT result FROM score_results WHERE resume_id = $1
		 ORDER BY overall_score DESC, job_id ASC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	scores := []types.ScoreResult{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		var score types.ScoreResult
		if err := json.Unmarshal(payload, &score); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// SaveRecommendations stores the recommendation set of a resume/job pair
func (db *DB) SaveRecommendations(ctx context.Context, set *types.RecommendationSet) error {
	if set.ResumeID == "" || set.JobID == "" {
		return fmt.Errorf("recommendation set needs a resume and job ID")
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO recommendation_sets (resume_id, job_id, potential, recommendations)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (resume_id, job_id) DO UPDATE
		 SET potential = $3, recommendations = $4, created_at = NOW()`,
		set.ResumeID, set.JobID, set.PotentialScoreIncrease, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save recommendations: %w", err)
	}
	return nil
}

// GetRecommendations retrieves the recommendation set of a resume/job pair. Returns nil if not found.
func (db *DB) GetRecommendations(ctx context.Context, resumeID, jobID string) (*types.RecommendationSet, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT recommendations FROM recommendation_sets WHERE resume_id = $1 AND job_id = $2`,
		resumeID, jobID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	var set types.RecommendationSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}
	return &set, nil
}
