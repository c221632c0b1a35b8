package server

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-optimizer/internal/db"
	"github.com/jonathan/ats-optimizer/internal/logger"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Store persists analysis records. *db.DB and *db.MemoryStore implement it.
type Store interface {
	Ping(ctx context.Context) error
	Close()

	SaveResume(ctx context.Context, analysis *types.ResumeAnalysis) error
	GetResume(ctx context.Context, id string) (*types.ResumeAnalysis, error)
	SaveJob(ctx context.Context, job *types.JobRequirements) error
	GetJob(ctx context.Context, id string) (*types.JobRequirements, error)

	SaveScore(ctx context.Context, score *types.ScoreResult) (string, error)
	GetScore(ctx context.Context, id string) (*types.ScoreResult, error)
	GetScoreFor(ctx context.Context, resumeID, jobID string) (*types.ScoreResult, error)
	ListScoresByResume(ctx context.Context, resumeID string) ([]types.ScoreResult, error)
	SaveRecommendations(ctx context.Context, set *types.RecommendationSet) error
	GetRecommendations(ctx context.Context, resumeID, jobID string) (*types.RecommendationSet, error)

	SaveRun(ctx context.Context, run *db.Run) error
	GetRun(ctx context.Context, id string) (*db.Run, error)
	ListRuns(ctx context.Context, limit int) ([]db.Run, error)
	DeleteRun(ctx context.Context, id string) error
	SaveArtifact(ctx context.Context, runID, step, category string, content any) error
	GetArtifact(ctx context.Context, runID, step string) ([]byte, error)
	ListArtifacts(ctx context.Context, runID string) ([]db.ArtifactSummary, error)
}

var (
	_ Store = (*db.DB)(nil)
	_ Store = (*db.MemoryStore)(nil)
)

// OpenStore connects to Postgres and applies the schema, or returns an
// in-memory store when databaseURL is empty.
func OpenStore(ctx context.Context, databaseURL string) (Store, error) {
	if databaseURL == "" {
		logger.Warn().Msg("DATABASE_URL not set, records are kept in memory")
		return db.NewMemoryStore(), nil
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
