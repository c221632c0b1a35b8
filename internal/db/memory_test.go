package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// recordStore is the method set shared by DB and MemoryStore
type recordStore interface {
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
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	DeleteRun(ctx context.Context, id string) error
	SaveArtifact(ctx context.Context, runID, step, category string, content any) error
	GetArtifact(ctx context.Context, runID, step string) ([]byte, error)
	ListArtifacts(ctx context.Context, runID string) ([]ArtifactSummary, error)
	Ping(ctx context.Context) error
	Close()
}

var (
	_ recordStore = (*DB)(nil)
	_ recordStore = (*MemoryStore)(nil)
)

func TestMemoryStore_Resume(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	analysis := &types.ResumeAnalysis{
		ResumeID:      "resume-1",
		Filename:      "jane.txt",
		WordCount:     120,
		SectionsFound: []types.ResumeSection{types.SectionSkills},
		ParsedContent: types.NewParsedResume(),
	}
	analysis.ParsedContent.ContactInfo.Name = "Jane Doe"
	require.NoError(t, store.SaveResume(ctx, analysis))

	got, err := store.GetResume(ctx, "resume-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.ParsedContent.ContactInfo.Name)
	assert.Equal(t, 120, got.WordCount)

	// Stored records are copies
	got.WordCount = 1
	again, err := store.GetResume(ctx, "resume-1")
	require.NoError(t, err)
	assert.Equal(t, 120, again.WordCount)

	missing, err := store.GetResume(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, store.SaveResume(ctx, &types.ResumeAnalysis{}))
}

func TestMemoryStore_Job(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveJob(ctx, &types.JobRequirements{ID: "job-1", Title: "Backend Engineer", RequiredSkills: []string{"Go"}}))

	got, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, []string{"Go"}, got.RequiredSkills)

	missing, err := store.GetJob(ctx, "job-2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, store.SaveJob(ctx, &types.JobRequirements{}))
}

func TestMemoryStore_Scores(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.SaveScore(ctx, &types.ScoreResult{ResumeID: "r1", JobID: "j1", OverallScore: 55})
	require.NoError(t, err)
	_, err = store.SaveScore(ctx, &types.ScoreResult{ResumeID: "r1", JobID: "j2", OverallScore: 80})
	require.NoError(t, err)
	_, err = store.SaveScore(ctx, &types.ScoreResult{ResumeID: "r2", JobID: "j1", OverallScore: 90})
	require.NoError(t, err)

	// Rescoring a pair keeps its ID
	again, err := store.SaveScore(ctx, &types.ScoreResult{ResumeID: "r1", JobID: "j1", OverallScore: 60})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	got, err := store.GetScore(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 60.0, got.OverallScore)

	pair, err := store.GetScoreFor(ctx, "r1", "j2")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, 80.0, pair.OverallScore)

	list, err := store.ListScoresByResume(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "j2", list[0].JobID)
	assert.Equal(t, "j1", list[1].JobID)

	empty, err := store.ListScoresByResume(ctx, "r3")
	require.NoError(t, err)
	assert.Empty(t, empty)

	missing, err := store.GetScore(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = store.SaveScore(ctx, &types.ScoreResult{ResumeID: "r1"})
	assert.Error(t, err)
}

func TestMemoryStore_Recommendations(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	set := &types.RecommendationSet{
		ResumeID:               "r1",
		JobID:                  "j1",
		Recommendations:        []types.Recommendation{{Section: "skills", Recommendation: "Add Go", Impact: 0.8, ImplementationDifficulty: types.DifficultyEasy}},
		PotentialScoreIncrease: 8,
	}
	require.NoError(t, store.SaveRecommendations(ctx, set))

	got, err := store.GetRecommendations(ctx, "r1", "j1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *set, *got)

	missing, err := store.GetRecommendations(ctx, "r1", "j2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStore_RunsAndArtifacts(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	ctx := context.Background()

	assert.Error(t, store.SaveArtifact(ctx, "run-1", "score", "scoring", map[string]int{"a": 1}))

	require.NoError(t, store.SaveRun(ctx, &Run{ID: "run-1", ResumeID: "r1", JobID: "j1", OverallScore: 70}))
	require.NoError(t, store.SaveRun(ctx, &Run{ID: "run-2", ResumeID: "r2", JobID: "j1", OverallScore: 40}))

	require.NoError(t, store.SaveArtifact(ctx, "run-1", "parse_resume", "parsing", map[string]string{"name": "Jane"}))
	require.NoError(t, store.SaveArtifact(ctx, "run-1", "score", "scoring", map[string]float64{"overall": 70}))
	require.NoError(t, store.SaveArtifact(ctx, "run-1", "score", "scoring", map[string]float64{"overall": 71}))

	artifacts, err := store.ListArtifacts(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "parse_resume", artifacts[0].Step)
	assert.Equal(t, "score", artifacts[1].Step)

	content, err := store.GetArtifact(ctx, "run-1", "score")
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall": 71}`, string(content))

	none, err := store.GetArtifact(ctx, "run-1", "recommend")
	require.NoError(t, err)
	assert.Nil(t, none)

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)

	limited, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, store.DeleteRun(ctx, "run-1"))
	gone, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
	artifacts, err = store.ListArtifacts(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, artifacts)
	assert.Error(t, store.DeleteRun(ctx, "run-1"))
}
