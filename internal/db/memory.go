package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// MemoryStore keeps records in process memory. It mirrors DB for tests and
// for running without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	now       func() time.Time
	resumes   map[string][]byte
	jobs      map[string][]byte
	scores    map[string]scoreRow
	recs      map[pairKey][]byte
	runs      map[string]Run
	artifacts map[string][]artifactRow
}

type pairKey struct {
	resumeID string
	jobID    string
}

type scoreRow struct {
	id      string
	pair    pairKey
	overall float64
	payload []byte
}

type artifactRow struct {
	summary ArtifactSummary
	content []byte
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:       time.Now,
		resumes:   make(map[string][]byte),
		jobs:      make(map[string][]byte),
		scores:    make(map[string]scoreRow),
		recs:      make(map[pairKey][]byte),
		runs:      make(map[string]Run),
		artifacts: make(map[string][]artifactRow),
	}
}

// Close is a no-op
func (m *MemoryStore) Close() {}

// Ping always succeeds
func (m *MemoryStore) Ping(context.Context) error { return nil }

// SaveResume stores a resume analysis
func (m *MemoryStore) SaveResume(_ context.Context, analysis *types.ResumeAnalysis) error {
	if analysis.ResumeID == "" {
		return fmt.Errorf("resume analysis has no ID")
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal resume analysis: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[analysis.ResumeID] = payload
	return nil
}

// GetResume retrieves a resume analysis by ID. Returns nil if not found.
func (m *MemoryStore) GetResume(_ context.Context, id string) (*types.ResumeAnalysis, error) {
	m.mu.RLock()
	payload, ok := m.resumes[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var analysis types.ResumeAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume %s: %w", id, err)
	}
	return &analysis, nil
}

// SaveJob stores analyzed job requirements
func (m *MemoryStore) SaveJob(_ context.Context, job *types.JobRequirements) error {
	if job.ID == "" {
		return fmt.Errorf("job requirements have no ID")
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job requirements: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = payload
	return nil
}

// GetJob retrieves job requirements by ID. Returns nil if not found.
func (m *MemoryStore) GetJob(_ context.Context, id string) (*types.JobRequirements, error) {
	m.mu.RLock()
	payload, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var job types.JobRequirements
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job %s: %w", id, err)
	}
	return &job, nil
}

// SaveScore stores a score and returns its record ID
func (m *MemoryStore) SaveScore(_ context.Context, score *types.ScoreResult) (string, error) {
	if score.ResumeID == "" || score.JobID == "" {
		return "", fmt.Errorf("score result needs a resume and job ID")
	}
	payload, err := json.Marshal(score)
	if err != nil {
		return "", fmt.Errorf("failed to marshal score: %w", err)
	}

	pair := pairKey{score.ResumeID, score.JobID}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for existing, row := range m.scores {
		if row.pair == pair {
			id = existing
			break
		}
	}
	m.scores[id] = scoreRow{id: id, pair: pair, overall: score.OverallScore, payload: payload}
	return id, nil
}

// GetScore retrieves a score by record ID. Returns nil if not found.
func (m *MemoryStore) GetScore(_ context.Context, id string) (*types.ScoreResult, error) {
	m.mu.RLock()
	row, ok := m.scores[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeScore(row.payload)
}

// GetScoreFor retrieves the score of a resume/job pair. Returns nil if not found.
func (m *MemoryStore) GetScoreFor(_ context.Context, resumeID, jobID string) (*types.ScoreResult, error) {
	pair := pairKey{resumeID, jobID}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, row := range m.scores {
		if row.pair == pair {
			return decodeScore(row.payload)
		}
	}
	return nil, nil
}

// ListScoresByResume returns every score for a resume, best first
func (m *MemoryStore) ListScoresByResume(_ context.Context, resumeID string) ([]types.ScoreResult, error) {
	m.mu.RLock()
	var rows []scoreRow
	for _, row := range m.scores {
		if row.pair.resumeID == resumeID {
			rows = append(rows, row)
		}
	}
	m.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].overall != rows[j].overall {
			return rows[i].overall > rows[j].overall
		}
		return rows[i].pair.jobID < rows[j].pair.jobID
	})

	scores := make([]types.ScoreResult, 0, len(rows))
	for _, row := range rows {
		score, err := decodeScore(row.payload)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *score)
	}
	return scores, nil
}

// SaveRecommendations stores the recommendation set of a resume/job pair
func (m *MemoryStore) SaveRecommendations(_ context.Context, set *types.RecommendationSet) error {
	if set.ResumeID == "" || set.JobID == "" {
		return fmt.Errorf("recommendation set needs a resume and job ID")
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[pairKey{set.ResumeID, set.JobID}] = payload
	return nil
}

// GetRecommendations retrieves the recommendation set of a resume/job pair. Returns nil if not found.
func (m *MemoryStore) GetRecommendations(_ context.Context, resumeID, jobID string) (*types.RecommendationSet, error) {
	m.mu.RLock()
	payload, ok := m.recs[pairKey{resumeID, jobID}]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var set types.RecommendationSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}
	return &set, nil
}

// SaveRun records a finished analysis run
func (m *MemoryStore) SaveRun(_ context.Context, run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *run
	if existing, ok := m.runs[run.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = m.now()
	}
	m.runs[run.ID] = stored
	return nil
}

// GetRun retrieves an analysis run by ID. Returns nil if not found.
func (m *MemoryStore) GetRun(_ context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

// ListRuns retrieves recent analysis runs, newest first
func (m *MemoryStore) ListRuns(_ context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	runs := make([]Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	m.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// DeleteRun deletes an analysis run and its artifacts
func (m *MemoryStore) DeleteRun(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[id]; !ok {
		return fmt.Errorf("run not found: %s", id)
	}
	delete(m.runs, id)
	delete(m.artifacts, id)
	return nil
}

// SaveArtifact stores the JSON output of one stage of a run
func (m *MemoryStore) SaveArtifact(_ context.Context, runID, step, category string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[runID]; !ok {
		return fmt.Errorf("failed to save artifact %s: run not found: %s", step, runID)
	}

	rows := m.artifacts[runID]
	for i := range rows {
		if rows[i].summary.Step == step {
			rows[i].summary.Category = category
			rows[i].content = jsonBytes
			return nil
		}
	}
	m.artifacts[runID] = append(rows, artifactRow{
		summary: ArtifactSummary{ID: uuid.New(), Step: step, Category: category, CreatedAt: m.now()},
		content: jsonBytes,
	})
	return nil
}

// GetArtifact retrieves the raw JSON of a stage output. Returns nil if not found.
func (m *MemoryStore) GetArtifact(_ context.Context, runID, step string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, row := range m.artifacts[runID] {
		if row.summary.Step == step {
			return append([]byte(nil), row.content...), nil
		}
	}
	return nil, nil
}

// ListArtifacts lists the stage outputs stored for a run in the order they were written
func (m *MemoryStore) ListArtifacts(_ context.Context, runID string) ([]ArtifactSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ArtifactSummary, 0, len(m.artifacts[runID]))
	for _, row := range m.artifacts[runID] {
		out = append(out, row.summary)
	}
	return out, nil
}

func decodeScore(payload []byte) (*types.ScoreResult, error) {
	var score types.ScoreResult
	if err := json.Unmarshal(payload, &score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score: %w", err)
	}
	return &score, nil
}
