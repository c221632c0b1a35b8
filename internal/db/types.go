package db

import (
	"time"

	"github.com/google/uuid"
)

// Run is the stored summary of one full analysis
type Run struct {
	ID           string    `json:"id"`
	ResumeID     string    `json:"resume_id"`
	JobID        string    `json:"job_id"`
	JobTitle     string    `json:"job_title"`
	OverallScore float64   `json:"overall_score"`
	Cached       bool      `json:"cached"`
	CreatedAt    time.Time `json:"created_at"`
}

// ArtifactSummary is a lightweight view of an artifact for listing
type ArtifactSummary struct {
	ID        uuid.UUID `json:"id"`
	Step      string    `json:"step"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultListLimit bounds ListRuns when no limit is given
const DefaultListLimit = 50
