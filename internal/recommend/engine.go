// Package recommend turns a score breakdown into concrete, ranked suggestions
// for improving a resume against a job.
package recommend

import (
	"math"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/types"
)

const (
	// MaxPotentialIncrease caps the estimated score gain of a recommendation set
	MaxPotentialIncrease = 30.0

	// sectionSatisfiedRatio is the share of a section's max score above which
	// the section gets no recommendations
	sectionSatisfiedRatio = 0.8

	// formatSatisfiedScore is the format score at or above which no format advice is given
	formatSatisfiedScore = 20.0

	impactScale      = 10.0
	maxListedTerms   = 5
	summaryMinWords  = 30
	summaryPreview   = 100
	recentGradYear   = 2018
	proseSkillWords  = 4
	criticalKeywords = 0.7
)

// Engine generates recommendations. It is safe for concurrent use.
type Engine struct {
	dict *dictionary.Dictionaries
}

// NewEngine creates a recommendation engine backed by dict.
func NewEngine(dict *dictionary.Dictionaries) *Engine {
	return &Engine{dict: dict}
}

// Recommend runs the section rules in order: summary, experience, education,
// skills, format. IDs and timestamps are left for the caller to stamp.
func (e *Engine) Recommend(resume types.ParsedResume, job types.JobRequirements, score types.ScoreResult) types.RecommendationSet {
	recs := []types.Recommendation{}
	recs = append(recs, e.summaryRules(resume, job, score)...)
	recs = append(recs, e.experienceRules(resume, score)...)
	recs = append(recs, e.educationRules(resume, score)...)
	recs = append(recs, e.skillsRules(resume, job, score)...)
	recs = append(recs, formatRules(score)...)

	return types.RecommendationSet{
		Recommendations:        recs,
		PotentialScoreIncrease: PotentialIncrease(recs),
	}
}

// PotentialIncrease estimates the points gained by applying recs, weighting
// each impact by how hard it is to implement.
func PotentialIncrease(recs []types.Recommendation) float64 {
	total := 0.0
	for _, r := range recs {
		total += r.Impact * r.ImplementationDifficulty.Factor()
	}
	return math.Min(total*impactScale, MaxPotentialIncrease)
}

// satisfied reports whether a section already scores high enough to skip
func satisfied(score types.ScoreResult, section string) bool {
	sec, ok := score.Section(section)
	if !ok {
		return false
	}
	return sec.Score >= sectionSatisfiedRatio*sec.MaxScore
}

// missingCriticalKeywords lists keywords of required-skill importance that were not found
func missingCriticalKeywords(score types.ScoreResult) []string {
	var out []string
	for _, km := range score.KeywordMatches {
		if km.Importance > criticalKeywords && !km.Found {
			out = append(out, km.Keyword)
		}
	}
	return out
}

func strPtr(s string) *string {
	return &s
}

// window returns s[from:to] clamped to the slice bounds
func window(s []string, from, to int) []string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
