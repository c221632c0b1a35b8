// Package ranking orders candidate resumes scored against the same job.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Candidate is one resume and the outcome of scoring it
type Candidate struct {
	Name   string
	Report *pipeline.Report
	Err    error
}

// Ranked is a candidate with its position. Failed candidates have Rank 0.
type Ranked struct {
	Candidate
	Rank  int
	Notes string
}

// Score returns the candidate's overall score, or 0 when scoring failed.
func (c Candidate) Score() float64 {
	if c.Err != nil || c.Report == nil {
		return 0
	}
	return c.Report.Score.OverallScore
}

func (c Candidate) failed() bool {
	return c.Err != nil || c.Report == nil
}

// Rank orders candidates by overall score, best first, breaking ties by name.
// Failed candidates follow in name order.
func Rank(candidates []Candidate) []Ranked {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.failed() != b.failed() {
			return !a.failed()
		}
		if !a.failed() && a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		return a.Name < b.Name
	})

	ranked := make([]Ranked, 0, len(sorted))
	position := 0
	for _, c := range sorted {
		r := Ranked{Candidate: c}
		if !c.failed() {
			position++
			r.Rank = position
			r.Notes = generateNotes(c.Report.Match)
		}
		ranked = append(ranked, r)
	}
	return ranked
}

// Reports returns the reports of the successfully ranked candidates in order.
func Reports(ranked []Ranked) []pipeline.Report {
	var out []pipeline.Report
	for _, r := range ranked {
		if r.Rank > 0 {
			out = append(out, *r.Report)
		}
	}
	return out
}

// generateNotes creates a brief explanation of how a candidate matched.
func generateNotes(m types.MatchResult) string {
	var parts []string

	matched := m.SkillMatches.Matched
	total := len(matched) + len(m.SkillMatches.Missing)
	overlap := 0.0
	if total > 0 {
		overlap = float64(len(matched)) / float64(total)
	}
	switch {
	case len(matched) == 0:
		parts = append(parts, "No skill matches")
	case overlap >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(matched, ", ")))
	case overlap >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(matched, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(matched, ", ")))
	}

	switch exp := m.ExperienceMatch; {
	case exp.YearsMatch && exp.LevelMatch:
		parts = append(parts, "Meets experience requirements")
	case exp.YearsMatch:
		parts = append(parts, "Meets years of experience")
	default:
		parts = append(parts, "Below experience requirements")
	}

	if m.EducationMatch.LevelMatch {
		parts = append(parts, "Education requirement met")
	}

	return strings.Join(parts, ". ")
}
