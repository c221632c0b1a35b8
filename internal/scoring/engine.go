// Package scoring converts match results into a bounded ATS score with
// per-section feedback.
package scoring

import (
	"github.com/jonathan/ats-optimizer/internal/types"
)

// Content match points
const (
	keywordPoints   = 20.0
	skillPoints     = 10.0
	yearsPoints     = 3.0
	levelPoints     = 3.0
	relevancePoints = 4.0
)

// Section evaluation points
const (
	summaryPoints         = 5.0
	experiencePoints      = 15.0
	educationLevelPoints  = 2.5
	educationFieldPoints  = 2.5
	skillsSectionPoints   = 10.0
	educationSectionTotal = educationLevelPoints + educationFieldPoints
)

// Placeholder format sub-scores: structure, organization, readability
const (
	structurePoints    = 8.0
	organizationPoints = 4.0
	readabilityPoints  = 7.0
)

// FormatPolicy scores format compatibility on a 0..25 scale
type FormatPolicy func(match types.MatchResult) float64

// PlaceholderFormat returns the fixed baseline of 19 points
func PlaceholderFormat(types.MatchResult) float64 {
	return structurePoints + organizationPoints + readabilityPoints
}

// Engine scores match results. It holds no mutable state.
type Engine struct {
	format FormatPolicy
}

// Option configures an Engine
type Option func(*Engine)

// WithFormatPolicy replaces the format compatibility scorer.
func WithFormatPolicy(p FormatPolicy) Option {
	return func(e *Engine) {
		e.format = p
	}
}

// NewEngine creates a scoring engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{format: PlaceholderFormat}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the overall score and section breakdown. The overall score
// is always the exact sum of the three clamped sub-scores.
func (e *Engine) Score(match types.MatchResult) types.ScoreResult {
	res := types.ScoreResult{
		ContentMatchScore:        clamp(contentScore(match), types.MaxContentMatchScore),
		FormatCompatibilityScore: clamp(e.format(match), types.MaxFormatScore),
		SectionEvaluationScore:   clamp(sectionEvaluation(match), types.MaxSectionEvalScore),
		SectionScores:            sectionScores(match),
		KeywordMatches:           match.KeywordMatches,
		EducationMatch:           match.EducationMatch,
	}
	if res.KeywordMatches == nil {
		res.KeywordMatches = []types.KeywordMatchRecord{}
	}
	res.OverallScore = res.ContentMatchScore + res.FormatCompatibilityScore + res.SectionEvaluationScore
	return res
}

func contentScore(m types.MatchResult) float64 {
	total, matched := 0.0, 0.0
	for _, km := range m.KeywordMatches {
		total += km.Importance
		if km.Found {
			matched += km.Importance
		}
	}

	score := 0.0
	if total > 0 {
		score += keywordPoints * matched / total
	}
	score += skillPoints * skillFraction(m.SkillMatches)
	if m.ExperienceMatch.YearsMatch {
		score += yearsPoints
	}
	if m.ExperienceMatch.LevelMatch {
		score += levelPoints
	}
	score += relevancePoints * m.ExperienceMatch.RelevanceScore
	return score
}

func sectionEvaluation(m types.MatchResult) float64 {
	return summaryPoints*m.SectionMatches[types.MatchSectionSummary] +
		experiencePoints*m.SectionMatches[types.MatchSectionExperience] +
		educationPoints(m.EducationMatch) +
		skillsSectionPoints*m.SectionMatches[types.MatchSectionSkills]
}

func educationPoints(m types.EducationMatch) float64 {
	pts := 0.0
	if m.LevelMatch {
		pts += educationLevelPoints
	}
	if m.FieldMatch {
		pts += educationFieldPoints
	}
	return pts
}

func sectionScores(m types.MatchResult) map[string]types.SectionScore {
	skills := types.SectionScore{
		Score:           clamp(skillsSectionPoints*m.SectionMatches[types.MatchSectionSkills], skillsSectionPoints),
		MaxScore:        skillsSectionPoints,
		Feedback:        skillsFeedback(m.SkillMatches),
		KeywordsFound:   nonNil(m.SkillMatches.Matched),
		KeywordsMissing: nonNil(m.SkillMatches.Missing),
	}

	return map[string]types.SectionScore{
		types.MatchSectionSummary: {
			Score:           clamp(summaryPoints*m.SectionMatches[types.MatchSectionSummary], summaryPoints),
			MaxScore:        summaryPoints,
			Feedback:        summaryFeedback(m.SectionMatches[types.MatchSectionSummary]),
			KeywordsFound:   m.KeywordsInSection(types.MatchSectionSummary),
			KeywordsMissing: []string{},
		},
		types.MatchSectionExperience: {
			Score:           clamp(experiencePoints*m.SectionMatches[types.MatchSectionExperience], experiencePoints),
			MaxScore:        experiencePoints,
			Feedback:        experienceFeedback(m.SectionMatches[types.MatchSectionExperience], m.ExperienceMatch),
			KeywordsFound:   m.KeywordsInSection(types.MatchSectionExperience),
			KeywordsMissing: []string{},
		},
		types.MatchSectionEducation: {
			Score:           educationPoints(m.EducationMatch),
			MaxScore:        educationSectionTotal,
			Feedback:        educationFeedback(m.EducationMatch),
			KeywordsFound:   m.KeywordsInSection(types.MatchSectionEducation),
			KeywordsMissing: []string{},
		},
		types.MatchSectionSkills: skills,
	}
}

func skillFraction(s types.SkillMatchResult) float64 {
	total := len(s.Matched) + len(s.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(s.Matched)) / float64(total)
}

func clamp(v, upper float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > upper:
		return upper
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
