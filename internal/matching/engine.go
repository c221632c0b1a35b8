// Package matching compares a parsed resume against parsed job requirements
// and produces keyword, skill, experience, education and section signals.
package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/textutil"
	"github.com/jonathan/ats-optimizer/internal/types"
)

const (
	// DefaultFuzzyThreshold is the similarity a skill pair must exceed to match
	DefaultFuzzyThreshold = 0.8

	// ContextRadius is the number of characters kept on each side of a keyword hit
	ContextRadius = 50

	minKeywordLen = 3
)

// Section relevance values given to a section that is present
const (
	summaryPresence    = 0.6
	experiencePresence = 0.7
	educationPresence  = 0.8
)

// Weights of the overall match score
const (
	keywordWeight    = 0.3
	skillWeight      = 0.3
	experienceWeight = 0.2
	educationWeight  = 0.1
	sectionWeight    = 0.1
)

var sectionOrder = []string{
	types.MatchSectionSummary,
	types.MatchSectionExperience,
	types.MatchSectionSkills,
	types.MatchSectionEducation,
}

// Engine compares resumes against job requirements. It is safe for
// concurrent use once built.
type Engine struct {
	dict       *dictionary.Dictionaries
	duration   DurationPolicy
	relevance  RelevancePolicy
	similarity func(a, b string) float64
	threshold  float64
}

// Option configures an Engine
type Option func(*Engine)

// WithDurationPolicy replaces the per-entry experience duration estimate.
func WithDurationPolicy(p DurationPolicy) Option {
	return func(e *Engine) {
		e.duration = p
	}
}

// WithRelevancePolicy replaces the experience relevance scorer.
func WithRelevancePolicy(p RelevancePolicy) Option {
	return func(e *Engine) {
		e.relevance = p
	}
}

// WithSimilarity replaces the fuzzy skill similarity function.
func WithSimilarity(fn func(a, b string) float64) Option {
	return func(e *Engine) {
		e.similarity = fn
	}
}

// WithFuzzyThreshold sets the similarity a skill pair must exceed to match.
func WithFuzzyThreshold(t float64) Option {
	return func(e *Engine) {
		e.threshold = t
	}
}

// NewEngine creates an Engine with the placeholder policies unless overridden.
func NewEngine(dict *dictionary.Dictionaries, opts ...Option) *Engine {
	e := &Engine{
		dict:       dict,
		duration:   PlaceholderDuration,
		relevance:  PlaceholderRelevance,
		similarity: textutil.Similarity,
		threshold:  DefaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compare matches resume against job. Every ratio with an empty denominator is 0.
func (e *Engine) Compare(resume types.ParsedResume, job types.JobRequirements) types.MatchResult {
	m := types.MatchResult{
		KeywordMatches:  e.compareKeywords(resume, job),
		SkillMatches:    e.compareSkills(resume, job),
		ExperienceMatch: e.compareExperience(resume, job),
		EducationMatch:  e.compareEducation(resume, job),
		SectionMatches:  e.compareSections(resume, job),
	}

	found := 0
	for _, km := range m.KeywordMatches {
		if km.Found {
			found++
		}
	}
	m.KeywordScore = ratio(found, len(m.KeywordMatches))
	m.SkillScore = ratio(len(m.SkillMatches.Matched), len(m.SkillMatches.Matched)+len(m.SkillMatches.Missing))
	m.ExperienceScore = (boolScore(m.ExperienceMatch.YearsMatch) + boolScore(m.ExperienceMatch.LevelMatch) + m.ExperienceMatch.RelevanceScore) / 3
	m.EducationScore = (boolScore(m.EducationMatch.LevelMatch) + boolScore(m.EducationMatch.FieldMatch)) / 2

	// summed in a fixed order so repeated runs produce identical floats
	sectionTotal := 0.0
	for _, name := range sectionOrder {
		sectionTotal += m.SectionMatches[name]
	}
	sectionMean := sectionTotal / float64(len(sectionOrder))

	m.OverallMatchScore = 100 * (keywordWeight*m.KeywordScore +
		skillWeight*m.SkillScore +
		experienceWeight*m.ExperienceScore +
		educationWeight*m.EducationScore +
		sectionWeight*sectionMean)
	return m
}

// keywordUniverse lists job keywords, then required, then preferred skills,
// with exact duplicates and short entries removed.
func keywordUniverse(job types.JobRequirements) []string {
	all := make([]string, 0, len(job.Keywords)+len(job.RequiredSkills)+len(job.PreferredSkills))
	all = append(all, job.Keywords...)
	all = append(all, job.RequiredSkills...)
	all = append(all, job.PreferredSkills...)

	out := make([]string, 0, len(all))
	for _, k := range textutil.Dedupe(all) {
		if utf8.RuneCountInString(k) < minKeywordLen {
			continue
		}
		out = append(out, k)
	}
	return out
}

func (e *Engine) compareKeywords(resume types.ParsedResume, job types.JobRequirements) []types.KeywordMatchRecord {
	skillNames := resume.SkillNames()
	text := strings.Join([]string{resume.Summary, resume.ExperienceText(), strings.Join(skillNames, " ")}, " ")

	universe := keywordUniverse(job)
	out := make([]types.KeywordMatchRecord, 0, len(universe))
	for _, kw := range universe {
		rec := types.KeywordMatchRecord{
			Keyword:    kw,
			Importance: types.DefaultKeywordImportance,
		}
		if job.IsRequiredSkill(kw) {
			rec.Importance = types.RequiredKeywordImportance
		}
		if textutil.ContainsWord(text, kw) {
			rec.Found = true
			rec.Context = textutil.WordContext(text, kw, ContextRadius)
			rec.Section = attributeSection(resume, skillNames, kw)
		}
		out = append(out, rec)
	}
	return out
}

// attributeSection reports the first of summary, experience and skills that contains kw
func attributeSection(resume types.ParsedResume, skillNames []string, kw string) string {
	if textutil.ContainsWord(resume.Summary, kw) {
		return types.MatchSectionSummary
	}
	for _, exp := range resume.Experience {
		for _, stmt := range exp.Description {
			if textutil.ContainsWord(stmt, kw) {
				return types.MatchSectionExperience
			}
		}
	}
	for _, s := range skillNames {
		if textutil.ContainsWord(s, kw) {
			return types.MatchSectionSkills
		}
	}
	return ""
}

// compareSkills partitions the job skills: exact name match first, then the
// first resume skill whose similarity exceeds the threshold.
func (e *Engine) compareSkills(resume types.ParsedResume, job types.JobRequirements) types.SkillMatchResult {
	res := types.SkillMatchResult{Matched: []string{}, Missing: []string{}}

	names := resume.SkillNames()
	exact := make(map[string]bool, len(names))
	for _, n := range names {
		exact[n] = true
	}

	for _, skill := range job.AllSkills() {
		if exact[skill] || e.fuzzyMatch(skill, names) {
			res.Matched = append(res.Matched, skill)
			continue
		}
		res.Missing = append(res.Missing, skill)
	}
	return res
}

func (e *Engine) fuzzyMatch(skill string, names []string) bool {
	for _, n := range names {
		if e.similarity(skill, n) > e.threshold {
			return true
		}
	}
	return false
}

func (e *Engine) compareExperience(resume types.ParsedResume, job types.JobRequirements) types.ExperienceMatch {
	total := 0.0
	for _, exp := range resume.Experience {
		total += e.duration(exp)
	}

	m := types.ExperienceMatch{
		YearsMatch:     total >= float64(job.Experience.Years),
		RelevanceScore: clamp01(e.relevance(resume, job)),
	}

	level := strings.ToLower(string(job.Experience.Level))
	if level == "" {
		m.LevelMatch = true
	} else {
		for _, exp := range resume.Experience {
			if strings.Contains(strings.ToLower(exp.Position), level) {
				m.LevelMatch = true
				break
			}
		}
	}
	return m
}

func (e *Engine) compareEducation(resume types.ParsedResume, job types.JobRequirements) types.EducationMatch {
	var m types.EducationMatch

	required := job.Education.Level.Rank()
	if required == 0 {
		m.LevelMatch = true
	} else {
		for _, edu := range resume.Education {
			if edu.Degree == "" {
				continue
			}
			if DegreeLevel(edu.Degree, e.dict.DegreeAliases).Rank() >= required {
				m.LevelMatch = true
				break
			}
		}
	}

	if len(job.Education.Fields) == 0 {
		m.FieldMatch = true
		return m
	}
	for _, edu := range resume.Education {
		field := strings.ToLower(edu.FieldOfStudy)
		if field == "" {
			continue
		}
		for _, want := range job.Education.Fields {
			if want != "" && strings.Contains(field, strings.ToLower(want)) {
				m.FieldMatch = true
				return m
			}
		}
	}
	return m
}

func (e *Engine) compareSections(resume types.ParsedResume, job types.JobRequirements) map[string]float64 {
	sections := map[string]float64{
		types.MatchSectionSummary:    0,
		types.MatchSectionExperience: 0,
		types.MatchSectionSkills:     0,
		types.MatchSectionEducation:  0,
	}
	if strings.TrimSpace(resume.Summary) != "" {
		sections[types.MatchSectionSummary] = summaryPresence
	}
	if len(resume.Experience) > 0 {
		sections[types.MatchSectionExperience] = experiencePresence
	}
	if len(resume.Education) > 0 {
		sections[types.MatchSectionEducation] = educationPresence
	}
	if len(resume.Skills) > 0 && len(job.RequiredSkills) > 0 {
		serialized := strings.ToLower(strings.Join(resume.SkillNames(), ", "))
		hits := 0
		for _, s := range job.RequiredSkills {
			if strings.Contains(serialized, strings.ToLower(s)) {
				hits++
			}
		}
		sections[types.MatchSectionSkills] = ratio(hits, len(job.RequiredSkills))
	}
	return sections
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
