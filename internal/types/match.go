package types

// Importance weights for keyword matches
const (
	RequiredKeywordImportance = 0.8
	DefaultKeywordImportance  = 0.5
)

// KeywordMatchRecord describes how a single job keyword was found in a resume
type KeywordMatchRecord struct {
	Keyword    string  `json:"keyword"`
	Found      bool    `json:"found"`
	Importance float64 `json:"importance"`
	Context    string  `json:"context,omitempty"`
	Section    string  `json:"section,omitempty"` // summary, experience or skills
}

// SkillMatchResult partitions the job's skills into matched and missing
type SkillMatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// ExperienceMatch holds experience comparison signals
type ExperienceMatch struct {
	YearsMatch     bool    `json:"years_match"`
	LevelMatch     bool    `json:"level_match"`
	RelevanceScore float64 `json:"relevance_score"`
}

// EducationMatch holds education comparison signals
type EducationMatch struct {
	LevelMatch bool `json:"level_match"`
	FieldMatch bool `json:"field_match"`
}

// Section relevance keys
const (
	MatchSectionSummary    = "summary"
	MatchSectionExperience = "experience"
	MatchSectionSkills     = "skills"
	MatchSectionEducation  = "education"
)

// MatchResult is the output of comparing a resume against a job
type MatchResult struct {
	KeywordMatches    []KeywordMatchRecord `json:"keyword_matches"`
	SkillMatches      SkillMatchResult     `json:"skill_matches"`
	ExperienceMatch   ExperienceMatch      `json:"experience_match"`
	EducationMatch    EducationMatch       `json:"education_match"`
	SectionMatches    map[string]float64   `json:"section_matches"`
	KeywordScore      float64              `json:"keyword_score"`
	SkillScore        float64              `json:"skill_score"`
	ExperienceScore   float64              `json:"experience_score"`
	EducationScore    float64              `json:"education_score"`
	OverallMatchScore float64              `json:"overall_match_score"`
}

// KeywordsInSection returns found keywords attributed to the given section.
func (m MatchResult) KeywordsInSection(section string) []string {
	out := []string{}
	for _, km := range m.KeywordMatches {
		if km.Found && km.Section == section {
			out = append(out, km.Keyword)
		}
	}
	return out
}
