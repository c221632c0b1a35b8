package types

// Score bounds
const (
	MaxOverallScore      = 100.0
	MaxContentMatchScore = 40.0
	MaxFormatScore       = 25.0
	MaxSectionEvalScore  = 35.0
)

// SectionScore is the per-section breakdown of a score
type SectionScore struct {
	Score           float64  `json:"score"`
	MaxScore        float64  `json:"max_score"`
	Feedback        string   `json:"feedback"`
	KeywordsFound   []string `json:"keywords_found"`
	KeywordsMissing []string `json:"keywords_missing"`
}

// ScoreResult is the weighted ATS score for a resume against a job
type ScoreResult struct {
	ResumeID                 string                  `json:"resume_id,omitempty"`
	JobID                    string                  `json:"job_id,omitempty"`
	OverallScore             float64                 `json:"overall_score"`
	ContentMatchScore        float64                 `json:"content_match_score"`
	FormatCompatibilityScore float64                 `json:"format_compatibility_score"`
	SectionEvaluationScore   float64                 `json:"section_evaluation_score"`
	SectionScores            map[string]SectionScore `json:"section_scores"`
	KeywordMatches           []KeywordMatchRecord    `json:"keyword_matches"`
	EducationMatch           EducationMatch          `json:"education_match"`
	Timestamp                string                  `json:"timestamp,omitempty"`
}

// Section returns the named section score and whether it exists.
func (s ScoreResult) Section(name string) (SectionScore, bool) {
	sec, ok := s.SectionScores[name]
	return sec, ok
}
