package types

// KeywordDensity is the share of significant tokens taken by one keyword
type KeywordDensity struct {
	Keyword string  `json:"keyword"`
	Density float64 `json:"density"`
}

// KeywordProfile is the categorized keyword view of a resume or job posting
type KeywordProfile struct {
	TechnicalSkills []string            `json:"technical_skills"`
	SoftSkills      []string            `json:"soft_skills"`
	IndustryTerms   []string            `json:"industry_terms"`
	ActionVerbs     []string            `json:"action_verbs"`
	KeywordDensity  []KeywordDensity    `json:"keyword_density"`
	SectionKeywords map[string][]string `json:"section_keywords"`
	TopKeywords     []string            `json:"top_keywords"`

	// Set only for job postings
	RequiredSkills  []string `json:"required_skills,omitempty"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`
}

// Density returns the density recorded for keyword, or 0.
func (p KeywordProfile) Density(keyword string) float64 {
	for _, kd := range p.KeywordDensity {
		if kd.Keyword == keyword {
			return kd.Density
		}
	}
	return 0
}
