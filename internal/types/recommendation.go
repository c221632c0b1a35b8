package types

// Difficulty is how hard a recommendation is to apply
type Difficulty string

// Implementation difficulties
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Factor returns the weight applied to a recommendation's impact when
// estimating the potential score increase.
func (d Difficulty) Factor() float64 {
	switch d {
	case DifficultyEasy:
		return 1.0
	case DifficultyMedium:
		return 0.8
	default:
		return 0.6
	}
}

// Recommendation is a single actionable suggestion
type Recommendation struct {
	Section                  string     `json:"section"`
	Recommendation           string     `json:"recommendation"`
	Impact                   float64    `json:"impact"`
	ImplementationDifficulty Difficulty `json:"implementation_difficulty"`
	BeforeExample            *string    `json:"before_example,omitempty"`
	AfterExample             *string    `json:"after_example,omitempty"`
}

// RecommendationSet is the full set of suggestions for a resume/job pair
type RecommendationSet struct {
	ResumeID               string           `json:"resume_id,omitempty"`
	JobID                  string           `json:"job_id,omitempty"`
	Recommendations        []Recommendation `json:"recommendations"`
	PotentialScoreIncrease float64          `json:"potential_score_increase"`
	Timestamp              string           `json:"timestamp,omitempty"`
}

// ForSection returns the recommendations targeting one section.
func (s RecommendationSet) ForSection(section string) []Recommendation {
	out := []Recommendation{}
	for _, r := range s.Recommendations {
		if r.Section == section {
			out = append(out, r)
		}
	}
	return out
}
