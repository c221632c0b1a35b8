package recommend

import (
	"testing"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *Engine {
	return NewEngine(dictionary.MustDefault())
}

// lowScore returns a score in which every section is below its satisfied threshold
func lowScore(format float64) types.ScoreResult {
	return types.ScoreResult{
		FormatCompatibilityScore: format,
		SectionScores: map[string]types.SectionScore{
			types.MatchSectionSummary:    {Score: 0, MaxScore: 5},
			types.MatchSectionExperience: {Score: 0, MaxScore: 15},
			types.MatchSectionEducation:  {Score: 0, MaxScore: 5},
			types.MatchSectionSkills:     {Score: 0, MaxScore: 10},
		},
	}
}

func messages(recs []types.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Recommendation)
	}
	return out
}

func TestRecommend_EmptySummary(t *testing.T) {
	job := types.JobRequirements{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Python", "Kubernetes", "Communication", "Docker"},
	}

	set := newEngine().Recommend(types.NewParsedResume(), job, lowScore(25))
	summary := set.ForSection(types.MatchSectionSummary)
	require.Len(t, summary, 1)

	rec := summary[0]
	assert.Equal(t, "Add a professional summary that highlights your qualifications for the role.", rec.Recommendation)
	assert.Equal(t, 0.8, rec.Impact)
	assert.Equal(t, types.DifficultyMedium, rec.ImplementationDifficulty)
	assert.Nil(t, rec.BeforeExample)
	require.NotNil(t, rec.AfterExample)
	assert.Equal(t, "Experienced professional with expertise in Python, Kubernetes, Communication seeking a "+
		"Backend Engineer role where I can leverage my skills in Docker to drive results.", *rec.AfterExample)
}

func TestRecommend_EmptySummaryWithoutTitle(t *testing.T) {
	set := newEngine().Recommend(types.NewParsedResume(), types.JobRequirements{}, lowScore(25))
	summary := set.ForSection(types.MatchSectionSummary)
	require.Len(t, summary, 1)
	assert.Equal(t, "Experienced professional with expertise in  seeking a position role where I can leverage my skills in  to drive results.",
		*summary[0].AfterExample)
}

func TestRecommend_SummaryKeywords(t *testing.T) {
	resume := types.NewParsedResume()
	resume.Summary = "Backend developer."

	score := lowScore(25)
	score.KeywordMatches = []types.KeywordMatchRecord{
		{Keyword: "Python", Importance: 0.8, Found: true},
		{Keyword: "Kubernetes", Importance: 0.8},
		{Keyword: "terraform", Importance: 0.5},
		{Keyword: "Go", Importance: 0.8},
	}

	recs := newEngine().Recommend(resume, types.JobRequirements{}, score).ForSection(types.MatchSectionSummary)
	require.Len(t, recs, 2)

	assert.Equal(t, "Include key job-specific terms in your summary: Kubernetes, Go.", recs[0].Recommendation)
	assert.Equal(t, "Backend developer.", *recs[0].BeforeExample)
	assert.Equal(t, "Experienced professional with expertise in Kubernetes, Go seeking to leverage skills in  to drive results.", *recs[0].AfterExample)
	assert.Equal(t, "Expand your summary to better highlight your qualifications and include more relevant keywords.", recs[1].Recommendation)
	assert.Equal(t, "Backend developer.", *recs[1].BeforeExample)
}

func TestRecommend_SatisfiedSectionsAreSkipped(t *testing.T) {
	score := types.ScoreResult{
		FormatCompatibilityScore: 20,
		SectionScores: map[string]types.SectionScore{
			types.MatchSectionSummary:    {Score: 4, MaxScore: 5},
			types.MatchSectionExperience: {Score: 12, MaxScore: 15},
			types.MatchSectionEducation:  {Score: 5, MaxScore: 5},
			types.MatchSectionSkills:     {Score: 8, MaxScore: 10},
		},
	}

	set := newEngine().Recommend(types.NewParsedResume(), types.JobRequirements{}, score)
	assert.Empty(t, set.Recommendations)
	assert.NotNil(t, set.Recommendations)
	assert.Zero(t, set.PotentialScoreIncrease)
}

func TestRecommend_Experience(t *testing.T) {
	tests := []struct {
		name       string
		experience []types.ExperienceEntry
		want       []string
	}{
		{
			name: "no experience",
			want: []string{"Add detailed work experience with bullet points highlighting achievements and responsibilities."},
		},
		{
			name:       "weak verbs and no metrics",
			experience: []types.ExperienceEntry{{Description: types.Description{"Responsible for coding tasks"}}},
			want: []string{
				"Use strong action verbs to start your bullet points (e.g., Achieved, Implemented, Developed, Led).",
				"Add quantifiable achievements with metrics and percentages to demonstrate impact.",
			},
		},
		{
			name:       "strong and quantified",
			experience: []types.ExperienceEntry{{Description: types.Description{"Reduced latency by 40%"}}},
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := types.NewParsedResume()
			if tt.experience != nil {
				resume.Experience = tt.experience
			}
			recs := newEngine().Recommend(resume, types.JobRequirements{}, lowScore(25)).ForSection(types.MatchSectionExperience)
			assert.Equal(t, tt.want, messages(recs))
		})
	}
}

func TestRecommend_ExperienceEmptyIsHard(t *testing.T) {
	recs := newEngine().Recommend(types.NewParsedResume(), types.JobRequirements{}, lowScore(25)).ForSection(types.MatchSectionExperience)
	require.Len(t, recs, 1)
	assert.Equal(t, 0.9, recs[0].Impact)
	assert.Equal(t, types.DifficultyHard, recs[0].ImplementationDifficulty)
}

func TestRecommend_Education(t *testing.T) {
	gpa := 3.6
	tests := []struct {
		name      string
		education []types.EducationEntry
		match     types.EducationMatch
		want      []string
	}{
		{
			name: "no education",
			want: []string{"Add your educational background, including degrees, institutions, and graduation dates."},
		},
		{
			name:      "recent graduate without GPA",
			education: []types.EducationEntry{{Degree: "B.S.", EndDate: "May 2020"}},
			want: []string{
				"Highlight your highest level of education more prominently to meet job requirements.",
				"Emphasize coursework or projects related to the required field of study.",
				"Include your GPA if it's 3.0 or higher and you've graduated within the last 5 years.",
			},
		},
		{
			name:      "older graduate",
			education: []types.EducationEntry{{Degree: "B.S.", EndDate: "2012"}},
			match:     types.EducationMatch{LevelMatch: true},
			want:      []string{"Emphasize coursework or projects related to the required field of study."},
		},
		{
			name:      "GPA listed",
			education: []types.EducationEntry{{Degree: "B.S.", EndDate: "2021", GPA: &gpa}},
			match:     types.EducationMatch{LevelMatch: true, FieldMatch: true},
			want:      []string{},
		},
		{
			name:      "still enrolled",
			education: []types.EducationEntry{{Degree: "M.S.", Current: true}},
			match:     types.EducationMatch{LevelMatch: true, FieldMatch: true},
			want:      []string{"Include your GPA if it's 3.0 or higher and you've graduated within the last 5 years."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := types.NewParsedResume()
			if tt.education != nil {
				resume.Education = tt.education
			}
			score := lowScore(25)
			score.EducationMatch = tt.match

			recs := newEngine().Recommend(resume, types.JobRequirements{}, score).ForSection(types.MatchSectionEducation)
			assert.Equal(t, tt.want, messages(recs))
		})
	}
}

func TestRecommend_Skills(t *testing.T) {
	resume := types.NewParsedResume()
	resume.Skills = []types.Skill{{Name: "Go"}, {Name: "Experienced with many cloud tools."}}
	resume.Experience = []types.ExperienceEntry{{Description: types.Description{"Delivered 3 services on Kubernetes"}}}

	job := types.JobRequirements{RequiredSkills: []string{"Kubernetes", "Terraform"}, PreferredSkills: []string{"Helm"}}

	score := lowScore(25)
	score.SectionScores[types.MatchSectionSkills] = types.SectionScore{
		Score:           2,
		MaxScore:        10,
		KeywordsFound:   []string{"Go"},
		KeywordsMissing: []string{"Kubernetes", "Terraform", "Helm"},
	}

	recs := newEngine().Recommend(resume, job, score).ForSection(types.MatchSectionSkills)
	assert.Equal(t, []string{
		"Add these key skills that are mentioned in your resume but not in your skills section: Kubernetes.",
		"If you have these skills, add them to your skills section as they are required for the job: Kubernetes, Terraform.",
		"Format your skills section as a clear, scannable list rather than paragraph format.",
	}, messages(recs))
	assert.Equal(t, types.DifficultyMedium, recs[1].ImplementationDifficulty)
	require.NotNil(t, recs[2].AfterExample)
}

func TestRecommend_NoSkills(t *testing.T) {
	recs := newEngine().Recommend(types.NewParsedResume(), types.JobRequirements{}, lowScore(25)).ForSection(types.MatchSectionSkills)
	assert.Equal(t, []string{"Add a dedicated skills section that lists your technical and soft skills."}, messages(recs))
}

func TestRecommend_Format(t *testing.T) {
	low := newEngine().Recommend(types.NewParsedResume(), types.JobRequirements{}, lowScore(19)).ForSection(sectionFormat)
	require.Len(t, low, 4)
	assert.Equal(t, "Career Journey", *low[2].BeforeExample)
	assert.Equal(t, "Professional Experience", *low[2].AfterExample)

	high := newEngine().Recommend(types.NewParsedResume(), types.JobRequirements{}, lowScore(20)).ForSection(sectionFormat)
	assert.Empty(t, high)
}

func TestRecommend_SectionOrder(t *testing.T) {
	set := newEngine().Recommend(types.NewParsedResume(), types.JobRequirements{}, lowScore(19))

	var order []string
	for _, r := range set.Recommendations {
		if len(order) == 0 || order[len(order)-1] != r.Section {
			order = append(order, r.Section)
		}
	}
	assert.Equal(t, []string{"summary", "experience", "education", "skills", "format"}, order)
}

func TestPotentialIncrease(t *testing.T) {
	tests := []struct {
		name string
		recs []types.Recommendation
		want float64
	}{
		{name: "none", recs: nil, want: 0},
		{
			name: "weighted by difficulty",
			recs: []types.Recommendation{
				{Impact: 0.8, ImplementationDifficulty: types.DifficultyMedium},
				{Impact: 0.5, ImplementationDifficulty: types.DifficultyEasy},
				{Impact: 0.9, ImplementationDifficulty: types.DifficultyHard},
			},
			want: (0.64 + 0.5 + 0.54) * 10,
		},
		{
			name: "capped",
			recs: []types.Recommendation{
				{Impact: 1, ImplementationDifficulty: types.DifficultyEasy},
				{Impact: 1, ImplementationDifficulty: types.DifficultyEasy},
				{Impact: 1, ImplementationDifficulty: types.DifficultyEasy},
				{Impact: 1, ImplementationDifficulty: types.DifficultyEasy},
			},
			want: MaxPotentialIncrease,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PotentialIncrease(tt.recs), 1e-9)
		})
	}
}
