package parsing

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
linkedin.com/in/janedoe | github.com/janedoe

PROFESSIONAL SUMMARY
Backend engineer with 6 years of experience building distributed systems in Go and Python.

EXPERIENCE
Acme Corp, Senior Software Engineer, Jan 2020 - Present
• Led migration of billing services to Kubernetes
• Reduced p99 latency by 40%
Beta Inc, Software Engineer, Jun 2017 - Dec 2019
- Developed REST APIs in Python and Django

EDUCATION
State University, B.S. in Computer Science, 2013 - 2017
GPA: 3.7

SKILLS
Languages: Go, Python (Expert), SQL
Docker, Kubernetes, AWS

CERTIFICATIONS
Certified Kubernetes Administrator (CNCF, 2022)

LANGUAGES
English, Spanish

INTERESTS
Climbing, Chess
`

func newResumeParser(t *testing.T) *ResumeParser {
	t.Helper()
	return NewResumeParser(dictionary.MustDefault())
}

func TestResumeParser_Contact(t *testing.T) {
	r := newResumeParser(t).Parse(sampleResume)

	assert.Equal(t, "Jane Doe", r.ContactInfo.Name)
	assert.Equal(t, "jane.doe@example.com", r.ContactInfo.Email)
	assert.Equal(t, "(555) 123-4567", r.ContactInfo.Phone)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", r.ContactInfo.LinkedIn)
	assert.Equal(t, "https://www.github.com/janedoe", r.ContactInfo.GitHub)
}

func TestResumeParser_Summary(t *testing.T) {
	r := newResumeParser(t).Parse(sampleResume)
	assert.Equal(t, "Backend engineer with 6 years of experience building distributed systems in Go and Python.", r.Summary)
}

func TestResumeParser_Experience(t *testing.T) {
	r := newResumeParser(t).Parse(sampleResume)
	require.Len(t, r.Experience, 2)

	first := r.Experience[0]
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "Senior Software Engineer", first.Position)
	assert.Equal(t, "Jan 2020", first.StartDate)
	assert.Equal(t, "Present", first.EndDate)
	assert.True(t, first.Current)
	assert.True(t, first.IsOngoing())
	assert.Equal(t, types.Description{
		"Led migration of billing services to Kubernetes",
		"Reduced p99 latency by 40%",
	}, first.Description)

	second := r.Experience[1]
	assert.Equal(t, "Beta Inc", second.Company)
	assert.Equal(t, "Software Engineer", second.Position)
	assert.Equal(t, "Jun 2017", second.StartDate)
	assert.Equal(t, "Dec 2019", second.EndDate)
	assert.False(t, second.Current)
	assert.Equal(t, types.Description{"Developed REST APIs in Python and Django"}, second.Description)
}

func TestResumeParser_Education(t *testing.T) {
	r := newResumeParser(t).Parse(sampleResume)
	require.Len(t, r.Education, 1)

	edu := r.Education[0]
	assert.Equal(t, "State University", edu.Institution)
	assert.Equal(t, "B.S. in Computer Science", edu.Degree)
	assert.Equal(t, "Computer Science", edu.FieldOfStudy)
	assert.Equal(t, "2013", edu.StartDate)
	assert.Equal(t, "2017", edu.EndDate)
	require.NotNil(t, edu.GPA)
	assert.InDelta(t, 3.7, *edu.GPA, 1e-9)
}

func TestResumeParser_Lists(t *testing.T) {
	r := newResumeParser(t).Parse(sampleResume)

	assert.Equal(t, []types.Skill{
		{Name: "Go"},
		{Name: "Python", Level: "expert"},
		{Name: "SQL"},
		{Name: "Docker"},
		{Name: "Kubernetes"},
		{Name: "AWS"},
	}, r.Skills)
	assert.Equal(t, []types.Certification{
		{Name: "Certified Kubernetes Administrator", Issuer: "CNCF", Date: "2022"},
	}, r.Certifications)
	assert.Equal(t, []string{"English", "Spanish"}, r.Languages)
	assert.Equal(t, []string{"Climbing", "Chess"}, r.Interests)
}

func TestResumeParser_PresentIsCaseInsensitive(t *testing.T) {
	text := "EXPERIENCE\nGlobex Corporation, Senior Analyst, March 2018 - present\n- Built dashboards\n"
	r := newResumeParser(t).Parse(text)

	require.Len(t, r.Experience, 1)
	assert.Equal(t, "March 2018", r.Experience[0].StartDate)
	assert.Equal(t, "Present", r.Experience[0].EndDate)
	assert.True(t, r.Experience[0].Current)
	assert.Equal(t, "Senior Analyst", r.Experience[0].Position)
}

func TestResumeParser_TwoLineEntryHeader(t *testing.T) {
	text := `EXPERIENCE
Acme Corp
Senior Software Engineer | Jan 2020 - Present
- Built the ingestion pipeline
Beta Inc
Software Engineer | 2016 - 2019
- Shipped the mobile app
`
	r := newResumeParser(t).Parse(text)
	require.Len(t, r.Experience, 2)
	assert.Equal(t, "Acme Corp", r.Experience[0].Company)
	assert.Equal(t, "Senior Software Engineer", r.Experience[0].Position)
	assert.Equal(t, "Beta Inc", r.Experience[1].Company)
	assert.Equal(t, "2016", r.Experience[1].StartDate)
	assert.Equal(t, "2019", r.Experience[1].EndDate)
}

func TestResumeParser_Projects(t *testing.T) {
	text := `PROJECTS
Ledger Sync, open source
- Streamed bank transactions into Postgres
- Tech Stack: Go, Kafka, PostgreSQL
`
	r := newResumeParser(t).Parse(text)
	require.Len(t, r.Projects, 1)
	assert.Equal(t, "Ledger Sync", r.Projects[0].Name)
	assert.Equal(t, "Streamed bank transactions into Postgres", r.Projects[0].Description)
	assert.Equal(t, []string{"Go", "Kafka", "PostgreSQL"}, r.Projects[0].Technologies)
}

func TestResumeParser_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\n", "just some words without structure"} {
		r := newResumeParser(t).Parse(text)

		assert.NotNil(t, r.Education)
		assert.NotNil(t, r.Experience)
		assert.NotNil(t, r.Skills)
		assert.NotNil(t, r.Projects)
		assert.NotNil(t, r.Certifications)
		assert.NotNil(t, r.Languages)
		assert.NotNil(t, r.Interests)
		assert.Empty(t, r.Summary)

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "null")
	}
}

func TestResumeParser_SectionEndsAtUnknownCapsHeading(t *testing.T) {
	text := `SUMMARY
Product designer focused on accessibility.

VOLUNTEER WORK
Food bank coordinator
`
	r := newResumeParser(t).Parse(text)
	assert.Equal(t, "Product designer focused on accessibility.", r.Summary)
}

func TestResumeParser_Deterministic(t *testing.T) {
	p := newResumeParser(t)
	a, err := json.Marshal(p.Parse(sampleResume))
	require.NoError(t, err)
	b, err := json.Marshal(p.Parse(sampleResume))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSectionsFound(t *testing.T) {
	r := newResumeParser(t).Parse(sampleResume)
	assert.Equal(t, []types.ResumeSection{
		types.SectionContact,
		types.SectionSummary,
		types.SectionEducation,
		types.SectionExperience,
		types.SectionSkills,
		types.SectionCertifications,
		types.SectionLanguages,
		types.SectionInterests,
	}, SectionsFound(r))

	assert.Empty(t, SectionsFound(types.NewParsedResume()))
}

func TestWordCount(t *testing.T) {
	r := newResumeParser(t).Parse(sampleResume)
	// summary 14 + experience 12 + 7 + six skills
	assert.Equal(t, 39, WordCount(r))
	assert.Equal(t, 0, WordCount(types.NewParsedResume()))
}
