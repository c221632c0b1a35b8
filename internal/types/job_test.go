package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEducationLevel_Rank(t *testing.T) {
	assert.Equal(t, 0, EducationUnspecified.Rank())
	assert.Less(t, EducationHighSchool.Rank(), EducationAssociate.Rank())
	assert.Less(t, EducationAssociate.Rank(), EducationBachelor.Rank())
	assert.Less(t, EducationBachelor.Rank(), EducationMaster.Rank())
	assert.Less(t, EducationMaster.Rank(), EducationPhD.Rank())
	assert.Equal(t, 5, EducationPhD.Rank())
}

func TestJobRequirements_AllSkills(t *testing.T) {
	job := JobRequirements{
		RequiredSkills:  []string{"Python", "Django", "Python"},
		PreferredSkills: []string{"Docker", "Django", ""},
	}

	assert.Equal(t, []string{"Python", "Django", "Docker"}, job.AllSkills())
	assert.True(t, job.IsRequiredSkill("Python"))
	assert.False(t, job.IsRequiredSkill("python"))
	assert.False(t, job.IsRequiredSkill("Docker"))
}

func TestJobRequirements_Normalize(t *testing.T) {
	var job JobRequirements
	job.Normalize()

	assert.NotNil(t, job.RequiredSkills)
	assert.NotNil(t, job.PreferredSkills)
	assert.NotNil(t, job.Responsibilities)
	assert.NotNil(t, job.Qualifications.Required)
	assert.NotNil(t, job.Qualifications.Preferred)
	assert.NotNil(t, job.Education.Fields)
	assert.NotNil(t, job.Keywords)
	assert.NotNil(t, job.Sections)
}

func TestMatchResult_KeywordsInSection(t *testing.T) {
	m := MatchResult{
		KeywordMatches: []KeywordMatchRecord{
			{Keyword: "python", Found: true, Section: "skills"},
			{Keyword: "django", Found: true, Section: "experience"},
			{Keyword: "aws", Found: false},
			{Keyword: "docker", Found: true, Section: "skills"},
		},
	}

	assert.Equal(t, []string{"python", "docker"}, m.KeywordsInSection("skills"))
	assert.Equal(t, []string{"django"}, m.KeywordsInSection("experience"))
	assert.Empty(t, m.KeywordsInSection("summary"))
}

func TestDifficulty_Factor(t *testing.T) {
	assert.Equal(t, 1.0, DifficultyEasy.Factor())
	assert.Equal(t, 0.8, DifficultyMedium.Factor())
	assert.Equal(t, 0.6, DifficultyHard.Factor())
}
