package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/types"
	embedded "github.com/jonathan/ats-optimizer/schemas"
)

const personSchema = `{
	"type": "object",
	"required": ["name", "age"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)

	tests := []struct {
		name      string
		document  string
		wantField string
	}{
		{name: "valid", document: `{"name": "Jane", "age": 30}`},
		{name: "missing field", document: `{"name": "Jane"}`, wantField: "(root)"},
		{name: "wrong type", document: `{"name": "Jane", "age": "thirty"}`, wantField: "age"},
		{name: "below minimum", document: `{"name": "Jane", "age": -1}`, wantField: "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonPath := writeFile(t, dir, "doc.json", tt.document)
			err := ValidateJSON(schemaPath, jsonPath)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.wantField, validationErr.Errors[0].Field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{}`)

	err := ValidateJSON(filepath.Join(dir, "nonexistent.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "nonexistent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "Jane", "age": 1}`))

	err := ValidateJSONString(personSchema, `{"age": 1}`)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	err = ValidateJSONString(`{ not a schema`, `{}`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidateDocument_PipelineOutput(t *testing.T) {
	resume, err := os.ReadFile("../../testdata/resumes/jane_doe.txt")
	require.NoError(t, err)
	job, err := os.ReadFile("../../testdata/jobs/senior_backend.txt")
	require.NoError(t, err)

	analyzer, err := pipeline.NewAnalyzer(dictionary.MustDefault())
	require.NoError(t, err)
	report, err := analyzer.Run(t.Context(), pipeline.RunOptions{ResumeText: string(resume), JobText: string(job)})
	require.NoError(t, err)

	assert.NoError(t, ValidateDocument(embedded.ParsedResume, report.Resume))
	assert.NoError(t, ValidateDocument(embedded.JobRequirements, report.Job))
	assert.NoError(t, ValidateDocument(embedded.ScoreResult, report.Score))
	assert.NoError(t, ValidateDocument(embedded.RecommendationSet, report.Recommendations))
}

func TestValidateDocument_Invalid(t *testing.T) {
	score := types.ScoreResult{OverallScore: 140, SectionScores: map[string]types.SectionScore{}, KeywordMatches: []types.KeywordMatchRecord{}}

	err := ValidateDocument(embedded.ScoreResult, score)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "overall_score", validationErr.Errors[0].Field)

	set := types.RecommendationSet{Recommendations: []types.Recommendation{{Section: "skills", Recommendation: "x", Impact: 0.5, ImplementationDifficulty: "impossible"}}}
	assert.Error(t, ValidateDocument(embedded.RecommendationSet, set))
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("resume_plan", map[string]string{})
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "resume_plan", loadErr.Path)
}
