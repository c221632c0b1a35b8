// Package schemas embeds the JSON Schemas of the records the service emits.
package schemas

import (
	"embed"
	"fmt"
)

// Schema names
const (
	ParsedResume      = "parsed_resume"
	JobRequirements   = "job_requirements"
	ScoreResult       = "score_result"
	RecommendationSet = "recommendation_set"
)

//go:embed *.schema.json
var files embed.FS

// Get returns the schema document registered under name
func Get(name string) ([]byte, error) {
	data, err := files.ReadFile(name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return data, nil
}

// Names lists every embedded schema
func Names() []string {
	return []string{ParsedResume, JobRequirements, ScoreResult, RecommendationSet}
}
