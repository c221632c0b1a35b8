package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata and is safe for concurrent use
var validate = validator.New()

// JobDescriptionRequest is the body of a job-processing request.
type JobDescriptionRequest struct {
	Description string `json:"description" validate:"required,min=20"`
}

// ScoreRequest references a stored resume and job by ID.
type ScoreRequest struct {
	ResumeID string `json:"resume_id" validate:"required,uuid"`
	JobID    string `json:"job_id" validate:"required,uuid"`
}

// AnalyzeRequest carries raw resume and job text for a one-shot analysis.
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	JobText    string `json:"job_text" validate:"required"`
}

// KeywordsRequest asks for a keyword profile of raw text or a stored record.
// Exactly one of the three fields must be set.
type KeywordsRequest struct {
	Text     string `json:"text,omitempty" validate:"required_without_all=ResumeID JobID"`
	ResumeID string `json:"resume_id,omitempty" validate:"omitempty,uuid,excluded_with=JobID"`
	JobID    string `json:"job_id,omitempty" validate:"omitempty,uuid"`
}

// Validate validates the JobDescriptionRequest using the validator.
func (r *JobDescriptionRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the KeywordsRequest using the validator.
func (r *KeywordsRequest) Validate() error {
	return validate.Struct(r)
}
