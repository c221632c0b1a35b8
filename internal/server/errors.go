package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/ats-optimizer/internal/ingestion"
	"github.com/jonathan/ats-optimizer/internal/pipeline"
	"github.com/jonathan/ats-optimizer/internal/pipeline/steps"
)

// ErrNotFound indicates a stored record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates a request body over the upload limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrNotFound
		invalid     *ErrValidation
		fields      validator.ValidationErrors
		tooLarge    *ErrPayloadTooLarge
		maxBytes    *http.MaxBytesError
		unsupported *ingestion.UnsupportedFormatError
		unreadable  *ingestion.UnreadableInputError
		unknownStep *steps.UnknownStepError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &fields), errors.As(err, &unknownStep),
		errors.Is(err, pipeline.ErrEmptyInput), errors.Is(err, ingestion.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &unreadable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// validationError turns validator output into an ErrValidation naming the first failed field.
func validationError(err error) error {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag())}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
