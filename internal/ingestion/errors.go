package ingestion

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned when a document yields no text
var ErrEmptyDocument = errors.New("document contains no text")

// UnsupportedFormatError is returned for a document type no extractor handles
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s", e.Format)
}

// UnreadableInputError is returned when a document of a known format cannot be read
type UnreadableInputError struct {
	Source string
	Cause  error
}

func (e *UnreadableInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable input %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("unreadable input %s", e.Source)
}

func (e *UnreadableInputError) Unwrap() error {
	return e.Cause
}
