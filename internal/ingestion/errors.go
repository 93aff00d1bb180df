package ingestion

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is wrapped by errors for formats other than text and html
var ErrUnsupportedFormat = errors.New("unsupported job description format")

// Error represents a failure reading or normalizing a job description
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
