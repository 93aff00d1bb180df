package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "body", Message: "invalid request body: EOF"}
	assert.Equal(t, "validation error: body - invalid request body: EOF", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrBatchTooLarge(t *testing.T) {
	err := &ErrBatchTooLarge{Size: 5, Max: 2}
	assert.Equal(t, "batch too large: 5 items (max 2)", err.Error())
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(err))
}

func TestErrUnsupportedFormat(t *testing.T) {
	err := &ErrUnsupportedFormat{ContentType: "text/plain"}
	assert.Equal(t, "unsupported content type: text/plain", err.Error())
	assert.Equal(t, http.StatusUnsupportedMediaType, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	_, normalizeErr := ingestion.Normalize("x", "pdf")
	require.Error(t, normalizeErr)

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"ErrValidation", &ErrValidation{Field: "resume", Message: "required"}, http.StatusBadRequest},
		{"schema validation", &schemas.ValidationError{}, http.StatusBadRequest},
		{"wrapped schema validation", fmt.Errorf("item 3: %w", &schemas.ValidationError{}), http.StatusBadRequest},
		{"struct tags", (&types.PlacementRequest{}).Validate(), http.StatusBadRequest},
		{"unsupported job format", normalizeErr, http.StatusBadRequest},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"ErrBatchTooLarge", &ErrBatchTooLarge{Size: 2, Max: 1}, http.StatusRequestEntityTooLarge},
		{"ErrUnsupportedFormat", &ErrUnsupportedFormat{ContentType: "text/xml"}, http.StatusUnsupportedMediaType},
		{"schema load", &schemas.SchemaLoadError{Path: "resume.schema.json"}, http.StatusInternalServerError},
		{"canceled", context.Canceled, http.StatusInternalServerError},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestNewErrorBody(t *testing.T) {
	t.Run("internal errors are not echoed", func(t *testing.T) {
		body := newErrorBody(fmt.Errorf("database password is hunter2"))
		assert.Equal(t, "internal server error", body.Error)
		assert.Empty(t, body.Details)
	})

	t.Run("schema errors carry details", func(t *testing.T) {
		err := &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "skills", Message: "Invalid type"}}}
		body := newErrorBody(err)
		assert.Equal(t, "resume failed schema validation", body.Error)
		assert.Equal(t, err.Errors, body.Details)
	})

	t.Run("wrapped schema errors keep their context", func(t *testing.T) {
		err := fmt.Errorf("item 2: %w", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "(root)", Message: "resume is required"}}})
		body := newErrorBody(err)
		assert.Equal(t, "item 2: resume failed schema validation", body.Error)
	})

	t.Run("struct tag errors use JSON paths", func(t *testing.T) {
		err := (&types.BatchRequest{Items: []types.BatchItem{{}}}).Validate()
		body := newErrorBody(err)
		assert.Equal(t, "invalid request", body.Error)
		assert.Equal(t, []schemas.FieldError{{Field: "items[0].resume", Message: "required"}}, body.Details)
	})

	t.Run("other client errors use their message", func(t *testing.T) {
		body := newErrorBody(&ErrBatchTooLarge{Size: 3, Max: 1})
		assert.Equal(t, "batch too large: 3 items (max 1)", body.Error)
	})
}
