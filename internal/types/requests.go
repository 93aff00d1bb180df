package types

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Formats accepted for job descriptions
const (
	FormatText = "text"
	FormatHTML = "html"
)

var validate = newValidator()

// newValidator reports failing fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ScoreRequest is the request body for scoring a résumé.
// The résumé stays raw so it can be checked against the JSON Schema before decoding.
type ScoreRequest struct {
	Resume json.RawMessage `json:"resume" validate:"required"`
}

// ExtractKeywordsRequest is the request body for keyword extraction
type ExtractKeywordsRequest struct {
	JobDescription string `json:"jobDescription" validate:"max=200000"`
	Format         string `json:"format,omitempty" validate:"omitempty,oneof=text html"`
}

// ExtractKeywordsResponse wraps the extracted keywords
type ExtractKeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// AnalyzeKeywordsRequest is the request body for keyword matching
type AnalyzeKeywordsRequest struct {
	Resume         json.RawMessage `json:"resume" validate:"required"`
	JobDescription string          `json:"jobDescription" validate:"max=200000"`
	Format         string          `json:"format,omitempty" validate:"omitempty,oneof=text html"`
}

// PlacementRequest is the request body for single-keyword placement advice
type PlacementRequest struct {
	Resume  json.RawMessage `json:"resume" validate:"required"`
	Keyword string          `json:"keyword" validate:"required,max=200"`
}

// BatchRequest is the request body for analyzing several résumés at once
type BatchRequest struct {
	Items []BatchItem `json:"items" validate:"required,min=1,dive"`
}

// BatchItem is one résumé/job-description pair in a batch
type BatchItem struct {
	ID             string          `json:"id,omitempty" validate:"max=128"`
	Resume         json.RawMessage `json:"resume" validate:"required"`
	JobDescription string          `json:"jobDescription,omitempty" validate:"max=200000"`
	Format         string          `json:"format,omitempty" validate:"omitempty,oneof=text html"`
}

// BatchResult is the analysis of one batch item, in input order
type BatchResult struct {
	ID       string           `json:"id"`
	Score    *ATSScore        `json:"score"`
	Keywords *KeywordAnalysis `json:"keywords"`
}

// BatchResponse wraps the results of a batch
type BatchResponse struct {
	Results []BatchResult `json:"results"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ExtractKeywordsRequest using the validator.
func (r *ExtractKeywordsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeKeywordsRequest using the validator.
func (r *AnalyzeKeywordsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the PlacementRequest using the validator.
func (r *PlacementRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	return validate.Struct(r)
}
