package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
	Details []schemas.FieldError
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBatchTooLarge indicates a batch with more items than the configured maximum
type ErrBatchTooLarge struct {
	Size int
	Max  int
}

func (e *ErrBatchTooLarge) Error() string {
	return fmt.Sprintf("batch too large: %d items (max %d)", e.Size, e.Max)
}

// ErrUnsupportedFormat indicates a request body that is not JSON
type ErrUnsupportedFormat struct {
	ContentType string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
		batchErr      *ErrBatchTooLarge
		formatErr     *ErrUnsupportedFormat
		maxBytesErr   *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.As(err, &batchErr), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &formatErr):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON envelope for every error response
type errorBody struct {
	Error   string               `json:"error"`
	Details []schemas.FieldError `json:"details,omitempty"`
}

// newErrorBody converts err into the response envelope. Internal errors are not echoed.
func newErrorBody(err error) errorBody {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return errorBody{Error: "internal server error"}
	}

	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
	)
	switch {
	case errors.As(err, &validationErr):
		return errorBody{Error: validationErr.Message, Details: validationErr.Details}
	case errors.As(err, &schemaErr):
		return errorBody{Error: prefix(err, "resume failed schema validation"), Details: schemaErr.Errors}
	case errors.As(err, &fieldErrs):
		return errorBody{Error: "invalid request", Details: fromValidator(fieldErrs)}
	default:
		return errorBody{Error: err.Error()}
	}
}

// prefix keeps the wrapping context ("item 2: ...") of a wrapped schema error
func prefix(err error, message string) string {
	msg := err.Error()
	if i := strings.Index(msg, ": validation failed"); i > 0 {
		return msg[:i] + ": " + message
	}
	return message
}

// fromValidator converts struct-tag failures to field errors with JSON-style paths
func fromValidator(errs validator.ValidationErrors) []schemas.FieldError {
	details := make([]schemas.FieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		message := fe.Tag()
		if fe.Param() != "" {
			message += "=" + fe.Param()
		}
		details = append(details, schemas.FieldError{Field: field, Message: message})
	}
	return details
}
