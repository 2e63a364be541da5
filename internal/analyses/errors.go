package analyses

import "errors"

var (
	// ErrEmptyResume is returned when there is no resume text to analyze.
	ErrEmptyResume = errors.New("resume text is empty")
	// ErrSchemaMismatch is returned when the model output cannot be decoded
	// into a Result even after one repair attempt.
	ErrSchemaMismatch = errors.New("llm output does not match analysis schema")
)

const (
	ErrorCodeValidation     = "validation_error"
	ErrorCodeLLMTimeout     = "llm_timeout"
	ErrorCodeSchemaMismatch = "llm_schema_mismatch"
	ErrorCodeLLM            = "llm_error"
	ErrorCodeLLMUnavailable = "llm_unavailable"
)
