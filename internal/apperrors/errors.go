// Package apperrors defines the error taxonomy shared by the HTTP layer and
// the domain services: validation failures, missing records, upstream
// translation-provider failures and persistence failures. Handlers map these
// onto the stable {success:false, error, code} response shape.
package apperrors

import "fmt"

// Stable error codes returned to clients.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeMessageNotFound      = "MESSAGE_NOT_FOUND"
	CodeNothingToTranslate   = "NOTHING_TO_TRANSLATE"
	CodeSameLanguage         = "SAME_LANGUAGE"
	CodeTranslationFailed    = "TRANSLATION_FAILED"
	CodePreferenceSaveFailed = "PREFERENCE_SAVE_FAILED"
	CodeMessageSaveFailed    = "MESSAGE_SAVE_FAILED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeStorageFailed        = "STORAGE_FAILED"
	CodeInternal             = "INTERNAL_ERROR"
)

// ValidationError reports one or more invalid request fields. Details maps
// field name to a human-readable problem.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Details)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, problem string) *ValidationError {
	return &ValidationError{Details: map[string]string{field: problem}}
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Code     string
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ProviderError carries an upstream translation-provider failure. Status and
// Code are propagated verbatim to the caller.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("translation provider error %d (%s): %s", e.Status, e.Code, e.Message)
}

// ConflictError reports a domain-rule violation that is not a field-level
// validation problem, e.g. translating a message into its own language.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StorageError wraps a persistence failure with the stable code the client
// should see.
type StorageError struct {
	Code string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
