package shamir

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a sharing error
type ErrorCategory string

const (
	ErrorCategoryValidation     ErrorCategory = "validation"
	ErrorCategoryConfiguration  ErrorCategory = "configuration"
	ErrorCategoryThreshold      ErrorCategory = "threshold"
	ErrorCategoryReconstruction ErrorCategory = "reconstruction"
	ErrorCategoryCryptographic  ErrorCategory = "cryptographic"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"      // Non-critical, operation can continue
	ErrorSeverityMedium   ErrorSeverity = "medium"   // Caller input was rejected
	ErrorSeverityHigh     ErrorSeverity = "high"     // Operation could not produce a result
	ErrorSeverityCritical ErrorSeverity = "critical" // Environment failure (e.g. no entropy)
)

// SharingError represents a structured error in the shamir library
type SharingError struct {
	Category    ErrorCategory          `json:"category"`
	Severity    ErrorSeverity          `json:"severity"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Cause       error                  `json:"-"` // Original error, not serialized
	Context     map[string]interface{} `json:"context,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// Error implements the error interface
func (e *SharingError) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *SharingError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a SharingError with the same code, so that
// errors.Is matches copies made by WithContext, WithCause and WithDetails.
func (e *SharingError) Is(target error) bool {
	t, ok := target.(*SharingError)
	return ok && t.Code == e.Code
}

func (e *SharingError) clone() *SharingError {
	c := *e
	c.Context = make(map[string]interface{}, len(e.Context))
	for k, v := range e.Context {
		c.Context[k] = v
	}
	return &c
}

// WithContext adds context information to a copy of the error
func (e *SharingError) WithContext(key string, value interface{}) *SharingError {
	c := e.clone()
	c.Context[key] = value
	return c
}

// WithCause returns a copy of the error wrapping cause
func (e *SharingError) WithCause(cause error) *SharingError {
	c := e.clone()
	c.Cause = cause
	return c
}

// WithDetails returns a copy of the error carrying details
func (e *SharingError) WithDetails(details string) *SharingError {
	c := e.clone()
	c.Details = details
	return c
}

// IsRecoverable returns whether the error is recoverable
func (e *SharingError) IsRecoverable() bool {
	return e.Recoverable
}

// NewSharingError creates a new sharing error
func NewSharingError(category ErrorCategory, severity ErrorSeverity, code, message string) *SharingError {
	return &SharingError{
		Category:    category,
		Severity:    severity,
		Code:        code,
		Message:     message,
		Context:     make(map[string]interface{}),
		Recoverable: severity != ErrorSeverityCritical,
	}
}

// Scheme errors
var (
	ErrInvalidParameters = NewSharingError(
		ErrorCategoryThreshold, ErrorSeverityMedium, "INVALID_PARAMETERS",
		"scheme parameters are invalid")

	ErrInsufficientShares = NewSharingError(
		ErrorCategoryReconstruction, ErrorSeverityMedium, "INSUFFICIENT_SHARES",
		"insufficient shares to reach threshold")

	ErrDegenerateShareSet = NewSharingError(
		ErrorCategoryReconstruction, ErrorSeverityMedium, "DEGENERATE_SHARE_SET",
		"share set contains duplicate x-coordinates")
)

// Supporting errors
var (
	ErrRandomnessGeneration = NewSharingError(
		ErrorCategoryCryptographic, ErrorSeverityCritical, "RANDOMNESS_GENERATION_FAILED",
		"failed to generate secure randomness")

	ErrInvalidElement = NewSharingError(
		ErrorCategoryValidation, ErrorSeverityMedium, "INVALID_ELEMENT",
		"value is not a valid field element")

	ErrUnsupportedField = NewSharingError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "UNSUPPORTED_FIELD",
		"field is invalid or unsupported")

	ErrInvalidConfiguration = NewSharingError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "INVALID_CONFIGURATION",
		"configuration parameters are inconsistent")
)

// Error helper functions

// WrapError wraps an existing error with sharing error context
func WrapError(err error, category ErrorCategory, severity ErrorSeverity, code, message string) *SharingError {
	return NewSharingError(category, severity, code, message).WithCause(err)
}

// IsErrorCategory checks if an error belongs to a specific category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if sharingErr, ok := asSharingError(err); ok {
		return sharingErr.Category == category
	}
	return false
}

// IsRecoverableError checks if an error is recoverable
func IsRecoverableError(err error) bool {
	if sharingErr, ok := asSharingError(err); ok {
		return sharingErr.IsRecoverable()
	}
	return true // Foreign errors are assumed recoverable
}

// ErrorCode returns the code of the outermost SharingError in err's chain, or
// "" if there is none.
func ErrorCode(err error) string {
	if sharingErr, ok := asSharingError(err); ok {
		return sharingErr.Code
	}
	return ""
}

// GetErrorContext extracts context from a sharing error
func GetErrorContext(err error) map[string]interface{} {
	if sharingErr, ok := asSharingError(err); ok {
		return sharingErr.Context
	}
	return nil
}

func asSharingError(err error) (*SharingError, bool) {
	var sharingErr *SharingError
	if errors.As(err, &sharingErr) {
		return sharingErr, true
	}
	return nil, false
}
