package shared

import "errors"

// Error codes used across the domain
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeBusinessRule = "BUSINESS_RULE_VIOLATION"
	CodeNotFound     = "NOT_FOUND"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a value-object level validation error.
// Validation failures always prevent object construction.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewBusinessRuleError creates a use-case level business rule error.
// Unlike validation errors these may depend on current stored state.
func NewBusinessRuleError(message string) *DomainError {
	return NewDomainError(CodeBusinessRule, message)
}

// NewNotFoundError creates an error for a missing aggregate
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// IsValidationError reports whether err is a value-object validation failure
func IsValidationError(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsBusinessRuleError reports whether err is a business rule violation,
// including not-found failures
func IsBusinessRuleError(err error) bool {
	return hasCode(err, CodeBusinessRule) || hasCode(err, CodeNotFound)
}

// IsNotFound reports whether err indicates a missing aggregate
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func hasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
