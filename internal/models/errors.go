package models

// Standard error codes surfaced by the API.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeForbiddenActor      = "FORBIDDEN_ACTOR"
	ErrCodeForbiddenTransition = "FORBIDDEN_TRANSITION"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code for the
// handler boundary to map onto an HTTP status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a caller-fixable input error.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors.
var (
	ErrOrderNotFound       = NewDomainError(ErrCodeNotFound, "order not found")
	ErrReviewNotFound      = NewDomainError(ErrCodeNotFound, "review not found")
	ErrForbiddenActor      = NewDomainError(ErrCodeForbiddenActor, "caller does not own this resource")
	ErrForbiddenTransition = NewDomainError(ErrCodeForbiddenTransition, "order was cancelled by the user and can no longer be modified")
	ErrInvalidTransition   = NewDomainError(ErrCodeInvalidTransition, "order can only be cancelled while it is pending")
)
