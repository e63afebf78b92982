package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned when a resource exists but belongs to another tenant,
// so cross-tenant probing cannot distinguish the two cases.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule indicates a recoverable business-rule violation, such as an
// invalid state transition or a policy check blocking submission.
var ErrBusinessRule = errors.New("business rule violation")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller's role or ownership does not permit the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// NewValidationError wraps ErrValidation with a user-visible message.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NewBusinessRuleError wraps ErrBusinessRule with a user-visible message.
// The message is surfaced to the caller verbatim.
func NewBusinessRuleError(msg string) error {
	return fmt.Errorf("%w: %s", ErrBusinessRule, msg)
}
