package domain

import (
	"errors"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrModifierNotFound = errors.New("restore modifier not found")
	ErrModifierExists   = errors.New("restore modifier already exists")
	ErrSelectorNotFound = errors.New("selector not found")
	ErrSelectorInUse    = errors.New("selector is referenced by an action")
	ErrPathNotFound     = errors.New("path does not resolve")
	ErrActionNotFound   = errors.New("action not found")
)

// ValidationError carries every problem found in a modifier. It matches
// ErrValidation and, when set, Cause with errors.Is.
type ValidationError struct {
	Errors field.ErrorList
	Cause  error
}

func NewValidationError(cause error, errs ...*field.Error) *ValidationError {
	return &ValidationError{Errors: errs, Cause: cause}
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		if e.Cause != nil {
			return ErrValidation.Error() + ": " + e.Cause.Error()
		}
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + e.Errors.ToAggregate().Error()
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Cause}
}
