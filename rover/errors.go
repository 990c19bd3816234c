package rover

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// ValidationError is returned when a required value is missing or outside of its physical domain.
// Path and Field identify the offending value, e.g. "rover.motors.1.wheel" and "gear_ratio".
type ValidationError struct {
	Path  string
	Field string
	err   error
}

func (e *ValidationError) Error() string {
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// NewValidationError wraps err as a validation failure of field at path.
func NewValidationError(path, field string, err error) error {
	return &ValidationError{Path: path, Field: field, err: utils.NewConfigValidationError(path, err)}
}

// NewFieldRequiredError returns a validation error for a field missing at a given path.
func NewFieldRequiredError(path, field string) error {
	return &ValidationError{Path: path, Field: field, err: utils.NewConfigValidationFieldRequiredError(path, field)}
}

// NewNonPositiveFieldError returns a validation error for a physical quantity that must be
// strictly positive and finite.
func NewNonPositiveFieldError(path, field string, value float64) error {
	return NewValidationError(path, field, errors.Errorf("%q must be positive, got %v", field, value))
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
