package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Use errors.Is to classify a returned error.
var (
	ErrTypeConversion = errors.New("type conversion")
	ErrFormat         = errors.New("format")
	ErrValidation     = errors.New("validation")
)

// TypeConversionError reports an input whose shape a normalizer does not accept.
type TypeConversionError struct {
	Value any
	Msg   string
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("%s (got %T)", e.Msg, e.Value)
}

// Is reports whether target is ErrTypeConversion.
func (e *TypeConversionError) Is(target error) bool {
	return target == ErrTypeConversion
}

// FormatError reports a timestamp string that matches none of the accepted formats.
type FormatError struct {
	Input    string
	Accepted []string
	Err      error // underlying parse failure, if any
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("date/time %q should be given as %s", e.Input, strings.Join(e.Accepted, " or "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ValidationError holds one or more violated invariants.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns a ValidationError with the given problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	switch len(e.Problems) {
	case 0:
		return "validation failed"
	case 1:
		return e.Problems[0]
	default:
		return fmt.Sprintf("%d validation problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
	}
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
