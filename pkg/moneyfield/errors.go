package moneyfield

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrFieldConfig marks a definition-time configuration mistake. These are
	// programming errors and are meant to stop the process at startup.
	ErrFieldConfig = errors.New("money field configuration error")

	// ErrInvalidType is returned when a value of the wrong type is assigned.
	ErrInvalidType = errors.New("invalid type")

	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// Validation messages.
const (
	MsgNull          = "This field cannot be null."
	MsgBlank         = "This field cannot be blank."
	MsgRequired      = "This field is required."
	MsgCurrencyCode  = "Enter a valid currency code of three upper-case letters."
	MsgInvalidNumber = "Enter a number."
)

func msgInvalidChoice(v string) string {
	return fmt.Sprintf("Value %q is not a valid choice.", v)
}

// ValidationError collects validation messages keyed by column or form field name.
type ValidationError struct {
	Errors map[string][]string
}

// NewValidationError returns a ValidationError holding a single message.
func NewValidationError(name, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(name, msg)
	return e
}

// Add appends a message for name.
func (e *ValidationError) Add(name string, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[name] = append(e.Errors[name], msgs...)
}

// Merge copies every message of other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for name, msgs := range other.Errors {
		e.Add(name, msgs...)
	}
}

// HasErrors reports whether any message was collected.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// Err returns e as an error, or nil when nothing was collected.
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	names := slices.Sorted(maps.Keys(e.Errors))
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Errors[name], " ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func configError(name, format string, args ...any) error {
	return fmt.Errorf("%w: money field %q: %s", ErrFieldConfig, name, fmt.Sprintf(format, args...))
}
