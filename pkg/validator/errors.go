package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrValidationFailed is returned when validation fails but no field details are available.
var ErrValidationFailed = errors.New("validation failed")

// Errors maps a field name to its ordered list of validation messages.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Get returns the messages recorded for field.
func (e Errors) Get(field string) []string {
	return e[field]
}

// Fields returns the names of failing fields in lexical order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// ValidationErrors flattens the map into an error value, ordered by field name.
func (e Errors) ValidationErrors() ValidationErrors {
	var out ValidationErrors
	for _, field := range e.Fields() {
		for _, msg := range e[field] {
			out = append(out, ValidationError{Field: field, Message: msg})
		}
	}
	return out
}

// ValidationError is a single field failure.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is the error form of a failed Result.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationErrors.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Errors converts back to the map form.
func (ve ValidationErrors) Errors() Errors {
	errs := Errors{}
	for _, err := range ve {
		errs.Add(err.Field, err.Message)
	}
	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
