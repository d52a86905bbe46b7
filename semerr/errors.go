// Package semerr defines the error taxonomy shared by the model registry,
// the property layer and the calculators.
//
// Every error is surfaced to the immediate caller. Callers classify errors
// with errors.As or the Is* helpers below.
package semerr

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError reports malformed or incomplete model source data.
// It is fatal and raised at load time.
type ConfigError struct {
	Source string
	err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return "config: " + e.err.Error()
	}
	return fmt.Sprintf("config %s: %s", e.Source, e.err.Error())
}

func (e *ConfigError) Unwrap() error {
	return e.err
}

// NewConfigError wraps err as a configuration error for source.
func NewConfigError(source string, err error) error {
	return &ConfigError{Source: source, err: err}
}

// Configf formats a configuration error for source.
func Configf(source, format string, args ...any) error {
	return &ConfigError{Source: source, err: fmt.Errorf(format, args...)}
}

// UnknownAuthorError reports a model name that is not in a family's table.
type UnknownAuthorError struct {
	Family    string
	Author    string
	Available []string
}

func (e *UnknownAuthorError) Error() string {
	msg := fmt.Sprintf("unknown %s author %q", e.Family, e.Author)
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}

// InvalidInputError reports a physically invalid input such as a negative
// concentration or a non-positive temperature.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Field + ": " + e.Reason
}

// Invalidf builds an InvalidInputError for field.
func Invalidf(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConvergenceError reports a root finder that ran out of iterations.
type ConvergenceError struct {
	Iterations int
	Last       float64
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("failed to converge after %d iterations (last estimate %g, residual %g)",
		e.Iterations, e.Last, e.Residual)
}

// IsConfig returns true if err is or wraps a ConfigError.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsUnknownAuthor returns true if err is or wraps an UnknownAuthorError.
func IsUnknownAuthor(err error) bool {
	var target *UnknownAuthorError
	return errors.As(err, &target)
}

// IsInvalidInput returns true if err is or wraps an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsConvergence returns true if err is or wraps a ConvergenceError.
func IsConvergence(err error) bool {
	var target *ConvergenceError
	return errors.As(err, &target)
}
