// Package errors provides error handling for stencil.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrUndefinedVariable) {
//	    // handle rendering failure
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel errors for the resolution engine. Use with errors.Is() for
// type-safe checks; wrap with errors.Wrap() to add context while
// preserving the type.
var (
	// ErrUndefinedVariable indicates a template referenced a context key
	// that has not been resolved yet (or does not exist at all).
	ErrUndefinedVariable = New("undefined variable in template")

	// ErrMissingContextKey indicates a replay document without the
	// reserved top-level "cookiecutter" key.
	ErrMissingContextKey = New("context is required to contain a cookiecutter key")

	// ErrEmptyChoices indicates a choice variable whose option list is empty.
	ErrEmptyChoices = New("choice variable has no options")

	// ErrIllegalTemplatePath indicates a nested-template option whose path
	// is absolute or escapes the repository directory.
	ErrIllegalTemplatePath = New("illegal template path")

	// ErrInvalidDefault indicates a persisted default of the wrong shape,
	// such as a replay payload whose reserved key does not hold a mapping.
	// Overrides applied before resolution are not validated against it:
	// an override replaces a variable's raw value wholesale and the
	// variable follows the override's kind from then on.
	ErrInvalidDefault = New("default value has the wrong shape")

	// ErrAborted indicates the operator chose to abort the run (EOF,
	// interrupt, or an explicit exit answer).
	ErrAborted = New("aborted by operator")
)

// IsUndefinedVariableError checks if an error is or wraps ErrUndefinedVariable.
func IsUndefinedVariableError(err error) bool {
	return err != nil && Is(err, ErrUndefinedVariable)
}

// IsAbortedError checks if an error is or wraps ErrAborted.
func IsAbortedError(err error) bool {
	return err != nil && Is(err, ErrAborted)
}

// IsConfigurationError reports whether err belongs to the fatal,
// non-retryable configuration class: malformed replay documents, empty
// choice lists, bad default shapes, and illegal nested-template paths.
func IsConfigurationError(err error) bool {
	return err != nil && IsAny(err,
		ErrMissingContextKey,
		ErrEmptyChoices,
		ErrInvalidDefault,
		ErrIllegalTemplatePath,
	)
}

// NewUndefinedVariable creates an undefined-variable error naming the
// variable being resolved so the caller can report which field failed.
func NewUndefinedVariable(name string, cause error) error {
	return Wrapf(WithSecondary(ErrUndefinedVariable, cause), "unable to render variable %q", name)
}

// WithSecondary attaches cause as secondary context to err without
// affecting errors.Is identity.
func WithSecondary(err, cause error) error {
	if cause == nil {
		return err
	}
	return crdb.WithSecondaryError(err, cause)
}
