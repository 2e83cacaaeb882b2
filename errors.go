package veil

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrAlreadyRegistered indicates two providers claimed the same rule
	// identifier. Raised at startup; fatal.
	ErrAlreadyRegistered = errors.New("provider already registered")

	// ErrUnknownProvider indicates a configured rule identifier matched no
	// registered provider.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidArgument indicates a malformed or missing provider argument.
	ErrInvalidArgument = errors.New("invalid provider argument")

	// ErrUnknownLocale indicates a locale that was not declared in the
	// configured locale set. Specializes ErrInvalidArgument.
	ErrUnknownLocale = fmt.Errorf("%w: unknown locale", ErrInvalidArgument)

	// ErrUnknownFakeMethod indicates a fake.* path outside the supported
	// generator method table. Specializes ErrInvalidArgument.
	ErrUnknownFakeMethod = fmt.Errorf("%w: unsupported generator method", ErrInvalidArgument)
)

// All errors in this package are configuration or programming errors, not
// transient failures. Callers must not retry, and must not fall back to the
// original value: an unanonymized value leaking through is worse than an
// aborted run.

// RegistrationError reports a failed provider registration.
type RegistrationError struct {
	Err error  // Underlying sentinel error
	ID  string // Rule identifier being registered
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.ID)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ResolveError reports a rule identifier that could not be dispatched.
type ResolveError struct {
	Err error  // Underlying sentinel error
	ID  string // Rule identifier that failed to resolve
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.ID)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// ArgumentError reports a malformed or missing provider argument.
type ArgumentError struct {
	Err    error  // Underlying sentinel error (ErrInvalidArgument or a specialization)
	Rule   string // Rule identifier whose invocation failed
	Detail string // Human-readable description of the problem
}

func (e *ArgumentError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: %s (rule %s)", e.Err.Error(), e.Detail, e.Rule)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// invalidArg builds an ArgumentError against ErrInvalidArgument.
func invalidArg(rule, format string, args ...any) error {
	return &ArgumentError{
		Err:    ErrInvalidArgument,
		Rule:   rule,
		Detail: fmt.Sprintf(format, args...),
	}
}
