package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: test run", ErrNotFound)

	// Invalid-input errors: rejected before any result mutation
	ErrSampleTooSmall = errors.New("sample too small")
	ErrSampleTooLarge = errors.New("sample too large")
	ErrNonFinite      = errors.New("sample contains NaN or Inf")
	ErrUnknownTest    = errors.New("unknown test kind")

	// Numeric-degenerate errors: the procedure cannot produce a finite statistic
	ErrZeroVariance = errors.New("zero variance in sample")
	ErrDegenerate   = errors.New("degenerate sample")

	// Lifecycle errors
	ErrNotFitted  = errors.New("test has not been fitted")
	ErrNoRenderer = errors.New("no renderer configured")
)

// Error constructors with context
func NewSampleSizeError(label string, n, min int) error {
	return fmt.Errorf("%w: %s has %d observations, need at least %d", ErrSampleTooSmall, label, n, min)
}

func NewNonFiniteError(label string, index int) error {
	return fmt.Errorf("%w: %s[%d]", ErrNonFinite, label, index)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports whether the error was raised by input validation,
// before any computation ran.
func IsInputError(err error) bool {
	return errors.Is(err, ErrSampleTooSmall) ||
		errors.Is(err, ErrSampleTooLarge) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrUnknownTest)
}

// IsDegenerateError reports whether the numeric procedure failed on
// pathological input (zero spread, all ties, and so on).
func IsDegenerateError(err error) bool {
	return errors.Is(err, ErrZeroVariance) || errors.Is(err, ErrDegenerate)
}
