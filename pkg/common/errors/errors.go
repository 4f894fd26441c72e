package errors

import "errors"

// Common error types used across the flowkit library

var (
	// ErrShutdown indicates that an operation was attempted on a shut-down component
	ErrShutdown = errors.New("component has been shut down")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsShutdown returns true if the error indicates the target component no
// longer accepts work
func IsShutdown(err error) bool {
	return errors.Is(err, ErrShutdown)
}

// IsTimeout returns true if the error indicates a task exceeded its
// configured deadline
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsConfiguration returns true if the error indicates malformed input to a
// constructor or combinator rather than a runtime failure
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
