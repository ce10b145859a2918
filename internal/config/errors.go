package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no target domain is specified.
	ErrNoTarget = errors.New("no target specified: provide at least one domain")

	// ErrInvalidTimeout is returned when the tool timeout is negative.
	// Zero is valid and means no timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidParallel is returned when the parallelism is not positive.
	// A value of zero would mean no runs execute at all.
	ErrInvalidParallel = errors.New("invalid parallel count: must be positive")
)
