package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration. All of them
// occur before any probe is issued, so the CLI maps them to the
// configuration-error exit code.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no database URL was provided.
	ErrNoTarget = errors.New("no target specified: provide a Realtime Database URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate probe failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidProbeDelay is returned when the probe delay is negative.
	// Use 0 to disable the politeness pause between read probes.
	ErrInvalidProbeDelay = errors.New("invalid probe delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to keep the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
