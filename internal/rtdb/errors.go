package rtdb

import "errors"

// Database URL validation errors.
// These errors are returned by Normalize and map to the configuration
// error exit code in the CLI because they occur before any probe runs.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Normalize. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrEmptyURL is returned when the input is empty or only whitespace.
	ErrEmptyURL = errors.New("database URL is empty")

	// ErrInvalidURL is returned when the input cannot be parsed as an
	// HTTP(S) URL after scheme repair.
	ErrInvalidURL = errors.New("invalid database URL")

	// ErrMissingHost is returned when the parsed URL has no host component.
	// An input like "https:///foo" parses but cannot be probed.
	ErrMissingHost = errors.New("database URL has no host")

	// ErrUnsupportedScheme is returned for schemes other than http or https.
	// A "ftp://" or "gs://" input is almost certainly a user mistake and
	// silently rewriting it would hide the problem.
	ErrUnsupportedScheme = errors.New("database URL scheme must be http or https")
)
