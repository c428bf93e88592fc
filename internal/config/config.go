package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These defaults mirror what the Firebase REST API tolerates comfortably
// and keep a no-flags invocation safe against third-party databases.
const (
	// DefaultTimeout is the per-request probe timeout. Ten seconds is
	// generous for the Firebase REST API; a database that does not answer
	// within it is treated as inconclusive rather than retried.
	DefaultTimeout = 10 * time.Second

	// DefaultProbeDelay is the politeness pause between read probes.
	// Half a second keeps the battery from looking like a burst while
	// adding only a second to the total scan time.
	DefaultProbeDelay = 500 * time.Millisecond

	// DefaultMaxBodySize limits how much of a probe response is read.
	// Classification needs only the JSON shape; an open multi-gigabyte
	// database must not be downloaded wholesale.
	DefaultMaxBodySize = 1 * 1024 * 1024 // 1MB

	// DefaultUserAgent identifies rtdbscan in HTTP requests.
	// A descriptive User-Agent is good practice and allows database
	// operators to identify scanner traffic in their logs.
	DefaultUserAgent = "rtdbscan/1.0 (+https://github.com/rtdbscan/rtdbscan)"

	// AppName is the application name used for XDG directory paths.
	AppName = "rtdbscan"
)

// Config holds all configuration options for one scan run.
// This struct is populated from CLI flags and the optional config file
// and passed through the application via dependency injection rather
// than global state.
type Config struct {
	// Target is the database URL to probe, as supplied by the user.
	// Normalization into a canonical base URL happens in the rtdb package.
	Target string

	// SkipWriteTest disables the write probe. The write verdict is then
	// reported as skipped, never as restricted.
	SkipWriteTest bool

	// Timeout is the per-request timeout applied to every probe.
	Timeout time.Duration

	// ProbeDelay is the pause between read probes. Zero disables it.
	ProbeDelay time.Duration

	// UserAgent is the User-Agent header sent with every probe.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .rtdbscan in the current directory,
	// the user's home directory, and the XDG config directory.
	ConfigFilePath string

	// Overrides holds the per-database settings loaded from the config
	// file. Applied by host after the target URL is known.
	Overrides *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases; users override specific values via flags or the config file.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		ProbeDelay:  DefaultProbeDelay,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the XDG config directory for rtdbscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/rtdbscan
// On macOS: ~/Library/Application Support/rtdbscan
// On Windows: %APPDATA%\rtdbscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages before any
// network traffic is generated.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.ProbeDelay < 0 {
		return ErrInvalidProbeDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ApplyOverrides merges the config-file settings for the given database
// host into the Config. File defaults apply first, then the host-specific
// entry. Flags already parsed into the Config are only replaced when the
// file provides a value, so explicit flags keep their meaning.
func (c *Config) ApplyOverrides(host string) {
	if c.Overrides == nil {
		return
	}

	c.applyDatabaseConfig(c.Overrides.Defaults)
	if db, ok := c.Overrides.Databases[host]; ok {
		c.applyDatabaseConfig(db)
	}
}

// applyDatabaseConfig copies the non-zero fields of one config-file entry.
func (c *Config) applyDatabaseConfig(db DatabaseConfig) {
	if db.Timeout > 0 {
		c.Timeout = db.Timeout
	}
	if db.ProbeDelay != nil {
		c.ProbeDelay = *db.ProbeDelay
	}
	if db.UserAgent != "" {
		c.UserAgent = db.UserAgent
	}
	if db.SkipWriteTest != nil {
		c.SkipWriteTest = *db.SkipWriteTest
	}
}
