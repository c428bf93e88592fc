package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".rtdbscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk configuration structure.
// It carries scan defaults plus per-database overrides keyed by host, so
// a team can pin, say, a longer timeout for one slow regional database or
// disable write testing against production instances.
type File struct {
	// Defaults applies to every scanned database before host-specific
	// entries.
	Defaults DatabaseConfig `yaml:"defaults"`

	// Databases maps a database host (e.g.
	// "my-project-default-rtdb.firebaseio.com") to its overrides.
	Databases map[string]DatabaseConfig `yaml:"databases"`
}

// DatabaseConfig holds the per-database override fields.
// Pointer fields distinguish "not set" from an explicit false/zero.
type DatabaseConfig struct {
	// Timeout overrides the per-request probe timeout.
	Timeout time.Duration `yaml:"timeout"`

	// ProbeDelay overrides the pause between read probes.
	ProbeDelay *time.Duration `yaml:"probe_delay"`

	// UserAgent overrides the probe User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// SkipWriteTest disables (or re-enables) the write probe.
	SkipWriteTest *bool `yaml:"skip_write_test"`
}

// LoadConfigFile loads scan configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error based on whether the config file path
// was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Databases == nil {
		cf.Databases = make(map[string]DatabaseConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .rtdbscan in the current directory
//  3. Look for .rtdbscan in the user's home directory
//  4. Look for .rtdbscan in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return ""
}
