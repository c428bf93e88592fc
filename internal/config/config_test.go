package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("timeout default", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("timeout = %s, expected %s", cfg.Timeout, DefaultTimeout)
		}
	})

	t.Run("probe delay default", func(t *testing.T) {
		t.Parallel()
		if cfg.ProbeDelay != DefaultProbeDelay {
			t.Errorf("probe delay = %s, expected %s", cfg.ProbeDelay, DefaultProbeDelay)
		}
	})

	t.Run("user agent default", func(t *testing.T) {
		t.Parallel()
		if cfg.UserAgent != DefaultUserAgent {
			t.Errorf("user agent = %q, expected %q", cfg.UserAgent, DefaultUserAgent)
		}
	})

	t.Run("max body size default", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != DefaultMaxBodySize {
			t.Errorf("max body size = %d, expected %d", cfg.MaxBodySize, DefaultMaxBodySize)
		}
	})

	t.Run("write test enabled by default", func(t *testing.T) {
		t.Parallel()
		if cfg.SkipWriteTest {
			t.Error("expected write test to be enabled by default")
		}
	})
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Target = "my-db.firebaseio.com"
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()
		if err := valid().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Target = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("zero timeout", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Timeout = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("negative probe delay", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.ProbeDelay = -time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidProbeDelay) {
			t.Errorf("expected ErrInvalidProbeDelay, got %v", err)
		}
	})

	t.Run("negative max body size", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.MaxBodySize = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxBodySize) {
			t.Errorf("expected ErrInvalidMaxBodySize, got %v", err)
		}
	})

	t.Run("conflicting report formats", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}

// TestApplyOverrides tests config-file override merging.
func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	boolPtr := func(b bool) *bool { return &b }
	durPtr := func(d time.Duration) *time.Duration { return &d }

	t.Run("nil overrides are a no-op", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.ApplyOverrides("db.firebaseio.com")
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("timeout changed to %s", cfg.Timeout)
		}
	})

	t.Run("defaults apply to every host", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Overrides = &File{
			Defaults:  DatabaseConfig{Timeout: 30 * time.Second},
			Databases: map[string]DatabaseConfig{},
		}
		cfg.ApplyOverrides("unknown.firebaseio.com")
		if cfg.Timeout != 30*time.Second {
			t.Errorf("timeout = %s, expected 30s", cfg.Timeout)
		}
	})

	t.Run("host entry overrides defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Overrides = &File{
			Defaults: DatabaseConfig{Timeout: 30 * time.Second},
			Databases: map[string]DatabaseConfig{
				"prod.firebaseio.com": {
					Timeout:       5 * time.Second,
					SkipWriteTest: boolPtr(true),
				},
			},
		}
		cfg.ApplyOverrides("prod.firebaseio.com")
		if cfg.Timeout != 5*time.Second {
			t.Errorf("timeout = %s, expected 5s", cfg.Timeout)
		}
		if !cfg.SkipWriteTest {
			t.Error("expected write test to be disabled for prod host")
		}
	})

	t.Run("explicit zero probe delay is honored", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Overrides = &File{
			Defaults: DatabaseConfig{ProbeDelay: durPtr(0)},
		}
		cfg.ApplyOverrides("db.firebaseio.com")
		if cfg.ProbeDelay != 0 {
			t.Errorf("probe delay = %s, expected 0", cfg.ProbeDelay)
		}
	})

	t.Run("unset fields keep flag values", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.UserAgent = "flag-agent/1"
		cfg.Overrides = &File{
			Databases: map[string]DatabaseConfig{
				"db.firebaseio.com": {Timeout: 3 * time.Second},
			},
		}
		cfg.ApplyOverrides("db.firebaseio.com")
		if cfg.UserAgent != "flag-agent/1" {
			t.Errorf("user agent = %q, expected flag value to survive", cfg.UserAgent)
		}
	})
}
