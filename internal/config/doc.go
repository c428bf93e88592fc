// Package config provides configuration structures and utilities for rtdbscan.
// It defines the scan options populated from CLI flags, the optional
// .rtdbscan YAML file with per-database overrides, and their validation.
package config
