// Package main provides the entry point for the rtdbscan CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Process exit codes. CI pipelines key off these, so they are part of
// the tool's contract and never change between releases.
const (
	// exitSecure means every probe was rejected without credentials.
	exitSecure = 0

	// exitVulnerable means at least one probe proved open access.
	exitVulnerable = 1

	// exitUsage means the database URL or the configuration was invalid
	// and no verdict was produced.
	exitUsage = 2

	// exitInterrupted means the scan was cancelled by SIGINT or SIGTERM.
	exitInterrupted = 130
)

// exitError carries a specific process exit code through the cobra
// error path. Execute unwraps it and exits with the embedded code.
//
// Design decision: We thread the exit code through the error return
// rather than calling os.Exit inside command handlers because deferred
// cleanup (report files, write-test artifact removal) must run before
// the process terminates.
type exitError struct {
	code int
	err  error
}

// newExitError wraps err with the given exit code. err may be nil when
// the exit code itself is the whole message, such as a vulnerable
// verdict that was already reported to the user.
func newExitError(code int, err error) *exitError {
	return &exitError{code: code, err: err}
}

// Error implements the error interface.
func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

// Unwrap exposes the wrapped error for errors.Is and errors.As.
func (e *exitError) Unwrap() error {
	return e.err
}

// NewRootCmd creates the root command for rtdbscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rtdbscan",
		Short: "Security checker for Firebase Realtime Databases",
		Long: `rtdbscan checks whether a Firebase Realtime Database accepts
unauthenticated read or write access through its public REST API.

It probes the database root, its shallow index, and an arbitrary child
path without credentials, optionally attempts a self-cleaning test
write, and reports a pass/fail verdict suitable for CI pipelines.

Only scan databases you own or are authorized to test.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and maps errors to process exit codes.
// Errors without an explicit code are usage errors: flag parsing
// failures, unknown subcommands, and invalid input all exit 2.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.err != nil {
				fmt.Fprintln(os.Stderr, ee.err)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}
