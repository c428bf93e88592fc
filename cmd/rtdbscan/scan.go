package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rtdbscan/rtdbscan/internal/config"
	"github.com/rtdbscan/rtdbscan/internal/log"
	"github.com/rtdbscan/rtdbscan/internal/model"
	"github.com/rtdbscan/rtdbscan/internal/probe"
	"github.com/rtdbscan/rtdbscan/internal/report"
	"github.com/rtdbscan/rtdbscan/internal/rtdb"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <database-url>",
		Short: "Check a Firebase Realtime Database for public access",
		Long: `Scan probes a Firebase Realtime Database for unauthenticated access.

Without credentials it requests the database root, the shallow key
index, and an arbitrary child path. Unless disabled, it then attempts
to write a small test record and deletes it again. The resulting
report states whether the database is readable or writable by anyone
on the internet.

Exit codes:
  0   all probes were rejected (secure)
  1   unauthenticated access was proven (vulnerable)
  2   invalid database URL or configuration
  130 interrupted

Examples:
  # Check a database
  rtdbscan scan my-project-default-rtdb.firebaseio.com

  # Read-only check, no test write
  rtdbscan scan --skip-write-test my-project-default-rtdb.firebaseio.com

  # JSON report written to a file
  rtdbscan scan --json -o report.json my-project-default-rtdb.firebaseio.com

  # Use a custom configuration file
  rtdbscan scan -c myconfig.yaml my-project-default-rtdb.firebaseio.com

Configuration file (.rtdbscan) example:
  defaults:
    timeout: 15s
  databases:
    prod-default-rtdb.firebaseio.com:
      skip_write_test: true`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	// Probe behavior flags
	cmd.Flags().Bool("skip-write-test", false,
		"Skip the write probe; only check read access")
	cmd.Flags().IntP("timeout", "t", int(config.DefaultTimeout/time.Second),
		"Per-request timeout in seconds")
	cmd.Flags().Duration("delay", config.DefaultProbeDelay,
		"Pause between read probes (0 disables)")
	cmd.Flags().StringP("user-agent", "A", config.DefaultUserAgent,
		"User-Agent header sent with every probe")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .rtdbscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return newExitError(exitUsage, err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return newExitError(exitUsage, fmt.Errorf("configuration error: %w", err))
	}

	// Set up structured logging with secret redaction
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Target = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.SkipWriteTest, err = cmd.Flags().GetBool("skip-write-test")
	if err != nil {
		return nil, err
	}

	timeoutSecs, err := cmd.Flags().GetInt("timeout")
	if err != nil {
		return nil, err
	}
	cfg.Timeout = time.Duration(timeoutSecs) * time.Second

	cfg.ProbeDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-database configurations from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. Otherwise silently proceed without overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Overrides, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runScan executes the scan and maps its outcome to an exit code.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	target, err := rtdb.Normalize(cfg.Target)
	if err != nil {
		return newExitError(exitUsage, fmt.Errorf("invalid database URL %q: %w", cfg.Target, err))
	}

	// Config-file overrides are keyed by the normalized host.
	cfg.ApplyOverrides(target.Host)

	logger.Info("starting scan",
		"database", target.BaseURL,
		"skipWriteTest", cfg.SkipWriteTest,
		"timeout", cfg.Timeout,
	)

	if !target.IsFirebaseHost() {
		logger.Warn("host does not look like a Firebase Realtime Database", "host", target.Host)
		fmt.Fprintf(os.Stderr, "Warning: %s does not look like a Firebase Realtime Database host. Results may not reflect Firebase security rules.\n\n", target.Host)
	}

	prober := probe.NewProber(nil,
		probe.WithTimeout(cfg.Timeout),
		probe.WithProbeDelay(cfg.ProbeDelay),
		probe.WithUserAgent(cfg.UserAgent),
		probe.WithMaxBodySize(cfg.MaxBodySize),
		probe.WithLogger(logger),
	)

	fmt.Printf("Scanning %s...\n", target.BaseURL)
	startTime := time.Now()

	readResults, err := prober.ProbeReadAccess(ctx, target)
	if err != nil {
		return scanAbortError(err)
	}

	var writeResult *model.ProbeResult
	if cfg.SkipWriteTest {
		logger.Info("write test skipped")
	} else {
		res, err := prober.ProbeWriteAccess(ctx, target)
		if err != nil {
			return scanAbortError(err)
		}
		writeResult = &res
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Scan completed in %s\n", elapsed.Round(time.Millisecond))

	secReport := model.NewSecurityReport(target.BaseURL, target.IsFirebaseHost(), readResults, writeResult)

	if err := outputReport(cfg, secReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if code := secReport.ExitCode(); code != exitSecure {
		// The verdict is already in the report; the exit code alone
		// carries it to the caller.
		return newExitError(code, nil)
	}
	return nil
}

// scanAbortError maps a probe abort to the right exit code.
// Cancellation by signal exits 130; anything else is unexpected here
// because individual probe failures are absorbed into results.
func scanAbortError(err error) error {
	if errors.Is(err, context.Canceled) {
		return newExitError(exitInterrupted, errors.New("scan interrupted"))
	}
	return newExitError(exitUsage, err)
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, secReport *model.SecurityReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600)
		// Reports may contain data read from the scanned database that
		// should only be readable by the owner
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(secReport)
	return err
}
