// Package log provides secure logging utilities built on log/slog.
//
// The package wraps standard slog handlers with sanitization so that
// sensitive values never reach log output. A security scanner handles
// two kinds of secrets: credentials belonging to the operator (API keys,
// tokens passed through configuration) and data belonging to the scanned
// database (response bodies of accessible probes). Both are redacted at
// the handler level so no call site can leak them by accident.
package log
