package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rtdbscan/rtdbscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting and pass/fail markers per probe.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output, such as body
	// snippets of accessible responses.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.SecurityReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeReadProbes(&sb, report)
	w.writeWriteProbe(&sb, report)
	w.writeVerdict(&sb, report)
	w.writeRecommendations(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.SecurityReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                  FIREBASE RTDB SECURITY REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Database:  %s\n", report.Database))
	sb.WriteString(fmt.Sprintf("Scan ID:   %s\n", report.ScanID))
	sb.WriteString(fmt.Sprintf("Scan Date: %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))

	if !report.FirebaseHost {
		sb.WriteString("\n")
		sb.WriteString("  [!] Host does not look like a Firebase Realtime Database.\n")
		sb.WriteString("      Results may not reflect Firebase security rules.\n")
	}

	sb.WriteString("\n")
}

// writeReadProbes writes the per-probe results of the read battery.
func (w *SimpleWriter) writeReadProbes(sb *strings.Builder, report *model.SecurityReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("READ ACCESS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.ReadResults) == 0 {
		sb.WriteString("  No read probes were performed.\n\n")
		return
	}

	for _, res := range report.ReadResults {
		w.writeProbe(sb, res)
	}
	sb.WriteString("\n")
}

// writeWriteProbe writes the write probe result, or the skip notice.
func (w *SimpleWriter) writeWriteProbe(sb *strings.Builder, report *model.SecurityReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("WRITE ACCESS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.WriteResult == nil {
		sb.WriteString("  Write testing was skipped.\n\n")
		return
	}

	w.writeProbe(sb, *report.WriteResult)

	if report.WriteResult.CleanupFailed {
		sb.WriteString("\n")
		sb.WriteString("  [!] Cleanup of the test artifact failed. Remove it manually:\n")
		sb.WriteString(fmt.Sprintf("      %s\n", report.WriteResult.CleanupPath))
	}
	sb.WriteString("\n")
}

// writeProbe writes one probe line with its detail rows.
func (w *SimpleWriter) writeProbe(sb *strings.Builder, res model.ProbeResult) {
	marker := w.classificationMarker(res.Classification)
	sb.WriteString(fmt.Sprintf("  [%s] %-15s %s %s\n", marker, res.Endpoint, res.Method, res.URL))

	if res.Error != "" {
		sb.WriteString(fmt.Sprintf("      Error: %s\n", res.Error))
		return
	}

	sb.WriteString(fmt.Sprintf("      Status: %d (%s)\n", res.StatusCode, res.ClassificationText))

	if res.Classification == model.ClassificationAccessible {
		if res.HasData {
			sb.WriteString(fmt.Sprintf("      Data:   %d bytes returned\n", res.BodySize))
		} else {
			sb.WriteString("      Data:   accessible but empty\n")
		}
		if w.verbose && res.BodySnippet != "" {
			sb.WriteString(fmt.Sprintf("      Body:   %s\n", res.BodySnippet))
		}
	}
}

// classificationMarker returns a visual indicator for the classification.
func (w *SimpleWriter) classificationMarker(c model.Classification) string {
	switch c {
	case model.ClassificationRestricted:
		return "OK"
	case model.ClassificationAccessible:
		return "!!"
	case model.ClassificationError:
		return "??"
	default:
		return "??"
	}
}

// writeVerdict writes the verdict summary section.
func (w *SimpleWriter) writeVerdict(sb *strings.Builder, report *model.SecurityReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("VERDICT\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Read access:  %s\n", report.ReadVerdictText))
	sb.WriteString(fmt.Sprintf("  Write access: %s\n", report.WriteVerdictText))
	sb.WriteString(fmt.Sprintf("  Risk level:   %s\n", report.RiskText))
	sb.WriteString("\n")

	switch report.OverallVerdict {
	case model.VerdictVulnerable:
		sb.WriteString("  RESULT: VULNERABLE - the database accepts unauthenticated access.\n")
		if report.ReadableButEmpty {
			sb.WriteString("          The database is readable but currently holds no data.\n")
		}
	case model.VerdictSecure:
		if report.ReadVerdict == model.VerdictUnknown || report.WriteVerdict == model.VerdictUnknown {
			sb.WriteString("  RESULT: INCONCLUSIVE - some probes failed; no open access was proven.\n")
		} else {
			sb.WriteString("  RESULT: SECURE - all probes were rejected without credentials.\n")
		}
	default:
		sb.WriteString("  RESULT: INCONCLUSIVE - the probes did not produce a usable answer.\n")
	}
	sb.WriteString("\n")
}

// writeRecommendations writes the remediation list, when present.
func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, report *model.SecurityReport) {
	if len(report.Recommendations) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, rec := range report.Recommendations {
		sb.WriteString(fmt.Sprintf("  * %s\n", rec))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by rtdbscan\n")
	sb.WriteString("https://github.com/rtdbscan/rtdbscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
