package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/rtdbscan/rtdbscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.SecurityReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeVerdict(md, report)
	w.writeProbes(md, report)
	w.writeRecommendations(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SecurityReport) {
	md.H1("Firebase RTDB Security Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Database", "`" + report.Database + "`"},
			{"Scan ID", report.ScanID},
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Firebase Host", strconv.FormatBool(report.FirebaseHost)},
		},
	})
	md.PlainText("")

	if !report.FirebaseHost {
		md.Warningf("The host does not look like a Firebase Realtime Database. " +
			"Results may not reflect Firebase security rules.")
		md.PlainText("")
	}
}

// writeVerdict writes the verdict summary with a classification chart
// and an alert matching the overall outcome.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, report *model.SecurityReport) {
	md.H2("Verdict")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Check", "Verdict"},
		Rows: [][]string{
			{"Read access", report.ReadVerdictText},
			{"Write access", report.WriteVerdictText},
			{"Risk level", report.RiskText},
			{"**Overall**", "**" + report.OverallVerdictText + "**"},
		},
	})
	md.PlainText("")

	w.writePieChart(md, report)
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of probe classifications.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.SecurityReport) {
	restricted, accessible, errored := report.ClassificationCounts()
	if restricted+accessible+errored == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Probe Classification Distribution"),
		piechart.WithShowData(true),
	)

	if accessible > 0 {
		chart.LabelAndIntValue("Accessible", uint64(accessible))
	}
	if restricted > 0 {
		chart.LabelAndIntValue("Restricted", uint64(restricted))
	}
	if errored > 0 {
		chart.LabelAndIntValue("Error", uint64(errored))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the scan outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.SecurityReport) {
	switch {
	case report.WriteVerdict == model.VerdictVulnerable:
		md.Cautionf("This database accepts unauthenticated writes. " +
			"Anyone on the internet can modify or destroy its data.")
	case report.ReadVerdict == model.VerdictVulnerable:
		md.Cautionf("This database accepts unauthenticated reads. " +
			"Its contents are exposed to anyone on the internet.")
	case report.ReadVerdict == model.VerdictUnknown || report.WriteVerdict == model.VerdictUnknown:
		md.Warningf("Some probes failed, so the result is inconclusive. " +
			"Re-run the scan or verify the database rules manually.")
	default:
		md.Tip("All probes were rejected without credentials.")
	}
	md.PlainText("")
}

// writeProbes writes the per-probe results table.
func (w *MarkdownWriter) writeProbes(md *markdown.Markdown, report *model.SecurityReport) {
	md.H2("Probe Results")
	md.PlainText("")

	results := make([]model.ProbeResult, 0, len(report.ReadResults)+1)
	results = append(results, report.ReadResults...)
	if report.WriteResult != nil {
		results = append(results, *report.WriteResult)
	}

	if len(results) == 0 {
		md.PlainText("No probes were performed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(results))
	for i, res := range results {
		status := "-"
		if res.StatusCode != 0 {
			status = strconv.Itoa(res.StatusCode)
		}
		detail := "-"
		switch {
		case res.Error != "":
			detail = truncateString(res.Error, 60)
		case res.Classification == model.ClassificationAccessible && res.HasData:
			detail = strconv.Itoa(res.BodySize) + " bytes returned"
		case res.Classification == model.ClassificationAccessible:
			detail = "accessible but empty"
		}

		rows[i] = []string{
			res.Endpoint,
			res.Method,
			status,
			res.ClassificationText,
			detail,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Probe", "Method", "Status", "Classification", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.WriteResult != nil && report.WriteResult.CleanupFailed {
		md.Warningf("Cleanup of the write-test artifact failed. Remove `%s` manually.",
			report.WriteResult.CleanupPath)
		md.PlainText("")
	}
}

// writeRecommendations writes the remediation list, when present.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.SecurityReport) {
	if len(report.Recommendations) == 0 {
		return
	}

	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(report.Recommendations...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [rtdbscan](https://github.com/rtdbscan/rtdbscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
