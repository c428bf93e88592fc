package model

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation texts chosen by the aggregation table.
// These are ordered and deterministic so CI diffs of two runs against the
// same database stay stable.
const (
	recommendReadRules  = "Review the Realtime Database read rules and remove public read access."
	recommendWriteRules = "Review the Realtime Database write rules and require authentication for all writes."
	recommendRotateData = "Treat the exposed data as compromised: rotate embedded credentials and migrate sensitive records."
)

// SecurityReport is the terminal artifact of one scan.
// It is built once by NewSecurityReport after all probes complete and is
// read-only thereafter; the report writers and the exit-code mapping
// consume it without mutation.
type SecurityReport struct {
	// ScanID uniquely identifies this run so CI systems can correlate
	// report files with pipeline executions.
	ScanID string `json:"scan_id"`

	// Database is the canonical base URL that was probed.
	Database string `json:"database"`

	// FirebaseHost reports whether the database host matches the known
	// Firebase suffixes. False means the verdict may not reflect Firebase
	// rule semantics at all.
	FirebaseHost bool `json:"firebase_host"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// ReadResults holds the outcomes of the fixed read battery in probe
	// order (root, shallow, arbitrary-path).
	ReadResults []ProbeResult `json:"read_results"`

	// WriteResult holds the write probe outcome, or nil when write
	// testing was disabled.
	WriteResult *ProbeResult `json:"write_result,omitempty"`

	// ReadVerdict is the aggregated read-side verdict.
	ReadVerdict Verdict `json:"read_verdict"`

	// ReadVerdictText is the human-readable read verdict.
	ReadVerdictText string `json:"read_verdict_text"`

	// WriteVerdict is the aggregated write-side verdict. Skipped when the
	// write probe did not run.
	WriteVerdict Verdict `json:"write_verdict"`

	// WriteVerdictText is the human-readable write verdict.
	WriteVerdictText string `json:"write_verdict_text"`

	// OverallVerdict is Vulnerable when either side is Vulnerable,
	// otherwise Secure. Unknown sides never make the overall verdict
	// Vulnerable on their own, but they are surfaced via the per-side
	// verdicts and the risk level.
	OverallVerdict Verdict `json:"overall_verdict"`

	// OverallVerdictText is the human-readable overall verdict.
	OverallVerdictText string `json:"overall_verdict_text"`

	// Risk is the one-word exposure summary derived from the verdicts.
	Risk Risk `json:"risk"`

	// RiskText is the human-readable risk level.
	RiskText string `json:"risk_text"`

	// ReadableButEmpty is set when the root probe returned 200 with body
	// "null": read permission is granted but the tree happens to hold no
	// data. The classification is still Accessible; this flag carries the
	// nuance into the report.
	ReadableButEmpty bool `json:"readable_but_empty"`

	// HasExposedData is set when any accessible read probe returned
	// non-empty JSON.
	HasExposedData bool `json:"has_exposed_data"`

	// Recommendations is the ordered remediation list. Empty when the
	// overall verdict is Secure.
	Recommendations []string `json:"recommendations"`
}

// NewSecurityReport aggregates probe results into a SecurityReport.
//
// It is a pure function over its inputs apart from the generated scan ID
// and timestamp: it performs no I/O, has no failure modes, and handles
// empty or all-error input gracefully. Calling it twice on identical
// inputs yields identical verdicts and recommendations.
//
// writeResult is nil when write testing was disabled; the write verdict
// is then Skipped, never Restricted.
func NewSecurityReport(database string, firebaseHost bool, readResults []ProbeResult, writeResult *ProbeResult) *SecurityReport {
	r := &SecurityReport{
		ScanID:       uuid.NewString(),
		Database:     database,
		FirebaseHost: firebaseHost,
		DateScanned:  time.Now(),
		ReadResults:  readResults,
		WriteResult:  writeResult,
	}

	r.ReadVerdict = aggregateRead(readResults)
	r.WriteVerdict = aggregateWrite(writeResult)

	r.OverallVerdict = VerdictSecure
	if r.ReadVerdict == VerdictVulnerable || r.WriteVerdict == VerdictVulnerable {
		r.OverallVerdict = VerdictVulnerable
	}

	r.Risk = deriveRisk(r.ReadVerdict, r.WriteVerdict)
	r.collectDataFlags()
	r.Recommendations = recommendations(r.ReadVerdict, r.WriteVerdict)

	r.ReadVerdictText = r.ReadVerdict.String()
	r.WriteVerdictText = r.WriteVerdict.String()
	r.OverallVerdictText = r.OverallVerdict.String()
	r.RiskText = r.Risk.String()

	return r
}

// aggregateRead merges the read probe classifications into one verdict.
// Any accessible probe dominates; all restricted means secure; any other
// mix (errors with no access proven) is unknown.
func aggregateRead(results []ProbeResult) Verdict {
	if len(results) == 0 {
		return VerdictUnknown
	}

	restricted := 0
	for _, res := range results {
		switch res.Classification {
		case ClassificationAccessible:
			return VerdictVulnerable
		case ClassificationRestricted:
			restricted++
		case ClassificationError:
			// Inconclusive; counted by omission below.
		}
	}

	if restricted == len(results) {
		return VerdictSecure
	}
	return VerdictUnknown
}

// aggregateWrite maps the single write result to a verdict.
func aggregateWrite(result *ProbeResult) Verdict {
	if result == nil {
		return VerdictSkipped
	}
	switch result.Classification {
	case ClassificationAccessible:
		return VerdictVulnerable
	case ClassificationRestricted:
		return VerdictSecure
	default:
		return VerdictUnknown
	}
}

// deriveRisk maps the verdict pair to the coarse risk level.
// Writable dominates readable because an open write path allows data
// destruction, not just disclosure.
func deriveRisk(read, write Verdict) Risk {
	switch {
	case write == VerdictVulnerable:
		return RiskCritical
	case read == VerdictVulnerable:
		return RiskHigh
	case read == VerdictUnknown || write == VerdictUnknown:
		return RiskUndetermined
	default:
		return RiskNone
	}
}

// recommendations returns the ordered remediation list for the verdict pair.
func recommendations(read, write Verdict) []string {
	recs := []string{}
	if read == VerdictVulnerable {
		recs = append(recs, recommendReadRules)
	}
	if write == VerdictVulnerable {
		recs = append(recs, recommendWriteRules)
	}
	if read == VerdictVulnerable && write == VerdictVulnerable {
		recs = append(recs, recommendRotateData)
	}
	return recs
}

// collectDataFlags derives the data-exposure nuance flags from the read
// results. ReadableButEmpty only considers the root probe because the
// arbitrary-path probe returning "null" is expected even on a database
// full of data.
func (r *SecurityReport) collectDataFlags() {
	for _, res := range r.ReadResults {
		if res.Classification != ClassificationAccessible {
			continue
		}
		if res.HasData {
			r.HasExposedData = true
		}
		if res.Endpoint == EndpointRoot && !res.HasData {
			r.ReadableButEmpty = true
		}
	}
}

// ClassificationCounts returns how many probes (read and write together)
// ended restricted, accessible, and errored. The report writers use this
// for summary tables and charts.
func (r *SecurityReport) ClassificationCounts() (restricted, accessible, errored int) {
	count := func(res ProbeResult) {
		switch res.Classification {
		case ClassificationRestricted:
			restricted++
		case ClassificationAccessible:
			accessible++
		case ClassificationError:
			errored++
		}
	}

	for _, res := range r.ReadResults {
		count(res)
	}
	if r.WriteResult != nil {
		count(*r.WriteResult)
	}
	return restricted, accessible, errored
}

// ExitCode maps the report to the process exit code used by CI
// integrations: 0 when the overall verdict is Secure, 1 when Vulnerable.
func (r *SecurityReport) ExitCode() int {
	if r.OverallVerdict == VerdictVulnerable {
		return 1
	}
	return 0
}
