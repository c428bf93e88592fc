package model

import (
	"reflect"
	"testing"
)

// readBattery builds a three-probe read result list with the given
// classifications in battery order (root, shallow, arbitrary-path).
func readBattery(root, shallow, arbitrary Classification) []ProbeResult {
	return []ProbeResult{
		{Endpoint: EndpointRoot, Method: "GET", Classification: root},
		{Endpoint: EndpointShallow, Method: "GET", Classification: shallow},
		{Endpoint: EndpointArbitraryPath, Method: "GET", Classification: arbitrary},
	}
}

// TestNewSecurityReportReadVerdict tests the read verdict aggregation policy.
func TestNewSecurityReportReadVerdict(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		results []ProbeResult
		want    Verdict
	}{
		{
			name:    "all accessible is vulnerable",
			results: readBattery(ClassificationAccessible, ClassificationAccessible, ClassificationAccessible),
			want:    VerdictVulnerable,
		},
		{
			name:    "all restricted is secure",
			results: readBattery(ClassificationRestricted, ClassificationRestricted, ClassificationRestricted),
			want:    VerdictSecure,
		},
		{
			name:    "one accessible among restricted dominates",
			results: readBattery(ClassificationAccessible, ClassificationRestricted, ClassificationRestricted),
			want:    VerdictVulnerable,
		},
		{
			name:    "accessible dominates even with errors",
			results: readBattery(ClassificationError, ClassificationAccessible, ClassificationError),
			want:    VerdictVulnerable,
		},
		{
			name:    "all errors is unknown",
			results: readBattery(ClassificationError, ClassificationError, ClassificationError),
			want:    VerdictUnknown,
		},
		{
			name:    "mix of restricted and error is unknown",
			results: readBattery(ClassificationRestricted, ClassificationError, ClassificationRestricted),
			want:    VerdictUnknown,
		},
		{
			name:    "no results is unknown",
			results: nil,
			want:    VerdictUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			report := NewSecurityReport("https://db.firebaseio.com/", true, tc.results, nil)
			if report.ReadVerdict != tc.want {
				t.Errorf("read verdict = %s, expected %s", report.ReadVerdict, tc.want)
			}
		})
	}
}

// TestNewSecurityReportWriteVerdict tests the write verdict policy
// including the skip state.
func TestNewSecurityReportWriteVerdict(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		result *ProbeResult
		want   Verdict
	}{
		{
			name:   "nil result is skipped not restricted",
			result: nil,
			want:   VerdictSkipped,
		},
		{
			name:   "accessible write is vulnerable",
			result: &ProbeResult{Endpoint: EndpointWrite, Method: "PUT", Classification: ClassificationAccessible},
			want:   VerdictVulnerable,
		},
		{
			name:   "restricted write is secure",
			result: &ProbeResult{Endpoint: EndpointWrite, Method: "PUT", Classification: ClassificationRestricted},
			want:   VerdictSecure,
		},
		{
			name:   "errored write is unknown",
			result: &ProbeResult{Endpoint: EndpointWrite, Method: "PUT", Classification: ClassificationError},
			want:   VerdictUnknown,
		},
	}

	secureReads := readBattery(ClassificationRestricted, ClassificationRestricted, ClassificationRestricted)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			report := NewSecurityReport("https://db.firebaseio.com/", true, secureReads, tc.result)
			if report.WriteVerdict != tc.want {
				t.Errorf("write verdict = %s, expected %s", report.WriteVerdict, tc.want)
			}
		})
	}
}

// TestNewSecurityReportOverallVerdict tests that the overall verdict is
// vulnerable iff at least one side is vulnerable, and that unknown does
// not fold into secure silently.
func TestNewSecurityReportOverallVerdict(t *testing.T) {
	t.Parallel()

	t.Run("secure reads and secure write is secure", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationRestricted, ClassificationRestricted, ClassificationRestricted)
		write := &ProbeResult{Endpoint: EndpointWrite, Classification: ClassificationRestricted}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)

		if report.OverallVerdict != VerdictSecure {
			t.Errorf("overall = %s, expected SECURE", report.OverallVerdict)
		}
		if report.Risk != RiskNone {
			t.Errorf("risk = %s, expected NONE", report.Risk)
		}
		if len(report.Recommendations) != 0 {
			t.Errorf("expected no recommendations, got %v", report.Recommendations)
		}
	})

	t.Run("vulnerable read makes overall vulnerable", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationAccessible, ClassificationRestricted, ClassificationRestricted)
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, nil)

		if report.OverallVerdict != VerdictVulnerable {
			t.Errorf("overall = %s, expected VULNERABLE", report.OverallVerdict)
		}
		if report.Risk != RiskHigh {
			t.Errorf("risk = %s, expected HIGH", report.Risk)
		}
		if report.ExitCode() != 1 {
			t.Errorf("exit code = %d, expected 1", report.ExitCode())
		}
	})

	t.Run("vulnerable write makes overall vulnerable and risk critical", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationRestricted, ClassificationRestricted, ClassificationRestricted)
		write := &ProbeResult{Endpoint: EndpointWrite, Classification: ClassificationAccessible}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)

		if report.OverallVerdict != VerdictVulnerable {
			t.Errorf("overall = %s, expected VULNERABLE", report.OverallVerdict)
		}
		if report.Risk != RiskCritical {
			t.Errorf("risk = %s, expected CRITICAL", report.Risk)
		}
	})

	t.Run("unknown reads do not become vulnerable but are not plain secure", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationError, ClassificationError, ClassificationError)
		write := &ProbeResult{Endpoint: EndpointWrite, Classification: ClassificationRestricted}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)

		if report.OverallVerdict != VerdictSecure {
			t.Errorf("overall = %s, expected SECURE", report.OverallVerdict)
		}
		if report.ReadVerdict != VerdictUnknown {
			t.Errorf("read verdict = %s, expected UNKNOWN", report.ReadVerdict)
		}
		// The undetermined state must stay visible in the risk level.
		if report.Risk != RiskUndetermined {
			t.Errorf("risk = %s, expected UNDETERMINED", report.Risk)
		}
	})

	t.Run("exit code is 0 when secure", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationRestricted, ClassificationRestricted, ClassificationRestricted)
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, nil)
		if report.ExitCode() != 0 {
			t.Errorf("exit code = %d, expected 0", report.ExitCode())
		}
	})
}

// TestNewSecurityReportRecommendations tests the recommendation table.
func TestNewSecurityReportRecommendations(t *testing.T) {
	t.Parallel()

	t.Run("read vulnerable adds read rules recommendation", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationAccessible, ClassificationRestricted, ClassificationRestricted)
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, nil)

		want := []string{recommendReadRules}
		if !reflect.DeepEqual(report.Recommendations, want) {
			t.Errorf("got %v, expected %v", report.Recommendations, want)
		}
	})

	t.Run("write vulnerable adds write rules recommendation", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationRestricted, ClassificationRestricted, ClassificationRestricted)
		write := &ProbeResult{Endpoint: EndpointWrite, Classification: ClassificationAccessible}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)

		want := []string{recommendWriteRules}
		if !reflect.DeepEqual(report.Recommendations, want) {
			t.Errorf("got %v, expected %v", report.Recommendations, want)
		}
	})

	t.Run("both vulnerable adds rotation recommendation last", func(t *testing.T) {
		t.Parallel()
		reads := readBattery(ClassificationAccessible, ClassificationAccessible, ClassificationAccessible)
		write := &ProbeResult{Endpoint: EndpointWrite, Classification: ClassificationAccessible}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)

		want := []string{recommendReadRules, recommendWriteRules, recommendRotateData}
		if !reflect.DeepEqual(report.Recommendations, want) {
			t.Errorf("got %v, expected %v", report.Recommendations, want)
		}
	})
}

// TestNewSecurityReportDeterminism tests that aggregation is a pure
// function of its inputs: two runs over identical results agree on every
// verdict-bearing field.
func TestNewSecurityReportDeterminism(t *testing.T) {
	t.Parallel()

	reads := readBattery(ClassificationAccessible, ClassificationError, ClassificationRestricted)
	write := &ProbeResult{Endpoint: EndpointWrite, Classification: ClassificationRestricted}

	first := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)
	second := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)

	if first.ReadVerdict != second.ReadVerdict ||
		first.WriteVerdict != second.WriteVerdict ||
		first.OverallVerdict != second.OverallVerdict ||
		first.Risk != second.Risk {
		t.Error("aggregation produced different verdicts for identical inputs")
	}
	if !reflect.DeepEqual(first.Recommendations, second.Recommendations) {
		t.Errorf("recommendations differ: %v vs %v", first.Recommendations, second.Recommendations)
	}
	if first.ScanID == second.ScanID {
		t.Error("expected distinct scan IDs per run")
	}
}

// TestNewSecurityReportDataFlags tests the empty-but-readable nuance.
func TestNewSecurityReportDataFlags(t *testing.T) {
	t.Parallel()

	t.Run("root accessible without data sets ReadableButEmpty", func(t *testing.T) {
		t.Parallel()
		reads := []ProbeResult{
			{Endpoint: EndpointRoot, Classification: ClassificationAccessible, HasData: false},
			{Endpoint: EndpointShallow, Classification: ClassificationRestricted},
			{Endpoint: EndpointArbitraryPath, Classification: ClassificationRestricted},
		}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, nil)

		if !report.ReadableButEmpty {
			t.Error("expected ReadableButEmpty to be set")
		}
		if report.HasExposedData {
			t.Error("expected HasExposedData to be unset")
		}
		// Still vulnerable: a 200 means the rules permit the read.
		if report.ReadVerdict != VerdictVulnerable {
			t.Errorf("read verdict = %s, expected VULNERABLE", report.ReadVerdict)
		}
	})

	t.Run("root accessible with data sets HasExposedData", func(t *testing.T) {
		t.Parallel()
		reads := []ProbeResult{
			{Endpoint: EndpointRoot, Classification: ClassificationAccessible, HasData: true},
			{Endpoint: EndpointShallow, Classification: ClassificationAccessible, HasData: true},
			{Endpoint: EndpointArbitraryPath, Classification: ClassificationRestricted},
		}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, nil)

		if !report.HasExposedData {
			t.Error("expected HasExposedData to be set")
		}
		if report.ReadableButEmpty {
			t.Error("expected ReadableButEmpty to be unset")
		}
	})

	t.Run("arbitrary path returning null does not mark empty", func(t *testing.T) {
		t.Parallel()
		reads := []ProbeResult{
			{Endpoint: EndpointRoot, Classification: ClassificationAccessible, HasData: true},
			{Endpoint: EndpointShallow, Classification: ClassificationAccessible, HasData: true},
			{Endpoint: EndpointArbitraryPath, Classification: ClassificationAccessible, HasData: false},
		}
		report := NewSecurityReport("https://db.firebaseio.com/", true, reads, nil)

		if report.ReadableButEmpty {
			t.Error("expected ReadableButEmpty to be unset for non-root probes")
		}
	})
}

// TestClassificationCounts tests the summary counting helper.
func TestClassificationCounts(t *testing.T) {
	t.Parallel()

	reads := readBattery(ClassificationAccessible, ClassificationRestricted, ClassificationError)
	write := &ProbeResult{Endpoint: EndpointWrite, Classification: ClassificationRestricted}
	report := NewSecurityReport("https://db.firebaseio.com/", true, reads, write)

	restricted, accessible, errored := report.ClassificationCounts()
	if restricted != 2 || accessible != 1 || errored != 1 {
		t.Errorf("counts = (%d, %d, %d), expected (2, 1, 1)", restricted, accessible, errored)
	}
}
