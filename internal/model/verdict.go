package model

// Classification is the per-probe interpretation of one HTTP response.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and aggregation. The String() method
// provides human-readable output when needed.
type Classification int

const (
	// ClassificationRestricted indicates the database rejected the
	// unauthenticated request (HTTP 401 or 403). This is the desired
	// outcome for a properly secured database.
	ClassificationRestricted Classification = iota

	// ClassificationAccessible indicates the database served the
	// unauthenticated request (HTTP 200 with a syntactically valid JSON
	// body). Firebase only returns 200 when the security rules permit the
	// operation, so a 200 with body "null" still means permission was
	// granted even though the subtree is empty.
	ClassificationAccessible

	// ClassificationError indicates the probe was inconclusive: a timeout,
	// a connection failure, an unexpected status code, or a body that is
	// not valid JSON. Errors count as neither secure nor vulnerable.
	ClassificationError
)

// String returns a human-readable representation of the classification.
func (c Classification) String() string {
	switch c {
	case ClassificationRestricted:
		return "RESTRICTED"
	case ClassificationAccessible:
		return "ACCESSIBLE"
	case ClassificationError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Verdict is the aggregated access judgment for one side (read or write)
// of the database, or for the database overall.
type Verdict int

const (
	// VerdictSecure means every conclusive probe was restricted.
	VerdictSecure Verdict = iota

	// VerdictVulnerable means at least one probe was served without
	// authentication.
	VerdictVulnerable

	// VerdictUnknown means no probe was accessible but at least one was
	// inconclusive. Unknown must be surfaced distinctly: it is "could not
	// be determined", never a silent Secure.
	VerdictUnknown

	// VerdictSkipped means the probes for this side were disabled by the
	// caller. Only the write verdict can be Skipped.
	VerdictSkipped
)

// String returns a human-readable representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictSecure:
		return "SECURE"
	case VerdictVulnerable:
		return "VULNERABLE"
	case VerdictUnknown:
		return "UNKNOWN"
	case VerdictSkipped:
		return "SKIPPED"
	default:
		return "INVALID"
	}
}

// Risk represents the overall exposure level derived from the read and
// write verdicts. It gives CI consumers and report readers a one-word
// summary coarser than the per-side verdicts.
type Risk int

const (
	// RiskNone indicates no unauthenticated access was found.
	RiskNone Risk = iota

	// RiskUndetermined indicates at least one side could not be tested
	// conclusively and no exposure was proven.
	RiskUndetermined

	// RiskHigh indicates the database is readable without authentication.
	// Data exposure depends on what the tree contains.
	RiskHigh

	// RiskCritical indicates the database is writable without
	// authentication. Anyone can modify or destroy the data.
	RiskCritical
)

// String returns a human-readable representation of the risk level.
func (r Risk) String() string {
	switch r {
	case RiskNone:
		return "NONE"
	case RiskUndetermined:
		return "UNDETERMINED"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}
