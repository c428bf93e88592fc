package model

// Probe endpoint labels. These identify the fixed read battery entries and
// the write probe in results and reports.
const (
	// EndpointRoot is the full-tree read probe (<base>.json).
	EndpointRoot = "root"

	// EndpointShallow is the structure enumeration probe
	// (<base>.json?shallow=true). Shallow reads return only immediate
	// child keys, so they reveal structure without values.
	EndpointShallow = "shallow"

	// EndpointArbitraryPath is the plausible non-root key probe
	// (<base>test.json).
	EndpointArbitraryPath = "arbitrary-path"

	// EndpointWrite is the write probe (PUT <base>security_test_<epoch>.json).
	EndpointWrite = "write"
)

// ProbeResult is the immutable outcome of one probe request.
// One instance is created per probe call and never mutated afterwards.
type ProbeResult struct {
	// Endpoint is the probe label (root, shallow, arbitrary-path, write).
	Endpoint string `json:"endpoint"`

	// URL is the full URL that was requested.
	URL string `json:"url"`

	// Method is the HTTP method used (GET, PUT).
	Method string `json:"method"`

	// StatusCode is the HTTP status code, or 0 when no response was
	// received (timeout, connection failure).
	StatusCode int `json:"status_code,omitempty"`

	// ContentType is the response Content-Type header, if any.
	ContentType string `json:"content_type,omitempty"`

	// BodySize is the number of response body bytes read.
	BodySize int `json:"body_size,omitempty"`

	// BodySnippet is a truncated copy of the response body, kept so the
	// report can show what the database returned without storing
	// arbitrarily large payloads.
	BodySnippet string `json:"body_snippet,omitempty"`

	// HasData reports whether a 200 response carried JSON other than
	// null or an empty object. An accessible but empty database is a
	// weaker finding than one that leaks content.
	HasData bool `json:"has_data"`

	// Classification is the access interpretation of this response.
	Classification Classification `json:"classification"`

	// ClassificationText is the human-readable classification.
	ClassificationText string `json:"classification_text"`

	// Error holds the transport error message when the probe failed
	// before producing a usable response.
	Error string `json:"error,omitempty"`

	// CleanupFailed is set on a write result when the test artifact was
	// written but the best-effort DELETE afterwards did not succeed. The
	// artifact remains in the target database and should be removed by
	// its operator.
	CleanupFailed bool `json:"cleanup_failed,omitempty"`

	// CleanupPath is the database path the write probe created, recorded
	// so a failed cleanup can be completed manually.
	CleanupPath string `json:"cleanup_path,omitempty"`
}
