package rtdb

import (
	"fmt"
	"net/url"
	"strings"
)

// Known Firebase Realtime Database host suffixes.
// Legacy databases live under firebaseio.com; databases created in
// non-US regions live under firebasedatabase.app.
const (
	legacyHostSuffix   = ".firebaseio.com"
	regionalHostSuffix = ".firebasedatabase.app"
)

// Target is a validated, canonical Realtime Database root.
// The BaseURL is always scheme-qualified and ends with exactly one "/",
// so endpoint URLs can be built by simple concatenation.
//
// Design decision: Target is an immutable value type created only through
// Normalize. Holding the invariant in the constructor means the prober
// never has to re-validate or repair the URL.
type Target struct {
	// BaseURL is the database root, e.g.
	// "https://my-project-default-rtdb.firebaseio.com/".
	BaseURL string

	// Host is the host component of BaseURL, kept for report display
	// and for the Firebase host check.
	Host string
}

// Normalize validates and repairs a user-supplied database URL into a Target.
//
// It handles common input variations:
//   - Bare hostnames ("project.firebaseio.com") get an https:// scheme
//   - Missing trailing slash is appended
//   - Surrounding whitespace is trimmed
//
// It fails with a sentinel error when the input, after repair, is not a
// syntactically valid HTTP(S) URL with a host. Malformed strings must fail
// here rather than silently producing a broken probe URL.
func Normalize(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, ErrEmptyURL
	}

	// Bare hostnames are valid input; default to https like the Firebase
	// console does.
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return Target{}, fmt.Errorf("%w: got %q", ErrUnsupportedScheme, u.Scheme)
	}

	if u.Host == "" {
		return Target{}, fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}

	// The probe endpoints are built by concatenation, so the base must end
	// with exactly one "/".
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	u.RawQuery = ""
	u.Fragment = ""

	return Target{
		BaseURL: u.String(),
		Host:    u.Host,
	}, nil
}

// IsFirebaseHost reports whether the target host looks like a Firebase
// Realtime Database host. A non-Firebase host is not an error (self-hosted
// proxies and test servers are legitimate), but the report flags it so a
// typo'd URL does not silently produce a meaningless verdict.
func (t Target) IsFirebaseHost() bool {
	host := strings.ToLower(t.Host)
	// Strip a port if present; url.URL.Host keeps it.
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host[idx:], "]") {
		host = host[:idx]
	}
	return strings.HasSuffix(host, legacyHostSuffix) || strings.HasSuffix(host, regionalHostSuffix)
}

// RootEndpoint returns the full-tree read endpoint (<base>.json).
func (t Target) RootEndpoint() string {
	return t.BaseURL + ".json"
}

// ShallowEndpoint returns the shallow read endpoint (<base>.json?shallow=true).
// A shallow read enumerates immediate child keys without their values.
func (t Target) ShallowEndpoint() string {
	return t.BaseURL + ".json?shallow=true"
}

// PathEndpoint returns the read endpoint for a child path (<base><path>.json).
// The path must not contain a leading slash or the ".json" suffix.
func (t Target) PathEndpoint(path string) string {
	return t.BaseURL + path + ".json"
}

// String returns the canonical base URL.
func (t Target) String() string {
	return t.BaseURL
}
