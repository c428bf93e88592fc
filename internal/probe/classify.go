package probe

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/rtdbscan/rtdbscan/internal/model"
)

// Classify interprets one probe response as restricted, accessible, or
// inconclusive.
//
// The policy follows Firebase RTDB semantics: the REST API returns 200
// only when the security rules permit the operation, so a 200 with body
// "null" still proves access. 401 and 403 prove the rules rejected the
// anonymous request. For reads, a 200 whose body is not valid JSON (a
// captive portal or an interposed proxy) is inconclusive; for writes the
// status alone is proof, because the write already happened regardless of
// what the server echoed back.
//
// Design decision: This is a pure function separate from the Prober so
// the status-code branching can be unit tested without any network code.
func Classify(method string, statusCode int, body []byte, transportErr error) model.Classification {
	if transportErr != nil {
		return model.ClassificationError
	}

	switch statusCode {
	case http.StatusOK, http.StatusCreated:
		// 201 never occurs on reads but some RTDB-compatible servers
		// return it for a created write path.
		if method == http.MethodPut {
			return model.ClassificationAccessible
		}
		if json.Valid(body) && len(bytes.TrimSpace(body)) > 0 {
			return model.ClassificationAccessible
		}
		return model.ClassificationError
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.ClassificationRestricted
	default:
		return model.ClassificationError
	}
}

// HasData reports whether a successful response body carries actual
// content. Firebase returns the literal "null" for an empty subtree;
// an empty object is treated the same way.
func HasData(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return false
	}
	return json.Valid(trimmed)
}
