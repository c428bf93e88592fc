// Package rtdb provides Firebase Realtime Database address handling.
// It normalizes user-supplied database URLs into canonical probe targets
// and builds the REST endpoint URLs used by the prober.
package rtdb
