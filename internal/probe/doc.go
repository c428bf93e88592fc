// Package probe issues the unauthenticated access probes against a
// Realtime Database target and classifies each response.
//
// Probes run strictly sequentially. Every transport failure is converted
// to an inconclusive classification at this boundary so that one broken
// probe never aborts the rest of the run.
package probe
