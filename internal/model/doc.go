// Package model defines the core data structures for rtdbscan.
// It contains probe results, access verdicts, and the security report
// built from them.
//
// The package has no I/O and no internal dependencies: probing lives in
// the probe package and presentation in the report package, both of which
// consume these types.
package model
