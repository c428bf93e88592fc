// Package main provides the entry point for the rtdbscan CLI.
//
// rtdbscan checks a Firebase Realtime Database for unauthenticated read
// and write access and reports whether the database is publicly exposed.
//
// Usage:
//
//	rtdbscan scan <database-url>
//	rtdbscan scan --skip-write-test <database-url>
//
// See --help for all available options.
package main

// main is the entry point for rtdbscan.
func main() {
	Execute()
}
