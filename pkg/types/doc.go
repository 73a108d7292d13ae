// Package types defines the persisted document envelope, the payload of every
// domain file, the migration marker and result, and the sentinel errors
// shared by the codeshelf storage packages.
//
// Every file on disk has the same shape:
//
//	{"version": 1, "last_updated": "2026-01-02T03:04:05Z", "data": {...}}
//
// The schema is frozen at [CurrentVersion].
package types
