// Package storage persists codeshelf's domain collections as individual
// versioned JSON documents and brings a data directory to a complete, valid
// state on every start.
//
// Initialization runs in three layers:
//
//   - [StorageConfig] resolves one path per domain file and creates the
//     data and config directories.
//   - [Migrator] performs the one-time v0 -> v1 transition, importing the
//     files of a previous install found through a [LegacyLocator].
//   - [EnsureAllDataFiles] backfills any domain file that is missing with
//     its default payload. It runs on every start, after the migration.
//
// Every write is create-if-absent: neither the migration nor the ensure step
// ever replaces a domain file that already exists. The only file rewritten
// in place is the migration marker.
//
// [Store] ties the layers together as an application-scoped value whose
// Init is safe to call from many goroutines.
package storage
