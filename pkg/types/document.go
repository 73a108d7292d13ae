package types

// CurrentVersion is the schema version of every domain file and of the
// migration marker. It is frozen: v0 -> v1 is the only transition.
const CurrentVersion uint32 = 1

// VersionedDocument is the envelope written for every domain file.
type VersionedDocument[T any] struct {
	Version     uint32 `json:"version"`
	LastUpdated string `json:"last_updated"`
	Data        T      `json:"data"`
}

// MigrationRecordV1Initial identifies the one defined transition.
const MigrationRecordV1Initial = "v1_initial"

// MigrationData is the payload of the migration marker file.
// LastMigrationVersion 0 means the legacy data was never migrated.
type MigrationData struct {
	LastMigrationVersion uint32            `json:"last_migration_version"`
	Migrations           []MigrationRecord `json:"migrations"`
}

// MigrationRecord records one attempted transition.
type MigrationRecord struct {
	ID          string `json:"id"`
	CompletedAt string `json:"completed_at"`
	Success     bool   `json:"success"`
}

// NewMigrationData returns the marker payload of an install that has never
// been migrated.
func NewMigrationData() MigrationData {
	return MigrationData{Migrations: []MigrationRecord{}}
}
