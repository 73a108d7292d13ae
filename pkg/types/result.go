package types

// MigrationResult aggregates the outcome of one migration run. Success is
// false only when a critical domain failed; non-critical failures are
// reported as warnings.
type MigrationResult struct {
	Success       bool     `json:"success"`
	MigratedItems []string `json:"migrated_items"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
}

// NewMigrationResult returns the "all succeeded, nothing migrated" result.
func NewMigrationResult() MigrationResult {
	return MigrationResult{
		Success:       true,
		MigratedItems: []string{},
		Errors:        []string{},
		Warnings:      []string{},
	}
}

// Clone returns a deep copy so cached results cannot be mutated by callers.
func (r MigrationResult) Clone() MigrationResult {
	return MigrationResult{
		Success:       r.Success,
		MigratedItems: append([]string{}, r.MigratedItems...),
		Errors:        append([]string{}, r.Errors...),
		Warnings:      append([]string{}, r.Warnings...),
	}
}
