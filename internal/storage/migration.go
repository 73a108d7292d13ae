package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/en-o/codeshelf/pkg/types"
)

// Migrator performs the one-time v0 -> v1 transition and the ensure step
// that follows every run.
type Migrator struct {
	locator LegacyLocator
	logger  *slog.Logger
	now     func() time.Time
}

// MigratorOption configures a Migrator.
type MigratorOption func(*Migrator)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) MigratorOption {
	return func(m *Migrator) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock sets the time source used for envelope and record timestamps.
func WithClock(now func() time.Time) MigratorOption {
	return func(m *Migrator) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMigrator returns a Migrator reading legacy data through locator. A nil
// locator behaves as a fresh install.
func NewMigrator(locator LegacyLocator, opts ...MigratorOption) *Migrator {
	if locator == nil {
		locator = noLegacy{}
	}
	m := &Migrator{locator: locator, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run brings cfg's directories to the current schema. The transition runs
// only while the marker records version 0; the ensure step runs every time.
//
// Per-domain outcomes are reported in the result. The returned error joins
// hard failures (directory creation, marker I/O, ensure-step writes); none of
// them stops the steps after it, so the result is meaningful even when the
// error is non-nil.
func (m *Migrator) Run(cfg *StorageConfig) (types.MigrationResult, error) {
	result := types.NewMigrationResult()
	var errs []error
	hard := func(err error) {
		errs = append(errs, err)
		result.Errors = append(result.Errors, err.Error())
		result.Success = false
	}

	if err := cfg.EnsureDirs(); err != nil {
		hard(err)
	}

	marker, err := m.loadMarker(cfg, &result)
	switch {
	case err != nil:
		hard(err)
	case marker.LastMigrationVersion == 0:
		m.migrateV0ToV1(cfg, &result)
		marker.Migrations = append(marker.Migrations, types.MigrationRecord{
			ID:          types.MigrationRecordV1Initial,
			CompletedAt: timestamp(m.now()),
			Success:     result.Success,
		})
		marker.LastMigrationVersion = types.CurrentVersion
		if err := m.saveMarker(cfg, marker); err != nil {
			hard(err)
		}
	default:
		m.logger.Debug("migration already applied", "version", marker.LastMigrationVersion)
	}

	if _, err := ensureAllDataFiles(cfg, m.now, m.logger); err != nil {
		hard(err)
	}

	m.report(result)
	return result, errors.Join(errs...)
}

// loadMarker reads the migration marker. A missing marker is version 0. A
// marker that cannot be decoded is also treated as version 0 with a warning:
// every step is create-if-absent, so repeating the transition is harmless.
func (m *Migrator) loadMarker(cfg *StorageConfig, result *types.MigrationResult) (types.MigrationData, error) {
	path := cfg.MigrationFile()
	exists, err := fileExists(path)
	if err != nil {
		return types.MigrationData{}, err
	}
	if !exists {
		return types.NewMigrationData(), nil
	}
	doc, err := ReadDocument[types.MigrationData](path)
	if errors.Is(err, types.ErrParse) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("migration marker unreadable, treating as never migrated: %v", err))
		return types.NewMigrationData(), nil
	}
	if err != nil {
		return types.MigrationData{}, err
	}
	if doc.Data.Migrations == nil {
		doc.Data.Migrations = []types.MigrationRecord{}
	}
	return doc.Data, nil
}

func (m *Migrator) saveMarker(cfg *StorageConfig, marker types.MigrationData) error {
	content, err := encodeDocument(marker, m.now())
	if err != nil {
		return fmt.Errorf("encode migration marker: %w", err)
	}
	if err := replaceFile(cfg.MigrationFile(), content); err != nil {
		return fmt.Errorf("save migration marker: %w", err)
	}
	return nil
}

func (m *Migrator) report(result types.MigrationResult) {
	for _, item := range result.MigratedItems {
		m.logger.Info("migrated", "item", item)
	}
	for _, w := range result.Warnings {
		m.logger.Warn("migration warning", "warning", w)
	}
	for _, e := range result.Errors {
		m.logger.Error("migration error", "error", e)
	}
}

// legacyDirs holds the previous install's directories, if any.
type legacyDirs struct {
	data, config       string
	hasData, hasConfig bool
}

// source returns the path of a legacy data file, or "" when the legacy data
// directory or the file is missing.
func (l legacyDirs) source(name string) (string, error) {
	if !l.hasData {
		return "", nil
	}
	path := filepath.Join(l.data, name)
	exists, err := fileExists(path)
	if err != nil || !exists {
		return "", err
	}
	return path, nil
}

// loaded is what a step produced from a legacy source.
type loaded struct {
	payload any
	item    string // migrated-item description; "" reports nothing
}

// migrationStep imports one domain. load returns nil when no legacy source
// exists, in which case the domain's default payload is written.
type migrationStep struct {
	domain   Domain
	critical bool
	// fallback writes the default payload immediately when load fails.
	fallback bool
	load     func(m *Migrator, l legacyDirs) (*loaded, error)
}

// v1Steps are the steps of the v0 -> v1 transition, in order.
var v1Steps = []migrationStep{
	{domain: DomainProjects, critical: true, load: (*Migrator).loadProjects},
	{domain: DomainStatsCache, fallback: true, load: (*Migrator).loadStatsCache},
	{domain: DomainClaudeProfiles, load: (*Migrator).loadClaudeProfiles},
	{domain: DomainLabels, load: (*Migrator).loadLabels},
	{domain: DomainCategories, load: (*Migrator).loadCategories},
}

// migrateV0ToV1 attempts every step; a failed step never stops the next.
func (m *Migrator) migrateV0ToV1(cfg *StorageConfig, result *types.MigrationResult) {
	m.logger.Info("running migration", "id", types.MigrationRecordV1Initial)

	var l legacyDirs
	l.data, l.hasData = m.locator.LegacyDataDir()
	l.config, l.hasConfig = m.locator.LegacyConfigDir()
	at := m.now()

	for _, step := range v1Steps {
		if err := m.runStep(cfg, step, l, at, result); err != nil {
			m.fail(cfg, step, err, at, result)
		}
	}
}

func (m *Migrator) runStep(cfg *StorageConfig, step migrationStep, l legacyDirs, at time.Time, result *types.MigrationResult) error {
	dest := cfg.Path(step.domain)
	exists, err := fileExists(dest)
	if err != nil {
		return err
	}
	if exists {
		m.logger.Debug("destination exists, skipping", "domain", string(step.domain))
		return nil
	}

	got, err := step.load(m, l)
	if err != nil {
		return err
	}
	if got == nil {
		f, _ := lookupDomain(step.domain)
		got = &loaded{payload: f.defaults()}
	}

	created, err := createDocument(dest, got.payload, at)
	if err != nil {
		return err
	}
	if created && got.item != "" {
		result.MigratedItems = append(result.MigratedItems, got.item)
	}
	return nil
}

// fail applies the domain's failure policy.
func (m *Migrator) fail(cfg *StorageConfig, step migrationStep, err error, at time.Time, result *types.MigrationResult) {
	if step.critical {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s migration failed: %v", step.domain, err))
		return
	}
	if !step.fallback {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s migration failed: %v", step.domain, err))
		return
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf("%s migration failed, starting empty: %v", step.domain, err))
	f, _ := lookupDomain(step.domain)
	if _, werr := createDocument(cfg.Path(step.domain), f.defaults(), at); werr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s default not written: %v", step.domain, werr))
	}
}

func (m *Migrator) readLegacy(path string) ([]byte, error) {
	m.logger.Info("reading legacy file", "path", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", types.ErrIO, path, err)
	}
	return b, nil
}

func (m *Migrator) loadProjects(l legacyDirs) (*loaded, error) {
	path, err := l.source("projects.json")
	if err != nil || path == "" {
		return nil, err
	}
	content, err := m.readLegacy(path)
	if err != nil {
		return nil, err
	}
	projects, err := ParseProjects(content)
	if err != nil {
		return nil, err
	}
	return &loaded{
		payload: types.ProjectsData{Projects: projects},
		item:    fmt.Sprintf("projects data (%d projects)", len(projects)),
	}, nil
}

func (m *Migrator) loadStatsCache(l legacyDirs) (*loaded, error) {
	path, err := l.source("stats_cache.json")
	if err != nil || path == "" {
		return nil, err
	}
	content, err := m.readLegacy(path)
	if err != nil {
		return nil, err
	}
	cache, err := ParseStatsCache(content)
	if err != nil {
		return nil, err
	}
	return &loaded{payload: cache, item: "stats cache"}, nil
}

const (
	legacyProfilePrefix = "claude_profiles_"
	legacyProfileSuffix = ".json"
)

// loadClaudeProfiles merges every claude_profiles_<env>.json of the legacy
// config directory. Files that cannot be read or decoded are skipped.
func (m *Migrator) loadClaudeProfiles(l legacyDirs) (*loaded, error) {
	if !l.hasConfig {
		return nil, nil
	}
	entries, err := os.ReadDir(l.config)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", types.ErrIO, l.config, err)
	}

	data := types.NewClaudeProfilesData()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, legacyProfilePrefix) || !strings.HasSuffix(name, legacyProfileSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		env := strings.TrimSuffix(strings.TrimPrefix(name, legacyProfilePrefix), legacyProfileSuffix)
		path := filepath.Join(l.config, name)
		content, err := m.readLegacy(path)
		if err != nil {
			m.logger.Warn("skipping legacy profiles", "env", env, "error", err)
			continue
		}
		profiles, err := ParseProfiles(content)
		if err != nil {
			m.logger.Warn("skipping legacy profiles", "env", env, "error", err)
			continue
		}
		data.Environments[env] = types.EnvironmentProfiles{Profiles: profiles}
	}

	got := &loaded{payload: data}
	if n := data.Count(); n > 0 {
		got.item = fmt.Sprintf("Claude profiles (%d)", n)
	}
	return got, nil
}

func (m *Migrator) loadLabels(l legacyDirs) (*loaded, error) {
	path, err := l.source("labels.json")
	if err != nil || path == "" {
		return nil, err
	}
	content, err := m.readLegacy(path)
	if err != nil {
		return nil, err
	}
	labels, err := ParseStringArray(content, "labels")
	if err != nil {
		return nil, err
	}
	return &loaded{
		payload: types.LabelsData{Labels: labels},
		item:    fmt.Sprintf("labels (%d)", len(labels)),
	}, nil
}

// legacyCategorySources are probed in order; the first file present wins.
var legacyCategorySources = []struct {
	name   string
	fields []string
}{
	{"categories.json", []string{"categories"}},
	{"tags.json", []string{"categories", "tags"}},
}

func (m *Migrator) loadCategories(l legacyDirs) (*loaded, error) {
	for _, src := range legacyCategorySources {
		path, err := l.source(src.name)
		if err != nil {
			return nil, err
		}
		if path == "" {
			continue
		}
		content, err := m.readLegacy(path)
		if err != nil {
			return nil, err
		}
		categories, err := parseStringArray(content, src.fields...)
		if err != nil {
			return nil, err
		}
		return &loaded{
			payload: types.CategoriesData{Categories: categories},
			item:    fmt.Sprintf("categories (%d)", len(categories)),
		}, nil
	}
	return nil, nil
}
