package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en-o/codeshelf/pkg/types"
)

var testTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return testTime }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConfig returns a config over two fresh directories that exist.
func newTestConfig(t *testing.T) *StorageConfig {
	t.Helper()
	root := t.TempDir()
	cfg, err := NewStorageConfig(filepath.Join(root, "data"), filepath.Join(root, "config"))
	require.NoError(t, err)
	require.NoError(t, cfg.EnsureDirs())
	return cfg
}

// snapshot reads every domain file of cfg, keyed by domain.
func snapshot(t *testing.T, cfg *StorageConfig) map[Domain][]byte {
	t.Helper()
	out := make(map[Domain][]byte)
	for _, d := range Domains() {
		b, err := os.ReadFile(cfg.Path(d))
		require.NoError(t, err, d)
		out[d] = b
	}
	return out
}

func TestEnsureAllDataFiles_CreatesEveryDomain(t *testing.T) {
	cfg := newTestConfig(t)

	created, err := ensureAllDataFiles(cfg, fixedClock, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Domains(), created)

	for _, d := range Domains() {
		raw, err := ReadDocument[map[string]any](cfg.Path(d))
		require.NoError(t, err, d)
		assert.Equal(t, types.CurrentVersion, raw.Version, d)
		assert.Equal(t, "2025-03-14T09:26:53Z", raw.LastUpdated, d)
		assert.NotNil(t, raw.Data, d)
	}
}

func TestEnsureAllDataFiles_Idempotent(t *testing.T) {
	cfg := newTestConfig(t)

	_, err := ensureAllDataFiles(cfg, fixedClock, discardLogger())
	require.NoError(t, err)
	before := snapshot(t, cfg)

	later := func() time.Time { return testTime.Add(time.Hour) }
	created, err := ensureAllDataFiles(cfg, later, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, before, snapshot(t, cfg))
}

func TestEnsureAllDataFiles_NeverOverwrites(t *testing.T) {
	cfg := newTestConfig(t)
	custom := []byte(`{"version":1,"last_updated":"x","data":{"labels":["mine"]}}`)
	require.NoError(t, os.WriteFile(cfg.LabelsFile(), custom, 0o644))

	created, err := ensureAllDataFiles(cfg, fixedClock, discardLogger())
	require.NoError(t, err)
	assert.NotContains(t, created, DomainLabels)

	got, err := os.ReadFile(cfg.LabelsFile())
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestEnsureAllDataFiles_RestoresOneDeletedFile(t *testing.T) {
	cfg := newTestConfig(t)
	_, err := ensureAllDataFiles(cfg, fixedClock, discardLogger())
	require.NoError(t, err)

	require.NoError(t, os.Remove(cfg.NotificationsFile()))
	created, err := ensureAllDataFiles(cfg, fixedClock, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []Domain{DomainNotifications}, created)
}

func TestEnsureAllDataFiles_CuratedDefaults(t *testing.T) {
	cfg := newTestConfig(t)
	_, err := ensureAllDataFiles(cfg, fixedClock, discardLogger())
	require.NoError(t, err)

	labels, err := ReadDocument[types.LabelsData](cfg.LabelsFile())
	require.NoError(t, err)
	assert.Equal(t, DefaultLabels, labels.Data.Labels)
	assert.Len(t, labels.Data.Labels, 10)

	categories, err := ReadDocument[types.CategoriesData](cfg.CategoriesFile())
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories, categories.Data.Categories)

	projects, err := ReadDocument[types.ProjectsData](cfg.ProjectsFile())
	require.NoError(t, err)
	assert.NotNil(t, projects.Data.Projects)
	assert.Empty(t, projects.Data.Projects)
}

func TestEnsureAllDataFiles_ContinuesPastFailure(t *testing.T) {
	cfg := newTestConfig(t)
	// A regular file where the config directory should be makes every
	// config-domain write fail.
	require.NoError(t, os.RemoveAll(cfg.ConfigDir()))
	require.NoError(t, os.WriteFile(cfg.ConfigDir(), nil, 0o644))

	created, err := ensureAllDataFiles(cfg, fixedClock, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
	assert.Contains(t, created, DomainProjects)
	assert.Contains(t, created, DomainUIState)
	assert.NotContains(t, created, DomainLabels)
}

func TestCreateIfAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	ok, err := createIfAbsent(path, []byte("first"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = createIfAbsent(path, []byte("second"))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}
