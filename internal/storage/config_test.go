package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageConfig_RequiresDirs(t *testing.T) {
	_, err := NewStorageConfig("", "/tmp/config")
	assert.Error(t, err)
	_, err = NewStorageConfig("/tmp/data", "")
	assert.Error(t, err)
}

func TestNewStorageConfig_MakesPathsAbsolute(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := NewStorageConfig("data", "config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.DataDir()))
	assert.True(t, filepath.IsAbs(cfg.ConfigDir()))
}

func TestStorageConfig_Paths(t *testing.T) {
	cfg, err := NewStorageConfig("/var/codeshelf/data", "/etc/codeshelf")
	require.NoError(t, err)

	tests := []struct {
		got  string
		want string
	}{
		{cfg.MigrationFile(), "/var/codeshelf/data/migration.json"},
		{cfg.ProjectsFile(), "/var/codeshelf/data/projects.json"},
		{cfg.StatsCacheFile(), "/var/codeshelf/data/stats_cache.json"},
		{cfg.DownloadTasksFile(), "/var/codeshelf/data/download_tasks.json"},
		{cfg.ForwardRulesFile(), "/var/codeshelf/data/forward_rules.json"},
		{cfg.ServerConfigsFile(), "/var/codeshelf/data/server_configs.json"},
		{cfg.UIStateFile(), "/var/codeshelf/data/ui_state.json"},
		{cfg.NotificationsFile(), "/var/codeshelf/data/notifications.json"},
		{cfg.ClaudeInstallationsCacheFile(), "/var/codeshelf/data/claude_installations_cache.json"},
		{cfg.ClaudeProfilesFile(), "/etc/codeshelf/claude_profiles.json"},
		{cfg.LabelsFile(), "/etc/codeshelf/labels.json"},
		{cfg.CategoriesFile(), "/etc/codeshelf/categories.json"},
		{cfg.EditorsFile(), "/etc/codeshelf/editors.json"},
		{cfg.TerminalFile(), "/etc/codeshelf/terminal.json"},
		{cfg.AppSettingsFile(), "/etc/codeshelf/app_settings.json"},
		{cfg.ClaudeQuickConfigsFile(), "/etc/codeshelf/claude_quick_configs.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, filepath.FromSlash(tt.want), tt.got)
	}
	assert.Empty(t, cfg.Path(Domain("nope")))
}

func TestDomains_UniqueFiles(t *testing.T) {
	cfg, err := NewStorageConfig("/d", "/c")
	require.NoError(t, err)

	seen := make(map[string]Domain)
	for _, d := range Domains() {
		p := cfg.Path(d)
		require.NotEmpty(t, p, d)
		prev, dup := seen[p]
		assert.False(t, dup, "%s and %s share %s", prev, d, p)
		seen[p] = d
	}
	assert.Len(t, seen, 15)
}

func TestStorageConfig_EnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg, err := NewStorageConfig(filepath.Join(root, "a", "data"), filepath.Join(root, "b", "config"))
	require.NoError(t, err)

	require.NoError(t, cfg.EnsureDirs())
	require.NoError(t, cfg.EnsureDirs())
	assert.DirExists(t, cfg.DataDir())
	assert.DirExists(t, cfg.ConfigDir())

	blocked, err := NewStorageConfig(filepath.Join(root, "file", "data"), filepath.Join(root, "c"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "file"), nil, 0o644))
	assert.Error(t, blocked.EnsureDirs())
}
