package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacy_Overrides(t *testing.T) {
	dir := t.TempDir()

	t.Run("existing override is returned", func(t *testing.T) {
		got, ok := Legacy{DataDir: dir}.LegacyDataDir()
		require.True(t, ok)
		assert.Equal(t, dir, got)
	})

	t.Run("missing override is absent", func(t *testing.T) {
		_, ok := Legacy{ConfigDir: filepath.Join(dir, "nope")}.LegacyConfigDir()
		assert.False(t, ok)
	})

	t.Run("a regular file is not a directory", func(t *testing.T) {
		file := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, ok := Legacy{DataDir: file}.LegacyDataDir()
		assert.False(t, ok)
	})
}

func TestLegacy_PlatformLocation(t *testing.T) {
	home := t.TempDir()
	withPlatform(t, "linux", home, "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	l := Legacy{}
	_, ok := l.LegacyDataDir()
	assert.False(t, ok, "fresh install has no legacy data dir")
	_, ok = l.LegacyConfigDir()
	assert.False(t, ok, "fresh install has no legacy config dir")

	dataDir := filepath.Join(home, ".local", "share", LegacyAppDirName)
	configDir := filepath.Join(home, ".config", LegacyAppDirName)
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	got, ok := l.LegacyDataDir()
	require.True(t, ok)
	assert.Equal(t, dataDir, got)

	got, ok = l.LegacyConfigDir()
	require.True(t, ok)
	assert.Equal(t, configDir, got)
}

func TestNewLegacy_EnvFallback(t *testing.T) {
	t.Setenv(EnvLegacyDataDir, "/env/legacy-data")
	t.Setenv(EnvLegacyConfigDir, "/env/legacy-config")

	l := NewLegacy("", "/flag/legacy-config")
	assert.Equal(t, "/env/legacy-data", l.DataDir)
	assert.Equal(t, "/flag/legacy-config", l.ConfigDir)
}
