package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/en-o/codeshelf/pkg/types"
)

// StorageConfig holds the resolved absolute directories of one installation.
// It is immutable once constructed.
type StorageConfig struct {
	dataDir   string
	configDir string
}

// NewStorageConfig returns a config rooted at the given directories. Both are
// made absolute; neither is created until EnsureDirs.
func NewStorageConfig(dataDir, configDir string) (*StorageConfig, error) {
	if dataDir == "" || configDir == "" {
		return nil, errors.New("storage config: data and config directories must be set")
	}
	data, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg, err := filepath.Abs(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return &StorageConfig{dataDir: data, configDir: cfg}, nil
}

// DataDir returns the directory holding data files and the migration marker.
func (c *StorageConfig) DataDir() string { return c.dataDir }

// ConfigDir returns the directory holding settings-like domain files.
func (c *StorageConfig) ConfigDir() string { return c.configDir }

// EnsureDirs creates the data and config directories. It is idempotent.
func (c *StorageConfig) EnsureDirs() error {
	for _, dir := range []string{c.dataDir, c.configDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %w", types.ErrIO, dir, err)
		}
	}
	return nil
}

// Path returns the absolute path of a domain file, or "" for an unknown domain.
func (c *StorageConfig) Path(d Domain) string {
	f, ok := lookupDomain(d)
	if !ok {
		return ""
	}
	base := c.dataDir
	if f.dir == inConfigDir {
		base = c.configDir
	}
	return filepath.Join(base, d.FileName())
}

// MigrationFile returns the path of the migration marker.
func (c *StorageConfig) MigrationFile() string {
	return filepath.Join(c.dataDir, migrationFileName)
}

func (c *StorageConfig) ProjectsFile() string       { return c.Path(DomainProjects) }
func (c *StorageConfig) StatsCacheFile() string     { return c.Path(DomainStatsCache) }
func (c *StorageConfig) ClaudeProfilesFile() string { return c.Path(DomainClaudeProfiles) }
func (c *StorageConfig) DownloadTasksFile() string  { return c.Path(DomainDownloadTasks) }
func (c *StorageConfig) ForwardRulesFile() string   { return c.Path(DomainForwardRules) }
func (c *StorageConfig) ServerConfigsFile() string  { return c.Path(DomainServerConfigs) }
func (c *StorageConfig) LabelsFile() string         { return c.Path(DomainLabels) }
func (c *StorageConfig) CategoriesFile() string     { return c.Path(DomainCategories) }
func (c *StorageConfig) EditorsFile() string        { return c.Path(DomainEditors) }
func (c *StorageConfig) TerminalFile() string       { return c.Path(DomainTerminal) }
func (c *StorageConfig) AppSettingsFile() string    { return c.Path(DomainAppSettings) }
func (c *StorageConfig) UIStateFile() string        { return c.Path(DomainUIState) }
func (c *StorageConfig) NotificationsFile() string  { return c.Path(DomainNotifications) }

func (c *StorageConfig) ClaudeQuickConfigsFile() string {
	return c.Path(DomainClaudeQuickConfigs)
}

func (c *StorageConfig) ClaudeInstallationsCacheFile() string {
	return c.Path(DomainClaudeInstallationsCache)
}
