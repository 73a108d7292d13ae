package paths

import (
	"os"
	"path/filepath"
)

// LegacyAppDirName is the directory name the previous release used under the
// platform base directories.
const LegacyAppDirName = "com.codeshelf.app"

// Environment variable names pointing at a previous install.
const (
	EnvLegacyDataDir   = "CODESHELF_LEGACY_DATA_DIR"
	EnvLegacyConfigDir = "CODESHELF_LEGACY_CONFIG_DIR"
)

// Legacy locates the data and configuration directories of a previous
// install. An empty field means the platform location of the previous
// release. A directory that does not exist is reported as absent, which is
// the normal outcome of a fresh install.
type Legacy struct {
	DataDir   string
	ConfigDir string
}

// NewLegacy returns a Legacy locator. Empty overrides fall back to the
// CODESHELF_LEGACY_DATA_DIR and CODESHELF_LEGACY_CONFIG_DIR environment
// variables, then to the platform location.
func NewLegacy(dataOverride, configOverride string) Legacy {
	if dataOverride == "" {
		dataOverride = os.Getenv(EnvLegacyDataDir)
	}
	if configOverride == "" {
		configOverride = os.Getenv(EnvLegacyConfigDir)
	}
	return Legacy{DataDir: dataOverride, ConfigDir: configOverride}
}

// LegacyDataDir returns the previous-install data directory, if it exists.
func (l Legacy) LegacyDataDir() (string, bool) {
	return locate(l.DataDir, dataBase)
}

// LegacyConfigDir returns the previous-install config directory, if it exists.
func (l Legacy) LegacyConfigDir() (string, bool) {
	return locate(l.ConfigDir, configBase)
}

func locate(override string, base func() (string, error)) (string, bool) {
	dir := override
	if dir == "" {
		b, err := base()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(b, LegacyAppDirName)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return abs, true
}
