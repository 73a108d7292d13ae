// Package paths resolves the codeshelf data and configuration directories and
// locates the directories of a previous install.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the directory name used under the platform base directories.
const AppDirName = "codeshelf"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CODESHELF_CONFIG_DIR"
	EnvDataDir   = "CODESHELF_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// configBase returns the platform base for per-user configuration.
//
// Linux:   $XDG_CONFIG_HOME (fallback ~/.config)
// macOS:   ~/Library/Application Support
// Windows: %APPDATA%
func configBase() (string, error) {
	if platformDir.goos == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg, nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config"), nil
	}
	return platformDir.userConfigDir()
}

// dataBase returns the platform base for per-user application data.
// macOS and Windows have no separate data location and share configBase.
//
// Linux: $XDG_DATA_HOME (fallback ~/.local/share)
func dataBase() (string, error) {
	if platformDir.goos == "linux" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return xdg, nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
	return platformDir.userConfigDir()
}

// DefaultConfigDir returns the platform-specific default configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := configBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName), nil
}

// DefaultDataDir returns the platform-specific default data directory. On
// Linux it lives under the XDG data home; elsewhere it is the "data"
// subdirectory of the configuration directory.
func DefaultDataDir() (string, error) {
	base, err := dataBase()
	if err != nil {
		return "", err
	}
	if platformDir.goos == "linux" {
		return filepath.Join(base, AppDirName), nil
	}
	return filepath.Join(base, AppDirName, "data"), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > CODESHELF_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > CODESHELF_DATA_DIR env > DefaultDataDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
