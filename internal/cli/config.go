package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir         = "data_dir"
	cfgKeyLegacyDataDir   = "legacy_data_dir"
	cfgKeyLegacyConfigDir = "legacy_config_dir"
	cfgKeyLogLevel        = "log_level"

	envPrefix       = "CODESHELF"
	defaultLogLevel = "warn"
)

// configFile is the structure written to config.yaml on first run. Empty
// directory keys mean "use the platform default".
type configFile struct {
	DataDir         string `yaml:"data_dir"`
	LegacyDataDir   string `yaml:"legacy_data_dir"`
	LegacyConfigDir string `yaml:"legacy_config_dir"`
	LogLevel        string `yaml:"log_level"`
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. CODESHELF_LOG_LEVEL overrides log_level.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(cfgKeyLogLevel); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{LogLevel: defaultLogLevel})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# codeshelf configuration. Empty directories use the platform default.\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
