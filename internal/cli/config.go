package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/jling-NM/CACTI-sub000/internal/paths"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyCatalogFile = "catalog_file"
	cfgKeyExportDir   = "export_dir"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# cacti configuration

# Code catalog YAML (optional; the built-in MISC catalog is used when empty)
# catalog_file:

# Export destination (optional; overridable by export --dest)
# export_dir:

# Logging: level is debug, info, warn or error; format is auto, text or json
log_level: info
log_format: auto
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config file
// is not an error.
func loadConfig(configDir string) (types.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogFormat, types.LogFormatAuto)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		CatalogFile: v.GetString(cfgKeyCatalogFile),
		ExportDir:   v.GetString(cfgKeyExportDir),
		LogLevel:    v.GetString(cfgKeyLogLevel),
		LogFormat:   v.GetString(cfgKeyLogFormat),
	}, nil
}

// ensureDefaultConfigFile creates config.yaml if it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
