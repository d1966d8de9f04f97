package types

import (
	"errors"
	"fmt"
)

// Config holds the application settings loaded from config.yaml.
type Config struct {
	CatalogFile string `json:"catalog_file" yaml:"catalog_file"`
	ExportDir   string `json:"export_dir" yaml:"export_dir"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFormat   string `json:"log_format" yaml:"log_format"`
}

// Log formats accepted by Config.LogFormat.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config validation errors.
var (
	ErrLogFormatUnknown = errors.New("unknown log format")
	ErrLogLevelUnknown  = errors.New("unknown log level")
)

var knownLogFormats = map[string]bool{
	"":            true,
	LogFormatAuto: true,
	LogFormatText: true,
	LogFormatJSON: true,
}

var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. Empty values are allowed
// and fall back to defaults at the point of use.
func (c Config) Validate() error {
	if !knownLogFormats[c.LogFormat] {
		return fmt.Errorf("%w: %q", ErrLogFormatUnknown, c.LogFormat)
	}
	if !knownLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: %q", ErrLogLevelUnknown, c.LogLevel)
	}
	return nil
}
