package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"unified2-cleanup/internal/types"
)

// FileName is the optional config file looked up in the config directory.
const FileName = "config.yaml"

// ConfigError indicates bad user input: flags, interval or config file.
// A run that fails with ConfigError never touches the log root.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps a message as a ConfigError.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}

// FileConfig mirrors config.yaml. Every field is optional; zero values (nil
// for the integers) mean "not set, keep the default".
//
// Example config.yaml:
//
//	root: /nsm/sensor_data
//	prefix: snort-unified2
//	file_size_mb: 256
//	log_retention_days: 14
//	metrics_file: /var/lib/node_exporter/textfile/unified2_cleanup.prom
type FileConfig struct {
	Root             string `yaml:"root"`
	Prefix           string `yaml:"prefix"`
	DayInterval      *int   `yaml:"day_interval"`
	FileSizeMB       *int   `yaml:"file_size_mb"`
	LogRetentionDays *int   `yaml:"log_retention_days"`
	MetricsFile      string `yaml:"metrics_file"`
}

// ReadFile loads configDir/config.yaml.
//
// Contract:
//   - A missing file is not an error: (FileConfig{}, false, nil).
//   - Unknown keys and malformed YAML are ConfigErrors, so typos do not
//     silently fall back to defaults.
func ReadFile(configDir string) (FileConfig, bool, error) {
	if configDir == "" {
		return FileConfig{}, false, nil
	}

	path := filepath.Join(configDir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, NewConfigError("read %s: %w", path, err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, false, NewConfigError("parse %s: %w", path, err)
	}

	fc.Root = strings.TrimSpace(fc.Root)
	fc.Prefix = strings.TrimSpace(fc.Prefix)
	fc.MetricsFile = strings.TrimSpace(fc.MetricsFile)

	return fc, true, nil
}

// Flag names whose explicit values win over config.yaml.
const (
	FlagDayInterval  = "day-interval"
	FlagRoot         = "root"
	FlagPrefix       = "prefix"
	FlagLogRetention = "log-retention"
	FlagMetricsFile  = "metrics-file"
)

// Merge applies fc onto cfg for every setting whose flag was not given
// explicitly. changed reports whether a flag was set on the command line.
func Merge(cfg *types.AppConfig, fc FileConfig, changed func(flag string) bool) {
	if fc.Root != "" && !changed(FlagRoot) {
		cfg.Root = fc.Root
	}
	if fc.Prefix != "" && !changed(FlagPrefix) {
		cfg.Prefix = fc.Prefix
	}
	if fc.DayInterval != nil && !changed(FlagDayInterval) {
		cfg.DayInterval = *fc.DayInterval
	}
	if fc.FileSizeMB != nil {
		cfg.FileSizeMB = *fc.FileSizeMB
	}
	if fc.LogRetentionDays != nil && !changed(FlagLogRetention) {
		cfg.LogRetention = *fc.LogRetentionDays
	}
	if fc.MetricsFile != "" && !changed(FlagMetricsFile) {
		cfg.MetricsFile = fc.MetricsFile
	}
}

// ResolveMode turns the --eval/--purge pair into a Mode.
// Exactly one must be set.
func ResolveMode(eval, purge bool) (types.Mode, error) {
	switch {
	case eval && purge:
		return types.ModeUnset, NewConfigError("please supply --eval or --purge, not both")
	case eval:
		return types.ModeEvaluate, nil
	case purge:
		return types.ModePurge, nil
	default:
		return types.ModeUnset, NewConfigError("please supply --eval or --purge")
	}
}

// ValidateInterval rejects retention windows outside [0, MaxDayInterval].
func ValidateInterval(days int) error {
	if days < 0 {
		return NewConfigError("day interval must not be negative, got %d", days)
	}
	if days > types.MaxDayInterval {
		return NewConfigError("day interval must be at most %d, got %d", types.MaxDayInterval, days)
	}
	return nil
}

// Validate checks a fully merged AppConfig.
func Validate(cfg types.AppConfig) error {
	if cfg.Mode != types.ModeEvaluate && cfg.Mode != types.ModePurge {
		return NewConfigError("please supply --eval or --purge")
	}
	if err := ValidateInterval(cfg.DayInterval); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Root) == "" {
		return NewConfigError("log root must not be empty")
	}
	if strings.TrimSpace(cfg.Prefix) == "" {
		return NewConfigError("unified2 prefix must not be empty")
	}
	if cfg.FileSizeMB <= 0 {
		return NewConfigError("file_size_mb must be positive, got %d", cfg.FileSizeMB)
	}
	// Retention below one day would prune the log files this run is writing.
	if cfg.LogRetention < 1 {
		return NewConfigError("log retention must be at least 1 day, got %d", cfg.LogRetention)
	}
	return nil
}
