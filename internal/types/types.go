package types

import (
	"unified2-cleanup/internal/logging"
)

// Mode selects what a run does with the Eligible Set.
type Mode int

const (
	// ModeUnset means neither --eval nor --purge was given.
	ModeUnset Mode = iota

	// ModeEvaluate reports the count and estimated size only.
	ModeEvaluate

	// ModePurge deletes eligible files after confirmation.
	ModePurge
)

func (m Mode) String() string {
	switch m {
	case ModeEvaluate:
		return "eval"
	case ModePurge:
		return "purge"
	default:
		return "unset"
	}
}

// Defaults shared by the CLI layer and the config file loader.
const (
	DefaultRoot         = "/var/log/snort"
	DefaultPrefix       = "snort-unified2"
	DefaultDayInterval  = 30
	DefaultFileSizeMB   = 128
	DefaultLogRetention = 30

	// MaxDayInterval bounds the retention window (roughly a century).
	MaxDayInterval = 36500
)

// AppConfig is the central configuration object for the application.
//
// It is built once by the CLI layer (flags merged over config.yaml merged over
// defaults), validated, and then passed read-only into app.Run.
type AppConfig struct {
	// Mode is exactly one of ModeEvaluate or ModePurge after validation.
	Mode Mode

	// DayInterval is the retention window in days.
	// Files whose embedded epoch is strictly before (now - DayInterval days)
	// are eligible. 0 means "anything stamped before the current second".
	DayInterval int

	// Root is the sensor log root. Each direct child directory is one
	// capture interface.
	Root string

	// Prefix is the filename prefix that identifies unified2 files.
	Prefix string

	// FileSizeMB is the assumed size of one unified2 file, used only for
	// the reclaimable-space estimate.
	FileSizeMB int

	// ConfigDir holds config.yaml and logging.json.
	ConfigDir string

	// LogRetention controls how long our own log files are kept (in days).
	LogRetention int

	// MetricsFile, when set, receives a Prometheus textfile-collector
	// snapshot of the run.
	MetricsFile string

	// AssumeYes answers the purge confirmation with "y" without prompting.
	AssumeYes bool

	LogSettings logging.LogSettings
}
