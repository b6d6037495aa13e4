package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Name is the logger name stamped on every line.
const Name = "unified2_cleaner"

// LogSettings controls where logs go.
//
// Modes:
//   - NoLogs=true  => console only. No log files are created.
//   - NoLogs=false => console plus daily files under LogDir.
type LogSettings struct {
	NoLogs bool
	LogDir string

	// Debug forces the DEBUG level on regardless of logging.json.
	Debug bool

	// Console receives every enabled line. nil means os.Stderr.
	Console io.Writer
}

// Logger is the single leveled logger of a run.
//
// It is built once in the CLI layer and passed down explicitly; nothing in
// the program reaches for a global logger.
type Logger struct {
	settings LogSettings
	console  io.Writer

	// levels stores enabled log levels loaded once at startup.
	levels map[string]bool

	// now is swapped in tests to pin timestamps.
	now func() time.Time

	// mu keeps lines whole across console and files.
	mu sync.Mutex
}

// New initializes a Logger.
//
// Behavior:
//   - Reads configDir/logging.json (if present) to determine enabled levels.
//   - settings.Debug switches DEBUG on after logging.json is applied.
//   - If settings.NoLogs is false, settings.LogDir must be set and is created
//     up front so permission problems fail the run before any work happens.
func New(configDir string, settings LogSettings) (*Logger, error) {
	levels, err := loadLevels(configDir)
	if err != nil {
		return nil, err
	}
	if settings.Debug {
		levels["DEBUG"] = true
	}

	if !settings.NoLogs {
		if settings.LogDir == "" {
			return nil, fmt.Errorf("log dir is empty (settings.LogDir)")
		}
		if err := os.MkdirAll(settings.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	console := settings.Console
	if console == nil {
		console = os.Stderr
	}

	return &Logger{
		settings: settings,
		console:  console,
		levels:   levels,
		now:      time.Now,
	}, nil
}

// loadLevels loads level enable/disable configuration from logging.json.
//
// Without logging.json, everything but DEBUG is enabled. Levels missing from
// the file are treated as enabled (see Enabled).
func loadLevels(configDir string) (map[string]bool, error) {
	defaults := map[string]bool{
		"DEBUG":   false,
		"COUNT":   true,
		"INFO":    true,
		"WARN":    true,
		"ERROR":   true,
		"SUCCESS": true,
	}

	if configDir == "" {
		return defaults, nil
	}

	path := filepath.Join(configDir, "logging.json")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, fmt.Errorf("read logging config: %w", err)
	}

	var levels map[string]bool
	if err := json.Unmarshal(b, &levels); err != nil {
		return nil, fmt.Errorf("parse logging config: %w", err)
	}

	normalized := make(map[string]bool, len(levels))
	for k, v := range levels {
		normalized[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	if _, ok := normalized["DEBUG"]; !ok {
		normalized["DEBUG"] = false
	}
	return normalized, nil
}

// Enabled returns whether a log level is enabled.
//
// A level present in config and set to false is disabled; an unknown level is
// enabled so new levels are not silently dropped.
func (l *Logger) Enabled(level string) bool {
	level = strings.ToUpper(strings.TrimSpace(level))

	enabled, ok := l.levels[level]
	if ok && !enabled {
		return false
	}
	return true
}

// Log writes a single line to the console and, unless NoLogs, to daily files.
//
// Output format:
//
//	[MM/DD/YY HH:MM:SS] [unified2_cleaner] [LEVEL] -> message
//
// File mode behavior:
//   - Every line goes to unified2_cleanup_YYYY-MM-DD.log
//   - COUNT lines also go to count_YYYY-MM-DD.log (run tallies)
//   - ERROR lines also go to errors_YYYY-MM-DD.log
func (l *Logger) Log(level, msg string) {
	level = strings.ToUpper(strings.TrimSpace(level))

	if !l.Enabled(level) {
		return
	}

	now := l.now()
	date := now.Format("2006-01-02")
	line := fmt.Sprintf("[%s] [%s] [%s] -> %s\n", now.Format("01/02/06 15:04:05"), Name, level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.console, line)

	if l.settings.NoLogs {
		return
	}

	mainFile := filepath.Join(l.settings.LogDir, fmt.Sprintf("unified2_cleanup_%s.log", date))
	if err := appendLine(mainFile, line); err != nil {
		fmt.Fprintf(l.console, "Error writing to log file: %v\n", err)
		return
	}

	if level == "COUNT" {
		countFile := filepath.Join(l.settings.LogDir, fmt.Sprintf("count_%s.log", date))
		if err := appendLine(countFile, line); err != nil {
			fmt.Fprintf(l.console, "Error writing to count log file: %v\n", err)
			return
		}
	}

	if level == "ERROR" {
		errorFile := filepath.Join(l.settings.LogDir, fmt.Sprintf("errors_%s.log", date))
		if err := appendLine(errorFile, line); err != nil {
			fmt.Fprintf(l.console, "Error writing to error log file: %v\n", err)
			return
		}
	}
}

// appendLine appends a single line to a file, creating it if needed.
// Each call opens and closes the file; a run writes few enough lines.
func appendLine(path string, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line)
	return err
}

func (l *Logger) Debug(msg string)   { l.Log("DEBUG", msg) }
func (l *Logger) Info(msg string)    { l.Log("INFO", msg) }
func (l *Logger) Warn(msg string)    { l.Log("WARN", msg) }
func (l *Logger) Error(msg string)   { l.Log("ERROR", msg) }
func (l *Logger) Success(msg string) { l.Log("SUCCESS", msg) }
func (l *Logger) Count(msg string)   { l.Log("COUNT", msg) }

func (l *Logger) Debugf(format string, args ...any)   { l.Debug(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)    { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)    { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)   { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Successf(format string, args ...any) { l.Success(fmt.Sprintf(format, args...)) }
func (l *Logger) Countf(format string, args ...any)   { l.Count(fmt.Sprintf(format, args...)) }
