package maintenance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Cutoff returns the epoch second before which a unified2 file is eligible.
//
// cutoff = now - days*86400, truncated to whole seconds. With days == 0 the
// cutoff is the current second, so a file stamped "now" is kept.
func Cutoff(now time.Time, days int) int64 {
	return now.Unix() - int64(days)*secondsPerDay
}

// IsTooOld reports whether a file stamped with epoch falls before cutoff.
// The comparison is strict: a file exactly at the cutoff is retained.
func IsTooOld(epoch, cutoff int64) bool {
	return epoch < cutoff
}

// IsFileOlder reports whether info's ModTime is strictly before now - days.
//
// Notes:
//   - Unified2 files are aged by the epoch in their name, never by mtime. The
//     sensor may touch or copy them, so mtime says nothing about capture time.
//   - This is only used for pruning our own log files.
func IsFileOlder(info os.FileInfo, days int) bool {
	cutoff := time.Now().AddDate(0, 0, -days)
	return info.ModTime().Before(cutoff)
}

// RemoveOldLogs deletes *.log files older than `days` inside logPath.
//
// Why this exists:
//   - The logger writes three files per day (main, count, errors). A cron job
//     running nightly would grow logPath without bound.
//
// Behavior:
//   - Operates only on the top level of logPath and skips subdirectories.
//   - Best-effort per file: a file that cannot be removed is skipped.
//   - A missing logPath is created; there is nothing to prune in that case.
//
// Notes:
//   - days must be at least 1. Today's files were written moments ago by this
//     run, and a zero window would delete them, including errors_<date>.log,
//     which is the only record of per-file delete failures.
//
// Errors are returned when days is below 1 or when logPath itself is
// unusable (not a directory, unreadable, or cannot be created).
func RemoveOldLogs(logPath string, days int) (int, error) {
	if days < 1 {
		return 0, fmt.Errorf("log retention must be at least 1 day, got %d", days)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		if err := os.MkdirAll(logPath, 0o755); err != nil {
			return 0, fmt.Errorf("create log path: %w", err)
		}
		return 0, nil
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("log path is not a directory: %s", logPath)
	}

	entries, err := os.ReadDir(logPath)
	if err != nil {
		return 0, fmt.Errorf("read log folder contents: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		if IsFileOlder(fi, days) {
			if err := os.Remove(filepath.Join(logPath, entry.Name())); err != nil {
				continue
			}
			removed++
		}
	}

	return removed, nil
}
