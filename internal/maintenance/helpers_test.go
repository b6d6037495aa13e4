package maintenance

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// Test helpers
//
// These create real files/directories under t.TempDir() and keep test
// bodies small.

// --- Sandbox / Setup ---

// newSensorRoot creates an empty log root under a temp dir.
func newSensorRoot(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "snort")
	mustMkdirAll(t, root)
	return root
}

// newScenarioRoot builds the reference layout:
//
//	<root>/eth0/snort-unified2.100.0
//	<root>/eth0/snort-unified2.200.0
//	<root>/eth1/snort-unified2.50.0
func newScenarioRoot(t *testing.T) string {
	t.Helper()

	root := newSensorRoot(t)
	mustWriteFile(t, filepath.Join(root, "eth0", "snort-unified2.100.0"), "u2")
	mustWriteFile(t, filepath.Join(root, "eth0", "snort-unified2.200.0"), "u2")
	mustWriteFile(t, filepath.Join(root, "eth1", "snort-unified2.50.0"), "u2")
	return root
}

// fixedClock returns a clock pinned to the given epoch second.
func fixedClock(epoch int64) func() time.Time {
	return func() time.Time { return time.Unix(epoch, 0) }
}

// --- File helpers ---

func mustMkdirAll(t *testing.T, p string) {
	t.Helper()
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("mkdir %q: %v", p, err)
	}
}

// mustWriteFile writes a file, creating its parent directory first.
func mustWriteFile(t *testing.T, p string, contents string) {
	t.Helper()
	mustMkdirAll(t, filepath.Dir(p))
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %q: %v", p, err)
	}
}

// mustSetAgeDays sets file timestamps so mtime-based checks see it as old or recent.
func mustSetAgeDays(t *testing.T, p string, ageDays int) {
	t.Helper()
	mt := time.Now().AddDate(0, 0, -ageDays)
	if err := os.Chtimes(p, mt, mt); err != nil {
		t.Fatalf("chtimes %q: %v", p, err)
	}
}

// --- Assertions ---

func assertExists(t *testing.T, p string) {
	t.Helper()
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("expected file to exist: %q (err=%v)", p, err)
	}
}

func assertNotExists(t *testing.T, p string) {
	t.Helper()
	_, err := os.Stat(p)
	if !os.IsNotExist(err) {
		t.Fatalf("expected file to NOT exist: %q (stat err=%v)", p, err)
	}
}

// --- Fakes ---

type logEntry struct {
	level string
	msg   string
}

// recordingLogger captures emitted events so tests assert on them instead of
// parsing log text.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) add(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: fmt.Sprintf(format, args...)})
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.add("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.add("INFO", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.add("WARN", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.add("ERROR", format, args...) }
func (r *recordingLogger) Countf(format string, args ...any) { r.add("COUNT", format, args...) }

func (r *recordingLogger) count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

// recordingDeleter removes files from disk unless a path is listed in fail,
// in which case it returns that error without touching the file.
type recordingDeleter struct {
	fail    map[string]error
	removed []string
}

func (d *recordingDeleter) Remove(path string) error {
	if err, ok := d.fail[path]; ok {
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	d.removed = append(d.removed, path)
	return nil
}

func itoa(n int64) string { return fmt.Sprintf("%d", n) }
