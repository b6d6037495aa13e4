package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unified2-cleanup/internal/config"
	"unified2-cleanup/internal/logging"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes the root command in-process with the given stdin.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	cmd := newRootCmd("test")
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	code := run(context.Background(), cmd)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// newCLIRoot creates a log root with two old files and one recent file.
func newCLIRoot(t *testing.T) (root string, old []string, recent string) {
	t.Helper()

	root = filepath.Join(t.TempDir(), "snort")
	aged := time.Now().AddDate(0, 0, -40).Unix()
	fresh := time.Now().Add(-time.Hour).Unix()

	old = []string{
		filepath.Join(root, "eth0", "snort-unified2."+strconv.FormatInt(aged, 10)+".0"),
		filepath.Join(root, "eth1", "snort-unified2."+strconv.FormatInt(aged+1, 10)+".0"),
	}
	recent = filepath.Join(root, "eth0", "snort-unified2."+strconv.FormatInt(fresh, 10)+".0")

	for _, p := range append(append([]string{}, old...), recent) {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("u2"), 0o644))
	}
	return root, old, recent
}

func baseArgs(t *testing.T, root string) []string {
	return []string{"--root", root, "--config-dir", t.TempDir(), "--no-logs"}
}

func TestCLI_ModeValidation_Table(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no mode", nil},
		{"both modes", []string{"--eval", "--purge"}},
		{"negative interval", []string{"--eval", "-d", "-1"}},
		{"non numeric interval", []string{"--eval", "--day-interval", "abc"}},
		{"unknown flag", []string{"--eval", "--frobnicate"}},
		{"positional args", []string{"--eval", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A missing root proves no scan was attempted: a scan would fail
			// with exit code 1, not 2.
			missing := filepath.Join(t.TempDir(), "missing")
			args := append(baseArgs(t, missing), tt.args...)

			res := runCLI(t, "", args...)
			assert.Equal(t, ExitConfig, res.code, "stderr: %s", res.stderr)
			assert.Contains(t, res.stderr, "unified2-cleanup:")
		})
	}
}

func TestCLI_Evaluate(t *testing.T) {
	root, old, recent := newCLIRoot(t)

	res := runCLI(t, "", append(baseArgs(t, root), "--eval")...)
	require.Equal(t, ExitOK, res.code, "stderr: %s", res.stderr)

	assert.Contains(t, res.stdout, "Number of eligible files: 2")
	assert.Contains(t, res.stdout, "0.250GB")
	for _, p := range append(old, recent) {
		assert.FileExists(t, p)
	}
}

func TestCLI_PurgeDeclined(t *testing.T) {
	root, old, recent := newCLIRoot(t)

	res := runCLI(t, "n\n", append(baseArgs(t, root), "--purge")...)
	require.Equal(t, ExitOK, res.code, "stderr: %s", res.stderr)

	assert.Contains(t, res.stderr, `Type "Y" or "y" to continue`)
	for _, p := range append(old, recent) {
		assert.FileExists(t, p)
	}
}

func TestCLI_PurgeConfirmed(t *testing.T) {
	root, old, recent := newCLIRoot(t)

	res := runCLI(t, "Y\n", append(baseArgs(t, root), "--purge", "-d", "30")...)
	require.Equal(t, ExitOK, res.code, "stderr: %s", res.stderr)

	assert.Contains(t, res.stdout, "Files deleted: 2")
	for _, p := range old {
		assert.NoFileExists(t, p)
	}
	assert.FileExists(t, recent)
}

func TestCLI_PurgeYesSkipsPrompt(t *testing.T) {
	root, old, _ := newCLIRoot(t)

	res := runCLI(t, "", append(baseArgs(t, root), "--purge", "--yes")...)
	require.Equal(t, ExitOK, res.code, "stderr: %s", res.stderr)

	assert.NotContains(t, res.stderr, "WARNING: Type")
	for _, p := range old {
		assert.NoFileExists(t, p)
	}
}

func TestCLI_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	res := runCLI(t, "", append(baseArgs(t, missing), "--eval")...)
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "log root not found")
}

func TestCLI_ConfigFileSetsRoot(t *testing.T) {
	root, _, _ := newCLIRoot(t)
	cfgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, config.FileName), []byte("root: "+root+"\nfile_size_mb: 512\n"), 0o644))

	res := runCLI(t, "", "--config-dir", cfgDir, "--no-logs", "--eval")
	require.Equal(t, ExitOK, res.code, "stderr: %s", res.stderr)

	assert.Contains(t, res.stdout, "Number of eligible files: 2")
	assert.Contains(t, res.stdout, "1.000GB")
}

func TestCLI_DebugLogging(t *testing.T) {
	root, _, _ := newCLIRoot(t)

	quiet := runCLI(t, "", append(baseArgs(t, root), "--eval")...)
	loud := runCLI(t, "", append(baseArgs(t, root), "--eval", "--debug")...)

	assert.NotContains(t, quiet.stderr, "[DEBUG]")
	assert.Contains(t, loud.stderr, "[DEBUG]")
	assert.Contains(t, loud.stderr, "[unified2_cleaner]")
}

func TestCLI_Version(t *testing.T) {
	res := runCLI(t, "", "--version")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "test")
}

func TestExitCode_Table(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config", config.NewConfigError("bad"), ExitConfig},
		{"wrapped config", errors.Join(errors.New("ctx"), config.NewConfigError("bad")), ExitConfig},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestPromptConfirmer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close(); _ = w.Close() })

	log, err := logging.New("", logging.LogSettings{NoLogs: true, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	_, err = newPromptConfirmer(r, &bytes.Buffer{}, log).Confirm(ctx, "continue? ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPromptConfirmer_Answers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"yes", "y\n", "y"},
		{"windows line ending", "Y\r\n", "Y"},
		{"no trailing newline", "n", "n"},
		{"end of input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logging.New("", logging.LogSettings{NoLogs: true, Console: &bytes.Buffer{}})
			require.NoError(t, err)

			var out bytes.Buffer
			got, err := newPromptConfirmer(strings.NewReader(tt.input), &out, log).Confirm(context.Background(), "continue? ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "continue? ", out.String())
		})
	}
}
