package utils

import (
	"os"
	"path/filepath"
)

// ExeDir returns the directory containing the currently running executable.
//
// Why this exists:
//   - The cleanup usually runs from cron or a systemd timer, where the working
//     directory is / or the service user's home.
//   - Anchoring config/ and logs/ next to the binary keeps a sensor install
//     self-contained.
//
// Behavior:
//   - Resolves symlinks, so /usr/local/bin/unified2-cleanup pointing into
//     /opt/unified2-cleanup/ finds /opt/unified2-cleanup/config.
//
// Errors:
//   - Returned when the executable path cannot be resolved. DefaultDirs falls
//     back to os.Getwd() in that case.
func ExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	// Follow the symlink to the real install directory.
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}

	return filepath.Dir(exe), nil
}

// DefaultDirs returns the default config and log directories for the
// running binary: <exe dir>/config and <exe dir>/logs.
func DefaultDirs() (configDir, logDir string) {
	root, err := ExeDir()
	if err != nil {
		root, _ = os.Getwd()
	}
	return filepath.Join(root, "config"), filepath.Join(root, "logs")
}
