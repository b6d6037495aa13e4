package maintenance

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// InterfaceDirectories returns the absolute paths of the capture interface
// directories under root, i.e. its immediate subdirectories.
//
// Non-directory entries are skipped silently. Symlinks are followed so a
// linked interface directory still counts. A root that is missing or cannot
// be listed yields a *ScanError; a missing root also matches ErrRootNotFound.
func InterfaceDirectories(root string, log Logger) ([]string, error) {
	log.Debugf("Path of log root: %s", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ScanError{Path: root, Err: ErrRootNotFound}
		}
		return nil, &ScanError{Path: root, Err: err}
	}

	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		candidate := filepath.Join(root, entry.Name())
		log.Debugf("Checking if %s is a directory", candidate)

		if !isDirEntryDir(candidate, entry) {
			continue
		}

		dirs = append(dirs, candidate)
		log.Debugf("%s added to list of interface directories", candidate)
	}
	return dirs, nil
}

// Unified2Files returns the names (not paths) of the entries in ifaceDir
// whose name starts with prefix. Subdirectories are ignored; the scan never
// recurses past the interface level.
func Unified2Files(ifaceDir, prefix string, log Logger) ([]string, error) {
	log.Debugf("Checking contents of %s for prefix %q", ifaceDir, prefix)

	entries, err := os.ReadDir(ifaceDir)
	if err != nil {
		return nil, &ScanError{Path: ifaceDir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		log.Debugf("%s matches prefix, appending to list of unified2 files", entry.Name())
		names = append(names, entry.Name())
	}
	return names, nil
}

// isDirEntryDir resolves symlinks before deciding whether entry is a directory.
func isDirEntryDir(path string, entry os.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}
