package maintenance

import (
	"errors"
	"io/fs"
	"os"
)

// Deleter abstracts the filesystem remove call so tests can prove which
// paths a purge touches and inject failures.
type Deleter interface {
	Remove(path string) error
}

// OSDeleter removes files from the real filesystem.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error { return os.Remove(path) }

// DeleteFile removes a single file through d.
//
// Contract:
//   - Hard delete, no undo.
//   - A file that is already gone is not an error: the sensor may rotate or
//     remove it between scan and delete. vanished reports that case.
//   - Any other failure is returned as a *DeleteError.
func DeleteFile(d Deleter, path string) (vanished bool, err error) {
	if err := d.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, &DeleteError{Path: path, Err: err}
	}
	return false, nil
}
