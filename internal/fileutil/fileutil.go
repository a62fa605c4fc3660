// Package fileutil writes generated files.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirPermissions is the mode for directories created for output.
const DirPermissions os.FileMode = 0o755

// ErrOutOfDate is returned in check mode when a file would be written.
var ErrOutOfDate = errors.New("out of date")

// WriteOptions controls WriteFile.
type WriteOptions struct {
	// Check reports files that differ instead of writing them.
	Check bool
}

// WriteFile writes data to path through a temporary file and a rename. A file
// whose content already equals data is left alone. It reports whether the
// file was written.
func WriteFile(path string, data []byte, opt WriteOptions) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, data) {
			return false, nil
		}
		if opt.Check {
			return false, fmt.Errorf("%s differs: %w", path, ErrOutOfDate)
		}
	case errors.Is(err, fs.ErrNotExist):
		if opt.Check {
			return false, fmt.Errorf("%s would be created: %w", path, ErrOutOfDate)
		}
	default:
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return false, fmt.Errorf("mkdir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, ReadableByAll); err != nil {
		return false, fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("rename tmp: %w", err)
	}
	return true, nil
}
