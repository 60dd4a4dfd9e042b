// Package fsutil provides safe file writes for razorlint: atomic replacement
// through a temp file and sidecar backups of files about to be overwritten.
// All functions operate on an afero.Fs so callers and tests can swap the
// filesystem.
package fsutil

import (
	"errors"
	"os"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// ErrIsDirectory indicates the path is a directory, not a file.
var ErrIsDirectory = errors.New("path is a directory")
