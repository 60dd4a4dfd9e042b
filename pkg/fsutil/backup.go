package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".razorlint.bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to its sidecar backup before the caller replaces
// it. It returns the backup path and whether a backup was written; a missing
// original needs no backup.
//
// An existing backup is never overwritten, so repeated runs keep the oldest
// content.
func CreateBackup(ctx context.Context, fsys afero.Fs, path string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := BackupPath(path)

	exists, err := afero.Exists(fsys, backupPath)
	if err != nil {
		return "", false, fmt.Errorf("stat backup path: %w", err)
	}
	if exists {
		return backupPath, false, nil
	}

	stat, err := fsys.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("stat original for backup: %w", err)
	}
	if stat.IsDir() {
		return "", false, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, fsys, backupPath, content, stat.Mode().Perm()); err != nil {
		return "", false, fmt.Errorf("write backup: %w", err)
	}
	return backupPath, true, nil
}
