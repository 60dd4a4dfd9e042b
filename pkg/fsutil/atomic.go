package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// WriteAtomic replaces path with content by writing a sibling temp file and
// renaming it over the target. A zero mode means DefaultFileMode. When any
// step fails the target is untouched and the temp file is gone.
func WriteAtomic(ctx context.Context, fsys afero.Fs, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if info, err := fsys.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmpPath, err := writeTemp(fsys, path, content)
	if err == nil {
		err = fsys.Chmod(tmpPath, mode)
	}
	if err == nil {
		err = fsys.Rename(tmpPath, path)
	}
	if err != nil {
		if tmpPath != "" {
			_ = fsys.Remove(tmpPath)
		}
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// writeTemp writes and syncs content to a new file next to path. The temp
// path is returned even on failure so the caller can remove it.
func writeTemp(fsys afero.Fs, path string, content []byte) (tmpPath string, err error) {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { err = multierr.Append(err, tmp.Close()) }()

	if _, err := tmp.Write(content); err != nil {
		return tmp.Name(), fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return tmp.Name(), fmt.Errorf("sync temp file: %w", err)
	}
	return tmp.Name(), nil
}

// WriteAtomicIfChanged calls WriteAtomic unless path already holds content.
// It reports whether a write happened.
func WriteAtomicIfChanged(ctx context.Context, fsys afero.Fs, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write atomic: %w", err)
	}

	existing, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, fsys, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
