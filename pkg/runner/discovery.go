package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/yaklabco/razorlint/pkg/langdetect"
)

// ErrInvalidGlob is returned for include or exclude patterns doublestar cannot parse.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// discoverer carries the state of one discovery pass.
type discoverer struct {
	fs         afero.Fs
	workDir    string
	extensions []string
	opts       Options
	visited    map[string]struct{}
}

// Discover finds template files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Problems with individual paths do not stop discovery: every file that could
// be found is returned together with the combined error of the paths that
// could not.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	found, err := discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return found.files, found.pathErrs
}

// discovery is the outcome of a discovery pass that was not aborted.
type discovery struct {
	files []string

	// pathErrs combines the problems with individual paths.
	pathErrs error
}

func discover(ctx context.Context, opts Options) (discovery, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return discovery{}, fmt.Errorf("resolve working directory: %w", err)
	}

	if err := validateGlobs(opts); err != nil {
		return discovery{}, err
	}

	d := &discoverer{
		fs:         opts.fs(),
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		visited:    make(map[string]struct{}),
	}

	seen := make(map[string]struct{})
	var files []string
	var pathErrs error

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return discovery{}, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := d.fs.Stat(absPath)
		if err != nil {
			pathErrs = multierr.Append(pathErrs, fmt.Errorf("stat %s: %w", inputPath, err))
			continue
		}

		if !info.IsDir() {
			// Explicit files skip the extension check but not the excludes.
			if !d.excluded(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := d.walk(ctx, absPath)
		if ctx.Err() != nil {
			return discovery{}, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		}
		pathErrs = multierr.Append(pathErrs, err)
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return discovery{files: files, pathErrs: pathErrs}, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// validateGlobs checks every include and exclude pattern up front.
func validateGlobs(opts Options) error {
	var errs error
	for _, pattern := range append(append([]string{}, opts.IncludeGlobs...), opts.ExcludeGlobs...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrInvalidGlob, pattern))
		}
	}
	return errs
}

// walk recursively walks a directory and returns matching template files.
func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
	if _, ok := d.visited[root]; ok {
		return nil, nil
	}
	d.visited[root] = struct{}{}

	var files []string
	var errs error

	err := afero.Walk(d.fs, root, func(path string, info fs.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				errs = multierr.Append(errs, fmt.Errorf("walk %s: %w", path, walkErr))
				return nil
			}
			return walkErr
		}

		name := info.Name()

		if info.IsDir() {
			// Skip hidden directories (except root).
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if path != root && d.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&fs.ModeSymlink != 0 {
			target, ok := d.resolveSymlink(path)
			if !ok {
				// Broken or unreadable link.
				return nil
			}
			if target.isDir {
				if !d.opts.FollowSymlinks {
					return nil
				}
				sub, err := d.walk(ctx, target.path)
				errs = multierr.Append(errs, err)
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		if d.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, errs
}

type linkTarget struct {
	path  string
	isDir bool
}

// resolveSymlink follows a symlink on filesystems that can read links.
func (d *discoverer) resolveSymlink(path string) (linkTarget, bool) {
	reader, ok := d.fs.(afero.LinkReader)
	if !ok {
		return linkTarget{}, false
	}

	target, err := reader.ReadlinkIfPossible(path)
	if err != nil {
		return linkTarget{}, false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	target = filepath.Clean(target)

	info, err := d.fs.Stat(target)
	if err != nil {
		return linkTarget{}, false
	}
	return linkTarget{path: target, isDir: info.IsDir()}, true
}

// matches checks if a discovered file matches the inclusion criteria.
func (d *discoverer) matches(path string) bool {
	if d.excluded(path) {
		return false
	}

	if len(d.opts.IncludeGlobs) > 0 && !matchesAny(d.rel(path), d.opts.IncludeGlobs) {
		return false
	}

	if hasMatchingExtension(path, d.extensions) {
		return true
	}

	if !d.opts.DetectTemplates {
		return false
	}

	content, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return false
	}
	return langdetect.IsTemplate(path, content)
}

func (d *discoverer) excluded(path string) bool {
	return matchesAny(d.rel(path), d.opts.ExcludeGlobs)
}

// rel returns path relative to the working directory with forward slashes.
func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesAny matches a slash-separated relative path against doublestar
// patterns. Patterns without a slash also match the base name, so "*.g.cshtml"
// excludes generated files at any depth.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}

		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, pathBase(relPath)); ok {
				return true
			}
		}
	}
	return false
}

func pathBase(relPath string) string {
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[i+1:]
	}
	return relPath
}
