package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// File names written by "razorlint init". yaml.v3 reads the JSON variant
// as a flow-style YAML document.
const (
	ProjectConfigName     = ".razorlint.yml"
	ProjectConfigJSONName = ".razorlint.json"
)

//nolint:gochecknoglobals // read-only lookup tables
var (
	// projectConfigFiles in order of preference within one directory.
	projectConfigFiles = []string{
		ProjectConfigName, ".razorlint.yaml", "razorlint.yml", "razorlint.yaml", ProjectConfigJSONName,
	}
	sharedConfigFiles = []string{"config.yml", "config.yaml"}
	vcsMarkers        = []string{".git", ".hg", ".svn"}
)

// ConfigPaths holds the configuration files found for one run. Empty
// fields mean no file exists at that level.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Locations overrides the platform config directories. HomeDir stops the
// upward project search; it defaults to the user's home.
type Locations struct {
	SystemDir string
	UserDir   string
	HomeDir   string
}

func (l Locations) system() string {
	if l.SystemDir != "" {
		return l.SystemDir
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(cmp.Or(os.Getenv("ProgramData"), `C:\ProgramData`), "razorlint")
	}
	return "/etc/razorlint"
}

func (l Locations) user() string {
	if l.UserDir != "" {
		return l.UserDir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "razorlint")
	}
	if home := l.home(); home != "" {
		return filepath.Join(home, ".config", "razorlint")
	}
	return ""
}

func (l Locations) home() string {
	if l.HomeDir != "" {
		return l.HomeDir
	}
	home, _ := os.UserHomeDir()
	return home
}

// DiscoverPaths looks for config.{yml,yaml} in the system and user
// directories and for a project file above workDir.
func DiscoverPaths(ctx context.Context, fs afero.Fs, workDir string, locs Locations) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{System: firstFile(fs, locs.system(), sharedConfigFiles)}
	if dir := locs.user(); dir != "" {
		paths.User = firstFile(fs, dir, sharedConfigFiles)
	}

	project, err := FindProjectConfig(ctx, fs, workDir, locs.home())
	if err != nil {
		return nil, err
	}
	paths.Project = project
	return paths, nil
}

// FindProjectConfig walks from startDir toward the root and returns the
// first project config file. The walk ends without a match after the first
// directory holding a VCS marker, at homeDir, or at the filesystem root.
func FindProjectConfig(ctx context.Context, fs afero.Fs, startDir, homeDir string) (string, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if found := firstFile(fs, dir, projectConfigFiles); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(fs, dir) || dir == homeDir || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(fs afero.Fs, dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := fs.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isVCSRoot(fs afero.Fs, dir string) bool {
	for _, marker := range vcsMarkers {
		if ok, err := afero.IsDir(fs, filepath.Join(dir, marker)); err == nil && ok {
			return true
		}
	}
	return false
}
