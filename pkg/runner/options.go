// Package runner discovers templates and lints them concurrently.
package runner

import (
	"github.com/spf13/afero"

	"github.com/yaklabco/razorlint/pkg/config"
)

// Options describes one run. The zero value checks every template with a
// default extension below the process working directory.
type Options struct {
	// Paths may mix files and directories. Relative paths resolve against
	// WorkingDir; empty means ".".
	Paths      []string
	WorkingDir string

	// Extensions are lowercase with a leading dot. Empty selects
	// config.DefaultExtensions.
	Extensions []string

	// DetectTemplates admits files with other extensions when their name or
	// content looks like Razor.
	DetectTemplates bool

	// IncludeGlobs and ExcludeGlobs are doublestar patterns matched against
	// slash-separated paths relative to WorkingDir. A file must match at
	// least one include pattern when any are given.
	IncludeGlobs   []string
	ExcludeGlobs   []string
	FollowSymlinks bool

	// Jobs bounds the worker pool; values below 1 use runtime.NumCPU.
	Jobs int

	Config *config.Config

	// Fs defaults to the OS filesystem.
	Fs afero.Fs
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return config.DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) > 0 {
		return o.Paths
	}
	return []string{"."}
}

func (o Options) fs() afero.Fs {
	if o.Fs != nil {
		return o.Fs
	}
	return afero.NewOsFs()
}
