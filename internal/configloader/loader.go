// Package configloader resolves the configuration for one razorlint run.
// Files from the system, user and project levels are merged over the
// defaults, then RAZORLINT_* variables and command-line flags are applied
// and the result is validated.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/yaklabco/razorlint/internal/logging"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls Load. The zero value searches from the current
// directory on the OS filesystem.
type LoadOptions struct {
	WorkingDir string

	// ExplicitPath comes from --config and takes the place of the project
	// file.
	ExplicitPath string

	// CLIConfig holds values set by flags. It is merged last.
	CLIConfig *config.Config

	Fs        afero.Fs
	Locations Locations
	LookupEnv LookupFunc
}

// LoadResult is the resolved configuration and where it came from.
// LoadedFrom lists file paths in merge order.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load builds the configuration. Later sources win:
//
//	defaults < system < user < project or --config < RAZORLINT_* < flags
//
// All unreadable or malformed files are reported together.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, fs, workDir, opts.Locations)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg, err := mergeFiles(ctx, fs, paths, result)
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg, opts.LookupEnv); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	cfg = merge(cfg, opts.CLIConfig)
	result.Warnings = append(result.Warnings, canonicalizeRuleKeys(cfg, lint.DefaultRegistry)...)

	validation := Validate(cfg)
	if !validation.Valid() {
		var errs error
		for i := range validation.Errors {
			errs = multierr.Append(errs, &validation.Errors[i])
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	logging.FromContext(ctx).Debug("resolved config",
		logging.FieldLanguageVersion, cfg.LanguageVersion,
		logging.FieldDesignTime, cfg.DesignTime,
		logging.FieldFiles, len(result.LoadedFrom))

	result.Config = cfg
	return result, nil
}

func mergeFiles(ctx context.Context, fs afero.Fs, paths *ConfigPaths, result *LoadResult) (*config.Config, error) {
	layers := []struct{ level, path string }{
		{"system", paths.System},
		{"user", paths.User},
		{"project", paths.Project},
	}
	if paths.Explicit != "" {
		layers[2] = struct{ level, path string }{"explicit", paths.Explicit}
	}

	cfg := config.NewConfig()
	var errs error
	for _, l := range layers {
		if l.path == "" {
			continue
		}
		layer, err := readConfigFile(fs, l.path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("load %s config %s: %w", l.level, l.path, err))
			continue
		}
		cfg = merge(cfg, layer)
		result.LoadedFrom = append(result.LoadedFrom, l.path)
		logging.FromContext(ctx).Debug("loaded config", logging.FieldConfig, l.level, logging.FieldPath, l.path)
	}
	return cfg, errs
}

func readConfigFile(fs afero.Fs, path string) (*config.Config, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return config.FromYAML(content)
}

// canonicalizeRuleKeys rewrites rules entries keyed by rule name to the
// rule's ID. When both spellings are present the ID entry wins. Unknown
// keys are kept for validation to report.
func canonicalizeRuleKeys(cfg *config.Config, registry *lint.Registry) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	var warnings []string
	out := make(map[string]config.RuleConfig, len(cfg.Rules))
	ids := make(map[string]string, len(cfg.Rules))
	keys := slices.Sorted(maps.Keys(cfg.Rules))
	for _, key := range keys {
		if id, _, ok := registry.Resolve(key); ok {
			ids[key] = id
		} else {
			out[key] = cfg.Rules[key]
		}
	}

	// ID spellings first, so they claim the slot before names.
	byName := func(key string) int {
		if strings.EqualFold(key, ids[key]) {
			return 0
		}
		return 1
	}
	slices.SortStableFunc(keys, func(a, b string) int { return byName(a) - byName(b) })

	from := make(map[string]string, len(ids))
	for _, key := range keys {
		id, ok := ids[key]
		if !ok {
			continue
		}
		if first, dup := from[id]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using %q", first, key, id, first))
			continue
		}
		from[id] = key
		out[id] = cfg.Rules[key]
	}
	cfg.Rules = out
	return warnings
}
