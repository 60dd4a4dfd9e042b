package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/razorlint/pkg/config"
)

const envVarPrefix = "RAZORLINT_"

// LookupFunc retrieves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envVar binds one RAZORLINT_* variable to the config field it overrides.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, name, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, _, value string) error {
		set(cfg, value)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, _, value string) error {
		set(cfg, splitList(value))
		return nil
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"DESIGN_TIME", "Keep whitespace in markup: true or false", func(cfg *config.Config, name, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
		}
		cfg.DesignTime = b
		return nil
	}},
	{"LANGUAGE_VERSION", "Grammar revision: 1.0, 1.1, 2.0 or latest",
		stringVar(func(cfg *config.Config, v string) { cfg.LanguageVersion = v })},
	{"SEVERITY_DEFAULT", "Default rule severity: error, warning or info",
		stringVar(func(cfg *config.Config, v string) { cfg.SeverityDefault = v })},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, name, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, value)
		}
		cfg.Jobs = n
		return nil
	}},
	{"FORMAT", "Output format: text, json, sarif or summary",
		stringVar(func(cfg *config.Config, v string) { cfg.Format = config.OutputFormat(v) })},
	{"RULE_FORMAT", "Rule identifiers in output: name, id or combined",
		stringVar(func(cfg *config.Config, v string) { cfg.RuleFormat = config.RuleFormat(v) })},
	{"EXTENSIONS", "Comma-separated template extensions",
		listVar(func(cfg *config.Config, v []string) { cfg.Extensions = v })},
	{"IGNORE", "Comma-separated ignore globs",
		listVar(func(cfg *config.Config, v []string) { cfg.Ignore = v })},
	{"ENABLE", "Comma-separated rules to enable",
		listVar(func(cfg *config.Config, v []string) { cfg.EnableRules = v })},
	{"DISABLE", "Comma-separated rules or diagnostics to disable",
		listVar(func(cfg *config.Config, v []string) { cfg.DisableRules = v })},
}

// ApplyEnv overlays RAZORLINT_* variables found by lookup onto cfg.
// Unset and empty variables are skipped. A nil lookup reads the process
// environment.
func ApplyEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := v.apply(cfg, name, value); err != nil {
			return err
		}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnvVarHelp returns "NAME  description" lines for every supported variable,
// sorted by name.
func EnvVarHelp() []string {
	width := 0
	for _, v := range envVars {
		width = max(width, len(envVarPrefix+v.suffix))
	}

	lines := make([]string, 0, len(envVars))
	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		lines = append(lines, name+strings.Repeat(" ", width-len(name)+2)+v.description)
	}
	slices.Sort(lines)
	return lines
}
