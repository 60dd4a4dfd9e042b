package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/internal/configloader"
	"github.com/yaklabco/razorlint/internal/logging"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/lint"
	_ "github.com/yaklabco/razorlint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/razorlint/pkg/parser/razor"
	"github.com/yaklabco/razorlint/pkg/reporter"
	"github.com/yaklabco/razorlint/pkg/runner"
)

type checkFlags struct {
	format          string
	languageVersion string
	designTime      bool
	jobs            int
	ignore          []string
	include         []string
	enable          []string
	disable         []string
	detect          bool
	followSymlinks  bool
	strict          bool
	noContext       bool
	compact         bool
	ruleFormat      string
	summaryOrder    string
	printConfig     bool
}

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check [paths...]",
		Aliases: []string{"lint"},
		Short:   "Lint Razor templates",
		Long:    checkLongDescription + "\n\nEnvironment:\n  " + strings.Join(configloader.EnvVarHelp(), "\n  "),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, info)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Parse Razor templates and report parser diagnostics and lint findings.

By default, checks all .cshtml, .vbhtml and .razor files in the current
directory and subdirectories. Specify paths to check specific files or
directories.

Exit status is 0 when no error-severity issue was found, 1 when one was,
2 for usage or configuration errors and 3 for internal failures.

Examples:
  razorlint check                        # Check current directory
  razorlint check Views/                 # Check a directory
  razorlint check Views/Home/Index.cshtml
  razorlint check --format sarif > out.sarif
  razorlint check --disable RZ1012       # Silence a parser diagnostic
  razorlint check --strict               # Fail on warnings too
  razorlint check --print-config         # Show merged settings`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		if errors.Is(err, configloader.ErrInvalidConfig) {
			return err
		}
		return fmt.Errorf("%w: load configuration: %w", ErrUsage, err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldLanguageVersion, cfg.LanguageVersion,
		logging.FieldDesignTime, cfg.DesignTime,
		logging.FieldJobs, cfg.Jobs,
	)

	if flags.printConfig {
		return printResolvedConfig(cmd, cfg, loadResult.LoadedFrom)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageErrorf("%v", err)
	}

	templateParser, err := razor.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	engine := lint.NewEngine(templateParser, lint.DefaultRegistry)
	checkRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      cfg.Extensions,
		DetectTemplates: flags.detect,
		IncludeGlobs:    flags.include,
		ExcludeGlobs:    cfg.Ignore,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            cfg.Jobs,
		Config:          cfg,
	}

	logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		if errors.Is(err, runner.ErrInvalidGlob) {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return fmt.Errorf("check failed: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		RuleFormat:   cfg.RuleFormat,
		SummaryOrder: config.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
		Registry:     lint.DefaultRegistry,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return errorForExitCode(ExitCodeFromResult(result, flags.strict), result)
}

// cliConfig builds the highest-precedence configuration layer from flags.
// Only explicitly changed flags override configuration files. Parser
// diagnostic kinds given to --enable or --disable set their severity instead
// of toggling a rule.
func cliConfig(cmd *cobra.Command, flags *checkFlags) *config.Config {
	cfg := &config.Config{
		LanguageVersion: flags.languageVersion,
		DesignTime:      flags.designTime,
		Ignore:          flags.ignore,
	}

	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}

	for _, key := range flags.enable {
		if kind, ok := diag.KindByName(key); ok {
			setDiagnostic(cfg, kind, string(config.SeverityError))
			continue
		}
		cfg.EnableRules = append(cfg.EnableRules, key)
	}
	for _, key := range flags.disable {
		if kind, ok := diag.KindByName(key); ok {
			setDiagnostic(cfg, kind, config.DiagnosticOff)
			continue
		}
		cfg.DisableRules = append(cfg.DisableRules, key)
	}

	return cfg
}

// printResolvedConfig writes the merged file-backed settings as YAML.
func printResolvedConfig(cmd *cobra.Command, cfg *config.Config, sources []string) error {
	header := config.DefaultTemplateHeader() + "\n#\n# Resolved configuration"
	for _, src := range sources {
		header += "\n#   from " + src
	}
	data, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func setDiagnostic(cfg *config.Config, kind diag.Kind, value string) {
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = make(map[string]string)
	}
	cfg.Diagnostics[string(kind)] = value
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, summary")
	cmd.Flags().StringVar(&flags.languageVersion, "language-version", "",
		"Razor language version: 1.0, 1.1, 2.0, latest")
	cmd.Flags().BoolVar(&flags.designTime, "design-time", false, "parse in design-time mode")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns a file must match to be checked")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or diagnostic codes to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or diagnostic codes to disable")
	cmd.Flags().BoolVar(&flags.detect, "detect", false, "also check files detected as Razor by name or content")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().BoolVar(&flags.printConfig, "print-config", false, "print the resolved configuration as YAML and exit")
}
