package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/razorlint/internal/configloader"
	"github.com/yaklabco/razorlint/internal/logging"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = fsutil.DefaultFileMode

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	full     bool
	noBackup bool
	format   string
	output   string
	rules    []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new razorlint configuration file",
		Long: `Create a new .razorlint.yml configuration file in the current directory.
The generated file documents the language version, design-time mode, custom
directives, template extensions, and the severity of every rule and parser
diagnostic.

Examples:
  razorlint init                      Create a minimal .razorlint.yml
  razorlint init --full               Document every rule and diagnostic
  razorlint init --format json        Create .razorlint.json instead
  razorlint init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, afero.NewOsFs(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false,
		"Do not keep a .razorlint.bak copy when overwriting")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil, "Limit the rules section to these rule IDs")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .razorlint.yml or .razorlint.json)")

	return cmd
}

func runInit(cmd *cobra.Command, fs afero.Fs, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return usageErrorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = configloader.ProjectConfigJSONName
		} else {
			outputPath = configloader.ProjectConfigName
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	exists, err := afero.Exists(fs, absPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", outputPath, err)
	}
	if exists && !flags.force {
		overwrite, err := confirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), outputPath)
		if err != nil {
			return err
		}
		if !overwrite {
			return usageErrorf("file %q already exists; use --force to overwrite", outputPath)
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:         flags.full,
		Format:       flags.format,
		IncludeRules: flags.rules,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if exists && !flags.noBackup {
		backupPath, created, err := fsutil.CreateBackup(ctx, fs, absPath)
		if err != nil {
			return err
		}
		if created {
			logger.Info("saved previous configuration", logging.FieldPath, backupPath)
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, fs, absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !written {
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	}
	if exists {
		logger.Warn("overwrote existing file", logging.FieldPath, outputPath)
	} else {
		logger.Info("created configuration file", logging.FieldPath, outputPath)
	}
	if flags.full {
		logger.Info("full template includes all rules and parser diagnostics")
	}
	logger.Info("run 'razorlint rules' to see all available rules")

	return nil
}

// confirmOverwrite asks before replacing an existing file. Without a
// terminal on stdin it declines so scripts never block.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	if !isInteractive(in) {
		return false, nil
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive reports whether r is a terminal.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
