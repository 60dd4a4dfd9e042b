// Package cli provides the Cobra command structure for razorlint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/internal/logging"
)

// BuildInfo is stamped into the binary through -ldflags.
type BuildInfo struct {
	Version, Commit, Date string
}

// NewRootCommand assembles the razorlint command tree. Flag and argument
// errors surface as ErrUsage so ExitCode maps them to status 2.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		configPath string
		color      string
	)

	rootCmd := &cobra.Command{
		Use:   "razorlint",
		Short: "A linter and syntax inspector for Razor templates",
		Long: `razorlint parses Razor templates (.cshtml, .vbhtml, .razor) into a
lossless syntax tree and reports parser diagnostics and lint findings.

Besides linting, it can print the token stream or the syntax tree of a single
template, which helps when debugging how a template is understood.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	global := rootCmd.PersistentFlags()
	global.BoolVar(&debug, "debug", false, "enable debug logging")
	global.StringVar(&configPath, "config", "", "use this config file instead of the project one")
	global.StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	rootCmd.AddCommand(
		newCheckCommand(info),
		newTokensCommand(),
		newTreeCommand(),
		newRulesCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
