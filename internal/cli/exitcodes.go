package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/internal/configloader"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/runner"
)

// Exit codes for razorlint.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitIssues indicates diagnostics of error severity were reported.
	ExitIssues = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2

	// ExitInternal indicates an internal failure, such as an unreadable file.
	ExitInternal = 3
)

var (
	// ErrIssuesFound is returned when error-severity diagnostics were reported.
	ErrIssuesFound = errors.New("lint issues found")

	// ErrUsage marks invalid flags, arguments or paths.
	ErrUsage = errors.New("usage error")
)

// usageErrorf returns an error wrapping ErrUsage.
func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrUsage), errors.Is(err, configloader.ErrInvalidConfig):
		return ExitUsage
	default:
		return ExitInternal
	}
}

// ExitCodeFromResult determines the exit code for a finished run. Missing
// paths are usage errors and unreadable files internal errors; both win over
// lint issues. strict also fails the run on warnings.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if len(result.Errors) > 0 {
		return ExitUsage
	}
	if result.Stats.FilesErrored > 0 {
		return ExitInternal
	}

	if result.HasFailures() {
		return ExitIssues
	}
	if strict && result.Stats.DiagnosticsBySeverity[string(config.SeverityWarning)] > 0 {
		return ExitIssues
	}

	return ExitSuccess
}

// errorForExitCode converts an exit code back into a command error.
func errorForExitCode(code int, result *runner.Result) error {
	switch code {
	case ExitSuccess:
		return nil
	case ExitIssues:
		return ErrIssuesFound
	case ExitUsage:
		return fmt.Errorf("%w: %w", ErrUsage, result.Err())
	default:
		return result.Err()
	}
}

// usageArgs reports positional argument errors from validate as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageErrorf("%v", err)
		}
		return nil
	}
}
