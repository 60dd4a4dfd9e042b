package runner

import (
	"cmp"
	"fmt"

	"go.uber.org/multierr"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
)

// FileOutcome is the result of linting one template. Exactly one of Result
// and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats are counters accumulated while outcomes are collected.
// Diagnostics without a severity are counted as warnings.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int // linted, with or without findings
	FilesErrored    int // could not be read or parsed
	FilesWithIssues int

	DiagnosticsTotal      int
	DiagnosticsBySeverity map[string]int
	DiagnosticsByOrigin   map[lint.Origin]int
}

// Result holds every outcome of a run, sorted by path. Errors lists
// failures that belong to no template, such as a path that does not exist.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports whether an error-severity diagnostic was found.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports file or discovery failures. Findings do not count.
func (r *Result) HasErrors() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || len(r.Errors) > 0)
}

// Err joins Errors and every per-file error, prefixed with its path.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	err := multierr.Combine(r.Errors...)
	for _, f := range r.Files {
		if f.Error != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", f.Path, f.Error))
		}
	}
	return err
}

func newResult(capacity int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, capacity),
		Stats: Stats{
			FilesDiscovered:       capacity,
			DiagnosticsBySeverity: map[string]int{},
			DiagnosticsByOrigin:   map[lint.Origin]int{},
		},
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Result == nil:
		return
	}
	r.Stats.FilesProcessed++

	if outcome.Result.FileResult == nil || len(outcome.Result.Diagnostics) == 0 {
		return
	}
	r.Stats.FilesWithIssues++
	for _, d := range outcome.Result.Diagnostics {
		r.Stats.DiagnosticsTotal++
		r.Stats.DiagnosticsBySeverity[string(cmp.Or(d.Severity, config.SeverityWarning))]++
		r.Stats.DiagnosticsByOrigin[d.Origin]++
	}
}
