// Package reporter writes lint results as styled text, JSON, SARIF or
// summary tables.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/razorlint/pkg/analysis"
	"github.com/yaklabco/razorlint/pkg/runner"
)

// Reporter writes the lint results of one run.
type Reporter interface {
	// Report writes result and returns the number of issues it contained.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an already analysed report. Renderers hold no run state.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// renderingReporter analyses a result and hands the report to a Renderer.
type renderingReporter struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = (*renderingReporter)(nil)

func (r *renderingReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, r.opts)
	if err := r.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRenderingReporter(renderer Renderer, opts Options) *renderingReporter {
	aopts := analysis.DefaultOptions()
	aopts.IncludeDiagnostics = false
	aopts.RuleFormat = opts.RuleFormat
	aopts.WorkingDir = opts.WorkingDir
	return &renderingReporter{renderer: renderer, opts: aopts}
}

// New returns the Reporter for opts.Format. A nil Writer means stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return newRenderingReporter(NewSummaryRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// displayPath makes path relative to the working directory when one is set.
func displayPath(path, workDir string) string {
	return analysis.RelativePath(path, workDir)
}
