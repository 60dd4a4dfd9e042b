package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/razorlint/internal/ui/pretty"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/runner"
)

// TextReporter prints one line per diagnostic, optionally with the
// offending source line, followed by a one-line run summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result != nil {
		for _, runErr := range result.Errors {
			fmt.Fprintln(r.bw, r.styles.Error.Render("error: "+runErr.Error()))
		}
	}

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := r.writeFiles(result)
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.RunSummary(result.Stats))
	}

	return total, nil
}

// writeFiles prints every file's diagnostics in runner order and returns
// how many were printed. Grouped output adds a header and a blank line per
// file with findings.
func (r *TextReporter) writeFiles(result *runner.Result) int {
	var total int
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			r.writeFileError(path, file.Error)
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		diags := file.Result.Diagnostics
		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))
		}
		for i := range diags {
			r.writeDiagnostic(path, file.Result.File, &diags[i])
		}
		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
		total += len(diags)
	}
	return total
}

func (r *TextReporter) writeFileError(path string, err error) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

func (r *TextReporter) writeDiagnostic(path string, file *lint.File, diag *lint.Diagnostic) {
	shown := *diag
	shown.FilePath = path

	view := pretty.DiagnosticView{RuleFormat: r.opts.RuleFormat}
	if r.opts.ShowContext && file != nil && file.Document != nil {
		view.SourceLine = file.Document.LineContent(diag.StartLine - 1)
	}
	fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&shown, view))
}
