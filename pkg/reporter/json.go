package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/runner"
)

const jsonVersion = "1.0.0"

// JSONOutput is the document written by JSONReporter.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Errors  []string         `json:"errors,omitempty"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult lists one template's diagnostics in source order, or the
// reason it could not be linted.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is a parser diagnostic or rule finding. Rule is the
// identifier rendered with the configured rule format.
type JSONDiagnostic struct {
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Rule        string `json:"rule"`
	Origin      string `json:"origin"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONSummary holds run totals.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByOrigin        map[string]int `json:"byOrigin"`
}

func (s *JSONSummary) count(d JSONDiagnostic) {
	s.TotalIssues++
	s.BySeverity[d.Severity]++
	s.ByOrigin[d.Origin]++
}

// JSONReporter writes results as a single JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSONReporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := r.document(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return doc.Summary.TotalIssues, nil
}

func (r *JSONReporter) document(result *runner.Result) *JSONOutput {
	doc := &JSONOutput{
		Version: jsonVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}, ByOrigin: map[string]int{}},
	}
	if result == nil {
		return doc
	}

	for _, runErr := range result.Errors {
		doc.Errors = append(doc.Errors, runErr.Error())
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Diagnostics: []JSONDiagnostic{},
		}
		doc.Summary.FilesChecked++

		if file.Error != nil {
			entry.Error = file.Error.Error()
			doc.Summary.FilesErrored++
		}
		if file.Result != nil && file.Result.FileResult != nil {
			for i := range file.Result.Diagnostics {
				jd := r.diagnostic(&file.Result.Diagnostics[i])
				entry.Diagnostics = append(entry.Diagnostics, jd)
				doc.Summary.count(jd)
			}
		}
		if len(entry.Diagnostics) > 0 {
			doc.Summary.FilesWithIssues++
		}
		doc.Files = append(doc.Files, entry)
	}
	return doc
}

func (r *JSONReporter) diagnostic(d *lint.Diagnostic) JSONDiagnostic {
	severity := d.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}
	return JSONDiagnostic{
		RuleID:      d.RuleID,
		RuleName:    d.RuleName,
		Rule:        config.FormatRuleID(r.opts.RuleFormat, d.RuleID, d.RuleName),
		Origin:      string(d.Origin),
		Severity:    string(severity),
		Message:     d.Message,
		Offset:      d.Offset,
		Length:      d.Length,
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
		Suggestion:  d.Suggestion,
	}
}
