package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath returns absPath relative to workDir, or absPath unchanged
// when workDir is empty or unrelated.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

// tally accumulates the per-rule and per-file views during one pass.
type tally struct {
	rules     map[string]*RuleAnalysis
	files     map[string]*FileAnalysis
	ruleFiles map[string]map[string]struct{}
	fileRules map[string]map[string]struct{}
}

func newTally() *tally {
	return &tally{
		rules:     make(map[string]*RuleAnalysis),
		files:     make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]struct{}),
		fileRules: make(map[string]map[string]struct{}),
	}
}

func (t *tally) file(path string) *FileAnalysis {
	fa, ok := t.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		t.files[path] = fa
		t.fileRules[path] = make(map[string]struct{})
	}
	return fa
}

func (t *tally) rule(d *lint.Diagnostic) *RuleAnalysis {
	ra, ok := t.rules[d.RuleID]
	if !ok {
		ra = &RuleAnalysis{RuleID: d.RuleID, RuleName: d.RuleName, Origin: string(d.Origin)}
		t.rules[d.RuleID] = ra
		t.ruleFiles[d.RuleID] = make(map[string]struct{})
	}
	return ra
}

func (t *tally) record(path, severity string, d *lint.Diagnostic) {
	t.file(path).add(severity)
	t.fileRules[path][d.RuleID] = struct{}{}

	t.rule(d).add(severity)
	t.ruleFiles[d.RuleID][path] = struct{}{}
}

func (t *tally) byRule(opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(t.rules))
	for id, ra := range t.rules {
		ra.Files = slices.Sorted(maps.Keys(t.ruleFiles[id]))
		out = append(out, *ra)
	}
	sortViews(out, opts, func(r RuleAnalysis) rank {
		return rank{key: r.RuleID, issues: r.Issues, errors: r.Errors, warnings: r.Warnings}
	})
	return out
}

func (t *tally) byFile(opts Options) []FileAnalysis {
	var out []FileAnalysis
	for path, fa := range t.files {
		if fa.Issues == 0 {
			continue
		}
		fa.Rules = slices.Sorted(maps.Keys(t.fileRules[path]))
		out = append(out, *fa)
	}
	sortViews(out, opts, func(f FileAnalysis) rank {
		return rank{key: f.Path, issues: f.Issues, errors: f.Errors, warnings: f.Warnings}
	})
	return out
}

// Analyze turns a runner.Result into a Report in a single pass over the
// diagnostics. A nil result yields an empty report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	for _, err := range result.Errors {
		report.RunErrors = append(report.RunErrors, err.Error())
	}

	t := newTally()
	totals := &report.Totals
	for _, file := range result.Files {
		totals.Files++
		path := RelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			totals.FilesErrored++
			report.FileErrors = append(report.FileErrors, FileError{Path: path, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}
		totals.FilesWithIssues++

		for i := range file.Result.Diagnostics {
			d := &file.Result.Diagnostics[i]
			severity := string(d.Severity)
			if severity == "" {
				severity = string(config.SeverityWarning)
			}

			totals.add(severity)
			if d.Origin == lint.OriginParser {
				totals.ParserIssues++
			} else {
				totals.RuleIssues++
			}
			t.record(path, severity, d)

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, entryFor(path, severity, d, opts.RuleFormat))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = t.byRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = t.byFile(opts)
	}
	return report
}

func entryFor(path, severity string, d *lint.Diagnostic, format config.RuleFormat) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		RuleID:      d.RuleID,
		RuleName:    d.RuleName,
		Rule:        config.FormatRuleID(format, d.RuleID, d.RuleName),
		Origin:      string(d.Origin),
		Severity:    severity,
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

// rank is the sortable projection shared by the per-rule and per-file views.
type rank struct {
	key                      string
	issues, errors, warnings int
}

// sortViews orders views by opts.SortBy. Ties always fall back to the key so
// output is deterministic. Alphabetical and severity orders ignore SortDesc.
func sortViews[T any](views []T, opts Options, project func(T) rank) {
	slices.SortFunc(views, func(a, b T) int {
		left, right := project(a), project(b)
		var c int
		switch opts.SortBy {
		case SortByAlpha:
		case SortBySeverity:
			c = cmp.Or(
				cmp.Compare(right.errors, left.errors),
				cmp.Compare(right.warnings, left.warnings),
				cmp.Compare(right.issues, left.issues),
			)
		default:
			c = cmp.Compare(left.issues, right.issues)
			if opts.SortDesc {
				c = -c
			}
		}
		return cmp.Or(c, cmp.Compare(left.key, right.key))
	})
}
