package analysis

import (
	"time"

	"github.com/yaklabco/razorlint/pkg/config"
)

// Report is the aggregated view of one run that every renderer draws from.
// Analyze builds it once; renderers never walk runner results themselves.
type Report struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Totals    Totals    `json:"summary"`

	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`

	// FileErrors are templates that could not be read. RunErrors are
	// failures with no template attached, such as an undiscoverable path.
	FileErrors []FileError `json:"fileErrors,omitempty"`
	RunErrors  []string    `json:"runErrors,omitempty"`
}

// Counts tallies diagnostics by severity. It is embedded in every
// aggregate so JSON output stays flat.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *Counts) add(severity string) {
	c.Issues++
	switch config.Severity(severity) {
	case config.SeverityError:
		c.Errors++
	case config.SeverityWarning:
		c.Warnings++
	case config.SeverityInfo:
		c.Infos++
	}
}

// Totals aggregates the whole run.
type Totals struct {
	Counts

	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	ParserIssues    int `json:"parserIssues"`
	RuleIssues      int `json:"ruleIssues"`
}

func (t Totals) HasIssues() bool { return t.Issues > 0 }
func (t Totals) HasErrors() bool { return t.Errors > 0 }

// FileAnalysis is the per-template view. Rules lists the distinct rule and
// diagnostic IDs reported for the file.
type FileAnalysis struct {
	Path string `json:"path"`
	Counts
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis is the per-rule view. Parser diagnostic kinds appear here
// too, with Origin "parser".
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Origin   string `json:"origin"`
	Counts
	Files []string `json:"files,omitempty"`
}

// DiagnosticEntry is one finding with its path made relative and its rule
// label formatted.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Rule     string `json:"rule"`
	Origin   string `json:"origin"`
	Severity string `json:"severity"`
	Message  string `json:"message"`

	Offset      int `json:"offset"`
	Length      int `json:"length"`
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`

	Suggestion string `json:"suggestion,omitempty"`
}

// FileError records a template that could not be linted.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
