package pretty

import (
	"strconv"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
)

const (
	diagnosticIndent = "  "
	suggestionIndent = "    "
	contextIndent    = "        "

	// tabCells is how wide lipgloss renders a tab.
	tabCells = 4
)

// DiagnosticView tunes FormatDiagnostic.
type DiagnosticView struct {
	// RuleFormat picks the label in parentheses; empty means IDs.
	RuleFormat config.RuleFormat

	// SourceLine is the template line the diagnostic starts on. When set it
	// is printed with a caret under the reported columns.
	SourceLine string
}

// FormatDiagnostic renders d as
//
//	path:line:col  severity  message  (rule)
//
// optionally followed by the source line, a caret marker and a suggestion.
func (s *Styles) FormatDiagnostic(d *lint.Diagnostic, view DiagnosticView) string {
	format := view.RuleFormat
	if format == "" {
		format = config.RuleFormatID
	}

	var sb strings.Builder
	sb.WriteString(diagnosticIndent)
	sb.WriteString(s.FilePath.Render(d.FilePath) + ":" + strconv.Itoa(d.StartLine) + ":" + strconv.Itoa(d.StartColumn))
	sb.WriteString("  " + s.FormatSeverity(d.Severity))
	sb.WriteString("  " + s.Message.Render(d.Message))
	sb.WriteString("  " + s.RuleID.Render("("+config.FormatRuleID(format, d.RuleID, d.RuleName)+")"))
	sb.WriteByte('\n')

	if view.SourceLine != "" {
		sb.WriteString(s.FormatSourceContext(view.SourceLine, d.StartColumn, underlineEnd(d, view.SourceLine)))
	}
	if d.Suggestion != "" {
		sb.WriteString(suggestionIndent + s.Dim.Render("Suggestion:") + " " + s.Suggestion.Render(d.Suggestion) + "\n")
	}
	return sb.String()
}

// underlineEnd is the last column to mark on the first line of d. Ranges
// that continue onto later lines are marked to the end of the line.
func underlineEnd(d *lint.Diagnostic, line string) int {
	switch {
	case d.EndLine > d.StartLine:
		return len([]rune(line))
	case d.EndLine == d.StartLine && d.EndColumn > d.StartColumn:
		return d.EndColumn
	default:
		return d.StartColumn
	}
}

func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render(string(sev))
	case config.SeverityWarning:
		return s.Warning.Render(string(sev))
	case config.SeverityInfo:
		return s.Info.Render(string(sev))
	}
	return string(sev)
}

// FormatSourceContext prints line and, when startColumn is positive, a
// marker under the inclusive rune columns startColumn..endColumn.
func (s *Styles) FormatSourceContext(line string, startColumn, endColumn int) string {
	out := contextIndent + s.SourceLine.Render(line) + "\n"
	if startColumn < 1 {
		return out
	}
	pad, marker := caret(line, startColumn, endColumn)
	return out + contextIndent + pad + s.Caret.Render(marker) + "\n"
}

// caret measures in grapheme clusters, since that is what a terminal
// draws, while columns count runes.
func caret(line string, startColumn, endColumn int) (pad, marker string) {
	runes := []rune(line)
	start := min(startColumn-1, len(runes))
	end := min(max(endColumn, startColumn), len(runes))

	var sb strings.Builder
	for _, g := range graphemes(string(runes[:start])) {
		if g == "\t" {
			sb.WriteString(strings.Repeat(" ", tabCells))
			continue
		}
		sb.WriteByte(' ')
	}

	cells := 1
	if end > start {
		cells = max(len(graphemes(string(runes[start:end]))), 1)
	}
	return sb.String(), "^" + strings.Repeat("~", cells-1)
}

func graphemes(text string) []string {
	tokens, err := textseg.AllTokens([]byte(text), textseg.ScanGraphemeClusters)
	if err != nil {
		return strings.Split(text, "")
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = string(tok)
	}
	return out
}

// FormatFileHeader is the line above a file's diagnostics in grouped
// output.
func (s *Styles) FormatFileHeader(path string, issues int) string {
	header := s.FilePath.Render(path)
	if issues == 0 {
		return header
	}
	return header + s.Dim.Render(" ("+count(issues, "issue")+")")
}
