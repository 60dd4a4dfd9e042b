package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/runner"
)

func count(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 && noun != "info" {
		s += "s"
	}
	return s
}

// RunSummary renders the closing line of a text report, for example
// "12 issues (8 errors, 4 warnings) in 3 files [9 parser, 3 rule]".
func (s *Styles) RunSummary(stats runner.Stats) string {
	var sb strings.Builder

	if stats.DiagnosticsTotal == 0 {
		sb.WriteString(s.Success.Render("No issues found"))
		sb.WriteString(s.Dim.Render(" (" + count(stats.FilesProcessed, "file") + " checked)"))
	} else {
		sb.WriteString(count(stats.DiagnosticsTotal, "issue"))

		var parts []string
		for _, sev := range []struct {
			key   string
			paint func(...string) string
		}{
			{"error", s.Error.Render},
			{"warning", s.Warning.Render},
			{"info", s.Info.Render},
		} {
			if n := stats.DiagnosticsBySeverity[sev.key]; n > 0 {
				parts = append(parts, sev.paint(count(n, sev.key)))
			}
		}
		if len(parts) > 0 {
			sb.WriteString(" (" + strings.Join(parts, ", ") + ")")
		}
		sb.WriteString(" in " + count(stats.FilesWithIssues, "file"))

		parser := stats.DiagnosticsByOrigin[lint.OriginParser]
		rule := stats.DiagnosticsByOrigin[lint.OriginRule]
		if parser > 0 && rule > 0 {
			sb.WriteString(s.Dim.Render(" [" + strconv.Itoa(parser) + " parser, " + strconv.Itoa(rule) + " rule]"))
		}
	}

	if stats.FilesErrored > 0 {
		sb.WriteString(", " + s.Failure.Render(count(stats.FilesErrored, "file")+" could not be linted"))
	}
	sb.WriteByte('\n')
	return sb.String()
}
