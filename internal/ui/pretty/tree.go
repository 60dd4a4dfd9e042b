package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/razorlint/pkg/syntax"
)

const tokenKindWidth = 24

// FormatToken formats one token as "line:col  Kind  "content"" with
// 1-based positions. Markup and code kinds are coloured apart.
func (s *Styles) FormatToken(tok syntax.Token) string {
	kind := fmt.Sprintf("%-*s", tokenKindWidth, tok.Kind.String())

	var styled string
	switch tok.Kind.Grammar() {
	case syntax.GrammarMarkup:
		styled = s.TokenMarkup.Render(kind)
	case syntax.GrammarCode:
		styled = s.TokenCode.Render(kind)
	default:
		styled = s.TokenKind.Render(kind)
	}

	position := fmt.Sprintf("%4d:%-4d", tok.Start.LineIndex+1, tok.Start.CharacterIndex+1)
	return s.Location.Render(position) + " " + styled + " " + fmt.Sprintf("%q", tok.Content)
}

// FormatDump styles the output of syntax.DumpString: the "<kind> block" and
// "<kind> span" heads are highlighted and the remainder is dimmed.
func (s *Styles) FormatDump(dump string) string {
	var builder strings.Builder

	for _, line := range strings.SplitAfter(dump, "\n") {
		if line == "" {
			continue
		}

		body := strings.TrimSuffix(line, "\n")
		trimmed := strings.TrimLeft(body, " ")
		indent := body[:len(body)-len(trimmed)]

		builder.WriteString(indent)
		builder.WriteString(s.formatDumpLine(trimmed))
		if strings.HasSuffix(line, "\n") {
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

func (s *Styles) formatDumpLine(line string) string {
	for _, marker := range []struct {
		sep   string
		style func(...string) string
	}{
		{" block - ", s.TreeBlock.Render},
		{" span - ", s.TreeSpan.Render},
	} {
		if idx := strings.Index(line, marker.sep); idx >= 0 {
			headEnd := idx + len(marker.sep) - len(" - ")
			return marker.style(line[:headEnd]) + s.TreeRange.Render(line[headEnd:])
		}
	}
	return line
}
