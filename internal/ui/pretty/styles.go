// Package pretty renders diagnostics, syntax trees and summaries for the terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indices.
const (
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
	colorGrey    = "8"
	colorSilver  = "7"
)

// Styles groups the lipgloss styles used across razorlint output.
// A zero-colour Styles renders every string unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	TreeBlock   lipgloss.Style
	TreeSpan    lipgloss.Style
	TreeRange   lipgloss.Style
	TokenKind   lipgloss.Style
	TokenMarkup lipgloss.Style
	TokenCode   lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	// Command help.
	Heading    lipgloss.Style
	Command    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns coloured styles when colorEnabled, plain ones otherwise.
func NewStyles(colorEnabled bool) *Styles {
	paint := func(color string) lipgloss.Style {
		if !colorEnabled || color == "" {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Bold(true)
	}
	italic := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Italic(true)
	}

	return &Styles{
		Error:   bold(paint(colorRed)),
		Warning: bold(paint(colorYellow)),
		Info:    bold(paint(colorBlue)),

		FilePath:   bold(paint("")),
		Location:   paint(colorGrey),
		RuleID:     paint(colorGrey),
		Message:    paint(""),
		Suggestion: italic(paint(colorGreen)),
		SourceLine: paint(colorSilver),
		Caret:      paint(colorRed),

		TreeBlock:   bold(paint(colorCyan)),
		TreeSpan:    paint(colorMagenta),
		TreeRange:   paint(colorGrey),
		TokenKind:   paint(colorBlue),
		TokenMarkup: paint(colorGreen),
		TokenCode:   paint(colorYellow),

		SummaryTitle: bold(paint("")),
		SummaryValue: paint(""),
		Success:      bold(paint(colorGreen)),
		Failure:      bold(paint(colorRed)),

		TableHeader:    bold(paint(colorSilver)),
		TableErrorRow:  paint(colorRed),
		TableWarnRow:   paint(colorYellow),
		TableSeparator: paint(colorGrey),

		Heading:    bold(paint(colorYellow)),
		Command:    bold(paint(colorCyan)),
		Subcommand: paint(colorGreen),
		Flag:       paint(colorBlue),

		Dim:  paint(colorGrey),
		Bold: bold(paint("")),
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never") for w.
// Auto enables colour only for a terminal and only while NO_COLOR is unset.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
