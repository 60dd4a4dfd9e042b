package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/razorlint/internal/ui/pretty"
)

// HelpFormatter renders cobra help and usage text with pretty styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter resolves colorMode against writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.writeUsage(c.OutOrStdout(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.writeHelp(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) writeHelp(w io.Writer, cmd *cobra.Command) error {
	var sb strings.Builder

	if cmd.Runnable() || cmd.HasSubCommands() {
		sb.WriteString(h.styles.Command.Render(cmd.CommandPath()))
		if cmd.Version != "" {
			sb.WriteString(" " + h.styles.Dim.Render(cmd.Version))
		}
		sb.WriteString("\n\n")
	}

	about := cmd.Long
	if about == "" {
		about = cmd.Short
	}
	if about != "" {
		sb.WriteString(trimTrailingWhitespace(about) + "\n\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write help: %w", err)
	}
	return h.writeUsage(w, cmd)
}

func (h *HelpFormatter) writeUsage(w io.Writer, cmd *cobra.Command) error {
	var sb strings.Builder

	h.section(&sb, "Usage:")
	if cmd.Runnable() {
		sb.WriteString("  " + h.styles.Command.Render(cmd.UseLine()) + "\n")
	}
	if cmd.HasAvailableSubCommands() {
		sb.WriteString("  " + h.styles.Command.Render(cmd.CommandPath()+" [command]") + "\n")
	}

	if len(cmd.Aliases) > 0 {
		h.section(&sb, "Aliases:")
		sb.WriteString("  " + h.styles.Dim.Render(strings.Join(cmd.Aliases, ", ")) + "\n")
	}

	if cmd.HasExample() {
		h.section(&sb, "Examples:")
		sb.WriteString(h.styles.Dim.Render(cmd.Example) + "\n")
	}

	if cmd.HasAvailableSubCommands() {
		h.section(&sb, "Available Commands:")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			name := padRight(sub.Name(), sub.NamePadding())
			sb.WriteString("  " + h.styles.Subcommand.Render(name) + " " + sub.Short + "\n")
		}
	}

	if cmd.HasAvailableLocalFlags() {
		h.section(&sb, "Flags:")
		sb.WriteString(h.flagUsages(cmd.LocalFlags().FlagUsages()))
	}

	if cmd.HasAvailableInheritedFlags() {
		h.section(&sb, "Global Flags:")
		sb.WriteString(h.flagUsages(cmd.InheritedFlags().FlagUsages()))
	}

	if cmd.HasAvailableSubCommands() {
		hint := cmd.CommandPath() + " [command] --help"
		fmt.Fprintf(&sb, "\nUse %q for more information about a command.\n", hint)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}

func (h *HelpFormatter) section(sb *strings.Builder, title string) {
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(h.styles.Heading.Render(title) + "\n")
}

// flagUsages styles pflag's "  -f, --flag type   description" lines.
func (h *HelpFormatter) flagUsages(usages string) string {
	var sb strings.Builder
	for line := range strings.Lines(usages) {
		line = strings.TrimSuffix(line, "\n")
		sb.WriteString(h.flagLine(line) + "\n")
	}
	return sb.String()
}

func (h *HelpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	// pflag separates the flag column from its description with at least two spaces.
	idx := strings.Index(body, "  ")
	if idx < 0 {
		return line
	}
	def, desc := body[:idx], strings.TrimLeft(body[idx:], " ")

	fields := strings.Fields(def)
	for i, field := range fields {
		if name, ok := strings.CutSuffix(field, ","); ok && strings.HasPrefix(name, "-") {
			fields[i] = h.styles.Flag.Render(name) + ","
			continue
		}
		if strings.HasPrefix(field, "-") {
			fields[i] = h.styles.Flag.Render(field)
			continue
		}
		fields[i] = h.styles.Dim.Render(field)
	}
	return indent + strings.Join(fields, " ") + "   " + desc
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
