package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/razorlint/internal/ui/pretty"
	"github.com/yaklabco/razorlint/pkg/analysis"
	"github.com/yaklabco/razorlint/pkg/config"
)

const summaryWidth = 90

// column describes one summary table column. Cells are padded before they
// are styled so ANSI sequences never skew the alignment.
type column struct {
	title string
	width int
	right bool
}

func (c column) pad(s string) string {
	if c.right {
		return padLeft(s, c.width)
	}
	return padRight(s, c.width)
}

var (
	ruleColumns = []column{
		{title: "Rule", width: 30},
		{title: "Count", width: 7, right: true},
		{title: "Errors", width: 7, right: true},
		{title: "Warnings", width: 8, right: true},
		{title: "Origin", width: 8, right: true},
	}
	fileColumns = []column{
		{title: "File", width: 60},
		{title: "Count", width: 7, right: true},
		{title: "Errors", width: 7, right: true},
		{title: "Warnings", width: 8, right: true},
	}
)

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer prints per-rule and per-file tables followed by totals.
type SummaryRenderer struct {
	order  config.SummaryOrder
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a SummaryRenderer writing to opts.Writer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		order:  opts.SummaryOrder,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, msg := range report.RunErrors {
		fmt.Fprintln(r.out, r.styles.Error.Render("error: ")+msg)
	}
	if len(report.RunErrors) > 0 {
		fmt.Fprintln(r.out)
	}

	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		r.writeFileErrors(report.FileErrors)
		return nil
	}

	tables := []func(){
		func() { r.writeRules(report.ByRule) },
		func() { r.writeFiles(report.ByFile) },
	}
	if r.order == config.SummaryOrderFiles {
		tables[0], tables[1] = tables[1], tables[0]
	}
	tables[0]()
	fmt.Fprintln(r.out)
	tables[1]()

	r.writeFileErrors(report.FileErrors)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+r.totalsLine(report.Totals))
	return nil
}

func (r *SummaryRenderer) rule() string {
	return r.styles.TableSeparator.Render(strings.Repeat("─", summaryWidth))
}

func (r *SummaryRenderer) writeHeader(title string, cols []column) {
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, r.rule())
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = r.styles.TableHeader.Render(c.pad(c.title))
	}
	fmt.Fprintln(r.out, strings.Join(cells, " "))
	fmt.Fprintln(r.out, r.rule())
}

// rowStyle colours the leading cell of a row by its worst severity.
func (r *SummaryRenderer) rowStyle(errors, warnings int) lipgloss.Style {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow
	case warnings > 0:
		return r.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

func (r *SummaryRenderer) writeRules(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}
	r.writeHeader("Rules Summary", ruleColumns)

	for _, ra := range rules {
		name := ra.RuleName
		if name == "" {
			name = ra.RuleID
		}
		if limit := ruleColumns[0].width - 2; len(name) > limit {
			name = name[:limit] + "…"
		}

		fmt.Fprintln(r.out, strings.Join([]string{
			r.rowStyle(ra.Errors, ra.Warnings).Render(ruleColumns[0].pad(name)),
			ruleColumns[1].pad(strconv.Itoa(ra.Issues)),
			ruleColumns[2].pad(strconv.Itoa(ra.Errors)),
			ruleColumns[3].pad(strconv.Itoa(ra.Warnings)),
			r.styles.Dim.Render(ruleColumns[4].pad(ra.Origin)),
		}, " "))
	}
}

func (r *SummaryRenderer) writeFiles(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}
	r.writeHeader("Files Summary", fileColumns)

	for _, fa := range files {
		path := fa.Path
		if limit := fileColumns[0].width - 2; len(path) > limit {
			path = "…" + path[len(path)-(limit-1):]
		}

		fmt.Fprintln(r.out, strings.Join([]string{
			r.rowStyle(fa.Errors, fa.Warnings).Render(fileColumns[0].pad(path)),
			fileColumns[1].pad(strconv.Itoa(fa.Issues)),
			fileColumns[2].pad(strconv.Itoa(fa.Errors)),
			fileColumns[3].pad(strconv.Itoa(fa.Warnings)),
		}, " "))
	}
}

func (r *SummaryRenderer) writeFileErrors(errs []analysis.FileError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Not Linted"))
	fmt.Fprintln(r.out, r.rule())
	for _, fe := range errs {
		fmt.Fprintln(r.out, r.styles.TableErrorRow.Render(fe.Path), r.styles.Dim.Render(fe.Message))
	}
}

// totalsLine renders "N issues (E errors, W warnings) in F files [P parser, R rule]".
func (r *SummaryRenderer) totalsLine(t analysis.Totals) string {
	var sb strings.Builder
	sb.WriteString(plural(t.Issues, "issue"))

	var bySeverity []string
	if t.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(strconv.Itoa(t.Errors)+" errors"))
	}
	if t.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(strconv.Itoa(t.Warnings)+" warnings"))
	}
	if len(bySeverity) > 0 {
		sb.WriteString(" (" + strings.Join(bySeverity, ", ") + ")")
	}

	sb.WriteString(" in " + plural(t.FilesWithIssues, "file"))

	if t.ParserIssues > 0 && t.RuleIssues > 0 {
		sb.WriteString(" " + r.styles.Dim.Render(fmt.Sprintf("[%d parser, %d rule]", t.ParserIssues, t.RuleIssues)))
	}
	return sb.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
