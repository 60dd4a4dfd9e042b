package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/razorlint/internal/ui/pretty"
	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

func TestFormatDump_PlainIsUnchanged(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	res := parser.Parse(source.NewDocument("a.cshtml", "<p>@x</p>"), parser.DefaultOptions())
	dump := syntax.DumpString(res.Root)

	assert.Equal(t, dump, styles.FormatDump(dump))
}

func TestFormatDump_KeepsLinesWithoutMarkers(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "    free text\n", styles.FormatDump("    free text\n"))
	assert.Empty(t, styles.FormatDump(""))
}

func TestFormatToken(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tok := syntax.NewToken(syntax.Unknown, "x", source.NewLocation(4, 1, 2))

	got := styles.FormatToken(tok)
	assert.Contains(t, got, "   2:3   ")
	assert.Contains(t, got, `"x"`)
}
