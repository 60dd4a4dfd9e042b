package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

func parse(t *testing.T, text string) *parser.Result {
	t.Helper()
	res := parser.Parse(source.NewDocument("test.cshtml", text), parser.DefaultOptions())
	require.NotNil(t, res)
	require.NotNil(t, res.Root)
	return res
}

func kinds(diags []diag.Diagnostic) []diag.Kind {
	out := make([]diag.Kind, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Kind)
	}
	return out
}

func TestParseCoversInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		"<p>Hello</p>",
		"<p class=\"a b\">Hi @name!</p>",
		"@foo.bar(1, 2)[0]",
		"@(1 + 2)",
		"@{ var x = 1; }\n<p>@x</p>",
		"@if (a) {\n  <b>yes</b>\n} else {\n  <i>no</i>\n}",
		"@foreach (var item in items) { <li>@item</li> }",
		"@* comment *@<p></p>",
		"@* unterminated",
		"<!-- html comment --><p/>",
		"<![CDATA[ x ]]>",
		"<!DOCTYPE html>",
		"<?xml version=\"1.0\"?>",
		"<script>if (a < b) { }</script>",
		"<input checked value='@v' />",
		"<a href=\"~/x\" data-x=\"@y\">z</a>",
		"user@example.com",
		"@@escaped",
		"@section Foo { <p>x</p> }",
		"@inherits Base<T>\n<p></p>",
		"@using System.Text\n",
		"@{ <text>raw</text> }",
		"@{ @:line @x\n }",
		"@{ <p> }",
		"@{ var s = \"abc }",
		"@{",
		"</p>",
		"@",
		"<",
		"@functions { int x; }",
		"@try { } catch (E e) when (x) { } finally { }",
		"@do { } while (x);",
		"@switch (x) { case 1: break; default: break; }",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			res := parse(t, input)
			assert.Equal(t, input, res.Root.Content())
			assert.Equal(t, syntax.BlockMarkup, res.Root.Kind)
		})
	}
}

func TestParseSpansAreContiguous(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<p>\n\t@* note *@\n</p>",
		"@section'\n@x\t@*{)]",
		"\r\n</@@\t\r\n@ @*@(@section",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			res := parse(t, input)
			end := 0
			for _, span := range syntax.Flatten(res.Root) {
				assert.Equal(t, end, span.Start().AbsoluteIndex, "span %s", span)
				end = span.Start().AbsoluteIndex + span.Length()
			}
			assert.Equal(t, len(input), end)
		})
	}
}

func TestParseRepeatedUnclosedConstructs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"call", strings.Repeat("@a( <p>", 1000)},
		{"explicit expression", strings.Repeat("@(x <b>", 1000)},
		{"call in attribute", strings.Repeat("<a b=\"@x( ", 3000)},
		{"call in section", strings.Repeat("@section S { <p> @f(", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var res *parser.Result
			require.NotPanics(t, func() {
				res = parser.Parse(source.NewDocument("test.cshtml", tt.input), parser.DefaultOptions())
			})
			require.NotNil(t, res)
			assert.Equal(t, tt.input, res.Root.Content())
			assert.NotEmpty(t, res.Diagnostics)
		})
	}
}

func TestParseEmptyDocumentHasMarker(t *testing.T) {
	t.Parallel()

	res := parse(t, "")
	spans := syntax.Flatten(res.Root)
	require.Len(t, spans, 1)
	assert.Equal(t, syntax.SpanMarkup, spans[0].Kind)
	assert.Empty(t, spans[0].Content())
	assert.Empty(t, res.Diagnostics)
}

func TestParseStatementBlock(t *testing.T) {
	t.Parallel()

	res := parse(t, "@if(true) { foo(); }")
	assert.Empty(t, res.Diagnostics)
	assert.NotEmpty(t, syntax.Blocks(res.Root, syntax.BlockStatement))
}

func TestParseCodeUnclosedBrace(t *testing.T) {
	t.Parallel()

	res := parser.ParseCode(source.NewDocument("", "{"), parser.DefaultOptions())
	require.NotNil(t, res.Root)
	assert.Equal(t, syntax.BlockStatement, res.Root.Kind)
	require.Len(t, res.Diagnostics, 1)

	got := res.Diagnostics[0]
	assert.Equal(t, diag.ExpectedEndOfBlockBeforeEOF, got.Kind)
	assert.Equal(t, 0, got.Span.AbsoluteIndex)
	assert.Equal(t, 1, got.Span.Length)
	assert.Equal(t,
		"The code block is missing a closing \"}\" character. Make sure you have a matching \"}\" character for all the \"{\" characters within this block.",
		got.Message())
}

func TestParseEscapedTransitionInAttribute(t *testing.T) {
	t.Parallel()

	res := parse(t, "<span foo='@@' />")
	assert.Empty(t, res.Diagnostics)

	var literals []syntax.ChunkGenerator
	for _, span := range syntax.Flatten(res.Root) {
		if span.Generator.Kind == syntax.GenLiteralAttribute {
			literals = append(literals, span.Generator)
		}
	}
	require.Len(t, literals, 1)
	assert.Equal(t, "@", literals[0].Value.Value)

	attrs := 0
	for _, block := range syntax.Blocks(res.Root, syntax.BlockMarkup) {
		if block.Generator.Kind == syntax.GenAttribute {
			attrs++
			assert.Equal(t, "foo", block.Generator.Name)
			assert.Equal(t, "'", block.Generator.Suffix.Value)
		}
	}
	assert.Equal(t, 1, attrs)
}

func TestParseDynamicAttribute(t *testing.T) {
	t.Parallel()

	res := parse(t, `<a href="@url">x</a>`)
	assert.Empty(t, res.Diagnostics)

	var dynamic []*syntax.Block
	for _, block := range syntax.Blocks(res.Root, syntax.BlockMarkup) {
		if block.Generator.Kind == syntax.GenDynamicAttribute {
			dynamic = append(dynamic, block)
		}
	}
	require.Len(t, dynamic, 1)
	assert.Equal(t, 9, dynamic[0].Generator.ValueStart.AbsoluteIndex)
	assert.Len(t, syntax.Blocks(dynamic[0], syntax.BlockExpression), 1)
}

func TestIsHTMLCommentAhead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"---->", true},
		{"-- a -->", true},
		{"-- a --->", true},
		{"-- not closed comment", false},
		{"-->", false},
		{"--->", false},
		{"-- <!-- -->", false},
		{"-- a --!>", false},
		{"text", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parser.IsHTMLCommentAhead(tt.text))
		})
	}
}

func TestParseHTMLCommentBlock(t *testing.T) {
	t.Parallel()

	res := parse(t, "<!-- hi @x -->")
	assert.Empty(t, res.Diagnostics)
	comments := syntax.Blocks(res.Root, syntax.BlockHTMLComment)
	require.Len(t, comments, 1)
	assert.Equal(t, "<!-- hi @x -->", comments[0].Content())
	assert.Len(t, syntax.Blocks(comments[0], syntax.BlockExpression), 1)
}

func TestParseEndTagsMatchCaseInsensitively(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"code block", "@{<li><p>Foo</P></lI>}"},
		{"code block in section", "@section A { @{<li><p>Foo</P></lI>} }"},
		{"after section", "@section A { }\n@{<li><p>Foo</P></lI>}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := parse(t, tt.input)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestParseMissingEndTag(t *testing.T) {
	t.Parallel()

	res := parse(t, "@{<p>")
	assert.Contains(t, kinds(res.Diagnostics), diag.MissingEndTag)
	assert.Contains(t, kinds(res.Diagnostics), diag.ExpectedEndOfBlockBeforeEOF)
}

func TestParseRazorComment(t *testing.T) {
	t.Parallel()

	res := parse(t, "<p>@* hi *@</p>")
	assert.Empty(t, res.Diagnostics)

	comments := syntax.Blocks(res.Root, syntax.BlockComment)
	require.Len(t, comments, 1)
	assert.Equal(t, syntax.GenRazorComment, comments[0].Generator.Kind)
	assert.Equal(t, "@* hi *@", comments[0].Content())
}

func TestParseUnterminatedRazorComment(t *testing.T) {
	t.Parallel()

	res := parse(t, "@* hi")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.RazorCommentNotTerminated, res.Diagnostics[0].Kind)
	assert.Equal(t, 0, res.Diagnostics[0].Span.AbsoluteIndex)
	assert.Equal(t, 2, res.Diagnostics[0].Span.Length)
}

func TestParseUnterminatedStringBeforeBlockError(t *testing.T) {
	t.Parallel()

	res := parse(t, "@{ var s = \"abc }")
	want := []diag.Kind{diag.UnterminatedStringLiteral, diag.ExpectedEndOfBlockBeforeEOF}
	if diff := cmp.Diff(want, kinds(res.Diagnostics)); diff != "" {
		t.Errorf("diagnostic kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSection(t *testing.T) {
	t.Parallel()

	res := parse(t, "@section Foo { <p>x</p> }")
	assert.Empty(t, res.Diagnostics)

	directives := syntax.Blocks(res.Root, syntax.BlockDirective)
	require.Len(t, directives, 1)
	assert.Equal(t, syntax.GenSection, directives[0].Generator.Kind)
	assert.Equal(t, "Foo", directives[0].Generator.Name)
}

func TestParseNestedSection(t *testing.T) {
	t.Parallel()

	res := parse(t, "@section A { @section B { } }")
	assert.Contains(t, kinds(res.Diagnostics), diag.SectionsCannotBeNested)
	assert.Len(t, syntax.Blocks(res.Root, syntax.BlockDirective), 2)
}

func TestParseSectionInsideCode(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"@{ @section A { } }",
		"@if (x) { @section A { } }",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			res := parse(t, input)
			assert.Contains(t, kinds(res.Diagnostics), diag.SectionsCannotBeNested)
			assert.Equal(t, input, res.Root.Content())
		})
	}
}

func TestParseReservedWord(t *testing.T) {
	t.Parallel()

	res := parse(t, "@class")
	assert.Contains(t, kinds(res.Diagnostics), diag.ReservedWord)
}

func TestParseLanguageVersions(t *testing.T) {
	t.Parallel()

	doc := source.NewDocument("", "<!-- a -- b -->")
	for _, version := range []parser.Version{parser.Version1_0, parser.Version2_0} {
		opts := parser.DefaultOptions()
		opts.LanguageVersion = version

		res := parser.Parse(doc, opts)
		assert.Equal(t, doc.Text(), res.Root.Content(), version.String())
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    parser.Version
		wantErr bool
	}{
		{"1.0", parser.Version1_0, false},
		{"1.1", parser.Version1_1, false},
		{"2.0", parser.Version2_0, false},
		{"latest", parser.VersionLatest, false},
		{"", parser.VersionLatest, false},
		{"3.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := parser.ParseVersion(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, parser.ErrUnknownVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsDirective(t *testing.T) {
	t.Parallel()

	opts := parser.DefaultOptions()
	opts.Directives = []parser.DirectiveDescriptor{{Name: "model", Kind: parser.DirectiveSingleLine}}

	assert.True(t, parser.IsDirective("section", opts))
	assert.True(t, parser.IsDirective("addTagHelper", opts))
	assert.True(t, parser.IsDirective("model", opts))
	assert.False(t, parser.IsDirective("model", parser.DefaultOptions()))
	assert.False(t, parser.IsDirective("foo", opts))
}
