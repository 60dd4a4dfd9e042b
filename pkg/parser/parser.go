// Package parser builds a syntax tree from a Razor template.
//
// Two cooperating recursive-descent parsers share one source cursor: the
// markup parser owns literal HTML and hands every transition character to
// the code parser, which in turn hands embedded markup back. Input
// problems never fail a parse; they are reported as diagnostics next to a
// best-effort tree that still covers every character of the input.
package parser

import (
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// Result is the outcome of a parse.
type Result struct {
	// Root is the outermost block. Its content equals the document text.
	Root *syntax.Block

	// Diagnostics are in emission order.
	Diagnostics []diag.Diagnostic

	// Document is the parsed input.
	Document *source.Document
}

// HasDiagnostics reports whether the parse produced any diagnostics.
func (r *Result) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

// Sorted returns the diagnostics ordered by position.
func (r *Result) Sorted() []diag.Diagnostic {
	return diag.SortByPosition(r.Diagnostics)
}

// Parse parses doc as a template that starts in markup.
func Parse(doc *source.Document, opts Options) *Result {
	ps := newParsers(doc, opts)
	ps.markup.parseDocument()
	return ps.result(ps.ctx.builder.Build())
}

// ParseCode parses doc as if it followed a transition, so a leading "{"
// opens a statement block. A root holding a single block is unwrapped.
func ParseCode(doc *source.Document, opts Options) *Result {
	ps := newParsers(doc, opts)

	ps.ctx.builder.StartBlock(syntax.BlockMarkup)
	ps.code.parseBlock()
	ps.ctx.appendUnparsedTail()
	root := ps.ctx.builder.Build()

	if children := root.Children(); len(children) == 1 {
		if block, ok := children[0].(*syntax.Block); ok {
			root.RemoveChild(block)
			root = block
		}
	}
	return ps.result(root)
}
