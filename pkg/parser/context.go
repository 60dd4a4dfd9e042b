package parser

import (
	"fmt"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
	"github.com/yaklabco/razorlint/pkg/tokenizer"
)

// stallsPerRune bounds how many tokens in a row may be read without the
// read position changing. Every parser loop consumes input or exits, so
// exceeding it is a parser bug.
const stallsPerRune = 16

// parseContext is the state shared by the markup and code parsers.
type parseContext struct {
	doc     *source.Document
	cursor  *source.Cursor
	builder *syntax.TreeBuilder
	errors  *diag.Sink
	options Options

	// nullGenerateWhitespaceAndNewLine hides the whitespace and newline
	// that follow a top-level code block from the generated output.
	nullGenerateWhitespaceAndNewLine bool

	// whiteSpaceIsSignificantToAncestorBlock is set while single-line
	// markup is being parsed.
	whiteSpaceIsSignificantToAncestorBlock bool

	lastRead  int
	stalls    int
	maxStalls int
}

func newParseContext(doc *source.Document, opts Options) *parseContext {
	return &parseContext{
		doc:      doc,
		cursor:   source.NewCursor(doc),
		builder:  syntax.NewTreeBuilder(),
		errors:   diag.NewSink(),
		options:  opts,
		lastRead:  -1,
		maxStalls: (doc.Len() + 16) * stallsPerRune,
	}
}

func (c *parseContext) designTime() bool {
	return c.options.DesignTime
}

// progress records a token read at loc. It panics when too many reads in a
// row stay at the same position. Rescanning earlier input after a
// backtrack moves the position and is not a stall.
func (c *parseContext) progress(loc source.Location) {
	if loc.AbsoluteIndex != c.lastRead {
		c.lastRead = loc.AbsoluteIndex
		c.stalls = 0
		return
	}
	c.stalls++
	if c.stalls > c.maxStalls {
		panic(fmt.Sprintf("parser: no progress at %s after %d reads", loc, c.stalls))
	}
}

// parsers wires the two cooperating parsers over one context.
type parsers struct {
	ctx    *parseContext
	markup *markupParser
	code   *codeParser
}

func newParsers(doc *source.Document, opts Options) *parsers {
	ctx := newParseContext(doc, opts)
	markup := newMarkupParser(ctx, tokenizer.NewView(tokenizer.NewMarkup(ctx.cursor)))
	code := newCodeParser(ctx, tokenizer.NewView(tokenizer.NewCode(ctx.cursor)))
	markup.code = code
	code.markup = markup
	return &parsers{ctx: ctx, markup: markup, code: code}
}

// appendUnparsedTail adds whatever input lies after the last span as one
// markup span so the tree always covers the whole document.
// A block must still be open.
func (c *parseContext) appendUnparsedTail() {
	end := 0
	if last := c.builder.LastSpan(); last != nil {
		end = last.Start().AbsoluteIndex + last.Length()
	}
	if end >= c.doc.Len() {
		return
	}

	markup := tokenizer.NewMarkup(c.cursor)
	markup.Reset(c.doc.LocationAt(end))
	span := syntax.NewSpanBuilder(c.doc.LocationAt(end))
	span.Generator = syntax.MarkupGenerator()
	for _, tok := range tokenizer.Tokenize(markup) {
		span.Accept(tok)
	}
	c.builder.Add(span.Build())
}

func (p *parsers) result(root *syntax.Block) *Result {
	return &Result{
		Root:        root,
		Diagnostics: p.ctx.errors.Diagnostics(),
		Document:    p.ctx.doc,
	}
}
