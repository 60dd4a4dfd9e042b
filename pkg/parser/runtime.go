package parser

import (
	"slices"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
	"github.com/yaklabco/razorlint/pkg/tokenizer"
)

// spanConfig prepares a fresh span builder. It runs whenever a span has
// been emitted and when a new config is pushed.
type spanConfig func(span *syntax.SpanBuilder)

// tokenParser is the token-level machinery shared by the markup and code
// parsers: a view onto one tokenizer, the span under construction and the
// active span configuration.
type tokenParser struct {
	ctx    *parseContext
	view   *tokenizer.View
	span   *syntax.SpanBuilder
	config spanConfig

	// outputBeforeComment flushes the pending span before a razor comment.
	outputBeforeComment func()
}

func newTokenParser(ctx *parseContext, view *tokenizer.View) tokenParser {
	return tokenParser{
		ctx:  ctx,
		view: view,
		span: syntax.NewSpanBuilder(source.Zero),
	}
}

func (p *tokenParser) current() *syntax.Token {
	return p.view.Current()
}

func (p *tokenParser) endOfFile() bool {
	return p.view.EndOfFile()
}

// nextToken advances to the next token and reports whether there is one.
func (p *tokenParser) nextToken() bool {
	ok := p.view.Next()
	p.ctx.progress(p.view.Location())
	return ok
}

// ensureCurrent reads a token when there is none and reports whether a
// current token is available.
func (p *tokenParser) ensureCurrent() bool {
	if p.view.Current() == nil {
		p.nextToken()
	}
	return p.view.Current() != nil
}

// sync discards the current token after the other parser moved the cursor.
func (p *tokenParser) sync() {
	p.view.Sync()
}

func (p *tokenParser) at(kind syntax.TokenKind) bool {
	cur := p.view.Current()
	return cur != nil && cur.Kind == kind
}

func (p *tokenParser) atAny(kinds ...syntax.TokenKind) bool {
	cur := p.view.Current()
	return cur != nil && slices.Contains(kinds, cur.Kind)
}

func (p *tokenParser) nextIs(kinds ...syntax.TokenKind) bool {
	return p.view.NextIs(kinds...)
}

func (p *tokenParser) nextMatches(pred func(syntax.Token) bool) bool {
	return p.view.NextMatches(pred)
}

// lookahead returns the token n places after the current one.
func (p *tokenParser) lookahead(n int) *syntax.Token {
	return p.view.Peek(n)
}

// currentStart is the start of the current token, or the cursor location
// when there is none.
func (p *tokenParser) currentStart() source.Location {
	return p.view.Location()
}

func (p *tokenParser) putBack(tok *syntax.Token) {
	if tok != nil {
		p.view.PutBack(*tok)
	}
}

func (p *tokenParser) putBackAll(tokens []syntax.Token) {
	p.view.PutBackAll(tokens)
}

func (p *tokenParser) putCurrentBack() {
	p.view.PutCurrentBack()
}

// seek moves to loc and reads the token there.
func (p *tokenParser) seek(loc source.Location) {
	p.view.Seek(loc)
	p.nextToken()
}

// accept appends tok to the current span and records its diagnostics.
func (p *tokenParser) accept(tok *syntax.Token) {
	if tok == nil {
		return
	}
	p.ctx.errors.Add(tok.Diagnostics...)
	p.span.Accept(*tok)
}

func (p *tokenParser) acceptAll(tokens []syntax.Token) {
	for i := range tokens {
		p.accept(&tokens[i])
	}
}

func (p *tokenParser) acceptAndMoveNext() bool {
	p.accept(p.current())
	return p.nextToken()
}

// acceptWhile accepts tokens while pred holds. The current token is left
// on the first token that fails pred.
func (p *tokenParser) acceptWhile(pred func(syntax.Token) bool) {
	for p.ensureCurrent() && pred(*p.current()) {
		p.acceptAndMoveNext()
	}
}

// readWhile collects tokens while pred holds without accepting them.
func (p *tokenParser) readWhile(pred func(syntax.Token) bool) []syntax.Token {
	var tokens []syntax.Token
	for p.ensureCurrent() && pred(*p.current()) {
		tokens = append(tokens, *p.current())
		p.nextToken()
	}
	return tokens
}

func (p *tokenParser) acceptUntil(kinds ...syntax.TokenKind) {
	p.acceptWhile(func(tok syntax.Token) bool {
		return !slices.Contains(kinds, tok.Kind)
	})
}

// acceptAllKinds accepts one token of each kind in order, stopping at the
// first mismatch.
func (p *tokenParser) acceptAllKinds(kinds ...syntax.TokenKind) bool {
	for _, kind := range kinds {
		if !p.at(kind) {
			return false
		}
		p.acceptAndMoveNext()
	}
	return true
}

// optional accepts the current token when it has the given kind.
func (p *tokenParser) optional(kind syntax.TokenKind) bool {
	if p.at(kind) {
		p.acceptAndMoveNext()
		return true
	}
	return false
}

// expect accepts the current token, which the caller has already checked.
func (p *tokenParser) expect(kind syntax.TokenKind) {
	if !p.at(kind) {
		panic("parser: expected " + kind.String() + " at " + p.currentStart().String())
	}
	p.acceptAndMoveNext()
}

// pushSpanConfig installs cfg, applies it to the current span and returns
// a function restoring the previous config.
func (p *tokenParser) pushSpanConfig(cfg spanConfig) func() {
	old := p.config
	p.config = cfg
	p.configure()
	return func() { p.config = old }
}

// wrapSpanConfig pushes a config that runs after the current one.
func (p *tokenParser) wrapSpanConfig(cfg spanConfig) func() {
	prev := p.config
	return p.pushSpanConfig(func(span *syntax.SpanBuilder) {
		if prev != nil {
			prev(span)
		}
		cfg(span)
	})
}

// configure applies the active config to the current span.
func (p *tokenParser) configure() {
	if p.config != nil {
		p.config(p.span)
	}
}

// output sets the span kind and, when the span holds tokens, adds it to the
// tree and starts a new one. It returns the emitted span, or nil.
func (p *tokenParser) output(kind syntax.SpanKind, accepted ...syntax.AcceptedCharacters) *syntax.Span {
	p.span.Kind = kind
	if len(accepted) > 0 {
		p.span.EditHandler.Accepted = accepted[0]
	}
	if !p.span.HasTokens() {
		return nil
	}

	built := p.span.Build()
	p.ctx.builder.Add(built)

	p.span.Reset()
	p.configure()
	p.span.SetStart(built.Start().Advance(built.Content()))
	return built
}

// lastAccepted returns the accepted characters of the last emitted span.
func (p *tokenParser) lastAccepted() syntax.AcceptedCharacters {
	if last := p.ctx.builder.LastSpan(); last != nil {
		return last.EditHandler.Accepted
	}
	return syntax.AcceptNone
}

// addMarkerIfNecessary gives an empty span a zero-width token so it is
// emitted, unless the previous span already accepts any edit.
func (p *tokenParser) addMarkerIfNecessary() {
	p.addMarkerAt(p.currentStart())
}

// addMarkerAt is addMarkerIfNecessary for a span that ends at loc rather
// than at the current token.
func (p *tokenParser) addMarkerAt(loc source.Location) {
	if !p.span.HasTokens() && p.lastAccepted() != syntax.AcceptAny {
		marker := syntax.NewToken(syntax.Unknown, "", loc)
		p.accept(&marker)
	}
}

func (p *tokenParser) acceptMarker() {
	marker := syntax.NewToken(syntax.Unknown, "", p.currentStart())
	p.accept(&marker)
}

// resetSpanAt restarts the current span at the cursor after another parser
// has run.
func (p *tokenParser) resetSpanAt() {
	p.span.SetStart(p.currentStart())
	p.configure()
}

func (p *tokenParser) startBlock(kind syntax.BlockKind) *syntax.BlockBuilder {
	return p.ctx.builder.StartBlock(kind)
}

func (p *tokenParser) endBlock() {
	p.ctx.builder.EndBlock()
}

func (p *tokenParser) currentBlock() *syntax.BlockBuilder {
	return p.ctx.builder.CurrentBlock()
}

func (p *tokenParser) report(kind diag.Kind, loc source.Location, length int, args ...any) {
	p.ctx.errors.Report(kind, loc, length, args...)
}

func commentSpanConfig(span *syntax.SpanBuilder) {
	span.Generator = syntax.NullGenerator()
	span.EditHandler = syntax.DefaultEditHandler()
}

// razorComment parses @* ... *@ into a comment block. The current token is
// the opening transition.
func (p *tokenParser) razorComment() {
	p.outputBeforeComment()

	restore := p.pushSpanConfig(commentSpanConfig)
	block := p.startBlock(syntax.BlockComment)
	block.Generator = syntax.RazorCommentGenerator()

	start := p.currentStart()
	p.expect(syntax.RazorCommentTransition)
	p.output(syntax.SpanTransition, syntax.AcceptNone)

	if p.optional(syntax.RazorCommentStar) {
		p.output(syntax.SpanMetaCode, syntax.AcceptNone)
	}

	p.optional(syntax.RazorComment)
	p.addMarkerIfNecessary()
	p.output(syntax.SpanComment)

	reported := false
	if !p.optional(syntax.RazorCommentStar) {
		reported = true
		p.report(diag.RazorCommentNotTerminated, start, 2)
	} else {
		p.output(syntax.SpanMetaCode, syntax.AcceptNone)
	}

	if !p.optional(syntax.RazorCommentTransition) {
		if !reported {
			p.report(diag.RazorCommentNotTerminated, start, 2)
		}
	} else {
		p.output(syntax.SpanTransition, syntax.AcceptNone)
	}

	p.endBlock()
	restore()
	p.configure()
}

func isSpacing(includeNewLines, includeComments bool) func(syntax.Token) bool {
	return func(tok syntax.Token) bool {
		return tok.Kind == syntax.WhiteSpace ||
			(includeNewLines && tok.Kind == syntax.NewLine) ||
			(includeComments && tok.Kind == syntax.Comment)
	}
}
