package parser

import (
	"slices"
	"strings"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
	"github.com/yaklabco/razorlint/pkg/tokenizer"
)

// codeBlock names a construct for end-of-block diagnostics.
type codeBlock struct {
	name  string
	start source.Location
}

func blockAt(tok *syntax.Token) codeBlock {
	return codeBlock{name: tok.Content, start: tok.Start}
}

// balanceMode controls how balance reacts to unclosed brackets.
type balanceMode uint8

const (
	backtrackOnFailure balanceMode = 1 << iota
	noErrorOnFailure
	allowCommentsAndTemplates

	balanceNone balanceMode = 0
)

// codeParser parses code regions: expressions, statements, keyword blocks
// and directives.
type codeParser struct {
	tokenParser

	markup *markupParser

	// isNested is set while parsing a code block inside another code block.
	isNested bool

	keywords   map[string]func(topLevel bool)
	directives map[string]func()

	// implicitKeywords is handed to implicit expression edit handlers.
	implicitKeywords []string
}

func newCodeParser(ctx *parseContext, view *tokenizer.View) *codeParser {
	p := &codeParser{
		tokenParser: newTokenParser(ctx, view),
		keywords:    make(map[string]func(bool)),
		directives:  make(map[string]func()),
	}
	p.outputBeforeComment = func() {
		p.addMarkerIfNecessary()
		p.output(syntax.SpanCode)
	}
	p.setUpKeywords()
	p.setUpDirectives(ctx.options)
	slices.Sort(p.implicitKeywords)
	return p
}

func defaultCodeSpan(span *syntax.SpanBuilder) {
	span.EditHandler = syntax.DefaultEditHandler()
	span.Generator = syntax.StatementGenerator()
}

func (p *codeParser) implicitExpressionHandler(accepted syntax.AcceptedCharacters) syntax.EditHandler {
	return syntax.EditHandler{
		Kind:              syntax.EditImplicitExpression,
		Accepted:          accepted,
		Keywords:          slices.Clone(p.implicitKeywords),
		AcceptTrailingDot: p.isNested,
	}
}

func (p *codeParser) atKeyword(keyword string) bool {
	return p.at(syntax.Keyword) && p.current().Content == keyword
}

func (p *codeParser) atIdentifier(allowKeywords bool) bool {
	return p.at(syntax.Identifier) || (allowKeywords && p.at(syntax.Keyword))
}

// parseBlock parses one code block starting at the cursor, normally at a
// transition.
func (p *codeParser) parseBlock() {
	restore := p.pushSpanConfig(defaultCodeSpan)
	defer restore()

	p.sync()
	p.resetSpanAt()
	p.startBlock(syntax.BlockStatement)
	defer p.endBlock()

	p.nextToken()
	p.acceptWhile(isSpacing(true, true))

	var transition *syntax.Token
	if cur := p.current(); cur != nil && cur.Kind == syntax.StringLiteral && strings.HasPrefix(cur.Content, "@") {
		// @"..." reads as a verbatim string; only the '@' is a transition here.
		tok := syntax.NewToken(syntax.Transition, "@", cur.Start)
		transition = &tok
		p.view.Seek(cur.Start.Advance("@"))
		p.nextToken()
	} else if p.at(syntax.Transition) {
		transition = p.current()
		p.nextToken()
	}

	if transition != nil {
		if p.span.HasTokens() {
			p.output(syntax.SpanCode)
		}
		p.atTransition(transition)
	} else {
		p.afterTransition()
	}
	p.output(syntax.SpanCode)
}

func (p *codeParser) atTransition(transition *syntax.Token) {
	p.accept(transition)
	p.span.EditHandler.Accepted = syntax.AcceptNone
	p.span.Generator = syntax.NullGenerator()
	p.output(syntax.SpanTransition)
	p.afterTransition()
}

func (p *codeParser) afterTransition() {
	restore := p.pushSpanConfig(defaultCodeSpan)
	defer restore()
	defer p.putCurrentBack()

	p.ensureCurrent()
	if cur := p.current(); cur != nil {
		switch cur.Kind {
		case syntax.LeftParen:
			p.markExpressionBlock()
			p.explicitExpression()
			return
		case syntax.Identifier:
			if handler, ok := p.directives[cur.Content]; ok {
				p.span.Generator = syntax.NullGenerator()
				handler()
				return
			}
			p.markExpressionBlock()
			p.implicitExpression(syntax.AcceptNonWhiteSpace)
			return
		case syntax.Keyword:
			if handler, ok := p.directives[cur.Content]; ok {
				p.span.Generator = syntax.NullGenerator()
				handler()
				return
			}
			p.keywordBlock(true)
			return
		case syntax.LeftBrace:
			p.verbatimBlock()
			return
		default:
		}
	}

	// Anything else cannot start a code block.
	p.markExpressionBlock()
	p.addMarkerIfNecessary()
	p.span.Generator = syntax.ExpressionGenerator()
	p.span.EditHandler = p.implicitExpressionHandler(syntax.AcceptNonWhiteSpace)

	cur := p.current()
	switch {
	case p.atAny(syntax.WhiteSpace, syntax.NewLine):
		p.report(diag.UnexpectedWhiteSpaceAtStartOfCodeBlock, p.currentStart(), cur.Length())
	case cur == nil:
		p.report(diag.UnexpectedEndOfFileAtStartOfCodeBlock, p.currentStart(), 1)
	default:
		p.report(diag.UnexpectedCharacterAtStartOfCodeBlock, p.currentStart(), cur.Length(), cur.Content)
	}
}

func (p *codeParser) markExpressionBlock() {
	block := p.currentBlock()
	block.Kind = syntax.BlockExpression
	block.Generator = syntax.ExpressionGenerator()
}

func (p *codeParser) verbatimBlock() {
	block := codeBlock{name: "code", start: p.currentStart()}
	p.acceptAndMoveNext()
	p.span.EditHandler.Accepted = syntax.AcceptNone
	p.span.Generator = syntax.NullGenerator()
	p.output(syntax.SpanMetaCode)

	p.span.EditHandler = syntax.EditHandler{Kind: syntax.EditAutoComplete, Accepted: syntax.AcceptAny}
	p.codeBlock(false, block)
	p.span.Generator = syntax.StatementGenerator()
	p.addMarkerIfNecessary()
	if !p.at(syntax.RightBrace) {
		p.span.EditHandler.Kind = syntax.EditAutoComplete
		p.span.EditHandler.AutoComplete = "}"
	}
	p.output(syntax.SpanCode)

	if p.optional(syntax.RightBrace) {
		p.span.EditHandler.Accepted = syntax.AcceptNone
		p.span.Generator = syntax.NullGenerator()
	}

	if !p.isNested {
		p.ensureCurrent()
		if p.at(syntax.NewLine) || (p.at(syntax.WhiteSpace) && p.nextIs(syntax.NewLine)) {
			p.ctx.nullGenerateWhitespaceAndNewLine = true
		}
	}
	p.output(syntax.SpanMetaCode)
}

func (p *codeParser) keywordBlock(topLevel bool) {
	p.handleKeyword(topLevel, func() {
		p.markExpressionBlock()
		p.implicitExpression(syntax.AcceptNonWhiteSpace)
	})
}

func (p *codeParser) handleKeyword(topLevel bool, fallback func()) {
	if handler, ok := p.keywords[p.current().Content]; ok {
		handler(topLevel)
		return
	}
	fallback()
}

func (p *codeParser) implicitExpression(accepted syntax.AcceptedCharacters) {
	p.markExpressionBlock()
	restore := p.pushSpanConfig(func(span *syntax.SpanBuilder) {
		span.EditHandler = p.implicitExpressionHandler(accepted)
		span.Generator = syntax.ExpressionGenerator()
	})
	defer restore()

	for {
		if p.atIdentifier(true) {
			p.acceptAndMoveNext()
		}
		if !p.methodCallOrArrayIndex(accepted) {
			break
		}
	}
	p.putCurrentBack()
	p.output(syntax.SpanCode)
}

// methodCallOrArrayIndex consumes one member access, call or index and
// reports whether the expression continues with an identifier.
func (p *codeParser) methodCallOrArrayIndex(accepted syntax.AcceptedCharacters) bool {
	if p.endOfFile() || p.current() == nil {
		return false
	}

	switch {
	case p.atAny(syntax.LeftParen, syntax.LeftBracket):
		// Whitespace is fine inside the brackets.
		p.span.EditHandler.Accepted = syntax.AcceptAny
		right := flipBracket(p.current().Kind)
		restore := p.wrapSpanConfig(func(span *syntax.SpanBuilder) {
			span.EditHandler.Accepted = syntax.AcceptAny
		})
		ok := p.balance(backtrackOnFailure | allowCommentsAndTemplates)
		restore()
		if !ok {
			p.acceptUntil(syntax.LessThan)
		}
		if p.at(right) {
			p.acceptAndMoveNext()
			p.span.EditHandler.Accepted = accepted
		}
		return p.methodCallOrArrayIndex(accepted)

	case p.at(syntax.QuestionMark):
		next := p.lookahead(1)
		if next == nil {
			return false
		}
		switch next.Kind {
		case syntax.Dot:
			p.acceptAndMoveNext()
			p.acceptAndMoveNext()
			return p.atIdentifier(true)
		case syntax.LeftBracket:
			p.acceptAndMoveNext()
			return p.methodCallOrArrayIndex(accepted)
		default:
			return false
		}

	case p.at(syntax.Dot):
		dot := p.current()
		if p.nextToken() {
			if p.atIdentifier(true) {
				p.accept(dot)
				return true
			}
			p.putCurrentBack()
		}
		if p.isNested {
			p.accept(dot)
		} else {
			p.putBack(dot)
		}

	case !p.atAny(syntax.WhiteSpace, syntax.NewLine):
		p.putCurrentBack()
	}
	return false
}

// completeBlock finishes a top-level construct, claiming trailing
// whitespace and the newline when the line holds only code.
func (p *codeParser) completeBlock(insertMarker, captureWhitespace bool) {
	if insertMarker && p.lastAccepted() != syntax.AcceptAny {
		p.addMarkerIfNecessary()
	}
	p.ensureCurrent()

	if !p.ctx.whiteSpaceIsSignificantToAncestorBlock &&
		p.currentBlock().Kind != syntax.BlockExpression &&
		captureWhitespace &&
		!p.ctx.designTime() &&
		!p.isNested {
		p.captureWhitespaceAtEndOfCodeOnlyLine()
		return
	}
	p.putCurrentBack()
}

func (p *codeParser) captureWhitespaceAtEndOfCodeOnlyLine() {
	ws := p.readWhile(func(tok syntax.Token) bool { return tok.Kind == syntax.WhiteSpace })
	if p.at(syntax.NewLine) {
		p.acceptAll(ws)
		p.acceptAndMoveNext()
		p.putCurrentBack()
		return
	}
	p.putCurrentBack()
	p.putBackAll(ws)
}

func (p *codeParser) explicitExpression() {
	block := codeBlock{name: "explicit expression", start: p.currentStart()}
	p.acceptAndMoveNext()
	p.span.EditHandler.Accepted = syntax.AcceptNone
	p.span.Generator = syntax.NullGenerator()
	p.output(syntax.SpanMetaCode)

	restore := p.pushSpanConfig(func(span *syntax.SpanBuilder) {
		span.Generator = syntax.ExpressionGenerator()
	})
	ok := p.balanceBetween(backtrackOnFailure|noErrorOnFailure|allowCommentsAndTemplates,
		syntax.LeftParen, syntax.RightParen, block.start)
	if !ok {
		p.acceptUntil(syntax.LessThan)
		p.report(diag.ExpectedEndOfBlockBeforeEOF, block.start, 1, block.name, ")", "(")
	}
	if !p.span.HasTokens() {
		p.acceptMarker()
	}
	p.output(syntax.SpanCode)
	restore()

	p.optional(syntax.RightParen)
	if !p.endOfFile() {
		p.putCurrentBack()
	}
	p.span.EditHandler.Accepted = syntax.AcceptNone
	p.span.Generator = syntax.NullGenerator()
	p.completeBlock(false, false)
	p.output(syntax.SpanMetaCode)
}

// template parses inline markup embedded in code. The current token is the
// transition.
func (p *codeParser) template() {
	if p.ctx.builder.InBlock(syntax.BlockTemplate) {
		p.report(diag.InlineMarkupBlocksCannotNest, p.currentStart(), 1)
	}
	p.output(syntax.SpanCode)

	block := p.startBlock(syntax.BlockTemplate)
	block.Generator = syntax.TemplateGenerator()
	p.putCurrentBack()
	p.otherParserBlock()
	p.endBlock()
}

func (p *codeParser) otherParserBlock() {
	p.parseWithOtherParser(p.markup.parseBlock)
}

// parseWithOtherParser hands the cursor to the markup parser and resumes
// after it returns.
func (p *codeParser) parseWithOtherParser(parse func()) {
	wasNested := p.isNested
	p.isNested = false

	restore := p.pushSpanConfig(nil)
	parse()
	restore()

	p.sync()
	p.resetSpanAt()
	p.isNested = wasNested
	p.nextToken()
}

func (p *codeParser) nestedBlock() {
	p.output(syntax.SpanCode)
	wasNested := p.isNested
	p.isNested = true

	restore := p.pushSpanConfig(nil)
	p.parseBlock()
	restore()

	p.sync()
	p.resetSpanAt()
	p.isNested = wasNested
	p.nextToken()
}

// balance accepts a bracketed run starting at the current left bracket.
// On success the current token is the matching right bracket.
func (p *codeParser) balance(mode balanceMode) bool {
	left := p.current().Kind
	right := flipBracket(left)
	start := p.currentStart()
	p.acceptAndMoveNext()
	if p.endOfFile() && mode&noErrorOnFailure == 0 {
		p.report(diag.ExpectedCloseBracketBeforeEOF, start, 1, bracketSample(left), bracketSample(right))
	}
	return p.balanceBetween(mode, left, right, start)
}

func (p *codeParser) balanceBetween(mode balanceMode, left, right syntax.TokenKind, start source.Location) bool {
	startPosition := p.currentStart()
	nesting := 1
	if p.endOfFile() {
		return false
	}

	var tokens []syntax.Token
	for {
		if p.atEmbeddedTransition(mode&allowCommentsAndTemplates != 0) {
			p.acceptAll(tokens)
			tokens = nil
			p.handleEmbeddedTransition()
			// Spans were emitted, so there is nothing left to backtrack over.
			startPosition = p.currentStart()
		}

		switch {
		case p.at(left):
			nesting++
		case p.at(right):
			nesting--
		}
		if nesting > 0 && p.current() != nil {
			tokens = append(tokens, *p.current())
		}
		if nesting == 0 || !p.nextToken() {
			break
		}
	}

	if nesting > 0 {
		if mode&noErrorOnFailure == 0 {
			p.report(diag.ExpectedCloseBracketBeforeEOF, start, 1, bracketSample(left), bracketSample(right))
		}
		if mode&backtrackOnFailure != 0 {
			p.seek(startPosition)
		} else {
			p.acceptAll(tokens)
		}
	} else {
		p.acceptAll(tokens)
	}
	return nesting == 0
}

func (p *codeParser) atEmbeddedTransition(allowTemplatesAndComments bool) bool {
	if !allowTemplatesAndComments {
		return false
	}
	return (p.at(syntax.Transition) && p.nextIs(syntax.LessThan, syntax.Colon, syntax.DoubleColon)) ||
		p.at(syntax.RazorCommentTransition)
}

func (p *codeParser) handleEmbeddedTransition() {
	if p.at(syntax.RazorCommentTransition) {
		p.razorComment()
		return
	}
	p.putCurrentBack()
	p.template()
}

func flipBracket(kind syntax.TokenKind) syntax.TokenKind {
	switch kind {
	case syntax.LeftParen:
		return syntax.RightParen
	case syntax.RightParen:
		return syntax.LeftParen
	case syntax.LeftBracket:
		return syntax.RightBracket
	case syntax.RightBracket:
		return syntax.LeftBracket
	case syntax.LeftBrace:
		return syntax.RightBrace
	case syntax.RightBrace:
		return syntax.LeftBrace
	case syntax.LessThan:
		return syntax.GreaterThan
	case syntax.GreaterThan:
		return syntax.LessThan
	default:
		return syntax.Unknown
	}
}

func bracketSample(kind syntax.TokenKind) string {
	switch kind {
	case syntax.LeftParen:
		return "("
	case syntax.RightParen:
		return ")"
	case syntax.LeftBracket:
		return "["
	case syntax.RightBracket:
		return "]"
	case syntax.LeftBrace:
		return "{"
	case syntax.RightBrace:
		return "}"
	case syntax.LessThan:
		return "<"
	case syntax.GreaterThan:
		return ">"
	default:
		return kind.String()
	}
}
