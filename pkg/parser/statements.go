package parser

import (
	"strings"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

func (p *codeParser) setUpKeywords() {
	mapKeywords := func(handler func(bool), topLevel bool, keywords ...string) {
		for _, kw := range keywords {
			p.keywords[kw] = handler
			if topLevel {
				p.implicitKeywords = append(p.implicitKeywords, kw)
			}
		}
	}

	mapKeywords(p.conditionalBlockStatement, true, "for", "foreach", "while", "switch", "lock")
	mapKeywords(p.caseStatement, false, "case", "default")
	mapKeywords(p.ifStatement, true, "if")
	mapKeywords(p.tryStatement, true, "try")
	mapKeywords(p.usingKeyword, true, "using")
	mapKeywords(p.doStatement, true, "do")
	mapKeywords(p.reservedDirective, true, "namespace", "class")

	// await is an expression keyword; it stays out of the implicit keyword list.
	p.keywords["await"] = p.awaitExpression
}

func (p *codeParser) conditionalBlockStatement(topLevel bool) {
	block := blockAt(p.current())
	p.conditionalBlock(block)
	if topLevel {
		p.completeBlock(true, true)
	}
}

func (p *codeParser) conditionalBlock(block codeBlock) {
	p.acceptAndMoveNext()
	p.acceptWhile(isSpacing(true, true))
	if p.acceptCondition() {
		p.acceptWhile(isSpacing(true, true))
		p.expectCodeBlock(block)
	}
}

func (p *codeParser) caseStatement(bool) {
	p.acceptUntil(syntax.Colon)
	p.optional(syntax.Colon)
}

func (p *codeParser) ifStatement(topLevel bool) {
	p.conditionalBlock(blockAt(p.current()))
	p.afterIfClause()
	if topLevel {
		p.completeBlock(true, true)
	}
}

func (p *codeParser) afterIfClause() {
	ws := p.skipToNextImportantToken()
	if p.atKeyword("else") {
		p.acceptAll(ws)
		p.elseClause()
		return
	}
	p.putCurrentBack()
	p.putBackAll(ws)
	p.span.EditHandler.Accepted = syntax.AcceptAny
}

func (p *codeParser) elseClause() {
	block := blockAt(p.current())
	p.acceptAndMoveNext()
	p.acceptWhile(isSpacing(true, true))
	if p.atKeyword("if") {
		block.name = "else if"
		p.conditionalBlock(block)
		p.afterIfClause()
	} else if !p.endOfFile() {
		p.expectCodeBlock(block)
	}
}

func (p *codeParser) tryStatement(topLevel bool) {
	p.unconditionalBlock()
	p.afterTryClause()
	if topLevel {
		p.completeBlock(true, true)
	}
}

func (p *codeParser) afterTryClause() {
	ws := p.skipToNextImportantToken()
	switch {
	case p.atKeyword("catch"):
		p.acceptAll(ws)
		p.filterableCatchBlock()
		p.afterTryClause()
	case p.atKeyword("finally"):
		p.acceptAll(ws)
		p.unconditionalBlock()
	default:
		p.putCurrentBack()
		p.putBackAll(ws)
		p.span.EditHandler.Accepted = syntax.AcceptAny
	}
}

func (p *codeParser) filterableCatchBlock() {
	block := blockAt(p.current())
	p.acceptAndMoveNext()
	p.acceptWhile(isSpacing(true, true))
	if !p.acceptCondition() {
		return
	}
	p.acceptWhile(isSpacing(true, true))
	if p.atKeyword("when") {
		p.acceptAndMoveNext()
		p.acceptWhile(isSpacing(true, true))
		if !p.acceptCondition() {
			return
		}
		p.acceptWhile(isSpacing(true, true))
	}
	p.expectCodeBlock(block)
}

func (p *codeParser) doStatement(topLevel bool) {
	p.unconditionalBlock()
	p.whileClause()
	if topLevel {
		p.completeBlock(true, true)
	}
}

func (p *codeParser) whileClause() {
	p.span.EditHandler.Accepted = syntax.AcceptAny
	ws := p.skipToNextImportantToken()
	if !p.atKeyword("while") {
		p.putCurrentBack()
		p.putBackAll(ws)
		return
	}
	p.acceptAll(ws)
	p.acceptAndMoveNext()
	p.acceptWhile(isSpacing(true, true))
	if p.acceptCondition() && p.optional(syntax.Semicolon) {
		p.span.EditHandler.Accepted = syntax.AcceptNone
	}
}

func (p *codeParser) unconditionalBlock() {
	block := blockAt(p.current())
	p.acceptAndMoveNext()
	p.acceptWhile(isSpacing(true, true))
	p.expectCodeBlock(block)
}

func (p *codeParser) usingKeyword(topLevel bool) {
	block := blockAt(p.current())
	p.acceptAndMoveNext()
	p.acceptWhile(isSpacing(false, true))

	switch {
	case p.at(syntax.LeftParen):
		if p.acceptCondition() {
			p.acceptWhile(isSpacing(true, true))
			p.expectCodeBlock(block)
		}
	case p.at(syntax.Identifier) || p.atKeyword("static"):
		if !topLevel {
			p.report(diag.NamespaceImportWithinCodeBlock, block.start, len(block.name))
			p.standardStatement()
		} else {
			p.usingDeclaration()
		}
	}

	if topLevel {
		p.completeBlock(true, true)
	}
}

func (p *codeParser) usingDeclaration() {
	p.currentBlock().Kind = syntax.BlockDirective

	switch {
	case p.at(syntax.Identifier):
		p.namespaceOrTypeName()
		ws := p.readWhile(isSpacing(true, true))
		if p.at(syntax.Assign) {
			p.acceptAll(ws)
			p.acceptAndMoveNext()
			p.acceptWhile(isSpacing(true, true))
			p.namespaceOrTypeName()
		} else {
			p.putCurrentBack()
			p.putBackAll(ws)
		}
	case p.atKeyword("static"):
		p.acceptAndMoveNext()
		p.acceptWhile(isSpacing(false, true))
		p.namespaceOrTypeName()
	}

	p.span.EditHandler.Accepted = syntax.AcceptAnyExceptNewline
	var namespace strings.Builder
	if tokens := p.span.Tokens(); len(tokens) > 1 {
		for _, tok := range tokens[1:] {
			namespace.WriteString(tok.Content)
		}
	}
	p.span.Generator = syntax.AddImportGenerator(strings.TrimSpace(namespace.String()))

	if p.ensureCurrent() {
		p.optional(syntax.Semicolon)
	}
}

func (p *codeParser) reservedDirective(bool) {
	cur := p.current()
	p.report(diag.ReservedWord, cur.Start, cur.Length(), cur.Content)
	p.acceptAndMoveNext()
	p.span.EditHandler.Accepted = syntax.AcceptNone
	p.span.Generator = syntax.NullGenerator()
	p.currentBlock().Kind = syntax.BlockDirective
	p.completeBlock(true, true)
	p.output(syntax.SpanMetaCode)
}

func (p *codeParser) awaitExpression(topLevel bool) {
	p.acceptAndMoveNext()
	p.acceptWhile(isSpacing(false, true))
	// Inside a statement the await is just part of the statement.
	if topLevel {
		p.implicitExpression(syntax.AcceptAnyExceptNewline)
	}
}

// acceptCondition accepts a parenthesized condition when one is present.
func (p *codeParser) acceptCondition() bool {
	if !p.at(syntax.LeftParen) {
		return true
	}
	complete := p.balance(backtrackOnFailure | allowCommentsAndTemplates)
	if !complete {
		p.acceptUntil(syntax.NewLine)
	} else {
		p.optional(syntax.RightParen)
	}
	return complete
}

func (p *codeParser) expectCodeBlock(block codeBlock) {
	if p.endOfFile() {
		return
	}
	p.ensureCurrent()
	if cur := p.current(); cur != nil && cur.Kind != syntax.LeftBrace {
		p.report(diag.SingleLineControlFlowNotAllowed, cur.Start, cur.Length(), "{", cur.Content)
	}
	p.statement(&block)
}

// skipToNextImportantToken reads whitespace, accepting any razor comments
// in between. The returned whitespace has not been accepted.
func (p *codeParser) skipToNextImportantToken() []syntax.Token {
	for !p.endOfFile() {
		ws := p.readWhile(isSpacing(true, false))
		if !p.at(syntax.RazorCommentTransition) {
			return ws
		}
		p.acceptAll(ws)
		p.span.EditHandler.Accepted = syntax.AcceptAny
		p.razorComment()
	}
	return nil
}

// namespaceOrTypeName accepts a possibly qualified, generic, nullable or
// array type name.
func (p *codeParser) namespaceOrTypeName() bool {
	if p.optional(syntax.LeftParen) {
		for !p.optional(syntax.RightParen) && !p.endOfFile() {
			p.optional(syntax.WhiteSpace)
			if !p.namespaceOrTypeName() {
				return false
			}
			p.optional(syntax.WhiteSpace)
			p.optional(syntax.Identifier)
			p.optional(syntax.WhiteSpace)
			p.optional(syntax.Comma)
		}
		if p.at(syntax.WhiteSpace) && p.nextIs(syntax.QuestionMark) {
			p.acceptAndMoveNext()
		}
		p.optional(syntax.QuestionMark)
		return true
	}

	if !p.optional(syntax.Identifier) && !p.optional(syntax.Keyword) {
		return false
	}
	p.optional(syntax.QuestionMark)
	if p.optional(syntax.DoubleColon) {
		if !p.optional(syntax.Identifier) {
			p.optional(syntax.Keyword)
		}
	}
	if p.at(syntax.LessThan) {
		p.balance(balanceNone)
		p.optional(syntax.GreaterThan)
	}
	if p.optional(syntax.Dot) {
		p.namespaceOrTypeName()
	}
	for p.at(syntax.LeftBracket) {
		p.balance(balanceNone)
		p.optional(syntax.RightBracket)
	}
	return true
}

// qualifiedIdentifier accepts a dotted identifier. On failure nothing is
// accepted and length covers the offending text.
func (p *codeParser) qualifiedIdentifier() (bool, int) {
	length := 0
	expectingDot := false
	tokens := p.readWhile(func(tok syntax.Token) bool {
		if (expectingDot && tok.Kind == syntax.Dot) || (!expectingDot && tok.Kind == syntax.Identifier) {
			expectingDot = !expectingDot
			return true
		}
		if tok.Kind != syntax.WhiteSpace && tok.Kind != syntax.NewLine {
			expectingDot = false
			length += tok.Length()
		}
		return false
	})

	for _, tok := range tokens {
		length += tok.Length()
	}
	if expectingDot {
		p.acceptAll(tokens)
		return true, length
	}
	p.putCurrentBack()
	p.putBackAll(tokens)
	p.ensureCurrent()
	return false, length
}

// statement parses one statement inside a code block.
func (p *codeParser) statement(block *codeBlock) {
	p.span.EditHandler.Accepted = syntax.AcceptAny
	p.ensureCurrent()

	lastWhitespace := p.acceptWhiteSpaceInLines()
	if p.endOfFile() {
		p.accept(lastWhitespace)
		return
	}

	kind := p.current().Kind
	loc := p.currentStart()
	isSingleLineMarkup := kind == syntax.Transition && p.nextIs(syntax.Colon, syntax.DoubleColon)
	isMarkup := isSingleLineMarkup || kind == syntax.LessThan ||
		(kind == syntax.Transition && p.nextIs(syntax.LessThan))

	if p.ctx.designTime() || !isMarkup {
		p.accept(lastWhitespace)
	} else {
		next := p.lookahead(1)
		p.putCurrentBack()
		// Markup owns the leading whitespace unless a <text> tag follows.
		if next != nil && next.Content == "text" {
			p.accept(lastWhitespace)
		} else {
			p.putBack(lastWhitespace)
		}
	}

	if !isMarkup {
		p.handleStatement(block, kind)
		return
	}

	if kind == syntax.Transition && !isSingleLineMarkup {
		p.report(diag.AtInCodeMustBeFollowed, loc, 1)
	}
	p.output(syntax.SpanCode)
	if p.ctx.designTime() && p.atAny(syntax.LessThan, syntax.Transition) {
		p.putCurrentBack()
	}
	p.otherParserBlock()
}

// acceptWhiteSpaceInLines accepts whitespace and newlines, holding back
// the last whitespace run of the final line.
func (p *codeParser) acceptWhiteSpaceInLines() *syntax.Token {
	var last *syntax.Token
	for p.atAny(syntax.WhiteSpace, syntax.NewLine) {
		p.accept(last)
		last = nil
		if p.at(syntax.WhiteSpace) {
			last = p.current()
		} else {
			p.accept(p.current())
		}
		p.nextToken()
	}
	return last
}

func (p *codeParser) handleStatement(block *codeBlock, kind syntax.TokenKind) {
	switch kind {
	case syntax.RazorCommentTransition:
		p.output(syntax.SpanCode)
		p.razorComment()
		p.statement(block)
	case syntax.LeftBrace:
		b := codeBlock{name: "code", start: p.currentStart()}
		if block != nil {
			b = *block
		}
		p.acceptAndMoveNext()
		p.codeBlock(true, b)
	case syntax.Keyword:
		p.handleKeyword(false, p.standardStatement)
	case syntax.Transition:
		p.embeddedExpression()
	case syntax.RightBrace:
		// End of the enclosing code block.
	case syntax.Comment:
		p.acceptAndMoveNext()
	default:
		p.standardStatement()
	}
}

func (p *codeParser) embeddedExpression() {
	transition := p.current()
	p.nextToken()

	if p.at(syntax.Transition) {
		// "@@" in code emits a literal '@'.
		p.output(syntax.SpanCode)
		p.accept(transition)
		p.span.Generator = syntax.NullGenerator()
		p.output(syntax.SpanCode)
		p.acceptAndMoveNext()
		p.standardStatement()
		return
	}

	if p.at(syntax.LeftBrace) {
		p.report(diag.UnexpectedNestedCodeBlock, p.currentStart(), 1)
	}
	p.putCurrentBack()
	p.putBack(transition)
	p.addMarkerIfNecessary()
	p.nestedBlock()
}

func (p *codeParser) standardStatement() {
	for !p.endOfFile() {
		bookmark := p.currentStart()
		read := p.readWhile(func(tok syntax.Token) bool {
			switch tok.Kind {
			case syntax.Semicolon, syntax.RazorCommentTransition, syntax.Transition,
				syntax.LeftBrace, syntax.LeftParen, syntax.LeftBracket, syntax.RightBrace:
				return false
			default:
				return true
			}
		})

		switch {
		case p.atAny(syntax.LeftBrace, syntax.LeftParen, syntax.LeftBracket):
			p.acceptAll(read)
			if !p.balance(allowCommentsAndTemplates | backtrackOnFailure) {
				p.acceptUntil(syntax.LessThan, syntax.RightBrace)
				return
			}
			p.optional(syntax.RightBrace)
		case p.at(syntax.Transition) && p.nextIs(syntax.LessThan, syntax.Colon):
			p.acceptAll(read)
			p.output(syntax.SpanCode)
			p.template()
		case p.at(syntax.RazorCommentTransition):
			p.acceptAll(read)
			p.razorComment()
		case p.at(syntax.Semicolon):
			p.acceptAll(read)
			p.acceptAndMoveNext()
			return
		case p.at(syntax.RightBrace):
			p.acceptAll(read)
			return
		default:
			p.seek(bookmark)
			p.acceptUntil(syntax.LessThan, syntax.LeftBrace, syntax.RightBrace)
			return
		}
	}
}

func (p *codeParser) codeBlock(acceptTerminatingBrace bool, block codeBlock) {
	p.ensureCurrent()
	for !p.endOfFile() && !p.at(syntax.RightBrace) {
		p.statement(nil)
		p.ensureCurrent()
	}

	if p.endOfFile() {
		p.report(diag.ExpectedEndOfBlockBeforeEOF, block.start, 1, block.name, "}", "{")
		return
	}
	if acceptTerminatingBrace {
		p.span.EditHandler.Accepted = syntax.AcceptNone
		p.acceptAndMoveNext()
	}
}
