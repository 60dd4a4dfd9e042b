package parser

import (
	"strings"
	"unicode"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// setUpDirectives registers custom directives first so they win over
// built-ins with the same name.
func (p *codeParser) setUpDirectives(opts Options) {
	var descriptors []DirectiveDescriptor
	if opts.version() >= Version2_0 {
		descriptors = append(descriptors, opts.Directives...)
	}
	descriptors = append(descriptors, BuiltinDirectives()...)

	for _, desc := range descriptors {
		p.mapDirective(desc.Name, func() { p.handleDirective(desc) })
	}

	p.mapDirective(tagHelperPrefixKeyword, func() {
		p.tagHelperDirective(tagHelperPrefixKeyword, syntax.GenTagHelperPrefix)
	})
	p.mapDirective(addTagHelperKeyword, func() {
		p.tagHelperDirective(addTagHelperKeyword, syntax.GenAddTagHelper)
	})
	p.mapDirective(removeTagHelperKeyword, func() {
		p.tagHelperDirective(removeTagHelperKeyword, syntax.GenRemoveTagHelper)
	})
}

func (p *codeParser) mapDirective(name string, handler func()) {
	if _, exists := p.directives[name]; exists {
		return
	}
	p.directives[name] = func() {
		p.ensureDirectiveIsAtStartOfLine()
		handler()
	}
	p.implicitKeywords = append(p.implicitKeywords, name)
	// A directive named like a reserved keyword replaces the keyword handler.
	delete(p.keywords, name)
}

// IsDirective reports whether name is handled as a directive under opts.
func IsDirective(name string, opts Options) bool {
	switch name {
	case addTagHelperKeyword, removeTagHelperKeyword, tagHelperPrefixKeyword:
		return true
	}
	for _, desc := range BuiltinDirectives() {
		if desc.Name == name {
			return true
		}
	}
	if opts.version() >= Version2_0 {
		for _, desc := range opts.Directives {
			if desc.Name == name {
				return true
			}
		}
	}
	return false
}

// ensureDirectiveIsAtStartOfLine reports a directive whose line has
// non-whitespace before the transition.
func (p *codeParser) ensureDirectiveIsAtStartOfLine() {
	start := p.currentStart()
	if start.CharacterIndex <= 1 {
		return
	}
	lineStart := start.AbsoluteIndex - start.CharacterIndex
	for i := start.AbsoluteIndex - 2; i >= lineStart; i-- {
		if !unicode.IsSpace(p.ctx.doc.At(i)) {
			name := p.current().Content
			p.report(diag.DirectiveMustAppearAtStartOfLine, start, p.current().Length(), name)
			return
		}
	}
}

func isSectionBlock(block *syntax.BlockBuilder) bool {
	return block.Generator.Kind == syntax.GenSection ||
		(block.Generator.Kind == syntax.GenDirective && block.Generator.Name == SectionDirective.Name)
}

// forbidsSection reports whether a section may not start inside block:
// sections only live at the top level of the markup.
func forbidsSection(block *syntax.BlockBuilder) bool {
	switch block.Kind {
	case syntax.BlockStatement, syntax.BlockExpression, syntax.BlockFunctions, syntax.BlockHelper:
		return true
	}
	return isSectionBlock(block)
}

func (p *codeParser) handleDirective(desc DirectiveDescriptor) {
	block := p.currentBlock()
	if desc.Name == SectionDirective.Name {
		for _, active := range p.ctx.builder.ActiveBlocks() {
			if active != block && forbidsSection(active) {
				p.report(diag.SectionsCannotBeNested, p.currentStart(), p.current().Length(), "@section Header { ... }")
				break
			}
		}
	}

	block.Kind = syntax.BlockDirective
	block.Generator = syntax.DirectiveGenerator(desc.Name)
	p.acceptAndMoveNext()
	p.output(syntax.SpanMetaCode, syntax.AcceptNone)

	for i, tokDesc := range desc.Tokens {
		p.acceptWhile(isSpacing(false, true))
		p.span.Generator = syntax.NullGenerator()
		if tokDesc.Kind == TokenString {
			p.output(syntax.SpanMarkup, syntax.AcceptWhiteSpace)
		} else {
			p.output(syntax.SpanCode, syntax.AcceptWhiteSpace)
		}

		p.ensureCurrent()
		if tokDesc.Optional && (p.endOfFile() || p.at(syntax.NewLine)) {
			break
		}
		if p.endOfFile() {
			p.report(diag.UnexpectedEOFAfterDirective, p.currentStart(), 1, desc.Name, tokDesc.Kind.String())
			return
		}

		if !p.directiveToken(desc, tokDesc) {
			return
		}

		p.span.Generator = syntax.DirectiveTokenGenerator(desc.Name, tokDesc.Kind.String())
		p.span.EditHandler = syntax.EditHandler{Kind: syntax.EditDirectiveToken, Accepted: syntax.AcceptNonWhiteSpace}
		value := p.output(syntax.SpanCode, syntax.AcceptNonWhiteSpace)
		if value != nil && i == 0 {
			switch desc.Name {
			case SectionDirective.Name:
				block.Generator = syntax.SectionGenerator(value.Content())
			case InheritsDirective.Name:
				block.Generator = syntax.SetBaseTypeGenerator(value.Content())
			}
		}
	}

	p.acceptWhile(isSpacing(false, true))
	p.span.Generator = syntax.NullGenerator()

	switch desc.Kind {
	case DirectiveSingleLine:
		p.optional(syntax.Semicolon)
		p.acceptWhile(isSpacing(false, true))
		if p.at(syntax.NewLine) {
			p.acceptAndMoveNext()
		} else if !p.endOfFile() {
			p.report(diag.UnexpectedDirectiveLiteral, p.currentStart(), p.current().Length(), desc.Name, "line break")
		}
		p.output(syntax.SpanMetaCode, syntax.AcceptWhiteSpace)

	case DirectiveRazorBlock:
		p.acceptWhile(isSpacing(true, true))
		p.output(syntax.SpanMarkup, syntax.AcceptAllWhiteSpace)
		p.parseDirectiveBlock(desc, func(source.Location) {
			// Markup inside the block is not nested code.
			p.parseWithOtherParser(func() {
				p.markup.parseRazorBlock("{", "}", true)
			})
		})

	case DirectiveCodeBlock:
		p.acceptWhile(isSpacing(true, true))
		p.output(syntax.SpanMarkup, syntax.AcceptAllWhiteSpace)
		p.parseDirectiveBlock(desc, func(brace source.Location) {
			p.nextToken()
			p.balanceBetween(noErrorOnFailure, syntax.LeftBrace, syntax.RightBrace, brace)
			p.span.Generator = syntax.StatementGenerator()
			p.output(syntax.SpanCode)
		})
	}
}

// directiveToken accepts one directive argument, reporting a diagnostic
// and returning false when the input does not match.
func (p *codeParser) directiveToken(desc DirectiveDescriptor, tokDesc DirectiveToken) bool {
	cur := p.current()
	switch tokDesc.Kind {
	case TokenType:
		if !p.namespaceOrTypeName() {
			p.report(diag.DirectiveExpectsTypeName, cur.Start, cur.Length(), desc.Name)
			return false
		}
	case TokenNamespace:
		if ok, length := p.qualifiedIdentifier(); !ok {
			p.report(diag.DirectiveExpectsNamespace, cur.Start, length, desc.Name)
			return false
		}
	case TokenMember:
		if !p.at(syntax.Identifier) {
			p.report(diag.DirectiveExpectsIdentifier, cur.Start, cur.Length(), desc.Name)
			return false
		}
		p.acceptAndMoveNext()
	case TokenString:
		if !p.at(syntax.StringLiteral) || len(cur.Diagnostics) > 0 {
			p.report(diag.DirectiveExpectsQuotedStringLiteral, cur.Start, cur.Length(), desc.Name)
			return false
		}
		p.acceptAndMoveNext()
	}
	return true
}

// parseDirectiveBlock parses a braced directive body. The current token
// should be the opening brace.
func (p *codeParser) parseDirectiveBlock(desc DirectiveDescriptor, parseChildren func(brace source.Location)) {
	switch {
	case p.endOfFile():
		p.report(diag.UnexpectedEOFAfterDirective, p.currentStart(), 1, desc.Name, "{")
		return
	case !p.at(syntax.LeftBrace):
		p.report(diag.UnexpectedDirectiveLiteral, p.currentStart(), p.current().Length(), desc.Name, "{")
		return
	}

	p.span.EditHandler = syntax.EditHandler{
		Kind:              syntax.EditAutoComplete,
		Accepted:          syntax.AcceptAny,
		AutoCompleteAtEnd: true,
	}
	brace := p.currentStart()
	p.accept(p.current())
	p.span.Generator = syntax.NullGenerator()
	braceSpan := p.output(syntax.SpanMetaCode, syntax.AcceptNone)

	parseChildren(brace)

	p.span.Generator = syntax.NullGenerator()
	if !p.optional(syntax.RightBrace) {
		if braceSpan != nil {
			braceSpan.EditHandler.AutoComplete = "}"
		}
		p.report(diag.ExpectedEndOfBlockBeforeEOF, brace, 1, desc.Name, "}", "{")
	} else {
		p.span.EditHandler.Accepted = syntax.AcceptNone
	}
	p.completeBlock(false, true)
	p.span.Generator = syntax.NullGenerator()
	p.output(syntax.SpanMetaCode, syntax.AcceptNone)
}

// tagHelperDirective parses @addTagHelper, @removeTagHelper and
// @tagHelperPrefix, whose value runs to the end of the line.
func (p *codeParser) tagHelperDirective(keyword string, kind syntax.GeneratorKind) {
	keywordStart := p.currentStart()
	keywordLength := p.current().Length()
	p.acceptAndMoveNext()
	p.currentBlock().Kind = syntax.BlockDirective

	foundWhitespace := p.at(syntax.WhiteSpace)
	p.acceptWhile(isSpacing(false, false))
	if foundWhitespace {
		p.output(syntax.SpanMetaCode, syntax.AcceptNone)
	} else {
		p.output(syntax.SpanMetaCode, syntax.AcceptAnyExceptNewline)
	}

	value := ""
	p.ensureCurrent()
	if p.endOfFile() || p.at(syntax.NewLine) {
		p.report(diag.DirectiveMustHaveValue, keywordStart, keywordLength, keyword)
	} else {
		valueStart := p.currentStart()
		p.acceptUntil(syntax.NewLine)

		var raw strings.Builder
		for _, tok := range p.span.Tokens() {
			raw.WriteString(tok.Content)
		}
		value = strings.TrimSpace(raw.String())
		startsWithQuote := strings.HasPrefix(value, `"`)
		endsWithQuote := strings.HasSuffix(value, `"`)
		switch {
		case startsWithQuote != endsWithQuote:
			p.report(diag.IncompleteQuotesAroundDirective, valueStart, len([]rune(value)), keyword)
		case startsWithQuote && len(value) > 2:
			value = value[1 : len(value)-1]
		case startsWithQuote:
			value = ""
		}
	}

	p.span.Generator = syntax.TagHelperDirectiveGenerator(kind, value)
	p.completeBlock(true, true)
	p.output(syntax.SpanCode, syntax.AcceptAnyExceptNewline)
}
