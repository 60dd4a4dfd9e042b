package parser

import (
	"slices"
	"strings"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
	"github.com/yaklabco/razorlint/pkg/tokenizer"
)

//nolint:gochecknoglobals // Read-only lookup table.
var voidElements = []string{
	"area", "base", "br", "col", "command", "embed", "hr", "img", "input",
	"keygen", "link", "meta", "param", "source", "track", "wbr",
}

func isVoidElement(name string) bool {
	return slices.ContainsFunc(voidElements, func(v string) bool { return strings.EqualFold(v, name) })
}

const (
	textTagName   = "text"
	scriptTagName = "script"
)

// openTag is an element waiting for its end tag.
type openTag struct {
	name  string
	start source.Location
}

type tagStack struct {
	tags []openTag
}

func (s *tagStack) push(tag openTag) { s.tags = append(s.tags, tag) }

func (s *tagStack) pop() openTag {
	tag := s.tags[len(s.tags)-1]
	s.tags = s.tags[:len(s.tags)-1]
	return tag
}

func (s *tagStack) len() int { return len(s.tags) }

func (s *tagStack) clear() { s.tags = nil }

// markupParser parses literal markup and hands transitions to the code
// parser.
type markupParser struct {
	tokenParser

	code *codeParser

	// sequenceCaseSensitive governs matching of a directive block's end
	// sequence. Tag names always compare without case.
	sequenceCaseSensitive bool
	lastTagStart      source.Location
	bufferedOpenAngle *syntax.Token
}

func newMarkupParser(ctx *parseContext, view *tokenizer.View) *markupParser {
	p := &markupParser{tokenParser: newTokenParser(ctx, view)}
	p.outputBeforeComment = func() {
		p.output(syntax.SpanMarkup)
	}
	return p
}

func defaultMarkupSpan(span *syntax.SpanBuilder) {
	span.EditHandler = syntax.DefaultEditHandler()
	span.Generator = syntax.MarkupGenerator()
}

// openBlock starts a block and returns a function that ends it once.
func (p *markupParser) openBlock(kind syntax.BlockKind) func() {
	p.startBlock(kind)
	ended := false
	return func() {
		if !ended {
			ended = true
			p.endBlock()
		}
	}
}

func (p *markupParser) equalName(a, b string) bool {
	if p.sequenceCaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func isText(tok *syntax.Token, content string) bool {
	return tok != nil && tok.Kind == syntax.Text && tok.Content == content
}

// parseDocument parses a whole template.
func (p *markupParser) parseDocument() {
	restore := p.pushSpanConfig(defaultMarkupSpan)
	defer restore()

	p.sync()
	p.resetSpanAt()
	p.startBlock(syntax.BlockMarkup)
	defer p.endBlock()

	p.nextToken()
	if p.ctx.options.ParseLeadingDirectivesOnly {
		p.parseLeadingDirectives()
	}
	for !p.endOfFile() {
		p.skipToAndParseCode(func(tok syntax.Token) bool { return tok.Kind == syntax.OpenAngle })
		p.scanTagInDocumentContext()
	}
	p.addMarkerIfNecessary()
	p.output(syntax.SpanMarkup)
	p.ctx.appendUnparsedTail()
}

// parseLeadingDirectives parses the directives at the top of the document
// and takes everything after them as one markup span.
func (p *markupParser) parseLeadingDirectives() {
	for {
		p.acceptWhile(isSpacing(true, false))
		if !p.atLeadingDirective() {
			break
		}
		p.putCurrentBack()
		p.otherParserBlock()
	}
	for p.ensureCurrent() {
		p.acceptAndMoveNext()
	}
}

func (p *markupParser) atLeadingDirective() bool {
	if !p.at(syntax.Transition) {
		return false
	}
	next := p.lookahead(1)
	if next == nil || next.Kind != syntax.Text {
		return false
	}
	_, ok := p.code.directives[identifierPrefix(next.Content)]
	return ok
}

func identifierPrefix(s string) string {
	for i, r := range s {
		if (i == 0 && !tokenizer.IsIdentifierStart(r)) || (i > 0 && !tokenizer.IsIdentifierPart(r)) {
			return s[:i]
		}
	}
	return s
}

// parseBlock parses a markup block embedded in code: a tag block, a
// "@:" line or a "@<tag>" template.
func (p *markupParser) parseBlock() {
	restore := p.pushSpanConfig(defaultMarkupSpan)
	defer restore()

	p.startBlock(syntax.BlockMarkup)
	defer p.endBlock()

	p.sync()
	p.resetSpanAt()
	if !p.nextToken() {
		return
	}
	p.acceptWhile(isSpacing(true, false))

	switch {
	case p.at(syntax.OpenAngle):
		p.tagBlock(&tagStack{})
	case p.at(syntax.Transition):
		p.output(syntax.SpanMarkup)
		p.acceptAndMoveNext()
		p.span.EditHandler.Accepted = syntax.AcceptNone
		p.span.Generator = syntax.NullGenerator()
		p.output(syntax.SpanTransition)
		if p.at(syntax.Transition) {
			p.span.Generator = syntax.NullGenerator()
			p.acceptAndMoveNext()
			p.output(syntax.SpanMetaCode)
		}
		p.afterTransition()
	case p.current() != nil:
		cur := p.current()
		p.report(diag.MarkupBlockMustStartWithTag, cur.Start, cur.Length())
		p.putCurrentBack()
	}
	p.output(syntax.SpanMarkup)
}

func (p *markupParser) afterTransition() {
	cur := p.current()
	switch {
	case cur != nil && cur.Kind == syntax.Text && strings.HasPrefix(cur.Content, ":"):
		colon := syntax.NewToken(syntax.Colon, ":", cur.Start)
		p.accept(&colon)
		p.span.Generator = syntax.NullGenerator()
		p.output(syntax.SpanMetaCode)
		if rest := cur.Content[1:]; rest != "" {
			restTok := syntax.NewToken(syntax.Text, rest, colon.End())
			p.accept(&restTok)
		}
		p.nextToken()
		p.singleLineMarkup()
	case p.at(syntax.OpenAngle):
		p.tagBlock(&tagStack{})
	default:
		p.putCurrentBack()
	}
}

func (p *markupParser) singleLineMarkup() {
	old := p.ctx.whiteSpaceIsSignificantToAncestorBlock
	p.ctx.whiteSpaceIsSignificantToAncestorBlock = true
	p.span.EditHandler = syntax.DefaultEditHandler()
	p.skipToAndParseCode(func(tok syntax.Token) bool { return tok.Kind == syntax.NewLine })
	if p.at(syntax.NewLine) {
		p.acceptAndMoveNext()
		p.span.EditHandler.Accepted = syntax.AcceptNone
	}
	p.putCurrentBack()
	p.ctx.whiteSpaceIsSignificantToAncestorBlock = old
	p.output(syntax.SpanMarkup)
}

// skipToAndParseCode accepts markup until stop matches, handing every
// transition to the code parser along the way.
func (p *markupParser) skipToAndParseCode(stop func(syntax.Token) bool) {
	var last *syntax.Token
	startOfLine := false

	for p.ensureCurrent() && !stop(*p.current()) {
		switch {
		case p.ctx.nullGenerateWhitespaceAndNewLine:
			p.ctx.nullGenerateWhitespaceAndNewLine = false
			p.span.Generator = syntax.NullGenerator()
			p.acceptWhile(isSpacing(false, false))
			if p.at(syntax.NewLine) {
				p.acceptAndMoveNext()
			}
			p.output(syntax.SpanMarkup)

		case p.at(syntax.NewLine):
			p.accept(last)
			startOfLine = true
			last = nil
			p.acceptAndMoveNext()

		case p.at(syntax.Transition):
			transition := p.current()
			p.nextToken()
			if p.at(syntax.Transition) {
				// "@@" renders a single '@'.
				p.accept(last)
				last = nil
				p.output(syntax.SpanMarkup)
				p.accept(transition)
				p.span.Generator = syntax.NullGenerator()
				p.output(syntax.SpanMarkup)
				p.acceptAndMoveNext()
				continue
			}
			p.putCurrentBack()
			p.putBack(transition)

			if last != nil {
				// Indentation before a transition belongs to the code.
				if !p.ctx.designTime() && last.Kind == syntax.WhiteSpace && startOfLine {
					startOfLine = false
					p.putBack(last)
				} else {
					p.accept(last)
				}
				last = nil
			}
			p.otherParserBlock()

		case p.at(syntax.RazorCommentTransition):
			if last != nil {
				if startOfLine && last.Kind == syntax.WhiteSpace {
					// The indentation is still pending, so markup before it
					// ends where the indentation starts.
					p.addMarkerAt(last.Start)
					p.output(syntax.SpanMarkup)
					p.span.Generator = syntax.NullGenerator()
				}
				p.accept(last)
				last = nil
			}
			p.addMarkerIfNecessary()
			p.output(syntax.SpanMarkup)
			p.razorComment()

			if startOfLine && (p.at(syntax.NewLine) || (p.at(syntax.WhiteSpace) && p.nextIs(syntax.NewLine))) {
				p.acceptWhile(isSpacing(false, false))
				p.acceptAndMoveNext()
				p.span.Generator = syntax.NullGenerator()
				p.output(syntax.SpanMarkup)
			}

		default:
			startOfLine = startOfLine && p.at(syntax.WhiteSpace)
			p.accept(last)
			last = p.current()
			p.nextToken()
		}
	}
	p.accept(last)
}

func (p *markupParser) skipTo(kinds ...syntax.TokenKind) {
	p.skipToAndParseCode(func(tok syntax.Token) bool { return slices.Contains(kinds, tok.Kind) })
}

func (p *markupParser) otherParserBlock() {
	p.addMarkerIfNecessary()
	p.output(syntax.SpanMarkup)

	restore := p.pushSpanConfig(nil)
	p.code.parseBlock()
	restore()

	p.sync()
	p.resetSpanAt()
	p.nextToken()
}

// isBangEscape reports whether the token at offset n is a '!' escaping a
// tag name, as in <!p>.
func (p *markupParser) isBangEscape(n int) bool {
	bang := p.lookahead(n)
	if bang == nil || bang.Kind != syntax.Bang {
		return false
	}
	after := p.lookahead(n + 1)
	return after != nil && after.Kind == syntax.Text && !strings.EqualFold(after.Content, "DOCTYPE")
}

func (p *markupParser) optionalBangEscape() {
	if !p.isBangEscape(0) {
		return
	}
	p.output(syntax.SpanMarkup)
	p.acceptAndMoveNext()
	p.span.Generator = syntax.NullGenerator()
	p.output(syntax.SpanMetaCode, syntax.AcceptNone)
}

func (p *markupParser) atSpecialTag() bool {
	if !p.at(syntax.OpenAngle) {
		return false
	}
	if p.nextIs(syntax.Bang) {
		return !p.isBangEscape(1)
	}
	return p.nextIs(syntax.QuestionMark)
}

func (p *markupParser) tagBlock(tags *tagStack) {
	complete := false
	for {
		p.skipTo(syntax.OpenAngle)
		p.output(syntax.SpanMarkup)

		endTag := func() {}
		atSpecial := p.atSpecialTag()
		if !p.endOfFile() && !atSpecial {
			endTag = p.openBlock(syntax.BlockTag)
		}

		if p.endOfFile() {
			p.endTagBlock(tags, true)
		} else {
			p.lastTagStart = p.currentStart()
			p.bufferedOpenAngle = p.current()
			tagStart := p.currentStart()
			if !p.nextToken() {
				p.accept(p.bufferedOpenAngle)
				p.endTagBlock(tags, false)
			} else {
				complete = p.afterTagStart(tagStart, tags, atSpecial, endTag)
			}
		}

		if complete {
			p.span.EditHandler.Accepted = syntax.AcceptNone
		}
		p.output(syntax.SpanMarkup)
		endTag()

		if tags.len() == 0 {
			break
		}
	}
	p.endTagBlock(tags, complete)
}

func (p *markupParser) afterTagStart(tagStart source.Location, tags *tagStack, atSpecial bool, endTag func()) bool {
	if cur := p.current(); cur != nil {
		switch {
		case cur.Kind == syntax.ForwardSlash:
			return p.endTag(tagStart, tags, endTag)
		case cur.Kind == syntax.Bang && atSpecial:
			p.accept(p.bufferedOpenAngle)
			return p.bangTag()
		case cur.Kind == syntax.QuestionMark:
			p.accept(p.bufferedOpenAngle)
			return p.xmlPI()
		default:
			return p.startTag(tags, endTag)
		}
	}
	if tags.len() == 0 {
		p.report(diag.OuterTagMissingName, p.currentStart(), 1)
	}
	return false
}

func (p *markupParser) xmlPI() bool {
	p.acceptAndMoveNext()
	return p.acceptUntilAll(syntax.QuestionMark, syntax.CloseAngle)
}

// bangTag parses <!-- -->, <![CDATA[ ]]> and <!DOCTYPE>. The '<' has been
// accepted and the current token is the '!'.
func (p *markupParser) bangTag() bool {
	if !p.acceptAndMoveNext() {
		return false
	}

	if p.ctx.options.version() < Version2_0 {
		if p.at(syntax.DoubleHyphen) {
			return p.legacyHTMLComment()
		}
	} else if p.isHTMLCommentAhead() {
		return p.htmlComment()
	}

	if p.at(syntax.LeftBracket) {
		if p.acceptAndMoveNext() {
			return p.cData()
		}
		return false
	}
	p.acceptAndMoveNext()
	return p.acceptUntilAll(syntax.CloseAngle)
}

func (p *markupParser) htmlComment() bool {
	endComment := p.openBlock(syntax.BlockHTMLComment)
	defer endComment()

	p.acceptAndMoveNext()
	p.output(syntax.SpanMarkup, syntax.AcceptNone)
	p.span.EditHandler.Accepted = syntax.AcceptWhiteSpace

	for !p.endOfFile() {
		p.skipTo(syntax.DoubleHyphen)
		trailing := p.acceptAllButLastDoubleHyphens()
		if p.at(syntax.CloseAngle) {
			p.output(syntax.SpanMarkup, syntax.AcceptWhiteSpace)
			p.acceptAll(trailing)
			p.acceptAndMoveNext()
			p.output(syntax.SpanMarkup, syntax.AcceptNone)
			return true
		}
		p.acceptAll(trailing)
	}
	return false
}

// legacyHTMLComment accepts a comment up to the first "-->".
func (p *markupParser) legacyHTMLComment() bool {
	p.acceptAndMoveNext()
	p.span.EditHandler.Accepted = syntax.AcceptAny
	for !p.endOfFile() {
		p.skipTo(syntax.DoubleHyphen)
		if !p.at(syntax.DoubleHyphen) {
			continue
		}
		p.acceptWhile(func(tok syntax.Token) bool { return tok.Kind == syntax.DoubleHyphen })
		if isText(p.current(), "-") {
			p.acceptAndMoveNext()
		}
		if p.at(syntax.CloseAngle) {
			p.acceptAndMoveNext()
			return true
		}
	}
	return false
}

// acceptAllButLastDoubleHyphens accepts a run of "--" tokens except the
// last one and returns the tokens that may close the comment.
func (p *markupParser) acceptAllButLastDoubleHyphens() []syntax.Token {
	last := p.current()
	if last == nil {
		return nil
	}
	for p.nextIs(syntax.DoubleHyphen) {
		p.accept(last)
		p.nextToken()
		last = p.current()
	}
	p.nextToken()

	if isText(p.current(), "-") {
		hyphen := p.current()
		if !p.nextIs(syntax.CloseAngle) {
			p.accept(last)
			p.acceptAndMoveNext()
			return nil
		}
		p.nextToken()
		return []syntax.Token{*last, *hyphen}
	}
	return []syntax.Token{*last}
}

// isHTMLCommentAhead reports whether the "--" at the cursor opens a well
// formed HTML comment.
func (p *markupParser) isHTMLCommentAhead() bool {
	if !p.at(syntax.DoubleHyphen) {
		return false
	}
	closesWithHyphen := func(tok syntax.Token) bool {
		return tok.Kind == syntax.Text && tok.Content == "-" && p.nextIs(syntax.CloseAngle)
	}
	// The content must not start with ">" or "->".
	if p.nextIs(syntax.CloseAngle) || p.nextMatches(closesWithHyphen) {
		return false
	}

	valid := false
	p.view.LookaheadUntil(func(tok syntax.Token, tokens []syntax.Token) bool {
		switch tok.Kind {
		case syntax.DoubleHyphen:
			switch {
			case p.nextIs(syntax.CloseAngle):
				valid = !commentContentEndingInvalid(tokens[1 : len(tokens)-1])
				return true
			case p.nextMatches(closesWithHyphen):
				valid = true
				return true
			case p.nextMatches(func(next syntax.Token) bool {
				return next.Kind == syntax.Bang && p.nextIs(syntax.CloseAngle)
			}):
				valid = false
				return true
			}
		case syntax.OpenAngle:
			if p.nextMatches(func(next syntax.Token) bool {
				return next.Kind == syntax.Bang && p.nextIs(syntax.DoubleHyphen)
			}) {
				valid = false
				return true
			}
		}
		return false
	})
	return valid
}

// commentContentEndingInvalid reports whether comment content ends with
// "<!-".
func commentContentEndingInvalid(content []syntax.Token) bool {
	n := len(content)
	if n < 3 {
		return false
	}
	return content[n-1].Kind == syntax.Text && content[n-1].Content == "-" &&
		content[n-2].Kind == syntax.Bang &&
		content[n-3].Kind == syntax.OpenAngle
}

func (p *markupParser) cData() bool {
	cur := p.current()
	if cur == nil || cur.Kind != syntax.Text || !strings.EqualFold(cur.Content, "cdata") {
		return false
	}
	if !p.acceptAndMoveNext() || !p.at(syntax.LeftBracket) {
		return false
	}
	return p.acceptUntilAll(syntax.RightBracket, syntax.RightBracket, syntax.CloseAngle)
}

// acceptUntilAll accepts input until the full sequence has been accepted.
func (p *markupParser) acceptUntilAll(sequence ...syntax.TokenKind) bool {
	for !p.endOfFile() {
		p.skipTo(sequence[0])
		if p.acceptAllKinds(sequence...) {
			return true
		}
	}
	p.span.EditHandler.Accepted = syntax.AcceptAny
	return false
}

func (p *markupParser) endTag(tagStart source.Location, tags *tagStack, endTag func()) bool {
	slash := p.current()
	if !p.nextToken() {
		p.accept(p.bufferedOpenAngle)
		p.accept(slash)
		return false
	}

	name := ""
	switch {
	case p.at(syntax.Bang):
		if next := p.lookahead(1); next != nil && next.Kind == syntax.Text {
			name = "!" + next.Content
		}
	case p.at(syntax.Text):
		name = p.current().Content
	}

	matched := p.removeTag(tags, name, tagStart)
	// "</!text>" is an escaped ordinary tag, so only a plain name matches here.
	if tags.len() == 0 && strings.EqualFold(name, textTagName) && matched {
		return p.endTextTag(slash, endTag)
	}

	p.accept(p.bufferedOpenAngle)
	p.accept(slash)
	p.optionalBangEscape()
	p.acceptUntil(syntax.CloseAngle)
	return p.optional(syntax.CloseAngle)
}

func (p *markupParser) endTextTag(slash *syntax.Token, endTag func()) bool {
	p.accept(p.bufferedOpenAngle)
	p.accept(slash)

	textLoc := p.currentStart()
	p.acceptAndMoveNext()

	seenClose := p.optional(syntax.CloseAngle)
	if !seenClose {
		p.report(diag.TextTagCannotContainAttributes, textLoc, len(textTagName))
		p.span.EditHandler.Accepted = syntax.AcceptAny
		p.recoverTextTag()
	} else {
		p.span.EditHandler.Accepted = syntax.AcceptNone
	}

	p.span.Generator = syntax.NullGenerator()
	p.completeTagBlockWithSpan(endTag, p.span.EditHandler.Accepted, syntax.SpanTransition)
	return seenClose
}

func (p *markupParser) recoverTextTag() {
	p.acceptUntil(syntax.CloseAngle, syntax.NewLine)
	p.optional(syntax.CloseAngle)
}

func (p *markupParser) completeTagBlockWithSpan(endTag func(), accepted syntax.AcceptedCharacters, kind syntax.SpanKind) {
	p.span.EditHandler.Accepted = accepted
	p.output(kind)
	endTag()
}

func (p *markupParser) startTag(tags *tagStack, endTag func()) bool {
	var bang *syntax.Token
	nameTok := p.current()
	if p.at(syntax.Bang) {
		bang = p.current()
		nameTok = p.lookahead(1)
	}

	name := ""
	if nameTok != nil && nameTok.Kind == syntax.Text {
		name = nameTok.Content
		if bang != nil {
			name = "!" + name
		}
	}
	tag := openTag{name: name, start: p.lastTagStart}

	// "<!text>" is an escaped ordinary tag.
	if tags.len() == 0 && strings.EqualFold(name, textTagName) {
		return p.startTextTag(tags, tag, endTag)
	}

	p.accept(p.bufferedOpenAngle)
	p.optionalBangEscape()
	p.optional(syntax.Text)
	return p.restOfTag(tag, tags, endTag)
}

func (p *markupParser) startTextTag(tags *tagStack, tag openTag, endTag func()) bool {
	p.output(syntax.SpanMarkup)
	p.span.Generator = syntax.NullGenerator()
	p.accept(p.bufferedOpenAngle)

	textLoc := p.currentStart()
	p.acceptAndMoveNext()

	bookmark := p.currentStart()
	spacing := p.readWhile(isSpacing(true, false))
	empty := p.at(syntax.ForwardSlash)
	if empty {
		p.acceptAll(spacing)
		p.acceptAndMoveNext()
		bookmark = p.currentStart()
		spacing = p.readWhile(isSpacing(true, false))
	}

	if p.at(syntax.CloseAngle) {
		p.acceptAll(spacing)
		p.acceptAndMoveNext()
		p.span.EditHandler.Accepted = syntax.AcceptNone
	} else {
		p.seek(bookmark)
		p.report(diag.TextTagCannotContainAttributes, textLoc, len(textTagName))
		p.recoverTextTag()
	}

	if !empty {
		tags.push(tag)
	}
	p.completeTagBlockWithSpan(endTag, p.span.EditHandler.Accepted, syntax.SpanTransition)
	return true
}

func (p *markupParser) restOfTag(tag openTag, tags *tagStack, endTag func()) bool {
	p.tagContent()

	// A '<' here abandons the tag.
	if p.at(syntax.OpenAngle) {
		return false
	}

	isEmpty := p.at(syntax.ForwardSlash)
	if isEmpty {
		p.acceptAndMoveNext()
	}

	seenClose := p.optional(syntax.CloseAngle)
	switch {
	case !seenClose:
		p.report(diag.UnfinishedTag, tag.start.Advance("<"), max(len([]rune(tag.name)), 1), tag.name)
	case isEmpty:
	case isVoidElement(strings.TrimSpace(tag.name)):
		p.completeTagBlockWithSpan(endTag, syntax.AcceptNone, syntax.SpanMarkup)
		return p.voidElementEndTag(strings.TrimSpace(tag.name))
	case strings.EqualFold(tag.name, scriptTagName):
		if !p.currentScriptTagExpectsHTML() {
			p.completeTagBlockWithSpan(endTag, syntax.AcceptNone, syntax.SpanMarkup)
			p.skipToEndScriptAndParseCode(syntax.AcceptNone)
		} else {
			tags.push(tag)
		}
	default:
		tags.push(tag)
	}
	return seenClose
}

// voidElementEndTag accepts a stray end tag right after a void element,
// as in <br></br>.
func (p *markupParser) voidElementEndTag(name string) bool {
	bookmark := p.currentStart()
	spacing := p.readWhile(isSpacing(true, false))

	if p.at(syntax.OpenAngle) && p.nextIs(syntax.ForwardSlash) {
		if next := p.lookahead(2); next != nil && next.Kind == syntax.Text && strings.EqualFold(next.Content, name) {
			p.acceptAll(spacing)
			p.output(syntax.SpanMarkup)

			endTag := p.openBlock(syntax.BlockTag)
			p.acceptAndMoveNext()
			p.acceptAndMoveNext()
			p.acceptAndMoveNext()
			p.acceptUntil(syntax.CloseAngle, syntax.OpenAngle)
			seenClose := p.optional(syntax.CloseAngle)
			if seenClose {
				p.span.EditHandler.Accepted = syntax.AcceptNone
			}
			p.output(syntax.SpanMarkup)
			endTag()
			return true
		}
	}
	p.seek(bookmark)
	return true
}

func (p *markupParser) tagContent() {
	if !p.atAny(syntax.WhiteSpace, syntax.NewLine) {
		// Something other than whitespace follows the tag name.
		p.recoverToEndOfTag()
		return
	}
	for !p.endOfFile() && !p.isEndOfTag() {
		p.beforeAttribute()
	}
}

func (p *markupParser) isEndOfTag() bool {
	if p.at(syntax.ForwardSlash) {
		if p.nextIs(syntax.CloseAngle) {
			return true
		}
		p.acceptAndMoveNext()
	}
	return p.atAny(syntax.CloseAngle, syntax.OpenAngle)
}

func isWhiteSpaceOrNewLine(tok syntax.Token) bool {
	return tok.Kind == syntax.WhiteSpace || tok.Kind == syntax.NewLine
}

func isValidAttributeName(tok *syntax.Token) bool {
	if tok == nil {
		return false
	}
	switch tok.Kind {
	case syntax.WhiteSpace, syntax.NewLine, syntax.CloseAngle, syntax.OpenAngle, syntax.ForwardSlash,
		syntax.DoubleQuote, syntax.SingleQuote, syntax.Equals, syntax.Unknown:
		return false
	default:
		return true
	}
}

func (p *markupParser) beforeAttribute() {
	ws := p.readWhile(isWhiteSpaceOrNewLine)
	if p.atAny(syntax.Transition, syntax.RazorCommentTransition) || !isValidAttributeName(p.current()) {
		p.acceptAll(ws)
		p.recoverToEndOfTag()
		return
	}

	name := p.readWhile(func(tok syntax.Token) bool {
		switch tok.Kind {
		case syntax.WhiteSpace, syntax.NewLine, syntax.Equals, syntax.CloseAngle, syntax.OpenAngle:
			return false
		case syntax.ForwardSlash:
			return !p.nextIs(syntax.CloseAngle)
		default:
			return true
		}
	})
	wsAfterName := p.readWhile(isWhiteSpaceOrNewLine)

	if !p.at(syntax.Equals) {
		// Minimized attribute; whatever follows is parsed as the next attribute.
		p.putCurrentBack()
		p.putBackAll(wsAfterName)
		p.output(syntax.SpanMarkup)
		endAttr := p.openBlock(syntax.BlockMarkup)
		p.acceptAll(ws)
		p.acceptAll(name)
		p.output(syntax.SpanMarkup)
		endAttr()
		return
	}

	p.output(syntax.SpanMarkup)
	endAttr := p.openBlock(syntax.BlockMarkup)
	p.attributePrefix(ws, name, wsAfterName)
	endAttr()
}

func (p *markupParser) attributePrefix(ws, nameTokens, wsAfterName []syntax.Token) {
	name := tokenizer.Join(nameTokens)
	canBeConditional := !(len(name) >= 5 && strings.EqualFold(name[:5], "data-"))

	p.acceptAll(ws)
	p.acceptAll(nameTokens)
	p.acceptAll(wsAfterName)
	p.acceptAndMoveNext()

	wsAfterEquals := p.readWhile(isWhiteSpaceOrNewLine)
	quote := syntax.Unknown
	if p.atAny(syntax.SingleQuote, syntax.DoubleQuote) {
		p.acceptAll(wsAfterEquals)
		quote = p.current().Kind
		p.acceptAndMoveNext()
	} else if len(wsAfterEquals) > 0 {
		// An unquoted value after whitespace is not part of this attribute.
		p.putCurrentBack()
		p.putBackAll(wsAfterEquals)
	}

	prefix := syntax.Tag(tokenizer.Join(p.span.Tokens()), p.span.Start())

	if !canBeConditional {
		p.output(syntax.SpanMarkup)
		if quote == syntax.Unknown && len(wsAfterEquals) > 0 {
			return
		}
		p.skipToAndParseCode(func(tok syntax.Token) bool { return p.isEndOfAttributeValue(quote, &tok) })
		p.output(syntax.SpanMarkup)
		if quote != syntax.Unknown {
			p.optional(quote)
		}
		p.output(syntax.SpanMarkup)
		return
	}

	p.span.Generator = syntax.NullGenerator()
	p.output(syntax.SpanMarkup)

	if quote != syntax.Unknown || len(wsAfterEquals) == 0 {
		for !p.endOfFile() && !p.isEndOfAttributeValue(quote, p.current()) {
			p.attributeValue(quote)
		}
	}

	suffix := syntax.Tag("", p.currentStart())
	if quote != syntax.Unknown && p.at(quote) {
		suffix = syntax.Tag(p.current().Content, p.currentStart())
		p.acceptAndMoveNext()
	}
	if p.span.HasTokens() {
		p.span.Generator = syntax.NullGenerator()
		p.output(syntax.SpanMarkup)
	}
	p.currentBlock().Generator = syntax.AttributeGenerator(name, prefix, suffix)
}

func (p *markupParser) attributeValue(quote syntax.TokenKind) {
	prefixStart := p.currentStart()
	prefix := p.readWhile(isWhiteSpaceOrNewLine)
	prefixTag := syntax.Tag(tokenizer.Join(prefix), prefixStart)

	switch {
	case p.at(syntax.Transition) && p.nextIs(syntax.Transition):
		// "@@" renders a single '@'.
		endValue := p.openBlock(syntax.BlockMarkup)
		p.acceptAll(prefix)
		p.span.Generator = syntax.LiteralAttributeGenerator(prefixTag, syntax.Tag(p.current().Content, p.currentStart()))
		p.acceptAndMoveNext()
		p.output(syntax.SpanMarkup, syntax.AcceptNone)
		p.span.Generator = syntax.NullGenerator()
		p.acceptAndMoveNext()
		p.output(syntax.SpanMarkup, syntax.AcceptNone)
		endValue()

	case p.at(syntax.Transition):
		p.acceptAll(prefix)
		valueStart := p.currentStart()
		p.putCurrentBack()
		p.span.Generator = syntax.NullGenerator()
		endValue := p.openBlock(syntax.BlockMarkup)
		p.currentBlock().Generator = syntax.DynamicAttributeGenerator(prefixTag, valueStart)
		p.otherParserBlock()
		endValue()

	default:
		p.acceptAll(prefix)
		valueStart := p.currentStart()
		value := p.readWhile(func(tok syntax.Token) bool {
			return tok.Kind != syntax.WhiteSpace && tok.Kind != syntax.NewLine &&
				tok.Kind != syntax.Transition && !p.isEndOfAttributeValue(quote, &tok)
		})
		p.acceptAll(value)
		p.span.Generator = syntax.LiteralAttributeGenerator(prefixTag, syntax.Tag(tokenizer.Join(value), valueStart))
	}
	p.output(syntax.SpanMarkup)
}

func (p *markupParser) isEndOfAttributeValue(quote syntax.TokenKind, tok *syntax.Token) bool {
	if p.endOfFile() || tok == nil {
		return true
	}
	if quote != syntax.Unknown {
		return tok.Kind == quote
	}
	switch tok.Kind {
	case syntax.DoubleQuote, syntax.SingleQuote, syntax.OpenAngle, syntax.Equals,
		syntax.CloseAngle, syntax.WhiteSpace, syntax.NewLine:
		return true
	case syntax.ForwardSlash:
		return p.nextIs(syntax.CloseAngle)
	default:
		return false
	}
}

// recoverToEndOfTag skips malformed tag content, still parsing code and
// quoted strings.
func (p *markupParser) recoverToEndOfTag() {
	for !p.endOfFile() {
		p.skipTo(syntax.CloseAngle, syntax.ForwardSlash, syntax.OpenAngle, syntax.SingleQuote, syntax.DoubleQuote)
		if p.endOfFile() || !p.ensureCurrent() {
			return
		}
		switch p.current().Kind {
		case syntax.SingleQuote, syntax.DoubleQuote:
			quote := p.current().Kind
			p.acceptAndMoveNext()
			p.skipTo(quote)
			if !p.endOfFile() {
				p.acceptAndMoveNext()
			}
		case syntax.OpenAngle, syntax.ForwardSlash, syntax.CloseAngle:
			return
		default:
			p.acceptAndMoveNext()
		}
	}
}

// skipToEndScriptAndParseCode accepts script content up to and including
// </script>.
func (p *markupParser) skipToEndScriptAndParseCode(endAccepted syntax.AcceptedCharacters) {
	seenEndScript := false
	for !seenEndScript && !p.endOfFile() {
		p.skipTo(syntax.OpenAngle)
		tagStart := p.currentStart()
		if p.nextIs(syntax.ForwardSlash) {
			if name := p.lookahead(2); name != nil && name.Kind == syntax.Text && strings.EqualFold(name.Content, scriptTagName) {
				seenEndScript = true
			}
		}

		if !seenEndScript {
			p.acceptAndMoveNext()
			continue
		}

		p.output(syntax.SpanMarkup)
		endTag := p.openBlock(syntax.BlockTag)
		p.span.EditHandler.Accepted = endAccepted
		p.acceptAndMoveNext()
		p.acceptAndMoveNext()
		p.skipTo(syntax.CloseAngle)
		if !p.optional(syntax.CloseAngle) {
			p.report(diag.UnfinishedTag, tagStart.Advance("</"), len(scriptTagName), scriptTagName)
		}
		p.output(syntax.SpanMarkup)
		endTag()
	}
}

// currentScriptTagExpectsHTML reports whether the open script tag has
// type="text/html".
func (p *markupParser) currentScriptTagExpectsHTML() bool {
	for _, child := range p.currentBlock().Children {
		block, ok := child.(*syntax.Block)
		if !ok || block.Generator.Kind != syntax.GenAttribute || len(block.Children()) < 2 || !isTypeAttribute(block) {
			continue
		}
		var value strings.Builder
		for _, node := range block.Children() {
			if span, ok := node.(*syntax.Span); ok && span.Generator.Kind == syntax.GenLiteralAttribute {
				value.WriteString(span.Content())
			}
		}
		return strings.EqualFold(strings.TrimSpace(value.String()), "text/html")
	}
	return false
}

func isTypeAttribute(block *syntax.Block) bool {
	span, ok := block.Children()[0].(*syntax.Span)
	if !ok {
		return false
	}
	content := strings.TrimLeft(span.Content(), " \t\r\n\f")
	if len(content) < 4 || !strings.EqualFold(content[:4], "type") {
		return false
	}
	return len(content) == 4 || strings.ContainsRune(" \t\r\n\f=", rune(content[4]))
}

func (p *markupParser) removeTag(tags *tagStack, name string, tagStart source.Location) bool {
	var current *openTag
	for tags.len() > 0 {
		tag := tags.pop()
		current = &tag
		// HTML tag names are case-insensitive inside any block.
		if strings.EqualFold(name, tag.name) {
			return true
		}
	}
	if current != nil {
		p.report(diag.MissingEndTag, current.start.Advance("<"), len([]rune(current.name)), current.name)
	} else {
		p.report(diag.UnexpectedEndTag, tagStart.Advance("</"), len([]rune(name)), name)
	}
	return false
}

func (p *markupParser) endTagBlock(tags *tagStack, complete bool) {
	if tags.len() > 0 {
		// Input ended before the outermost tag was closed.
		var tag openTag
		for tags.len() > 0 {
			tag = tags.pop()
		}
		p.report(diag.MissingEndTag, tag.start.Advance("<"), max(len([]rune(tag.name)), 1), tag.name)
	} else if complete {
		p.span.EditHandler.Accepted = syntax.AcceptNone
	}
	tags.clear()

	if !p.ctx.designTime() {
		shouldAccept := true
		if last := p.ctx.builder.LastSpan(); last != nil && last.Kind == syntax.SpanTransition {
			ws := p.readWhile(isWhiteSpaceOrNewLine)
			// Whitespace after </text> stays with the code unless markup follows.
			next := p.lookahead(1)
			if !p.at(syntax.OpenAngle) && !(p.at(syntax.Transition) && next != nil && strings.HasPrefix(next.Content, ":")) {
				shouldAccept = false
			}
			p.putCurrentBack()
			p.putBackAll(ws)
			p.ensureCurrent()
		}
		if shouldAccept {
			p.acceptWhile(isSpacing(false, false))
			p.optional(syntax.NewLine)
		}
	} else if p.span.EditHandler.Accepted == syntax.AcceptAny {
		p.acceptWhile(isSpacing(false, false))
		p.optional(syntax.NewLine)
	}

	p.putCurrentBack()
	if !complete {
		p.addMarkerIfNecessary()
	}
	p.output(syntax.SpanMarkup)
}

func (p *markupParser) scanTagInDocumentContext() {
	if !p.at(syntax.OpenAngle) {
		return
	}

	if p.nextIs(syntax.Bang) && !p.isBangEscape(1) {
		if next := p.lookahead(2); next != nil && next.Kind == syntax.DoubleHyphen {
			p.output(syntax.SpanMarkup)
		}
		p.acceptAndMoveNext()
		p.bangTag()
		return
	}
	if p.nextIs(syntax.QuestionMark) {
		p.acceptAndMoveNext()
		p.xmlPI()
		return
	}

	p.output(syntax.SpanMarkup)
	endTag := p.openBlock(syntax.BlockTag)
	p.acceptAndMoveNext()

	if !p.at(syntax.ForwardSlash) {
		p.optionalBangEscape()
		scriptTag := p.at(syntax.Text) && strings.EqualFold(p.current().Content, scriptTagName)
		p.optional(syntax.Text)
		p.tagContent()
		p.optional(syntax.ForwardSlash)
		p.optional(syntax.CloseAngle)
		if scriptTag && !p.currentScriptTagExpectsHTML() {
			p.output(syntax.SpanMarkup)
			endTag()
			p.skipToEndScriptAndParseCode(syntax.AcceptAny)
			return
		}
	} else {
		p.optional(syntax.ForwardSlash)
		p.optionalBangEscape()
		p.optional(syntax.Text)
		p.optional(syntax.WhiteSpace)
		p.optional(syntax.CloseAngle)
	}
	p.output(syntax.SpanMarkup)
	endTag()
}

// parseRazorBlock parses the markup body of a directive block up to the
// closing sequence, which is left for the caller.
func (p *markupParser) parseRazorBlock(left, right string, caseSensitive bool) {
	restore := p.pushSpanConfig(defaultMarkupSpan)
	defer restore()

	p.sync()
	p.resetSpanAt()
	p.startBlock(syntax.BlockMarkup)
	defer p.endBlock()

	p.nextToken()
	wasCaseSensitive := p.sequenceCaseSensitive
	p.sequenceCaseSensitive = caseSensitive
	defer func() { p.sequenceCaseSensitive = wasCaseSensitive }()
	if left == "" {
		p.nonNestingSection(strings.Fields(right))
	} else {
		p.nestingSection(left, right)
	}
	p.addMarkerIfNecessary()
	p.output(syntax.SpanMarkup)
}

func (p *markupParser) nonNestingSection(sequence []string) {
	for {
		p.skipToAndParseCode(func(tok syntax.Token) bool {
			return tok.Kind == syntax.OpenAngle || p.atEnd(sequence)
		})
		p.scanTagInDocumentContext()
		if p.endOfFile() || p.atEnd(sequence) {
			break
		}
	}
	p.putCurrentBack()
}

// atEnd reports whether the closing sequence, possibly separated by
// whitespace, starts at the current token.
func (p *markupParser) atEnd(sequence []string) bool {
	if len(sequence) == 0 || !p.ensureCurrent() || !p.equalName(p.current().Content, sequence[0]) {
		return false
	}
	bookmark := p.currentStart()
	defer p.seek(bookmark)

	for _, part := range sequence {
		if !p.endOfFile() && !p.equalName(p.current().Content, part) {
			return false
		}
		p.nextToken()
		for !p.endOfFile() && p.ensureCurrent() && isSpacing(true, false)(*p.current()) {
			p.nextToken()
		}
	}
	return true
}

func (p *markupParser) nestingSection(left, right string) {
	nesting := 1
	for nesting > 0 && !p.endOfFile() {
		p.skipTo(syntax.Text, syntax.OpenAngle)
		if !p.at(syntax.Text) {
			p.scanTagInDocumentContext()
			continue
		}
		nesting += p.processTextToken(left, right, nesting)
		if p.current() != nil {
			p.acceptAndMoveNext()
		} else if nesting > 0 {
			p.nextToken()
		}
	}
}

// processTextToken looks for the first nesting sequence in the current
// text token and returns the nesting change it causes.
func (p *markupParser) processTextToken(left, right string, nesting int) int {
	runes := []rune(p.current().Content)
	for i := range runes {
		delta := p.handleNestingSequence(left, runes, i, nesting, 1)
		if delta == 0 {
			delta = p.handleNestingSequence(right, runes, i, nesting, -1)
		}
		if delta != 0 {
			return delta
		}
	}
	return 0
}

func (p *markupParser) handleNestingSequence(sequence string, runes []rune, pos, nesting, delta int) int {
	seq := []rune(sequence)
	if len(seq) == 0 || pos+len(seq) > len(runes) || !p.equalName(string(runes[pos:pos+len(seq)]), sequence) {
		return 0
	}

	tok := *p.current()
	p.putCurrentBack()

	pre := syntax.NewToken(syntax.Text, string(runes[:pos]), tok.Start)
	seqTok := syntax.NewToken(syntax.Text, string(runes[pos:pos+len(seq)]), pre.End())
	if pre.Content != "" {
		p.accept(&pre)
	}

	if nesting+delta == 0 {
		// The caller accepts the closing sequence.
		p.view.Seek(seqTok.Start)
		return delta
	}
	p.accept(&seqTok)
	p.view.Seek(seqTok.End())
	return delta
}
