package tokenizer

import (
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// Code tokenizes embedded code expressions and statements.
type Code struct {
	scanner
}

var _ Tokenizer = (*Code)(nil)

// NewCode creates a code tokenizer reading from cur.
func NewCode(cur *source.Cursor) *Code {
	return &Code{scanner: scanner{cur: cur}}
}

// Grammar returns syntax.GrammarCode.
func (c *Code) Grammar() syntax.Grammar {
	return syntax.GrammarCode
}

// Next returns the next code token, or nil at end of input.
func (c *Code) Next() *syntax.Token {
	if tok := c.pending(); tok != nil {
		return tok
	}
	if c.cur.AtEnd() {
		return nil
	}

	c.begin()
	r := c.current()
	switch {
	case r == '@':
		if c.peek(1) == '"' {
			c.take()
			return c.verbatimString()
		}
		return c.transition()
	case IsIdentifierStart(r):
		return c.identifier()
	case isDecimalDigit(r):
		return c.number()
	case r == '.' && isDecimalDigit(c.peek(1)):
		return c.number()
	case r == '/' && c.peek(1) == '/':
		return c.lineComment()
	case r == '/' && c.peek(1) == '*':
		return c.blockComment()
	case r == '"':
		return c.quoted('"', syntax.StringLiteral)
	case r == '\'':
		return c.quoted('\'', syntax.CharacterLiteral)
	case isWhiteSpace(r):
		return c.whitespace()
	case isNewLine(r):
		return c.newline()
	default:
		return c.punctuation()
	}
}

func (c *Code) identifier() *syntax.Token {
	c.take()
	c.takeWhile(IsIdentifierPart)
	if IsKeyword(c.cur.Slice(c.start)) {
		return c.emit(syntax.Keyword)
	}
	return c.emit(syntax.Identifier)
}

func (c *Code) number() *syntax.Token {
	if c.current() == '0' && (c.peek(1) == 'x' || c.peek(1) == 'X') && isHexDigit(c.peek(2)) {
		c.take()
		c.take()
		c.takeWhile(isHexDigit)
		c.integerSuffix()
		return c.emit(syntax.IntegerLiteral)
	}

	isReal := false
	c.takeWhile(isDecimalDigit)
	if c.current() == '.' && isDecimalDigit(c.peek(1)) {
		isReal = true
		c.take()
		c.takeWhile(isDecimalDigit)
	}
	if r := c.current(); r == 'e' || r == 'E' {
		next := c.peek(1)
		if isDecimalDigit(next) || ((next == '+' || next == '-') && isDecimalDigit(c.peek(2))) {
			isReal = true
			c.take()
			if next == '+' || next == '-' {
				c.take()
			}
			c.takeWhile(isDecimalDigit)
		}
	}
	switch c.current() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		c.take()
		return c.emit(syntax.RealLiteral)
	}
	if isReal {
		return c.emit(syntax.RealLiteral)
	}
	c.integerSuffix()
	return c.emit(syntax.IntegerLiteral)
}

func (c *Code) integerSuffix() {
	switch c.current() {
	case 'u', 'U':
		c.take()
		if r := c.current(); r == 'l' || r == 'L' {
			c.take()
		}
	case 'l', 'L':
		c.take()
		if r := c.current(); r == 'u' || r == 'U' {
			c.take()
		}
	}
}

func (c *Code) lineComment() *syntax.Token {
	c.takeWhile(func(r rune) bool { return !isNewLine(r) })
	return c.emit(syntax.Comment)
}

// blockComment ends at the first "*/"; comment openers inside do not nest.
func (c *Code) blockComment() *syntax.Token {
	c.take()
	c.take()
	for !c.cur.AtEnd() {
		if c.Lookahead("*/", true, true) {
			return c.emit(syntax.Comment)
		}
		c.take()
	}
	c.report(diag.UnterminatedBlockComment, c.start, 1)
	return c.emit(syntax.Comment)
}

// quoted scans a string or character literal with backslash escapes. An
// unterminated literal stops before the end of the line.
func (c *Code) quoted(quote rune, kind syntax.TokenKind) *syntax.Token {
	c.take()
	for {
		r, ok := c.cur.Peek()
		switch {
		case !ok || isNewLine(r):
			if kind == syntax.CharacterLiteral {
				c.report(diag.UnterminatedCharLiteral, c.start, 1)
			} else {
				c.report(diag.UnterminatedStringLiteral, c.start, 1)
			}
			return c.emit(kind)
		case r == '\\':
			c.take()
			if next, more := c.cur.Peek(); more && !isNewLine(next) {
				c.take()
			}
		case r == quote:
			c.take()
			return c.emit(kind)
		default:
			c.take()
		}
	}
}

// verbatimString scans @"..." where "" is an escaped quote and line breaks
// are allowed. The leading '@' has been consumed.
func (c *Code) verbatimString() *syntax.Token {
	c.take()
	for {
		r, ok := c.cur.Peek()
		if !ok {
			c.report(diag.UnterminatedStringLiteral, c.start, 1)
			return c.emit(syntax.StringLiteral)
		}
		c.take()
		if r == '"' {
			if c.current() == '"' {
				c.take()
				continue
			}
			return c.emit(syntax.StringLiteral)
		}
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var compoundOperators = []string{
	"::", "??", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "=>", "->",
}

func (c *Code) punctuation() *syntax.Token {
	for _, op := range compoundOperators {
		if c.Lookahead(op, true, true) {
			if op == "::" {
				return c.emit(syntax.DoubleColon)
			}
			return c.emit(syntax.Operator)
		}
	}

	r := c.current()
	c.take()
	switch r {
	case '{':
		return c.emit(syntax.LeftBrace)
	case '}':
		return c.emit(syntax.RightBrace)
	case '(':
		return c.emit(syntax.LeftParen)
	case ')':
		return c.emit(syntax.RightParen)
	case '[':
		return c.emit(syntax.LeftBracket)
	case ']':
		return c.emit(syntax.RightBracket)
	case ';':
		return c.emit(syntax.Semicolon)
	case ',':
		return c.emit(syntax.Comma)
	case '.':
		return c.emit(syntax.Dot)
	case ':':
		return c.emit(syntax.Colon)
	case '?':
		return c.emit(syntax.QuestionMark)
	case '<':
		return c.emit(syntax.LessThan)
	case '>':
		return c.emit(syntax.GreaterThan)
	case '=':
		return c.emit(syntax.Assign)
	case '!':
		return c.emit(syntax.Bang)
	case '+', '-', '*', '/', '%', '&', '|', '^', '~':
		return c.emit(syntax.Operator)
	default:
		return c.emit(syntax.Unknown)
	}
}
