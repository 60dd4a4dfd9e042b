package tokenizer

import (
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// Markup tokenizes literal markup.
type Markup struct {
	scanner
}

var _ Tokenizer = (*Markup)(nil)

// NewMarkup creates a markup tokenizer reading from cur.
func NewMarkup(cur *source.Cursor) *Markup {
	return &Markup{scanner: scanner{cur: cur}}
}

// Grammar returns syntax.GrammarMarkup.
func (m *Markup) Grammar() syntax.Grammar {
	return syntax.GrammarMarkup
}

// Next returns the next markup token, or nil at end of input.
func (m *Markup) Next() *syntax.Token {
	if tok := m.pending(); tok != nil {
		return tok
	}
	if m.cur.AtEnd() {
		return nil
	}

	m.begin()
	r := m.current()
	switch {
	case r == '@':
		return m.transition()
	case m.atSymbol():
		return m.symbol()
	case isWhiteSpace(r):
		return m.whitespace()
	case isNewLine(r):
		return m.newline()
	default:
		return m.text()
	}
}

func (m *Markup) atSymbol() bool {
	switch m.current() {
	case '<', '!', '/', '?', '[', '>', ']', '=', '"', '\'', '@':
		return true
	case '-':
		return m.peek(1) == '-'
	default:
		return false
	}
}

func (m *Markup) symbol() *syntax.Token {
	r := m.current()
	m.take()

	switch r {
	case '<':
		return m.emit(syntax.OpenAngle)
	case '!':
		return m.emit(syntax.Bang)
	case '/':
		return m.emit(syntax.ForwardSlash)
	case '?':
		return m.emit(syntax.QuestionMark)
	case '[':
		return m.emit(syntax.LeftBracket)
	case '>':
		return m.emit(syntax.CloseAngle)
	case ']':
		return m.emit(syntax.RightBracket)
	case '=':
		return m.emit(syntax.Equals)
	case '"':
		return m.emit(syntax.DoubleQuote)
	case '\'':
		return m.emit(syntax.SingleQuote)
	case '-':
		m.take()
		return m.emit(syntax.DoubleHyphen)
	default:
		return m.emit(syntax.Unknown)
	}
}

// text consumes a run of literal text. An '@' between two letters or digits,
// as in an e-mail address, stays part of the text.
func (m *Markup) text() *syntax.Token {
	var prev rune
	for !m.cur.AtEnd() {
		r := m.current()
		if isWhiteSpace(r) || isNewLine(r) {
			break
		}
		if m.atSymbol() {
			if r != '@' || !IsLetterOrDigit(prev) || !IsLetterOrDigit(m.peek(1)) {
				break
			}
		}
		prev = r
		m.take()
	}
	return m.emit(syntax.Text)
}
