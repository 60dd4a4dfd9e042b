// Package tokenizer turns source text into markup and code tokens.
//
// Both tokenizers read from a shared source.Cursor so the parser can switch
// grammars at any position. Neither ever fails: malformed input yields
// tokens carrying diagnostics.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// Tokenizer produces tokens of one grammar.
type Tokenizer interface {
	// Next returns the next token, or nil at end of input.
	Next() *syntax.Token

	// Reset moves to loc and returns to the initial scanning state.
	Reset(loc source.Location)

	// Location returns the location of the next character to be read.
	Location() source.Location

	// Checkpoint captures the scanning position and state.
	Checkpoint() Checkpoint

	// Rewind restores a checkpoint.
	Rewind(cp Checkpoint)

	// Lookahead reports whether the upcoming characters match text,
	// consuming them when takeIfMatch is set.
	Lookahead(text string, takeIfMatch, caseSensitive bool) bool

	// Cursor returns the shared cursor.
	Cursor() *source.Cursor

	// Grammar reports which grammar the tokenizer produces.
	Grammar() syntax.Grammar
}

// Checkpoint is an opaque tokenizer position.
type Checkpoint struct {
	loc   source.Location
	state state
}

// Location returns the checkpoint location.
func (c Checkpoint) Location() source.Location {
	return c.loc
}

type state uint8

const (
	stateData state = iota
	stateEscapedTransition
	stateCommentStar
	stateCommentBody
	stateCommentEndStar
	stateCommentEndTransition
)

// scanner holds the machinery shared by both tokenizers: token boundaries,
// the razor comment sub-machine and character lookahead.
type scanner struct {
	cur   *source.Cursor
	state state

	start source.Location
	diags []diag.Diagnostic
}

func (s *scanner) Location() source.Location {
	return s.cur.Location()
}

func (s *scanner) Cursor() *source.Cursor {
	return s.cur
}

func (s *scanner) Reset(loc source.Location) {
	s.cur.Seek(loc)
	s.state = stateData
}

func (s *scanner) Checkpoint() Checkpoint {
	return Checkpoint{loc: s.cur.Location(), state: s.state}
}

func (s *scanner) Rewind(cp Checkpoint) {
	s.cur.Seek(cp.loc)
	s.state = cp.state
}

func (s *scanner) begin() {
	s.start = s.cur.Location()
	s.diags = nil
}

func (s *scanner) emit(kind syntax.TokenKind) *syntax.Token {
	tok := syntax.NewToken(kind, s.cur.Slice(s.start), s.start, s.diags...)
	s.diags = nil
	return &tok
}

func (s *scanner) report(kind diag.Kind, loc source.Location, length int, args ...any) {
	s.diags = append(s.diags, diag.At(kind, loc, length, args...))
}

func (s *scanner) current() rune {
	r, _ := s.cur.Peek()
	return r
}

func (s *scanner) peek(n int) rune {
	r, _ := s.cur.PeekAt(n)
	return r
}

func (s *scanner) take() {
	s.cur.Take()
}

func (s *scanner) takeWhile(pred func(rune) bool) {
	for {
		r, ok := s.cur.Peek()
		if !ok || !pred(r) {
			return
		}
		s.cur.Take()
	}
}

// Lookahead reports whether the upcoming characters match text. When they
// match and takeIfMatch is set the characters are consumed; otherwise the
// cursor is left untouched.
func (s *scanner) Lookahead(text string, takeIfMatch, caseSensitive bool) bool {
	i := 0
	for _, want := range text {
		got, ok := s.cur.PeekAt(i)
		if !ok {
			return false
		}
		if caseSensitive {
			if got != want {
				return false
			}
		} else if unicode.ToLower(got) != unicode.ToLower(want) {
			return false
		}
		i++
	}
	if takeIfMatch {
		for range i {
			s.cur.Take()
		}
	}
	return true
}

// whitespace consumes non-newline white space.
func (s *scanner) whitespace() *syntax.Token {
	s.takeWhile(isWhiteSpace)
	return s.emit(syntax.WhiteSpace)
}

// newline consumes one line terminator, treating CRLF as a single token.
func (s *scanner) newline() *syntax.Token {
	if s.current() == '\r' && s.peek(1) == '\n' {
		s.take()
	}
	s.take()
	return s.emit(syntax.NewLine)
}

// transition consumes '@' and emits it. A following '*' arms the razor
// comment states and a following '@' is emitted as a second transition.
func (s *scanner) transition() *syntax.Token {
	s.take()
	switch s.current() {
	case '*':
		s.state = stateCommentStar
		return s.emit(syntax.RazorCommentTransition)
	case '@':
		s.state = stateEscapedTransition
		return s.emit(syntax.Transition)
	default:
		return s.emit(syntax.Transition)
	}
}

// pending emits tokens owed by a previous transition. It returns nil when
// the scanner is in its data state.
func (s *scanner) pending() *syntax.Token {
	switch s.state {
	case stateEscapedTransition:
		s.state = stateData
		s.begin()
		s.take()
		return s.emit(syntax.Transition)

	case stateCommentStar:
		s.state = stateCommentBody
		s.begin()
		s.take()
		return s.emit(syntax.RazorCommentStar)

	case stateCommentBody:
		s.begin()
		for !s.cur.AtEnd() && !s.Lookahead("*@", false, true) {
			s.take()
		}
		s.state = stateCommentEndStar
		if s.cur.AtEnd() {
			s.state = stateData
		}
		if s.cur.Location().AbsoluteIndex > s.start.AbsoluteIndex {
			return s.emit(syntax.RazorComment)
		}
		return s.pending()

	case stateCommentEndStar:
		s.state = stateCommentEndTransition
		s.begin()
		s.take()
		return s.emit(syntax.RazorCommentStar)

	case stateCommentEndTransition:
		s.state = stateData
		s.begin()
		s.take()
		return s.emit(syntax.RazorCommentTransition)

	case stateData:
	}
	return nil
}

// Tokenize runs t to the end of input and returns every token.
func Tokenize(t Tokenizer) []syntax.Token {
	var tokens []syntax.Token
	for tok := t.Next(); tok != nil; tok = t.Next() {
		tokens = append(tokens, *tok)
	}
	return tokens
}

// Join concatenates token content.
func Join(tokens []syntax.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Content)
	}
	return sb.String()
}
