package tokenizer

import (
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// View is the parser's window onto a tokenizer: a current token plus
// lookahead and put-back primitives.
type View struct {
	tokenizer Tokenizer
	current   *syntax.Token
	eof       bool
}

// NewView creates a view over t. No token is read until Next is called.
func NewView(t Tokenizer) *View {
	return &View{tokenizer: t, eof: t.Cursor().AtEnd()}
}

// Tokenizer returns the underlying tokenizer.
func (v *View) Tokenizer() Tokenizer {
	return v.tokenizer
}

// Current returns the current token, or nil.
func (v *View) Current() *syntax.Token {
	return v.current
}

// EndOfFile reports whether the view has run out of tokens.
func (v *View) EndOfFile() bool {
	return v.eof
}

// Next reads the next token into Current. It returns false at end of input.
func (v *View) Next() bool {
	if v.eof {
		v.current = nil
		return false
	}
	v.current = v.tokenizer.Next()
	v.eof = v.current == nil
	return !v.eof
}

// Ensure reads a token when there is no current token.
func (v *View) Ensure() {
	if v.current == nil && !v.eof {
		v.Next()
	}
}

// Sync recomputes the view after the shared cursor was moved by another view.
func (v *View) Sync() {
	v.tokenizer.Reset(v.tokenizer.Location())
	v.current = nil
	v.eof = v.tokenizer.Cursor().AtEnd()
}

// Location returns the current token's start, or the cursor location when
// there is no current token.
func (v *View) Location() source.Location {
	if v.current != nil {
		return v.current.Start
	}
	return v.tokenizer.Location()
}

// Seek moves the tokenizer to loc and clears the current token.
func (v *View) Seek(loc source.Location) {
	v.tokenizer.Reset(loc)
	v.current = nil
	v.eof = v.tokenizer.Cursor().AtEnd()
}

// PutBack rewinds the tokenizer to the start of tok and clears the current token.
func (v *View) PutBack(tok syntax.Token) {
	v.Seek(tok.Start)
}

// PutBackAll rewinds to the earliest of tokens.
func (v *View) PutBackAll(tokens []syntax.Token) {
	if len(tokens) == 0 {
		return
	}
	first := tokens[0]
	for _, tok := range tokens[1:] {
		if tok.Start.AbsoluteIndex < first.Start.AbsoluteIndex {
			first = tok
		}
	}
	v.PutBack(first)
}

// PutCurrentBack puts the current token back, if there is one.
func (v *View) PutCurrentBack() {
	if v.current != nil && !v.eof {
		v.PutBack(*v.current)
	}
}

type viewState struct {
	checkpoint Checkpoint
	current    *syntax.Token
	eof        bool
}

func (v *View) save() viewState {
	return viewState{checkpoint: v.tokenizer.Checkpoint(), current: v.current, eof: v.eof}
}

func (v *View) restore(st viewState) {
	v.tokenizer.Rewind(st.checkpoint)
	v.current = st.current
	v.eof = st.eof
}

// Peek returns the token n positions after the current one without
// consuming anything. Peek(0) is the current token.
func (v *View) Peek(n int) *syntax.Token {
	if n == 0 {
		return v.current
	}
	st := v.save()
	defer v.restore(st)

	for range n {
		if !v.Next() {
			return nil
		}
	}
	return v.current
}

// NextIs reports whether the token after the current one has one of kinds.
func (v *View) NextIs(kinds ...syntax.TokenKind) bool {
	tok := v.Peek(1)
	if tok == nil {
		return false
	}
	for _, kind := range kinds {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

// NextMatches reports whether the token after the current one satisfies
// pred. While pred runs the view is positioned on that token, so pred may
// itself look further ahead.
func (v *View) NextMatches(pred func(tok syntax.Token) bool) bool {
	st := v.save()
	defer v.restore(st)

	if !v.Next() {
		return false
	}
	return pred(*v.current)
}

// LookaheadUntil scans forward from the token after the current one until
// cond returns true or input ends, then restores the position. cond
// receives each token and every token seen so far, starting with the
// current token and ending with tok itself.
func (v *View) LookaheadUntil(cond func(tok syntax.Token, tokens []syntax.Token) bool) bool {
	st := v.save()
	defer v.restore(st)

	var tokens []syntax.Token
	if v.current != nil {
		tokens = append(tokens, *v.current)
	}
	for v.Next() {
		tokens = append(tokens, *v.current)
		if cond(*v.current, tokens) {
			return true
		}
	}
	return false
}

// Lookahead checks the characters that follow the current token. A
// matching take consumes them and clears the current token.
func (v *View) Lookahead(text string, takeIfMatch, caseSensitive bool) bool {
	matched := v.tokenizer.Lookahead(text, takeIfMatch, caseSensitive)
	if matched && takeIfMatch {
		v.current = nil
		v.eof = v.tokenizer.Cursor().AtEnd()
	}
	return matched
}
