// Package syntax defines tokens and the mutable syntax tree produced by the parser.
package syntax

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
)

// Grammar identifies which tokenizer produces a token kind.
type Grammar uint8

// Grammars.
const (
	GrammarCommon Grammar = iota
	GrammarMarkup
	GrammarCode
)

// String returns the grammar name.
func (g Grammar) String() string {
	switch g {
	case GrammarMarkup:
		return "markup"
	case GrammarCode:
		return "code"
	default:
		return "common"
	}
}

// TokenKind is the lexical category of a token.
// Both tokenizers share one enumeration so the parser runtime can treat
// tokens uniformly.
type TokenKind uint16

// Token kinds. Kinds before markupKinds are shared by both grammars.
const (
	// Unknown marks zero-length marker tokens and unclassifiable input.
	Unknown TokenKind = iota
	WhiteSpace
	NewLine
	Transition
	RazorCommentTransition
	RazorCommentStar
	RazorComment
	LeftBracket
	RightBracket
	QuestionMark
	Bang
	Colon

	markupKinds

	Text
	OpenAngle
	CloseAngle
	ForwardSlash
	Equals
	DoubleQuote
	SingleQuote
	DoubleHyphen

	codeKinds

	Identifier
	Keyword
	IntegerLiteral
	RealLiteral
	StringLiteral
	CharacterLiteral
	Comment
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Semicolon
	Comma
	Dot
	DoubleColon
	LessThan
	GreaterThan
	Assign
	Operator

	kindEnd
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [...]string{
	Unknown:                "Unknown",
	WhiteSpace:             "WhiteSpace",
	NewLine:                "NewLine",
	Transition:             "Transition",
	RazorCommentTransition: "RazorCommentTransition",
	RazorCommentStar:       "RazorCommentStar",
	RazorComment:           "RazorComment",
	LeftBracket:            "LeftBracket",
	RightBracket:           "RightBracket",
	QuestionMark:           "QuestionMark",
	Bang:                   "Bang",
	Colon:                  "Colon",
	Text:                   "Text",
	OpenAngle:              "OpenAngle",
	CloseAngle:             "CloseAngle",
	ForwardSlash:           "ForwardSlash",
	Equals:                 "Equals",
	DoubleQuote:            "DoubleQuote",
	SingleQuote:            "SingleQuote",
	DoubleHyphen:           "DoubleHyphen",
	Identifier:             "Identifier",
	Keyword:                "Keyword",
	IntegerLiteral:         "IntegerLiteral",
	RealLiteral:            "RealLiteral",
	StringLiteral:          "StringLiteral",
	CharacterLiteral:       "CharacterLiteral",
	Comment:                "Comment",
	LeftParen:              "LeftParen",
	RightParen:             "RightParen",
	LeftBrace:              "LeftBrace",
	RightBrace:             "RightBrace",
	Semicolon:              "Semicolon",
	Comma:                  "Comma",
	Dot:                    "Dot",
	DoubleColon:            "DoubleColon",
	LessThan:               "LessThan",
	GreaterThan:            "GreaterThan",
	Assign:                 "Assign",
	Operator:               "Operator",
}

// String returns the kind name.
func (k TokenKind) String() string {
	if k < kindEnd && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Grammar reports which tokenizer produces the kind.
func (k TokenKind) Grammar() Grammar {
	switch {
	case k > codeKinds:
		return GrammarCode
	case k > markupKinds:
		return GrammarMarkup
	default:
		return GrammarCommon
	}
}

// IsKnown reports whether k is one of the declared token kinds.
func (k TokenKind) IsKnown() bool {
	return k < kindEnd && tokenKindNames[k] != ""
}

// Token is a classified run of source text.
//
// Tokens are values; equality is structural over kind and content.
type Token struct {
	Kind        TokenKind
	Content     string
	Start       source.Location
	Diagnostics []diag.Diagnostic
}

// NewToken creates a token.
func NewToken(kind TokenKind, content string, start source.Location, diags ...diag.Diagnostic) Token {
	return Token{Kind: kind, Content: content, Start: start, Diagnostics: diags}
}

// Length returns the content length in runes.
func (t Token) Length() int {
	return utf8.RuneCountInString(t.Content)
}

// End returns the location just past the token.
func (t Token) End() source.Location {
	return t.Start.Advance(t.Content)
}

// Equal compares kind and content.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Content == other.Content
}

// IsMarker reports whether t is a zero-length marker token.
func (t Token) IsMarker() bool {
	return t.Kind == Unknown && t.Content == ""
}

// String formats the token for debugging.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Start, t.Kind, t.Content)
}
