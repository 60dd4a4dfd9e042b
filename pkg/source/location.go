// Package source provides the text model shared by the tokenizers and the parser:
// documents, locations, spans, and a seekable cursor.
package source

import (
	"fmt"
	"unicode"
)

// Location identifies a position in a document.
//
// All indices are zero-based and count runes, not bytes. Two locations are
// ordered by AbsoluteIndex only; line and character indices are derived data.
type Location struct {
	// Path is the optional file path of the document the location belongs to.
	Path string

	// AbsoluteIndex is the rune offset from the start of the document.
	AbsoluteIndex int

	// LineIndex is the zero-based line number.
	LineIndex int

	// CharacterIndex is the zero-based rune offset from the start of the line.
	CharacterIndex int
}

// Undefined is the location of nodes with no known position.
//
//nolint:gochecknoglobals // Sentinel value.
var Undefined = Location{AbsoluteIndex: -1, LineIndex: -1, CharacterIndex: -1}

// Zero is the location of the first character of a document.
//
//nolint:gochecknoglobals // Sentinel value.
var Zero = Location{}

// NewLocation creates a location without a path tag.
func NewLocation(absoluteIndex, lineIndex, characterIndex int) Location {
	return Location{
		AbsoluteIndex:  absoluteIndex,
		LineIndex:      lineIndex,
		CharacterIndex: characterIndex,
	}
}

// IsUndefined reports whether l is the Undefined sentinel.
func (l Location) IsUndefined() bool {
	return l.AbsoluteIndex < 0
}

// Compare orders locations by absolute index.
func (l Location) Compare(other Location) int {
	switch {
	case l.AbsoluteIndex < other.AbsoluteIndex:
		return -1
	case l.AbsoluteIndex > other.AbsoluteIndex:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two locations describe the same position.
// The path tag is ignored.
func (l Location) Equal(other Location) bool {
	return l.AbsoluteIndex == other.AbsoluteIndex &&
		l.LineIndex == other.LineIndex &&
		l.CharacterIndex == other.CharacterIndex
}

// Advance returns the location reached after reading text starting at l.
// A "\r\n" pair counts as two absolute positions but a single line break.
func (l Location) Advance(text string) Location {
	if l.IsUndefined() {
		return l
	}

	runes := []rune(text)
	for i, r := range runes {
		l.AbsoluteIndex++
		if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			l.CharacterIndex++
			continue
		}
		if IsNewLine(r) {
			l.LineIndex++
			l.CharacterIndex = 0
			continue
		}
		l.CharacterIndex++
	}

	return l
}

// String formats the location as "(abs:line,char)".
func (l Location) String() string {
	if l.IsUndefined() {
		return "(undefined)"
	}
	return fmt.Sprintf("(%d:%d,%d)", l.AbsoluteIndex, l.LineIndex, l.CharacterIndex)
}

// Span anchors a run of text: a start location plus a length in runes.
type Span struct {
	Location

	// Length is the number of runes covered.
	Length int
}

// NewSpan creates a span.
func NewSpan(start Location, length int) Span {
	return Span{Location: start, Length: length}
}

// End returns the absolute index one past the last covered rune.
func (s Span) End() int {
	return s.AbsoluteIndex + s.Length
}

// Contains reports whether the absolute index falls inside the span.
func (s Span) Contains(index int) bool {
	return index >= s.AbsoluteIndex && index < s.End()
}

// String formats the span as "(abs:line,char)+length".
func (s Span) String() string {
	return fmt.Sprintf("%s+%d", s.Location, s.Length)
}

// IsNewLine reports whether r terminates a line.
//
// Recognised terminators are CR, LF, NEL (U+0085), LINE SEPARATOR (U+2028)
// and PARAGRAPH SEPARATOR (U+2029). CRLF is handled by callers as a pair.
func IsNewLine(r rune) bool {
	switch r {
	case '\r', '\n', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}

// IsWhiteSpace reports whether r is white space that does not end a line.
func IsWhiteSpace(r rune) bool {
	if IsNewLine(r) {
		return false
	}
	return r == '\ufeff' || unicode.IsSpace(r)
}
