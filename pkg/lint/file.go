package lint

import (
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// File is a parsed template.
type File struct {
	// Path is the logical path used in diagnostics.
	Path string

	// Content is the raw file content.
	Content []byte

	// Document is the rune-indexed source the tree refers to.
	Document *source.Document

	// Root is the outermost block of the syntax tree.
	Root *syntax.Block

	// Diagnostics are the parser's diagnostics in emission order.
	Diagnostics []diag.Diagnostic
}

// Position is a 1-based line and column range.
type Position struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// SpanPosition converts a source span into a 1-based position whose end
// is the span's last character.
func (f *File) SpanPosition(span source.Span) Position {
	start := span.Location
	if f.Document != nil && !start.IsUndefined() {
		start = f.Document.LocationAt(span.AbsoluteIndex)
	}
	end := start
	if f.Document != nil && span.Length > 0 {
		end = f.Document.LocationAt(span.AbsoluteIndex + span.Length - 1)
	}
	return Position{
		StartLine:   start.LineIndex + 1,
		StartColumn: start.CharacterIndex + 1,
		EndLine:     end.LineIndex + 1,
		EndColumn:   end.CharacterIndex + 1,
	}
}

// NodePosition returns the position of a syntax node.
func (f *File) NodePosition(n syntax.Node) Position {
	if n == nil {
		return Position{}
	}
	return f.SpanPosition(source.NewSpan(n.Start(), n.Length()))
}
