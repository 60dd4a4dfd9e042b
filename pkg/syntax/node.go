package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/razorlint/pkg/source"
)

// Node is a syntax tree node: either a *Span or a *Block.
type Node interface {
	// Start returns the location of the first character covered by the node.
	Start() source.Location

	// Length returns the number of runes covered by the node.
	Length() int

	// Content returns the source text covered by the node.
	Content() string

	// Parent returns the enclosing block, or nil for the root.
	Parent() *Block

	setParent(parent *Block)
}

// Span is a leaf node holding a run of tokens.
type Span struct {
	Kind        SpanKind
	Generator   ChunkGenerator
	EditHandler EditHandler

	tokens  []Token
	start   source.Location
	content string

	parent   *Block
	previous *Span
	next     *Span
}

// Tokens returns the span's tokens. The slice must not be modified.
func (s *Span) Tokens() []Token {
	return s.tokens
}

// Start returns the span start.
func (s *Span) Start() source.Location {
	return s.start
}

// Length returns the content length in runes.
func (s *Span) Length() int {
	return utf8.RuneCountInString(s.content)
}

// Content returns the concatenated token content.
func (s *Span) Content() string {
	return s.content
}

// Parent returns the enclosing block.
func (s *Span) Parent() *Block {
	return s.parent
}

// Previous returns the span that precedes s in document order.
func (s *Span) Previous() *Span {
	return s.previous
}

// Next returns the span that follows s in document order.
func (s *Span) Next() *Span {
	return s.next
}

func (s *Span) setParent(parent *Block) {
	s.parent = parent
}

// ChangeStart moves the span and re-anchors each token after it.
func (s *Span) ChangeStart(loc source.Location) {
	s.start = loc
	current := loc
	for i := range s.tokens {
		s.tokens[i].Start = current
		current = current.Advance(s.tokens[i].Content)
	}
}

// ReplaceWith overwrites the span with the builder's contents, keeping its
// position in the tree. Cached lengths on ancestors are invalidated.
func (s *Span) ReplaceWith(builder *SpanBuilder) {
	s.Kind = builder.Kind
	s.Generator = builder.Generator
	s.EditHandler = builder.EditHandler
	s.tokens = append([]Token(nil), builder.tokens...)
	s.start = builder.start
	s.content = joinTokens(s.tokens)
	if s.parent != nil {
		s.parent.invalidate()
	}
}

// String returns a one-line description of the span.
func (s *Span) String() string {
	return dumpSpanLine(s)
}

func joinTokens(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Content)
	}
	return sb.String()
}

// Block is an interior node holding ordered children.
type Block struct {
	Kind      BlockKind
	Generator ChunkGenerator

	// TagHelper is set on BlockTagHelper blocks.
	TagHelper *TagHelperInfo

	children []Node
	parent   *Block

	length      int
	lengthValid bool
}

// Children returns the block's children. The slice must not be modified.
func (b *Block) Children() []Node {
	return b.children
}

// Parent returns the enclosing block.
func (b *Block) Parent() *Block {
	return b.parent
}

func (b *Block) setParent(parent *Block) {
	b.parent = parent
}

// Start returns the start of the first child with a defined location.
func (b *Block) Start() source.Location {
	for _, child := range b.children {
		if loc := child.Start(); !loc.IsUndefined() {
			return loc
		}
	}
	return source.Undefined
}

// Length returns the sum of the children's lengths.
func (b *Block) Length() int {
	if !b.lengthValid {
		total := 0
		for _, child := range b.children {
			total += child.Length()
		}
		b.length = total
		b.lengthValid = true
	}
	return b.length
}

// Content returns the concatenated content of all descendant spans.
func (b *Block) Content() string {
	var sb strings.Builder
	for _, span := range Flatten(b) {
		sb.WriteString(span.content)
	}
	return sb.String()
}

// FirstSpan returns the first descendant span, or nil.
func (b *Block) FirstSpan() *Span {
	for _, child := range b.children {
		switch node := child.(type) {
		case *Span:
			return node
		case *Block:
			if span := node.FirstSpan(); span != nil {
				return span
			}
		}
	}
	return nil
}

// LastSpan returns the last descendant span, or nil.
func (b *Block) LastSpan() *Span {
	for i := len(b.children) - 1; i >= 0; i-- {
		switch node := b.children[i].(type) {
		case *Span:
			return node
		case *Block:
			if span := node.LastSpan(); span != nil {
				return span
			}
		}
	}
	return nil
}

// AppendChild adds child as the last child of b.
func (b *Block) AppendChild(child Node) {
	child.setParent(b)
	b.children = append(b.children, child)
	b.invalidate()
	b.relink()
}

// ReplaceChild swaps old for replacement. It reports whether old was a child.
func (b *Block) ReplaceChild(old, replacement Node) bool {
	for i, child := range b.children {
		if child == old {
			old.setParent(nil)
			replacement.setParent(b)
			b.children[i] = replacement
			b.invalidate()
			b.relink()
			linkSpans(old)
			return true
		}
	}
	return false
}

// RemoveChild detaches child. It reports whether child was found.
func (b *Block) RemoveChild(child Node) bool {
	for i, existing := range b.children {
		if existing == child {
			child.setParent(nil)
			b.children = append(b.children[:i], b.children[i+1:]...)
			b.invalidate()
			b.relink()
			linkSpans(child)
			return true
		}
	}
	return false
}

func (b *Block) invalidate() {
	for blk := b; blk != nil; blk = blk.parent {
		blk.lengthValid = false
	}
}

// relink rebuilds the Previous/Next chain of the whole tree holding b.
func (b *Block) relink() {
	root := b
	for root.parent != nil {
		root = root.parent
	}
	linkSpans(root)
}

// linkSpans chains the spans under n in document order. The first span
// has no Previous and the last has no Next.
func linkSpans(n Node) {
	var previous *Span
	for _, span := range Flatten(n) {
		span.previous = previous
		if previous != nil {
			previous.next = span
		}
		previous = span
	}
	if previous != nil {
		previous.next = nil
	}
}

// String returns a one-line description of the block.
func (b *Block) String() string {
	return dumpBlockLine(b)
}

// TagMode describes how a tag helper element was written.
type TagMode uint8

// Tag modes.
const (
	TagModeStartTagAndEndTag TagMode = iota
	TagModeSelfClosing
	TagModeStartTagOnly
)

// String returns the mode name.
func (m TagMode) String() string {
	switch m {
	case TagModeSelfClosing:
		return "SelfClosing"
	case TagModeStartTagOnly:
		return "StartTagOnly"
	default:
		return "StartTagAndEndTag"
	}
}

// AttributeQuote records how an attribute value was quoted.
type AttributeQuote uint8

// Attribute quoting styles.
const (
	QuoteDouble AttributeQuote = iota
	QuoteSingle
	QuoteNone
	QuoteMinimized
)

// TagHelperAttribute is one attribute of a tag helper element.
type TagHelperAttribute struct {
	Name  string
	Value Node
	Quote AttributeQuote
}

// TagHelperInfo describes an element recognized as a tag helper.
type TagHelperInfo struct {
	TagName    string
	Mode       TagMode
	Attributes []TagHelperAttribute
	StartTag   *Block
	EndTag     *Block
}
