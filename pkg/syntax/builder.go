package syntax

import (
	"github.com/yaklabco/razorlint/pkg/source"
)

// SpanBuilder accumulates tokens for a span under construction.
type SpanBuilder struct {
	Kind        SpanKind
	Generator   ChunkGenerator
	EditHandler EditHandler

	tokens []Token
	start  source.Location
}

// NewSpanBuilder creates a builder starting at start.
func NewSpanBuilder(start source.Location) *SpanBuilder {
	builder := &SpanBuilder{}
	builder.Reset()
	builder.start = start
	return builder
}

// SpanBuilderFrom creates a builder initialised from an existing span.
func SpanBuilderFrom(span *Span) *SpanBuilder {
	return &SpanBuilder{
		Kind:        span.Kind,
		Generator:   span.Generator,
		EditHandler: span.EditHandler,
		tokens:      append([]Token(nil), span.tokens...),
		start:       span.start,
	}
}

// Accept appends a token. The first accepted token fixes the span start.
func (b *SpanBuilder) Accept(tok Token) {
	if len(b.tokens) == 0 {
		b.start = tok.Start
	}
	b.tokens = append(b.tokens, tok)
}

// Tokens returns the accepted tokens.
func (b *SpanBuilder) Tokens() []Token {
	return b.tokens
}

// HasTokens reports whether any token was accepted.
func (b *SpanBuilder) HasTokens() bool {
	return len(b.tokens) > 0
}

// Start returns the span start.
func (b *SpanBuilder) Start() source.Location {
	return b.start
}

// SetStart overrides the span start.
func (b *SpanBuilder) SetStart(loc source.Location) {
	b.start = loc
}

// ClearTokens drops the accepted tokens but keeps the configuration.
func (b *SpanBuilder) ClearTokens() {
	b.tokens = nil
}

// Reset clears tokens and restores the default configuration.
func (b *SpanBuilder) Reset() {
	b.Kind = SpanMarkup
	b.Generator = NullGenerator()
	b.EditHandler = DefaultEditHandler()
	b.tokens = nil
	b.start = source.Zero
}

// Build creates a span from the builder's current state.
func (b *SpanBuilder) Build() *Span {
	tokens := append([]Token(nil), b.tokens...)
	return &Span{
		Kind:        b.Kind,
		Generator:   b.Generator,
		EditHandler: b.EditHandler,
		tokens:      tokens,
		start:       b.start,
		content:     joinTokens(tokens),
	}
}

// BlockBuilder accumulates children for a block under construction.
type BlockBuilder struct {
	Kind      BlockKind
	Generator ChunkGenerator
	TagHelper *TagHelperInfo
	Children  []Node
}

// NewBlockBuilder creates a builder for a block of the given kind.
func NewBlockBuilder(kind BlockKind) *BlockBuilder {
	return &BlockBuilder{Kind: kind}
}

// Build creates the block and adopts the children.
func (b *BlockBuilder) Build() *Block {
	block := &Block{
		Kind:      b.Kind,
		Generator: b.Generator,
		TagHelper: b.TagHelper,
		children:  append([]Node(nil), b.Children...),
	}
	for _, child := range block.children {
		child.setParent(block)
	}
	return block
}

// TreeBuilder assembles blocks and spans in document order.
type TreeBuilder struct {
	stack    []*BlockBuilder
	root     *Block
	lastSpan *Span
}

// NewTreeBuilder creates an empty tree builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// StartBlock opens a new block nested in the current one and returns its builder.
func (t *TreeBuilder) StartBlock(kind BlockKind) *BlockBuilder {
	builder := NewBlockBuilder(kind)
	t.stack = append(t.stack, builder)
	return builder
}

// EndBlock closes the current block and attaches it to its parent.
// Closing the outermost block makes it the root.
func (t *TreeBuilder) EndBlock() *Block {
	if len(t.stack) == 0 {
		panic("syntax: EndBlock called with no open block")
	}

	builder := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	block := builder.Build()

	if len(t.stack) > 0 {
		parent := t.stack[len(t.stack)-1]
		parent.Children = append(parent.Children, block)
	} else {
		t.root = block
	}
	return block
}

// Add appends a span to the current block and links it to the previous span.
func (t *TreeBuilder) Add(span *Span) {
	current := t.CurrentBlock()
	if current == nil {
		panic("syntax: cannot add a span with no open block")
	}
	if t.lastSpan != nil {
		span.previous = t.lastSpan
		t.lastSpan.next = span
	}
	current.Children = append(current.Children, span)
	t.lastSpan = span
}

// CurrentBlock returns the innermost open block, or nil.
func (t *TreeBuilder) CurrentBlock() *BlockBuilder {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// LastSpan returns the most recently added span, or nil.
func (t *TreeBuilder) LastSpan() *Span {
	return t.lastSpan
}

// ActiveBlocks returns the open blocks from outermost to innermost.
func (t *TreeBuilder) ActiveBlocks() []*BlockBuilder {
	return t.stack
}

// InBlock reports whether any open block has the given kind.
func (t *TreeBuilder) InBlock(kind BlockKind) bool {
	for _, builder := range t.stack {
		if builder.Kind == kind {
			return true
		}
	}
	return false
}

// Build closes every open block and returns the root.
func (t *TreeBuilder) Build() *Block {
	for len(t.stack) > 0 {
		t.EndBlock()
	}
	return t.root
}

// TagHelperBuilder assembles a tag helper block from a rewritten tag.
type TagHelperBuilder struct {
	TagName    string
	Mode       TagMode
	Attributes []TagHelperAttribute
	StartTag   *Block
	EndTag     *Block
	Children   []Node
}

// Build creates a BlockTagHelper block. The start tag, children and end
// tag become the block's children in that order.
func (b *TagHelperBuilder) Build() *Block {
	builder := NewBlockBuilder(BlockTagHelper)
	builder.TagHelper = &TagHelperInfo{
		TagName:    b.TagName,
		Mode:       b.Mode,
		Attributes: append([]TagHelperAttribute(nil), b.Attributes...),
		StartTag:   b.StartTag,
		EndTag:     b.EndTag,
	}
	if b.StartTag != nil {
		builder.Children = append(builder.Children, b.StartTag)
	}
	builder.Children = append(builder.Children, b.Children...)
	if b.EndTag != nil {
		builder.Children = append(builder.Children, b.EndTag)
	}
	return builder.Build()
}
