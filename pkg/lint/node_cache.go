package lint

import "github.com/yaklabco/razorlint/pkg/syntax"

// NodeCache holds the blocks of a syntax tree grouped by kind and its leaf
// spans in source order.
//
// The engine builds one cache per file and hands it to every rule, so the
// tree is walked once no matter how many rules ask for blocks or spans.
// The cache is built lazily on first access; files where no rule asks pay
// nothing.
//
// # Do Not Mutate Returned Slices
//
// Slices returned by NodeCache are shared by all rules of a file. Copy them
// before sorting or filtering in place:
//
//	blocks := slices.Clone(ctx.Blocks(syntax.BlockDirective))
//	slices.SortFunc(blocks, ...)
//
// # Thread Safety
//
// NodeCache is not safe for concurrent use. Rules of one file run
// sequentially; files linted in parallel each get their own cache.
type NodeCache struct {
	root   *syntax.Block
	blocks map[syntax.BlockKind][]*syntax.Block
	spans  []*syntax.Span
	built  bool
}

// Initial capacities based on a typical view template.
const (
	initCapKinds = 8
	initCapSpans = 64
)

// NewNodeCache creates an empty cache over root.
func NewNodeCache(root *syntax.Block) *NodeCache {
	return &NodeCache{root: root}
}

// build walks the tree once. The walk visits nodes in document order, so
// every per-kind slice and the span slice come out sorted by position.
func (c *NodeCache) build() {
	if c.built {
		return
	}
	c.built = true

	if c.root == nil {
		return
	}

	c.blocks = make(map[syntax.BlockKind][]*syntax.Block, initCapKinds)
	c.spans = make([]*syntax.Span, 0, initCapSpans)

	syntax.Walk(c.root, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.Block:
			c.blocks[n.Kind] = append(c.blocks[n.Kind], n)
		case *syntax.Span:
			c.spans = append(c.spans, n)
		}
		return true
	})
}

// Blocks returns every block of kind, including the root, in document order.
func (c *NodeCache) Blocks(kind syntax.BlockKind) []*syntax.Block {
	if c == nil {
		return nil
	}
	c.build()
	return c.blocks[kind]
}

// Spans returns every leaf span in source order.
func (c *NodeCache) Spans() []*syntax.Span {
	if c == nil {
		return nil
	}
	c.build()
	return c.spans
}

// BlockCount returns the number of blocks of kind.
func (c *NodeCache) BlockCount(kind syntax.BlockKind) int {
	return len(c.Blocks(kind))
}
