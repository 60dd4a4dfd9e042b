package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Flatten returns every span under n in document order.
func Flatten(n Node) []*Span {
	var spans []*Span
	Walk(n, func(node Node) bool {
		if span, ok := node.(*Span); ok {
			spans = append(spans, span)
		}
		return true
	})
	return spans
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the children of the visited block.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	if block, ok := n.(*Block); ok {
		for _, child := range block.children {
			Walk(child, fn)
		}
	}
}

// Blocks returns every block under root, including root, whose kind is kind.
func Blocks(root Node, kind BlockKind) []*Block {
	var blocks []*Block
	Walk(root, func(node Node) bool {
		if block, ok := node.(*Block); ok && block.Kind == kind {
			blocks = append(blocks, block)
		}
		return true
	})
	return blocks
}

// Equivalent reports whether two trees have the same shape and content,
// ignoring node identity.
func Equivalent(a, b Node) bool {
	switch left := a.(type) {
	case *Span:
		right, ok := b.(*Span)
		return ok && spanEquivalent(left, right)
	case *Block:
		right, ok := b.(*Block)
		return ok && blockEquivalent(left, right)
	default:
		return a == nil && b == nil
	}
}

func spanEquivalent(a, b *Span) bool {
	if a.Kind != b.Kind ||
		a.Generator != b.Generator ||
		!a.EditHandler.Equal(b.EditHandler) ||
		!a.start.Equal(b.start) ||
		len(a.tokens) != len(b.tokens) {
		return false
	}
	for i := range a.tokens {
		if !a.tokens[i].Equal(b.tokens[i]) {
			return false
		}
	}
	return true
}

func blockEquivalent(a, b *Block) bool {
	if a.Kind != b.Kind ||
		a.Generator != b.Generator ||
		len(a.children) != len(b.children) ||
		!tagHelperEquivalent(a.TagHelper, b.TagHelper) {
		return false
	}
	for i := range a.children {
		if !Equivalent(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

func tagHelperEquivalent(a, b *TagHelperInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.TagName != b.TagName || a.Mode != b.Mode || len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for i := range a.Attributes {
		left, right := a.Attributes[i], b.Attributes[i]
		if left.Name != right.Name || left.Quote != right.Quote {
			return false
		}
		if (left.Value == nil) != (right.Value == nil) {
			return false
		}
		if left.Value != nil && !Equivalent(left.Value, right.Value) {
			return false
		}
	}
	return true
}

// Clone deep-copies n. The copy has new node identities and its spans are
// linked to each other in document order; it has no parent.
func Clone(n Node) Node {
	switch node := n.(type) {
	case *Span:
		return cloneSpan(node)
	case *Block:
		clone := cloneBlock(node, make(map[Node]Node))
		linkSpans(clone)
		return clone
	default:
		return nil
	}
}

func cloneSpan(span *Span) *Span {
	return &Span{
		Kind:        span.Kind,
		Generator:   span.Generator,
		EditHandler: cloneEditHandler(span.EditHandler),
		tokens:      append([]Token(nil), span.tokens...),
		start:       span.start,
		content:     span.content,
	}
}

func cloneEditHandler(handler EditHandler) EditHandler {
	handler.Keywords = append([]string(nil), handler.Keywords...)
	if len(handler.Keywords) == 0 {
		handler.Keywords = nil
	}
	return handler
}

// cloneBlock copies block and records every copied node in copies so
// tag helper references resolve to nodes inside the copy.
func cloneBlock(block *Block, copies map[Node]Node) *Block {
	clone := &Block{
		Kind:      block.Kind,
		Generator: block.Generator,
		children:  make([]Node, 0, len(block.children)),
	}
	copies[block] = clone

	for _, child := range block.children {
		var copied Node
		switch node := child.(type) {
		case *Span:
			copied = cloneSpan(node)
			copies[node] = copied
		case *Block:
			copied = cloneBlock(node, copies)
		}
		copied.setParent(clone)
		clone.children = append(clone.children, copied)
	}

	if block.TagHelper != nil {
		info := *block.TagHelper
		info.StartTag = clonedBlock(block.TagHelper.StartTag, copies)
		info.EndTag = clonedBlock(block.TagHelper.EndTag, copies)
		info.Attributes = make([]TagHelperAttribute, len(block.TagHelper.Attributes))
		for i, attr := range block.TagHelper.Attributes {
			info.Attributes[i] = attr
			if attr.Value == nil {
				continue
			}
			if copied, ok := copies[attr.Value]; ok {
				info.Attributes[i].Value = copied
			} else {
				info.Attributes[i].Value = Clone(attr.Value)
			}
		}
		clone.TagHelper = &info
	}

	return clone
}

// clonedBlock returns the copy of block, cloning it on its own when it
// lies outside the copied tree.
func clonedBlock(block *Block, copies map[Node]Node) *Block {
	if block == nil {
		return nil
	}
	if copied, ok := copies[block].(*Block); ok {
		return copied
	}
	clone := cloneBlock(block, copies)
	linkSpans(clone)
	return clone
}

// Rewrite visits the blocks under root depth-first. When fn returns a
// replacement and true, the visited block is swapped for the replacement
// and the replacement's children are not visited. The root itself is not
// passed to fn. Span Previous/Next links follow the rewritten tree.
func Rewrite(root *Block, fn func(*Block) (Node, bool)) *Block {
	for i := 0; i < len(root.children); i++ {
		child, ok := root.children[i].(*Block)
		if !ok {
			continue
		}
		if replacement, replace := fn(child); replace && replacement != nil {
			root.ReplaceChild(child, replacement)
			continue
		}
		Rewrite(child, fn)
	}
	return root
}

// Dump writes an indented description of the tree to w.
func Dump(w io.Writer, n Node) error {
	_, err := io.WriteString(w, DumpString(n))
	if err != nil {
		return fmt.Errorf("write tree dump: %w", err)
	}
	return nil
}

// DumpString returns the indented description of the tree.
func DumpString(n Node) string {
	var sb strings.Builder
	dumpNode(&sb, n, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n Node, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
	switch node := n.(type) {
	case *Span:
		sb.WriteString(dumpSpanLine(node))
		sb.WriteByte('\n')
	case *Block:
		sb.WriteString(dumpBlockLine(node))
		sb.WriteByte('\n')
		for _, child := range node.children {
			dumpNode(sb, child, depth+1)
		}
	}
}

func dumpRange(n Node) string {
	start := n.Start()
	if start.IsUndefined() {
		return "[?]"
	}
	return fmt.Sprintf("[%d..%d)::%d", start.AbsoluteIndex, start.AbsoluteIndex+n.Length(), n.Length())
}

func dumpSpanLine(span *Span) string {
	return fmt.Sprintf("%s span - %s - %s - %q - %s",
		span.Kind, span.Generator, dumpRange(span), span.content, span.EditHandler)
}

func dumpBlockLine(block *Block) string {
	line := fmt.Sprintf("%s block - %s - %s", block.Kind, block.Generator, dumpRange(block))
	if block.TagHelper != nil {
		line += fmt.Sprintf(" - <%s> %s", block.TagHelper.TagName, block.TagHelper.Mode)
	}
	return line
}
