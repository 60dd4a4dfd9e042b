package parser

import "github.com/yaklabco/razorlint/pkg/source"

// IsHTMLCommentAhead positions a markup parser on the first token of text
// and reports whether it opens a well formed HTML comment.
func IsHTMLCommentAhead(text string) bool {
	ps := newParsers(source.NewDocument("", text), DefaultOptions())
	ps.markup.nextToken()
	return ps.markup.isHTMLCommentAhead()
}
