package source

// Cursor is a seekable reader over a Document that tracks the current Location.
//
// Backtracking is done by saving Location() and passing it back to Seek.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	doc *Document
	loc Location
}

// NewCursor creates a cursor positioned at the start of doc.
func NewCursor(doc *Document) *Cursor {
	return &Cursor{
		doc: doc,
		loc: Location{Path: doc.Path()},
	}
}

// Document returns the document being read.
func (c *Cursor) Document() *Document {
	return c.doc
}

// Location returns the location of the next rune to be read.
func (c *Cursor) Location() Location {
	return c.loc
}

// Seek moves the cursor to a previously observed location.
func (c *Cursor) Seek(loc Location) {
	loc.Path = c.doc.Path()
	c.loc = loc
}

// AtEnd reports whether all input has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.loc.AbsoluteIndex >= c.doc.Len()
}

// Peek returns the next rune without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the rune n positions ahead of the cursor without consuming it.
func (c *Cursor) PeekAt(n int) (rune, bool) {
	idx := c.loc.AbsoluteIndex + n
	if idx < 0 || idx >= c.doc.Len() {
		return 0, false
	}
	return c.doc.At(idx), true
}

// Take consumes and returns the next rune, updating line and character indices.
func (c *Cursor) Take() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}

	c.loc.AbsoluteIndex++
	if r == '\r' {
		if next, hasNext := c.Peek(); hasNext && next == '\n' {
			c.loc.CharacterIndex++
			return r, true
		}
	}
	if IsNewLine(r) {
		c.loc.LineIndex++
		c.loc.CharacterIndex = 0
	} else {
		c.loc.CharacterIndex++
	}

	return r, true
}

// Remaining returns the number of unread runes.
func (c *Cursor) Remaining() int {
	return max(c.doc.Len()-c.loc.AbsoluteIndex, 0)
}

// Slice returns document text from start up to the cursor.
func (c *Cursor) Slice(start Location) string {
	return c.doc.Slice(start.AbsoluteIndex, c.loc.AbsoluteIndex)
}
