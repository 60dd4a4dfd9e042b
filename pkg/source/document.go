package source

import "sort"

// Document is an immutable source text with an optional file path.
type Document struct {
	path  string
	text  []rune
	lines []LineInfo
}

// NewDocument creates a document from text.
func NewDocument(path, text string) *Document {
	return &Document{
		path: path,
		text: []rune(text),
	}
}

// Path returns the file path tag (may be empty).
func (d *Document) Path() string {
	return d.path
}

// Len returns the number of runes in the document.
func (d *Document) Len() int {
	return len(d.text)
}

// At returns the rune at index i.
func (d *Document) At(i int) rune {
	return d.text[i]
}

// Slice returns the text between rune indices start (inclusive) and end (exclusive).
// Indices are clamped to the document bounds.
func (d *Document) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(d.text))
	if start >= end {
		return ""
	}
	return string(d.text[start:end])
}

// Text returns the full document text.
func (d *Document) Text() string {
	return string(d.text)
}

// LineInfo describes one line of a document in rune offsets.
type LineInfo struct {
	// Start is the rune index of the first character of the line.
	Start int

	// NewlineStart is the rune index where the line terminator begins
	// (equal to End for the last line when it has no terminator).
	NewlineStart int

	// End is the rune index one past the line terminator.
	End int
}

// Lines returns the line table, computing it on first use.
func (d *Document) Lines() []LineInfo {
	if d.lines == nil {
		d.lines = buildLines(d.text)
	}
	return d.lines
}

func buildLines(text []rune) []LineInfo {
	lines := make([]LineInfo, 0, len(text)/40+1)
	lineStart := 0

	for i := 0; i < len(text); i++ {
		r := text[i]
		if !IsNewLine(r) {
			continue
		}
		newlineStart := i
		if r == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		lines = append(lines, LineInfo{Start: lineStart, NewlineStart: newlineStart, End: i + 1})
		lineStart = i + 1
	}

	return append(lines, LineInfo{Start: lineStart, NewlineStart: len(text), End: len(text)})
}

// LocationAt converts an absolute rune index into a full location.
// Indices past the end resolve to the end of the document.
func (d *Document) LocationAt(index int) Location {
	lines := d.Lines()
	index = min(max(index, 0), len(d.text))

	lineIdx := sort.Search(len(lines), func(i int) bool {
		return lines[i].End > index
	})
	if lineIdx >= len(lines) {
		lineIdx = len(lines) - 1
	}

	return Location{
		Path:           d.path,
		AbsoluteIndex:  index,
		LineIndex:      lineIdx,
		CharacterIndex: index - lines[lineIdx].Start,
	}
}

// LineContent returns the text of a zero-based line without its terminator.
func (d *Document) LineContent(line int) string {
	lines := d.Lines()
	if line < 0 || line >= len(lines) {
		return ""
	}
	return string(d.text[lines[line].Start:lines[line].NewlineStart])
}
