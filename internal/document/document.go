package document

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a zero-based line/character location in a document.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether pos lies inside r (start inclusive, end exclusive).
func (r Range) Contains(pos Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// Intersects reports whether two ranges share at least one position or touch.
func (r Range) Intersects(other Range) bool {
	if r.End.Line < other.Start.Line || other.End.Line < r.Start.Line {
		return false
	}
	if r.End.Line == other.Start.Line && r.End.Character < other.Start.Character {
		return false
	}
	if other.End.Line == r.Start.Line && other.End.Character < r.Start.Character {
		return false
	}
	return true
}

// TextEdit replaces the text covered by Range with NewText.
type TextEdit struct {
	Range   Range
	NewText string
}

// Document is an immutable snapshot of a text document for the duration of
// one request.
type Document struct {
	uri        string
	path       string
	content    string
	lines      []string
	lineStarts []int
}

// New builds a snapshot from a document URI and its full content.
func New(uri string, content string) *Document {
	d := &Document{
		uri:     uri,
		path:    PathFromURI(uri),
		content: content,
	}
	d.lines, d.lineStarts = splitLines(content)
	return d
}

func (d *Document) URI() string     { return d.uri }
func (d *Document) Path() string    { return d.path }
func (d *Document) Content() string { return d.content }

// Dir returns the directory containing the document on disk.
func (d *Document) Dir() string {
	return filepath.Dir(d.path)
}

func (d *Document) LineCount() uint32 {
	return uint32(len(d.lines))
}

// Line returns the text of line i without its terminator. Out-of-range lines
// are empty.
func (d *Document) Line(i uint32) string {
	if i >= uint32(len(d.lines)) {
		return ""
	}
	return d.lines[i]
}

// Offset converts a position to a byte offset into Content. Positions past
// the end of a line clamp to the line's last content byte; positions past
// the last line clamp to the end of the document.
func (d *Document) Offset(pos Position) int {
	if pos.Line >= uint32(len(d.lines)) {
		return len(d.content)
	}
	char := int(pos.Character)
	if char > len(d.lines[pos.Line]) {
		char = len(d.lines[pos.Line])
	}
	return d.lineStarts[pos.Line] + char
}

// PositionAt converts a byte offset into Content to a position. An offset
// inside a line terminator maps to the end of that line's content.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.content) {
		offset = len(d.content)
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	char := offset - d.lineStarts[line]
	if char > len(d.lines[line]) {
		char = len(d.lines[line])
	}
	return Position{Line: uint32(line), Character: uint32(char)}
}

// PositionFromUTF16 converts a position whose Character counts UTF-16 code
// units, the encoding LSP clients speak, to one counting bytes. A character
// past the end of the line clamps to the line's end.
func (d *Document) PositionFromUTF16(pos Position) Position {
	line := d.Line(pos.Line)
	var byteCol uint32
	remaining := pos.Character
	for _, r := range line {
		units := uint32(utf16.RuneLen(r))
		if remaining < units {
			break
		}
		remaining -= units
		byteCol += uint32(utf8.RuneLen(r))
	}
	return Position{Line: pos.Line, Character: byteCol}
}

// PositionToUTF16 is the inverse of PositionFromUTF16.
func (d *Document) PositionToUTF16(pos Position) Position {
	line := d.Line(pos.Line)
	byteCol := int(pos.Character)
	if byteCol > len(line) {
		byteCol = len(line)
	}
	var units uint32
	for i, r := range line {
		if i >= byteCol {
			break
		}
		units += uint32(utf16.RuneLen(r))
	}
	return Position{Line: pos.Line, Character: units}
}

// splitLines returns the terminator-free line texts together with the byte
// offset each line starts at, so CRLF and LF lines keep offsets exact.
func splitLines(content string) ([]string, []int) {
	lines := strings.Split(content, "\n")
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, starts
}

// PathFromURI converts a file URI to a filesystem path. Non-file URIs are
// returned unchanged.
func PathFromURI(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "file://"); ok {
		return rest
	}
	return uri
}

// URIFromPath converts a filesystem path to a file URI.
func URIFromPath(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + filepath.ToSlash(path)
}
