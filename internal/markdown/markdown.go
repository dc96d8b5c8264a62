// Package markdown answers structural queries about markdown documents:
// heading enumeration, reference-style link definitions and their uses.
//
// This is an analysis API; it never renders markdown.
package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"marklink/internal/document"
	"marklink/internal/slug"
)

// Heading is one heading of a document, with its anchor slug precomputed.
type Heading struct {
	Text  string
	Level int
	Range document.Range
	Slug  string
}

// LinkDefinition is a reference-style declaration `[label]: destination`.
// SourceRange spans the entire definition line; quick-fixes delete it whole.
type LinkDefinition struct {
	Label            string
	Destination      string
	DestinationRange document.Range
	SourceRange      document.Range
}

// Headings parses the document and returns its headings in document order.
func Headings(doc *document.Document) []Heading {
	source := []byte(doc.Content())
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		segs := heading.Lines()
		if segs.Len() == 0 {
			return gmast.WalkContinue, nil
		}

		var b strings.Builder
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			b.Write(source[seg.Start:seg.Stop])
		}
		headingText := strings.TrimSpace(b.String())

		start := doc.PositionAt(segs.At(0).Start)
		end := doc.PositionAt(segs.At(segs.Len() - 1).Stop)
		headings = append(headings, Heading{
			Text:  headingText,
			Level: heading.Level,
			Range: document.Range{
				Start: document.Position{Line: start.Line, Character: 0},
				End:   end,
			},
			Slug: slug.Slug(headingText),
		})
		return gmast.WalkSkipChildren, nil
	})

	return headings
}

// A definition line: up to three leading spaces, a bracketed label, a colon,
// then a destination that is either angle-bracketed or a bare word.
var definitionPattern = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:\s*(?:<([^>]*)>|(\S+))`)

// fenceTracker follows fenced code blocks during a line scan so definition
// and reference syntax inside code samples is ignored.
type fenceTracker struct {
	open   bool
	marker byte
	width  int
}

// observe consumes the next line and reports whether it belongs to a fenced
// code block. Fence delimiter lines themselves count as fenced.
func (f *fenceTracker) observe(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return f.open
	}

	var marker byte
	switch {
	case strings.HasPrefix(trimmed, "```"):
		marker = '`'
	case strings.HasPrefix(trimmed, "~~~"):
		marker = '~'
	default:
		return f.open
	}

	width := 0
	for width < len(trimmed) && trimmed[width] == marker {
		width++
	}

	if !f.open {
		f.open = true
		f.marker = marker
		f.width = width
		return true
	}

	// A closing fence uses the same marker, is at least as long, and
	// carries nothing but trailing spaces.
	if marker == f.marker && width >= f.width && strings.TrimRight(trimmed[width:], " ") == "" {
		f.open = false
	}
	return true
}

// Definitions scans the document for link definitions in document order.
// Labels are normalized to their case-folded match form.
func Definitions(doc *document.Document) []LinkDefinition {
	var defs []LinkDefinition
	var fences fenceTracker
	for line := uint32(0); line < doc.LineCount(); line++ {
		lineText := doc.Line(line)
		if fences.observe(lineText) {
			continue
		}
		m := definitionPattern.FindStringSubmatchIndex(lineText)
		if m == nil {
			continue
		}

		label := NormalizeLabel(lineText[m[2]:m[3]])

		var destination string
		var destStart, destEnd int
		if m[4] >= 0 { // angle-bracketed destination
			destination = lineText[m[4]:m[5]]
			destStart, destEnd = m[4], m[5]
		} else {
			destination = lineText[m[6]:m[7]]
			destStart, destEnd = m[6], m[7]
		}

		defs = append(defs, LinkDefinition{
			Label:       label,
			Destination: destination,
			DestinationRange: document.Range{
				Start: document.Position{Line: line, Character: uint32(destStart)},
				End:   document.Position{Line: line, Character: uint32(destEnd)},
			},
			SourceRange: document.Range{
				Start: document.Position{Line: line, Character: 0},
				End:   document.Position{Line: line, Character: uint32(len(lineText))},
			},
		})
	}
	return defs
}

var bracketPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// ReferenceUses counts, per normalized label, how often the document refers
// to a link definition: full `[text][label]`, collapsed `[label][]`, or
// shortcut `[label]` form.
func ReferenceUses(doc *document.Document) map[string]int {
	uses := make(map[string]int)
	var fences fenceTracker
	for line := uint32(0); line < doc.LineCount(); line++ {
		lineText := doc.Line(line)
		if fences.observe(lineText) {
			continue
		}
		for _, m := range bracketPattern.FindAllStringSubmatchIndex(lineText, -1) {
			label := NormalizeLabel(lineText[m[2]:m[3]])
			next := byte(0)
			if m[1] < len(lineText) {
				next = lineText[m[1]]
			}
			switch next {
			case '(', ':':
				// Inline link text or a definition's own label.
			case '[':
				// `[text][label]`: the bracket pair that follows carries the
				// label; an empty pair is the collapsed form using this one.
				rest := lineText[m[1]:]
				if strings.HasPrefix(rest, "[]") {
					uses[label]++
				}
			default:
				uses[label]++
			}
		}
	}
	return uses
}

// NormalizeLabel produces the match form of a reference label: trimmed,
// case-folded, inner whitespace collapsed.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}
