package completion

import (
	"strings"

	"marklink/internal/document"
)

// Item is one finished completion entry: display label, the text to splice
// in, and the exact span that text replaces.
type Item struct {
	Label        string
	InsertText   string
	ReplaceRange document.Range
	IsDirectory  bool
	IsAnchor     bool
}

// Assemble turns raw candidates into completion items. Insertion text is
// percent-escaped unless the destination is written in angle-bracket form,
// where spaces stay literal. The replacement range is the span of the typed
// segment, so accepting an item overwrites exactly what was typed.
func Assemble(candidates []Candidate, replaceRange document.Range, angleBracket bool) []Item {
	items := make([]Item, 0, len(candidates))
	for _, candidate := range candidates {
		insert := candidate.InsertText
		if !angleBracket {
			insert = escapePath(insert)
		}
		items = append(items, Item{
			Label:        candidate.Label,
			InsertText:   insert,
			ReplaceRange: replaceRange,
			IsDirectory:  candidate.IsDirectory,
			IsAnchor:     strings.HasPrefix(candidate.Label, "#"),
		})
	}
	return items
}

// escapePath percent-escapes characters that would end a bare destination.
// Only space is known to need it; extend here if the destination syntax
// grows more reserved characters.
func escapePath(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
