package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marklink/internal/document"
	"marklink/internal/markdown"
)

func TestHeadings(t *testing.T) {
	doc := document.New("file:///notes/a.md", "# Title\n\nsome text\n\n## Sub Heading\n\n### Deep one\n")

	headings := markdown.Headings(doc)
	require.Len(t, headings, 3)

	assert.Equal(t, "Title", headings[0].Text)
	assert.Equal(t, 1, headings[0].Level)
	assert.Equal(t, "title", headings[0].Slug)
	assert.Equal(t, uint32(0), headings[0].Range.Start.Line)

	assert.Equal(t, "Sub Heading", headings[1].Text)
	assert.Equal(t, "sub-heading", headings[1].Slug)
	assert.Equal(t, uint32(4), headings[1].Range.Start.Line)

	assert.Equal(t, "Deep one", headings[2].Text)
	assert.Equal(t, 3, headings[2].Level)
}

func TestHeadingsEmptyDocument(t *testing.T) {
	doc := document.New("file:///notes/empty.md", "")
	assert.Empty(t, markdown.Headings(doc))
}

func TestDefinitions(t *testing.T) {
	content := "# Doc\n" +
		"[one]: ./a.md\n" +
		"[Two]: <path with space.md>\n" +
		"not a definition\n" +
		"   [three]: http://example.com \"title\"\n"
	doc := document.New("file:///notes/a.md", content)

	defs := markdown.Definitions(doc)
	require.Len(t, defs, 3)

	assert.Equal(t, "one", defs[0].Label)
	assert.Equal(t, "./a.md", defs[0].Destination)
	assert.Equal(t, uint32(1), defs[0].SourceRange.Start.Line)
	assert.Equal(t, uint32(0), defs[0].SourceRange.Start.Character)

	assert.Equal(t, "two", defs[1].Label, "labels are case-folded")
	assert.Equal(t, "path with space.md", defs[1].Destination)

	assert.Equal(t, "three", defs[2].Label)
	assert.Equal(t, "http://example.com", defs[2].Destination)
}

func TestDefinitionsSkipCodeFences(t *testing.T) {
	content := "```\n" +
		"[example]: ./a.md\n" +
		"```\n" +
		"[real]: ./b.md\n" +
		"~~~markdown\n" +
		"[sample]: ./c.md\n" +
		"~~~\n"
	doc := document.New("file:///notes/a.md", content)

	defs := markdown.Definitions(doc)
	require.Len(t, defs, 1)
	assert.Equal(t, "real", defs[0].Label)
	assert.Equal(t, uint32(3), defs[0].SourceRange.Start.Line)
}

func TestDefinitionsUnclosedFence(t *testing.T) {
	content := "[before]: ./a.md\n" +
		"````\n" +
		"[inside]: ./b.md\n"
	doc := document.New("file:///notes/a.md", content)

	defs := markdown.Definitions(doc)
	require.Len(t, defs, 1)
	assert.Equal(t, "before", defs[0].Label)
}

func TestDefinitionsFenceNeedsMatchingCloser(t *testing.T) {
	// A shorter run of the fence character does not close the block.
	content := "````\n" +
		"```\n" +
		"[inside]: ./a.md\n" +
		"````\n" +
		"[after]: ./b.md\n"
	doc := document.New("file:///notes/a.md", content)

	defs := markdown.Definitions(doc)
	require.Len(t, defs, 1)
	assert.Equal(t, "after", defs[0].Label)
}

func TestReferenceUsesSkipCodeFences(t *testing.T) {
	content := "[used] in prose\n" +
		"```\n" +
		"[used] and [fenced] mentions do not count\n" +
		"```\n"
	doc := document.New("file:///notes/a.md", content)

	uses := markdown.ReferenceUses(doc)
	assert.Equal(t, 1, uses["used"])
	assert.Zero(t, uses["fenced"])
}

func TestReferenceUses(t *testing.T) {
	content := "See [the docs][ref] and [shortcut].\n" +
		"Collapsed form: [collapsed][].\n" +
		"Inline [text](./other.md) is not a reference.\n" +
		"[ref]: ./a.md\n"
	doc := document.New("file:///notes/a.md", content)

	uses := markdown.ReferenceUses(doc)
	assert.Equal(t, 1, uses["ref"])
	assert.Equal(t, 1, uses["shortcut"])
	assert.Equal(t, 1, uses["collapsed"])
	assert.Zero(t, uses["text"], "inline link text is not a use")
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Ref", "ref"},
		{"  spaced   label ", "spaced label"},
		{"MIXED Case", "mixed case"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, markdown.NormalizeLabel(tt.in))
	}
}
