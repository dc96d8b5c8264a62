package completion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marklink/internal/completion"
	"marklink/internal/document"
)

func classify(line string, cursor uint32) completion.Context {
	return completion.Classify(line[:cursor], line[cursor:], document.Position{Line: 0, Character: cursor})
}

func TestClassifyNone(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor uint32
	}{
		{name: "plain text", line: "just some text", cursor: 9},
		{name: "empty line", line: "", cursor: 0},
		{name: "closed link", line: "[a](./done.md) more", cursor: 19},
		{name: "bracket only", line: "some [text", cursor: 10},
		{name: "http scheme", line: "[](http:", cursor: 8},
		{name: "https scheme", line: "[](https://example.com/", cursor: 23},
		{name: "scheme in definition", line: "[ref]: http:", cursor: 12},
		{name: "mail scheme", line: "[](mailto:", cursor: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.line, tt.cursor)
			assert.Equal(t, completion.KindNone, got.Kind)
		})
	}
}

func TestClassifyAnchorInCurrentFile(t *testing.T) {
	got := classify("see [seq](#intr", 15)
	assert.Equal(t, completion.KindAnchorInCurrentFile, got.Kind)
	assert.Equal(t, "intr", got.Prefix)
	assert.Equal(t, uint32(10), got.ReplaceRange.Start.Character, "range starts at the #")
	assert.Equal(t, uint32(15), got.ReplaceRange.End.Character)
}

func TestClassifyAnchorInOtherFile(t *testing.T) {
	got := classify("[](./other.md#hea", 17)
	assert.Equal(t, completion.KindAnchorInOtherFile, got.Kind)
	assert.Equal(t, "./other.md", got.PathPart)
	assert.Equal(t, "hea", got.Prefix)
	assert.Equal(t, uint32(13), got.ReplaceRange.Start.Character, "range starts at the #")
}

func TestClassifyFirstHashWins(t *testing.T) {
	// A later literal `#` still means the part before the first one is the
	// path.
	got := classify("[](a#b#c", 8)
	assert.Equal(t, completion.KindAnchorInOtherFile, got.Kind)
	assert.Equal(t, "a", got.PathPart)
	assert.Equal(t, "b#c", got.Prefix)
}

func TestClassifyPaths(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		cursor   uint32
		kind     completion.Kind
		pathPart string
		prefix   string
		rangePos uint32
	}{
		{name: "bare open paren", line: "[](", cursor: 3, kind: completion.KindRelativePath, rangePos: 3},
		{name: "dot slash", line: "[](./", cursor: 5, kind: completion.KindRelativePath, pathPart: "./", rangePos: 5},
		{name: "parent dir", line: "[](../no", cursor: 8, kind: completion.KindRelativePath, pathPart: "../", prefix: "no", rangePos: 6},
		{name: "bare segment", line: "[](sub", cursor: 6, kind: completion.KindRelativePath, prefix: "sub", rangePos: 3},
		{name: "absolute", line: "[](/docs/a", cursor: 10, kind: completion.KindAbsolutePath, pathPart: "/docs/", prefix: "a", rangePos: 9},
		{name: "definition destination", line: "[ref]: ./fi", cursor: 11, kind: completion.KindRelativePath, pathPart: "./", prefix: "fi", rangePos: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.line, tt.cursor)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.pathPart, got.PathPart)
			assert.Equal(t, tt.prefix, got.Prefix)
			assert.Equal(t, tt.rangePos, got.ReplaceRange.Start.Character)
			assert.Equal(t, tt.cursor, got.ReplaceRange.End.Character)
		})
	}
}

func TestClassifyAngleBrackets(t *testing.T) {
	got := classify("[](<./my fi", 11)
	assert.Equal(t, completion.KindRelativePath, got.Kind)
	assert.True(t, got.AngleBracket)
	assert.Equal(t, "./", got.PathPart)
	assert.Equal(t, "my fi", got.Prefix, "angle form keeps literal spaces in the prefix")

	// Pre-closed angle form: cursor before the closing bracket.
	preClosed := classify("[](<fi>"[:6], 6)
	assert.Equal(t, completion.KindRelativePath, preClosed.Kind)
	assert.True(t, preClosed.AngleBracket)
	assert.Equal(t, "fi", preClosed.Prefix)
}

func TestClassifyDecodesPercentEscapes(t *testing.T) {
	got := classify("[](file%20w", 11)
	assert.Equal(t, completion.KindRelativePath, got.Kind)
	assert.Equal(t, "file w", got.Prefix)
}

func TestClassifyReferenceLabel(t *testing.T) {
	got := classify("see [text][re", 13)
	assert.Equal(t, completion.KindReferenceLabel, got.Kind)
	assert.Equal(t, "re", got.Prefix)
	assert.Equal(t, uint32(11), got.ReplaceRange.Start.Character)
}
