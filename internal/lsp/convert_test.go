package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"marklink/internal/codeaction"
	"marklink/internal/completion"
	"marklink/internal/diagnostics"
	"marklink/internal/document"
	"marklink/internal/markdown"
)

func TestRangeRoundTrip(t *testing.T) {
	doc := document.New("file:///tmp/doc.md", "0\n1\n2\nsome plain ascii\n")
	original := document.Range{
		Start: document.Position{Line: 3, Character: 7},
		End:   document.Position{Line: 3, Character: 12},
	}

	converted := toProtocolRange(doc, original)
	assert.Equal(t, uint32(3), converted.Start.Line)
	assert.Equal(t, uint32(7), converted.Start.Character)
	assert.Equal(t, original, fromProtocolRange(doc, converted))
}

func TestRangeConversionNonASCII(t *testing.T) {
	// "é" is 2 bytes but 1 UTF-16 unit; "🙂" is 4 bytes but 2 units.
	doc := document.New("file:///tmp/doc.md", "é🙂 [link](x\n")

	// The client's cursor after "x" sits at UTF-16 column 12 (1 + 2 + 9
	// units) but byte column 15 (2 + 4 + 9 bytes).
	pos := fromProtocolPosition(doc, protocol.Position{Line: 0, Character: 12})
	assert.Equal(t, uint32(15), pos.Character)

	back := toProtocolPosition(doc, pos)
	assert.Equal(t, uint32(12), back.Character)
}

func TestToProtocolDiagnostics(t *testing.T) {
	doc := document.New("file:///tmp/doc.md", "# Title\n\n[ref]: ./a.md\n")
	diags := []diagnostics.Diagnostic{
		{
			Code: diagnostics.CodeUnusedDefinition,
			Range: document.Range{
				Start: document.Position{Line: 2, Character: 0},
				End:   document.Position{Line: 2, Character: 14},
			},
			Message: "Link definition is never used",
		},
	}

	converted := toProtocolDiagnostics(doc, diags)
	require.Len(t, converted, 1)

	diag := converted[0]
	require.NotNil(t, diag.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diag.Severity)
	require.NotNil(t, diag.Code)
	assert.Equal(t, string(diagnostics.CodeUnusedDefinition), diag.Code.Value)
	require.NotNil(t, diag.Source)
	assert.Equal(t, lsName, *diag.Source)
	assert.Equal(t, "Link definition is never used", diag.Message)
}

func TestToProtocolCompletionItems(t *testing.T) {
	doc := document.New("file:///tmp/doc.md", "[](no completions here)\n")
	replace := document.Range{
		Start: document.Position{Line: 0, Character: 3},
		End:   document.Position{Line: 0, Character: 5},
	}
	items := []completion.Item{
		{Label: "notes", InsertText: "notes", ReplaceRange: replace, IsDirectory: true},
		{Label: "#intro", InsertText: "#intro", ReplaceRange: replace, IsAnchor: true},
		{Label: "readme.md", InsertText: "readme.md", ReplaceRange: replace},
	}

	converted := toProtocolCompletionItems(doc, items)
	require.Len(t, converted, 3)

	assert.Equal(t, protocol.CompletionItemKindFolder, *converted[0].Kind)
	assert.Equal(t, protocol.CompletionItemKindReference, *converted[1].Kind)
	assert.Equal(t, protocol.CompletionItemKindFile, *converted[2].Kind)

	edit, ok := converted[2].TextEdit.(*protocol.TextEdit)
	require.True(t, ok)
	assert.Equal(t, "readme.md", edit.NewText)
	assert.Equal(t, toProtocolRange(doc, replace), edit.Range)
}

func TestToProtocolCodeAction(t *testing.T) {
	doc := document.New("file:///tmp/doc.md", "# T\n\ntext\n\n[ref]: ./a.md\n")
	definition := markdown.LinkDefinition{
		Label: "ref",
		SourceRange: document.Range{
			Start: document.Position{Line: 4, Character: 0},
			End:   document.Position{Line: 4, Character: 20},
		},
	}
	action := codeaction.Action{
		Title: "Remove unused link definition",
		Kind:  codeaction.KindQuickFix,
		Diagnostic: diagnostics.Diagnostic{
			Code:       diagnostics.CodeUnusedDefinition,
			Range:      definition.SourceRange,
			Message:    "Link definition is never used",
			Definition: &definition,
		},
		Edit: codeaction.Edit{
			URI: "file:///tmp/doc.md",
			Range: document.Range{
				Start: document.Position{Line: 4, Character: 0},
				End:   document.Position{Line: 5, Character: 0},
			},
		},
	}

	converted := toProtocolCodeAction(doc, action)
	assert.Equal(t, "Remove unused link definition", converted.Title)
	require.NotNil(t, converted.Kind)
	assert.Equal(t, protocol.CodeActionKindQuickFix, *converted.Kind)
	require.Len(t, converted.Diagnostics, 1)

	require.NotNil(t, converted.Edit)
	edits := converted.Edit.Changes["file:///tmp/doc.md"]
	require.Len(t, edits, 1)
	assert.Equal(t, "", edits[0].NewText)
	assert.Equal(t, uint32(4), edits[0].Range.Start.Line)
	assert.Equal(t, uint32(5), edits[0].Range.End.Line)
}
