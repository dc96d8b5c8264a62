package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"marklink/internal/codeaction"
	"marklink/internal/completion"
	"marklink/internal/diagnostics"
	"marklink/internal/document"
)

// Protocol positions count UTF-16 code units; internal positions count
// bytes. Every conversion in this file goes through the document so both
// stay honest on non-ASCII lines.

func toProtocolPosition(doc *document.Document, pos document.Position) protocol.Position {
	utf := doc.PositionToUTF16(pos)
	return protocol.Position{Line: utf.Line, Character: utf.Character}
}

func toProtocolRange(doc *document.Document, r document.Range) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(doc, r.Start),
		End:   toProtocolPosition(doc, r.End),
	}
}

func fromProtocolPosition(doc *document.Document, pos protocol.Position) document.Position {
	return doc.PositionFromUTF16(document.Position{Line: pos.Line, Character: pos.Character})
}

func fromProtocolRange(doc *document.Document, r protocol.Range) document.Range {
	return document.Range{
		Start: fromProtocolPosition(doc, r.Start),
		End:   fromProtocolPosition(doc, r.End),
	}
}

func toProtocolDiagnostics(doc *document.Document, diags []diagnostics.Diagnostic) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	source := lsName

	converted := make([]protocol.Diagnostic, 0, len(diags))
	for _, diag := range diags {
		code := protocol.IntegerOrString{Value: string(diag.Code)}
		converted = append(converted, protocol.Diagnostic{
			Range:    toProtocolRange(doc, diag.Range),
			Severity: &severity,
			Code:     &code,
			Source:   &source,
			Message:  diag.Message,
		})
	}
	return converted
}

func toProtocolCompletionItems(doc *document.Document, items []completion.Item) []protocol.CompletionItem {
	converted := make([]protocol.CompletionItem, 0, len(items))
	for _, item := range items {
		kind := protocol.CompletionItemKindFile
		switch {
		case item.IsDirectory:
			kind = protocol.CompletionItemKindFolder
		case item.IsAnchor:
			kind = protocol.CompletionItemKindReference
		}

		converted = append(converted, protocol.CompletionItem{
			Label: item.Label,
			Kind:  &kind,
			TextEdit: &protocol.TextEdit{
				Range:   toProtocolRange(doc, item.ReplaceRange),
				NewText: item.InsertText,
			},
		})
	}
	return converted
}

func toProtocolCodeAction(doc *document.Document, action codeaction.Action) protocol.CodeAction {
	kind := protocol.CodeActionKind(action.Kind)
	return protocol.CodeAction{
		Title:       action.Title,
		Kind:        &kind,
		Diagnostics: toProtocolDiagnostics(doc, []diagnostics.Diagnostic{action.Diagnostic}),
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				action.Edit.URI: {
					{
						Range:   toProtocolRange(doc, action.Edit.Range),
						NewText: action.Edit.NewText,
					},
				},
			},
		},
	}
}
