package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"marklink/internal/diagnostics"
	"marklink/internal/document"
	"marklink/internal/memory"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	doc := s.docs.Open(params.TextDocument.URI, params.TextDocument.Text)
	s.publishDiagnostics(context, doc)
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	doc, ok := s.docs.Get(uri)
	if !ok {
		return fmt.Errorf("document not open: %s", uri)
	}

	// Each change's range is relative to the document as left by the
	// previous change, so ranges convert against the latest snapshot.
	for _, change := range params.ContentChanges {
		var next memory.Change
		switch contentChange := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			next = memory.Change{Text: contentChange.Text}

		case protocol.TextDocumentContentChangeEvent:
			var rng *document.Range
			if contentChange.Range != nil {
				converted := fromProtocolRange(doc, *contentChange.Range)
				rng = &converted
			}
			next = memory.Change{Range: rng, Text: contentChange.Text}

		default:
			continue
		}

		var err error
		doc, err = s.docs.Apply(uri, []memory.Change{next})
		if err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	s.publishDiagnostics(context, doc)
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	if err := s.docs.Close(uri); err != nil {
		return err
	}
	s.dropDiagnostics(uri)

	// Clear the client's markers for the closed document.
	context.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// publishDiagnostics recomputes definition diagnostics for doc, caches them
// for later code-action requests and pushes them to the client.
func (s *Server) publishDiagnostics(context *glsp.Context, doc *document.Document) {
	diags := diagnostics.ForDocument(doc)
	s.cacheDiagnostics(doc.URI(), diags)

	context.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         doc.URI(),
		Diagnostics: toProtocolDiagnostics(doc, diags),
	})
}
