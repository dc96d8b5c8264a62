package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"marklink/internal/codeaction"
)

func (s *Server) textDocumentCodeAction(
	context *glsp.Context,
	params *protocol.CodeActionParams,
) (any, error) {
	uri := params.TextDocument.URI
	doc, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	// Code actions run against the diagnostics this server last published
	// for the document, so the definition payloads are still typed instead
	// of round-tripped through JSON.
	diags := s.cachedDiagnostics(uri)
	if len(diags) == 0 {
		return nil, nil
	}

	var only []string
	if params.Context.Only != nil {
		only = make([]string, 0, len(params.Context.Only))
		for _, kind := range params.Context.Only {
			only = append(only, string(kind))
		}
	}

	var actions []protocol.CodeAction
	for action := range codeaction.RemoveDefinitions(doc, fromProtocolRange(doc, params.Range), diags, only) {
		actions = append(actions, toProtocolCodeAction(doc, action))
	}
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}
