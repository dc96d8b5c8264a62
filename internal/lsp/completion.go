package lsp

import (
	ctxpkg "context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	doc, ok := s.docs.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	pos := fromProtocolPosition(doc, params.Position)

	items := s.provider.Complete(requestContext(context), doc, pos)
	if len(items) == 0 {
		return nil, nil
	}
	return toProtocolCompletionItems(doc, items), nil
}

// requestContext extracts the request's cancellation context; glsp leaves it
// nil for notifications.
func requestContext(context *glsp.Context) ctxpkg.Context {
	if context != nil && context.Context != nil {
		return context.Context
	}
	return ctxpkg.Background()
}
