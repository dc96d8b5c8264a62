package completion

import (
	ctxpkg "context"

	"marklink/internal/document"
	"marklink/internal/workspace"
)

// Provider orchestrates classification, resolution and assembly for one
// completion request.
type Provider struct {
	resolver *Resolver
	enabled  bool
}

func NewProvider(ws workspace.Workspace, headings HeadingSource, enabled bool) *Provider {
	return &Provider{
		resolver: NewResolver(ws, headings),
		enabled:  enabled,
	}
}

// Complete returns the completion items for a cursor position. It never
// fails toward the host: disabled completion, no link in progress, schemed
// destinations, cancellation and lookup failures all yield an empty list.
//
// The None short-circuit happens before any workspace or heading work;
// completion runs on every keystroke and most keystrokes are not links.
func (p *Provider) Complete(ctx ctxpkg.Context, doc *document.Document, pos document.Position) []Item {
	if !p.enabled {
		return nil
	}

	line := doc.Line(pos.Line)
	cursor := int(pos.Character)
	if cursor > len(line) {
		cursor = len(line)
	}

	linkCtx := Classify(line[:cursor], line[cursor:], pos)
	if linkCtx.Kind == KindNone {
		return nil
	}

	if ctx.Err() != nil {
		return nil
	}
	candidates, err := p.resolver.Resolve(ctx, linkCtx, doc)
	if err != nil {
		return nil
	}

	return Assemble(candidates, linkCtx.ReplaceRange, linkCtx.AngleBracket)
}
