// Package codeaction synthesizes quick fixes from already-computed
// diagnostics. It never mutates the document; the host applies the edits.
package codeaction

import (
	"iter"
	"strings"

	"marklink/internal/diagnostics"
	"marklink/internal/document"
	"marklink/internal/nls"
)

// KindQuickFix is the LSP code-action kind these fixes carry.
const KindQuickFix = "quickfix"

// Edit deletes or replaces a span of one document.
type Edit struct {
	URI     string
	Range   document.Range
	NewText string
}

// Action is one offered quick fix, bound to the diagnostic it repairs.
type Action struct {
	Title      string
	Kind       string
	Diagnostic diagnostics.Diagnostic
	Edit       Edit
}

// RemoveDefinitions yields quick fixes that delete offending link-definition
// lines, lazily so a consumer that stops early pays for nothing more.
//
// All unused-definition fixes come first, then duplicate-definition fixes
// for lines not already covered: a line flagged unused must not also get a
// duplicate fix, or the two edits would conflict. Diagnostics with the wrong
// code or no definition payload are skipped.
func RemoveDefinitions(doc *document.Document, requested document.Range, diags []diagnostics.Diagnostic, only []string) iter.Seq[Action] {
	return func(yield func(Action) bool) {
		if !kindAllowed(only) {
			return
		}

		seenLines := make(map[uint32]bool)
		for _, diag := range diags {
			if diag.Code != diagnostics.CodeUnusedDefinition || diag.Definition == nil {
				continue
			}
			if !requested.Intersects(diag.Range) {
				continue
			}
			seenLines[diag.Definition.SourceRange.Start.Line] = true
			if !yield(removeAction(doc, diag, nls.RemoveUnusedDefinitionTitle)) {
				return
			}
		}

		for _, diag := range diags {
			if diag.Code != diagnostics.CodeDuplicateDefinition || diag.Definition == nil {
				continue
			}
			if !requested.Intersects(diag.Range) {
				continue
			}
			if seenLines[diag.Definition.SourceRange.Start.Line] {
				continue
			}
			if !yield(removeAction(doc, diag, nls.RemoveDuplicateDefinitionTitle)) {
				return
			}
		}
	}
}

// removeAction builds a fix deleting the definition's entire line, from
// column 0 through column 0 of the next line, terminator included.
func removeAction(doc *document.Document, diag diagnostics.Diagnostic, titleKey string) Action {
	line := diag.Definition.SourceRange.Start.Line
	return Action{
		Title:      nls.Lookup(titleKey),
		Kind:       KindQuickFix,
		Diagnostic: diag,
		Edit: Edit{
			URI: doc.URI(),
			Range: document.Range{
				Start: document.Position{Line: line, Character: 0},
				End:   document.Position{Line: line + 1, Character: 0},
			},
		},
	}
}

// kindAllowed applies the request's `only` filter: the quick-fix kind must
// itself be allowed, or one of its ancestors must be.
func kindAllowed(only []string) bool {
	if only == nil {
		return true
	}
	for _, kind := range only {
		if kind == "" || kind == KindQuickFix || strings.HasPrefix(KindQuickFix, kind+".") {
			return true
		}
	}
	return false
}
