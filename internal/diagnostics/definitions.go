// Package diagnostics analyzes a document's link definitions and reports
// the unused and duplicated ones.
package diagnostics

import (
	"marklink/internal/document"
	"marklink/internal/markdown"
	"marklink/internal/nls"
)

// Code identifies a diagnostic family.
type Code string

const (
	CodeUnusedDefinition    Code = "link.unusedDefinition"
	CodeDuplicateDefinition Code = "link.duplicateDefinition"
)

// Diagnostic is one finding. Definition is set exactly for the two
// definition codes above; consumers must skip diagnostics without it.
type Diagnostic struct {
	Code       Code
	Range      document.Range
	Message    string
	Definition *markdown.LinkDefinition
}

// ForDocument computes definition diagnostics for one document. A label
// defined more than once marks every copy as a duplicate; a definition whose
// label is never referenced is unused. The same line can legitimately carry
// both findings.
func ForDocument(doc *document.Document) []Diagnostic {
	definitions := markdown.Definitions(doc)
	if len(definitions) == 0 {
		return nil
	}
	uses := markdown.ReferenceUses(doc)

	labelCounts := make(map[string]int, len(definitions))
	for _, def := range definitions {
		labelCounts[def.Label]++
	}

	var diags []Diagnostic
	for i := range definitions {
		def := &definitions[i]
		if uses[def.Label] == 0 {
			diags = append(diags, Diagnostic{
				Code:       CodeUnusedDefinition,
				Range:      def.SourceRange,
				Message:    nls.Lookup(nls.UnusedDefinitionMessage),
				Definition: def,
			})
		}
		if labelCounts[def.Label] > 1 {
			diags = append(diags, Diagnostic{
				Code:       CodeDuplicateDefinition,
				Range:      def.SourceRange,
				Message:    nls.Lookup(nls.DuplicateDefinitionMessage),
				Definition: def,
			})
		}
	}
	return diags
}
