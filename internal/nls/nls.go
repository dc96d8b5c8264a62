// Package nls resolves user-visible strings by stable identifier, so hosts
// can override wording without touching core logic.
package nls

import "sync"

// Message keys. Keys are part of the configuration surface; do not rename.
const (
	RemoveUnusedDefinitionTitle    = "codeAction.removeUnusedDefinition.title"
	RemoveDuplicateDefinitionTitle = "codeAction.removeDuplicateDefinition.title"
	UnusedDefinitionMessage        = "diagnostic.unusedDefinition.message"
	DuplicateDefinitionMessage     = "diagnostic.duplicateDefinition.message"
)

var defaults = map[string]string{
	RemoveUnusedDefinitionTitle:    "Remove unused link definition",
	RemoveDuplicateDefinitionTitle: "Remove duplicate link definition",
	UnusedDefinitionMessage:        "Link definition is unused",
	DuplicateDefinitionMessage:     "Link definition is a duplicate",
}

var (
	mu        sync.RWMutex
	overrides map[string]string
)

// Lookup returns the string for key, preferring any configured override.
// Unknown keys fall back to the key itself so a missing entry stays visible.
func Lookup(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if s, ok := overrides[key]; ok {
		return s
	}
	if s, ok := defaults[key]; ok {
		return s
	}
	return key
}

// Override installs host-provided strings on top of the defaults.
func Override(bundle map[string]string) {
	mu.Lock()
	defer mu.Unlock()

	if overrides == nil {
		overrides = make(map[string]string, len(bundle))
	}
	for key, value := range bundle {
		overrides[key] = value
	}
}
