package nls

import "testing"

func TestLookupDefaults(t *testing.T) {
	if got := Lookup(RemoveUnusedDefinitionTitle); got != "Remove unused link definition" {
		t.Errorf("unexpected title: %q", got)
	}
}

func TestLookupUnknownKeyFallsBack(t *testing.T) {
	if got := Lookup("no.such.key"); got != "no.such.key" {
		t.Errorf("expected key fallback, got %q", got)
	}
}

func TestOverride(t *testing.T) {
	Override(map[string]string{RemoveDuplicateDefinitionTitle: "Doppelte Linkdefinition entfernen"})
	t.Cleanup(func() {
		mu.Lock()
		overrides = nil
		mu.Unlock()
	})

	if got := Lookup(RemoveDuplicateDefinitionTitle); got != "Doppelte Linkdefinition entfernen" {
		t.Errorf("override not applied: %q", got)
	}
	if got := Lookup(RemoveUnusedDefinitionTitle); got != "Remove unused link definition" {
		t.Errorf("unrelated key affected: %q", got)
	}
}
