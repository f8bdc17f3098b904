package ident

import "testing"

func TestNewTemporary_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTemporary()
		if !id.IsTemporary() {
			t.Fatalf("expected temporary id, got %v", id)
		}
		if id.IsPersisted() {
			t.Fatalf("temporary id must not be persisted: %v", id)
		}
		if seen[id.Token()] {
			t.Fatalf("duplicate token after %d allocations: %s", i, id.Token())
		}
		seen[id.Token()] = true
	}
}
