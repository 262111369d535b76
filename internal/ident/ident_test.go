package ident

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewIsUniqueAndParsable(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id after %d calls: %s", i, id)
		}
		seen[id] = true
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("unparsable id %q: %v", id, err)
		}
	}
}
