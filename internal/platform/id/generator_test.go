package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique ids, got %s twice", first)
	}
	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected version 7, got %d", parsed.Version())
	}
}

func TestUUIDGenerator_Prefix(t *testing.T) {
	t.Parallel()

	gen := &UUIDGenerator{Prefix: "lg_"}
	value, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(value, "lg_") {
		t.Fatalf("expected prefix, got %q", value)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(value, "lg_")); err != nil {
		t.Fatalf("expected uuid after prefix: %v", err)
	}
}
