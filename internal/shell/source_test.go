package shell

import (
	"errors"
	"testing"

	"github.com/funvibe/softbind/internal/registry"
)

func TestStringSource(t *testing.T) {
	src := NewStringSource("ab")
	if c := src.Next(); c != 'a' {
		t.Fatalf("Next() = %d, want 'a'", c)
	}
	if err := src.Pushback(); err != nil {
		t.Fatalf("Pushback: %v", err)
	}
	if c := src.Next(); c != 'a' {
		t.Fatalf("Next() after pushback = %d, want 'a'", c)
	}
	if c := src.Next(); c != 'b' {
		t.Fatalf("Next() = %d, want 'b'", c)
	}
	if c := src.Next(); c != PEOF {
		t.Fatalf("Next() at end = %d, want PEOF", c)
	}
	if err := src.Pushback(); err != nil {
		t.Fatalf("Pushback of PEOF: %v", err)
	}
	if src.Pos() != 2 {
		t.Errorf("Pos() = %d, want 2", src.Pos())
	}
	if c := src.Next(); c != PEOF {
		t.Errorf("Next() = %d, want PEOF again", c)
	}
}

func TestStringSourceDoublePushback(t *testing.T) {
	src := NewStringSource("xy")
	if err := src.Pushback(); !errors.Is(err, registry.ErrPrecondition) {
		t.Errorf("pushback before read: err = %v, want ErrPrecondition", err)
	}
	src.Next()
	if err := src.Pushback(); err != nil {
		t.Fatal(err)
	}
	if err := src.Pushback(); !errors.Is(err, registry.ErrPrecondition) {
		t.Errorf("second pushback: err = %v, want ErrPrecondition", err)
	}
	if src.Pos() != 0 {
		t.Errorf("cursor corrupted: Pos() = %d", src.Pos())
	}
}

func TestStringSourceRunes(t *testing.T) {
	src := NewStringSource("é|")
	if c := src.Next(); c != 'é' {
		t.Errorf("Next() = %q, want 'é'", rune(c))
	}
	if src.Remaining() != "|" {
		t.Errorf("Remaining() = %q", src.Remaining())
	}
}
