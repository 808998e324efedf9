package client

import (
	"testing"
)

func TestEmitter_EmitInRegistrationOrder(t *testing.T) {
	e := NewEmitter[int](nil)

	var seen []string
	e.Subscribe(func(v int) { seen = append(seen, "first") })
	e.Subscribe(func(v int) { seen = append(seen, "second") })
	e.Subscribe(func(v int) { seen = append(seen, "third") })

	e.Emit(1)

	if len(seen) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(seen))
	}
	for i, want := range []string{"first", "second", "third"} {
		if seen[i] != want {
			t.Errorf("position %d: expected %s, got %s", i, want, seen[i])
		}
	}
}

func TestEmitter_Unsubscribe(t *testing.T) {
	e := NewEmitter[string](nil)

	calls := 0
	keep := func(v string) { calls++ }

	// Identical callbacks must be independently removable by token.
	tok1 := e.Subscribe(keep)
	tok2 := e.Subscribe(keep)

	if !e.Unsubscribe(tok1) {
		t.Error("expected unsubscribe of a live token to succeed")
	}
	if e.Unsubscribe(tok1) {
		t.Error("expected repeat unsubscribe to report false")
	}
	if e.Len() != 1 {
		t.Errorf("expected 1 listener left, got %d", e.Len())
	}

	e.Emit("x")
	if calls != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", calls)
	}

	if !e.Unsubscribe(tok2) {
		t.Error("expected second token to still be live")
	}
}

func TestEmitter_PanickingListenerIsIsolated(t *testing.T) {
	e := NewEmitter[int](nil)

	var after bool
	e.Subscribe(func(v int) { panic("listener bug") })
	e.Subscribe(func(v int) { after = true })

	e.Emit(1)

	if !after {
		t.Error("expected listeners after a panicking one to still run")
	}
}

func TestEmitter_EmitWithNoListeners(t *testing.T) {
	e := NewEmitter[int](nil)
	e.Emit(42)

	if e.Len() != 0 {
		t.Errorf("expected 0 listeners, got %d", e.Len())
	}
}
