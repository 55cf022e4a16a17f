package history

import "testing"

func rec(text string) Record {
	return Record{Buffer: BufferState{Text: text}}
}

func TestPushClearsForward(t *testing.T) {
	h := New()
	h.Push(rec("a"))
	h.forward = append(h.forward, rec("stale"))
	h.Push(rec("b"))
	if h.ForwardLen() != 0 {
		t.Errorf("Push did not clear forward, got %d entries", h.ForwardLen())
	}
	if h.BackLen() != 2 {
		t.Errorf("BackLen = %d, want 2", h.BackLen())
	}
}

func TestUndoRedoSingleStep(t *testing.T) {
	h := New()
	h.Push(rec("a"))
	current := rec("b")

	prev, ok := h.Undo(current, 1)
	if !ok || prev.Buffer.Text != "a" {
		t.Fatalf("Undo = %+v, %v, want a, true", prev, ok)
	}

	restored, ok := h.Redo(prev, 1)
	if !ok || restored.Buffer.Text != "b" {
		t.Fatalf("Redo = %+v, %v, want b, true", restored, ok)
	}
}

func TestUndoRedoMultiStepRoundTrip(t *testing.T) {
	h := New()
	h.Push(rec("a"))
	h.Push(rec("b"))
	current := rec("c")

	back2, ok := h.Undo(current, 2)
	if !ok || back2.Buffer.Text != "a" {
		t.Fatalf("Undo(2) = %+v, %v, want a, true", back2, ok)
	}

	forward2, ok := h.Redo(back2, 2)
	if !ok || forward2.Buffer.Text != "c" {
		t.Fatalf("Redo(2) = %+v, %v, want c, true", forward2, ok)
	}
}

func TestUndoNoOpWhenEmpty(t *testing.T) {
	h := New()
	current := rec("only")
	_, ok := h.Undo(current, 1)
	if ok {
		t.Error("Undo on empty back stack should be a no-op")
	}
	if h.ForwardLen() != 0 {
		t.Error("no-op Undo must not push onto forward")
	}
}
