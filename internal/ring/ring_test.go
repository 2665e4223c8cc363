package ring

import "testing"

func TestFocusedInvariantAfterRemove(t *testing.T) {
	r := New(1, 2, 3, 4)
	r.Focus(3)

	if _, ok := r.Remove(3); !ok {
		t.Fatalf("remove failed")
	}
	if r.FocusedIdx() != 2 {
		t.Fatalf("expected focus to fall back to previous index 2, got %d", r.FocusedIdx())
	}

	r2 := New(1)
	r2.Focus(0)
	if _, ok := r2.Remove(0); !ok {
		t.Fatalf("remove failed")
	}
	if r2.Len() != 0 {
		t.Fatalf("expected empty ring")
	}
	if r2.FocusedIdx() != 0 {
		t.Fatalf("expected focus saturated at 0 on empty ring, got %d", r2.FocusedIdx())
	}
}

func TestFocusedInvariantAfterRemoveMidRing(t *testing.T) {
	r := New("a", "b", "c", "d")
	r.Focus(1) // "b"

	removed, ok := r.Remove(1)
	if !ok || removed != "b" {
		t.Fatalf("expected to remove b, got %v ok=%v", removed, ok)
	}
	if r.FocusedIdx() != 0 {
		t.Fatalf("expected focus to fall back to previous index 0, got %d", r.FocusedIdx())
	}
	if got, _ := r.Focused(); got != "a" {
		t.Fatalf("expected focus to land on a, got %v", got)
	}
}

func TestFocusedInvariantAfterRemoveFirstFocused(t *testing.T) {
	r := New("a", "b")
	r.Focus(0)

	if _, ok := r.Remove(0); !ok {
		t.Fatalf("remove failed")
	}
	if r.FocusedIdx() != 0 {
		t.Fatalf("expected focus saturated at 0, got %d", r.FocusedIdx())
	}
	if got, _ := r.Focused(); got != "b" {
		t.Fatalf("expected focus to land on remaining element b, got %v", got)
	}
}

func TestCycleNextIdxWrapsBothWays(t *testing.T) {
	r := New("a", "b", "c")

	idx := 0
	for i := 0; i < 3; i++ {
		var ok bool
		idx, ok = CycleNextIdx(r, idx, CycleNext)
		if !ok {
			t.Fatalf("expected ok")
		}
	}
	if idx != 0 {
		t.Fatalf("expected three Next steps on a ring of 3 to return to 0, got %d", idx)
	}

	idx = 0
	idx, _ = CycleNextIdx(r, idx, CyclePrevious)
	if idx != 2 {
		t.Fatalf("expected Previous from 0 to wrap to last index 2, got %d", idx)
	}
}

func TestCycleNextThenPreviousIsIdentity(t *testing.T) {
	r := New(10, 20, 30, 40, 50)
	for start := 0; start < r.Len(); start++ {
		next, _ := CycleNextIdx(r, start, CycleNext)
		back, _ := CycleNextIdx(r, next, CyclePrevious)
		if back != start {
			t.Errorf("Next then Previous from %d returned %d, want %d", start, back, start)
		}
	}
}

func TestInsertShiftsFocus(t *testing.T) {
	r := New("a", "b", "c")
	r.Focus(1) // "b"
	r.Insert(0, "x")
	if got, _ := r.Focused(); got != "b" {
		t.Fatalf("expected focus to remain on b after insert at 0, got %v", got)
	}
}

func TestEmptyRingOperationsAreSafe(t *testing.T) {
	r := New[int]()
	if _, ok := r.Focused(); ok {
		t.Fatalf("expected no focused element on empty ring")
	}
	if _, ok := r.RemoveFocused(); ok {
		t.Fatalf("expected RemoveFocused to fail on empty ring")
	}
	if _, ok := CycleNextIdx(r, 0, CycleNext); ok {
		t.Fatalf("expected CycleNextIdx to fail on empty ring")
	}
}
