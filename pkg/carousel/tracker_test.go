package carousel

import "testing"

func TestTrackerUnmeasured(t *testing.T) {
	c := mustCarousel(t, 3)
	tr := NewTracker(c)

	for i := 0; i < 3; i++ {
		s, ok := tr.Slot(i)
		if !ok {
			t.Fatalf("Slot(%d) missing", i)
		}
		if s.Measured() {
			t.Errorf("Slot(%d).Measured() = true before any pass", i)
		}
		if s.Distance() != DefaultBaseStackOrder {
			t.Errorf("Slot(%d).Distance() = %v, want %v", i, s.Distance(), DefaultBaseStackOrder)
		}
		if got := tr.StackOrder(i); got != 0 {
			t.Errorf("StackOrder(%d) = %v, want 0", i, got)
		}
	}

	if _, ok := tr.Slot(3); ok {
		t.Error("Slot(3) should not exist")
	}
}

func TestTrackerCommit(t *testing.T) {
	c := mustCarousel(t, 5)
	tr := NewTracker(c)

	gen := tr.Begin()
	if !tr.Commit(gen, c.Layout(c.SnapTarget(2), phone)) {
		t.Fatal("Commit() rejected the first pass")
	}
	if tr.Generation() != gen {
		t.Errorf("Generation() = %d, want %d", tr.Generation(), gen)
	}

	s, _ := tr.Slot(2)
	if !s.Measured() || s.Distance() != 0 {
		t.Errorf("Slot(2) = %+v, want measured with distance 0", s)
	}
	if got := tr.StackOrder(2); got != DefaultBaseStackOrder {
		t.Errorf("StackOrder(2) = %v, want %v", got, DefaultBaseStackOrder)
	}
	if tr.StackOrder(2) <= tr.StackOrder(1) {
		t.Error("centered item should stack above its neighbor")
	}
}

func TestTrackerDropsStalePass(t *testing.T) {
	c := mustCarousel(t, 5)
	tr := NewTracker(c)

	stale := tr.Begin()
	fresh := tr.Begin()

	if !tr.Commit(fresh, c.Layout(c.SnapTarget(4), phone)) {
		t.Fatal("Commit(fresh) rejected")
	}
	if tr.Commit(stale, c.Layout(c.SnapTarget(0), phone)) {
		t.Error("Commit(stale) accepted after a newer pass")
	}

	s, _ := tr.Slot(4)
	if s.Distance() != 0 {
		t.Errorf("Slot(4).Distance() = %v, want 0 (fresh pass must win)", s.Distance())
	}
}

func TestTrackerLastWriterWins(t *testing.T) {
	c := mustCarousel(t, 5)
	tr := NewTracker(c)

	gen := tr.Begin()
	tr.Commit(gen, c.Layout(c.SnapTarget(0), phone))
	// Re-committing the same generation overwrites.
	tr.Commit(gen, c.Layout(c.SnapTarget(1), phone))

	s, _ := tr.Slot(1)
	if s.Distance() != 0 {
		t.Errorf("Slot(1).Distance() = %v, want 0", s.Distance())
	}
}

func TestTrackerRejectsUnissuedGeneration(t *testing.T) {
	c := mustCarousel(t, 5)
	tr := NewTracker(c)
	pass := c.Layout(c.SnapTarget(3), phone)

	for _, gen := range []uint64{0, 1, 42} {
		if tr.Commit(gen, pass) {
			t.Errorf("Commit(%d) accepted before Begin", gen)
		}
	}
	if tr.Generation() != 0 {
		t.Errorf("Generation() = %d, want 0", tr.Generation())
	}

	gen := tr.Begin()
	if tr.Commit(gen+1, pass) {
		t.Errorf("Commit(%d) accepted a future generation", gen+1)
	}
	if !tr.Commit(gen, pass) {
		t.Errorf("Commit(%d) rejected an issued generation", gen)
	}
}
