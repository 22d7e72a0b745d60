package carousel

// Slot is one item's last-known distance from the viewport's center.
type Slot struct {
	distance   float64
	generation uint64
}

// Distance returns the last committed distance. An unmeasured slot reports
// the configuration's BaseStackOrder, which puts it at stack order zero.
func (s Slot) Distance() float64 { return s.distance }

// Measured reports whether any pass has been committed to the slot.
func (s Slot) Measured() bool { return s.generation > 0 }

// Tracker owns one Slot per item and the pass generation counter. It is a
// single-writer, single-reader cell set for whoever drives layout passes and
// must not be shared between goroutines.
type Tracker struct {
	base      float64
	slots     []Slot
	issued    uint64
	committed uint64
}

// NewTracker creates a tracker with an unmeasured slot for every item of c.
func NewTracker(c *Carousel) *Tracker {
	t := &Tracker{
		base:  c.cfg.BaseStackOrder,
		slots: make([]Slot, c.Len()),
	}
	for i := range t.slots {
		t.slots[i].distance = t.base
	}
	return t
}

// Begin issues the generation for the next pass.
func (t *Tracker) Begin() uint64 {
	t.issued++
	return t.issued
}

// Commit stores every card's distance of p under generation gen. A pass
// older than the last committed one, or a generation Begin never issued, is
// dropped and Commit returns false.
func (t *Tracker) Commit(gen uint64, p Pass) bool {
	if gen == 0 || gen > t.issued || gen < t.committed {
		return false
	}
	for _, c := range p.Cards {
		i := c.Item.Index
		if i < 0 || i >= len(t.slots) {
			continue
		}
		t.slots[i] = Slot{distance: c.Sample.DistanceFromCenter, generation: gen}
	}
	t.committed = gen
	return true
}

// Generation returns the last committed generation, zero before any commit.
func (t *Tracker) Generation() uint64 { return t.committed }

// Slot returns the slot of item i.
func (t *Tracker) Slot(i int) (Slot, bool) {
	if i < 0 || i >= len(t.slots) {
		return Slot{}, false
	}
	return t.slots[i], true
}

// StackOrder returns item i's stack order from its last-known distance.
func (t *Tracker) StackOrder(i int) float64 {
	s, ok := t.Slot(i)
	if !ok {
		return 0
	}
	return t.base - s.distance
}
