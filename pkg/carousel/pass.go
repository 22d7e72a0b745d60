package carousel

import (
	"cmp"
	"slices"
)

// Card is one item's complete result for a layout pass.
type Card struct {
	Item    Item
	Frame   Rect // Unscaled item frame
	Rect    Rect // Scaled card, centered in Frame
	Sample  LayoutSample
	Metrics RenderMetrics
}

// Pass is the result of one layout pass. Every card of a pass was measured
// against the same viewport snapshot, so stack orders are comparable.
type Pass struct {
	Config   Config
	Offset   float64
	Viewport Rect
	Cards    []Card // In item order
}

// Layout runs one layout pass at the given scroll offset. The viewport is
// captured once and used for every item.
func (c *Carousel) Layout(offset float64, viewport Rect) Pass {
	p := Pass{
		Config:   c.cfg,
		Offset:   offset,
		Viewport: viewport,
		Cards:    make([]Card, len(c.items)),
	}
	for i, it := range c.items {
		frame := c.ItemFrame(i, offset, viewport)
		sample := Measure(i, frame, viewport)
		m := c.resolver.Resolve(sample)
		p.Cards[i] = Card{
			Item:    it,
			Frame:   frame,
			Rect:    frame.CenteredSquare(m.ScaledSize),
			Sample:  sample,
			Metrics: m,
		}
	}
	return p
}

// compareStack orders cards back to front. Equal stack orders put the lower
// index in front.
func compareStack(a, b Card) int {
	if c := cmp.Compare(a.Metrics.StackOrder, b.Metrics.StackOrder); c != 0 {
		return c
	}
	return cmp.Compare(b.Item.Index, a.Item.Index)
}

// DrawOrder returns the cards sorted back to front: the last card is the one
// closest to the viewport's center.
func (p Pass) DrawOrder() []Card {
	cards := slices.Clone(p.Cards)
	slices.SortStableFunc(cards, compareStack)
	return cards
}

// Visible returns, in item order, the cards whose scaled rect intersects the
// viewport.
func (p Pass) Visible() []Card {
	var out []Card
	for _, c := range p.Cards {
		if c.Rect.Intersects(p.Viewport) {
			out = append(out, c)
		}
	}
	return out
}

// Focused returns the frontmost card.
func (p Pass) Focused() (Card, bool) {
	if len(p.Cards) == 0 {
		return Card{}, false
	}
	return slices.MaxFunc(p.Cards, compareStack), true
}
