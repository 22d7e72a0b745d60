// Package carousel computes the geometry of a focal carousel: a horizontal
// row of square cards where the card nearest the viewport's center is drawn
// largest and frontmost and its neighbors shrink and fall behind it.
//
// # Overview
//
// Each layout pass flows one way per item:
//
//	item frame + viewport frame → [Measure] → [LayoutSample] → [Resolver] → [RenderMetrics]
//
// [Measure] reduces two boxes to the absolute horizontal distance between
// their midpoints. [Resolver.Resolve] turns that distance into a size and a
// stack order:
//
//	maxEffect  = ItemBaseSize / 2
//	progress   = 1 - min(distance, maxEffect) / maxEffect
//	size       = ItemBaseSize + progress * MaxSizeIncrease
//	stackOrder = BaseStackOrder - distance
//
// Size uses the clamped distance and saturates at ItemBaseSize beyond the
// effect radius. Stack order uses the raw distance so two far-away cards
// never tie or swap.
//
// # Container
//
// [Carousel] arranges the items with a fixed pitch (frame width plus
// spacing), insets the content so every item can be centered, and exposes
// view-aligned snap targets ([Carousel.Snap], [Carousel.SnapTarget]).
// [Carousel.Layout] runs a pass over all items against one viewport snapshot
// and returns a [Pass]; [Pass.DrawOrder] lists cards back to front.
//
// # State
//
// The carousel, its [Config] and its [Resolver] are immutable. The only
// mutable state is each item's last-known distance, held in a [Tracker]
// owned by whoever drives passes. Commits are last-writer-wins and a pass
// older than the last committed one is discarded.
//
// # Example
//
//	c, err := carousel.New(carousel.DefaultConfig(), items)
//	if err != nil {
//	    return err // INVALID_CONFIG: refuse to build
//	}
//	viewport := carousel.Rect{W: 390, H: 300}
//	pass := c.Layout(c.SnapTarget(2), viewport)
//	for _, card := range pass.DrawOrder() {
//	    draw(card.Item, card.Rect)
//	}
package carousel
