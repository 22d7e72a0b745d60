package carousel

import "math"

// Rect is an axis-aligned box in the scrolling container's global frame.
// All coordinates are in points (pixels in SVG/PNG output).
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// MinX returns the x-coordinate of the leading edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the x-coordinate of the trailing edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MidX returns the horizontal center of the box.
func (r Rect) MidX() float64 { return r.X + r.W/2 }

// MidY returns the vertical center of the box.
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Intersects reports whether the two boxes overlap with a non-zero area.
func (r Rect) Intersects(o Rect) bool {
	if r.X >= o.MaxX() || o.X >= r.MaxX() {
		return false
	}
	return r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// CenteredSquare returns a square of the given side sharing r's center.
func (r Rect) CenteredSquare(side float64) Rect {
	return Rect{X: r.MidX() - side/2, Y: r.MidY() - side/2, W: side, H: side}
}

// LayoutSample is one item's measurement for one layout pass.
type LayoutSample struct {
	Index              int     `json:"index"`
	DistanceFromCenter float64 `json:"distance_from_center"`
	ViewportMidX       float64 `json:"viewport_mid_x"`
	ItemMidX           float64 `json:"item_mid_x"`
}

// Measure projects an item's bounding box and the viewport's bounding box,
// both in the same coordinate space, onto a LayoutSample.
//
// Geometry is not validated: a malformed box (negative width) still yields
// the arithmetic distance between the two midpoints.
func Measure(index int, itemFrame, viewportFrame Rect) LayoutSample {
	itemMid := itemFrame.MidX()
	viewportMid := viewportFrame.MidX()
	return LayoutSample{
		Index:              index,
		DistanceFromCenter: math.Abs(itemMid - viewportMid),
		ViewportMidX:       viewportMid,
		ItemMidX:           itemMid,
	}
}
