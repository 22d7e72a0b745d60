// Package frame serializes carousel layout passes.
//
// A [Frame] is the portable form of a [carousel.Pass]: every card's geometry
// and metrics plus the configuration and viewport that produced them. Frames
// are written as JSON by the CLI and the HTTP server and cached as bytes. A
// frame can be turned back into a pass with [Frame.Pass] and rendered again
// without the original catalog.
package frame

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/carousel/pkg/carousel"
)

// Frame is one serialized layout pass.
type Frame struct {
	Viewport Rect            `json:"viewport"`
	Offset   float64         `json:"offset"`
	Config   carousel.Config `json:"config"`
	Focused  int             `json:"focused"` // -1 when empty
	Cards    []Card          `json:"cards"`   // In item order
}

// Rect mirrors [carousel.Rect] with serialization tags.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Card is one item of a frame.
type Card struct {
	Index      int     `json:"index"`
	Source     string  `json:"source"`
	Frame      Rect    `json:"frame"`
	Rect       Rect    `json:"rect"`
	Distance   float64 `json:"distance"`
	ScaledSize float64 `json:"scaled_size"`
	StackOrder float64 `json:"stack_order"`
	Visible    bool    `json:"visible"`
}

func fromRect(r carousel.Rect) Rect { return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

func (r Rect) toRect() carousel.Rect { return carousel.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

// FromPass captures a layout pass.
func FromPass(p carousel.Pass) Frame {
	f := Frame{
		Viewport: fromRect(p.Viewport),
		Offset:   p.Offset,
		Config:   p.Config,
		Focused:  -1,
		Cards:    make([]Card, len(p.Cards)),
	}
	for i, c := range p.Cards {
		f.Cards[i] = Card{
			Index:      c.Item.Index,
			Source:     c.Item.Source,
			Frame:      fromRect(c.Frame),
			Rect:       fromRect(c.Rect),
			Distance:   c.Sample.DistanceFromCenter,
			ScaledSize: c.Metrics.ScaledSize,
			StackOrder: c.Metrics.StackOrder,
			Visible:    c.Rect.Intersects(p.Viewport),
		}
	}
	if c, ok := p.Focused(); ok {
		f.Focused = c.Item.Index
	}
	return f
}

// Pass rebuilds the layout pass the frame was captured from.
func (f Frame) Pass() carousel.Pass {
	vp := f.Viewport.toRect()
	p := carousel.Pass{
		Config:   f.Config,
		Offset:   f.Offset,
		Viewport: vp,
		Cards:    make([]carousel.Card, len(f.Cards)),
	}
	for i, c := range f.Cards {
		frame := c.Frame.toRect()
		p.Cards[i] = carousel.Card{
			Item:  carousel.Item{Source: c.Source, Index: c.Index},
			Frame: frame,
			Rect:  c.Rect.toRect(),
			Sample: carousel.LayoutSample{
				Index:              c.Index,
				DistanceFromCenter: c.Distance,
				ViewportMidX:       vp.MidX(),
				ItemMidX:           frame.MidX(),
			},
			Metrics: carousel.RenderMetrics{ScaledSize: c.ScaledSize, StackOrder: c.StackOrder},
		}
	}
	return p
}

// Marshal serializes a frame to pretty-printed JSON bytes.
func Marshal(f Frame) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Unmarshal deserializes JSON bytes into a frame and checks that card
// indices are dense and in order.
func Unmarshal(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("unmarshal frame: %w", err)
	}
	for i, c := range f.Cards {
		if c.Index != i {
			return Frame{}, fmt.Errorf("frame card %d has index %d", i, c.Index)
		}
	}
	if f.Viewport.W <= 0 || f.Viewport.H <= 0 {
		return Frame{}, fmt.Errorf("frame viewport must have a positive size, got %vx%v", f.Viewport.W, f.Viewport.H)
	}
	return f, nil
}

// WriteFile writes a frame to a JSON file.
func WriteFile(f Frame, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a frame from a JSON file.
func ReadFile(path string) (Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Frame{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
