package sink

import (
	"bytes"
	"context"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/render/card"
)

// DefaultScale renders PNGs at 2x resolution.
const DefaultScale = 2.0

// maxPixels bounds the raster size of a single PNG.
const maxPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	provider   card.Provider
	labels     bool
	background string
	scale      float64
}

// WithPNGProvider sets the provider of decoded images. Without one every card
// is drawn as a loading placeholder.
func WithPNGProvider(p card.Provider) PNGOption {
	return func(r *pngRenderer) { r.provider = p }
}

// WithPNGLabels draws a caption on each card.
func WithPNGLabels() PNGOption {
	return func(r *pngRenderer) { r.labels = true }
}

// WithPNGBackground sets the canvas color as #rgb or #rrggbb.
func WithPNGBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the pass.
func RenderPNG(ctx context.Context, p carousel.Pass, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{
		provider:   card.PlaceholderProvider{},
		background: DefaultBackground,
		scale:      DefaultScale,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}

	// Bounds are checked in float64 so huge viewports cannot wrap int.
	fw := math.Ceil(p.Viewport.W * r.scale)
	fh := math.Ceil(p.Viewport.H * r.scale)
	if !(fw >= 1) || !(fh >= 1) || fw*fh > maxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png size %vx%v out of range", fw, fh)
	}
	w, h := int(fw), int(fh)

	dc := gg.NewContext(w, h)
	if r.background != "" {
		bg, err := ParseColor(r.background)
		if err != nil {
			return nil, err
		}
		dc.SetColor(bg)
		dc.Clear()
	}
	dc.SetFontFace(basicfont.Face7x13)

	radius := p.Config.CornerRadius * r.scale
	for _, c := range p.DrawOrder() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rect := r.toPixels(c.Rect, p.Viewport)
		r.drawCard(dc, r.provider.State(ctx, c.Item), rect, radius)
		if r.labels {
			drawPNGLabel(dc, c, rect)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// toPixels maps a card rect from viewport space to canvas pixels.
func (r *pngRenderer) toPixels(rect, vp carousel.Rect) carousel.Rect {
	return carousel.Rect{
		X: (rect.X - vp.X) * r.scale,
		Y: (rect.Y - vp.Y) * r.scale,
		W: rect.W * r.scale,
		H: rect.H * r.scale,
	}
}

func (r *pngRenderer) drawCard(dc *gg.Context, s card.State, rect carousel.Rect, radius float64) {
	if s.Phase == card.Loaded && s.Image != nil {
		side := int(math.Round(rect.W))
		if side <= 0 {
			return
		}
		img := card.Fill(s.Image, side, side)
		dc.DrawRoundedRectangle(rect.X, rect.Y, rect.W, rect.H, radius)
		dc.Clip()
		dc.DrawImage(img, int(math.Round(rect.X)), int(math.Round(rect.Y)))
		dc.ResetClip()
		return
	}

	pc := card.PlaceholderColor
	dc.SetRGBA(float64(pc.R)/255, float64(pc.G)/255, float64(pc.B)/255, card.PlaceholderOpacity)
	dc.DrawRoundedRectangle(rect.X, rect.Y, rect.W, rect.H, radius)
	dc.Fill()

	dc.SetColor(card.GlyphColor)
	dc.SetLineWidth(2 * r.scale)
	cx, cy := rect.MidX(), rect.MidY()
	if s.Phase == card.Failed {
		sz := rect.W * 0.18
		dc.DrawRoundedRectangle(cx-sz, cy-sz*0.75, 2*sz, 1.5*sz, 3*r.scale)
		dc.Stroke()
		dc.MoveTo(cx-sz, cy+sz*0.5)
		dc.LineTo(cx-sz*0.35, cy-sz*0.15)
		dc.LineTo(cx+sz*0.05, cy+sz*0.25)
		dc.LineTo(cx+sz*0.4, cy-sz*0.05)
		dc.LineTo(cx+sz, cy+sz*0.5)
		dc.Stroke()
		dc.DrawCircle(cx+sz*0.5, cy-sz*0.4, sz*0.15)
		dc.Stroke()
		return
	}
	dc.DrawArc(cx, cy, rect.W*0.06, 0, 1.5*math.Pi)
	dc.Stroke()
}

func drawPNGLabel(dc *gg.Context, c carousel.Card, rect carousel.Rect) {
	text := label(c)
	x, y := rect.MidX(), rect.Y+rect.H-12
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(text, x+1, y+1, 0.5, 0.5)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}
