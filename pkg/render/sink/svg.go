package sink

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/render/card"
)

// DefaultBackground is the canvas color of every sink.
const DefaultBackground = "#f2f2f7"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	provider   card.Provider
	labels     bool
	background string
}

// WithProvider sets the source of image phases. Without one every card is
// drawn as a loaded image linking to its source.
func WithProvider(p card.Provider) SVGOption {
	return func(r *svgRenderer) { r.provider = p }
}

// WithLabels draws a caption on each card.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = true }
}

// WithBackground sets the canvas fill. An empty string leaves it transparent.
func WithBackground(c string) SVGOption {
	return func(r *svgRenderer) { r.background = c }
}

// RenderSVG renders the pass as a viewport-sized SVG document.
func RenderSVG(ctx context.Context, p carousel.Pass, opts ...SVGOption) []byte {
	r := svgRenderer{background: DefaultBackground}
	for _, opt := range opts {
		opt(&r)
	}

	vp := p.Viewport
	radius := p.Config.CornerRadius

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vp.X, vp.Y, vp.W, vp.H, vp.W, vp.H)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			vp.X, vp.Y, vp.W, vp.H, html.EscapeString(r.background))
	}

	cards := p.DrawOrder()
	buf.WriteString("  <defs>\n")
	for _, c := range cards {
		fmt.Fprintf(&buf, `    <clipPath id="clip-%d"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f"/></clipPath>`+"\n",
			c.Item.Index, c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, radius)
	}
	buf.WriteString("  </defs>\n")

	for _, c := range cards {
		fmt.Fprintf(&buf, `  <g id="card-%d" data-stack-order="%g">`+"\n", c.Item.Index, c.Metrics.StackOrder)
		r.renderCard(ctx, &buf, c, radius)
		if r.labels {
			renderSVGLabel(&buf, c)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCard(ctx context.Context, buf *bytes.Buffer, c carousel.Card, radius float64) {
	phase := card.Loaded
	if r.provider != nil {
		phase = r.provider.State(ctx, c.Item).Phase
	}

	switch phase {
	case card.Loaded:
		fmt.Fprintf(buf, `    <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid slice" clip-path="url(#clip-%d)"/>`+"\n",
			html.EscapeString(c.Item.Source), c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, c.Item.Index)
	case card.Failed:
		renderSVGPlaceholder(buf, c, radius)
		renderSVGGlyph(buf, c)
	default:
		renderSVGPlaceholder(buf, c, radius)
		renderSVGProgress(buf, c)
	}
}

func renderSVGPlaceholder(buf *bytes.Buffer, c carousel.Card, radius float64) {
	fmt.Fprintf(buf, `    <rect class="placeholder" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.1f" fill="%s" fill-opacity="%.1f"/>`+"\n",
		c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, radius, hexColor(card.PlaceholderColor), card.PlaceholderOpacity)
}

// renderSVGGlyph draws a photo icon: a frame, a mountain and a sun.
func renderSVGGlyph(buf *bytes.Buffer, c carousel.Card) {
	s := c.Rect.W * 0.18
	cx, cy := c.Rect.MidX(), c.Rect.MidY()
	stroke := hexColor(card.GlyphColor)
	fmt.Fprintf(buf, `    <g class="glyph" fill="none" stroke="%s" stroke-width="2">`+"\n", stroke)
	fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3"/>`+"\n", cx-s, cy-s*0.75, 2*s, 1.5*s)
	fmt.Fprintf(buf, `      <polyline points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f"/>`+"\n",
		cx-s, cy+s*0.5, cx-s*0.35, cy-s*0.15, cx+s*0.05, cy+s*0.25, cx+s*0.4, cy-s*0.05, cx+s, cy+s*0.5)
	fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n", cx+s*0.5, cy-s*0.4, s*0.15)
	buf.WriteString("    </g>\n")
}

func renderSVGProgress(buf *bytes.Buffer, c carousel.Card) {
	fmt.Fprintf(buf, `    <circle class="progress" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="3" stroke-dasharray="20 10"/>`+"\n",
		c.Rect.MidX(), c.Rect.MidY(), c.Rect.W*0.06, hexColor(card.GlyphColor))
}

func renderSVGLabel(buf *bytes.Buffer, c carousel.Card) {
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="12" fill="#ffffff" stroke="#000000" stroke-width="0.5">%s</text>`+"\n",
		c.Rect.MidX(), c.Rect.Y+c.Rect.H-10, html.EscapeString(label(c)))
}

// label is the caption drawn under each card when labels are enabled.
func label(c carousel.Card) string {
	return fmt.Sprintf("#%d  d=%.0f  z=%.0f", c.Item.Index, c.Sample.DistanceFromCenter, c.Metrics.StackOrder)
}
