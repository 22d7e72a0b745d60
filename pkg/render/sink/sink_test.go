package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/render/card"
)

func testPass(t *testing.T, n int) carousel.Pass {
	t.Helper()
	items := make([]carousel.Item, n)
	for i := range items {
		items[i] = carousel.Item{Source: fmt.Sprintf("https://example.com/%d.png?a=1&b=2", i), Index: i}
	}
	c, err := carousel.New(carousel.DefaultConfig(), items)
	if err != nil {
		t.Fatalf("carousel.New() error: %v", err)
	}
	return c.Layout(c.SnapTarget(2), carousel.Rect{W: 390, H: 300})
}

func TestRenderSVGDrawOrder(t *testing.T) {
	svg := string(RenderSVG(context.Background(), testPass(t, 5)))

	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("output should start with <svg, got %q", svg[:20])
	}
	if !strings.Contains(svg, `viewBox="0.0 0.0 390.0 300.0"`) {
		t.Error("viewBox should match the viewport")
	}

	// Cards appear back to front; the centered card is last.
	var positions []int
	for _, idx := range []int{4, 0, 3, 1, 2} {
		pos := strings.Index(svg, fmt.Sprintf(`<g id="card-%d"`, idx))
		if pos < 0 {
			t.Fatalf("card %d missing", idx)
		}
		positions = append(positions, pos)
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			t.Errorf("cards not in draw order: %v", positions)
		}
	}
}

func TestRenderSVGCardGeometry(t *testing.T) {
	svg := string(RenderSVG(context.Background(), testPass(t, 5)))

	want := `<clipPath id="clip-2"><rect x="65.00" y="20.00" width="260.00" height="260.00" rx="16.0"/></clipPath>`
	if !strings.Contains(svg, want) {
		t.Errorf("missing clip path for focused card:\n%s", svg)
	}
	if !strings.Contains(svg, `href="https://example.com/2.png?a=1&amp;b=2"`) {
		t.Error("image source should be escaped")
	}
}

func TestRenderSVGPhases(t *testing.T) {
	provider := card.StaticProvider{
		0: card.LoadedState(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		1: card.FailedState(fmt.Errorf("boom")),
	}
	svg := string(RenderSVG(context.Background(), testPass(t, 3), WithProvider(provider), WithLabels()))

	if got := strings.Count(svg, "<image "); got != 1 {
		t.Errorf("image count = %d, want 1", got)
	}
	if got := strings.Count(svg, `class="placeholder"`); got != 2 {
		t.Errorf("placeholder count = %d, want 2", got)
	}
	if got := strings.Count(svg, `class="glyph"`); got != 1 {
		t.Errorf("glyph count = %d, want 1", got)
	}
	if got := strings.Count(svg, `class="progress"`); got != 1 {
		t.Errorf("progress count = %d, want 1", got)
	}
	if !strings.Contains(svg, `fill-opacity="0.3"`) {
		t.Error("placeholder should be translucent")
	}
	if !strings.Contains(svg, "#2  d=0  z=1000") {
		t.Error("labels should show index, distance and stack order")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	p := carousel.Pass{Viewport: carousel.Rect{W: 100, H: 100}}
	svg := string(RenderSVG(context.Background(), p, WithBackground("")))
	if strings.Contains(svg, "<g id=") || strings.Contains(svg, "fill=") {
		t.Errorf("empty pass without background should draw nothing:\n%s", svg)
	}
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	return img
}

func rgb(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestRenderPNG(t *testing.T) {
	red := image.NewUniform(color.RGBA{R: 255, A: 255})
	solid := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			solid.Set(x, y, red.C)
		}
	}

	data, err := RenderPNG(context.Background(), testPass(t, 5),
		WithPNGProvider(card.StaticProvider{2: card.LoadedState(solid)}))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img := decodePNG(t, data)

	if got := img.Bounds(); got.Dx() != 780 || got.Dy() != 600 {
		t.Fatalf("size = %dx%d, want 780x600", got.Dx(), got.Dy())
	}
	if r, g, b := rgb(img.At(4, 4)); r != 0xf2 || g != 0xf2 || b != 0xf7 {
		t.Errorf("background = %d,%d,%d, want f2f2f7", r, g, b)
	}
	if r, g, b := rgb(img.At(390, 300)); r < 250 || g > 5 || b > 5 {
		t.Errorf("focused card center = %d,%d,%d, want red", r, g, b)
	}
	// Item 1's placeholder blends gray over the background.
	if r, _, _ := rgb(img.At(20, 300)); r >= 0xf2 || r <= 128 {
		t.Errorf("placeholder pixel red channel = %d, want between 128 and 242", r)
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, err := RenderPNG(context.Background(), testPass(t, 2), WithScale(1), WithPNGLabels())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if got := decodePNG(t, data).Bounds(); got.Dx() != 390 || got.Dy() != 300 {
		t.Errorf("size = %dx%d, want 390x300", got.Dx(), got.Dy())
	}
}

func TestRenderPNGRejects(t *testing.T) {
	ctx := context.Background()
	huge := testPass(t, 1)
	huge.Viewport = carousel.Rect{W: 1 << 31, H: 1 << 31}
	wide := testPass(t, 1)
	wide.Viewport = carousel.Rect{W: 1 << 40, H: 1}
	tests := []struct {
		name string
		pass carousel.Pass
		opts []PNGOption
		code errors.Code
	}{
		{"zero scale", testPass(t, 1), []PNGOption{WithScale(0)}, errors.ErrCodeInvalidInput},
		{"empty viewport", carousel.Pass{}, nil, errors.ErrCodeInvalidInput},
		{"bad background", testPass(t, 1), []PNGOption{WithPNGBackground("teal")}, errors.ErrCodeInvalidFormat},
		{"huge viewport", huge, []PNGOption{WithScale(2)}, errors.ErrCodeInvalidInput},
		{"overlong side", wide, nil, errors.ErrCodeInvalidInput},
		{"NaN scale", testPass(t, 1), []PNGOption{WithScale(math.NaN())}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderPNG(ctx, tt.pass, tt.opts...); !errors.Is(err, tt.code) {
				t.Errorf("RenderPNG() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testPass(t, 5))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out struct {
		Focused int `json:"focused"`
		Cards   []struct {
			ScaledSize float64 `json:"scaled_size"`
		} `json:"cards"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Focused != 2 || len(out.Cards) != 5 || out.Cards[2].ScaledSize != 260 {
		t.Errorf("RenderJSON() = %+v", out)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"#f00", color.RGBA{255, 0, 0, 255}, false},
		{"102030", color.RGBA{16, 32, 48, 255}, false},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
