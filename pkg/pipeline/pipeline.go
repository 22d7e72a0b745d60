// Package pipeline provides the layout → render pipeline shared by the CLI and
// the HTTP server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Run one layout pass of a carousel at a scroll offset
//  2. Render: Generate output in the requested formats (SVG, PNG, JSON)
//
// Both stages are cached through a [cache.Cache]: the pass as a serialized
// [frame.Frame] and each artifact under its own key.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	idx := 2
//	result, err := runner.Execute(ctx, car, pipeline.Options{
//	    Index:   &idx,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/frame"
	"github.com/matzehuels/carousel/pkg/render/card"
	"github.com/matzehuels/carousel/pkg/render/sink"
)

const (
	// DefaultWidth is the default viewport width in points.
	DefaultWidth = 390.0

	// DefaultHeight is the default viewport height in points.
	DefaultHeight = 300.0

	// DefaultScale is the default PNG pixel density.
	DefaultScale = sink.DefaultScale

	// MaxViewportSide bounds each viewport dimension in points.
	MaxViewportSide = 16384.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Layout options
	Offset float64 `json:"offset,omitempty"`
	Index  *int    `json:"index,omitempty"` // Centers this item; overrides Offset
	Snap   bool    `json:"snap,omitempty"`  // Snaps Offset to the nearest item
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"` // Bypass cache reads

	// Runtime options (not serialized)
	Logger   *log.Logger   `json:"-"` // Defaults to the runner's logger
	Provider card.Provider `json:"-"` // nil renders sources directly (SVG) or placeholders (PNG)

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Pass is the layout pass that was rendered.
	Pass carousel.Pass

	// Frame is the serialized form of Pass.
	Frame frame.Frame

	// FrameHash is the content hash of the frame JSON.
	FrameHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Visible    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FrameHit  bool // Whether the pass came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Background == "" {
		o.Background = sink.DefaultBackground
	}
}

// Validate checks the options after defaults are applied.
func (o *Options) Validate() error {
	if math.IsNaN(o.Offset) || math.IsInf(o.Offset, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "offset must be finite, got %v", o.Offset)
	}
	if !(o.Width > 0) || !(o.Height > 0) || math.IsInf(o.Width, 0) || math.IsInf(o.Height, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "viewport must have a positive finite size, got %vx%v", o.Width, o.Height)
	}
	if o.Width > MaxViewportSide || o.Height > MaxViewportSide {
		return errors.New(errors.ErrCodeInvalidInput, "viewport %vx%v exceeds %v points per side", o.Width, o.Height, MaxViewportSide)
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive and finite, got %v", o.Scale)
	}
	if _, err := sink.ParseColor(o.Background); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults and validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Viewport returns the viewport rectangle anchored at the origin.
func (o *Options) Viewport() carousel.Rect {
	return carousel.Rect{W: o.Width, H: o.Height}
}

// ResolveOffset returns the scroll offset the pass is laid out at.
func (o *Options) ResolveOffset(car *carousel.Carousel) (float64, error) {
	if o.Index != nil {
		if *o.Index < 0 || *o.Index >= car.Len() {
			return 0, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d)", *o.Index, car.Len())
		}
		return car.SnapTarget(*o.Index), nil
	}
	if o.Snap {
		return car.Snap(o.Offset, o.Width), nil
	}
	return o.Offset, nil
}

// FrameKeyOpts returns cache key options for the layout pass.
func (o *Options) FrameKeyOpts(cfg carousel.Config, offset float64) cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		ConfigHash:     cache.HashJSON(cfg),
		Offset:         offset,
		ViewportWidth:  o.Width,
		ViewportHeight: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, phases string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Labels:     o.Labels,
		Background: o.Background,
		Phases:     phases,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
