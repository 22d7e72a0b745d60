package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/observability"
	"github.com/matzehuels/carousel/pkg/render/sink"
)

// Render generates output artifacts for a pass in the requested formats.
func Render(ctx context.Context, pass carousel.Pass, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(ctx, pass, svgOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, pass, pngOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(pass)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	out := []sink.SVGOption{sink.WithBackground(opts.Background)}
	if opts.Provider != nil {
		out = append(out, sink.WithProvider(opts.Provider))
	}
	if opts.Labels {
		out = append(out, sink.WithLabels())
	}
	return out
}

func pngOptions(opts Options) []sink.PNGOption {
	out := []sink.PNGOption{
		sink.WithPNGBackground(opts.Background),
		sink.WithScale(opts.Scale),
	}
	if opts.Provider != nil {
		out = append(out, sink.WithPNGProvider(opts.Provider))
	}
	if opts.Labels {
		out = append(out, sink.WithPNGLabels())
	}
	return out
}
