// Package sink renders carousel layout passes into output formats.
//
// # Overview
//
// A "sink" transforms a computed [carousel.Pass] into a final output:
//
//   - SVG: vector output referencing each item's image source
//   - PNG: raster output drawn with fogleman/gg
//   - JSON: the serialized [frame.Frame]
//
// Every sink draws cards in [carousel.Pass.DrawOrder], so the card closest
// to the viewport's center is painted last and appears on top. Each card is
// a square of its scaled size, centered in its item frame and clipped to a
// rounded rectangle of the configured corner radius.
//
// # Presentation State
//
// Sinks ask a [card.Provider] for each item's phase. Loading and failed items
// render as a translucent gray placeholder (failed ones add a photo glyph);
// loaded items render their image aspect-filled. Without a provider the SVG
// sink references every source directly and the PNG sink draws placeholders.
//
// Basic usage:
//
//	svg := sink.RenderSVG(ctx, pass, sink.WithLabels())
//	png, err := sink.RenderPNG(ctx, pass, sink.WithPNGProvider(provider), sink.WithScale(2))
//	data, err := sink.RenderJSON(pass)
//
// [carousel.Pass]: github.com/matzehuels/carousel/pkg/carousel.Pass
// [carousel.Pass.DrawOrder]: github.com/matzehuels/carousel/pkg/carousel.Pass.DrawOrder
// [frame.Frame]: github.com/matzehuels/carousel/pkg/frame.Frame
// [card.Provider]: github.com/matzehuels/carousel/pkg/render/card.Provider
package sink
