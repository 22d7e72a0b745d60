// Package render groups the rendering side of the carousel.
//
// # Overview
//
// Rendering turns a [carousel.Pass] into output bytes. It is split in two:
//
//   - [card]: the load state of every card's image (loading, loaded, failed)
//     and the providers that supply it
//   - [sink]: output formats. SVG and JSON are written directly; PNG is
//     rasterized with fogleman/gg
//
// Cards are always drawn in [carousel.Pass.DrawOrder], back to front, so the
// focused card covers its neighbors in every format.
//
//	provider := card.StaticProvider{0: card.LoadedState(img), 1: card.FailedState(err)}
//	png, err := sink.RenderPNG(ctx, pass, sink.WithPNGProvider(provider))
package render
