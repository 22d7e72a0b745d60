// Package pkg provides the libraries behind the carousel command.
//
// # Overview
//
// A carousel is a horizontally scrolling row of square image cards. On every
// layout pass each card is measured against the viewport: the card closest
// to the center is drawn largest and in front, and cards further away shrink
// back to their base size and fall behind. The pkg directory is organized
// into four areas:
//
//  1. [carousel] - Domain logic (geometry, scale and stack resolution, passes)
//  2. [render] - Card image states and output sinks (SVG, PNG, JSON)
//  3. [pipeline] - Orchestration (layout → render) with caching
//  4. Infrastructure - [cache], [catalog], [config], [server], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	Catalog (TOML file, MongoDB or built-in)
//	         ↓
//	    [carousel] package (layout pass at a scroll offset)
//	         ↓
//	    [frame] package (serializable pass, cached)
//	         ↓
//	    [render/sink] package (SVG, PNG, JSON)
//
// # Quick Start
//
// Lay out a catalog centered on its third item and render it:
//
//	car, err := carousel.New(carousel.DefaultConfig(), catalog.Default().Items)
//	if err != nil {
//	    return err
//	}
//	pass := car.Layout(car.SnapTarget(2), carousel.Rect{W: 390, H: 300})
//	svg := sink.RenderSVG(ctx, pass)
//
// Or run the cached pipeline used by the CLI and the HTTP server:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, car, pipeline.Options{Formats: []string{"png"}})
package pkg
