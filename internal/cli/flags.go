package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/catalog"
	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/pipeline"
)

// renderFlags are the flags shared by every command that lays out and
// renders a catalog. Unset flags fall back to the config file.
type renderFlags struct {
	catalog string
	width   float64
	height  float64
	formats string
	labels  bool
	noCache bool
	refresh bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.catalog, "catalog", "c", "", "catalog file (TOML); defaults to the configured catalog")
	fl.Float64Var(&f.width, "width", 0, "viewport width in points")
	fl.Float64Var(&f.height, "height", 0, "viewport height in points")
	fl.StringVarP(&f.formats, "format", "f", "", "output formats: svg, png, json (comma-separated)")
	fl.BoolVar(&f.labels, "labels", false, "draw index and stack order on each card")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached frames and artifacts")
}

// session bundles everything a render command needs.
type session struct {
	cfg     config.Config
	car     *carousel.Carousel
	catalog catalog.Catalog
	runner  *pipeline.Runner
	opts    pipeline.Options
}

func (s *session) Close() error { return s.runner.Close() }

// newSession loads config and catalog, opens the cache and merges flags over
// config defaults.
func (c *CLI) newSession(ctx context.Context, cmd *cobra.Command, f renderFlags) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	car, cat, err := c.loadCarousel(ctx, cfg, f.catalog)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, cfg, f.noCache)
	if err != nil {
		return nil, err
	}

	opts := renderDefaults(cfg)
	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("labels") {
		opts.Labels = f.labels
	}
	opts.Formats = parseFormats(f.formats, cfg.Render.Formats)
	opts.Refresh = f.refresh

	return &session{cfg: cfg, car: car, catalog: cat, runner: runner, opts: opts}, nil
}
