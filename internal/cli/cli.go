package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/buildinfo"
	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/catalog"
	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "carousel"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Carousel lays out and renders focal image carousels",
		Long: `Carousel lays out a horizontally scrolling row of image cards in which the
card nearest the viewport center grows and is drawn in front of its neighbors.

It renders single frames or scroll sweeps to SVG, PNG and JSON, serves frames
over HTTP, and previews the carousel interactively in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/carousel/carousel.toml)")

	// Register all subcommands
	root.AddCommand(c.frameCommand())
	root.AddCommand(c.sweepCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := openCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	// Artifacts from other builds may render differently.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	r := pipeline.NewRunner(cc, keyer, c.Logger)
	r.TTL = cfg.Cache.TTL.Duration
	return r, nil
}

// openCache opens the configured cache backend. A file cache without a
// directory uses the XDG cache directory.
func openCache(ctx context.Context, cc config.Cache, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := cache.Options{
		Backend:  cc.Backend,
		Dir:      cc.Dir,
		RedisURL: cc.RedisURL,
		Prefix:   appName + ":",
	}
	if opts.Dir == "" && (opts.Backend == "" || opts.Backend == cache.BackendFile) {
		dir, err := config.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// =============================================================================
// Catalog Loading
// =============================================================================

// loadCatalog resolves the catalog to lay out: an explicit file, the
// configured file, the configured MongoDB collection, or the built-in default.
func (c *CLI) loadCatalog(ctx context.Context, cfg config.Config, path string) (catalog.Catalog, error) {
	if path == "" {
		path = cfg.Catalog.Path
	}
	if path != "" {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("load catalog: %w", err)
		}
		return cat, nil
	}

	if cfg.Catalog.MongoURI != "" {
		store, err := c.openStore(ctx, cfg)
		if err != nil {
			return catalog.Catalog{}, err
		}
		defer store.Close(context.Background())

		name := cfg.Catalog.Name
		if name == "" {
			name = catalog.DefaultName
		}
		cat, err := store.Load(ctx, name)
		if err != nil {
			return catalog.Catalog{}, fmt.Errorf("load catalog %s: %w", name, err)
		}
		return cat, nil
	}

	return catalog.Default(), nil
}

// openStore connects to the configured MongoDB catalog store.
func (c *CLI) openStore(ctx context.Context, cfg config.Config) (*catalog.MongoStore, error) {
	store, err := catalog.NewMongoStore(ctx, catalog.MongoOptions{
		URI:        cfg.Catalog.MongoURI,
		Database:   cfg.Catalog.Database,
		Collection: cfg.Catalog.Collection,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to catalog store: %w", err)
	}
	c.Logger.Debug("connected to catalog store", "database", cfg.Catalog.Database)
	return store, nil
}

// loadCarousel loads the catalog and builds a carousel from it.
func (c *CLI) loadCarousel(ctx context.Context, cfg config.Config, path string) (*carousel.Carousel, catalog.Catalog, error) {
	cat, err := c.loadCatalog(ctx, cfg, path)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	car, err := carousel.New(cfg.Carousel, cat.Items)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	c.Logger.Debug("loaded catalog", "name", cat.Name, "items", car.Len())
	return car, cat, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderDefaults returns pipeline options seeded from the config file.
func renderDefaults(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		Formats:    cfg.Render.Formats,
		Labels:     cfg.Render.Labels,
		Scale:      cfg.Render.Scale,
		Background: cfg.Render.Background,
	}
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields fallback, or svg when fallback is empty.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		if len(fallback) > 0 {
			return fallback
		}
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
