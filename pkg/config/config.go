// Package config loads the carousel configuration file.
//
// The file is TOML and every section is optional; missing values keep their
// defaults:
//
//	[carousel]
//	item_base_size = 200
//	max_size_increase = 60
//
//	[viewport]
//	width = 390
//	height = 300
//
//	[render]
//	formats = ["svg", "png"]
//	labels = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[catalog]
//	path = "catalog.toml"
//
//	[server]
//	addr = ":8080"
//
// The default location is $XDG_CONFIG_HOME/carousel/carousel.toml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
)

const appName = "carousel"

// Default values for the non-carousel sections.
const (
	DefaultViewportWidth  = 390.0
	DefaultViewportHeight = 300.0
	DefaultCacheTTL       = 7 * 24 * time.Hour
	DefaultServerAddr     = ":8080"
	DefaultBackground     = "#f2f2f7"
	DefaultScale          = 2.0
)

// Config is the complete file configuration.
type Config struct {
	Carousel carousel.Config `toml:"carousel"`
	Viewport Viewport        `toml:"viewport"`
	Render   Render          `toml:"render"`
	Cache    Cache           `toml:"cache"`
	Catalog  Catalog         `toml:"catalog"`
	Server   Server          `toml:"server"`
}

// Viewport is the size of the rendered window.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Rect returns the viewport anchored at the origin.
func (v Viewport) Rect() carousel.Rect {
	return carousel.Rect{W: v.Width, H: v.Height}
}

// Render holds output settings.
type Render struct {
	Formats    []string `toml:"formats"`
	Labels     bool     `toml:"labels"`
	Scale      float64  `toml:"scale"`
	Background string   `toml:"background"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend  string   `toml:"backend"` // file, redis or none
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Catalog locates the item catalog. A path wins over MongoDB.
type Catalog struct {
	Path       string `toml:"path"`
	Name       string `toml:"name"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `toml:"addr"`
	// CatalogDir is where ?catalog= names are resolved.
	CatalogDir string `toml:"catalog_dir"`
}

// Duration decodes TOML strings such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Carousel: carousel.DefaultConfig(),
		Viewport: Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		Render: Render{
			Formats:    []string{"svg"},
			Scale:      DefaultScale,
			Background: DefaultBackground,
		},
		Cache:  Cache{Backend: "file", TTL: Duration{DefaultCacheTTL}},
		Server: Server{Addr: DefaultServerAddr},
	}
}

// Validate checks the configuration. Errors carry INVALID_CONFIG.
func (c Config) Validate() error {
	if err := c.Carousel.Validate(); err != nil {
		return err
	}
	if !(c.Viewport.Width > 0) || !(c.Viewport.Height > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport must have a positive size, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if !(c.Render.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "render scale must be positive, got %v", c.Render.Scale)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	return nil
}

// Decode parses TOML on top of the defaults and validates the result.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path. An empty path loads [Path] and treats a
// missing default file as an empty one.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Decode(data)
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".toml"), nil
}

// Dir returns the config directory using XDG standard (~/.config/carousel/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/carousel/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
