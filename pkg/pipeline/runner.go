package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/frame"
	"github.com/matzehuels/carousel/pkg/observability"
	"github.com/matzehuels/carousel/pkg/render/card"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // Overrides FrameTTL and ArtifactTTL when positive
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, car *carousel.Carousel, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	offset, err := opts.ResolveOffset(car)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	pass, frameHit, err := r.LayoutWithCacheInfo(ctx, car, offset, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Pass = pass
	result.Frame = frame.FromPass(pass)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Items = len(pass.Cards)
	result.Stats.Visible = len(pass.Visible())
	result.CacheInfo.FrameHit = frameHit

	if data, err := frame.Marshal(result.Frame); err == nil {
		result.FrameHash = cache.Hash(data)
	}

	opts.Logger.Info("computed layout",
		"items", result.Stats.Items,
		"visible", result.Stats.Visible,
		"offset", offset,
		"focused", result.Frame.Focused,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, pass, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo runs one layout pass at offset, reusing a cached frame
// when one exists, and reports whether the cache was hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, car *carousel.Carousel, offset float64, opts Options) (carousel.Pass, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return carousel.Pass{}, false, err
	}

	cacheKey := r.Keyer.FrameKey(cache.HashJSON(car.Items()), opts.FrameKeyOpts(car.Config(), offset))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if f, err := frame.Unmarshal(data); err == nil && len(f.Cards) == car.Len() {
				observability.Cache().OnCacheHit(ctx, "frame")
				return f.Pass(), true, nil
			}
			// Corrupt entries fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "frame")
	}

	start := time.Now()
	observability.Pass().OnPassStart(ctx, car.Len(), offset)
	pass := car.Layout(offset, opts.Viewport())
	observability.Pass().OnPassComplete(ctx, len(pass.Cards), len(pass.Visible()), time.Since(start))

	if len(pass.Cards) > 0 {
		if data, err := frame.Marshal(frame.FromPass(pass)); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.FrameTTL)); err != nil {
				opts.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "frame", len(data))
			}
		}
	}

	return pass, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, car *carousel.Carousel, offset float64, opts Options) (carousel.Pass, error) {
	pass, _, err := r.LayoutWithCacheInfo(ctx, car, offset, opts)
	return pass, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, pass carousel.Pass, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	frameData, err := frame.Marshal(frame.FromPass(pass))
	if err != nil {
		return nil, false, fmt.Errorf("serialize frame for cache key: %w", err)
	}
	frameHash := cache.Hash(frameData)
	phases := r.phases(ctx, pass, opts)

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format, phases))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered, err := Render(ctx, pass, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format, phases))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ArtifactTTL)); err != nil {
			opts.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// phases summarizes the provider state of every card as one letter each
// (l, o, f for loading, loaded, failed).
func (r *Runner) phases(ctx context.Context, pass carousel.Pass, opts Options) string {
	if opts.Provider == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range pass.Cards {
		switch opts.Provider.State(ctx, c.Item).Phase {
		case card.Loaded:
			b.WriteByte('o')
		case card.Failed:
			b.WriteByte('f')
		default:
			b.WriteByte('l')
		}
	}
	return b.String()
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
