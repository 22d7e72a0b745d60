package carousel

import "math"

// RenderMetrics is what the renderer applies to one card for one pass.
type RenderMetrics struct {
	// ScaledSize lies in [ItemBaseSize, ItemBaseSize+MaxSizeIncrease].
	ScaledSize float64 `json:"scaled_size"`
	// StackOrder only has meaning relative to other cards of the same pass.
	StackOrder float64 `json:"stack_order"`
}

// Resolver maps a LayoutSample to RenderMetrics. It holds no mutable state and
// is safe for concurrent use.
type Resolver struct {
	cfg       Config
	maxEffect float64
}

// NewResolver validates the scale constants of cfg and returns a resolver.
// A non-positive ItemBaseSize yields an INVALID_CONFIG error and no resolver.
func NewResolver(cfg Config) (*Resolver, error) {
	if err := cfg.validateScale(); err != nil {
		return nil, err
	}
	return &Resolver{cfg: cfg, maxEffect: cfg.MaxEffectDistance()}, nil
}

// Resolve computes size from the distance clamped to [0, maxEffect] and stack
// order from the raw distance, so size saturates at the base size while
// ordering stays strictly monotonic at any distance.
func (r *Resolver) Resolve(s LayoutSample) RenderMetrics {
	clamped := math.Min(math.Max(s.DistanceFromCenter, 0), r.maxEffect)
	progress := 1 - clamped/r.maxEffect
	return RenderMetrics{
		ScaledSize: r.cfg.ItemBaseSize + progress*r.cfg.MaxSizeIncrease,
		StackOrder: r.cfg.BaseStackOrder - s.DistanceFromCenter,
	}
}

// Config returns the configuration the resolver was built with.
func (r *Resolver) Config() Config { return r.cfg }

// Resolve is a convenience wrapper for one-off resolution.
func Resolve(s LayoutSample, cfg Config) (RenderMetrics, error) {
	r, err := NewResolver(cfg)
	if err != nil {
		return RenderMetrics{}, err
	}
	return r.Resolve(s), nil
}
