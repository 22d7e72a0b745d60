package carousel

import (
	"math"
	"testing"

	"github.com/matzehuels/carousel/pkg/errors"
)

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.ItemBaseSize = 200
	cfg.MaxSizeIncrease = 60
	cfg.BaseStackOrder = 1000
	return cfg
}

func mustResolver(t *testing.T, cfg Config) *Resolver {
	t.Helper()
	r, err := NewResolver(cfg)
	if err != nil {
		t.Fatalf("NewResolver() error: %v", err)
	}
	return r
}

func TestResolveScenario(t *testing.T) {
	r := mustResolver(t, scenarioConfig())

	tests := []struct {
		name      string
		distance  float64
		wantSize  float64
		wantStack float64
	}{
		{"centered", 0, 260, 1000},
		{"half way", 50, 230, 950},
		{"effect radius", 100, 200, 900},
		{"beyond radius", 300, 200, 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(LayoutSample{DistanceFromCenter: tt.distance})
			if got.ScaledSize != tt.wantSize {
				t.Errorf("ScaledSize = %v, want %v", got.ScaledSize, tt.wantSize)
			}
			if got.StackOrder != tt.wantStack {
				t.Errorf("StackOrder = %v, want %v", got.StackOrder, tt.wantStack)
			}
		})
	}
}

func TestResolveSaturatesBeyondEffectRadius(t *testing.T) {
	cfg := scenarioConfig()
	r := mustResolver(t, cfg)

	for _, d := range []float64{100, 100.0001, 150, 1e3, 1e9, 1e300} {
		got := r.Resolve(LayoutSample{DistanceFromCenter: d})
		if got.ScaledSize != cfg.ItemBaseSize {
			t.Errorf("distance %v: ScaledSize = %v, want %v", d, got.ScaledSize, cfg.ItemBaseSize)
		}
	}
}

func TestResolveNegativeDistanceStaysInBounds(t *testing.T) {
	cfg := scenarioConfig()
	r := mustResolver(t, cfg)

	for _, d := range []float64{-0.5, -50, -1e9} {
		got := r.Resolve(LayoutSample{DistanceFromCenter: d})
		if got.ScaledSize != cfg.ItemBaseSize+cfg.MaxSizeIncrease {
			t.Errorf("distance %v: ScaledSize = %v, want %v", d, got.ScaledSize, cfg.ItemBaseSize+cfg.MaxSizeIncrease)
		}
		if got.StackOrder != cfg.BaseStackOrder-d {
			t.Errorf("distance %v: StackOrder = %v, want %v", d, got.StackOrder, cfg.BaseStackOrder-d)
		}
	}
}

func TestResolveSizeMonotonic(t *testing.T) {
	cfg := scenarioConfig()
	r := mustResolver(t, cfg)

	prev := r.Resolve(LayoutSample{DistanceFromCenter: 0})
	for d := 0.5; d <= 400; d += 0.5 {
		cur := r.Resolve(LayoutSample{DistanceFromCenter: d})
		if cur.ScaledSize > prev.ScaledSize {
			t.Fatalf("size grew from %v to %v at distance %v", prev.ScaledSize, cur.ScaledSize, d)
		}
		if cur.ScaledSize < cfg.ItemBaseSize || cur.ScaledSize > cfg.MaxScaledSize() {
			t.Fatalf("size %v at distance %v outside [%v, %v]", cur.ScaledSize, d, cfg.ItemBaseSize, cfg.MaxScaledSize())
		}
		prev = cur
	}
}

func TestResolveStackStrictlyDecreasing(t *testing.T) {
	r := mustResolver(t, scenarioConfig())

	distances := []float64{0, 0.001, 1, 99, 100, 101, 500, 5000, 1e6}
	for i := 1; i < len(distances); i++ {
		near := r.Resolve(LayoutSample{DistanceFromCenter: distances[i-1]})
		far := r.Resolve(LayoutSample{DistanceFromCenter: distances[i]})
		if !(near.StackOrder > far.StackOrder) {
			t.Errorf("StackOrder(%v) = %v, not greater than StackOrder(%v) = %v",
				distances[i-1], near.StackOrder, distances[i], far.StackOrder)
		}
	}
}

func TestResolveContinuousAtBoundary(t *testing.T) {
	cfg := scenarioConfig()
	r := mustResolver(t, cfg)

	for _, eps := range []float64{1, 1e-2, 1e-4, 1e-6} {
		got := r.Resolve(LayoutSample{DistanceFromCenter: cfg.MaxEffectDistance() - eps})
		want := cfg.ItemBaseSize + eps/cfg.MaxEffectDistance()*cfg.MaxSizeIncrease
		if math.Abs(got.ScaledSize-want) > 1e-9 {
			t.Errorf("eps %v: ScaledSize = %v, want %v", eps, got.ScaledSize, want)
		}
		if got.ScaledSize-cfg.ItemBaseSize > eps {
			t.Errorf("eps %v: ScaledSize %v jumps away from base size", eps, got.ScaledSize)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	cfg := scenarioConfig()
	r := mustResolver(t, cfg)
	s := LayoutSample{Index: 3, DistanceFromCenter: 42.5, ViewportMidX: 195, ItemMidX: 237.5}

	first := r.Resolve(s)
	second := r.Resolve(s)
	if first != second {
		t.Errorf("Resolve() not idempotent: %+v vs %+v", first, second)
	}

	viaFunc, err := Resolve(s, cfg)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if viaFunc != first {
		t.Errorf("Resolve(sample, cfg) = %+v, want %+v", viaFunc, first)
	}
}

func TestNewResolverRejectsConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero base size", func(c *Config) { c.ItemBaseSize = 0 }},
		{"negative base size", func(c *Config) { c.ItemBaseSize = -200 }},
		{"NaN base size", func(c *Config) { c.ItemBaseSize = math.NaN() }},
		{"infinite increase", func(c *Config) { c.MaxSizeIncrease = math.Inf(1) }},
		{"negative increase", func(c *Config) { c.MaxSizeIncrease = -1 }},
		{"infinite stack base", func(c *Config) { c.BaseStackOrder = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			r, err := NewResolver(cfg)
			if err == nil {
				t.Fatal("NewResolver() expected error")
			}
			if r != nil {
				t.Error("NewResolver() returned a resolver alongside an error")
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}

			if _, err := Resolve(LayoutSample{}, cfg); err == nil {
				t.Error("Resolve() expected error")
			}
		})
	}
}

func TestResolveZeroIncrease(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSizeIncrease = 0
	r := mustResolver(t, cfg)

	if got := r.Resolve(LayoutSample{}).ScaledSize; got != cfg.ItemBaseSize {
		t.Errorf("ScaledSize = %v, want %v", got, cfg.ItemBaseSize)
	}
}
