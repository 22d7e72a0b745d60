package carousel

import (
	"math"

	"github.com/matzehuels/carousel/pkg/errors"
)

// Default configuration values.
const (
	DefaultItemBaseSize      = 200.0
	DefaultItemFrameMargin   = 20.0
	DefaultItemSpacing       = -10.0
	DefaultMaxSizeIncrease   = 60.0
	DefaultCornerRadius      = 16.0
	DefaultHorizontalPadding = 16.0
	DefaultBaseStackOrder    = 1000.0
)

// Config holds the carousel's geometry constants. A Config is a plain value;
// once handed to [New] or [NewResolver] it is copied and never mutated.
type Config struct {
	// ItemBaseSize is the side of an unfocused card.
	ItemBaseSize float64 `json:"item_base_size" toml:"item_base_size"`
	// ItemFrameMargin is extra room around the base size reserved for growth.
	ItemFrameMargin float64 `json:"item_frame_margin" toml:"item_frame_margin"`
	// ItemSpacing separates item frames; negative values overlap neighbors.
	ItemSpacing float64 `json:"item_spacing" toml:"item_spacing"`
	// MaxSizeIncrease is the extra size granted to a perfectly centered card.
	MaxSizeIncrease float64 `json:"max_size_increase" toml:"max_size_increase"`
	CornerRadius    float64 `json:"corner_radius" toml:"corner_radius"`
	// HorizontalPadding is added on both ends of the item row.
	HorizontalPadding float64 `json:"horizontal_padding" toml:"horizontal_padding"`
	// BaseStackOrder is the z-order origin; stack orders are BaseStackOrder - distance.
	BaseStackOrder float64 `json:"base_stack_order" toml:"base_stack_order"`
}

// DefaultConfig returns the stock carousel geometry.
func DefaultConfig() Config {
	return Config{
		ItemBaseSize:      DefaultItemBaseSize,
		ItemFrameMargin:   DefaultItemFrameMargin,
		ItemSpacing:       DefaultItemSpacing,
		MaxSizeIncrease:   DefaultMaxSizeIncrease,
		CornerRadius:      DefaultCornerRadius,
		HorizontalPadding: DefaultHorizontalPadding,
		BaseStackOrder:    DefaultBaseStackOrder,
	}
}

// ItemFrameWidth is the width of the frame each card is laid out in.
func (c Config) ItemFrameWidth() float64 { return c.ItemBaseSize + c.ItemFrameMargin }

// Pitch is the distance between the leading edges of two neighboring frames.
func (c Config) Pitch() float64 { return c.ItemFrameWidth() + c.ItemSpacing }

// MaxEffectDistance is the distance at which a card stops growing.
func (c Config) MaxEffectDistance() float64 { return c.ItemBaseSize / 2 }

// MaxScaledSize is the size of a perfectly centered card.
func (c Config) MaxScaledSize() float64 { return c.ItemBaseSize + c.MaxSizeIncrease }

// validateScale checks what the resolver needs: a positive base size and
// finite scale constants.
func (c Config) validateScale() error {
	if err := finite(
		field{"item_base_size", c.ItemBaseSize},
		field{"max_size_increase", c.MaxSizeIncrease},
		field{"base_stack_order", c.BaseStackOrder},
	); err != nil {
		return err
	}
	if c.ItemBaseSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "item_base_size must be positive, got %v", c.ItemBaseSize)
	}
	if c.MaxEffectDistance() <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max effect distance must be positive, got %v", c.MaxEffectDistance())
	}
	if c.MaxSizeIncrease < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_size_increase cannot be negative, got %v", c.MaxSizeIncrease)
	}
	return nil
}

// Validate checks every field. It returns an error with code INVALID_CONFIG.
func (c Config) Validate() error {
	if err := c.validateScale(); err != nil {
		return err
	}
	if err := finite(
		field{"item_frame_margin", c.ItemFrameMargin},
		field{"item_spacing", c.ItemSpacing},
		field{"corner_radius", c.CornerRadius},
		field{"horizontal_padding", c.HorizontalPadding},
	); err != nil {
		return err
	}
	switch {
	case c.ItemFrameMargin < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "item_frame_margin cannot be negative, got %v", c.ItemFrameMargin)
	case c.Pitch() <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "item_spacing %v collapses the row (pitch %v)", c.ItemSpacing, c.Pitch())
	case c.CornerRadius < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "corner_radius cannot be negative, got %v", c.CornerRadius)
	case c.HorizontalPadding < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "horizontal_padding cannot be negative, got %v", c.HorizontalPadding)
	}
	return nil
}

type field struct {
	name  string
	value float64
}

func finite(fields ...field) error {
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite, got %v", f.name, f.value)
		}
	}
	return nil
}
