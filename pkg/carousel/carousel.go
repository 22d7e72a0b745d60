package carousel

import (
	"math"

	"github.com/matzehuels/carousel/pkg/errors"
)

// Item is one card of the carousel.
type Item struct {
	// Source is an opaque image identifier, typically a URL.
	Source string `json:"source" toml:"source"`
	// Index is the item's position in the ordered sequence.
	Index int `json:"index" toml:"index"`
}

// Carousel arranges an ordered sequence of items in a horizontal row and runs
// layout passes over it. A Carousel is immutable and safe to share between
// goroutines; per-slot state lives in a [Tracker].
type Carousel struct {
	cfg      Config
	items    []Item
	resolver *Resolver
}

// New validates cfg and items and builds a carousel. Items must be indexed by
// their position (items[i].Index == i). Configuration problems return an
// INVALID_CONFIG error and no carousel.
func New(cfg Config, items []Item) (*Carousel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := NewResolver(cfg)
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		if it.Index != i {
			return nil, errors.New(errors.ErrCodeInvalidInput, "item %d has index %d, want %d", i, it.Index, i)
		}
	}
	return &Carousel{
		cfg:      cfg,
		items:    append([]Item(nil), items...),
		resolver: r,
	}, nil
}

// Config returns the carousel's configuration.
func (c *Carousel) Config() Config { return c.cfg }

// Resolver returns the resolver shared by every pass.
func (c *Carousel) Resolver() *Resolver { return c.resolver }

// Len returns the number of items.
func (c *Carousel) Len() int { return len(c.items) }

// Items returns a copy of the ordered items.
func (c *Carousel) Items() []Item { return append([]Item(nil), c.items...) }

// Item returns the item at index i.
func (c *Carousel) Item(i int) (Item, bool) {
	if i < 0 || i >= len(c.items) {
		return Item{}, false
	}
	return c.items[i], true
}

// ContentMargin is the inset applied on both sides of the scroll content so
// the first and last items can reach the viewport's center.
func (c *Carousel) ContentMargin(viewportWidth float64) float64 {
	return (viewportWidth - c.cfg.ItemFrameWidth()) / 2
}

// ContentWidth is the total scrollable width, margins and padding included.
func (c *Carousel) ContentWidth(viewportWidth float64) float64 {
	n := float64(len(c.items))
	w := 2*c.ContentMargin(viewportWidth) + 2*c.cfg.HorizontalPadding
	if n > 0 {
		w += n*c.cfg.ItemFrameWidth() + (n-1)*c.cfg.ItemSpacing
	}
	return w
}

// MaxOffset is the largest scroll offset the host allows.
func (c *Carousel) MaxOffset(viewportWidth float64) float64 {
	return math.Max(0, c.ContentWidth(viewportWidth)-viewportWidth)
}

// SnapTarget returns the scroll offset that centers item i.
func (c *Carousel) SnapTarget(i int) float64 {
	return c.cfg.HorizontalPadding + float64(i)*c.cfg.Pitch()
}

// NearestIndex returns the item whose snap target is closest to offset.
// It returns -1 for an empty carousel.
func (c *Carousel) NearestIndex(offset float64) int {
	if len(c.items) == 0 {
		return -1
	}
	i := int(math.Round((offset - c.cfg.HorizontalPadding) / c.cfg.Pitch()))
	return min(max(i, 0), len(c.items)-1)
}

// Snap returns the view-aligned resting offset for a scroll that ended at
// offset: the nearest item's snap target, clamped to the scrollable range.
func (c *Carousel) Snap(offset, viewportWidth float64) float64 {
	i := c.NearestIndex(offset)
	if i < 0 {
		return 0
	}
	return math.Min(math.Max(c.SnapTarget(i), 0), c.MaxOffset(viewportWidth))
}

// ItemFrame returns the frame of item i at the given scroll offset, in the
// viewport's coordinate space. Frames are square and vertically centered.
func (c *Carousel) ItemFrame(i int, offset float64, viewport Rect) Rect {
	fw := c.cfg.ItemFrameWidth()
	leading := c.cfg.HorizontalPadding + float64(i)*c.cfg.Pitch()
	return Rect{
		X: viewport.X + c.ContentMargin(viewport.W) + leading - offset,
		Y: viewport.Y + (viewport.H-fw)/2,
		W: fw,
		H: fw,
	}
}
