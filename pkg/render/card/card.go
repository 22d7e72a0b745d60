// Package card holds the presentation state of carousel items.
//
// An item's image is in one of three phases. [Loading] and [Failed] render as
// a translucent gray rounded square ([Failed] adds a photo glyph); [Loaded]
// renders the decoded image aspect-filled into the card. Loading state never
// influences geometry: the scaled size and stack order of a card are the
// same in every phase.
package card

import (
	"context"
	"image"
	"image/color"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
)

// Phase is the loading phase of an item's image.
type Phase int

const (
	Loading Phase = iota
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Placeholder appearance shared by every sink.
var (
	PlaceholderColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	PlaceholderOpacity = 0.3
	GlyphColor         = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// State is the presentation state of one item.
type State struct {
	Phase Phase
	Image image.Image // Set when Phase is Loaded
	Err   error       // Set when Phase is Failed; always carries RESOURCE_LOAD
}

// LoadingState returns the initial state of every item.
func LoadingState() State { return State{Phase: Loading} }

// LoadedState wraps a decoded image.
func LoadedState(img image.Image) State { return State{Phase: Loaded, Image: img} }

// FailedState records a load failure. Errors without a RESOURCE_LOAD code are
// wrapped so callers can test for it.
func FailedState(err error) State {
	if !errors.IsResourceLoad(err) {
		err = errors.Wrap(errors.ErrCodeResourceLoad, err, "load image")
	}
	return State{Phase: Failed, Err: err}
}

// Provider reports the presentation state of an item.
type Provider interface {
	State(ctx context.Context, item carousel.Item) State
}

// StaticProvider serves fixed states keyed by item index. Items without an
// entry are Loading.
type StaticProvider map[int]State

// State implements Provider.
func (p StaticProvider) State(_ context.Context, item carousel.Item) State {
	if s, ok := p[item.Index]; ok {
		return s
	}
	return LoadingState()
}

// PlaceholderProvider reports every item as Loading. Sinks use it when no
// provider is configured.
type PlaceholderProvider struct{}

// State implements Provider.
func (PlaceholderProvider) State(context.Context, carousel.Item) State { return LoadingState() }

var (
	_ Provider = StaticProvider(nil)
	_ Provider = PlaceholderProvider{}
)
