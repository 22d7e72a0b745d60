package sink

import (
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/frame"
)

// RenderJSON exports the pass as a serialized [frame.Frame].
func RenderJSON(p carousel.Pass) ([]byte, error) {
	return frame.Marshal(frame.FromPass(p))
}
