package sink

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/carousel/pkg/errors"
)

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses #rgb and #rrggbb colors. Anything else is an
// INVALID_FORMAT error.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidFormat, "invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
