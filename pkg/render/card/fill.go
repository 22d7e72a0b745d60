package card

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Fill scales img to cover a w×h rectangle while keeping its aspect ratio,
// cropping the overflow evenly on both sides.
func Fill(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if img == nil || w <= 0 || h <= 0 {
		return dst
	}
	b := img.Bounds()
	if b.Empty() {
		return dst
	}

	// Crop the source to the destination's aspect ratio.
	src := b
	sw, sh := b.Dx(), b.Dy()
	if sw*h > sh*w {
		cw := sh * w / h
		src.Min.X += (sw - cw) / 2
		src.Max.X = src.Min.X + cw
	} else {
		ch := sw * h / w
		src.Min.Y += (sh - ch) / 2
		src.Max.Y = src.Min.Y + ch
	}

	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return dst
}
