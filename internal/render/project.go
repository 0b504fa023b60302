package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Project scales src onto a w x h canvas. In cover mode the image is scaled
// by the larger of the width/height ratios, centered and cropped to fill the
// canvas; otherwise it is scaled by the smaller ratio and letterboxed
// centered. Returns nil when the source has no dimensions yet or the target
// size is empty.
func Project(src image.Image, w, h int, cover bool) *image.NRGBA {
	if src == nil || w <= 0 || h <= 0 {
		return nil
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil
	}

	if cover {
		return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	}

	fitted := imaging.Fit(src, w, h, imaging.Lanczos)
	canvas := imaging.New(w, h, color.NRGBA{})
	return imaging.PasteCenter(canvas, fitted)
}
