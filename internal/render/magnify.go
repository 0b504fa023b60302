// Package render produces the derived images the picker overlays display:
// the magnified pixel neighborhood and fit/cover projections of a source
// image onto a target surface.
package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"pixelpick/internal/raster"
)

const (
	// DefaultSampleSize is the side length of the magnified neighborhood,
	// in buffer pixels.
	DefaultSampleSize = 20

	// DefaultZoom is the magnification factor.
	DefaultZoom = 4

	// crosshairLength is the crosshair arm span in output pixels. It is
	// deliberately independent of the zoom factor.
	crosshairLength = 11
)

// MagnifyOptions configures a magnifier rendering pass.
type MagnifyOptions struct {
	SampleSize     int
	Zoom           int
	CrosshairColor color.Color
}

func (o MagnifyOptions) withDefaults() MagnifyOptions {
	if o.SampleSize <= 0 {
		o.SampleSize = DefaultSampleSize
	}
	if o.Zoom <= 0 {
		o.Zoom = DefaultZoom
	}
	if o.CrosshairColor == nil {
		o.CrosshairColor = color.RGBA{R: 255, A: 255}
	}
	return o
}

// Magnify renders the SampleSize-sided neighborhood of (cx, cy) scaled by
// Zoom into a fixed-size square, using nearest-neighbor scaling so pixel
// boundaries stay crisp, and overlays a centered crosshair. The window is
// clamped to the buffer, so edge samples shift the window rather than
// reading out of bounds. The output is rebuilt on every call.
func Magnify(surf *raster.Surface, cx, cy int, opts MagnifyOptions) (*image.RGBA, error) {
	opts = opts.withDefaults()

	src, err := surf.Image()
	if err != nil {
		return nil, err
	}
	win := surf.Window(cx, cy, opts.SampleSize).Add(src.Bounds().Min)

	side := opts.SampleSize * opts.Zoom
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), src, win, xdraw.Src, nil)

	drawCrosshair(out, opts.CrosshairColor)
	return out, nil
}

// drawCrosshair draws a fixed-size crosshair centered on the output,
// leaving the very center pixel untouched so the sampled color stays
// visible.
func drawCrosshair(out *image.RGBA, col color.Color) {
	bounds := out.Bounds()
	cx := bounds.Min.X + bounds.Dx()/2
	cy := bounds.Min.Y + bounds.Dy()/2
	arm := crosshairLength / 2

	for d := -arm; d <= arm; d++ {
		if d == 0 {
			continue
		}
		setIfInside(out, cx+d, cy, col)
		setIfInside(out, cx, cy+d, col)
	}
}

func setIfInside(out *image.RGBA, x, y int, col color.Color) {
	if image.Pt(x, y).In(out.Bounds()) {
		out.Set(x, y, col)
	}
}
