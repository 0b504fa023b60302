// Package raster provides read access to a rendered raster surface: mapping
// screen coordinates into buffer pixels and sampling pixel colors.
package raster

import (
	"errors"
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"pixelpick/pkg/colorutil"
	"pixelpick/pkg/geometry"
)

var (
	// ErrInvalidSurface reports a nil or empty pixel buffer or display rect.
	ErrInvalidSurface = errors.New("raster: invalid surface")

	// ErrOutOfBounds reports sample coordinates outside the buffer.
	ErrOutOfBounds = errors.New("raster: coordinates outside buffer")

	// ErrRead reports a read from a released surface.
	ErrRead = errors.New("raster: surface released")
)

// Surface is a non-owning view of a pixel buffer together with its on-screen
// display rectangle. Screen-to-buffer scale factors are computed once at
// construction; a surface that is resized on screen needs a new Surface.
type Surface struct {
	img      image.Image
	bounds   image.Rectangle
	width    int
	height   int
	display  geometry.Rect
	scaleX   float64
	scaleY   float64
	released bool
}

// NewSurface creates a Surface for the given buffer and display rectangle.
func NewSurface(img image.Image, display geometry.Rect) (*Surface, error) {
	if img == nil {
		return nil, ErrInvalidSurface
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 || display.Empty() {
		return nil, ErrInvalidSurface
	}
	return &Surface{
		img:     img,
		bounds:  bounds,
		width:   bounds.Dx(),
		height:  bounds.Dy(),
		display: display,
		scaleX:  float64(bounds.Dx()) / display.Width,
		scaleY:  float64(bounds.Dy()) / display.Height,
	}, nil
}

// Width returns the buffer width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the buffer height in pixels.
func (s *Surface) Height() int { return s.height }

// DisplayRect returns the on-screen rectangle the buffer is drawn into.
func (s *Surface) DisplayRect() geometry.Rect { return s.display }

// MapToBuffer converts a screen position to buffer pixel coordinates,
// floor-truncated to integer indices. The result is not clamped; callers
// sampling near the edges use Window or accept ErrOutOfBounds.
func (s *Surface) MapToBuffer(screenX, screenY float64) (bx, by int) {
	bx = int(math.Floor((screenX - s.display.X) * s.scaleX))
	by = int(math.Floor((screenY - s.display.Y) * s.scaleY))
	return bx, by
}

// Window returns a size-sided square sample window centered on (cx, cy),
// shifted as needed so it always lies inside the buffer. If size exceeds a
// buffer dimension the window pins to the full extent of that axis.
func (s *Surface) Window(cx, cy, size int) image.Rectangle {
	w := clampSpan(cx, size, s.width)
	h := clampSpan(cy, size, s.height)
	return image.Rectangle{Min: image.Point{X: w.start, Y: h.start}, Max: image.Point{X: w.end, Y: h.end}}
}

type span struct{ start, end int }

func clampSpan(center, size, dim int) span {
	if size >= dim {
		return span{0, dim}
	}
	start := center - size/2
	if start < 0 {
		start = 0
	}
	if start > dim-size {
		start = dim - size
	}
	return span{start, start + size}
}

// Sample reads exactly one pixel. Coordinates must lie in [0,w)x[0,h).
func (s *Surface) Sample(bx, by int) (colorutil.Color, error) {
	if s.released {
		return colorutil.Color{}, ErrRead
	}
	if bx < 0 || bx >= s.width || by < 0 || by >= s.height {
		return colorutil.Color{}, ErrOutOfBounds
	}
	return colorutil.FromColor(s.img.At(s.bounds.Min.X+bx, s.bounds.Min.Y+by)), nil
}

// SampleAverage returns the mean color of the clamped (2*radius+1)-sided
// window around (bx, by). Radius 0 is equivalent to Sample. The center must
// lie inside the buffer.
func (s *Surface) SampleAverage(bx, by, radius int) (colorutil.Color, error) {
	if radius <= 0 {
		return s.Sample(bx, by)
	}
	if s.released {
		return colorutil.Color{}, ErrRead
	}
	if bx < 0 || bx >= s.width || by < 0 || by >= s.height {
		return colorutil.Color{}, ErrOutOfBounds
	}

	win := s.Window(bx, by, 2*radius+1)
	n := win.Dx() * win.Dy()
	rs := make([]float64, 0, n)
	gs := make([]float64, 0, n)
	bs := make([]float64, 0, n)
	for y := win.Min.Y; y < win.Max.Y; y++ {
		for x := win.Min.X; x < win.Max.X; x++ {
			r, g, b, _ := s.img.At(s.bounds.Min.X+x, s.bounds.Min.Y+y).RGBA()
			rs = append(rs, float64(r>>8))
			gs = append(gs, float64(g>>8))
			bs = append(bs, float64(b>>8))
		}
	}
	return colorutil.Color{
		R: uint8(math.Round(stat.Mean(rs, nil))),
		G: uint8(math.Round(stat.Mean(gs, nil))),
		B: uint8(math.Round(stat.Mean(bs, nil))),
	}, nil
}

// Image returns the underlying buffer for windowed rendering.
func (s *Surface) Image() (image.Image, error) {
	if s.released {
		return nil, ErrRead
	}
	return s.img, nil
}

// Release marks the surface unreadable. Subsequent reads fail with ErrRead.
// Release is idempotent.
func (s *Surface) Release() {
	s.released = true
	s.img = nil
}
