package raster

import (
	"image"
	"image/color"
	"testing"

	"pixelpick/pkg/colorutil"
	"pixelpick/pkg/geometry"
)

// testImage creates an in-memory image filled with a single color.
func testImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func mustSurface(t *testing.T, img image.Image, display geometry.Rect) *Surface {
	t.Helper()
	s, err := NewSurface(img, display)
	if err != nil {
		t.Fatalf("NewSurface failed: %v", err)
	}
	return s
}

func TestNewSurfaceInvalid(t *testing.T) {
	display := geometry.NewRect(0, 0, 100, 100)

	if _, err := NewSurface(nil, display); err != ErrInvalidSurface {
		t.Errorf("nil image: got %v, want ErrInvalidSurface", err)
	}
	if _, err := NewSurface(image.NewRGBA(image.Rect(0, 0, 0, 0)), display); err != ErrInvalidSurface {
		t.Errorf("empty image: got %v, want ErrInvalidSurface", err)
	}
	if _, err := NewSurface(testImage(4, 4, color.White), geometry.Rect{}); err != ErrInvalidSurface {
		t.Errorf("empty rect: got %v, want ErrInvalidSurface", err)
	}
}

func TestMapToBuffer(t *testing.T) {
	// 4x4 buffer displayed at (10,20) in an 8x8 on-screen box: scale 0.5.
	img := testImage(4, 4, color.White)
	s := mustSurface(t, img, geometry.NewRect(10, 20, 8, 8))

	tests := []struct {
		name             string
		screenX, screenY float64
		wantX, wantY     int
	}{
		{"origin", 10, 20, 0, 0},
		{"center of pixel (2,2)", 15, 25, 2, 2},
		{"floor truncation", 13.9, 23.9, 1, 1},
		{"bottom-right corner maps past the buffer", 18, 28, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := s.MapToBuffer(tt.screenX, tt.screenY)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("got (%d,%d), want (%d,%d)", gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMapToBufferIdempotent(t *testing.T) {
	s := mustSurface(t, testImage(640, 480, color.White), geometry.NewRect(5, 7, 320, 240))

	for _, p := range []geometry.Point2D{{X: 5, Y: 7}, {X: 100.5, Y: 99.9}, {X: 324.9, Y: 246.9}} {
		x1, y1 := s.MapToBuffer(p.X, p.Y)
		x2, y2 := s.MapToBuffer(p.X, p.Y)
		if x1 != x2 || y1 != y2 {
			t.Errorf("mapping %v twice diverged: (%d,%d) vs (%d,%d)", p, x1, y1, x2, y2)
		}
	}
}

func TestWindowClamping(t *testing.T) {
	s := mustSurface(t, testImage(100, 50, color.White), geometry.NewRect(0, 0, 100, 50))

	const size = 20
	for _, c := range []image.Point{
		{X: 0, Y: 0}, {X: 99, Y: 49}, {X: 50, Y: 25},
		{X: -5, Y: -5}, {X: 150, Y: 80}, {X: 9, Y: 49},
	} {
		win := s.Window(c.X, c.Y, size)
		if win.Dx() != size || win.Dy() != size {
			t.Errorf("center %v: window %v is not %dx%d", c, win, size, size)
		}
		if win.Min.X < 0 || win.Min.Y < 0 || win.Max.X > 100 || win.Max.Y > 50 {
			t.Errorf("center %v: window %v escapes the buffer", c, win)
		}
	}
}

func TestWindowLargerThanBuffer(t *testing.T) {
	s := mustSurface(t, testImage(8, 8, color.White), geometry.NewRect(0, 0, 8, 8))
	win := s.Window(4, 4, 20)
	if win != image.Rect(0, 0, 8, 8) {
		t.Errorf("got %v, want full buffer", win)
	}
}

func TestSampleRedPixel(t *testing.T) {
	// 4x4 buffer with pixel (2,2) red; the pointer maps to buffer (2,2).
	img := testImage(4, 4, color.Black)
	img.Set(2, 2, color.RGBA{R: 255, A: 255})
	s := mustSurface(t, img, geometry.NewRect(0, 0, 4, 4))

	bx, by := s.MapToBuffer(2.5, 2.5)
	if bx != 2 || by != 2 {
		t.Fatalf("mapped to (%d,%d), want (2,2)", bx, by)
	}
	c, err := s.Sample(bx, by)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if c != (colorutil.Color{R: 255, G: 0, B: 0}) {
		t.Errorf("got %+v, want {255 0 0}", c)
	}
	if c.Hex() != "#ff0000" {
		t.Errorf("hex: got %s, want #ff0000", c.Hex())
	}
}

func TestSampleOutOfBounds(t *testing.T) {
	s := mustSurface(t, testImage(4, 4, color.White), geometry.NewRect(0, 0, 4, 4))

	for _, p := range []image.Point{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 4, Y: 0}, {X: 0, Y: 4}} {
		if _, err := s.Sample(p.X, p.Y); err != ErrOutOfBounds {
			t.Errorf("Sample(%d,%d): got %v, want ErrOutOfBounds", p.X, p.Y, err)
		}
	}
}

func TestSampleSubImage(t *testing.T) {
	// Sampling must honor non-zero image bounds.
	base := testImage(10, 10, color.Black)
	base.Set(6, 6, color.RGBA{R: 255, A: 255})
	sub := base.SubImage(image.Rect(5, 5, 9, 9))
	s := mustSurface(t, sub, geometry.NewRect(0, 0, 4, 4))

	c, err := s.Sample(1, 1)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if c != (colorutil.Color{R: 255, G: 0, B: 0}) {
		t.Errorf("got %+v, want {255 0 0}", c)
	}
}

func TestSampleAverage(t *testing.T) {
	img := testImage(10, 10, color.RGBA{R: 90, G: 90, B: 90, A: 255})
	img.Set(5, 5, color.RGBA{R: 99, G: 99, B: 99, A: 255})
	s := mustSurface(t, img, geometry.NewRect(0, 0, 10, 10))

	// 3x3 window: eight 90s and one 99 -> mean 91.
	c, err := s.SampleAverage(5, 5, 1)
	if err != nil {
		t.Fatalf("SampleAverage failed: %v", err)
	}
	if c != (colorutil.Color{R: 91, G: 91, B: 91}) {
		t.Errorf("got %+v, want {91 91 91}", c)
	}

	// Radius 0 falls back to the point sample.
	c, err = s.SampleAverage(5, 5, 0)
	if err != nil {
		t.Fatalf("SampleAverage(r=0) failed: %v", err)
	}
	if c != (colorutil.Color{R: 99, G: 99, B: 99}) {
		t.Errorf("radius 0: got %+v, want {99 99 99}", c)
	}
}

func TestReleasedSurface(t *testing.T) {
	s := mustSurface(t, testImage(4, 4, color.White), geometry.NewRect(0, 0, 4, 4))
	s.Release()
	s.Release() // idempotent

	if _, err := s.Sample(1, 1); err != ErrRead {
		t.Errorf("Sample after release: got %v, want ErrRead", err)
	}
	if _, err := s.SampleAverage(1, 1, 1); err != ErrRead {
		t.Errorf("SampleAverage after release: got %v, want ErrRead", err)
	}
	if _, err := s.Image(); err != ErrRead {
		t.Errorf("Image after release: got %v, want ErrRead", err)
	}
}
