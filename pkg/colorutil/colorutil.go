// Package colorutil provides the shared color value type and conversions
// used throughout the picker.
package colorutil

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an immutable 8-bit RGB color value.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Common overlay colors used throughout the application.
var (
	Black = Color{R: 0, G: 0, B: 0}
	White = Color{R: 255, G: 255, B: 255}
	Red   = Color{R: 255, G: 0, B: 0}
	Green = Color{R: 0, G: 255, B: 0}
	Blue  = Color{R: 0, G: 0, B: 255}
)

const hexDigits = "0123456789abcdef"

// Hex returns the color as a lowercase "#rrggbb" string. It runs once per
// rendered frame, so it avoids fmt and allocates only the result.
func (c Color) Hex() string {
	var b [7]byte
	b[0] = '#'
	b[1] = hexDigits[c.R>>4]
	b[2] = hexDigits[c.R&0x0f]
	b[3] = hexDigits[c.G>>4]
	b[4] = hexDigits[c.G&0x0f]
	b[5] = hexDigits[c.B>>4]
	b[6] = hexDigits[c.B&0x0f]
	return string(b[:])
}

// ParseHex parses a "#rrggbb" string (either case) back into a Color.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	var v [6]uint8
	for i := 0; i < 6; i++ {
		n, err := hexNibble(s[i+1])
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		v[i] = n
	}
	return Color{
		R: v[0]<<4 | v[1],
		G: v[2]<<4 | v[3],
		B: v[4]<<4 | v[5],
	}, nil
}

func hexNibble(b byte) (uint8, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	}
	return 0, fmt.Errorf("bad digit %q", b)
}

// FromColor converts any color.Color to an 8-bit Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBA implements color.Color. The result is fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// HSL returns the color in HSL space (H in degrees 0-360, S and L in 0-1).
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// Luminance returns the relative luminance (the Y component of CIE XYZ).
func (c Color) Luminance() float64 {
	_, y, _ := c.colorful().Xyz()
	return y
}

// TextOn returns black or white, whichever reads better on the given
// background color.
func TextOn(bg Color) color.Color {
	if bg.Luminance() > 0.4 {
		return color.Black
	}
	return color.White
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
