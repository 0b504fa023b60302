package colorutil

import (
	"image/color"
	"testing"
)

func TestHexKnownColors(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"pure red", Color{255, 0, 0}, "#ff0000"},
		{"pure green", Color{0, 255, 0}, "#00ff00"},
		{"pure blue", Color{0, 0, 255}, "#0000ff"},
		{"white", Color{255, 255, 255}, "#ffffff"},
		{"black", Color{0, 0, 0}, "#000000"},
		{"gray", Color{128, 128, 128}, "#808080"},
		{"orange-ish", Color{255, 128, 64}, "#ff8040"},
		{"single digit components", Color{1, 2, 3}, "#010203"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Hex(); got != tt.want {
				t.Errorf("Hex: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	// Sweep a coarse grid plus the boundary values of each component.
	values := []uint8{0, 1, 15, 16, 127, 128, 200, 254, 255}
	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				c := Color{R: r, G: g, B: b}
				got, err := ParseHex(c.Hex())
				if err != nil {
					t.Fatalf("ParseHex(%s) failed: %v", c.Hex(), err)
				}
				if got != c {
					t.Fatalf("round trip: got %+v, want %+v", got, c)
				}
			}
		}
	}
}

func TestParseHexUppercase(t *testing.T) {
	got, err := ParseHex("#FF8040")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if got != (Color{255, 128, 64}) {
		t.Errorf("got %+v, want {255 128 64}", got)
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, s := range []string{"", "#fff", "ff0000", "#ff00zz", "#ff0000ff"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q): expected error", s)
		}
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.RGBA{R: 255, G: 128, B: 64, A: 255})
	if got != (Color{255, 128, 64}) {
		t.Errorf("got %+v, want {255 128 64}", got)
	}

	// 16-bit source scales down to 8 bits.
	got = FromColor(color.RGBA64{R: 0xffff, G: 0x8080, B: 0x4040, A: 0xffff})
	if got != (Color{255, 128, 64}) {
		t.Errorf("16-bit: got %+v, want {255 128 64}", got)
	}
}

func TestColorImplementsColorColor(t *testing.T) {
	var c color.Color = Color{255, 0, 0}
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("RGBA: got (%d,%d,%d,%d), want (65535,0,0,65535)", r, g, b, a)
	}
}

func TestTextOn(t *testing.T) {
	if TextOn(White) != color.Black {
		t.Error("expected black text on white")
	}
	if TextOn(Black) != color.White {
		t.Error("expected white text on black")
	}
	if TextOn(Color{20, 20, 80}) != color.White {
		t.Error("expected white text on dark blue")
	}
}

func TestHSL(t *testing.T) {
	h, s, l := Red.HSL()
	if h != 0 || s != 1 || l != 0.5 {
		t.Errorf("red HSL: got (%v,%v,%v), want (0,1,0.5)", h, s, l)
	}
}
