package picker

import (
	"image/color"

	"fyne.io/fyne/v2"

	"pixelpick/internal/render"
	"pixelpick/pkg/colorutil"
)

// Config configures a Picker. Instance configuration passed to New is merged
// with per-call overrides on top of the package defaults, field by field
// (zero values mean "unset"), and the result is snapshotted once at session
// start: mutating a Config after Open has no effect on the running session.
type Config struct {
	Magnifier MagnifierConfig
	Preview   PreviewConfig
	Overlay   OverlayConfig

	// RenderPreview replaces the default swatch+hex preview content. The
	// engine still owns the preview position, applied after the content is
	// mounted.
	RenderPreview func(Sample) fyne.CanvasObject

	// OnMove is called for every accepted (throttled) sample.
	OnMove func(Sample)

	// OnPick is called with the final sample before the session resolves.
	OnPick func(Sample)
}

// MagnifierConfig controls the magnified neighborhood rendering.
type MagnifierConfig struct {
	SampleSize     int // neighborhood side in buffer pixels
	Zoom           int // magnification factor
	AverageRadius  int // 0 samples a single pixel
	BorderWidth    float32
	BorderColor    color.Color
	CrosshairColor color.Color
}

// PreviewConfig controls the swatch/hex preview box.
type PreviewConfig struct {
	Gap        float32 // vertical gap below the magnifier
	Background color.Color
	TextSize   float32
}

// OverlayConfig controls the session overlay container.
type OverlayConfig struct {
	// DimBackground draws a translucent scrim behind the surface.
	DimBackground bool

	// IgnoreOutsideTap keeps the session alive when the user taps outside
	// the surface; by default an outside tap cancels.
	IgnoreOutsideTap bool
}

func defaultConfig() Config {
	return Config{
		Magnifier: MagnifierConfig{
			SampleSize:     render.DefaultSampleSize,
			Zoom:           render.DefaultZoom,
			BorderWidth:    2,
			BorderColor:    colorutil.White,
			CrosshairColor: colorutil.Red,
		},
		Preview: PreviewConfig{
			Gap:        8,
			Background: color.NRGBA{R: 32, G: 32, B: 32, A: 230},
			TextSize:   12,
		},
	}
}

// resolveConfig layers overrides onto base: defaults, then the instance
// config, then any per-call configs, last writer wins per field.
func resolveConfig(instance Config, overrides ...Config) Config {
	out := defaultConfig()
	for _, layer := range append([]Config{instance}, overrides...) {
		out.Magnifier = mergeMagnifier(out.Magnifier, layer.Magnifier)
		out.Preview = mergePreview(out.Preview, layer.Preview)
		out.Overlay.DimBackground = out.Overlay.DimBackground || layer.Overlay.DimBackground
		out.Overlay.IgnoreOutsideTap = out.Overlay.IgnoreOutsideTap || layer.Overlay.IgnoreOutsideTap
		if layer.RenderPreview != nil {
			out.RenderPreview = layer.RenderPreview
		}
		if layer.OnMove != nil {
			out.OnMove = layer.OnMove
		}
		if layer.OnPick != nil {
			out.OnPick = layer.OnPick
		}
	}
	return out
}

func mergeMagnifier(base, over MagnifierConfig) MagnifierConfig {
	if over.SampleSize > 0 {
		base.SampleSize = over.SampleSize
	}
	if over.Zoom > 0 {
		base.Zoom = over.Zoom
	}
	if over.AverageRadius > 0 {
		base.AverageRadius = over.AverageRadius
	}
	if over.BorderWidth > 0 {
		base.BorderWidth = over.BorderWidth
	}
	if over.BorderColor != nil {
		base.BorderColor = over.BorderColor
	}
	if over.CrosshairColor != nil {
		base.CrosshairColor = over.CrosshairColor
	}
	return base
}

func mergePreview(base, over PreviewConfig) PreviewConfig {
	if over.Gap > 0 {
		base.Gap = over.Gap
	}
	if over.Background != nil {
		base.Background = over.Background
	}
	if over.TextSize > 0 {
		base.TextSize = over.TextSize
	}
	return base
}
