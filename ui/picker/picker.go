// Package picker provides an interactive color-sampling engine for Fyne
// canvases: a magnified pixel preview follows the pointer over a raster
// surface and a click resolves to the sampled color.
package picker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pixelpick/internal/raster"
	"pixelpick/internal/render"
	"pixelpick/internal/source"
	"pixelpick/pkg/geometry"
)

var (
	// ErrInvalidTarget reports that the Open target is not a usable raster
	// surface.
	ErrInvalidTarget = errors.New("picker: target is not a raster surface")

	// ErrNoDisplay reports that no UI-capable canvas is available for the
	// target.
	ErrNoDisplay = errors.New("picker: no canvas available")

	// ErrCancelled is delivered when a session ends without a pick.
	ErrCancelled = errors.New("picker: session cancelled")
)

// RasterProvider lets arbitrary canvas objects expose their pixel buffer to
// the picker.
type RasterProvider interface {
	RasterImage() image.Image
}

const (
	// frameInterval paces the move throttle to roughly one update per
	// display refresh.
	frameInterval = time.Second / 60

	loadTimeout = 30 * time.Second
)

// colorDim fills the loading placeholder while a source is fetched.
var colorDim = color.NRGBA{R: 24, G: 24, B: 24, A: 200}

// Picker owns at most one active pick session at a time. A re-entrant Open
// disposes the previous session, overlay and listeners included, before a
// new one is attached.
type Picker struct {
	config   Config
	schedule func(func())

	mu      sync.Mutex
	session *session
}

// New creates a Picker with the given instance configuration. Fields left at
// their zero value fall back to the package defaults at session start.
func New(config Config) *Picker {
	return &Picker{
		config: config,
		schedule: func(fn func()) {
			time.AfterFunc(frameInterval, fn)
		},
	}
}

// Open starts a pick session over the given canvas object. The target must
// be a *canvas.Image with a decoded Image or implement RasterProvider, and
// must be attached to a canvas and laid out; both are validated synchronously
// before any overlay is created. The returned channel delivers exactly one
// Result.
func (p *Picker) Open(target fyne.CanvasObject, override ...Config) (<-chan Result, error) {
	img, err := rasterImage(target)
	if err != nil {
		return nil, err
	}

	app := fyne.CurrentApp()
	if app == nil {
		return nil, ErrNoDisplay
	}
	driver := app.Driver()

	// Layout gives every attached object a size; a zero-sized target was
	// never mounted on a canvas and has no display rect to sample from.
	cv := driver.CanvasForObject(target)
	size := target.Size()
	if cv == nil || size.Width <= 0 || size.Height <= 0 {
		return nil, ErrNoDisplay
	}

	pos := driver.AbsolutePositionForObject(target)
	display := geometry.NewRect(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))

	return p.openOn(cv, img, display, override...)
}

// openOn is the single session constructor behind Open and OpenFromSource.
func (p *Picker) openOn(cv fyne.Canvas, img image.Image, display geometry.Rect, override ...Config) (<-chan Result, error) {
	surf, err := raster.NewSurface(img, display)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	// Idempotent re-entry: the prior session's overlay and listeners go
	// away before the new ones exist.
	p.closeActive()

	cfg := resolveConfig(p.config, override...)
	s := newSession(cfg, surf, cv, p.schedule)

	p.mu.Lock()
	p.session = s
	p.mu.Unlock()

	return s.result, nil
}

// Placement sizes and positions the temporary surface OpenFromSource mounts.
type Placement struct {
	Width    float32
	Height   float32
	Position *fyne.Position // nil centers on the canvas
	Cover    bool           // scale-to-fill with crop instead of fit
}

// OpenFromSource loads a raster source asynchronously, shows a loading
// placeholder sized per placement, projects the image (fit or cover) onto a
// temporary surface mounted on cv and delegates to Open. Load failures are
// delivered on the returned channel; the temporary surface is removed after
// resolution regardless of outcome.
func (p *Picker) OpenFromSource(cv fyne.Canvas, locator string, placement *Placement, override ...Config) (<-chan Result, error) {
	if cv == nil {
		return nil, ErrNoDisplay
	}

	pl := Placement{Width: 400, Height: 300}
	if placement != nil {
		pl = *placement
		if pl.Width <= 0 {
			pl.Width = 400
		}
		if pl.Height <= 0 {
			pl.Height = 300
		}
	}
	pos := fyne.NewPos(
		(cv.Size().Width-pl.Width)/2,
		(cv.Size().Height-pl.Height)/2,
	)
	if pl.Position != nil {
		pos = *pl.Position
	}

	out := make(chan Result, 1)

	loading := loadingPlaceholder(pl, pos)
	cv.Overlays().Add(loading)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		img, err := source.Load(ctx, locator)
		cv.Overlays().Remove(loading)
		if err != nil {
			out <- Result{Err: err}
			close(out)
			return
		}

		projected := render.Project(img, int(pl.Width), int(pl.Height), pl.Cover)

		tmp := fynecanvas.NewImageFromImage(projected)
		tmp.FillMode = fynecanvas.ImageFillStretch
		tmp.ScaleMode = fynecanvas.ImageScalePixels
		tmp.Move(pos)
		tmp.Resize(fyne.NewSize(pl.Width, pl.Height))

		holder := container.NewWithoutLayout(tmp)
		holder.Resize(cv.Size())
		cv.Overlays().Add(holder)

		display := geometry.NewRect(float64(pos.X), float64(pos.Y), float64(pl.Width), float64(pl.Height))
		inner, err := p.openOn(cv, projected, display, override...)
		if err != nil {
			cv.Overlays().Remove(holder)
			out <- Result{Err: err}
			close(out)
			return
		}

		res := <-inner
		cv.Overlays().Remove(holder)
		out <- res
		close(out)
	}()

	return out, nil
}

// Cancel terminates the active session, if any, delivering ErrCancelled.
// Teardown runs synchronously; pending frame callbacks become no-ops.
func (p *Picker) Cancel() {
	p.closeActive()
}

// Active reports whether a pick session is currently running.
func (p *Picker) Active() bool {
	p.mu.Lock()
	s := p.session
	p.mu.Unlock()
	return s != nil && s.active()
}

func (p *Picker) closeActive() {
	p.mu.Lock()
	s := p.session
	p.session = nil
	p.mu.Unlock()
	if s != nil {
		s.dispose()
	}
}

func rasterImage(obj fyne.CanvasObject) (image.Image, error) {
	switch t := obj.(type) {
	case nil:
		return nil, ErrInvalidTarget
	case RasterProvider:
		if img := t.RasterImage(); img != nil {
			return img, nil
		}
	case *fynecanvas.Image:
		if t.Image != nil {
			return t.Image, nil
		}
	}
	return nil, ErrInvalidTarget
}

func loadingPlaceholder(pl Placement, pos fyne.Position) fyne.CanvasObject {
	box := fynecanvas.NewRectangle(colorDim)
	box.Move(pos)
	box.Resize(fyne.NewSize(pl.Width, pl.Height))

	label := widget.NewLabel("Loading…")
	label.Move(fyne.NewPos(
		pos.X+pl.Width/2-label.MinSize().Width/2,
		pos.Y+pl.Height/2-label.MinSize().Height/2,
	))
	label.Resize(label.MinSize())

	c := container.NewWithoutLayout(box, label)
	return c
}

// ProjectImage scales an image onto a w x h surface, fit (letterboxed) by
// default or cover (filled and cropped) when cover is true. Returns nil when
// the image has no dimensions yet.
func ProjectImage(src image.Image, w, h int, cover bool) image.Image {
	out := render.Project(src, w, h, cover)
	if out == nil {
		return nil
	}
	return out
}
