package picker

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"pixelpick/pkg/colorutil"
)

// overlaySet holds the transient canvas objects of one pick session. It is
// created when the session attaches and disposed exactly once on every exit
// path. mu covers every mutation: the deferred frame callback updates the
// visuals off the event thread, so disposal must not race it.
type overlaySet struct {
	cv fyne.Canvas

	mu   sync.Mutex
	root *fyne.Container

	backdrop *backdrop
	catcher  *catcher

	magFrame *fynecanvas.Rectangle
	magImage *fynecanvas.Image

	preview *fyne.Container
	swatch  *fynecanvas.Rectangle
	hexText *fynecanvas.Text

	disposed bool
}

// newOverlaySet builds the session surfaces in order: container, magnifier
// (the crosshair is part of its rendered image), then the preview box with
// its swatch and text children. Magnifier and preview stay hidden until the
// first accepted sample.
func newOverlaySet(s *session) *overlaySet {
	o := &overlaySet{cv: s.canvas}

	o.backdrop = newBackdrop(s)
	o.backdrop.Resize(s.canvas.Size())

	o.catcher = newCatcher(s)
	display := s.surface.DisplayRect()
	o.catcher.Move(fyne.NewPos(float32(display.X), float32(display.Y)))
	o.catcher.Resize(fyne.NewSize(float32(display.Width), float32(display.Height)))

	side := float32(s.cfg.Magnifier.SampleSize * s.cfg.Magnifier.Zoom)

	o.magFrame = fynecanvas.NewRectangle(color.Transparent)
	o.magFrame.StrokeColor = s.cfg.Magnifier.BorderColor
	o.magFrame.StrokeWidth = s.cfg.Magnifier.BorderWidth
	o.magFrame.Resize(fyne.NewSize(side, side))
	o.magFrame.Hide()

	o.magImage = &fynecanvas.Image{}
	o.magImage.FillMode = fynecanvas.ImageFillStretch
	o.magImage.ScaleMode = fynecanvas.ImageScalePixels
	o.magImage.Resize(fyne.NewSize(side, side))
	o.magImage.Hide()

	o.preview = container.NewWithoutLayout()
	o.preview.Hide()
	if s.cfg.RenderPreview == nil {
		o.buildDefaultPreview(s.cfg, side)
	}

	o.root = container.NewWithoutLayout(o.backdrop, o.catcher, o.magImage, o.magFrame, o.preview)
	o.root.Resize(s.canvas.Size())
	s.canvas.Overlays().Add(o.root)
	return o
}

func (o *overlaySet) buildDefaultPreview(cfg Config, magSide float32) {
	w := magSide
	if w < 90 {
		w = 90
	}

	bg := fynecanvas.NewRectangle(cfg.Preview.Background)
	bg.Resize(fyne.NewSize(w, 26))

	o.swatch = fynecanvas.NewRectangle(color.Transparent)
	o.swatch.Move(fyne.NewPos(4, 4))
	o.swatch.Resize(fyne.NewSize(18, 18))

	o.hexText = fynecanvas.NewText("", color.White)
	o.hexText.TextSize = cfg.Preview.TextSize
	o.hexText.TextStyle = fyne.TextStyle{Monospace: true}
	o.hexText.Move(fyne.NewPos(28, 5))

	o.preview.Objects = []fyne.CanvasObject{bg, o.swatch, o.hexText}
	o.preview.Resize(fyne.NewSize(w, 26))
}

// update repositions the magnifier around the pointer, refreshes its image
// and the preview content, and shows everything. Custom preview content is
// re-rendered per sample and positioned by the engine afterwards.
func (o *overlaySet) update(cfg Config, sample Sample, magnified image.Image) {
	// Custom content is produced outside the lock; the callback belongs to
	// the caller and may reach back into the picker.
	var content fyne.CanvasObject
	if cfg.RenderPreview != nil {
		content = cfg.RenderPreview(sample)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}

	side := float32(cfg.Magnifier.SampleSize * cfg.Magnifier.Zoom)
	magPos := fyne.NewPos(sample.ScreenX-side/2, sample.ScreenY-side/2)

	o.magImage.Image = magnified
	o.magImage.Move(magPos)
	o.magImage.Refresh()
	o.magImage.Show()

	o.magFrame.Move(magPos)
	o.magFrame.Show()

	if content != nil {
		o.preview.Objects = []fyne.CanvasObject{content}
		if size := content.MinSize(); size.Width > 0 {
			content.Resize(size)
			o.preview.Resize(size)
		}
	} else {
		o.swatch.FillColor = sample.Color
		o.swatch.Refresh()
		o.hexText.Text = sample.Color.Hex()
		o.hexText.Color = colorutil.TextOn(sample.Color)
		o.hexText.Refresh()
	}

	// Anchored below the magnifier, horizontally centered on it.
	pw := o.preview.Size().Width
	o.preview.Move(fyne.NewPos(
		magPos.X+side/2-pw/2,
		magPos.Y+side+cfg.Preview.Gap,
	))
	o.preview.Refresh()
	o.preview.Show()
}

// hideVisuals hides the magnifier and preview but keeps the session overlay.
// Used when the pointer leaves before any sample was accepted.
func (o *overlaySet) hideVisuals() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.magImage.Hide()
	o.magFrame.Hide()
	o.preview.Hide()
}

// dispose removes the overlay tree from the canvas and drops all handles.
// It is idempotent and identical on every exit path; the event widgets go
// away with the tree, so no listener can fire afterwards, and a frame
// callback arriving late sees disposed under the lock and does nothing.
func (o *overlaySet) dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	o.disposed = true

	o.cv.Overlays().Remove(o.root)
	o.root.Objects = nil
	o.backdrop = nil
	o.catcher = nil
	o.magFrame = nil
	o.magImage = nil
	o.preview = nil
	o.swatch = nil
	o.hexText = nil
	o.root = nil
}

// catcher is the invisible event surface covering the target's display rect.
// It hides the default pointer glyph and feeds pointer events to the session.
type catcher struct {
	widget.BaseWidget
	session *session
}

func newCatcher(s *session) *catcher {
	c := &catcher{session: s}
	c.ExtendBaseWidget(c)
	return c
}

func (c *catcher) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(fynecanvas.NewRectangle(color.Transparent))
}

func (c *catcher) Cursor() desktop.Cursor {
	return desktop.HiddenCursor
}

func (c *catcher) MouseIn(ev *desktop.MouseEvent) {
	c.session.pointerEnter(ev.AbsolutePosition)
}

func (c *catcher) MouseMoved(ev *desktop.MouseEvent) {
	c.session.pointerMove(ev.AbsolutePosition)
}

func (c *catcher) MouseOut() {
	c.session.pointerLeave()
}

func (c *catcher) Tapped(ev *fyne.PointEvent) {
	c.session.confirm(ev.AbsolutePosition)
}

// backdrop fills the whole canvas behind the catcher. It optionally dims the
// application and cancels the session when tapped outside the surface.
type backdrop struct {
	widget.BaseWidget
	session *session
}

func newBackdrop(s *session) *backdrop {
	b := &backdrop{session: s}
	b.ExtendBaseWidget(b)
	return b
}

func (b *backdrop) CreateRenderer() fyne.WidgetRenderer {
	fill := color.Color(color.Transparent)
	if b.session.cfg.Overlay.DimBackground {
		fill = color.NRGBA{A: 80}
	}
	return widget.NewSimpleRenderer(fynecanvas.NewRectangle(fill))
}

func (b *backdrop) Tapped(*fyne.PointEvent) {
	if b.session.cfg.Overlay.IgnoreOutsideTap {
		return
	}
	b.session.cancel()
}
