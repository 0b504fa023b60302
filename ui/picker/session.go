package picker

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"

	"pixelpick/internal/raster"
	"pixelpick/internal/render"
	"pixelpick/pkg/colorutil"
)

// Sample is one accepted pointer sample: buffer coordinates, the screen
// position that produced them, and the color read there. Only the most
// recent sample is retained by a session.
type Sample struct {
	BufferX int
	BufferY int
	ScreenX float32
	ScreenY float32
	Color   colorutil.Color
}

// Result is delivered exactly once on the channel returned by Open, after
// which the channel is closed. Err is ErrCancelled when the session ended
// without a pick, or a load error for OpenFromSource sessions.
type Result struct {
	Sample Sample
	Err    error
}

type sessionState int

const (
	stateAttached sessionState = iota
	stateSampling
	stateResolved
	stateCancelled
)

// session is the single mutable unit of state for one Open call. It owns the
// surface view, the overlay handles, the last accepted sample and the
// throttle cell; it is replaced wholesale on a re-entrant Open.
type session struct {
	cfg      Config
	surface  *raster.Surface
	canvas   fyne.Canvas
	overlay  *overlaySet
	result   chan Result
	schedule func(func())

	mu        sync.Mutex
	state     sessionState
	alive     bool
	pending   fyne.Position // single-slot cell, overwritten by newer moves
	hasPend   bool
	scheduled bool
	last      *Sample
}

func newSession(cfg Config, surf *raster.Surface, cv fyne.Canvas, schedule func(func())) *session {
	s := &session{
		cfg:      cfg,
		surface:  surf,
		canvas:   cv,
		result:   make(chan Result, 1),
		schedule: schedule,
		state:    stateAttached,
		alive:    true,
	}
	s.overlay = newOverlaySet(s)
	return s
}

// pointerEnter renders immediately at the entry position; subsequent moves
// go through the frame throttle.
func (s *session) pointerEnter(pos fyne.Position) {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	if s.state == stateAttached {
		s.state = stateSampling
	}
	s.mu.Unlock()

	s.sampleAndRender(pos)
}

// pointerMove coalesces high-frequency moves into at most one update per
// frame: a newer move overwrites the pending position, and only one flush is
// scheduled at a time, so the render always reflects the latest position.
func (s *session) pointerMove(pos fyne.Position) {
	s.mu.Lock()
	if !s.alive || s.state != stateSampling {
		s.mu.Unlock()
		return
	}
	s.pending = pos
	s.hasPend = true
	if s.scheduled {
		s.mu.Unlock()
		return
	}
	s.scheduled = true
	s.mu.Unlock()

	s.schedule(s.flushPending)
}

// flushPending is the deferred frame callback. The liveness flag makes it a
// no-op when the session was resolved or disposed after scheduling.
func (s *session) flushPending() {
	s.mu.Lock()
	s.scheduled = false
	if !s.alive || !s.hasPend {
		s.mu.Unlock()
		return
	}
	pos := s.pending
	s.hasPend = false
	s.mu.Unlock()

	s.sampleAndRender(pos)
}

// pointerLeave freezes the visuals on the last accepted sample; with no
// prior sample the magnifier and preview hide instead. Never terminal.
func (s *session) pointerLeave() {
	s.mu.Lock()
	sawSample := s.last != nil
	alive := s.alive
	s.mu.Unlock()

	if alive && !sawSample {
		s.overlay.hideVisuals()
	}
}

// confirm resolves the session using the last accepted sample. It never
// re-samples a previously sampled position at click time; only when no
// sample was accepted yet does it run the same sampling path the throttled
// updates use.
func (s *session) confirm(pos fyne.Position) {
	s.mu.Lock()
	if s.state == stateResolved || s.state == stateCancelled {
		s.mu.Unlock()
		return
	}
	last := s.last
	s.mu.Unlock()

	if last == nil {
		sample, err := s.sampleAt(pos)
		if err != nil {
			return // nothing pickable yet; stay in the session
		}
		last = &sample
	}

	if s.cfg.OnPick != nil {
		s.cfg.OnPick(*last)
	}
	s.finish(stateResolved, Result{Sample: *last})
}

// cancel terminates the session without a pick.
func (s *session) cancel() {
	s.finish(stateCancelled, Result{Err: ErrCancelled})
}

// finish moves the session to a terminal state, delivers the result exactly
// once and tears down synchronously. Both outcomes run the same teardown.
func (s *session) finish(terminal sessionState, res Result) {
	s.mu.Lock()
	if s.state == stateResolved || s.state == stateCancelled {
		s.mu.Unlock()
		return
	}
	s.state = terminal
	s.alive = false
	s.mu.Unlock()

	s.overlay.dispose()
	s.result <- res
	close(s.result)
}

// dispose tears the session down without delivering a result. Used when a
// re-entrant Open replaces the session before resolution.
func (s *session) dispose() {
	s.finish(stateCancelled, Result{Err: ErrCancelled})
}

func (s *session) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

// sampleAt maps a screen position into the buffer and reads the color
// there. This is the single sampling path shared by the throttled updates
// and the no-prior-sample click fallback.
func (s *session) sampleAt(pos fyne.Position) (Sample, error) {
	bx, by := s.surface.MapToBuffer(float64(pos.X), float64(pos.Y))

	var (
		c   colorutil.Color
		err error
	)
	if r := s.cfg.Magnifier.AverageRadius; r > 0 {
		c, err = s.surface.SampleAverage(bx, by, r)
	} else {
		c, err = s.surface.Sample(bx, by)
	}
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		BufferX: bx,
		BufferY: by,
		ScreenX: pos.X,
		ScreenY: pos.Y,
		Color:   c,
	}, nil
}

// sampleAndRender runs one accepted update: sample, re-render the magnifier
// and preview, remember the sample, notify OnMove. Out-of-bounds positions
// suppress the update; an unreadable buffer (source torn down mid-session)
// freezes on the last good sample like a pointer-leave.
func (s *session) sampleAndRender(pos fyne.Position) {
	sample, err := s.sampleAt(pos)
	if err != nil {
		if errors.Is(err, raster.ErrRead) {
			s.pointerLeave()
		}
		return
	}

	magnified, err := render.Magnify(s.surface, sample.BufferX, sample.BufferY, render.MagnifyOptions{
		SampleSize:     s.cfg.Magnifier.SampleSize,
		Zoom:           s.cfg.Magnifier.Zoom,
		CrosshairColor: s.cfg.Magnifier.CrosshairColor,
	})
	if err != nil {
		s.pointerLeave()
		return
	}

	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	s.last = &sample
	s.mu.Unlock()

	s.overlay.update(s.cfg, sample, magnified)

	if s.cfg.OnMove != nil {
		s.cfg.OnMove(sample)
	}
}
