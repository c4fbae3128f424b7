// Package board ties the document, the viewport, the gesture router and the
// live render loop into one whiteboard session.
package board

import (
	"image/color"
	"log/slog"
	"sync"

	"InkBoard/internal/config"
	"InkBoard/internal/gesture"
	"InkBoard/internal/logx"
	"InkBoard/internal/render"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
)

// Session is one open whiteboard. Input methods (HandlePointer and the
// setters) are meant to be called from a single goroutine; queries and the
// render loop may run elsewhere.
type Session struct {
	cfg  config.Config
	log  *slog.Logger
	doc  *state.Document
	live *render.LiveLayer
	view *state.Viewport

	write  *gesture.Write
	erase  *gesture.Erase
	sel    *gesture.Select
	roam   *gesture.Roam
	router *gesture.Router

	selectStyle state.Style

	mu   sync.Mutex
	loop *render.Loop
}

func New(cfg config.Config) *Session {
	s := &Session{
		cfg:  cfg,
		log:  logx.For("board"),
		doc:  state.NewDocument(cfg.Gesture.SelectionPadding),
		live: render.NewLiveLayer(),
		view: state.NewViewport(),
	}
	env := gesture.Env{
		Doc:     s.doc,
		Live:    s.live,
		View:    s.view,
		Handoff: cfg.HandoffWindow(),
	}
	s.selectStyle = state.Style{
		Role:  state.RoleHighlight,
		Width: cfg.Pen.SelectWidth,
		Color: cfg.SelectColor(),
		Cap:   gg.LineCapRound,
		Join:  gg.LineJoinRound,
	}.WithDash(cfg.Pen.SelectDash...)

	s.write = gesture.NewWrite(env, state.InkStyle(cfg.Pen.Width, cfg.PenColor()))
	s.erase = gesture.NewErase(env, cfg.Gesture.Density, cfg.Gesture.EraserContact)
	s.sel = gesture.NewSelect(env, s.selectStyle, cfg.Gesture.PinchMinDistance)
	s.roam = gesture.NewRoam(s.doc, s.view, cfg.Gesture.MinScale, cfg.Gesture.MaxScale, cfg.Gesture.PinchMinDistance)
	s.router = gesture.NewRouter(env, s.write, s.erase, s.sel, s.roam)
	return s
}

func (s *Session) HandlePointer(ev gesture.Event) {
	s.router.Handle(ev)
}

// SetMode switches tools. The gesture in progress, the selection and all
// transients are dropped.
func (s *Session) SetMode(m gesture.Mode) {
	s.router.SetMode(m)
}

func (s *Session) Mode() gesture.Mode { return s.router.Mode() }

// Roaming reports whether a pan/zoom gesture owns the input.
func (s *Session) Roaming() bool { return s.router.Roaming() }

// SetMultiWriteEnabled lets every finger draw its own stroke in write mode.
// Pan and zoom are unavailable while it is on.
func (s *Session) SetMultiWriteEnabled(on bool) {
	s.write.SetMulti(on)
	s.log.Debug("multi-write", "enabled", on)
}

func (s *Session) MultiWriteEnabled() bool { return s.write.Multi() }

// SetStrokeColor applies to strokes committed from now on.
func (s *Session) SetStrokeColor(c color.Color) {
	s.write.SetStyle(s.write.Style().WithColor(color.NRGBAModel.Convert(c).(color.NRGBA)))
}

// SetStrokeWidth applies to strokes committed from now on. Non-positive
// widths are ignored.
func (s *Session) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	s.write.SetStyle(s.write.Style().WithWidth(w))
}

func (s *Session) StrokeStyle() state.Style { return s.write.Style() }

// SelectStyle is the lasso and selection box look.
func (s *Session) SelectStyle() state.Style { return s.selectStyle }

// ClearAll removes every element and transient and forgets the selection.
func (s *Session) ClearAll() {
	s.router.Cancel()
	s.live.Clear()
	s.doc.Clear()
	s.log.Info("board cleared")
}

// InsertImage places an image with its top-left at pos, in document space.
func (s *Session) InsertImage(uri string, pos gg.Point) *state.PlacedImage {
	img := state.NewPlacedImage(uri, pos, s.cfg.Image.DefaultSize)
	s.doc.AddImage(img)
	return img
}

// PlacementFor is where a new image goes on a surface of the given screen
// size: the document point under the first quarter of the screen.
func (s *Session) PlacementFor(width, height float64) gg.Point {
	return s.view.ToDocument(gg.Pt(width/4, height/4))
}

func (s *Session) Selection() state.Selection { return s.doc.Selection() }

func (s *Session) Viewport() state.ViewportState { return s.view.Load() }

func (s *Session) ResetViewport() { s.view.Reset() }

// PanBy scrolls the view by delta screen units, for wheels and trackpads.
func (s *Session) PanBy(delta gg.Point) { s.view.PanBy(delta) }

func (s *Session) Document() *state.Document { return s.doc }

func (s *Session) Live() *render.LiveLayer { return s.live }

// Start runs the live render loop into target. A running loop is stopped
// first.
func (s *Session) Start(target render.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loop != nil {
		s.loop.Stop()
	}
	s.loop = render.NewLoop(s.live, s.view, target, s.cfg.FrameBudget())
	s.loop.Start()
}

// Close stops the render loop. The document stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loop != nil {
		s.loop.Stop()
		s.loop = nil
	}
}
