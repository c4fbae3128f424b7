package gesture

import (
	"log/slog"
	"time"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

type selectPhase uint8

const (
	selectIdle selectPhase = iota
	selectLasso
	selectMove
	selectPinch
)

// Select draws a lasso to pick elements, drags the picked group with one
// pointer and scales it with two.
type Select struct {
	env         Env
	style       state.Style
	minDistance float64
	log         *slog.Logger

	phase   selectPhase
	downAt  time.Duration
	pointer int
	last    gg.Point

	lasso    *state.Curve
	lassoKey uuid.UUID

	pinchDist float64
	pinchMid  gg.Point
}

// NewSelect builds the strategy. style is the lasso look; two-finger samples
// closer than minDistance screen units are ignored while pinching.
func NewSelect(env Env, style state.Style, minDistance float64) *Select {
	style.Role = state.RoleHighlight
	return &Select{
		env:         env,
		style:       style,
		minDistance: minDistance,
		log:         logx.For("gesture"),
		lassoKey:    uuid.New(),
	}
}

func (s *Select) Handle(ev Event) Verdict {
	switch ev.Phase {
	case Down:
		s.down(ev)

	case PointerDown:
		if s.phase == selectLasso && ev.Time-s.downAt < s.env.Handoff {
			s.Cancel()
			return Handoff
		}
		if s.env.Doc.HasSelection() && (s.phase == selectMove || s.phase == selectPinch) {
			s.beginPinch(ev.Pointers)
		}

	case Move:
		s.move(ev)

	case PointerUp:
		if s.phase != selectPinch {
			break
		}
		rest := ev.remaining()
		if len(rest) >= 2 {
			s.beginPinch(rest)
			break
		}
		s.phase = selectMove
		if len(rest) == 1 {
			s.pointer = rest[0].ID
			s.last = s.env.toDocument(rest[0].Pos)
		}

	case Up:
		s.up()
	}
	return Continue
}

func (s *Select) down(ev Event) {
	s.env.Live.Clear()
	s.downAt = ev.Time
	s.pointer = ev.PointerID
	at := s.env.toDocument(ev.Position())
	s.last = at

	if s.env.Doc.HasSelection() {
		if s.env.Doc.SelectionBox().Bounds.Contains(at) {
			s.phase = selectMove
			s.env.Doc.HideSelectionBox()
			return
		}
		s.env.Doc.ClearSelection()
	}
	s.phase = selectLasso
	s.lasso = state.NewCurve(at)
	s.env.Live.Put(s.lassoKey, s.lasso, s.style)
}

func (s *Select) beginPinch(ps []Pointer) {
	d, mid, ok := spread(ps)
	if !ok {
		return
	}
	s.phase = selectPinch
	s.pinchDist = d
	s.pinchMid = s.env.toDocument(mid)
}

func (s *Select) move(ev Event) {
	switch s.phase {
	case selectPinch:
		d, _, ok := spread(ev.Pointers)
		if !ok || d <= s.minDistance || s.pinchDist <= s.minDistance {
			if ok {
				s.pinchDist = d
			}
			return
		}
		f := d / s.pinchDist
		s.pinchDist = d
		s.env.Doc.ScaleSelection(s.pinchMid, f)

	case selectMove:
		pos, ok := ev.pointer(s.pointer)
		if !ok {
			return
		}
		cur := s.env.toDocument(pos)
		s.env.Doc.TranslateSelection(cur.Sub(s.last))
		s.last = cur

	case selectLasso:
		pos, ok := ev.pointer(s.pointer)
		if !ok {
			return
		}
		cur := s.env.toDocument(pos)
		s.lasso.Extend(s.last, cur)
		s.last = cur
	}
}

func (s *Select) up() {
	switch s.phase {
	case selectMove, selectPinch:
		s.env.Doc.ShowSelectionBox()

	case selectLasso:
		s.lasso.Close()
		s.env.Live.Remove(s.lassoKey)
		sel := state.LassoSelect(s.lasso, s.env.Doc.Strokes(), s.env.Doc.Images())
		if sel.Empty() {
			s.env.Doc.ClearSelection()
		} else {
			s.env.Doc.Select(sel)
			s.log.Debug("lasso selected", "strokes", len(sel.Strokes), "images", len(sel.Images))
		}
		s.lasso = nil
	}
	s.phase = selectIdle
}

func (s *Select) Cancel() {
	s.env.Live.Remove(s.lassoKey)
	if s.phase == selectMove || s.phase == selectPinch {
		s.env.Doc.ShowSelectionBox()
	}
	s.lasso = nil
	s.phase = selectIdle
}
