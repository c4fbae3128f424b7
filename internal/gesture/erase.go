package gesture

import (
	"image/color"
	"log/slog"
	"math"
	"time"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

const eraserRing = 10

var (
	eraserInner = state.Style{Role: state.RoleEraser, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, Fill: true}
	eraserOuter = state.Style{Role: state.RoleEraser, Width: eraserRing, Color: color.NRGBA{A: 255}}
)

// EraserDiameter converts a touch contact size into the eraser's diameter in
// document units at the given view scale.
func EraserDiameter(contact, density, scale float64) float64 {
	size := contact*10000/2 + 0.5
	adjusted := math.Trunc(size*density + 0.5)
	if scale <= 0 {
		scale = 1
	}
	return adjusted / scale
}

// Erase removes every stroke the dragged eraser path touches, once the
// pointer lifts.
type Erase struct {
	env      Env
	density  float64
	fallback float64
	log      *slog.Logger

	active  bool
	downAt  time.Duration
	primary int
	last    gg.Point

	path     *state.Curve
	width    float64
	inner    state.Circle
	outer    state.Circle
	pathKey  uuid.UUID
	innerKey uuid.UUID
	outerKey uuid.UUID
}

// NewErase builds the strategy. fallback is the contact size used when an
// event reports none.
func NewErase(env Env, density, fallback float64) *Erase {
	return &Erase{
		env:      env,
		density:  density,
		fallback: fallback,
		log:      logx.For("gesture"),
		pathKey:  uuid.New(),
		innerKey: uuid.New(),
		outerKey: uuid.New(),
	}
}

// Width is the stroke width of the current erase path.
func (e *Erase) Width() float64 { return e.width }

func (e *Erase) Handle(ev Event) Verdict {
	switch ev.Phase {
	case Down:
		e.down(ev)

	case PointerDown:
		if e.active && ev.Time-e.downAt < e.env.Handoff {
			e.Cancel()
			return Handoff
		}

	case Move:
		if !e.active {
			break
		}
		pos, ok := ev.pointer(e.primary)
		if !ok {
			break
		}
		cur := e.env.toDocument(pos)
		delta := cur.Sub(e.last)
		e.inner.Center = e.inner.Center.Add(delta)
		e.outer.Center = e.outer.Center.Add(delta)
		e.env.Live.Put(e.innerKey, e.inner, eraserInner)
		e.env.Live.Put(e.outerKey, e.outer, eraserOuter)
		e.path.Extend(e.last, cur)
		e.last = cur

	case PointerUp:
		// Only the primary pointer erases.

	case Up:
		if !e.active {
			break
		}
		e.active = false
		e.env.Live.Clear()
		hits := state.EraseHits(e.path, e.width, e.env.Doc.Strokes())
		if len(hits) == 0 {
			break
		}
		ids := make([]uuid.UUID, len(hits))
		for i, s := range hits {
			ids[i] = s.ID
		}
		n := e.env.Doc.Remove(ids...)
		e.log.Debug("erased strokes", "count", n)
	}
	return Continue
}

func (e *Erase) down(ev Event) {
	e.env.Live.Clear()
	e.active = true
	e.downAt = ev.Time
	e.primary = ev.PointerID

	contact := ev.ContactSize
	if contact <= 0 {
		contact = e.fallback
	}
	diameter := EraserDiameter(contact, e.density, e.env.View.Load().Scale)
	radius := max(diameter/2-eraserRing, 1)
	e.width = max(diameter-2*eraserRing, 1)

	at := e.env.toDocument(ev.Position())
	e.last = at
	e.path = state.NewCurve(at)
	e.inner = state.Circle{Center: at, Radius: radius}
	e.outer = e.inner

	pathStyle := state.Style{
		Role:  state.RoleEraser,
		Width: e.width,
		Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Cap:   gg.LineCapRound,
		Join:  gg.LineJoinRound,
	}
	e.env.Live.Put(e.pathKey, e.path, pathStyle)
	e.env.Live.Put(e.innerKey, e.inner, eraserInner)
	e.env.Live.Put(e.outerKey, e.outer, eraserOuter)
}

func (e *Erase) Cancel() {
	e.active = false
	e.env.Live.Remove(e.pathKey)
	e.env.Live.Remove(e.innerKey)
	e.env.Live.Remove(e.outerKey)
}
