// Package gesture turns raw pointer events into board edits. A Router picks
// the strategy for the current mode and hands multi-finger gestures to Roam.
package gesture

import (
	"time"

	"InkBoard/internal/render"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

type Phase uint8

const (
	// Down is the first pointer of a gesture touching the surface.
	Down Phase = iota
	Move
	// Up is the last pointer leaving.
	Up
	// PointerDown and PointerUp are additional pointers joining or leaving
	// an ongoing gesture.
	PointerDown
	PointerUp
)

func (p Phase) String() string {
	switch p {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	default:
		return "unknown"
	}
}

// Pointer is one contact in screen space.
type Pointer struct {
	ID  int
	Pos r2.Vec
}

// Event is a pointer sample. Pointers lists every contact currently down,
// including the one being lifted on Up and PointerUp. Time is measured from
// an arbitrary epoch that stays fixed for the session.
type Event struct {
	Phase       Phase
	PointerID   int
	Index       int
	Pointers    []Pointer
	ContactSize float64
	Time        time.Duration
}

// Position is the screen position of the pointer the event is about.
func (e Event) Position() r2.Vec {
	if p, ok := e.pointer(e.PointerID); ok {
		return p
	}
	if e.Index >= 0 && e.Index < len(e.Pointers) {
		return e.Pointers[e.Index].Pos
	}
	if len(e.Pointers) > 0 {
		return e.Pointers[0].Pos
	}
	return r2.Vec{}
}

func (e Event) pointer(id int) (r2.Vec, bool) {
	for _, p := range e.Pointers {
		if p.ID == id {
			return p.Pos, true
		}
	}
	return r2.Vec{}, false
}

// remaining lists the pointers that stay down after this event.
func (e Event) remaining() []Pointer {
	if e.Phase != PointerUp && e.Phase != Up {
		return e.Pointers
	}
	out := make([]Pointer, 0, len(e.Pointers))
	for _, p := range e.Pointers {
		if p.ID != e.PointerID {
			out = append(out, p)
		}
	}
	return out
}

// Mode selects which strategy receives single-pointer input.
type Mode uint8

const (
	ModeWrite Mode = iota
	ModeErase
	ModeSelect
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeErase:
		return "erase"
	case ModeSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Verdict is a strategy's answer to an event.
type Verdict uint8

const (
	Continue Verdict = iota
	// Handoff asks the router to cancel the strategy and start roaming with
	// the current event.
	Handoff
)

// Strategy consumes the events of one mode.
type Strategy interface {
	Handle(ev Event) Verdict
	// Cancel abandons the gesture in progress without committing it.
	Cancel()
}

// Env is what every strategy edits or reads.
type Env struct {
	Doc  *state.Document
	Live *render.LiveLayer
	View *state.Viewport
	// Handoff is the window after Down in which a second pointer means
	// pan/zoom.
	Handoff time.Duration
}

func (e Env) toDocument(v r2.Vec) gg.Point {
	return e.View.ToDocument(point(v))
}

func point(v r2.Vec) gg.Point { return gg.Pt(v.X, v.Y) }

// focus is the centroid of ps.
func focus(ps []Pointer) r2.Vec {
	var sum r2.Vec
	if len(ps) == 0 {
		return sum
	}
	for _, p := range ps {
		sum = r2.Add(sum, p.Pos)
	}
	return r2.Scale(1/float64(len(ps)), sum)
}

// spread is the distance between the first two pointers and their midpoint.
func spread(ps []Pointer) (dist float64, mid r2.Vec, ok bool) {
	if len(ps) < 2 {
		return 0, r2.Vec{}, false
	}
	a, b := ps[0].Pos, ps[1].Pos
	return r2.Norm(r2.Sub(a, b)), r2.Scale(0.5, r2.Add(a, b)), true
}
