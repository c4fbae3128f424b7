package gesture

import (
	"InkBoard/internal/state"

	"gonum.org/v1/gonum/spatial/r2"
)

// Roam pans the view with the pointers' centroid and zooms it with the
// spread of the first two. With a selection on the board it only pans.
type Roam struct {
	doc         *state.Document
	view        *state.Viewport
	minScale    float64
	maxScale    float64
	minDistance float64

	focus r2.Vec
	dist  float64
}

func NewRoam(doc *state.Document, view *state.Viewport, minScale, maxScale, minDistance float64) *Roam {
	return &Roam{doc: doc, view: view, minScale: minScale, maxScale: maxScale, minDistance: minDistance}
}

// Begin takes over a gesture that is already in progress.
func (r *Roam) Begin(ev Event) {
	r.rebase(ev.remaining())
}

func (r *Roam) Handle(ev Event) {
	switch ev.Phase {
	case Down, PointerDown, PointerUp:
		r.rebase(ev.remaining())
	case Move:
		r.move(ev.Pointers)
	}
}

func (r *Roam) rebase(ps []Pointer) {
	r.focus = focus(ps)
	r.dist, _, _ = spread(ps)
}

func (r *Roam) move(ps []Pointer) {
	if len(ps) == 0 {
		return
	}
	cur := focus(ps)
	r.view.PanBy(point(r2.Sub(r.focus, cur)))
	r.focus = cur

	if r.doc.HasSelection() {
		return
	}
	d, mid, ok := spread(ps)
	if !ok {
		return
	}
	prev := r.dist
	r.dist = d
	if d <= r.minDistance || prev <= r.minDistance {
		return
	}

	scale := r.view.Load().Scale
	f := d / prev
	next := scale * f
	switch {
	case next > r.maxScale:
		next = r.maxScale
	case f < 1 && next <= r.minScale:
		return
	}
	if next != scale {
		r.view.ZoomAt(point(mid), next)
	}
}
