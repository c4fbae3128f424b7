package state

import (
	"sync/atomic"

	"github.com/gogpu/gg"
)

// ViewportState is one immutable snapshot of the pan/zoom transform.
// Screen points map to document points by undoing the pan and then the
// scale about Anchor.
type ViewportState struct {
	Pan    gg.Point
	Scale  float64
	Anchor gg.Point
}

func IdentityViewport() ViewportState {
	return ViewportState{Scale: 1}
}

// ToDocument maps a screen point to document space:
// (p + pan - anchor) / scale + anchor.
func (v ViewportState) ToDocument(p gg.Point) gg.Point {
	return p.Add(v.Pan).Sub(v.Anchor).Div(v.Scale).Add(v.Anchor)
}

// ToScreen is the inverse of ToDocument.
func (v ViewportState) ToScreen(d gg.Point) gg.Point {
	return d.Sub(v.Anchor).Mul(v.Scale).Add(v.Anchor).Sub(v.Pan)
}

// Matrix is the document-to-screen transform: translate by -pan, then
// scale about the anchor. Renderers of both layers apply it as is.
func (v ViewportState) Matrix() gg.Matrix {
	return gg.Translate(-v.Pan.X, -v.Pan.Y).
		Multiply(gg.Translate(v.Anchor.X, v.Anchor.Y)).
		Multiply(gg.Scale(v.Scale, v.Scale)).
		Multiply(gg.Translate(-v.Anchor.X, -v.Anchor.Y))
}

// Viewport publishes ViewportState snapshots. The input goroutine writes,
// render goroutines read; a reader always sees a complete snapshot.
type Viewport struct {
	cur atomic.Pointer[ViewportState]
}

func NewViewport() *Viewport {
	v := &Viewport{}
	v.Reset()
	return v
}

func (v *Viewport) Load() ViewportState {
	return *v.cur.Load()
}

func (v *Viewport) Store(s ViewportState) {
	v.cur.Store(&s)
}

func (v *Viewport) Reset() {
	v.Store(IdentityViewport())
}

func (v *Viewport) SetPan(p gg.Point) {
	s := v.Load()
	s.Pan = p
	v.Store(s)
}

// SetScale sets the zoom factor. Callers keep it positive.
func (v *Viewport) SetScale(scale float64) {
	s := v.Load()
	s.Scale = scale
	v.Store(s)
}

func (v *Viewport) SetAnchor(a gg.Point) {
	s := v.Load()
	s.Anchor = a
	v.Store(s)
}

// PanBy shifts the pan offset by delta screen units.
func (v *Viewport) PanBy(delta gg.Point) {
	s := v.Load()
	s.Pan = s.Pan.Add(delta)
	v.Store(s)
}

// ZoomAt sets the scale while keeping the document point under focus (a
// screen point) where it is. The anchor moves to that document point and the
// pan is rebased so nothing jumps.
func (v *Viewport) ZoomAt(focus gg.Point, scale float64) {
	s := v.Load()
	d := s.ToDocument(focus)
	v.Store(ViewportState{Pan: d.Sub(focus), Scale: scale, Anchor: d})
}

func (v *Viewport) ToDocument(p gg.Point) gg.Point { return v.Load().ToDocument(p) }
func (v *Viewport) ToScreen(d gg.Point) gg.Point   { return v.Load().ToScreen(d) }
