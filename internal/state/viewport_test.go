package state

import (
	"fmt"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
)

func assertPointNear(t *testing.T, want, got gg.Point, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msgAndArgs...)
}

func TestViewportRoundTrip(t *testing.T) {
	pans := []gg.Point{gg.Pt(0, 0), gg.Pt(120, -45), gg.Pt(-300.5, 80)}
	scales := []float64{0.31, 0.5, 1, 1.7, 2}
	anchors := []gg.Point{gg.Pt(0, 0), gg.Pt(400, 300), gg.Pt(-20, 999)}
	points := []gg.Point{gg.Pt(0, 0), gg.Pt(17, 23), gg.Pt(-640, 480)}

	for _, pan := range pans {
		for _, s := range scales {
			for _, a := range anchors {
				v := ViewportState{Pan: pan, Scale: s, Anchor: a}
				for _, p := range points {
					name := fmt.Sprintf("pan=%v scale=%v anchor=%v p=%v", pan, s, a, p)
					assertPointNear(t, p, v.ToScreen(v.ToDocument(p)), name)
					assertPointNear(t, v.ToScreen(p), v.Matrix().TransformPoint(p), name)
				}
			}
		}
	}
}

func TestViewportToDocumentFormula(t *testing.T) {
	v := ViewportState{Pan: gg.Pt(10, 20), Scale: 2, Anchor: gg.Pt(100, 100)}
	// (50 + 10 - 100) / 2 + 100 = 80; (60 + 20 - 100) / 2 + 100 = 90
	assertPointNear(t, gg.Pt(80, 90), v.ToDocument(gg.Pt(50, 60)))
}

func TestViewportSettersPublishSnapshots(t *testing.T) {
	v := NewViewport()
	assert.Equal(t, IdentityViewport(), v.Load())

	v.SetAnchor(gg.Pt(5, 5))
	v.SetScale(1.5)
	v.SetPan(gg.Pt(3, 4))
	v.SetPan(gg.Pt(3, 4))
	assert.Equal(t, ViewportState{Pan: gg.Pt(3, 4), Scale: 1.5, Anchor: gg.Pt(5, 5)}, v.Load())

	v.PanBy(gg.Pt(1, -1))
	assert.Equal(t, gg.Pt(4, 3), v.Load().Pan)

	v.Reset()
	assert.Equal(t, IdentityViewport(), v.Load())
}

func TestZoomAtKeepsFocusFixed(t *testing.T) {
	v := NewViewport()
	v.Store(ViewportState{Pan: gg.Pt(-30, 12), Scale: 0.8, Anchor: gg.Pt(50, 50)})

	focus := gg.Pt(320, 240)
	before := v.ToDocument(focus)
	v.ZoomAt(focus, 1.6)

	assert.Equal(t, 1.6, v.Load().Scale)
	assertPointNear(t, before, v.ToDocument(focus))
	assertPointNear(t, focus, v.ToScreen(before))
}
