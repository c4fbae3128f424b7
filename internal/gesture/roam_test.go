package gesture

import (
	"testing"

	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startRoam puts two pointers at (100,100) and (200,100) in select mode,
// which roams straight away.
func startRoam(t *testing.T, f *fixture) {
	t.Helper()
	f.router.SetMode(ModeSelect)
	f.send(
		event(Down, 0, 0, p(0, 100, 100)),
		event(PointerDown, 1, ms(5), p(0, 100, 100), p(1, 200, 100)),
	)
	require.True(t, f.router.Roaming())
}

func TestRoamPansWithCentroid(t *testing.T) {
	f := newFixture()
	startRoam(t, f)

	f.send(event(Move, 0, ms(10), p(0, 110, 90), p(1, 210, 90)))
	v := f.env.View.Load()
	assertNear(t, gg.Pt(-10, 10), v.Pan)
	assert.Equal(t, 1.0, v.Scale)
}

func TestRoamZoomKeepsMidpointFixed(t *testing.T) {
	f := newFixture()
	startRoam(t, f)
	under := f.env.View.ToDocument(gg.Pt(150, 100))

	f.send(event(Move, 0, ms(10), p(0, 75, 100), p(1, 225, 100)))
	v := f.env.View.Load()
	assert.InDelta(t, 1.5, v.Scale, 1e-9)
	assertNear(t, gg.Pt(150, 100), v.ToScreen(under))
}

func TestRoamClampsScale(t *testing.T) {
	f := newFixture()
	startRoam(t, f)

	f.send(event(Move, 0, ms(10), p(0, 0, 100), p(1, 300, 100)))
	assert.Equal(t, 2.0, f.env.View.Load().Scale, "capped at the maximum")

	f.send(event(Move, 0, ms(20), p(0, 135, 100), p(1, 165, 100)))
	assert.Equal(t, 2.0, f.env.View.Load().Scale, "a shrink to the minimum is skipped")

	f.send(event(Move, 0, ms(30), p(0, 140, 100), p(1, 160, 100)))
	assert.InDelta(t, 2.0*20/30, f.env.View.Load().Scale, 1e-9)
}

func TestRoamSkipsCloseSamples(t *testing.T) {
	f := newFixture()
	startRoam(t, f)

	f.send(event(Move, 0, ms(10), p(0, 145, 100), p(1, 155, 100)))
	assert.Equal(t, 1.0, f.env.View.Load().Scale)
	f.send(event(Move, 0, ms(20), p(0, 100, 100), p(1, 200, 100)))
	assert.Equal(t, 1.0, f.env.View.Load().Scale, "the sample after a skipped one has no baseline")
}

func TestRoamOnlyPansWithSelection(t *testing.T) {
	f := newFixture()
	f.router.SetMode(ModeErase)
	s := ink(f.env.Doc, gg.Pt(0, 0), gg.Pt(10, 0), 4)
	f.env.Doc.Select(state.Selection{Strokes: []*state.Stroke{s}})

	f.send(
		event(Down, 0, 0, p(0, 100, 100)),
		event(PointerDown, 1, ms(300), p(0, 100, 100), p(1, 200, 100)),
		event(PointerDown, 2, ms(310), p(0, 100, 100), p(1, 200, 100), p(2, 150, 200)),
	)
	require.True(t, f.router.Roaming())

	f.send(event(Move, 0, ms(320), p(0, 0, 100), p(1, 300, 100), p(2, 150, 230)))
	v := f.env.View.Load()
	assert.Equal(t, 1.0, v.Scale)
	assertNear(t, gg.Pt(0, -10), v.Pan)
}

func TestRoamRebasesWhenPointerLifts(t *testing.T) {
	f := newFixture()
	startRoam(t, f)

	f.send(
		event(PointerUp, 1, ms(10), p(0, 100, 100), p(1, 200, 100)),
		event(Move, 0, ms(20), p(0, 120, 100)),
	)
	v := f.env.View.Load()
	assertNear(t, gg.Pt(-20, 0), v.Pan, "single pointer keeps panning without a jump")
	assert.Equal(t, 1.0, v.Scale)
	assert.True(t, f.router.Roaming())

	f.send(event(Up, 0, ms(30), p(0, 120, 100)))
	assert.False(t, f.router.Roaming())
}
