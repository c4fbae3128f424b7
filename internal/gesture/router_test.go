package gesture

import (
	"image/color"
	"testing"
	"time"

	"InkBoard/internal/render"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var black = color.NRGBA{A: 255}

type fixture struct {
	env    Env
	write  *Write
	erase  *Erase
	sel    *Select
	roam   *Roam
	router *Router
}

func newFixture() *fixture {
	env := Env{
		Doc:     state.NewDocument(20),
		Live:    render.NewLiveLayer(),
		View:    state.NewViewport(),
		Handoff: 120 * time.Millisecond,
	}
	f := &fixture{env: env}
	f.write = NewWrite(env, state.InkStyle(8, black))
	f.erase = NewErase(env, 1, 0.01)
	f.sel = NewSelect(env, state.Style{Width: 5, Color: color.NRGBA{R: 0x42, G: 0x43, B: 0x43, A: 255}}.WithDash(8, 8), 10)
	f.roam = NewRoam(env.Doc, env.View, 0.3, 2, 10)
	f.router = NewRouter(env, f.write, f.erase, f.sel, f.roam)
	return f
}

func (f *fixture) send(evs ...Event) {
	for _, ev := range evs {
		f.router.Handle(ev)
	}
}

func p(id int, x, y float64) Pointer {
	return Pointer{ID: id, Pos: r2.Vec{X: x, Y: y}}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func event(phase Phase, id int, t time.Duration, ps ...Pointer) Event {
	idx := 0
	for i, q := range ps {
		if q.ID == id {
			idx = i
		}
	}
	return Event{Phase: phase, PointerID: id, Index: idx, Pointers: ps, Time: t}
}

// ink commits a straight stroke from a to b.
func ink(doc *state.Document, a, b gg.Point, width float64) *state.Stroke {
	c := state.NewCurve(a)
	c.Extend(a, b)
	c.Extend(b, b)
	s := state.NewStroke(c, state.InkStyle(width, black))
	doc.Commit(s)
	return s
}

func TestSecondPointerInsideHandoffWindowRoams(t *testing.T) {
	f := newFixture()
	f.send(
		event(Down, 0, 0, p(0, 10, 10)),
		event(Move, 0, ms(10), p(0, 20, 10)),
		event(PointerDown, 1, ms(119), p(0, 20, 10), p(1, 60, 10)),
	)

	assert.True(t, f.router.Roaming())
	assert.Zero(t, f.env.Live.Len(), "stroke in progress is discarded")

	f.send(
		event(Move, 0, ms(130), p(0, 30, 10), p(1, 70, 10)),
		event(PointerUp, 1, ms(140), p(0, 30, 10), p(1, 70, 10)),
		event(Up, 0, ms(150), p(0, 30, 10)),
	)
	assert.Empty(t, f.env.Doc.Strokes())
	assert.False(t, f.router.Roaming())
	assert.Zero(t, f.router.Pointers())
}

func TestSecondPointerAfterHandoffWindowIsIgnored(t *testing.T) {
	f := newFixture()
	f.send(
		event(Down, 0, 0, p(0, 10, 10)),
		event(Move, 0, ms(10), p(0, 20, 10)),
		event(PointerDown, 1, ms(120), p(0, 20, 10), p(1, 60, 10)),
	)
	assert.False(t, f.router.Roaming())
	assert.Equal(t, 2, f.router.Pointers())

	f.send(
		event(Move, 0, ms(130), p(0, 30, 10), p(1, 90, 90)),
		event(PointerUp, 0, ms(140), p(0, 30, 10), p(1, 90, 90)),
	)
	require.Len(t, f.env.Doc.Strokes(), 1, "lifting the primary pointer commits")
	assert.Zero(t, f.env.Live.Len())

	f.send(event(Up, 1, ms(150), p(1, 90, 90)))
	assert.Len(t, f.env.Doc.Strokes(), 1)
	assert.Equal(t, gg.Pt(10, 10), f.env.Doc.Strokes()[0].Curve.Start())
}

func TestThirdPointerAlwaysRoams(t *testing.T) {
	f := newFixture()
	f.router.SetMode(ModeErase)
	f.send(
		event(Down, 0, 0, p(0, 10, 10)),
		event(PointerDown, 1, ms(300), p(0, 10, 10), p(1, 50, 10)),
	)
	assert.False(t, f.router.Roaming())

	f.send(event(PointerDown, 2, ms(400), p(0, 10, 10), p(1, 50, 10), p(2, 90, 10)))
	assert.True(t, f.router.Roaming())
	assert.Zero(t, f.env.Live.Len(), "eraser cursor is removed")
}

func TestSelectModeTwoPointersWithoutSelectionRoams(t *testing.T) {
	f := newFixture()
	f.router.SetMode(ModeSelect)
	f.send(
		event(Down, 0, 0, p(0, 10, 10)),
		event(Move, 0, ms(20), p(0, 20, 20)),
		event(PointerDown, 1, ms(500), p(0, 20, 20), p(1, 80, 20)),
	)
	assert.True(t, f.router.Roaming())
	assert.Zero(t, f.env.Live.Len(), "lasso is dropped")
}

func TestSelectModeTwoPointersWithSelectionDoesNotRoam(t *testing.T) {
	f := newFixture()
	f.router.SetMode(ModeSelect)
	s := ink(f.env.Doc, gg.Pt(40, 50), gg.Pt(100, 50), 4)
	f.env.Doc.Select(state.Selection{Strokes: []*state.Stroke{s}})

	f.send(
		event(Down, 0, 0, p(0, 50, 50)),
		event(PointerDown, 1, ms(10), p(0, 50, 50), p(1, 90, 50)),
	)
	assert.False(t, f.router.Roaming())
}

func TestMultiWriteNeverRoams(t *testing.T) {
	f := newFixture()
	f.write.SetMulti(true)
	f.send(
		event(Down, 0, 0, p(0, 10, 10)),
		event(PointerDown, 1, ms(5), p(0, 10, 10), p(1, 10, 50)),
		event(PointerDown, 2, ms(10), p(0, 10, 10), p(1, 10, 50), p(2, 10, 90)),
	)
	assert.False(t, f.router.Roaming())
	assert.Equal(t, 3, f.env.Live.Len())
}

func TestSetModeClearsSelectionAndTransients(t *testing.T) {
	f := newFixture()
	s := ink(f.env.Doc, gg.Pt(0, 0), gg.Pt(10, 0), 4)
	f.env.Doc.Select(state.Selection{Strokes: []*state.Stroke{s}})
	f.send(event(Down, 0, 0, p(0, 100, 100)), event(Move, 0, ms(5), p(0, 110, 100)))
	require.Equal(t, 1, f.env.Live.Len())

	f.router.SetMode(ModeSelect)

	assert.Equal(t, ModeSelect, f.router.Mode())
	assert.False(t, f.env.Doc.HasSelection())
	assert.False(t, f.env.Doc.SelectionBox().Visible)
	assert.Zero(t, f.env.Live.Len())

	f.send(event(Up, 0, ms(10), p(0, 110, 100)))
	assert.Len(t, f.env.Doc.Strokes(), 1, "cancelled stroke is not committed")
}

func TestPhaseAndModeNames(t *testing.T) {
	assert.Equal(t, "pointer-down", PointerDown.String())
	assert.Equal(t, "select", ModeSelect.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

func TestEventRemainingDropsLiftedPointer(t *testing.T) {
	ev := event(PointerUp, 1, 0, p(0, 1, 1), p(1, 2, 2), p(2, 3, 3))
	rest := ev.remaining()
	require.Len(t, rest, 2)
	assert.Equal(t, 0, rest[0].ID)
	assert.Equal(t, 2, rest[1].ID)
	assert.Equal(t, r2.Vec{X: 2, Y: 2}, ev.Position())

	mv := event(Move, 0, 0, p(0, 1, 1), p(1, 2, 2))
	assert.Len(t, mv.remaining(), 2)
}

func TestRoamFollowsPointerCount(t *testing.T) {
	three := []Pointer{p(0, 10, 10), p(1, 50, 10), p(2, 90, 10)}
	sequence := func(f *fixture) []bool {
		var got []bool
		for _, ev := range []Event{
			event(Down, 0, 0, three[0]),
			event(PointerDown, 1, ms(300), three[:2]...),
			event(PointerDown, 2, ms(310), three...),
			event(PointerUp, 2, ms(320), three...),
			event(PointerUp, 1, ms(330), three[:2]...),
			event(Up, 0, ms(340), three[0]),
		} {
			f.router.Handle(ev)
			got = append(got, f.router.Roaming())
		}
		return got
	}

	write := newFixture()
	assert.Equal(t, []bool{false, false, true, true, true, false}, sequence(write))

	sel := newFixture()
	sel.router.SetMode(ModeSelect)
	assert.Equal(t, []bool{false, true, true, true, true, false}, sequence(sel))

	picked := newFixture()
	picked.router.SetMode(ModeSelect)
	s := ink(picked.env.Doc, gg.Pt(0, 10), gg.Pt(20, 10), 4)
	picked.env.Doc.Select(state.Selection{Strokes: []*state.Stroke{s}})
	assert.Equal(t, []bool{false, false, true, true, true, false}, sequence(picked))
}
