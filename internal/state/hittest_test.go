package state

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = color.NRGBA{A: 255}

func TestSelectionBoundsUnionPadded(t *testing.T) {
	sel := Selection{
		Strokes: []*Stroke{
			NewStroke(line(gg.Pt(0, 0), gg.Pt(10, 10)), InkStyle(8, black)),
			NewStroke(line(gg.Pt(20, 20), gg.Pt(30, 30)), InkStyle(8, black)),
		},
		Images: []*PlacedImage{NewPlacedImage("a.png", gg.Pt(5, 5), 8)},
	}

	r, ok := SelectionBounds(sel, 20)
	require.True(t, ok)
	assert.Equal(t, gg.Rect{Min: gg.Pt(-20, -20), Max: gg.Pt(50, 50)}, r)

	_, ok = SelectionBounds(Selection{}, 20)
	assert.False(t, ok)
}

func TestStrokesTouch(t *testing.T) {
	stroke := line(gg.Pt(0, 50), gg.Pt(100, 50))

	crossing := line(gg.Pt(50, 0), gg.Pt(50, 100))
	assert.True(t, StrokesTouch(stroke, 8, crossing, 10))

	// 60 units below, widths only reach 9.
	disjoint := line(gg.Pt(0, 110), gg.Pt(100, 110))
	assert.False(t, StrokesTouch(stroke, 8, disjoint, 10))

	// Parallel 8 units away: the 8-wide stroke and 10-wide eraser overlap.
	grazing := line(gg.Pt(0, 58), gg.Pt(100, 58))
	assert.True(t, StrokesTouch(stroke, 8, grazing, 10))
}

func TestEraseHitsSkipsHighlight(t *testing.T) {
	ink := NewStroke(line(gg.Pt(0, 0), gg.Pt(100, 0)), InkStyle(4, black))
	hl := NewStroke(line(gg.Pt(0, 0), gg.Pt(100, 0)), Style{Role: RoleHighlight, Width: 5})
	path := line(gg.Pt(50, -20), gg.Pt(50, 20))

	hit := EraseHits(path, 10, []*Stroke{ink, hl})
	assert.Equal(t, []*Stroke{ink}, hit)
}

func square(min, max float64) *Curve {
	c := NewCurve(gg.Pt(min, min))
	corners := []gg.Point{gg.Pt(max, min), gg.Pt(max, max), gg.Pt(min, max), gg.Pt(min, min)}
	prev := gg.Pt(min, min)
	for _, p := range corners {
		c.Extend(prev, p)
		prev = p
	}
	c.Extend(prev, prev)
	return c
}

func TestLassoSelect(t *testing.T) {
	lasso := square(0, 100)

	inside := NewStroke(line(gg.Pt(40, 40), gg.Pt(60, 60)), InkStyle(4, black))
	crossing := NewStroke(line(gg.Pt(50, 50), gg.Pt(200, 50)), InkStyle(4, black))
	outside := NewStroke(line(gg.Pt(300, 300), gg.Pt(320, 320)), InkStyle(4, black))
	near := NewPlacedImage("near.png", gg.Pt(90, 90), 50)
	far := NewPlacedImage("far.png", gg.Pt(400, 400), 50)

	sel := LassoSelect(lasso, []*Stroke{inside, crossing, outside}, []*PlacedImage{near, far})

	assert.ElementsMatch(t, []*Stroke{inside, crossing}, sel.Strokes)
	assert.Equal(t, []*PlacedImage{near}, sel.Images)
}

func TestLassoWithoutSegmentsSelectsNothing(t *testing.T) {
	tap := NewCurve(gg.Pt(5, 5))
	s := NewStroke(line(gg.Pt(0, 0), gg.Pt(10, 10)), InkStyle(4, black))
	assert.True(t, LassoSelect(tap, []*Stroke{s}, nil).Empty())
}

func TestSegmentsCross(t *testing.T) {
	assert.True(t, segmentsCross(gg.Pt(0, 0), gg.Pt(10, 10), gg.Pt(0, 10), gg.Pt(10, 0)))
	assert.True(t, segmentsCross(gg.Pt(0, 0), gg.Pt(10, 0), gg.Pt(10, 0), gg.Pt(20, 5)))
	assert.False(t, segmentsCross(gg.Pt(0, 0), gg.Pt(10, 0), gg.Pt(0, 1), gg.Pt(10, 1)))
}
