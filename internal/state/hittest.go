package state

import (
	"math"

	"github.com/gogpu/gg"
)

// SelectionBounds is the union of the selected strokes' curve bounds and the
// selected images' rectangles, padded on every side. ok is false for an
// empty selection.
func SelectionBounds(sel Selection, padding float64) (r gg.Rect, ok bool) {
	rects := make([]gg.Rect, 0, sel.Len())
	for _, s := range sel.Strokes {
		rects = append(rects, s.Curve.Bounds())
	}
	for _, img := range sel.Images {
		rects = append(rects, img.Bounds())
	}
	r, ok = Union(rects...)
	if !ok {
		return gg.Rect{}, false
	}
	return Pad(r, padding), true
}

// StrokesTouch reports whether curve a stroked at width wa and curve b
// stroked at width wb share any ink.
func StrokesTouch(a *Curve, wa float64, b *Curve, wb float64) bool {
	if !Overlaps(Pad(a.Bounds(), wa/2), Pad(b.Bounds(), wb/2)) {
		return false
	}
	return polylinesWithin(a.Polyline(), b.Polyline(), (wa+wb)/2)
}

// LassoHitsStroke reports whether s lies inside or crosses the region
// enclosed by lasso.
func LassoHitsStroke(lasso *Curve, s *Stroke) bool {
	if lasso.Len() == 0 {
		return false
	}
	if !Overlaps(lasso.Bounds(), Pad(s.Curve.Bounds(), s.Style.Width/2)) {
		return false
	}

	region := lasso.Clone()
	region.Close()
	area := region.Path()

	pts := s.Curve.Polyline()
	for _, p := range pts {
		if area.Contains(p) {
			return true
		}
	}
	return polylinesCross(region.Polyline(), pts)
}

// LassoHitsImage compares the image rectangle with the lasso's bounding
// rectangle.
func LassoHitsImage(lasso *Curve, img *PlacedImage) bool {
	if lasso.Len() == 0 {
		return false
	}
	return Overlaps(lasso.Bounds(), img.Bounds())
}

// LassoSelect collects every stroke and image hit by lasso. Strokes in the
// highlight role are skipped.
func LassoSelect(lasso *Curve, strokes []*Stroke, images []*PlacedImage) Selection {
	var sel Selection
	for _, s := range strokes {
		if s.Style.Role == RoleHighlight {
			continue
		}
		if LassoHitsStroke(lasso, s) {
			sel.Strokes = append(sel.Strokes, s)
		}
	}
	for _, img := range images {
		if LassoHitsImage(lasso, img) {
			sel.Images = append(sel.Images, img)
		}
	}
	return sel
}

// EraseHits returns the strokes touched by an erase path of the given
// width. Highlight strokes are never erased.
func EraseHits(path *Curve, width float64, strokes []*Stroke) []*Stroke {
	var hit []*Stroke
	for _, s := range strokes {
		if s.Style.Role == RoleHighlight {
			continue
		}
		if StrokesTouch(s.Curve, s.Style.Width, path, width) {
			hit = append(hit, s)
		}
	}
	return hit
}

// polylinesWithin reports whether some pair of pieces of a and b come
// within reach of each other.
func polylinesWithin(a, b []gg.Point, reach float64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if len(a) == 1 {
		a = []gg.Point{a[0], a[0]}
	}
	if len(b) == 1 {
		b = []gg.Point{b[0], b[0]}
	}
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if segmentDistance(a[i-1], a[i], b[j-1], b[j]) <= reach {
				return true
			}
		}
	}
	return false
}

func polylinesCross(a, b []gg.Point) bool {
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if segmentsCross(a[i-1], a[i], b[j-1], b[j]) {
				return true
			}
		}
	}
	return false
}

func segmentDistance(p1, p2, q1, q2 gg.Point) float64 {
	if segmentsCross(p1, p2, q1, q2) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(p1, q1, q2), pointSegmentDistance(p2, q1, q2)),
		math.Min(pointSegmentDistance(q1, p1, p2), pointSegmentDistance(q2, p1, p2)),
	)
}

func pointSegmentDistance(p, a, b gg.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Distance(a.Add(ab.Mul(t)))
}

// segmentsCross reports whether segments p1p2 and q1q2 intersect,
// touching endpoints and collinear overlap included.
func segmentsCross(p1, p2, q1, q2 gg.Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

func orient(a, b, c gg.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func onSegment(a, b, p gg.Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
