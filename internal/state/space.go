package state

import "github.com/gogpu/gg"

// Pad grows r by m on every side.
func Pad(r gg.Rect, m float64) gg.Rect {
	return gg.Rect{
		Min: gg.Pt(r.Min.X-m, r.Min.Y-m),
		Max: gg.Pt(r.Max.X+m, r.Max.Y+m),
	}
}

// Overlaps reports whether two rectangles share any point, edges included.
func Overlaps(a, b gg.Rect) bool {
	return !(a.Max.X < b.Min.X || b.Max.X < a.Min.X ||
		a.Max.Y < b.Min.Y || b.Max.Y < a.Min.Y)
}

// Union merges rects. ok is false when there is nothing to merge.
func Union(rects ...gg.Rect) (r gg.Rect, ok bool) {
	if len(rects) == 0 {
		return gg.Rect{}, false
	}
	r = rects[0]
	for _, o := range rects[1:] {
		r = r.Union(o)
	}
	return r, true
}

// Center of r.
func Center(r gg.Rect) gg.Point {
	return r.Min.Lerp(r.Max, 0.5)
}
