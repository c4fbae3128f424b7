package state

import (
	"sync"

	"github.com/gogpu/gg"
)

// FlattenTolerance is the maximum deviation used when a curve is turned into
// a polyline for hit-testing.
const FlattenTolerance = 0.5

// Segment is one quadratic piece of a curve, drawn from the previous end
// point through Ctrl to End.
type Segment struct {
	Ctrl, End gg.Point
}

// Curve is a piecewise-quadratic path in document space.
//
// A curve under construction is appended to by the input goroutine while the
// render goroutine reads it, so every access goes through mu.
type Curve struct {
	mu       sync.RWMutex
	start    gg.Point
	segments []Segment
	closed   bool
}

func NewCurve(start gg.Point) *Curve {
	return &Curve{start: start}
}

// Extend appends the smoothed segment for a pointer that moved from prev to
// cur: the control point is prev and the end point is their midpoint.
func (c *Curve) Extend(prev, cur gg.Point) {
	c.mu.Lock()
	c.segments = append(c.segments, Segment{Ctrl: prev, End: prev.Lerp(cur, 0.5)})
	c.mu.Unlock()
}

// Close marks the curve as a closed region (used by lasso paths).
func (c *Curve) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Curve) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Len is the number of segments.
func (c *Curve) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.segments)
}

func (c *Curve) Start() gg.Point {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.start
}

func (c *Curve) Segments() []Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Segment(nil), c.segments...)
}

// Path builds a gg path for the curve as it is now.
func (c *Curve) Path() *gg.Path {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p := gg.NewPath()
	p.MoveTo(c.start.X, c.start.Y)
	for _, s := range c.segments {
		p.QuadraticTo(s.Ctrl.X, s.Ctrl.Y, s.End.X, s.End.Y)
	}
	if c.closed {
		p.Close()
	}
	return p
}

// Polyline flattens the curve. A curve with no segments yields its start
// point alone.
func (c *Curve) Polyline() []gg.Point {
	if c.Len() == 0 {
		return []gg.Point{c.Start()}
	}
	pts := c.Path().Flatten(FlattenTolerance)
	if c.Closed() && len(pts) > 0 && pts[len(pts)-1] != pts[0] {
		pts = append(pts, pts[0])
	}
	return pts
}

// Bounds is the tight bounding box of the curve geometry, without stroke
// width.
func (c *Curve) Bounds() gg.Rect {
	if c.Len() == 0 {
		s := c.Start()
		return gg.Rect{Min: s, Max: s}
	}
	return c.Path().BoundingBox()
}

// Transform maps every point of the curve through m in place.
func (c *Curve) Transform(m gg.Matrix) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = m.TransformPoint(c.start)
	for i := range c.segments {
		c.segments[i].Ctrl = m.TransformPoint(c.segments[i].Ctrl)
		c.segments[i].End = m.TransformPoint(c.segments[i].End)
	}
}

func (c *Curve) Translate(d gg.Point) {
	c.Transform(gg.Translate(d.X, d.Y))
}

func (c *Curve) Clone() *Curve {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Curve{
		start:    c.start,
		segments: append([]Segment(nil), c.segments...),
		closed:   c.closed,
	}
}

// ScaleAbout returns the matrix scaling by f around center.
func ScaleAbout(center gg.Point, f float64) gg.Matrix {
	return gg.Translate(center.X, center.Y).
		Multiply(gg.Scale(f, f)).
		Multiply(gg.Translate(-center.X, -center.Y))
}

// Circle is a transient disc, used for the eraser cursor.
type Circle struct {
	Center gg.Point
	Radius float64
}

func (c Circle) Path() *gg.Path {
	p := gg.NewPath()
	p.Circle(c.Center.X, c.Center.Y, c.Radius)
	return p
}
