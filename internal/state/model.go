package state

import (
	"image/color"
	"time"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Role tells strategies what a style is for.
type Role uint8

const (
	RoleInk Role = iota
	RoleEraser
	// RoleHighlight is the lasso/selection look. Strokes carrying it are
	// never erased.
	RoleHighlight
)

// Style is an immutable stroke description. Change it by building a new
// value with the With* helpers; strokes keep the copy they were committed
// with.
type Style struct {
	Role  Role
	Width float64
	Color color.NRGBA
	Cap   gg.LineCap
	Join  gg.LineJoin
	Dash  []float64
	Fill  bool
}

func InkStyle(width float64, c color.NRGBA) Style {
	return Style{Role: RoleInk, Width: width, Color: c, Cap: gg.LineCapRound, Join: gg.LineJoinRound}
}

func (s Style) WithColor(c color.NRGBA) Style {
	s.Dash = append([]float64(nil), s.Dash...)
	s.Color = c
	return s
}

func (s Style) WithWidth(w float64) Style {
	s.Dash = append([]float64(nil), s.Dash...)
	s.Width = w
	return s
}

func (s Style) WithDash(d ...float64) Style {
	s.Dash = append([]float64(nil), d...)
	return s
}

func (s Style) WithFill(fill bool) Style {
	s.Dash = append([]float64(nil), s.Dash...)
	s.Fill = fill
	return s
}

// Kind tags the element variants kept in a document.
type Kind uint8

const (
	KindStroke Kind = iota
	KindImage
	KindSelectionBox
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindImage:
		return "image"
	case KindSelectionBox:
		return "selection-box"
	default:
		return "unknown"
	}
}

// Element is anything laid out on the persisted layer.
type Element interface {
	ElementID() uuid.UUID
	Kind() Kind
	Position() gg.Point
	Size() gg.Point
}

// Rect is the document-space rectangle an element occupies.
func Rect(e Element) gg.Rect {
	p, s := e.Position(), e.Size()
	return gg.Rect{Min: p, Max: p.Add(s)}
}

// Stroke is a committed curve with the style it was drawn with.
type Stroke struct {
	ID      uuid.UUID
	Curve   *Curve
	Style   Style
	Created time.Time
}

func NewStroke(c *Curve, style Style) *Stroke {
	return &Stroke{ID: uuid.New(), Curve: c, Style: style, Created: time.Now()}
}

func (s *Stroke) ElementID() uuid.UUID { return s.ID }
func (s *Stroke) Kind() Kind           { return KindStroke }

// Position is the top-left of the stroke's layout box, which leaves room
// for the pen width on every side.
func (s *Stroke) Position() gg.Point {
	return s.layout().Min
}

func (s *Stroke) Size() gg.Point {
	r := s.layout()
	return gg.Pt(r.Width(), r.Height())
}

func (s *Stroke) layout() gg.Rect {
	return Pad(s.Curve.Bounds(), 2.5*s.Style.Width)
}

// PlacedImage is a bitmap positioned on the board. URI is resolved by the
// renderer.
type PlacedImage struct {
	ID     uuid.UUID
	URI    string
	Pos    gg.Point
	Dim    gg.Point
	Factor float64
}

func NewPlacedImage(uri string, pos gg.Point, size float64) *PlacedImage {
	return &PlacedImage{ID: uuid.New(), URI: uri, Pos: pos, Dim: gg.Pt(size, size), Factor: 1}
}

func (i *PlacedImage) ElementID() uuid.UUID { return i.ID }
func (i *PlacedImage) Kind() Kind           { return KindImage }
func (i *PlacedImage) Position() gg.Point   { return i.Pos }
func (i *PlacedImage) Size() gg.Point       { return i.Dim }

func (i *PlacedImage) Bounds() gg.Rect {
	return gg.Rect{Min: i.Pos, Max: i.Pos.Add(i.Dim)}
}

// Transform moves the image's top-left through m and multiplies its size
// and scale factor by f.
func (i *PlacedImage) Transform(m gg.Matrix, f float64) {
	i.Pos = m.TransformPoint(i.Pos)
	i.Dim = i.Dim.Mul(f)
	i.Factor *= f
}

// SelectionBox is the padded outline around the current selection.
type SelectionBox struct {
	ID      uuid.UUID
	Bounds  gg.Rect
	Visible bool
}

func (b *SelectionBox) ElementID() uuid.UUID { return b.ID }
func (b *SelectionBox) Kind() Kind           { return KindSelectionBox }
func (b *SelectionBox) Position() gg.Point   { return b.Bounds.Min }
func (b *SelectionBox) Size() gg.Point {
	return gg.Pt(b.Bounds.Width(), b.Bounds.Height())
}

// Selection is the set of elements picked by the lasso.
type Selection struct {
	Strokes []*Stroke
	Images  []*PlacedImage
}

func (s Selection) Empty() bool { return len(s.Strokes) == 0 && len(s.Images) == 0 }
func (s Selection) Len() int    { return len(s.Strokes) + len(s.Images) }
