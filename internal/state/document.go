package state

import (
	"slices"
	"sync"

	"InkBoard/internal/logx"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Document is the persisted layer: committed strokes, placed images and
// the current selection with its box.
type Document struct {
	mu        sync.RWMutex
	strokes   []*Stroke
	images    []*PlacedImage
	selection Selection
	box       SelectionBox
	padding   float64
	clock     revisionClock
}

// NewDocument creates an empty document whose selection box is padded by
// padding units on every side.
func NewDocument(padding float64) *Document {
	return &Document{
		padding: padding,
		box:     SelectionBox{ID: uuid.New()},
	}
}

// Commit appends a finished stroke.
func (d *Document) Commit(s *Stroke) {
	d.mu.Lock()
	d.strokes = append(d.strokes, s)
	d.mu.Unlock()
	d.clock.tick()
	logx.For("document").Debug("stroke committed", "id", s.ID, "segments", s.Curve.Len())
}

func (d *Document) AddImage(img *PlacedImage) {
	d.mu.Lock()
	d.images = append(d.images, img)
	d.mu.Unlock()
	d.clock.tick()
	logx.For("document").Debug("image placed", "id", img.ID, "uri", img.URI)
}

// Remove deletes the elements with the given ids and returns how many were
// found. Removed elements also leave the selection.
func (d *Document) Remove(ids ...uuid.UUID) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	gone := func(id uuid.UUID) bool {
		_, ok := drop[id]
		return ok
	}

	d.mu.Lock()
	before := len(d.strokes) + len(d.images)
	d.strokes = slices.DeleteFunc(d.strokes, func(s *Stroke) bool { return gone(s.ID) })
	d.images = slices.DeleteFunc(d.images, func(i *PlacedImage) bool { return gone(i.ID) })
	removed := before - len(d.strokes) - len(d.images)
	if removed > 0 && !d.selection.Empty() {
		d.selection.Strokes = slices.DeleteFunc(d.selection.Strokes, func(s *Stroke) bool { return gone(s.ID) })
		d.selection.Images = slices.DeleteFunc(d.selection.Images, func(i *PlacedImage) bool { return gone(i.ID) })
		d.refreshBoxLocked(d.box.Visible)
	}
	d.mu.Unlock()

	if removed > 0 {
		d.clock.tick()
	}
	return removed
}

func (d *Document) Strokes() []*Stroke {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.strokes)
}

func (d *Document) Images() []*PlacedImage {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.images)
}

// Clear drops every element and the selection.
func (d *Document) Clear() {
	d.mu.Lock()
	d.strokes = nil
	d.images = nil
	d.selection = Selection{}
	d.box.Visible = false
	d.box.Bounds = gg.Rect{}
	d.mu.Unlock()
	d.clock.tick()
}

// Select replaces the selection and shows its box. An empty selection
// clears it.
func (d *Document) Select(sel Selection) {
	d.mu.Lock()
	d.selection = Selection{
		Strokes: slices.Clone(sel.Strokes),
		Images:  slices.Clone(sel.Images),
	}
	d.refreshBoxLocked(true)
	d.mu.Unlock()
	d.clock.tick()
}

func (d *Document) ClearSelection() {
	d.Select(Selection{})
}

func (d *Document) Selection() Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Selection{
		Strokes: slices.Clone(d.selection.Strokes),
		Images:  slices.Clone(d.selection.Images),
	}
}

func (d *Document) HasSelection() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !d.selection.Empty()
}

func (d *Document) SelectionBox() SelectionBox {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.box
}

// HideSelectionBox hides the box while the selection is being dragged.
func (d *Document) HideSelectionBox() {
	d.mu.Lock()
	d.box.Visible = false
	d.mu.Unlock()
	d.clock.tick()
}

// ShowSelectionBox recomputes the box from the current members and shows
// it if there are any.
func (d *Document) ShowSelectionBox() {
	d.mu.Lock()
	d.refreshBoxLocked(true)
	d.mu.Unlock()
	d.clock.tick()
}

// refreshBoxLocked recomputes the box from scratch. d.mu must be held.
func (d *Document) refreshBoxLocked(show bool) {
	r, ok := SelectionBounds(d.selection, d.padding)
	d.box.Bounds = r
	d.box.Visible = ok && show
}

// TranslateSelection moves every selected element by delta.
func (d *Document) TranslateSelection(delta gg.Point) {
	d.transformSelection(gg.Translate(delta.X, delta.Y), 1)
}

// ScaleSelection scales every selected element by f about center. Curves go
// through the scale matrix; images move with it and have their size
// multiplied by f.
func (d *Document) ScaleSelection(center gg.Point, f float64) {
	d.transformSelection(ScaleAbout(center, f), f)
}

func (d *Document) transformSelection(m gg.Matrix, f float64) {
	d.mu.Lock()
	if d.selection.Empty() {
		d.mu.Unlock()
		return
	}
	for _, s := range d.selection.Strokes {
		s.Curve.Transform(m)
	}
	for _, img := range d.selection.Images {
		img.Transform(m, f)
	}
	if d.box.Visible {
		d.refreshBoxLocked(true)
	}
	d.mu.Unlock()
	d.clock.tick()
}

// Elements lists the document as a tagged element list: strokes, then
// images, then the selection box when it is visible.
func (d *Document) Elements() []Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Element, 0, len(d.strokes)+len(d.images)+1)
	for _, s := range d.strokes {
		out = append(out, s)
	}
	for _, img := range d.images {
		out = append(out, img)
	}
	if d.box.Visible {
		box := d.box
		out = append(out, &box)
	}
	return out
}

// Placement is where the layout pass puts one element.
type Placement struct {
	ID   uuid.UUID
	Kind Kind
	Rect gg.Rect
}

// Layout places every element at its document-space rectangle.
func (d *Document) Layout() []Placement {
	elems := d.Elements()
	out := make([]Placement, 0, len(elems))
	for _, e := range elems {
		var r gg.Rect
		switch v := e.(type) {
		case *Stroke:
			r = v.layout()
		case *PlacedImage:
			r = v.Bounds()
		case *SelectionBox:
			r = v.Bounds
		default:
			r = Rect(e)
		}
		out = append(out, Placement{ID: e.ElementID(), Kind: e.Kind(), Rect: r})
	}
	return out
}

// Snapshot is a consistent view of the document for one paint pass.
// Images are copied; strokes are shared and guard their own curves.
type Snapshot struct {
	Revision uint64
	Strokes  []*Stroke
	Images   []PlacedImage
	Box      SelectionBox
}

func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := Snapshot{
		Revision: d.clock.now(),
		Strokes:  slices.Clone(d.strokes),
		Images:   make([]PlacedImage, len(d.images)),
		Box:      d.box,
	}
	for i, img := range d.images {
		snap.Images[i] = *img
	}
	return snap
}

// Revision changes whenever the document does.
func (d *Document) Revision() uint64 {
	return d.clock.now()
}
