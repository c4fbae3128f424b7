package ui

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"time"

	"InkBoard/internal/board"
	"InkBoard/internal/gesture"
	"InkBoard/internal/logx"
	"InkBoard/internal/render"
	"InkBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

// BoardWidget shows a session and feeds it mouse input as a single
// pointer. The committed document is rasterized on demand; the live layer
// comes from the session's render loop through a framebuffer.
type BoardWidget struct {
	widget.BaseWidget
	session   *board.Session
	images    *render.ImageCache
	fb        *render.Framebuffer
	epoch     time.Time
	drawing   bool
	statusBar *widget.Label
	log       *slog.Logger

	mu       sync.Mutex
	painted  uint64
	viewSeen state.ViewportState
	renderer *boardWidgetRenderer
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(session *board.Session) *BoardWidget {
	b := &BoardWidget{
		session:   session,
		images:    render.NewImageCache(),
		fb:        render.NewFramebuffer(),
		epoch:     time.Now(),
		statusBar: widget.NewLabel("Ready"),
		log:       logx.For("ui"),
	}
	b.fb.OnPresent = func() {
		fyne.Do(b.present)
	}
	b.ExtendBaseWidget(b)
	return b
}

// Surface is the render target the session's live loop draws into.
func (b *BoardWidget) Surface() render.Target { return b.fb }

func (b *BoardWidget) Session() *board.Session { return b.session }

func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// SetMode switches the session's tool and reports it in the status bar.
func (b *BoardWidget) SetMode(m gesture.Mode) {
	b.session.SetMode(m)
	b.SetStatus(fmt.Sprintf("Mode: %s", m))
	b.Refresh()
}

func (b *BoardWidget) SetColor(c color.Color) {
	b.session.SetStrokeColor(c)
}

func (b *BoardWidget) SetStroke(w float64) {
	b.session.SetStrokeWidth(w)
}

// ClearPaths is called by the toolbar's Clear button.
func (b *BoardWidget) ClearPaths() {
	b.session.ClearAll()
	b.SetStatus("Cleared")
	b.Refresh()
}

// ResetView returns to the identity viewport.
func (b *BoardWidget) ResetView() {
	b.session.ResetViewport()
	b.Refresh()
}

// InsertImage places the image at uri under the first quarter of the
// visible area.
func (b *BoardWidget) InsertImage(uri string) {
	size := b.Size()
	pos := b.session.PlacementFor(float64(size.Width), float64(size.Height))
	img := b.session.InsertImage(uri, pos)
	b.log.Info("image inserted", "uri", uri, "id", img.ID)
	b.SetStatus("Inserted " + uri)
	b.Refresh()
}

func (b *BoardWidget) event(phase gesture.Phase, pos fyne.Position) gesture.Event {
	return gesture.Event{
		Phase:    phase,
		Pointers: []gesture.Pointer{{ID: 0, Pos: r2.Vec{X: float64(pos.X), Y: float64(pos.Y)}}},
		Time:     time.Since(b.epoch),
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.drawing = true
	b.session.HandlePointer(b.event(gesture.Down, e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.drawing {
		return
	}
	b.drawing = false
	b.session.HandlePointer(b.event(gesture.Up, e.Position))
	b.Refresh()
}

// Dragged extends the gesture while the primary button is held and pans
// the view for any other button.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.drawing {
		b.session.HandlePointer(b.event(gesture.Move, e.Position))
		return
	}
	b.session.PanBy(gg.Pt(-float64(e.Dragged.DX), -float64(e.Dragged.DY)))
	b.Refresh()
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.session.PanBy(gg.Pt(-float64(e.Scrolled.DX), -float64(e.Scrolled.DY)))
	b.Refresh()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (b *BoardWidget) DragEnd()                       {}

// present runs on the UI goroutine after each live frame.
func (b *BoardWidget) present() {
	b.mu.Lock()
	r := b.renderer
	b.mu.Unlock()
	if r == nil {
		return
	}
	r.live.Refresh()
	if b.stale() {
		r.persisted.Refresh()
	}
}

// stale reports whether the document or the view changed since the last
// persisted paint.
func (b *BoardWidget) stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.painted != b.session.Document().Revision() || b.viewSeen != b.session.Viewport()
}

// paint rasterizes the committed document at w x h pixels.
func (b *BoardWidget) paint(w, h int) image.Image {
	snap := b.session.Document().Snapshot()
	view := b.session.Viewport()
	b.mu.Lock()
	b.painted = snap.Revision
	b.viewSeen = view
	b.mu.Unlock()

	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	base := gg.Identity()
	if size := b.Size(); size.Width > 0 && size.Height > 0 {
		base = gg.Scale(float64(w)/float64(size.Width), float64(h)/float64(size.Height))
	}
	if err := render.PaintDocument(dc, snap, view, base, b.images, b.session.SelectStyle()); err != nil {
		b.log.Debug("paint incomplete", "err", err)
	}
	return dc.Image()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.persisted = canvas.NewRaster(b.paint)
	r.live = canvas.NewRaster(func(int, int) image.Image { return b.fb.Image() })
	b.mu.Lock()
	b.renderer = r
	b.mu.Unlock()
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	persisted  *canvas.Raster
	live       *canvas.Raster
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.persisted, r.live}
}

func (r *boardWidgetRenderer) Refresh() {
	r.persisted.Refresh()
	r.live.Refresh()
}

// Layout sizes the live framebuffer in widget units so it shares the
// coordinate space of the pointer events.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	for _, o := range r.Objects() {
		o.Resize(size)
	}
	r.board.fb.Resize(int(math.Ceil(float64(size.Width))), int(math.Ceil(float64(size.Height))))
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {
	r.board.mu.Lock()
	r.board.renderer = nil
	r.board.mu.Unlock()
}
