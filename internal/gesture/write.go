package gesture

import (
	"log/slog"
	"sync"
	"time"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// track is one pointer's stroke in progress.
type track struct {
	pointer int
	key     uuid.UUID
	curve   *state.Curve
	last    gg.Point
}

type tracks []*track

func (t *tracks) add(pointer int, at gg.Point) *track {
	tr := &track{pointer: pointer, key: uuid.New(), curve: state.NewCurve(at), last: at}
	*t = append(*t, tr)
	return tr
}

func (t tracks) get(pointer int) *track {
	for _, tr := range t {
		if tr.pointer == pointer {
			return tr
		}
	}
	return nil
}

func (t *tracks) take(pointer int) *track {
	for i, tr := range *t {
		if tr.pointer == pointer {
			*t = append((*t)[:i], (*t)[i+1:]...)
			return tr
		}
	}
	return nil
}

// Write draws freehand ink. With multi-write on, every pointer draws its own
// stroke; otherwise only the first one does.
type Write struct {
	env Env
	log *slog.Logger

	mu    sync.RWMutex
	style state.Style
	multi bool

	primary int
	downAt  time.Duration
	tracks  tracks
}

func NewWrite(env Env, style state.Style) *Write {
	return &Write{env: env, style: style, log: logx.For("gesture")}
}

// Style is the style the next committed stroke gets.
func (w *Write) Style() state.Style {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.style
}

// SetStyle changes the style of strokes committed from now on. Strokes
// already on the board keep theirs.
func (w *Write) SetStyle(s state.Style) {
	w.mu.Lock()
	w.style = s
	w.mu.Unlock()
}

func (w *Write) SetMulti(on bool) {
	w.mu.Lock()
	w.multi = on
	w.mu.Unlock()
}

func (w *Write) Multi() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.multi
}

func (w *Write) Handle(ev Event) Verdict {
	switch ev.Phase {
	case Down:
		w.Cancel()
		w.primary = ev.PointerID
		w.downAt = ev.Time
		w.begin(ev.PointerID, w.env.toDocument(ev.Position()))

	case PointerDown:
		if w.Multi() {
			w.begin(ev.PointerID, w.env.toDocument(ev.Position()))
			return Continue
		}
		if ev.Time-w.downAt < w.env.Handoff {
			w.log.Debug("second pointer inside handoff window", "after", ev.Time-w.downAt)
			w.Cancel()
			return Handoff
		}

	case Move:
		for _, p := range ev.Pointers {
			tr := w.tracks.get(p.ID)
			if tr == nil {
				continue
			}
			cur := w.env.toDocument(p.Pos)
			tr.curve.Extend(tr.last, cur)
			tr.last = cur
		}

	case PointerUp:
		if w.Multi() || ev.PointerID == w.primary {
			w.commit(ev.PointerID)
		}

	case Up:
		for len(w.tracks) > 0 {
			w.commit(w.tracks[0].pointer)
		}
	}
	return Continue
}

func (w *Write) Cancel() {
	for _, tr := range w.tracks {
		w.env.Live.Remove(tr.key)
	}
	w.tracks = nil
}

func (w *Write) begin(pointer int, at gg.Point) {
	if old := w.tracks.take(pointer); old != nil {
		w.env.Live.Remove(old.key)
	}
	tr := w.tracks.add(pointer, at)
	w.env.Live.Put(tr.key, tr.curve, w.Style())
}

func (w *Write) commit(pointer int) {
	tr := w.tracks.take(pointer)
	if tr == nil {
		return
	}
	w.env.Live.Remove(tr.key)
	if tr.curve.Len() == 0 {
		return
	}
	s := state.NewStroke(tr.curve, w.Style())
	s.ID = tr.key
	w.env.Doc.Commit(s)
}
