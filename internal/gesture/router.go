package gesture

import (
	"log/slog"
	"sync"

	"InkBoard/internal/logx"
)

// Router sends each event either to the strategy for the current mode or,
// while a pan/zoom gesture is on, to Roam. Handle must be called from one
// goroutine with events in order.
type Router struct {
	env    Env
	write  *Write
	erase  *Erase
	sel    *Select
	roam   *Roam
	log    *slog.Logger

	mu      sync.RWMutex
	mode    Mode
	roaming bool
	count   int
}

func NewRouter(env Env, write *Write, erase *Erase, sel *Select, roam *Roam) *Router {
	return &Router{
		env:   env,
		write: write,
		erase: erase,
		sel:   sel,
		roam:  roam,
		log:   logx.For("gesture"),
	}
}

func (r *Router) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// Roaming reports whether a pan/zoom gesture currently owns the input.
func (r *Router) Roaming() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roaming
}

// Pointers is the number of pointers the router believes are down.
func (r *Router) Pointers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// SetMode switches strategies. Whatever the old one had in progress is
// dropped, and so are the selection and every transient.
func (r *Router) SetMode(m Mode) {
	r.strategy().Cancel()
	r.env.Live.Clear()
	r.env.Doc.ClearSelection()

	r.mu.Lock()
	r.mode = m
	r.roaming = false
	r.mu.Unlock()
	r.log.Debug("mode changed", "mode", m)
}

// Cancel abandons the gesture in progress, whoever owns it.
func (r *Router) Cancel() {
	r.strategy().Cancel()
	r.mu.Lock()
	r.roaming = false
	r.count = 0
	r.mu.Unlock()
}

func (r *Router) strategy() Strategy {
	switch r.Mode() {
	case ModeErase:
		return r.erase
	case ModeSelect:
		return r.sel
	default:
		return r.write
	}
}

func (r *Router) Handle(ev Event) {
	mode := r.Mode()

	if mode == ModeWrite && r.write.Multi() {
		r.setRoaming(false)
		r.write.Handle(ev)
		return
	}

	switch ev.Phase {
	case Down:
		r.mu.Lock()
		r.count = 1
		r.roaming = false
		r.mu.Unlock()

	case PointerDown:
		r.mu.Lock()
		r.count++
		n := r.count
		r.mu.Unlock()
		if n >= 3 || (n == 2 && mode == ModeSelect && !r.env.Doc.HasSelection()) {
			r.startRoam(ev)
		}

	case PointerUp:
		r.mu.Lock()
		r.count = max(r.count-1, 0)
		r.mu.Unlock()
	}

	if r.Roaming() {
		r.roam.Handle(ev)
	} else if r.strategy().Handle(ev) == Handoff {
		r.startRoam(ev)
	}

	if ev.Phase == Up {
		r.mu.Lock()
		r.count = 0
		r.roaming = false
		r.mu.Unlock()
	}
}

func (r *Router) startRoam(ev Event) {
	if r.Roaming() {
		return
	}
	r.setRoaming(true)
	r.strategy().Cancel()
	r.roam.Begin(ev)
	r.log.Debug("roam started", "pointers", len(ev.Pointers))
}

func (r *Router) setRoaming(on bool) {
	r.mu.Lock()
	r.roaming = on
	r.mu.Unlock()
}
