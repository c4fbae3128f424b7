package render

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
)

// ErrSurfaceNotReady is returned by a Target that has nothing to draw into
// yet, typically before its first layout.
var ErrSurfaceNotReady = errors.New("render: surface not ready")

// Target is a drawing surface the loop renders into. Acquire grants
// exclusive access until the matching Release, which presents the frame.
type Target interface {
	Acquire() (*gg.Context, error)
	Release(dc *gg.Context)
}

// Loop composites a LiveLayer onto a Target on a fixed cadence.
type Loop struct {
	layer  *LiveLayer
	view   *state.Viewport
	target Target
	budget time.Duration
	log    *slog.Logger

	stopped atomic.Bool
	quit    chan struct{}
	done    chan struct{}
	start   sync.Once
	stop    sync.Once
	frames  atomic.Uint64
}

// NewLoop prepares a loop; call Start to run it.
func NewLoop(layer *LiveLayer, view *state.Viewport, target Target, budget time.Duration) *Loop {
	return &Loop{
		layer:  layer,
		view:   view,
		target: target,
		budget: budget,
		log:    logx.For("render"),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the render goroutine. Later calls do nothing.
func (l *Loop) Start() {
	l.start.Do(func() {
		go l.run()
	})
}

// Stop asks the render goroutine to exit and waits until it has.
func (l *Loop) Stop() {
	l.stop.Do(func() {
		l.stopped.Store(true)
		close(l.quit)
	})
	started := true
	l.start.Do(func() { started = false; close(l.done) })
	if started {
		<-l.done
	}
}

// Frames is the number of frame cycles run so far, failed ones included.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

func (l *Loop) run() {
	defer close(l.done)
	l.log.Debug("render loop started", "budget", l.budget)

	timer := time.NewTimer(0)
	<-timer.C
	defer timer.Stop()

	for !l.stopped.Load() {
		begin := time.Now()
		if err := l.frame(); err != nil {
			l.log.Warn("frame failed", "frame", l.frames.Load(), "err", err)
		}
		l.frames.Add(1)

		rest := l.budget - time.Since(begin)
		if rest <= 0 {
			continue
		}
		timer.Reset(rest)
		select {
		case <-timer.C:
		case <-l.quit:
			return
		}
	}
}

// frame draws one frame. A panic inside is turned into an error so a bad
// frame never ends the loop.
func (l *Loop) frame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in frame: %v", r)
		}
	}()

	dc, err := l.target.Acquire()
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	defer l.target.Release(dc)

	dc.Clear()
	applyViewport(dc, gg.Identity(), l.view.Load())
	for _, t := range l.layer.Snapshot() {
		if err := drawShape(dc, t.Shape.Path(), t.Style); err != nil {
			l.log.Debug("transient draw failed", "err", err)
		}
	}
	return nil
}
