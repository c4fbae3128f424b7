package render

import (
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/gg"
)

// Framebuffer is a double-buffered in-memory Target. The render loop draws
// into the back buffer; Release copies it to the front image that the UI
// reads.
type Framebuffer struct {
	back   sync.Mutex
	dc     *gg.Context
	width  int
	height int

	frontMu sync.RWMutex
	front   *image.RGBA

	// OnPresent, if set, runs after each presented frame on the render
	// goroutine.
	OnPresent func()
}

func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// Resize reallocates both buffers. A zero size leaves the surface not ready.
func (f *Framebuffer) Resize(width, height int) {
	f.back.Lock()
	defer f.back.Unlock()
	if width == f.width && height == f.height {
		return
	}
	if f.dc != nil {
		_ = f.dc.Close()
		f.dc = nil
	}
	f.width, f.height = width, height
	if width > 0 && height > 0 {
		f.dc = gg.NewContext(width, height)
	}

	f.frontMu.Lock()
	f.front = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	f.frontMu.Unlock()
}

func (f *Framebuffer) Acquire() (*gg.Context, error) {
	f.back.Lock()
	if f.dc == nil {
		f.back.Unlock()
		return nil, ErrSurfaceNotReady
	}
	return f.dc, nil
}

func (f *Framebuffer) Release(dc *gg.Context) {
	f.frontMu.Lock()
	if f.front != nil {
		draw.Draw(f.front, f.front.Bounds(), dc.Image(), image.Point{}, draw.Src)
	}
	f.frontMu.Unlock()
	f.back.Unlock()

	if f.OnPresent != nil {
		f.OnPresent()
	}
}

// Image returns a copy of the last presented frame.
func (f *Framebuffer) Image() image.Image {
	f.frontMu.RLock()
	defer f.frontMu.RUnlock()
	if f.front == nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	out := image.NewRGBA(f.front.Bounds())
	copy(out.Pix, f.front.Pix)
	return out
}

func (f *Framebuffer) Size() (int, int) {
	f.back.Lock()
	defer f.back.Unlock()
	return f.width, f.height
}
