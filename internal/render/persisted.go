package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"sync"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageSource resolves a placed image's URI to pixels.
type ImageSource interface {
	Image(uri string) (*gg.ImageBuf, error)
}

var placeholder = state.Style{
	Width: 2,
	Color: color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff},
}

// PaintDocument draws a document snapshot through the viewport. base is
// applied before the viewport, for device scaling. Images go first, then
// strokes, then the selection box in boxStyle. Failures of single elements
// are collected and returned together; the rest still draws.
func PaintDocument(dc *gg.Context, snap state.Snapshot, v state.ViewportState, base gg.Matrix, images ImageSource, boxStyle state.Style) error {
	var errs []error
	applyViewport(dc, base, v)

	for _, img := range snap.Images {
		if err := paintImage(dc, img, images); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range snap.Strokes {
		if err := drawShape(dc, s.Curve.Path(), s.Style); err != nil {
			errs = append(errs, fmt.Errorf("stroke %s: %w", s.ID, err))
		}
	}
	if snap.Box.Visible {
		b := snap.Box.Bounds
		p := gg.NewPath()
		p.Rectangle(b.Min.X, b.Min.Y, b.Width(), b.Height())
		if err := drawShape(dc, p, boxStyle); err != nil {
			errs = append(errs, fmt.Errorf("selection box: %w", err))
		}
	}
	return errors.Join(errs...)
}

func paintImage(dc *gg.Context, img state.PlacedImage, images ImageSource) error {
	var buf *gg.ImageBuf
	var err error
	if images != nil {
		buf, err = images.Image(img.URI)
	}
	if buf == nil {
		p := gg.NewPath()
		p.Rectangle(img.Pos.X, img.Pos.Y, img.Dim.X, img.Dim.Y)
		if derr := drawShape(dc, p, placeholder); derr != nil {
			return errors.Join(err, derr)
		}
		return err
	}
	dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:         img.Pos.X,
		Y:         img.Pos.Y,
		DstWidth:  img.Dim.X,
		DstHeight: img.Dim.Y,
		Opacity:   1,
	})
	return nil
}

// ImageCache decodes images from local files once and keeps them. Decode
// failures are remembered too, so a broken file is reported once.
type ImageCache struct {
	mu     sync.Mutex
	bufs   map[string]*gg.ImageBuf
	failed map[string]error
}

func NewImageCache() *ImageCache {
	return &ImageCache{
		bufs:   make(map[string]*gg.ImageBuf),
		failed: make(map[string]error),
	}
}

func (c *ImageCache) Image(uri string) (*gg.ImageBuf, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if buf, ok := c.bufs[uri]; ok {
		return buf, nil
	}
	if err, ok := c.failed[uri]; ok {
		return nil, err
	}

	buf, err := decodeFile(uri)
	if err != nil {
		err = fmt.Errorf("image %s: %w", uri, err)
		c.failed[uri] = err
		logx.For("render").Warn("image unavailable", "uri", uri, "err", err)
		return nil, err
	}
	c.bufs[uri] = buf
	return buf, nil
}

// Put registers already decoded pixels under uri.
func (c *ImageCache) Put(uri string, img image.Image) {
	c.mu.Lock()
	c.bufs[uri] = gg.ImageBufFromImage(img)
	delete(c.failed, uri)
	c.mu.Unlock()
}

func decodeFile(uri string) (*gg.ImageBuf, error) {
	path := uri
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return gg.ImageBufFromImage(img), nil
}
