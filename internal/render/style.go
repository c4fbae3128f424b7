package render

import (
	"InkBoard/internal/state"

	"github.com/gogpu/gg"
)

// drawShape strokes or fills p on dc using style. The path is expected in
// document space; dc carries the viewport transform.
func drawShape(dc *gg.Context, p *gg.Path, style state.Style) error {
	dc.SetColor(style.Color)
	dc.DrawPath(p)
	if style.Fill {
		return dc.Fill()
	}
	dc.SetLineWidth(style.Width)
	dc.SetLineCap(style.Cap)
	dc.SetLineJoin(style.Join)
	if len(style.Dash) > 0 {
		dc.SetDash(style.Dash...)
	} else {
		dc.ClearDash()
	}
	return dc.Stroke()
}

// applyViewport resets dc's transform to base followed by the viewport:
// translate by -pan, then scale about the anchor.
func applyViewport(dc *gg.Context, base gg.Matrix, v state.ViewportState) {
	dc.Identity()
	dc.Transform(base)
	dc.Translate(-v.Pan.X, -v.Pan.Y)
	dc.Translate(v.Anchor.X, v.Anchor.Y)
	dc.Scale(v.Scale, v.Scale)
	dc.Translate(-v.Anchor.X, -v.Anchor.Y)
}
