// Package raster draws frames into an offscreen gg pixmap. It backs the
// snapshot engine and feeds the terminal backend.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"chosenoffset.com/raycaster/internal/render"
)

// Surface implements render.Surface on a gg context.
type Surface struct {
	ctx    *gg.Context
	pixmap *gg.Pixmap
	clr    gg.RGBA

	width, height int
}

// NewSurface allocates a width x height surface cleared to black.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: raster size %dx%d", render.ErrSurfaceInit, width, height)
	}
	pm := gg.NewPixmap(width, height)
	s := &Surface{
		ctx:    gg.NewContext(width, height, gg.WithPixmap(pm)),
		pixmap: pm,
		width:  width,
		height: height,
	}
	s.ctx.SetLineWidth(1)
	s.SetColor(color.Black)
	s.Clear()
	return s, nil
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) SetColor(clr color.Color) {
	s.clr = gg.FromColor(clr)
	s.ctx.SetColor(clr)
}

func (s *Surface) Clear() {
	s.ctx.ClearWithColor(s.clr)
}

func (s *Surface) DrawLine(x1, y1, x2, y2 int) {
	s.ctx.DrawLine(float64(x1)+0.5, float64(y1)+0.5, float64(x2)+0.5, float64(y2)+0.5)
	_ = s.ctx.Stroke()
}

func (s *Surface) DrawPoint(x, y int) {
	if s.inside(x, y) {
		s.pixmap.SetPixel(x, y, s.clr)
	}
}

func (s *Surface) DrawRect(style render.RectStyle, left, top, right, bottom int) {
	w, h := float64(right-left), float64(bottom-top)
	if style == render.RectFill {
		s.ctx.DrawRectangle(float64(left), float64(top), w, h)
		_ = s.ctx.Fill()
		return
	}
	s.ctx.DrawRectangle(float64(left)+0.5, float64(top)+0.5, w-1, h-1)
	_ = s.ctx.Stroke()
}

// DrawVerticalLine writes the column straight into the pixmap; slivers are
// always axis aligned and need no coverage computation.
func (s *Surface) DrawVerticalLine(x, top, height int) {
	if x < 0 || x >= s.width {
		return
	}
	bottom := min(top+height, s.height)
	for y := max(top, 0); y < bottom; y++ {
		s.pixmap.SetPixel(x, y, s.clr)
	}
}

// Present flushes any queued accelerator work so the pixmap is current.
func (s *Surface) Present() {
	_ = s.ctx.FlushGPU()
}

// At returns the pixel at (x, y) as 8-bit RGBA.
func (s *Surface) At(x, y int) color.RGBA {
	if !s.inside(x, y) {
		return color.RGBA{}
	}
	p := s.pixmap.GetPixel(x, y)
	return color.RGBA{
		R: to8(p.R),
		G: to8(p.G),
		B: to8(p.B),
		A: to8(p.A),
	}
}

// Image returns a copy of the frame.
func (s *Surface) Image() image.Image {
	return s.ctx.Image()
}

// SavePNG writes the frame to a PNG file.
func (s *Surface) SavePNG(path string) error {
	return s.ctx.SavePNG(path)
}

// EncodePNG writes the frame as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.ctx.EncodePNG(w)
}

// Close releases the context.
func (s *Surface) Close() error {
	return s.ctx.Close()
}

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
