// Package minimap draws the diagnostic overhead map next to the 3D view and
// maps pointer positions on it back to grid cells.
package minimap

import (
	"image/color"

	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/grid"
)

// Colors of the overlay.
type Colors struct {
	Open   color.Color
	Wall   color.Color
	Face   color.Color
	Viewer color.Color
}

// DefaultColors matches the palette choices of the 3D view.
func DefaultColors() Colors {
	return Colors{
		Open:   render.White.RGBA(),
		Wall:   render.DarkGreen.RGBA(),
		Face:   render.Yellow.RGBA(),
		Viewer: render.LightRed.RGBA(),
	}
}

// Layout places a scaled copy of the grid on screen. World coordinates are
// shifted right by ScaleShift, so a cell is CellSize>>ScaleShift pixels.
type Layout struct {
	Left, Top  int
	ScaleShift int
	// ShowFaces traces the merged wall faces over the cells.
	ShowFaces  bool

	grid    *grid.Grid
	metrics grid.Metrics
	colors  Colors
	faces   []grid.Face
}

// New builds a layout with its top-left corner at (left, top).
func New(g *grid.Grid, m grid.Metrics, left, top, scaleShift int) *Layout {
	return &Layout{
		Left:       left,
		Top:        top,
		ScaleShift: scaleShift,
		grid:       g,
		metrics:    m,
		colors:     DefaultColors(),
		faces:      g.Faces(m),
	}
}

// Faces returns the wall faces of the grid.
func (l *Layout) Faces() []grid.Face {
	return l.faces
}

// CellPixels is the on-screen edge length of one cell.
func (l *Layout) CellPixels() int {
	return l.metrics.CellSize >> l.ScaleShift
}

// Size returns the on-screen edge length of the whole map.
func (l *Layout) Size() int {
	return l.CellPixels() * l.grid.Size()
}

// ToScreen converts a world position to map pixels.
func (l *Layout) ToScreen(x, y int) (int, int) {
	return l.Left + x>>l.ScaleShift, l.Top + y>>l.ScaleShift
}

// CellAt returns the cell under a screen position. Positions off the map
// report ok == false.
func (l *Layout) CellAt(x, y int) (cellX, cellY int, ok bool) {
	x -= l.Left
	y -= l.Top
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	size := l.CellPixels()
	cellX, cellY = x/size, y/size
	if cellX >= l.grid.Size() || cellY >= l.grid.Size() {
		return 0, 0, false
	}
	return cellX, cellY, true
}

// Draw paints the cells, one ray line per column and the viewer.
func (l *Layout) Draw(s render.Surface, viewerX, viewerY int, cols []raycast.Column) {
	l.drawCells(s)
	if l.ShowFaces {
		l.drawFaces(s)
	}
	l.drawRays(s, viewerX, viewerY, cols)

	s.SetColor(l.colors.Viewer)
	s.DrawPoint(l.ToScreen(viewerX, viewerY))
}

func (l *Layout) drawCells(s render.Surface) {
	size := l.CellPixels()
	n := l.grid.Size()
	for cy := 0; cy < n; cy++ {
		for cx := 0; cx < n; cx++ {
			left := l.Left + cx*size
			top := l.Top + cy*size
			if l.grid.IsWall(cx, cy) {
				s.SetColor(l.colors.Wall)
				s.DrawRect(render.RectFill, left, top, left+size, top+size)
			} else {
				s.SetColor(l.colors.Open)
				s.DrawRect(render.RectOutline, left, top, left+size, top+size)
			}
		}
	}
}

func (l *Layout) drawFaces(s render.Surface) {
	s.SetColor(l.colors.Face)
	for _, f := range l.faces {
		x1, y1 := l.ToScreen(f.X1, f.Y1)
		x2, y2 := l.ToScreen(f.X2, f.Y2)
		s.DrawLine(x1, y1, x2, y2)
	}
}

func (l *Layout) drawRays(s render.Surface, viewerX, viewerY int, cols []raycast.Column) {
	vx, vy := l.ToScreen(viewerX, viewerY)
	for _, col := range cols {
		hx, hy := l.ToScreen(col.HitPoint())
		s.SetColor(col.Color)
		s.DrawLine(vx, vy, hx, hy)
	}
}
