package minimap

import (
	"testing"

	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/rendertest"
	"chosenoffset.com/raycaster/internal/world/grid"
)

func demoLayout(t *testing.T) *Layout {
	t.Helper()
	g := grid.Demo()
	m, err := grid.NewMetrics(64, g.Size())
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	return New(g, m, 320, 0, 2)
}

func TestCellAt(t *testing.T) {
	l := demoLayout(t)

	if l.CellPixels() != 16 || l.Size() != 256 {
		t.Fatalf("Expected 16 pixel cells and a 256 pixel map, got %d and %d", l.CellPixels(), l.Size())
	}

	tests := []struct {
		x, y   int
		cx, cy int
		ok     bool
	}{
		{320, 0, 0, 0, true},
		{320 + 16*5 + 3, 16*6 + 15, 5, 6, true},
		{575, 255, 15, 15, true},
		{319, 10, 0, 0, false},
		{576, 10, 0, 0, false},
		{400, 256, 0, 0, false},
		{100, 100, 0, 0, false},
	}
	for _, tt := range tests {
		cx, cy, ok := l.CellAt(tt.x, tt.y)
		if ok != tt.ok || (ok && (cx != tt.cx || cy != tt.cy)) {
			t.Errorf("CellAt(%d, %d): expected (%d, %d, %v), got (%d, %d, %v)",
				tt.x, tt.y, tt.cx, tt.cy, tt.ok, cx, cy, ok)
		}
	}
}

func TestToScreen(t *testing.T) {
	l := demoLayout(t)
	x, y := l.ToScreen(96, 480)
	if x != 344 || y != 120 {
		t.Errorf("Expected (344, 120), got (%d, %d)", x, y)
	}
}

func TestDrawCellsRaysAndViewer(t *testing.T) {
	l := demoLayout(t)
	s := rendertest.NewSurface(640, 480)

	cols := []raycast.Column{
		{Axis: raycast.VerticalWall, Hit: raycast.RayHit{Boundary: 960, Intersection: 480}, Color: render.LightGreen.RGBA()},
		{Axis: raycast.HorizontalWall, Hit: raycast.RayHit{Boundary: 64, Intersection: 100}, Color: render.DarkGreen.RGBA()},
	}
	l.Draw(s, 96, 480, cols)

	rects := s.Filter(rendertest.OpRect)
	if len(rects) != 256 {
		t.Fatalf("Expected one rectangle per cell, got %d", len(rects))
	}
	corner := rects[0]
	if corner.Style != render.RectFill || corner.Color != render.DarkGreen.RGBA() {
		t.Errorf("Expected the corner cell to be a filled wall, got %+v", corner)
	}
	open := rects[16+1]
	if open.Style != render.RectOutline || open.X1 != 336 || open.Y1 != 16 || open.X2 != 352 {
		t.Errorf("Expected cell (1,1) as an outline at (336, 16), got %+v", open)
	}

	lines := s.Filter(rendertest.OpLine)
	if len(lines) != 2 {
		t.Fatalf("Expected one line per column, got %d", len(lines))
	}
	if lines[0].X1 != 344 || lines[0].Y1 != 120 || lines[0].X2 != 560 || lines[0].Y2 != 120 {
		t.Errorf("Unexpected first ray %+v", lines[0])
	}
	if lines[1].X2 != 345 || lines[1].Y2 != 16 || lines[1].Color != render.DarkGreen.RGBA() {
		t.Errorf("Unexpected second ray %+v", lines[1])
	}

	points := s.Filter(rendertest.OpPoint)
	if len(points) != 1 || points[0].X1 != 344 || points[0].Y1 != 120 {
		t.Errorf("Expected the viewer point at (344, 120), got %+v", points)
	}
}

func TestDrawFaces(t *testing.T) {
	l := demoLayout(t)
	l.ShowFaces = true
	s := rendertest.NewSurface(640, 480)

	l.Draw(s, 96, 480, nil)

	lines := s.Filter(rendertest.OpLine)
	if len(lines) != len(l.Faces()) || len(lines) == 0 {
		t.Fatalf("Expected one line per face (%d), got %d", len(l.Faces()), len(lines))
	}
	for _, op := range lines {
		if op.Color != render.Yellow.RGBA() {
			t.Errorf("Expected faces in yellow, got %v", op.Color)
			break
		}
	}
	// The inner side of the top border spans the open interior.
	first := lines[0]
	if first.X1 != 320+16 || first.Y1 != 16 || first.X2 != 320+15*16 || first.Y2 != 16 {
		t.Errorf("Unexpected first face %+v", first)
	}
}
