package player

import (
	"errors"
	"strings"
	"testing"

	"chosenoffset.com/raycaster/internal/controls"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/rendertest"
	"chosenoffset.com/raycaster/internal/world/grid"
)

func testGrid(t *testing.T, walls ...[2]int) *grid.Grid {
	t.Helper()
	const size = 16
	rows := make([][]byte, size)
	for y := range rows {
		fill := "0"
		if y == 0 || y == size-1 {
			fill = "1"
		}
		rows[y] = []byte(strings.Repeat(fill, size))
		rows[y][0], rows[y][size-1] = '1', '1'
	}
	for _, w := range walls {
		rows[w[1]][w[0]] = '1'
	}
	lines := make([]string, size)
	for i := range rows {
		lines[i] = string(rows[i])
	}
	g, err := grid.New("test", lines)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	return g
}

func newPlayer(t *testing.T, g *grid.Grid, cellX, cellY, angle int) *Player {
	t.Helper()
	m, err := grid.NewMetrics(64, g.Size())
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	a, err := raycast.NewAngles(320, 60)
	if err != nil {
		t.Fatalf("NewAngles failed: %v", err)
	}
	p, err := New(g, m, a, DefaultSettings(), cellX, cellY, angle)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

// fixedPicker maps every click to the same cell.
type fixedPicker struct {
	x, y int
	ok   bool
}

func (f fixedPicker) CellAt(int, int) (int, int, bool) { return f.x, f.y, f.ok }

func TestNewStartsInCellCenter(t *testing.T) {
	p := newPlayer(t, testGrid(t), 1, 7, 0)
	if p.X != 96 || p.Y != 480 {
		t.Errorf("Expected (96, 480), got (%d, %d)", p.X, p.Y)
	}
	if cx, cy := p.Cell(); cx != 1 || cy != 7 {
		t.Errorf("Expected cell (1, 7), got (%d, %d)", cx, cy)
	}
}

func TestNewRejectsBadStart(t *testing.T) {
	g := testGrid(t, [2]int{4, 4})
	m, _ := grid.NewMetrics(64, 16)
	a, _ := raycast.NewAngles(320, 60)

	if _, err := New(g, m, a, DefaultSettings(), 4, 4, 0); !errors.Is(err, grid.ErrStartInWall) {
		t.Errorf("Expected ErrStartInWall, got %v", err)
	}
	if _, err := New(g, m, a, DefaultSettings(), 0, 3, 0); !errors.Is(err, grid.ErrStartInWall) {
		t.Errorf("Expected ErrStartInWall on the border, got %v", err)
	}

	s := DefaultSettings()
	s.WalkSpeed = 32
	if _, err := New(g, m, a, s, 1, 1, 0); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("Expected ErrInvalidSettings for walk speed at the margin, got %v", err)
	}
}

func TestRotationWraps(t *testing.T) {
	p := newPlayer(t, testGrid(t), 1, 1, 0)
	b := controls.DefaultBindings()
	in := rendertest.NewInput()

	in.Press(render.KeyLeft)
	p.Update(in, b, nil)
	if p.Angle != 1920-16 {
		t.Errorf("Expected angle %d after rotating left from 0, got %d", 1920-16, p.Angle)
	}

	in.Release(render.KeyLeft)
	in.Press(render.KeyD)
	p.Update(in, b, nil)
	p.Update(in, b, nil)
	if p.Angle != 16 {
		t.Errorf("Expected angle 16, got %d", p.Angle)
	}
}

func TestForwardAndBackward(t *testing.T) {
	p := newPlayer(t, testGrid(t), 7, 7, 0)
	b := controls.DefaultBindings()
	in := rendertest.NewInput()

	in.Press(render.KeyW)
	p.Update(in, b, nil)
	if p.X != 488 || p.Y != 480 {
		t.Errorf("Expected (488, 480) after one step east, got (%d, %d)", p.X, p.Y)
	}
	if p.DX != 8 || p.DY != 0 {
		t.Errorf("Expected delta (8, 0), got (%f, %f)", p.DX, p.DY)
	}

	in.Release(render.KeyW)
	in.Press(render.KeyKP2)
	p.Update(in, b, nil)
	if p.X != 480 {
		t.Errorf("Expected to step back to 480, got %d", p.X)
	}

	in.Release(render.KeyKP2)
	p.Update(in, b, nil)
	if p.DX != 0 || p.DY != 0 {
		t.Errorf("Expected the delta to reset with no input, got (%f, %f)", p.DX, p.DY)
	}
}

func TestClickRecentersOnOpenCell(t *testing.T) {
	g := testGrid(t)
	b := controls.DefaultBindings()

	starts := []struct{ x, y, angle int }{{1, 1, 0}, {9, 3, 700}, {14, 14, 1500}}
	for _, s := range starts {
		p := newPlayer(t, g, s.x, s.y, s.angle)
		p.X += 13 // off-center
		in := rendertest.NewInput()
		in.Click(400, 20)
		in.Press(render.KeyUp)

		p.Update(in, b, fixedPicker{x: 5, y: 6, ok: true})

		if p.X != 5*64+32 || p.Y != 6*64+32 {
			t.Errorf("from cell (%d, %d): expected (352, 416), got (%d, %d)", s.x, s.y, p.X, p.Y)
		}
		if p.Angle != s.angle {
			t.Errorf("Expected the angle to be unchanged by a click, got %d", p.Angle)
		}
	}
}

func TestClickOnWallIsIgnored(t *testing.T) {
	g := testGrid(t, [2]int{5, 6})
	p := newPlayer(t, g, 1, 1, 0)
	in := rendertest.NewInput()
	in.Click(0, 0)

	p.Update(in, controls.DefaultBindings(), fixedPicker{x: 5, y: 6, ok: true})
	if p.X != 96 || p.Y != 96 {
		t.Errorf("Expected the player to stay at (96, 96), got (%d, %d)", p.X, p.Y)
	}

	p.Update(in, controls.DefaultBindings(), fixedPicker{ok: false})
	if p.X != 96 || p.Y != 96 {
		t.Errorf("Expected a click outside the map to be ignored, got (%d, %d)", p.X, p.Y)
	}
}

func TestWalkingIntoWallConverges(t *testing.T) {
	// Wall two cells east of the start.
	g := testGrid(t, [2]int{3, 7})
	p := newPlayer(t, g, 1, 7, 0)
	b := controls.DefaultBindings()
	in := rendertest.NewInput()
	in.Press(render.KeyUp)

	limit := 64 - p.Settings().CollisionMargin
	for frame := 0; frame < 60; frame++ {
		p.Update(in, b, nil)
		p.CheckCollisions()

		if cx, _ := p.Cell(); cx == 2 && p.X&63 > limit {
			t.Fatalf("frame %d: offset %d passed the margin", frame, p.X&63)
		}
	}

	if cx, cy := p.Cell(); cx != 2 || cy != 7 {
		t.Fatalf("Expected to end in cell (2, 7), got (%d, %d)", cx, cy)
	}
	if off := p.X & 63; off != limit {
		t.Errorf("Expected offset %d against the wall, got %d", limit, off)
	}
}

func TestWalkingWestIntoBorder(t *testing.T) {
	p := newPlayer(t, testGrid(t), 3, 5, 960)
	b := controls.DefaultBindings()
	in := rendertest.NewInput()
	in.Press(render.KeyW)

	for frame := 0; frame < 60; frame++ {
		p.Update(in, b, nil)
		p.CheckCollisions()
	}

	margin := p.Settings().CollisionMargin
	if p.X != 64+margin {
		t.Errorf("Expected x %d against the border, got %d", 64+margin, p.X)
	}
}

func TestSlidingAlongWall(t *testing.T) {
	// North-east, into the top border.
	p := newPlayer(t, testGrid(t), 1, 1, 1920-240)
	b := controls.DefaultBindings()
	in := rendertest.NewInput()
	in.Press(render.KeyW)

	startX := p.X
	for frame := 0; frame < 5; frame++ {
		p.Update(in, b, nil)
		p.CheckCollisions()
		if p.Y != 96 {
			t.Fatalf("frame %d: expected y pinned at 96, got %d", frame, p.Y)
		}
	}
	if p.X <= startX {
		t.Errorf("Expected to slide east along the wall, x went from %d to %d", startX, p.X)
	}
}

func TestCheckCollisionsIsIdempotent(t *testing.T) {
	g := testGrid(t, [2]int{3, 7}, [2]int{2, 8})
	cases := []struct {
		x, y   int
		dx, dy float64
	}{
		{170, 480, 8, 0},
		{130, 500, -8, 7},
		{150, 505, 3, 6},
		{96, 70, 0, -8},
		{600, 600, 5, 5},
		{200, 460, -4, -4},
	}

	for _, c := range cases {
		p := newPlayer(t, g, 1, 1, 0)
		p.X, p.Y, p.DX, p.DY = c.x, c.y, c.dx, c.dy

		p.CheckCollisions()
		x, y := p.X, p.Y
		p.CheckCollisions()
		if p.X != x || p.Y != y {
			t.Errorf("from (%d, %d): second pass moved (%d, %d) to (%d, %d)", c.x, c.y, x, y, p.X, p.Y)
		}
	}
}

func TestRespawnFromInsideWall(t *testing.T) {
	g := testGrid(t, [2]int{6, 6})
	p := newPlayer(t, g, 1, 1, 0)
	p.X, p.Y = 6*64+10, 6*64+10

	if !p.CheckCollisions() {
		t.Error("Expected a respawn")
	}
	if p.X != 96 || p.Y != 96 {
		t.Errorf("Expected (96, 96), got (%d, %d)", p.X, p.Y)
	}
	if p.CheckCollisions() {
		t.Error("Did not expect a second respawn")
	}
}
