// Package grid holds the static wall map the ray caster and the collision
// code both consult.
package grid

import (
	"errors"
	"fmt"
)

// Cell is the content of one square of the world.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// FirstValidCell is the lowest row/column index that can be open. Row and
// column 0 belong to the border ring.
const FirstValidCell = 1

var (
	ErrTooSmall      = errors.New("grid is too small")
	ErrNotSquare     = errors.New("grid is not square")
	ErrNotPowerOfTwo = errors.New("grid size is not a power of two")
	ErrBadCell       = errors.New("unknown cell symbol")
	ErrStartInWall   = errors.New("start position is inside a wall")
	ErrNoRespawnCell = errors.New("first valid cell must be open")
)

// Grid is an immutable square wall map.
type Grid struct {
	name  string
	size  int
	cells []Cell // row-major, cells[y*size+x]
}

// New parses rows of cell symbols into a Grid. '1', '#' and 'X' are walls,
// '0', '.' and ' ' are open. Every row must be as long as there are rows.
func New(name string, rows []string) (*Grid, error) {
	size := len(rows)
	if size < 3 {
		return nil, fmt.Errorf("%w: %d rows", ErrTooSmall, size)
	}
	if !IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, size)
	}

	g := &Grid{
		name:  name,
		size:  size,
		cells: make([]Cell, size*size),
	}
	for y, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrNotSquare, y, len(row), size)
		}
		for x, sym := range []byte(row) {
			cell, err := parseCell(sym)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			g.cells[y*size+x] = cell
		}
	}

	// Respawn target when the viewer ends up inside a wall.
	if g.IsWall(FirstValidCell, FirstValidCell) {
		return nil, ErrNoRespawnCell
	}
	return g, nil
}

func parseCell(sym byte) (Cell, error) {
	switch sym {
	case '1', '#', 'X':
		return Wall, nil
	case '0', '.', ' ':
		return Open, nil
	default:
		return Open, fmt.Errorf("%w: %q", ErrBadCell, sym)
	}
}

// Name returns the level name the grid was loaded with.
func (g *Grid) Name() string {
	return g.name
}

// Size returns the number of cells along one side.
func (g *Grid) Size() int {
	return g.size
}

// LastValidCell returns the highest row/column index that can be open.
func (g *Grid) LastValidCell() int {
	return g.size - 2
}

// IsWall reports whether the cell blocks movement and rays. Anything outside
// the interior range counts as wall, so the border ring is always solid no
// matter what the level data says.
func (g *Grid) IsWall(x, y int) bool {
	last := g.size - 2
	if x < FirstValidCell || y < FirstValidCell || x > last || y > last {
		return true
	}
	return g.cells[y*g.size+x] != Open
}

// CheckStart returns ErrStartInWall if the given cell cannot hold the viewer.
func (g *Grid) CheckStart(x, y int) error {
	if g.IsWall(x, y) {
		return fmt.Errorf("%w: cell (%d, %d)", ErrStartInWall, x, y)
	}
	return nil
}

// Rows renders the grid back into symbol rows, border included as stored.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	buf := make([]byte, g.size)
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.cells[y*g.size+x] == Open {
				buf[x] = '0'
			} else {
				buf[x] = '1'
			}
		}
		rows[y] = string(buf)
	}
	return rows
}

// Demo returns the built-in 16x16 level.
func Demo() *Grid {
	g, err := New("demo", demoRows)
	if err != nil {
		panic(fmt.Sprintf("grid: built-in demo level is invalid: %v", err))
	}
	return g
}

var demoRows = []string{
	"1111111111111111",
	"1000000000000001",
	"1001111100000001",
	"1001000101010101",
	"1001000100000001",
	"1001001100000001",
	"1000000000000001",
	"1000000000000001",
	"1000000000000001",
	"1001100111111001",
	"1001000000001001",
	"1001110000001001",
	"1001000000001001",
	"1001111111101001",
	"1000000000000001",
	"1111111111111111",
}
