package grid

import (
	"fmt"
	"math/bits"
)

// Metrics converts between world units and cells. Cell size and world size
// are both powers of two, so every conversion is a shift or a mask.
type Metrics struct {
	CellSize  int
	Shift     int // log2(CellSize)
	WorldSize int

	snapMask int
}

// NewMetrics builds the conversions for a grid of cells x cells squares with
// the given edge length.
func NewMetrics(cellSize, cells int) (Metrics, error) {
	if !IsPowerOfTwo(cellSize) {
		return Metrics{}, fmt.Errorf("%w: cell size %d", ErrNotPowerOfTwo, cellSize)
	}
	worldSize := cellSize * cells
	if !IsPowerOfTwo(worldSize) {
		return Metrics{}, fmt.Errorf("%w: world size %d", ErrNotPowerOfTwo, worldSize)
	}
	return Metrics{
		CellSize:  cellSize,
		Shift:     Log2(cellSize),
		WorldSize: worldSize,
		snapMask:  NextPowerOfTwo(worldSize) - cellSize,
	}, nil
}

// Snap rounds a world coordinate down to the edge of its cell. For any
// coord in [0, WorldSize) this equals floor(coord/CellSize)*CellSize.
func (m Metrics) Snap(coord int) int {
	return coord & m.snapMask
}

// CellOf returns the cell index containing coord.
func (m Metrics) CellOf(coord int) int {
	return coord >> m.Shift
}

// Offset returns the position of coord inside its cell, in [0, CellSize).
func (m Metrics) Offset(coord int) int {
	return coord & (m.CellSize - 1)
}

// CellCenter returns the world coordinate of the middle of a cell.
func (m Metrics) CellCenter(cell int) int {
	return cell<<m.Shift + m.CellSize>>1
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Log2 returns floor(log2(n)) for n > 0.
func Log2(n int) int {
	return bits.Len(uint(n)) - 1
}
