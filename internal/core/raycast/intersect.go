package raycast

import (
	"fmt"

	"chosenoffset.com/raycaster/internal/world/grid"
)

// Axis tells which family of grid lines a ray hit.
type Axis int

const (
	// VerticalWall is a hit on a line of constant x.
	VerticalWall Axis = iota
	// HorizontalWall is a hit on a line of constant y.
	HorizontalWall
)

func (a Axis) String() string {
	switch a {
	case VerticalWall:
		return "vertical"
	case HorizontalWall:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// RayHit is the first wall boundary a ray crosses.
type RayHit struct {
	// Distance from the ray origin to the hit, along the ray.
	Distance float64
	// Boundary is the grid line that was hit: an x for vertical walls, a y
	// for horizontal walls.
	Boundary int
	// Intersection is the other coordinate of the hit point, truncated.
	Intersection int
}

// Intersector walks a ray across grid lines until it meets a wall cell.
type Intersector struct {
	grid    *grid.Grid
	metrics grid.Metrics
	tables  *Tables
}

// NewIntersector binds a grid and its metrics to a set of tables.
func NewIntersector(g *grid.Grid, m grid.Metrics, t *Tables) *Intersector {
	return &Intersector{grid: g, metrics: m, tables: t}
}

// FindVerticalWall scans the lines x = k*CellSize crossed by the ray from
// (x, y) at angle and returns the first one bordering a wall cell.
//
// The border ring guarantees a hit for any origin inside the world. A ray
// that leaves the world anyway means the grid or the origin is corrupt, and
// FindVerticalWall panics.
func (in *Intersector) FindVerticalWall(x, y, angle int) RayHit {
	a := in.tables.angles
	cell := in.metrics.CellSize

	var xBound, xDelta, nextCell int
	if a.FacingRight(angle) {
		xBound = in.metrics.Snap(x) + cell
		xDelta = cell
	} else {
		// The wall cell lies to the left of the boundary.
		xBound = in.metrics.Snap(x)
		xDelta = -cell
		nextCell = -1
	}

	yi := in.tables.tan[angle]*float64(xBound-x) + float64(y)
	yStep := in.tables.yStep[angle]

	for xBound >= 0 && xBound < in.metrics.WorldSize {
		cellX := in.metrics.CellOf(xBound + nextCell)
		cellY := in.metrics.CellOf(int(yi))
		if in.grid.IsWall(cellX, cellY) {
			return RayHit{
				Distance:     (yi - float64(y)) * in.tables.invSin[angle],
				Boundary:     xBound,
				Intersection: int(yi),
			}
		}
		yi += yStep
		xBound += xDelta
	}

	panic(fmt.Sprintf("raycast: vertical scan escaped the world at angle %d from (%d, %d)", angle, x, y))
}

// FindHorizontalWall is FindVerticalWall for the lines y = k*CellSize.
func (in *Intersector) FindHorizontalWall(x, y, angle int) RayHit {
	a := in.tables.angles
	cell := in.metrics.CellSize

	var yBound, yDelta, nextCell int
	if a.FacingDown(angle) {
		yBound = in.metrics.Snap(y) + cell
		yDelta = cell
	} else {
		yBound = in.metrics.Snap(y)
		yDelta = -cell
		nextCell = -1
	}

	xi := in.tables.invTan[angle]*float64(yBound-y) + float64(x)
	xStep := in.tables.xStep[angle]

	for yBound >= 0 && yBound < in.metrics.WorldSize {
		cellX := in.metrics.CellOf(int(xi))
		cellY := in.metrics.CellOf(yBound + nextCell)
		if in.grid.IsWall(cellX, cellY) {
			return RayHit{
				Distance:     (xi - float64(x)) * in.tables.invCos[angle],
				Boundary:     yBound,
				Intersection: int(xi),
			}
		}
		xi += xStep
		yBound += yDelta
	}

	panic(fmt.Sprintf("raycast: horizontal scan escaped the world at angle %d from (%d, %d)", angle, x, y))
}
