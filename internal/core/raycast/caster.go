package raycast

import (
	"fmt"
	"image/color"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/grid"
)

// SeamThreshold is the largest offset into a cell, in world units, at which
// a wall hit is drawn in the seam color instead of the face color.
const SeamThreshold = 1

// Viewport is the screen rectangle the 3D view is drawn into.
type Viewport struct {
	Left, Top     int
	Width, Height int
}

func (v Viewport) Right() int  { return v.Left + v.Width }
func (v Viewport) Bottom() int { return v.Top + v.Height }

// Horizon is the screen row every wall sliver is centered on.
func (v Viewport) Horizon() int { return v.Top + v.Height/2 }

// Colors used for one frame of the view.
type Colors struct {
	Ceiling        color.Color
	Floor          color.Color
	VerticalWall   color.Color
	HorizontalWall color.Color
	Seam           color.Color
	Outline        color.Color
}

// DefaultColors returns the stock palette choices.
func DefaultColors() Colors {
	return Colors{
		Ceiling:        render.Gray.RGBA(),
		Floor:          render.Brown.RGBA(),
		VerticalWall:   render.LightGreen.RGBA(),
		HorizontalWall: render.DarkGreen.RGBA(),
		Seam:           render.White.RGBA(),
		Outline:        render.DarkRed.RGBA(),
	}
}

// Options configures a Caster.
type Options struct {
	Viewport   Viewport
	FOVDegrees int
	CellSize   int
	// ViewScale is the constant K in sliver height = K / corrected distance.
	ViewScale float64
	Colors    Colors

	// Workers > 1 casts the columns of a frame on that many goroutines.
	Workers int
	// OutlineViewport draws a one pixel frame around the view.
	OutlineViewport bool
}

// Column is the result of casting one ray.
type Column struct {
	Ray   int // screen column relative to the viewport
	Angle int
	Axis  Axis
	Hit   RayHit
	Seam  bool

	Color  color.Color
	Top    int
	Height int
}

// HitPoint returns the world coordinates where the ray met the wall.
func (c Column) HitPoint() (x, y int) {
	if c.Axis == VerticalWall {
		return c.Hit.Boundary, c.Hit.Intersection
	}
	return c.Hit.Intersection, c.Hit.Boundary
}

// Caster renders the first-person view of a grid.
type Caster struct {
	opts        Options
	grid        *grid.Grid
	metrics     grid.Metrics
	angles      Angles
	tables      *Tables
	intersector *Intersector
}

// NewCaster builds the angle system, lookup tables and intersector for a grid.
func NewCaster(g *grid.Grid, opts Options) (*Caster, error) {
	vp := opts.Viewport
	if vp.Height <= 0 {
		return nil, fmt.Errorf("%w: height %d", ErrBadViewport, vp.Height)
	}
	if vp.Left < 0 || vp.Top < 0 {
		return nil, fmt.Errorf("%w: origin (%d, %d)", ErrBadViewport, vp.Left, vp.Top)
	}
	if opts.ViewScale <= 0 {
		return nil, fmt.Errorf("%w: view scale %g", ErrBadViewport, opts.ViewScale)
	}

	angles, err := NewAngles(vp.Width, opts.FOVDegrees)
	if err != nil {
		return nil, err
	}
	metrics, err := grid.NewMetrics(opts.CellSize, g.Size())
	if err != nil {
		return nil, err
	}
	tables, err := NewTables(angles, opts.CellSize, opts.ViewScale)
	if err != nil {
		return nil, err
	}

	if opts.Colors == (Colors{}) {
		opts.Colors = DefaultColors()
	}

	return &Caster{
		opts:        opts,
		grid:        g,
		metrics:     metrics,
		angles:      angles,
		tables:      tables,
		intersector: NewIntersector(g, metrics, tables),
	}, nil
}

func (c *Caster) Grid() *grid.Grid          { return c.grid }
func (c *Caster) Metrics() grid.Metrics     { return c.metrics }
func (c *Caster) Angles() Angles            { return c.angles }
func (c *Caster) Tables() *Tables           { return c.tables }
func (c *Caster) Viewport() Viewport        { return c.opts.Viewport }
func (c *Caster) Intersector() *Intersector { return c.intersector }
func (c *Caster) SetOutline(outline bool)   { c.opts.OutlineViewport = outline }
func (c *Caster) Outline() bool             { return c.opts.OutlineViewport }

// CastColumn casts the ray for screen column ray at the given absolute
// angle and resolves the nearer of the two wall hits.
func (c *Caster) CastColumn(ray, x, y, angle int) Column {
	vhit := c.intersector.FindVerticalWall(x, y, angle)
	hhit := c.intersector.FindHorizontalWall(x, y, angle)

	col := Column{Ray: ray, Angle: angle}
	if vhit.Distance < hhit.Distance {
		col.Axis = VerticalWall
		col.Hit = vhit
	} else {
		col.Axis = HorizontalWall
		col.Hit = hhit
	}
	col.Color, col.Seam = c.wallColor(col.Axis, col.Hit.Intersection)
	col.Height = c.SliverHeight(ray, col.Hit.Distance)
	col.Top = c.opts.Viewport.Horizon() - col.Height>>1
	return col
}

func (c *Caster) wallColor(axis Axis, intersection int) (color.Color, bool) {
	if c.metrics.Offset(intersection) <= SeamThreshold {
		return c.opts.Colors.Seam, true
	}
	if axis == VerticalWall {
		return c.opts.Colors.VerticalWall, false
	}
	return c.opts.Colors.HorizontalWall, false
}

// SliverHeight converts a hit distance into an on-screen wall height for a
// column, clamped to the viewport.
func (c *Caster) SliverHeight(ray int, distance float64) int {
	limit := c.opts.Viewport.Height
	if distance <= 0 {
		return limit
	}
	h := c.tables.ViewFilter(ray) / distance
	if h >= float64(limit) {
		return limit
	}
	if h < 0 {
		return 0
	}
	return int(h)
}

// Sweep casts one ray per column, left to right, starting half a field of
// view counterclockwise of viewAngle. Columns are returned in screen order
// whether or not they were computed in parallel.
func (c *Caster) Sweep(x, y, viewAngle int) []Column {
	n := c.angles.RayCount
	start := c.angles.Wrap(viewAngle - c.angles.HalfFOV)
	cols := make([]Column, n)

	workers := c.opts.Workers
	if workers <= 1 {
		for ray := 0; ray < n; ray++ {
			cols[ray] = c.CastColumn(ray, x, y, c.angles.Wrap(start+ray))
		}
		return cols
	}

	var g errgroup.Group
	g.SetLimit(workers)
	batch := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += batch {
		hi := min(lo+batch, n)
		g.Go(func() error {
			for ray := lo; ray < hi; ray++ {
				cols[ray] = c.CastColumn(ray, x, y, c.angles.Wrap(start+ray))
			}
			return nil
		})
	}
	// Workers never fail; a broken grid panics instead.
	_ = g.Wait()
	return cols
}

// RenderView draws the ceiling, the floor and one wall sliver per column for
// a viewer at (x, y) looking along viewAngle. The cast columns are returned
// so callers can overlay them elsewhere.
func (c *Caster) RenderView(s render.Surface, x, y, viewAngle int) []Column {
	c.clearView(s)

	cols := c.Sweep(x, y, viewAngle)
	left := c.opts.Viewport.Left
	for _, col := range cols {
		s.SetColor(col.Color)
		s.DrawVerticalLine(left+col.Ray, col.Top, col.Height)
	}
	return cols
}

func (c *Caster) clearView(s render.Surface) {
	vp := c.opts.Viewport
	horizon := vp.Horizon()

	s.SetColor(c.opts.Colors.Ceiling)
	s.DrawRect(render.RectFill, vp.Left, vp.Top, vp.Right(), horizon)
	s.SetColor(c.opts.Colors.Floor)
	s.DrawRect(render.RectFill, vp.Left, horizon, vp.Right(), vp.Bottom())

	if c.opts.OutlineViewport {
		s.SetColor(c.opts.Colors.Outline)
		s.DrawRect(render.RectOutline, vp.Left-1, vp.Top-1, vp.Right()+1, vp.Bottom()+1)
	}
}
