package grid

// Side is the direction a wall face looks, towards the open cell.
type Side int

const (
	FaceNorth Side = iota
	FaceEast
	FaceSouth
	FaceWest
)

func (s Side) String() string {
	switch s {
	case FaceNorth:
		return "north"
	case FaceEast:
		return "east"
	case FaceSouth:
		return "south"
	case FaceWest:
		return "west"
	default:
		return "unknown"
	}
}

// Face is a maximal straight run of wall boundary bordering open cells, in
// world units. X1,Y1 is the end with the smaller coordinate.
type Face struct {
	Side           Side
	X1, Y1, X2, Y2 int
	Cells          int // cell edges merged into the run
}

// Faces extracts every wall face that can be seen from an open cell.
// Adjacent cell edges on the same grid line and side are merged, so a
// straight wall of any length yields one face.
func (g *Grid) Faces(m Metrics) []Face {
	var faces []Face
	for line := 0; line < g.size; line++ {
		y := line
		faces = g.appendRuns(faces, m, FaceNorth, line, func(x int) bool { return g.IsWall(x, y) && !g.IsWall(x, y-1) })
		faces = g.appendRuns(faces, m, FaceSouth, line, func(x int) bool { return g.IsWall(x, y) && !g.IsWall(x, y+1) })
	}
	for line := 0; line < g.size; line++ {
		x := line
		faces = g.appendRuns(faces, m, FaceWest, line, func(y int) bool { return g.IsWall(x, y) && !g.IsWall(x-1, y) })
		faces = g.appendRuns(faces, m, FaceEast, line, func(y int) bool { return g.IsWall(x, y) && !g.IsWall(x+1, y) })
	}
	return faces
}

// appendRuns walks one row (north/south) or column (east/west) of cells and
// emits a face for every run of exposed edges.
func (g *Grid) appendRuns(faces []Face, m Metrics, side Side, line int, exposed func(i int) bool) []Face {
	cs := m.CellSize
	at := line * cs
	if side == FaceSouth || side == FaceEast {
		at += cs
	}

	start := -1
	for i := 0; i <= g.size; i++ {
		if i < g.size && exposed(i) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start < 0 {
			continue
		}

		f := Face{Side: side, Cells: i - start}
		if side == FaceNorth || side == FaceSouth {
			f.X1, f.Y1, f.X2, f.Y2 = start*cs, at, i*cs, at
		} else {
			f.X1, f.Y1, f.X2, f.Y2 = at, start*cs, at, i*cs
		}
		faces = append(faces, f)
		start = -1
	}
	return faces
}
