package raycast

import (
	"fmt"
	"math"
)

// Tables holds every per-angle value the inner loop needs. It is built once
// and never written again, so it can be shared between goroutines.
type Tables struct {
	angles Angles

	tan    []float64
	invTan []float64

	// Signed distance between consecutive grid lines along each axis.
	xStep []float64
	yStep []float64

	// invSin has A90 extra entries at the end so that invCos can be a view
	// into it: cos(a) == sin(a + 90).
	invSin []float64
	invCos []float64

	// viewFilter[ray] = K / cos(ray angle relative to the view direction).
	viewFilter []float64
}

// NewTables builds the lookup tables for the angle system, cell size and
// display scale K.
func NewTables(angles Angles, cellSize int, viewScale float64) (*Tables, error) {
	// A tenth of a unit keeps every table angle off the axes.
	return buildTables(angles, cellSize, viewScale, angles.RadiansPerUnit*0.1)
}

func buildTables(angles Angles, cellSize int, viewScale, epsilon float64) (*Tables, error) {
	n := angles.A360
	cell := float64(cellSize)

	t := &Tables{
		angles:     angles,
		tan:        make([]float64, n),
		invTan:     make([]float64, n),
		xStep:      make([]float64, n),
		yStep:      make([]float64, n),
		invSin:     make([]float64, n+angles.A90),
		viewFilter: make([]float64, 2*angles.HalfFOV+1),
	}

	for ang := 0; ang < n; ang++ {
		rad := epsilon + angles.Radians(ang)
		t.tan[ang] = math.Tan(rad)
		t.invTan[ang] = 1 / t.tan[ang]

		// Raw tangents carry the wrong sign in three quadrants, so the
		// direction of each step comes from the half-plane instead.
		if angles.FacingDown(ang) {
			t.yStep[ang] = math.Abs(t.tan[ang] * cell)
		} else {
			t.yStep[ang] = -math.Abs(t.tan[ang] * cell)
		}
		if angles.FacingLeft(ang) {
			t.xStep[ang] = -math.Abs(t.invTan[ang] * cell)
		} else {
			t.xStep[ang] = math.Abs(t.invTan[ang] * cell)
		}

		if degenerate(t.xStep[ang]) || degenerate(t.yStep[ang]) {
			return nil, fmt.Errorf("%w: angle %d has x step %g, y step %g",
				ErrDegenerateStep, ang, t.xStep[ang], t.yStep[ang])
		}

		t.invSin[ang] = 1 / math.Sin(rad)
	}
	copy(t.invSin[n:], t.invSin[:angles.A90])
	t.invCos = t.invSin[angles.A90 : angles.A90+n]

	for ang := -angles.HalfFOV; ang <= angles.HalfFOV; ang++ {
		rad := epsilon + angles.Radians(ang)
		t.viewFilter[ang+angles.HalfFOV] = viewScale / math.Cos(rad)
	}

	return t, nil
}

func degenerate(step float64) bool {
	return step == 0 || math.IsNaN(step) || math.IsInf(step, 0)
}

// Angles returns the angle system the tables were built for.
func (t *Tables) Angles() Angles { return t.angles }

func (t *Tables) Tan(angle int) float64    { return t.tan[angle] }
func (t *Tables) InvTan(angle int) float64 { return t.invTan[angle] }
func (t *Tables) XStep(angle int) float64  { return t.xStep[angle] }
func (t *Tables) YStep(angle int) float64  { return t.yStep[angle] }
func (t *Tables) InvSin(angle int) float64 { return t.invSin[angle] }
func (t *Tables) InvCos(angle int) float64 { return t.invCos[angle] }

// ViewFilter returns the fish-eye correction for a screen column.
func (t *Tables) ViewFilter(ray int) float64 { return t.viewFilter[ray] }
