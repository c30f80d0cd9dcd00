// Package raycast implements the grid-DDA ray casting engine: the angle
// lookup tables, the wall intersection search and the per-column sweep.
package raycast

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadViewport reports a viewport or field of view the angle tables
	// cannot be built for.
	ErrBadViewport = errors.New("invalid viewport")
	// ErrDegenerateStep reports a lookup table entry that resolved to a zero
	// grid step (a ray exactly parallel to an axis).
	ErrDegenerateStep = errors.New("degenerate step table entry")
)

// Angles is the discrete angle system. One unit is the angle between two
// adjacent screen columns, so a full turn has RayCount*360/FOV units.
// Angle 0 points east (+x), A90 south (+y), A180 west, A270 north.
type Angles struct {
	A90  int
	A180 int
	A270 int
	A360 int

	HalfFOV  int // half the field of view, in units
	RayCount int

	RadiansPerUnit float64
}

// NewAngles derives the angle system for a viewport width and field of view.
func NewAngles(viewportWidth, fovDegrees int) (Angles, error) {
	if viewportWidth < 2 {
		return Angles{}, fmt.Errorf("%w: width %d", ErrBadViewport, viewportWidth)
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return Angles{}, fmt.Errorf("%w: field of view %d degrees", ErrBadViewport, fovDegrees)
	}
	if (viewportWidth*360)%fovDegrees != 0 {
		return Angles{}, fmt.Errorf("%w: %d columns over %d degrees is not a whole number of units per turn",
			ErrBadViewport, viewportWidth, fovDegrees)
	}
	a360 := viewportWidth * 360 / fovDegrees
	if a360%4 != 0 {
		return Angles{}, fmt.Errorf("%w: %d units per turn cannot be split into quadrants", ErrBadViewport, a360)
	}

	return Angles{
		A90:            a360 / 4,
		A180:           a360 / 2,
		A270:           a360 - a360/4,
		A360:           a360,
		HalfFOV:        viewportWidth / 2,
		RayCount:       viewportWidth,
		RadiansPerUnit: 2 * math.Pi / float64(a360),
	}, nil
}

// Wrap folds any angle into [0, A360).
func (a Angles) Wrap(angle int) int {
	angle %= a.A360
	if angle < 0 {
		angle += a.A360
	}
	return angle
}

// Radians converts discrete units to radians.
func (a Angles) Radians(angle int) float64 {
	return float64(angle) * a.RadiansPerUnit
}

// FromDegrees converts degrees to the nearest discrete unit.
func (a Angles) FromDegrees(deg float64) int {
	return a.Wrap(int(math.Round(deg * float64(a.A360) / 360)))
}

// Degrees converts discrete units to degrees.
func (a Angles) Degrees(angle int) float64 {
	return float64(angle) * 360 / float64(a.A360)
}

// The four half-plane predicates below expect a wrapped angle.

// FacingRight reports whether a ray at angle moves towards +x.
func (a Angles) FacingRight(angle int) bool {
	return angle < a.A90 || angle >= a.A270
}

// FacingLeft reports whether a ray at angle moves towards -x.
func (a Angles) FacingLeft(angle int) bool {
	return angle >= a.A90 && angle < a.A270
}

// FacingDown reports whether a ray at angle moves towards +y.
func (a Angles) FacingDown(angle int) bool {
	return angle >= 0 && angle < a.A180
}

// FacingUp reports whether a ray at angle moves towards -y.
func (a Angles) FacingUp(angle int) bool {
	return angle >= a.A180 && angle < a.A360
}
