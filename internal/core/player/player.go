// Package player moves the viewer through the grid and keeps it out of the
// walls.
package player

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/raycaster/internal/controls"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/grid"
)

// ErrInvalidSettings reports movement settings the collision code cannot
// honor.
var ErrInvalidSettings = errors.New("invalid player settings")

// Settings tune movement, in world units and angle units per tick.
type Settings struct {
	WalkSpeed     int
	RotationSpeed int
	// CollisionMargin is the closest the viewer may get to a wall face.
	CollisionMargin int
}

// DefaultSettings returns the stock speeds for a 64 unit cell.
func DefaultSettings() Settings {
	return Settings{
		WalkSpeed:       8,
		RotationSpeed:   16,
		CollisionMargin: 32,
	}
}

// Validate checks the settings against a cell size.
func (s Settings) Validate(cellSize int) error {
	if s.WalkSpeed <= 0 {
		return fmt.Errorf("%w: walk speed %d", ErrInvalidSettings, s.WalkSpeed)
	}
	if s.RotationSpeed <= 0 {
		return fmt.Errorf("%w: rotation speed %d", ErrInvalidSettings, s.RotationSpeed)
	}
	if s.CollisionMargin <= 0 || s.CollisionMargin > cellSize/2 {
		return fmt.Errorf("%w: collision margin %d must be in (0, %d]", ErrInvalidSettings, s.CollisionMargin, cellSize/2)
	}
	// A single step must never carry the viewer past the margin into the
	// next cell, or the per-axis push back could miss the wall.
	if s.WalkSpeed >= s.CollisionMargin {
		return fmt.Errorf("%w: walk speed %d must be below the collision margin %d",
			ErrInvalidSettings, s.WalkSpeed, s.CollisionMargin)
	}
	return nil
}

// CellPicker maps a pointer position to a grid cell.
type CellPicker interface {
	CellAt(x, y int) (cellX, cellY int, ok bool)
}

// Player is the viewer: a position in world units, a view angle and the
// movement delta of the current tick.
type Player struct {
	X, Y  int
	Angle int

	// Delta applied this tick, before truncation. Collision uses its sign.
	DX, DY float64

	grid     *grid.Grid
	metrics  grid.Metrics
	angles   raycast.Angles
	settings Settings
}

// New places a player in the center of a start cell.
func New(g *grid.Grid, m grid.Metrics, angles raycast.Angles, s Settings, cellX, cellY, angle int) (*Player, error) {
	if err := s.Validate(m.CellSize); err != nil {
		return nil, err
	}
	if err := g.CheckStart(cellX, cellY); err != nil {
		return nil, err
	}
	return &Player{
		X:        m.CellCenter(cellX),
		Y:        m.CellCenter(cellY),
		Angle:    angles.Wrap(angle),
		grid:     g,
		metrics:  m,
		angles:   angles,
		settings: s,
	}, nil
}

// Cell returns the cell the player stands in.
func (p *Player) Cell() (int, int) {
	return p.metrics.CellOf(p.X), p.metrics.CellOf(p.Y)
}

// Settings returns the movement settings.
func (p *Player) Settings() Settings {
	return p.settings
}

// Update applies one tick of input. A pointer click on an open cell moves
// the player straight there and skips keyboard movement for the tick.
// The picker may be nil when there is nothing to click on.
func (p *Player) Update(in render.InputManager, b *controls.Bindings, picker CellPicker) {
	p.DX, p.DY = 0, 0

	if picker != nil && in.IsMouseButtonPressed(render.MouseButtonLeft) {
		if cx, cy, ok := picker.CellAt(in.GetCursorPosition()); ok && p.CenterInCell(cx, cy) {
			return
		}
	}

	if b.Held(in, controls.RotateLeft) {
		p.Angle = p.angles.Wrap(p.Angle - p.settings.RotationSpeed)
	}
	if b.Held(in, controls.RotateRight) {
		p.Angle = p.angles.Wrap(p.Angle + p.settings.RotationSpeed)
	}

	walk := float64(p.settings.WalkSpeed)
	rad := p.angles.Radians(p.Angle)
	switch {
	case b.Held(in, controls.MoveForward):
		p.DX = math.Cos(rad) * walk
		p.DY = math.Sin(rad) * walk
	case b.Held(in, controls.MoveBackward):
		p.DX = -math.Cos(rad) * walk
		p.DY = -math.Sin(rad) * walk
	}

	p.X += int(p.DX)
	p.Y += int(p.DY)
}

// CenterInCell moves the player to the middle of a cell. Walls are refused.
func (p *Player) CenterInCell(cellX, cellY int) bool {
	if p.grid.IsWall(cellX, cellY) {
		return false
	}
	p.X = p.metrics.CellCenter(cellX)
	p.Y = p.metrics.CellCenter(cellY)
	return true
}

// CheckCollisions resolves the position against the surrounding walls.
//
// A player found inside a wall is moved to the first valid cell. Otherwise
// each axis is handled on its own: when moving towards a wall and closer to
// it than the margin, the position is pushed back by exactly the overshoot,
// which lets the player slide along walls. It reports whether the player
// had to be respawned.
func (p *Player) CheckCollisions() bool {
	m := p.metrics
	cx, cy := m.CellOf(p.X), m.CellOf(p.Y)

	if p.grid.IsWall(cx, cy) {
		p.X = m.CellCenter(grid.FirstValidCell)
		p.Y = m.CellCenter(grid.FirstValidCell)
		return true
	}

	margin := p.settings.CollisionMargin
	far := m.CellSize - margin

	offX := m.Offset(p.X)
	switch {
	case p.DX > 0 && offX > far && p.grid.IsWall(cx+1, cy):
		p.X -= offX - far
	case p.DX < 0 && offX < margin && p.grid.IsWall(cx-1, cy):
		p.X += margin - offX
	}

	offY := m.Offset(p.Y)
	switch {
	case p.DY > 0 && offY > far && p.grid.IsWall(cx, cy+1):
		p.Y -= offY - far
	case p.DY < 0 && offY < margin && p.grid.IsWall(cx, cy-1):
		p.Y += margin - offY
	}
	return false
}
