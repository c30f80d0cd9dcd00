package game

import (
	"chosenoffset.com/raycaster/internal/render"
)

// Draw renders the 3D view and, when enabled, the minimap with the rays
// of this frame.
func (g *Game) Draw(screen render.Surface) {
	p := g.Player
	cols := g.Caster.RenderView(screen, p.X, p.Y, p.Angle)

	if g.ShowMinimap {
		g.Minimap.Draw(screen, p.X, p.Y, cols)
	}
}
