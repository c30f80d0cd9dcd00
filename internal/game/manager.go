package game

import (
	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/controls"
	"chosenoffset.com/raycaster/internal/logging"
	"chosenoffset.com/raycaster/internal/render"
)

// Manager handles the run state around the Game: pausing when the window
// loses focus and quitting on request. It is the render.Game the engines
// run.
type Manager struct {
	State    State
	Game     *Game
	InputMgr render.InputManager

	log *logrus.Entry
}

// NewManager creates a new game manager.
func NewManager(g *Game, input render.InputManager, log logrus.FieldLogger) *Manager {
	return &Manager{
		State:    StatePlaying,
		Game:     g,
		InputMgr: input,
		log:      logging.Component(log, "manager"),
	}
}

// Update checks for quit and pause, then updates the game while playing.
func (m *Manager) Update() error {
	if m.InputMgr.QuitRequested() || m.Game.Bindings.Held(m.InputMgr, controls.Quit) {
		m.log.WithField("frames", m.Game.FrameCount).Info("Quit requested.")
		return render.ErrQuit
	}

	next := StatePlaying
	if m.InputMgr.PauseRequested() {
		next = StatePaused
	}
	if next != m.State {
		m.log.WithFields(logrus.Fields{"from": m.State, "to": next}).Info("State changed.")
		m.State = next
	}

	if m.State == StatePaused {
		return nil
	}
	return m.Game.Update()
}

// Draw keeps drawing while paused so the window is never blank.
func (m *Manager) Draw(screen render.Surface) {
	m.Game.Draw(screen)
}

// Layout delegates to the game.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.Game.Layout(outsideWidth, outsideHeight)
}
