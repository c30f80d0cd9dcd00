package grid

import (
	"encoding/json"
	"fmt"
	"os"
)

// SpawnPoint is an optional start position stored with a level
type SpawnPoint struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Angle int `json:"angle"` // discrete angle units
}

// LevelData is the on-disk level format
type LevelData struct {
	Name        string      `json:"name"`
	Rows        []string    `json:"rows"`
	PlayerSpawn *SpawnPoint `json:"player_spawn,omitempty"`
}

// Level is a loaded grid plus its optional spawn
type Level struct {
	Grid  *Grid
	Spawn *SpawnPoint
}

// LoadLevel reads and validates a level JSON file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}

	var levelData LevelData
	if err := json.Unmarshal(data, &levelData); err != nil {
		return nil, fmt.Errorf("failed to parse level file %s: %w", path, err)
	}

	return NewLevel(&levelData)
}

// NewLevel builds a Level from already decoded data
func NewLevel(data *LevelData) (*Level, error) {
	g, err := New(data.Name, data.Rows)
	if err != nil {
		return nil, fmt.Errorf("invalid level %q: %w", data.Name, err)
	}

	if data.PlayerSpawn != nil {
		if err := g.CheckStart(data.PlayerSpawn.X, data.PlayerSpawn.Y); err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", data.Name, err)
		}
	}

	return &Level{Grid: g, Spawn: data.PlayerSpawn}, nil
}
