package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/raycaster/internal/controls"
	"chosenoffset.com/raycaster/internal/render"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}

	a, err := cfg.Angles()
	if err != nil {
		t.Fatalf("Angles failed: %v", err)
	}
	if a.A360 != 1920 || a.RayCount != 320 {
		t.Errorf("Expected 1920 units and 320 rays, got %d and %d", a.A360, a.RayCount)
	}
	if vp := cfg.Viewport(); vp.Right() != 320 || vp.Horizon() != 120 {
		t.Errorf("Unexpected viewport %+v", vp)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.View.Width != 320 {
		t.Errorf("Expected default view width 320, got %d", cfg.View.Width)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"view": {"width": 160, "height": 120, "fov_degrees": 60, "view_scale": 7500},
		"minimap": {"enabled": false},
		"controls": {"quit": ["Space"]},
		"render": {"workers": 4, "seam": 14}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.View.Width != 160 || cfg.Minimap.Enabled {
		t.Errorf("Expected overrides to apply, got %+v %+v", cfg.View, cfg.Minimap)
	}
	// Sections not mentioned keep their defaults.
	if cfg.World.CellSize != 64 || cfg.Player.WalkSpeed != 8 || cfg.Render.Floor != render.Brown {
		t.Errorf("Expected untouched fields to keep defaults")
	}

	opts := cfg.CasterOptions()
	if opts.Workers != 4 || opts.Colors.Seam != render.Yellow.RGBA() {
		t.Errorf("Unexpected caster options %+v", opts)
	}

	b, err := cfg.Bindings()
	if err != nil {
		t.Fatalf("Bindings failed: %v", err)
	}
	if keys := b.Keys(controls.Quit); len(keys) != 1 || keys[0] != render.KeySpace {
		t.Errorf("Expected quit bound to Space, got %v", keys)
	}
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"tps", func(c *Config) { c.Window.TPS = 0 }},
		{"viewport outside window", func(c *Config) { c.View.Left = 400 }},
		{"fov", func(c *Config) { c.View.FOVDegrees = 70 }},
		{"view scale", func(c *Config) { c.View.ViewScale = 0 }},
		{"cell size", func(c *Config) { c.World.CellSize = 48 }},
		{"walk speed", func(c *Config) { c.Player.WalkSpeed = 40 }},
		{"margin", func(c *Config) { c.Player.CollisionMargin = 0 }},
		{"scale shift", func(c *Config) { c.Minimap.ScaleShift = 7 }},
		{"workers", func(c *Config) { c.Render.Workers = -1 }},
		{"color", func(c *Config) { c.Render.Seam = render.PaletteSize }},
		{"controls", func(c *Config) { c.Controls = map[string][]string{"jump": {"W"}} }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}
