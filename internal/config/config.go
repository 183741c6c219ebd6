// Package config provides YAML-based configuration loading and quality
// presets for the raycaster.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-raycaster/internal/render"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config contains all tunable settings.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Lighting LightingConfig `yaml:"lighting"`
	Player   PlayerConfig   `yaml:"player"`
	Window   WindowConfig   `yaml:"window"`
	Levels   LevelsConfig   `yaml:"levels"`
}

// RenderConfig defines projection and frame pacing parameters.
type RenderConfig struct {
	FOVDegrees float64 `yaml:"fov_degrees"`
	PlaneWidth float64 `yaml:"plane_width"`
	Workers    int     `yaml:"workers"`   // Goroutines casting rays; 1 is serial
	TickRate   int     `yaml:"tick_rate"` // Simulation and redraw ticks per second
}

// LightConfig is one lighting model.
type LightConfig struct {
	Power   float64 `yaml:"power"`
	Ambient float64 `yaml:"ambient"`
	Diffuse float64 `yaml:"diffuse"`
}

// LightingConfig holds the wall and flat lighting models.
type LightingConfig struct {
	Walls LightConfig `yaml:"walls"`
	Flats LightConfig `yaml:"flats"`
}

// PlayerConfig defines movement and collision parameters.
type PlayerConfig struct {
	Radius           float64 `yaml:"radius"`
	Speed            float64 `yaml:"speed"`
	TurnDegrees      float64 `yaml:"turn_degrees"`
	StepHeight       float64 `yaml:"step_height"`
	EyeHeight        float64 `yaml:"eye_height"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // Degrees per pixel or cell of mouse motion
}

// WindowConfig defines the desktop window.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"` // Window pixels per rendered pixel
}

// LevelsConfig locates levels.
type LevelsConfig struct {
	Dir     string `yaml:"dir"`     // User level directory; "~" is expanded
	Default string `yaml:"default"` // Level played when none is named
}

// RenderOptions converts the render and lighting sections for render.New.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		FOV:        c.Render.FOVDegrees,
		PlaneWidth: c.Render.PlaneWidth,
		Workers:    c.Render.Workers,
		Walls:      render.Lighting(c.Lighting.Walls),
		Flats:      render.Lighting(c.Lighting.Flats),
	}
}

// PlayerSettings converts the player section for world.NewPlayer.
func (c Config) PlayerSettings() world.PlayerConfig {
	return world.PlayerConfig{
		Radius:      c.Player.Radius,
		Speed:       c.Player.Speed,
		TurnDegrees: c.Player.TurnDegrees,
		StepHeight:  c.Player.StepHeight,
		EyeHeight:   c.Player.EyeHeight,
	}
}

// Validate rejects settings the renderer or player cannot work with.
func (c Config) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Render.FOVDegrees > 0 && c.Render.FOVDegrees < 180, "render.fov_degrees must be in (0, 180)"},
		{c.Render.PlaneWidth > 0, "render.plane_width must be positive"},
		{c.Render.Workers >= 1, "render.workers must be at least 1"},
		{c.Render.TickRate > 0, "render.tick_rate must be positive"},
		{validLight(c.Lighting.Walls), "lighting.walls needs a positive power and factors in [0, 1]"},
		{validLight(c.Lighting.Flats), "lighting.flats needs a positive power and factors in [0, 1]"},
		{c.Player.Radius > 0 && c.Player.Radius < 0.5, "player.radius must be in (0, 0.5)"},
		{c.Player.Speed > 0, "player.speed must be positive"},
		{c.Player.TurnDegrees > 0, "player.turn_degrees must be positive"},
		{c.Player.StepHeight >= 0, "player.step_height must not be negative"},
		{c.Player.EyeHeight > 0, "player.eye_height must be positive"},
		{c.Player.MouseSensitivity >= 0, "player.mouse_sensitivity must not be negative"},
		{c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive"},
		{c.Window.Scale > 0, "window.scale must be positive"},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, check.what)
		}
	}
	return nil
}

func validLight(l LightConfig) bool {
	return l.Power > 0 && l.Ambient >= 0 && l.Ambient <= 1 && l.Diffuse >= 0 && l.Diffuse <= 1
}
