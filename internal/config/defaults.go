package config

import (
	_ "embed"
)

//go:embed defaults/raycast.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			FOVDegrees: 60,
			PlaneWidth: 2,
			Workers:    1,
			TickRate:   30,
		},
		Lighting: LightingConfig{
			Walls: LightConfig{Power: 8, Ambient: 0.3, Diffuse: 0.7},
			Flats: LightConfig{Power: 7, Ambient: 0.3, Diffuse: 0.7},
		},
		Player: PlayerConfig{
			Radius:           0.3,
			Speed:            0.1,
			TurnDegrees:      4,
			StepHeight:       0.2,
			EyeHeight:        0.5,
			MouseSensitivity: 0.25,
		},
		Window: WindowConfig{
			Width:  640,
			Height: 400,
			Scale:  2,
		},
		Levels: LevelsConfig{
			Dir:     "~/.raycast/levels",
			Default: "atrium",
		},
	}
}
