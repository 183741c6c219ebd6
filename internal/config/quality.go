package config

import (
	"fmt"
	"runtime"
)

// QualityPreset represents a named trade-off between image quality and speed.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
	QualityUltra  QualityPreset = "ultra"
)

// QualityPresets lists the presets from cheapest to most expensive.
func QualityPresets() []QualityPreset {
	return []QualityPreset{QualityLow, QualityMedium, QualityHigh, QualityUltra}
}

// ParseQualityPreset validates a preset name.
func ParseQualityPreset(s string) (QualityPreset, error) {
	for _, p := range QualityPresets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown quality preset %q", ErrInvalid, s)
}

// ApplyQualityPreset modifies the config based on a quality preset.
// Medium leaves the loaded values alone.
func ApplyQualityPreset(cfg *Config, preset QualityPreset) {
	cpus := runtime.NumCPU()

	switch preset {
	case QualityLow:
		cfg.Render.Workers = 1
		cfg.Render.TickRate = 20
		cfg.Window.Scale = 4
	case QualityHigh:
		cfg.Render.Workers = max(cpus/2, 1)
		cfg.Render.TickRate = 30
		cfg.Window.Scale = 2
	case QualityUltra:
		cfg.Render.Workers = cpus
		cfg.Render.TickRate = 60
		cfg.Window.Scale = 1
	}
}
