package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config %+v differs from Default() %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("render:\n  fov_degrees: 75\n  workers: 3\nwindow:\n  scale: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q", source)
	}
	if cfg.Render.FOVDegrees != 75 || cfg.Render.Workers != 3 || cfg.Window.Scale != 3 {
		t.Errorf("overrides not applied: %+v", cfg.Render)
	}
	// Unset fields keep their defaults.
	if cfg.Render.TickRate != 30 || cfg.Player.Radius != 0.3 || cfg.Levels.Default != "atrium" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad yaml", "render: [", nil},
		{"fov too wide", "render:\n  fov_degrees: 190\n", ErrInvalid},
		{"zero workers", "render:\n  workers: 0\n", ErrInvalid},
		{"ambient above one", "lighting:\n  walls:\n    ambient: 1.5\n", ErrInvalid},
		{"huge radius", "player:\n  radius: 0.6\n", ErrInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom file")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	t.Chdir(work)

	_, source, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if source != SourceEmbedded {
		t.Errorf("with no files, source = %q", source)
	}

	local := filepath.Join("configs", "raycast.yaml")
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("render:\n  tick_rate: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, source, _ := Load("")
	if source != local || cfg.Render.TickRate != 40 {
		t.Errorf("local config not used: source %q tick %d", source, cfg.Render.TickRate)
	}

	user := filepath.Join(home, ".raycast", "configs", "raycast.yaml")
	if err := os.MkdirAll(filepath.Dir(user), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(user, []byte("render:\n  tick_rate: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, source, _ = Load("")
	if source != user || cfg.Render.TickRate != 50 {
		t.Errorf("user config should win: source %q tick %d", source, cfg.Render.TickRate)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	opts := cfg.RenderOptions()
	if opts.FOV != 60 || opts.Walls.Power != 8 || opts.Flats.Power != 7 {
		t.Errorf("RenderOptions = %+v", opts)
	}
	p := cfg.PlayerSettings()
	if p.Radius != 0.3 || p.EyeHeight != 0.5 || p.StepHeight != 0.2 {
		t.Errorf("PlayerSettings = %+v", p)
	}
}

func TestQualityPresets(t *testing.T) {
	for _, p := range QualityPresets() {
		t.Run(string(p), func(t *testing.T) {
			cfg := Default()
			ApplyQualityPreset(&cfg, p)
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced an invalid config: %v", p, err)
			}
		})
	}

	cfg := Default()
	ApplyQualityPreset(&cfg, QualityMedium)
	if cfg != Default() {
		t.Error("medium should not change the config")
	}

	if _, err := ParseQualityPreset("cinematic"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if p, err := ParseQualityPreset("ultra"); err != nil || p != QualityUltra {
		t.Errorf("ParseQualityPreset(ultra) = %v, %v", p, err)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := ExpandHome("~/levels"); got != "/home/tester/levels" {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome changed an absolute path: %q", got)
	}
}
