package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.StepSize <= 0 {
		t.Error("step size should be positive")
	}
	if cfg.ParameterRange <= 0 {
		t.Error("parameter range should be positive")
	}
	if cfg.Velocity[0] != 1 {
		t.Errorf("expected default temporal velocity 1, got %f", cfg.Velocity[0])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Density = [4]float64{1, 2, 3, 4}
	cfg.Flow[1] = [4]float64{0, 5, 0, 0}
	cfg.Start = StartConfig{T: 0.5, X: 1, Y: 2, Z: 3}

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Density != cfg.Density {
		t.Errorf("density mismatch: %v vs %v", loaded.Density, cfg.Density)
	}
	if loaded.Flow != cfg.Flow {
		t.Errorf("flow mismatch: %v vs %v", loaded.Flow, cfg.Flow)
	}
	if loaded.Start != cfg.Start {
		t.Errorf("start mismatch: %+v vs %+v", loaded.Start, cfg.Start)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense-core")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Density[0] == 0 {
		t.Error("dense-core should carry a nonzero density")
	}

	// The returned preset is a copy.
	cfg.StepSize = 99
	if Presets["dense-core"].StepSize == 99 {
		t.Error("mutation leaked into the preset table")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected at least one preset")
	}
}

func TestFlowVectors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow[2] = [4]float64{1, 2, 3, 4}

	f := cfg.FlowVectors()
	if f[2][3] != 4 {
		t.Errorf("expected flow[2][3] = 4, got %f", f[2][3])
	}
}

func TestStartPoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Start = StartConfig{T: 1, X: 2, Y: 3, Z: 4}

	p := cfg.StartPoint()
	if p.T != 1 {
		t.Errorf("expected t = 1, got %f", p.T)
	}
	if p.Spatial != [3]float64{2, 3, 4} {
		t.Errorf("unexpected spatial coordinates: %v", p.Spatial)
	}
}
