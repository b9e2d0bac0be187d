package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsFigureEight(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "figure8" {
		t.Errorf("expected figure8, got %s", cfg.Name)
	}
	if cfg.G != 1 {
		t.Errorf("figure8 requires G=1, got %g", cfg.G)
	}
	if len(cfg.Bodies) != 3 {
		t.Fatalf("expected 3 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.Bodies[0].X != -0.97000436 || cfg.Bodies[0].VY != 0.4323657300 {
		t.Errorf("unexpected body 0: %+v", cfg.Bodies[0])
	}
	if cfg.Duration != Figure8Period*6 {
		t.Errorf("expected six periods, got %g", cfg.Duration)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		if GetPreset(name) == nil {
			t.Errorf("preset %s not constructible", name)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestPresetsAreIndependent(t *testing.T) {
	a := GetPreset("figure8")
	a.Bodies[0].Mass = 99

	b := GetPreset("figure8")
	if b.Bodies[0].Mass == 99 {
		t.Error("presets share state between calls")
	}
}

func TestRingIsBalanced(t *testing.T) {
	cfg := Ring(5)
	if len(cfg.Bodies) != 5 {
		t.Fatalf("expected 5 bodies, got %d", len(cfg.Bodies))
	}

	var px, py, cx, cy float64
	for _, b := range cfg.Bodies {
		px += b.Mass * b.VX
		py += b.Mass * b.VY
		cx += b.Mass * b.X
		cy += b.Mass * b.Y
	}
	if math.Abs(px) > 1e-12 || math.Abs(py) > 1e-12 {
		t.Errorf("net momentum (%g, %g) should vanish", px, py)
	}
	if math.Abs(cx) > 1e-12 || math.Abs(cy) > 1e-12 {
		t.Errorf("center of mass (%g, %g) should be at the origin", cx, cy)
	}
}

func TestAsteroidsSeeded(t *testing.T) {
	a := Asteroids(7)
	b := Asteroids(7)
	c := Asteroids(8)

	if len(a.Bodies) != 52 {
		t.Fatalf("expected Earth-Moon plus 50 bodies, got %d", len(a.Bodies))
	}
	if a.Bodies[10] != b.Bodies[10] {
		t.Error("same seed should reproduce the same cloud")
	}
	if a.Bodies[10] == c.Bodies[10] {
		t.Error("different seeds should produce different clouds")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	orig := GetPreset("binary")
	orig.Strict = true
	if err := Save(path, orig); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != orig.Name || loaded.G != orig.G || loaded.Dt != orig.Dt {
		t.Errorf("round trip changed config: %+v vs %+v", loaded, orig)
	}
	if !loaded.Strict {
		t.Error("strict flag lost in round trip")
	}
	if len(loaded.Bodies) != len(orig.Bodies) {
		t.Fatalf("body count changed: %d vs %d", len(loaded.Bodies), len(orig.Bodies))
	}
	for i := range orig.Bodies {
		if loaded.Bodies[i] != orig.Bodies[i] {
			t.Errorf("body %d changed: %+v vs %+v", i, loaded.Bodies[i], orig.Bodies[i])
		}
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	minimal := "bodies:\n  - mass: 1\n    x: 1\n"
	if err := os.WriteFile(path, []byte(minimal), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.G != DefaultG {
		t.Errorf("expected default G %g, got %g", DefaultG, loaded.G)
	}
	if loaded.Dt != DefaultDt {
		t.Errorf("expected default dt %g, got %g", DefaultDt, loaded.Dt)
	}
	if loaded.SampleEvery != DefaultSampleEvery {
		t.Errorf("expected default stride %d, got %d", DefaultSampleEvery, loaded.SampleEvery)
	}
}

func TestGravityBodies(t *testing.T) {
	cfg := GetPreset("earthmoon")
	bodies := cfg.GravityBodies()

	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if bodies[1].Mass != cfg.Bodies[1].Mass || bodies[1].VX != cfg.Bodies[1].VX {
		t.Errorf("conversion mismatch: %+v vs %+v", bodies[1], cfg.Bodies[1])
	}
}
