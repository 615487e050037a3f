package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/odesolve/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Expression != "(1 - x**2) / (x * y)" {
		t.Errorf("unexpected default expression %q", cfg.Expression)
	}
	if cfg.H <= 0 {
		t.Error("h should be positive")
	}
	if cfg.Xn <= cfg.X0 {
		t.Error("interval should be forward")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if len(cfg.Methods) != 2 {
		t.Errorf("expected euler and rk4, got %v", cfg.Methods)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")

	cfg := DefaultConfig()
	cfg.Expression = "y"
	cfg.X0, cfg.Xn, cfg.Y0, cfg.H = 0, 1, 1, 0.05
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Expression != "y" || loaded.H != 0.05 || loaded.Xn != 1 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("h: 0.01\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.H != 0.01 {
		t.Errorf("expected h=0.01, got %g", cfg.H)
	}
	if cfg.Expression != DefaultExpression || cfg.X0 != DefaultX0 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("h: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.H = 0
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrNonPositiveStep) {
		t.Errorf("expected ErrNonPositiveStep, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Expression = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty expression")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("growth")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Expression != "y" || cfg.Y0 != 1 {
		t.Errorf("unexpected preset %+v", cfg)
	}
	if cfg.Name != "growth" || len(cfg.Methods) != 2 {
		t.Errorf("preset defaults not filled: %+v", cfg)
	}

	cfg.H = 42
	if Presets["growth"].H == 42 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Fatalf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestLoadOver_KeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("h: 0.25\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("singular")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Expression != "1 / x" || cfg.X0 != -1 || cfg.H != 0.25 {
		t.Errorf("unexpected merge %+v", cfg)
	}
	if base.H != 0.5 {
		t.Error("base was modified")
	}
}
