package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Size != 10 {
		t.Errorf("expected size 10, got %d", cfg.Size)
	}
	if cfg.Speed != 500 {
		t.Errorf("expected speed 500, got %d", cfg.Speed)
	}
	if cfg.Interval() != 500*time.Millisecond {
		t.Errorf("expected 500ms interval, got %v", cfg.Interval())
	}
}

func TestSpeedControls(t *testing.T) {
	tests := []struct {
		name string
		fn   func(int) int
		in   int
		want int
	}{
		{"faster", Faster, 500, 400},
		{"faster at floor", Faster, 100, 100},
		{"slower", Slower, 500, 600},
		{"slower at ceiling", Slower, 1000, 1000},
		{"faster from out of range", Faster, 5000, 1000},
	}

	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("%s(%d): expected %d, got %d", tt.name, tt.in, tt.want, got)
		}
	}
}

func TestSizeControls(t *testing.T) {
	tests := []struct {
		name string
		fn   func(int) int
		in   int
		want int
	}{
		{"grow", Grow, 10, 15},
		{"grow at ceiling", Grow, 50, 50},
		{"shrink", Shrink, 10, 5},
		{"shrink at floor", Shrink, 5, 5},
		{"shrink from zero", Shrink, 0, 5},
	}

	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("%s(%d): expected %d, got %d", tt.name, tt.in, tt.want, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	cfg := &Config{Speed: 20, Size: 400, Low: 0, High: -3}
	cfg.Normalize()

	if cfg.Speed != MinSpeed {
		t.Errorf("expected speed %d, got %d", MinSpeed, cfg.Speed)
	}
	if cfg.Size != MaxSize {
		t.Errorf("expected size %d, got %d", MaxSize, cfg.Size)
	}
	if cfg.Low != DefaultLow || cfg.High != DefaultLow {
		t.Errorf("expected range [%d,%d], got [%d,%d]", DefaultLow, DefaultLow, cfg.Low, cfg.High)
	}
	if cfg.Generator != DefaultGenerator || cfg.Theme != DefaultTheme {
		t.Errorf("expected defaults to be filled in, got %q/%q", cfg.Generator, cfg.Theme)
	}
}

func TestNormalizeSnapsToSteps(t *testing.T) {
	tests := []struct {
		speed, size         int
		wantSpeed, wantSize int
	}{
		{550, 7, 600, 5},
		{540, 8, 500, 10},
		{149, 12, 100, 10},
		{999, 48, 1000, 50},
		{300, 15, 300, 15},
	}

	for _, tt := range tests {
		cfg := &Config{Speed: tt.speed, Size: tt.size}
		cfg.Normalize()
		if cfg.Speed != tt.wantSpeed || cfg.Size != tt.wantSize {
			t.Errorf("Normalize(%d, %d): expected %d/%d, got %d/%d",
				tt.speed, tt.size, tt.wantSpeed, tt.wantSize, cfg.Speed, cfg.Size)
		}
		if Grow(cfg.Size)%SizeStep != 0 || Faster(cfg.Speed)%SpeedStep != 0 {
			t.Errorf("controls left the grid from %d/%d", cfg.Speed, cfg.Size)
		}
	}
}

func TestLoadIntoKeepsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speed.yaml")
	if err := os.WriteFile(path, []byte("speed: 200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := GetPreset("worst")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Speed != 200 {
		t.Errorf("expected speed 200 from file, got %d", cfg.Speed)
	}
	if cfg.Size != 15 || cfg.Generator != "reversed" || cfg.Theme != "sunset" {
		t.Errorf("preset fields were lost: %+v", *cfg)
	}

	if err := LoadInto(filepath.Join(t.TempDir(), "missing.yaml"), cfg); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortviz.yaml")
	cfg := DefaultConfig()
	cfg.Size = 25
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", *cfg, *loaded)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("size: 35\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Size != 35 || cfg.Speed != DefaultSpeed {
		t.Errorf("expected size 35 speed %d, got %d %d", DefaultSpeed, cfg.Size, cfg.Speed)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("size: [nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("worst")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Generator != "reversed" {
		t.Errorf("expected reversed generator, got %s", cfg.Generator)
	}

	cfg.Size = 1
	if Presets["worst"].Size == 1 {
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
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}
