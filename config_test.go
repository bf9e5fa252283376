package glitch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
effect: snow
count: 250
colors: ["#fff", "rgb(1,2,3)"]
mouseInteraction: true
direction: left
seed: 7
`)
	cfg, err := ParseConfig("snow.yaml", data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Effect != FamilySnow || cfg.Count != 250 || cfg.Direction != DirectionLeft || cfg.Seed != 7 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Colors) != 2 || !cfg.Interactive() {
		t.Errorf("colors %v, interactive %v", cfg.Colors, cfg.Interactive())
	}
}

func TestParseConfigUnknownEffect(t *testing.T) {
	_, err := ParseConfig("x.yaml", []byte("effect: lava\n"))
	if !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("err = %v, want ErrUnknownEffect", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "x.yaml" {
		t.Errorf("err = %#v, want *ParseError for x.yaml", err)
	}
}

func TestParseConfigReportsLine(t *testing.T) {
	_, err := ParseConfig("bad.yaml", []byte("effect: particles\ncount: lots\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2 (%v)", pe.Line, err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fog.yaml")
	if err := os.WriteFile(path, []byte("effect: fog\nresolution: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Effect != FamilyFog || cfg.Resolution != 8 {
		t.Errorf("cfg = %+v", cfg)
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestParseFamily(t *testing.T) {
	for _, f := range Families {
		got, err := ParseFamily(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFamily(%q) = %q, %v", f, got, err)
		}
	}
	if _, err := ParseFamily("Particles"); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("names are case sensitive, got %v", err)
	}
}
