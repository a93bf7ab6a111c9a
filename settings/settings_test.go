package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/strafebot/movement"
)

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatalf("expected an error when the file already exists")
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", s)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[Movement]\nPreset = \"qw\"\nGravity = nan\nAirMaxSpeed = 30.0\n\n[Autopilot]\nKeyProfile = \"reverse\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Autopilot.KeyProfile != "reverse" || !s.Autopilot.Enabled {
		t.Fatalf("expected key profile to be read and the rest defaulted, got %+v", s.Autopilot)
	}
	if s.Simulation.TickDuration != 0.01 {
		t.Fatalf("expected default tick duration, got %v", s.Simulation.TickDuration)
	}

	p, replaced, err := s.Movement.Profile()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(replaced) != 1 || replaced[0] != "gravity" {
		t.Fatalf("expected gravity to be replaced, got %v", replaced)
	}
	if p.Gravity != movement.QWLike.Gravity || p.Air.MaxSpeed != 30 {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestMovementRoundTrip(t *testing.T) {
	for el := movement.Presets().Front(); el != nil; el = el.Next() {
		p, replaced, err := MovementFromProfile(el.Key, el.Value).Profile()
		if err != nil || len(replaced) != 0 {
			t.Fatalf("%s: expected a clean profile, got %v %v", el.Key, replaced, err)
		}
		if p.Gravity != el.Value.Gravity || p.Air != el.Value.Air || (p.AirTurning == nil) != (el.Value.AirTurning == nil) {
			t.Fatalf("%s: expected %+v, got %+v", el.Key, el.Value, p)
		}
	}

	m := DefaultSettings().Movement
	m.Preset = "cpm"
	if _, _, err := m.Profile(); err == nil {
		t.Fatalf("expected an error for an unknown preset")
	}
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.Simulation.TickDuration = -1
	s.Simulation.MaxFrameDuration = 0.001
	warnings, err := s.Validate()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if s.Simulation.TickDuration != 0.01 || s.Simulation.MaxFrameDuration != 0.01 {
		t.Fatalf("unexpected simulation settings %+v", s.Simulation)
	}

	s = DefaultSettings()
	s.Autopilot.KeyProfile = "triple-beat"
	if _, err := s.Validate(); err == nil {
		t.Fatalf("expected an error for an unknown key profile")
	}
	s = DefaultSettings()
	s.Environment.Map = "q3dm17"
	if _, err := s.Validate(); err == nil {
		t.Fatalf("expected an error for an unknown map")
	}
}
