package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/oomph-ac/strafebot/autopilot"
	"github.com/oomph-ac/strafebot/env"
	"github.com/oomph-ac/strafebot/movement"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for the trainer.
type Settings struct {
	Simulation struct {
		// TickDuration is the fixed timestep in seconds.
		TickDuration float32
		// MaxFrameDuration is the most simulated time a single frame may catch up on.
		MaxFrameDuration float32
		// Strict panics on non-finite movement values instead of replacing them.
		Strict bool
	}
	Movement Movement
	Autopilot struct {
		Enabled bool
		// KeyProfile is one of "standard", "reverse", "half-beat-left", "half-beat-right" or "player".
		KeyProfile string
		AutoHop    bool
		AutoMove   bool
		AutoTurn   bool
	}
	Environment struct {
		// Map is one of "runway", "freestyle" or "none".
		Map  string
		Seed uint64
	}
	Log struct {
		Level string
	}
	Sentry struct {
		DSN string
	}
	Debug struct {
		// StatsViewAddr enables the runtime statistics viewer on the address if set.
		StatsViewAddr string
	}
}

// Movement holds the movement profile. Preset names the profile the values default to.
type Movement struct {
	Preset string

	Gravity         float32
	JumpImpulse     float32
	StallSpeed      float32
	Friction        float32
	GroundMaxSpeed  float32
	GroundAccel     float32
	AirMaxSpeed     float32
	AirAccel        float32
	TurningEnabled  bool
	TurningMaxSpeed float32
	TurningAccel    float32
}

// MovementFromProfile returns the settings describing the profile.
func MovementFromProfile(preset string, p movement.Profile) Movement {
	m := Movement{
		Preset:         preset,
		Gravity:        p.Gravity,
		JumpImpulse:    p.JumpImpulse,
		StallSpeed:     p.Friction.StallSpeed,
		Friction:       p.Friction.Coefficient,
		GroundMaxSpeed: p.Ground.MaxSpeed,
		GroundAccel:    p.Ground.Accel,
		AirMaxSpeed:    p.Air.MaxSpeed,
		AirAccel:       p.Air.Accel,
		// Without an override the turning values mirror the air values, ready to be tuned.
		TurningMaxSpeed: p.Air.MaxSpeed,
		TurningAccel:    p.Air.Accel,
	}
	if p.AirTurning != nil {
		m.TurningEnabled = true
		m.TurningMaxSpeed = p.AirTurning.MaxSpeed
		m.TurningAccel = p.AirTurning.Accel
	}
	return m
}

// Profile returns the movement profile described by the settings, with every non-finite value replaced by
// the value of the preset. The names of the replaced values are returned alongside.
func (m Movement) Profile() (movement.Profile, []string, error) {
	defaults, ok := movement.Preset(m.Preset)
	if !ok {
		return movement.Profile{}, nil, fmt.Errorf("unknown movement preset %q", m.Preset)
	}
	p := movement.Profile{
		Gravity:     m.Gravity,
		JumpImpulse: m.JumpImpulse,
		Friction:    movement.Friction{StallSpeed: m.StallSpeed, Coefficient: m.Friction},
		Ground:      movement.Movement{MaxSpeed: m.GroundMaxSpeed, Accel: m.GroundAccel},
		Air:         movement.Movement{MaxSpeed: m.AirMaxSpeed, Accel: m.AirAccel},
	}
	if m.TurningEnabled {
		p.AirTurning = &movement.Movement{MaxSpeed: m.TurningMaxSpeed, Accel: m.TurningAccel}
	}
	p, replaced := p.Sanitize(defaults)
	return p, replaced, nil
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Simulation.TickDuration = 0.01
	s.Simulation.MaxFrameDuration = 0.2

	s.Movement = MovementFromProfile(movement.PresetVQ3, movement.VQ3Like)

	s.Autopilot.Enabled = true
	s.Autopilot.KeyProfile = autopilot.ProfileStandard
	s.Autopilot.AutoHop = true
	s.Autopilot.AutoMove = true
	s.Autopilot.AutoTurn = true

	s.Environment.Map = env.NameRunway
	s.Environment.Seed = 1

	s.Log.Level = "info"
	return s
}

// Validate replaces unusable simulation values with their defaults, returning a description of each
// replacement, and returns an error for unknown names.
func (s *Settings) Validate() ([]string, error) {
	var warnings []string
	defaults := DefaultSettings()
	positive := func(name string, v *float32, fallback float32) {
		if math32.IsNaN(*v) || math32.IsInf(*v, 0) || *v <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s=%v replaced with %v", name, *v, fallback))
			*v = fallback
		}
	}
	positive("Simulation.TickDuration", &s.Simulation.TickDuration, defaults.Simulation.TickDuration)
	positive("Simulation.MaxFrameDuration", &s.Simulation.MaxFrameDuration, defaults.Simulation.MaxFrameDuration)
	if s.Simulation.MaxFrameDuration < s.Simulation.TickDuration {
		warnings = append(warnings, fmt.Sprintf("Simulation.MaxFrameDuration=%v raised to the tick duration", s.Simulation.MaxFrameDuration))
		s.Simulation.MaxFrameDuration = s.Simulation.TickDuration
	}

	if _, ok := movement.Preset(s.Movement.Preset); !ok {
		return warnings, fmt.Errorf("unknown movement preset %q", s.Movement.Preset)
	}
	if _, ok := autopilot.KeyProfileByName(s.Autopilot.KeyProfile); !ok {
		return warnings, fmt.Errorf("unknown key profile %q", s.Autopilot.KeyProfile)
	}
	if _, err := env.ByName(s.Environment.Map, s.Environment.Seed); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %w", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %w", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	return settings, nil
}
