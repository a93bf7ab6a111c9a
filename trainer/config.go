package trainer

import (
	"fmt"

	"github.com/oomph-ac/strafebot/autopilot"
	"github.com/oomph-ac/strafebot/env"
	"github.com/oomph-ac/strafebot/settings"
	"github.com/oomph-ac/strafebot/utils"
)

// ConfigFromSettings builds a trainer configuration from loaded settings. Unusable values are replaced and
// reported as warnings, unknown names are returned as an error.
func ConfigFromSettings(s settings.Settings, log utils.Logger) (Config, []string, error) {
	warnings, err := s.Validate()
	if err != nil {
		return Config{}, warnings, err
	}

	profile, replaced, err := s.Movement.Profile()
	if err != nil {
		return Config{}, warnings, err
	}
	for _, name := range replaced {
		warnings = append(warnings, fmt.Sprintf("Movement.%s is not finite, using the %s value", name, s.Movement.Preset))
	}

	keyProfile, _ := autopilot.KeyProfileByName(s.Autopilot.KeyProfile)
	environment, err := env.ByName(s.Environment.Map, s.Environment.Seed)
	if err != nil {
		return Config{}, warnings, err
	}

	return Config{
		TickDuration:     s.Simulation.TickDuration,
		MaxFrameDuration: s.Simulation.MaxFrameDuration,
		Profile:          profile,
		Strict:           s.Simulation.Strict,
		Environment:      environment,
		Autopilot:        s.Autopilot.Enabled,
		KeyProfile:       keyProfile,
		Overrides: Overrides{
			Hop:  s.Autopilot.AutoHop,
			Move: s.Autopilot.AutoMove,
			Turn: s.Autopilot.AutoTurn,
		},
		Log: log,
	}, warnings, nil
}
