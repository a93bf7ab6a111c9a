package movement

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/oerror"
)

// Friction is the ground deceleration model. Friction is proportional to whichever is larger of the
// current horizontal speed and StallSpeed.
type Friction struct {
	StallSpeed  float32
	Coefficient float32
}

func (f Friction) apply(vel *mgl32.Vec3, dt float32) {
	speed0 := game.HzLen(*vel)
	if speed0 <= game.StoppedSpeed {
		return
	}
	speed1 := speed0 - max(speed0, f.StallSpeed)*f.Coefficient*dt
	if speed1 < 0 {
		speed1 = 0
	}
	vel[0] *= speed1 / speed0
	vel[1] *= speed1 / speed0
}

// Movement is an acceleration model. MaxSpeed caps the velocity component along the wish direction,
// not the total speed.
type Movement struct {
	MaxSpeed float32
	Accel    float32
}

func (m Movement) accelerate(vel *mgl32.Vec3, dt float32, wishDir mgl32.Vec2) {
	addSpeed := max(0, m.MaxSpeed-vel.Vec2().Dot(wishDir))
	dv := wishDir.Mul(min(m.Accel*dt, addSpeed))
	vel[0] += dv[0]
	vel[1] += dv[1]
}

// Profile is the full set of movement parameters. A Profile is treated as immutable once handed to a
// Simulator.
type Profile struct {
	Gravity     float32
	JumpImpulse float32
	Friction    Friction
	Ground      Movement
	Air         Movement
	// AirTurning replaces Air while airborne and side strafing, if set.
	AirTurning *Movement
}

// EffectiveMovement returns the acceleration model for the given contact and input.
func (p Profile) EffectiveMovement(grounded, turning bool) Movement {
	if grounded {
		return p.Ground
	}
	if turning && p.AirTurning != nil {
		return *p.AirTurning
	}
	return p.Air
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	if p.AirTurning != nil {
		t := *p.AirTurning
		p.AirTurning = &t
	}
	return p
}

// fields lists every scalar of the profile except the turning override in a stable order, paired with
// its counterpart in defaults.
func (p *Profile) fields(defaults *Profile) []profileField {
	return []profileField{
		{"gravity", &p.Gravity, defaults.Gravity},
		{"jump_impulse", &p.JumpImpulse, defaults.JumpImpulse},
		{"friction.stall_speed", &p.Friction.StallSpeed, defaults.Friction.StallSpeed},
		{"friction.coefficient", &p.Friction.Coefficient, defaults.Friction.Coefficient},
		{"ground.max_speed", &p.Ground.MaxSpeed, defaults.Ground.MaxSpeed},
		{"ground.accel", &p.Ground.Accel, defaults.Ground.Accel},
		{"air.max_speed", &p.Air.MaxSpeed, defaults.Air.MaxSpeed},
		{"air.accel", &p.Air.Accel, defaults.Air.Accel},
	}
}

// turningFields lists the turning override, which falls back to the profile's own air values.
func (p *Profile) turningFields() []profileField {
	if p.AirTurning == nil {
		return nil
	}
	return []profileField{
		{"air_turning.max_speed", &p.AirTurning.MaxSpeed, p.Air.MaxSpeed},
		{"air_turning.accel", &p.AirTurning.Accel, p.Air.Accel},
	}
}

type profileField struct {
	name     string
	value    *float32
	fallback float32
}

// Validate returns an error naming the first non-finite value of the profile.
func (p Profile) Validate() error {
	for _, f := range append(p.fields(&p), p.turningFields()...) {
		if !game.IsFinite(*f.value) {
			return fmt.Errorf("movement profile %s=%v: %w", f.name, *f.value, oerror.ErrNonFinite)
		}
	}
	return nil
}

// Sanitize returns a copy of the profile with every non-finite value replaced by its counterpart in
// defaults, along with the names of the replaced values. The turning override falls back to the
// sanitized air values.
func (p Profile) Sanitize(defaults Profile) (Profile, []string) {
	p = p.Clone()
	var replaced []string
	replace := func(fields []profileField) {
		for _, f := range fields {
			if game.IsFinite(*f.value) {
				continue
			}
			*f.value = f.fallback
			if !game.IsFinite(*f.value) {
				*f.value = 0
			}
			replaced = append(replaced, f.name)
		}
	}
	replace(p.fields(&defaults))
	replace(p.turningFields())
	return p, replaced
}

var (
	// VQ3Like has strong ground control and weak, uncapped-by-angle air acceleration.
	VQ3Like = Profile{
		Gravity:     800,
		JumpImpulse: 270,
		Friction:    Friction{StallSpeed: 100, Coefficient: 6},
		Ground:      Movement{MaxSpeed: 320, Accel: 10 * 320},
		Air:         Movement{MaxSpeed: 320, Accel: 1 * 320},
	}
	// QWLike has a very low air wish speed cap with high air acceleration, favouring sharp turns.
	QWLike = Profile{
		Gravity:     800,
		JumpImpulse: 270,
		Friction:    Friction{StallSpeed: 100, Coefficient: 6},
		Ground:      Movement{MaxSpeed: 320, Accel: 10 * 320},
		Air:         Movement{MaxSpeed: 30, Accel: 10 * 320},
	}
	// Hybrid behaves like VQ3Like, except for side strafing in the air which behaves like QWLike.
	Hybrid = Profile{
		Gravity:     800,
		JumpImpulse: 270,
		Friction:    Friction{StallSpeed: 100, Coefficient: 6},
		Ground:      Movement{MaxSpeed: 320, Accel: 10 * 320},
		Air:         Movement{MaxSpeed: 320, Accel: 1 * 320},
		AirTurning:  &Movement{MaxSpeed: 35, Accel: 2100},
	}
)

const (
	PresetVQ3    = "vq3"
	PresetQW     = "qw"
	PresetHybrid = "hybrid"
)

// Presets returns the named profiles in display order.
func Presets() *orderedmap.OrderedMap[string, Profile] {
	m := orderedmap.NewOrderedMap[string, Profile]()
	m.Set(PresetVQ3, VQ3Like.Clone())
	m.Set(PresetQW, QWLike.Clone())
	m.Set(PresetHybrid, Hybrid.Clone())
	return m
}

// Preset returns a copy of the named profile.
func Preset(name string) (Profile, bool) {
	return Presets().Get(name)
}
