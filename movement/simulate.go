package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/assert"
	"github.com/oomph-ac/strafebot/game"
)

// Options define simulator behaviour.
type Options struct {
	// Strict makes a non-finite profile a fatal contract violation, checked every tick. Otherwise the
	// profile is sanitized against VQ3Like when it is installed.
	Strict bool

	// Debugf receives per-step simulation traces for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Input is the movement intent for a single tick.
type Input struct {
	// WishDir is a horizontal unit vector, or the zero vector for no movement.
	WishDir mgl32.Vec2
	Jumping bool
	// Turning is set for pure side strafing, see Profile.AirTurning.
	Turning bool
}

// Result describes what happened during a simulated tick.
type Result struct {
	// Grounded is whether the player was on the ground at the start of the tick.
	Grounded bool
	// Jumped is set if a jump impulse was applied.
	Jumped bool
	// Landed is set if the player hit the floor during the tick.
	Landed bool
	// Movement is the acceleration model used.
	Movement Movement
}

// Simulator advances kinematic states with a fixed profile.
type Simulator struct {
	profile Profile
	Options Options
}

// NewSimulator returns a simulator for the profile.
func NewSimulator(profile Profile, opts Options) *Simulator {
	s := &Simulator{Options: opts}
	s.SetProfile(profile)
	return s
}

// Profile returns a copy of the active profile.
func (s *Simulator) Profile() Profile {
	return s.profile.Clone()
}

// SetProfile installs a new active profile.
func (s *Simulator) SetProfile(profile Profile) {
	if s.Options.Strict {
		assert.NoError(profile.Validate(), "SetProfile")
		s.profile = profile.Clone()
		return
	}
	sanitized, replaced := profile.Sanitize(VQ3Like)
	if len(replaced) > 0 {
		s.debugf("SetProfile: replaced non-finite values %v", replaced)
	}
	s.profile = sanitized
}

// Simulate advances the state by dt seconds.
func (s *Simulator) Simulate(state *State, dt float32, in Input) Result {
	if s.Options.Strict {
		assert.NoError(s.profile.Validate(), "Simulate")
		assert.IsTrue(dt >= 0 && game.IsFinite(dt), "Simulate: tick duration %v", dt)
	}

	ctx := newCtx(&s.profile, state, dt, in, s.Options.Debugf)
	defer putCtx(ctx)

	s.debugf("BEGIN tick pos=%v vel=%v wish=%v jump=%t turn=%t", state.Pos, state.Vel, in.WishDir, in.Jumping, in.Turning)
	ctx.simulate()
	s.debugf("END tick pos=%v vel=%v", state.Pos, state.Vel)
	return ctx.result
}

func (s *Simulator) debugf(format string, args ...any) {
	if s.Options.Debugf != nil {
		s.Options.Debugf(format, args...)
	}
}

// Tick advances a copy of the state by dt seconds under the profile and returns it. A non-finite profile
// panics; callers holding unchecked profiles should sanitize them first or use a Simulator.
func Tick(profile Profile, dt float32, wishDir mgl32.Vec2, jumping, turning bool, state State) State {
	assert.NoError(profile.Validate(), "Tick")
	ctx := newCtx(&profile, &state, dt, Input{WishDir: wishDir, Jumping: jumping, Turning: turning}, nil)
	ctx.simulate()
	putCtx(ctx)
	return state
}

// tickContext holds the working values of a single tick. Each step mutates the velocity before the next
// one runs, so the order in simulate matters.
type tickContext struct {
	profile *Profile
	state   *State
	dt      float32
	in      Input
	debugf  func(format string, args ...any)

	grounded bool
	result   Result
}

func (ctx *tickContext) simulate() {
	ctx.grounded = ctx.state.IsGrounded()
	ctx.result.Grounded = ctx.grounded

	ctx.jump()
	ctx.friction()
	ctx.accelerate()
	ctx.gravity()
	ctx.integrate()
	ctx.clampFloor()
}

func (ctx *tickContext) jump() {
	if !ctx.grounded || !ctx.in.Jumping {
		return
	}
	ctx.state.Vel[2] += ctx.profile.JumpImpulse
	// The rest of the tick is simulated as airborne.
	ctx.grounded = false
	ctx.result.Jumped = true
	ctx.notify("jump: vel=%v", ctx.state.Vel)
}

func (ctx *tickContext) friction() {
	if !ctx.grounded {
		return
	}
	ctx.profile.Friction.apply(&ctx.state.Vel, ctx.dt)
	ctx.notify("friction: vel=%v", ctx.state.Vel)
}

func (ctx *tickContext) accelerate() {
	m := ctx.profile.EffectiveMovement(ctx.grounded, ctx.in.Turning)
	m.accelerate(&ctx.state.Vel, ctx.dt, ctx.in.WishDir)
	ctx.result.Movement = m
	ctx.notify("accelerate (grounded=%t maxSpeed=%.1f accel=%.1f): vel=%v", ctx.grounded, m.MaxSpeed, m.Accel, ctx.state.Vel)
}

func (ctx *tickContext) gravity() {
	ctx.state.Vel[2] -= ctx.profile.Gravity * ctx.dt
}

func (ctx *tickContext) integrate() {
	ctx.state.Pos = ctx.state.Pos.Add(ctx.state.Vel.Mul(ctx.dt))
}

func (ctx *tickContext) clampFloor() {
	if ctx.state.Pos.Z() >= 0 {
		return
	}
	ctx.state.Pos[2] = 0
	if ctx.state.Vel.Z() < 0 {
		ctx.state.Vel[2] = 0
	}
	ctx.result.Landed = !ctx.result.Grounded
	ctx.notify("clampFloor: pos=%v vel=%v", ctx.state.Pos, ctx.state.Vel)
}

func (ctx *tickContext) notify(format string, args ...any) {
	if ctx.debugf != nil {
		ctx.debugf(format, args...)
	}
}

// HzSpeedLimit returns the speed at which the acceleration model in use for the keys saturates. It is the
// boundary the autopilot measures its warp factor against.
func HzSpeedLimit(profile Profile, state State, jumping, turning bool) float32 {
	grounded := state.IsGrounded() && !jumping
	m := profile.EffectiveMovement(grounded, turning)
	if m.MaxSpeed <= game.StoppedSpeed {
		return game.StoppedSpeed
	}
	return m.MaxSpeed
}
