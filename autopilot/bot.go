package autopilot

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/input"
	"github.com/oomph-ac/strafebot/movement"
	"github.com/oomph-ac/strafebot/utils"
)

const degree = game.Degree

const (
	// MaxTurnRate is the fastest the bot turns the view, in radians per second.
	MaxTurnRate = 1000 * degree

	// StagingX is the x coordinate the bot lines up on before a run.
	StagingX = float32(-160)
	// StagingTolerance is the distance from StagingX that counts as lined up.
	StagingTolerance = float32(10)
	// LineupYaw is the yaw the bot faces while lining up.
	LineupYaw = -150 * degree
	// SettleSpeed is the speed under which the player counts as standing still.
	SettleSpeed = float32(10)
	// SettleDuration is how long in seconds the player must stand still at the staging position.
	SettleDuration = float32(1)
	// MoveThreshold is the dot product above which a key is held to move towards the staging position.
	MoveThreshold = float32(0.383)

	// CircleJumpAngle is the view angle turned before the first jump.
	CircleJumpAngle = 150 * degree
	// CircleJumpWarp is the warp factor at which the circle jump turn starts.
	CircleJumpWarp = float32(0.99)
	// TakeoffSpeedCap ends the takeoff early.
	TakeoffSpeedCap = float32(410)
	// TakeoffTurnRate is the turn rate past the optimal angle in radians per second during takeoff.
	TakeoffTurnRate = float32(10)

	// FlightMinWarp is the warp factor under which a run is given up.
	FlightMinWarp = float32(1.1)
	// FlightTurnRate is the turn rate past the optimal angle in radians per second while strafing.
	FlightTurnRate = float32(2)
	// BoundaryX is the distance from the centre line at which the bot turns back towards it.
	BoundaryX = float32(512)
	// TurnHysteresis is the lateral speed needed to pick a turn direction from the velocity.
	TurnHysteresis = float32(80)

	// Horizon is the pitch the bot keeps the view at.
	Horizon = 90 * degree
)

// Bot is a strafe jumping autopilot. Every tick it reads the player's state and returns the keys to hold
// and the view rotation to apply. It never modifies the state itself.
type Bot struct {
	state   State
	profile KeyProfile
	log     utils.Logger
}

// New returns a bot in the Setup state. A nil log discards transition messages.
func New(profile KeyProfile, log utils.Logger) *Bot {
	if profile == nil {
		profile = Standard
	}
	if log == nil {
		log = utils.NopLogger{}
	}
	return &Bot{state: Setup{}, profile: profile, log: log}
}

// State returns the current state of the bot.
func (b *Bot) State() State {
	return b.state
}

// IsSettingUp returns true while the bot is lining up for a run.
func (b *Bot) IsSettingUp() bool {
	_, ok := b.state.(Setup)
	return ok
}

// TakeOff skips the setup and starts a run from wherever the player is.
func (b *Bot) TakeOff() {
	b.transition(Takeoff{})
}

// KeyProfile returns the active key profile.
func (b *Bot) KeyProfile() KeyProfile {
	return b.profile
}

// SetKeyProfile changes the keys held from the next tick on. The state is kept.
func (b *Bot) SetKeyProfile(profile KeyProfile) {
	if profile != nil {
		b.profile = profile
	}
}

func (b *Bot) transition(next State) {
	b.log.Debugf("autopilot: %v -> %v", b.state, next)
	b.state = next
}

// tickContext holds the per-tick inputs shared by every state.
type tickContext struct {
	dt         float32
	state      movement.State
	keys       input.KeyState
	speedLimit float32
	yaw, pitch float32

	speed    float32
	grounded bool
}

// warp returns the current speed relative to the speed limit.
func (ctx *tickContext) warp() float32 {
	if ctx.speedLimit <= 0 {
		return 0
	}
	return ctx.speed / ctx.speedLimit
}

// moveAngle returns the angle of the horizontal velocity.
func (ctx *tickContext) moveAngle() float32 {
	return game.VecAngle(ctx.state.Vel.Vec2())
}

// wishDir returns the wish direction of keys once the pending rotation is applied.
func (ctx *tickContext) wishDir(keys input.KeyState) mgl32.Vec2 {
	return ctx.state.WishDir(keys, ctx.yaw, ctx.pitch)
}

// Tick advances the bot by dt seconds. keys are the player's own keys, speedLimit is the speed at which
// the active acceleration model saturates and pendingYaw and pendingPitch are the view rotation that will
// be applied before the state is simulated. It returns the keys to hold and the extra view rotation to
// apply, each rotation clamped to MaxTurnRate.
func (b *Bot) Tick(dt float32, state movement.State, keys input.KeyState, speedLimit, pendingYaw, pendingPitch float32) (input.KeyState, float32, float32) {
	ctx := &tickContext{
		dt:         dt,
		state:      state,
		keys:       keys,
		speedLimit: speedLimit,
		yaw:        pendingYaw,
		pitch:      pendingPitch,
		speed:      state.HzSpeed(),
		grounded:   state.IsGrounded(),
	}

	var (
		out  input.KeyState
		turn float32
	)
	// A state that transitions is re-evaluated within the same tick.
	for done := false; !done; {
		switch s := b.state.(type) {
		case Setup:
			out, turn, done = b.setup(ctx, s)
		case Takeoff:
			out, turn, done = b.takeoff(ctx, s)
		case Flight:
			out, turn, done = b.flight(ctx, s)
		default:
			b.transition(Setup{})
		}
	}

	limit := maxTurn(dt)
	yaw := game.ClampAngle(turn, limit)
	pitch := game.ClampAngle(Horizon-(state.Pitch+pendingPitch), limit)
	return out, yaw, pitch
}

func (b *Bot) setup(ctx *tickContext, s Setup) (input.KeyState, float32, bool) {
	yaw := ctx.state.Yaw + ctx.yaw
	offset := StagingX - ctx.state.Pos.X()
	shouldMove := math32.Abs(offset) > StagingTolerance

	// The direction towards the staging position, in the player's local frame where the right axis is at
	// angle zero and the forward axis at 90°.
	var moveAngle float32
	if offset <= 0 {
		moveAngle = math32.Pi
	}
	ny, nx := math32.Sincos(moveAngle - yaw)

	keys := input.KeyState{
		Forward: shouldMove && ny > MoveThreshold,
		Left:    shouldMove && nx < -MoveThreshold,
		Back:    shouldMove && ny < -MoveThreshold,
		Right:   shouldMove && nx > MoveThreshold,
	}

	if !shouldMove && ctx.speed < SettleSpeed {
		s.Elapsed += ctx.dt
		if s.Elapsed >= SettleDuration {
			b.transition(Takeoff{})
			return input.KeyState{}, 0, false
		}
	} else {
		s.Elapsed = 0
	}
	b.state = s
	return keys, LineupYaw - yaw, true
}

func (b *Bot) takeoff(ctx *tickContext, s Takeoff) (input.KeyState, float32, bool) {
	if s.Turned >= CircleJumpAngle || ctx.speed > TakeoffSpeedCap {
		b.transition(Flight{})
		return input.KeyState{}, 0, false
	}

	keys := input.KeyState{
		Forward: true,
		Left:    ctx.warp() > CircleJumpWarp,
	}
	turn := StrafeTurning(ctx.dt, ctx.moveAngle(), ctx.wishDir(keys), ctx.warp(), TakeoffTurnRate, false)
	s.Turned += math32.Abs(game.ClampAngle(turn, maxTurn(ctx.dt)))
	b.state = s
	return keys, turn, true
}

func (b *Bot) flight(ctx *tickContext, s Flight) (input.KeyState, float32, bool) {
	if ctx.warp() < FlightMinWarp {
		b.log.Infof("autopilot: lost speed at %.1f ups, lining up again", ctx.speed)
		b.transition(Setup{})
		return input.KeyState{}, 0, false
	}

	if ctx.grounded {
		if !s.Jumped {
			s.Jumped = true
			s.Clockwise = chooseClockwise(ctx.state, s.Clockwise)
		}
	} else {
		s.Jumped = false
	}
	b.state = s

	// The player's own jump is kept in PlayerKeys mode.
	keys := b.profile.Keys(s.Clockwise, ctx.keys)
	keys.Jump = keys.Jump || ctx.grounded
	turn := StrafeTurning(ctx.dt, ctx.moveAngle(), ctx.wishDir(keys), ctx.warp(), FlightTurnRate, s.Clockwise)
	return keys, turn, true
}

// chooseClockwise picks the turn direction for a new cycle. It turns back towards the centre line when
// outside the boundary and otherwise follows the lateral velocity, keeping the last direction while the
// lateral velocity is small.
func chooseClockwise(state movement.State, clockwise bool) bool {
	if vx := state.Vel.X(); vx < -TurnHysteresis {
		clockwise = true
	} else if vx > TurnHysteresis {
		clockwise = false
	}
	if x := state.Pos.X(); x < -BoundaryX {
		clockwise = true
	} else if x > BoundaryX {
		clockwise = false
	}
	return clockwise
}
