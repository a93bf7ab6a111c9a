// Package trainer runs the fixed-timestep simulation loop of the strafe jump trainer. It knows nothing
// about rendering or input devices: every rendered frame the caller passes in the frame duration and the
// raw player input, and the trainer catches the simulation up with real time.
package trainer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/autopilot"
	"github.com/oomph-ac/strafebot/env"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/input"
	"github.com/oomph-ac/strafebot/movement"
	"github.com/oomph-ac/strafebot/omath"
	"github.com/oomph-ac/strafebot/utils"
)

const (
	DefaultTickDuration     = float32(0.01)
	DefaultMaxFrameDuration = float32(0.2)
	// FramerateDecay is the weight of the newest frame in the smoothed framerate.
	FramerateDecay = float32(0.05)
	// DefaultRecorderSize holds ten seconds of ticks at the default tick duration.
	DefaultRecorderSize = 1000
)

// Overrides select which outputs of the autopilot replace the player's input.
type Overrides struct {
	// Hop replaces the jump key.
	Hop bool
	// Move replaces the movement keys.
	Move bool
	// Turn adds the autopilot's view rotation.
	Turn bool
}

// Config configures a Trainer.
type Config struct {
	TickDuration     float32
	MaxFrameDuration float32

	Profile movement.Profile
	// Strict makes a non-finite profile panic instead of being sanitized.
	Strict bool

	// Environment defaults to a runway.
	Environment env.Environment

	// Autopilot starts the trainer with the autopilot enabled, using KeyProfile.
	Autopilot  bool
	KeyProfile autopilot.KeyProfile
	Overrides  Overrides

	// RecorderSize is the number of ticks kept by the recorder.
	RecorderSize int

	Log utils.Logger
	// TraceTicks sends every step of every tick to Log at debug level.
	TraceTicks bool
}

// FrameInput is the raw player input of a frame.
type FrameInput struct {
	Keys input.KeyState
	// Yaw and Pitch are the view rotation requested by the mouse since the last frame.
	Yaw, Pitch float32
}

// FrameResult is everything a frontend needs to draw a frame.
type FrameResult struct {
	// Ticks is the number of ticks simulated in the frame.
	Ticks int
	// Dropped is the simulated time in seconds discarded because the frame took too long.
	Dropped float32

	State movement.State
	// View is the world-to-camera transform, extrapolated to the time not yet simulated.
	View mgl32.Mat4
	// WishDir is the wish direction of the current keys with the pending view rotation applied.
	WishDir mgl32.Vec2
	// Warp is the horizontal speed divided by the speed limit of the current keys.
	Warp float32

	SpeedUPS, SpeedMPH, SpeedKPH float32
	// Framerate is the smoothed frames per second.
	Framerate float32

	// Keys are the keys the last tick was simulated with.
	Keys input.KeyState
	// BotKeys are the keys the autopilot held at the end of the frame. BotPressed and BotReleased are
	// the changes since the last frame.
	BotKeys, BotPressed, BotReleased input.KeyState
	// BotState is the autopilot state, or nil if the autopilot is disabled.
	BotState autopilot.State

	// Stage is the tutorial stage. It is only valid if InTutorial is set.
	Stage      Stage
	InTutorial bool
	Tutorial   TutorialUpdate
}

// Trainer owns the player state and advances it in fixed ticks.
type Trainer struct {
	tickDuration     float32
	maxFrameDuration float32

	sim     *movement.Simulator
	profile movement.Profile
	state   movement.State
	env     env.Environment

	bot        *autopilot.Bot
	keyProfile autopilot.KeyProfile
	overrides  Overrides

	inputKeys    input.KeyState
	inputHistory input.KeyState
	keys         input.KeyState
	botKeys      input.KeyState
	botHistory   input.KeyState

	// rotation is the mouse rotation not yet applied to the state.
	rotation  [2]float32
	remainder float32
	framerate float32

	tutorial *Tutorial
	recorder *Recorder

	log utils.Logger
}

// New returns a trainer with the player at rest at the origin.
func New(cfg Config) *Trainer {
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = DefaultTickDuration
	}
	if cfg.MaxFrameDuration <= 0 {
		cfg.MaxFrameDuration = DefaultMaxFrameDuration
	}
	if cfg.Environment == nil {
		cfg.Environment = env.NewRunway()
	}
	if cfg.KeyProfile == nil {
		cfg.KeyProfile = autopilot.Standard
	}
	if cfg.RecorderSize == 0 {
		cfg.RecorderSize = DefaultRecorderSize
	}
	if cfg.Log == nil {
		cfg.Log = utils.NopLogger{}
	}

	t := &Trainer{
		tickDuration:     cfg.TickDuration,
		maxFrameDuration: max(cfg.MaxFrameDuration, cfg.TickDuration),
		state:            movement.NewState(),
		env:              cfg.Environment,
		keyProfile:       cfg.KeyProfile,
		overrides:        cfg.Overrides,
		recorder:         NewRecorder(cfg.RecorderSize),
		log:              cfg.Log,
	}
	opts := movement.Options{Strict: cfg.Strict}
	if cfg.TraceTicks {
		opts.Debugf = t.log.Debugf
	}
	t.sim = movement.NewSimulator(cfg.Profile, opts)
	t.profile = t.sim.Profile()
	if cfg.Autopilot {
		t.EnableAutopilot(cfg.KeyProfile)
	}
	return t
}

// State returns the player state.
func (t *Trainer) State() movement.State {
	return t.state
}

// SetState replaces the player state.
func (t *Trainer) SetState(state movement.State) {
	t.state = state
}

// Reset puts the player back at the origin and clears the recording.
func (t *Trainer) Reset() {
	t.state.Reset()
	t.rotation = [2]float32{}
	t.recorder.Reset()
}

// Profile returns the active movement profile.
func (t *Trainer) Profile() movement.Profile {
	return t.profile.Clone()
}

// SetProfile changes the movement profile.
func (t *Trainer) SetProfile(p movement.Profile) {
	t.sim.SetProfile(p)
	t.profile = t.sim.Profile()
}

// Environment returns the environment the player moves in.
func (t *Trainer) Environment() env.Environment {
	return t.env
}

// SetEnvironment changes the environment and puts the player back at the origin.
func (t *Trainer) SetEnvironment(e env.Environment) {
	t.env = e
	t.Reset()
}

// Autopilot returns the autopilot, or nil if it is disabled.
func (t *Trainer) Autopilot() *autopilot.Bot {
	return t.bot
}

// EnableAutopilot starts a fresh autopilot with the key profile.
func (t *Trainer) EnableAutopilot(profile autopilot.KeyProfile) {
	if profile != nil {
		t.keyProfile = profile
	}
	t.bot = autopilot.New(t.keyProfile, t.log)
}

// DisableAutopilot stops the autopilot. Its keys are released.
func (t *Trainer) DisableAutopilot() {
	t.bot = nil
	t.botKeys = input.KeyState{}
}

// SetKeyProfile changes the keys held by the autopilot without restarting it.
func (t *Trainer) SetKeyProfile(profile autopilot.KeyProfile) {
	t.keyProfile = profile
	if t.bot != nil {
		t.bot.SetKeyProfile(profile)
	}
}

// Overrides returns the configured overrides.
func (t *Trainer) Overrides() Overrides {
	return t.overrides
}

// SetOverrides changes which autopilot outputs replace the player's input.
func (t *Trainer) SetOverrides(o Overrides) {
	t.overrides = o
}

// effectiveOverrides returns the overrides in force. The autopilot takes full control while lining up.
func (t *Trainer) effectiveOverrides() Overrides {
	if t.bot == nil {
		return Overrides{}
	}
	if t.bot.IsSettingUp() {
		return Overrides{Hop: true, Move: true, Turn: true}
	}
	return t.overrides
}

// Recorder returns the tick recorder.
func (t *Trainer) Recorder() *Recorder {
	return t.recorder
}

// StartTutorial restarts the tutorial from its first stage.
func (t *Trainer) StartTutorial() {
	t.tutorial = NewTutorial()
	t.enterStage(t.tutorial.Stage())
}

// StopTutorial leaves the tutorial, disabling the autopilot.
func (t *Trainer) StopTutorial() {
	t.tutorial = nil
	t.DisableAutopilot()
	t.overrides = Overrides{}
}

// Tutorial returns the running tutorial, or nil.
func (t *Trainer) Tutorial() *Tutorial {
	return t.tutorial
}

func (t *Trainer) enterStage(s Stage) {
	t.log.Infof("tutorial: entering stage %s", utils.KeyValsToString("stage", s, "prompt", s.Prompt()))
	t.Reset()
	t.env = env.NewRunway()

	enabled, overrides := s.Autopilot()
	t.overrides = overrides
	if enabled {
		t.EnableAutopilot(autopilot.Standard)
	} else {
		t.DisableAutopilot()
	}
}

// Frame advances the simulation by frameDuration seconds of real time. Time is simulated in whole
// ticks; the remainder carries over to the next frame. At most the configured maximum frame duration is
// simulated, and anything beyond it is dropped.
func (t *Trainer) Frame(frameDuration float32, in FrameInput) FrameResult {
	if !game.IsFinite(frameDuration) || frameDuration < 0 {
		t.log.Warnf("trainer: ignoring frame duration %v", frameDuration)
		frameDuration = 0
	}
	if game.IsFinite(in.Yaw) && game.IsFinite(in.Pitch) {
		t.rotation[0] += in.Yaw
		t.rotation[1] += in.Pitch
	}

	actionPressed := in.Keys.Pressed(t.inputHistory).Action
	t.inputHistory = in.Keys
	t.inputKeys = in.Keys
	botHistory := t.botKeys

	var res FrameResult
	t.remainder += frameDuration
	if t.remainder > t.maxFrameDuration {
		res.Dropped = t.remainder - t.maxFrameDuration
		t.log.Warnf("dropped below min framerate, slowing down %s", utils.KeyValsToString("dropped", res.Dropped))
		t.remainder = t.maxFrameDuration
	}
	for t.remainder > t.tickDuration {
		t.tick(t.tickDuration)
		res.Ticks++
	}

	if frameDuration > 1e-6 {
		t.framerate = omath.EMA(t.framerate, 1/frameDuration, FramerateDecay)
	}

	speed := t.state.HzSpeed()
	res.State = t.state
	res.View = t.state.ViewMatrix(t.remainder, t.rotation[0], t.rotation[1])
	res.WishDir = t.state.WishDir(t.keys, t.rotation[0], t.rotation[1])
	res.Warp = speed / t.speedLimit()
	res.SpeedUPS = speed
	res.SpeedMPH = speed * game.MPHPerUPS
	res.SpeedKPH = speed * game.KPHPerUPS
	res.Framerate = t.framerate
	res.Keys = t.keys

	res.BotKeys = t.botKeys
	res.BotPressed = t.botKeys.Pressed(botHistory)
	res.BotReleased = t.botKeys.Released(botHistory)
	if t.bot != nil {
		res.BotState = t.bot.State()
	}

	if t.tutorial != nil {
		res.Tutorial = t.updateTutorial(frameDuration, speed, actionPressed)
	}
	if t.tutorial != nil {
		res.InTutorial = true
		res.Stage = t.tutorial.Stage()
	}
	return res
}

func (t *Trainer) updateTutorial(dt, groundSpeed float32, actionPressed bool) TutorialUpdate {
	update := t.tutorial.Update(dt, groundSpeed, actionPressed)
	if update.BecameReady {
		t.log.Infof("tutorial: stage complete %s", utils.KeyValsToString("stage", t.tutorial.Stage(), "progress", t.tutorial.Progress()))
	}
	if !update.Advanced {
		return update
	}
	if t.tutorial.Finished() {
		t.log.Infof("tutorial: finished")
		t.StopTutorial()
		return update
	}
	t.enterStage(t.tutorial.Stage())
	return update
}

// speedLimit returns the max speed of the acceleration model the current keys select.
func (t *Trainer) speedLimit() float32 {
	return movement.HzSpeedLimit(t.profile, t.state, t.keys.Jump, t.keys.IsSideStrafe())
}

// tick simulates dt seconds. The pending mouse rotation is spread evenly over the ticks of the remainder.
func (t *Trainer) tick(dt float32) {
	u := dt / t.remainder
	yaw, pitch := t.rotation[0]*u, t.rotation[1]*u
	t.rotation[0] -= yaw
	t.rotation[1] -= pitch

	overrides := t.effectiveOverrides()
	if t.bot != nil {
		keys, botYaw, botPitch := t.bot.Tick(dt, t.state, t.inputKeys, t.speedLimit(), yaw, pitch)
		t.botKeys = keys
		// The bot may have just started lining up.
		overrides = t.effectiveOverrides()
		if overrides.Turn {
			yaw += botYaw
			pitch += botPitch
		}
	}
	t.state.AddRotation(yaw, pitch)
	t.keys = mergeKeys(t.inputKeys, t.botKeys, overrides)

	wish := t.state.WishDir(t.keys, 0, 0)
	t.sim.Simulate(&t.state, dt, movement.Input{
		WishDir: wish,
		Jumping: t.keys.Jump,
		Turning: t.keys.IsSideStrafe(),
	})
	t.env.Interact(&t.state)
	t.recorder.Record(t.state, t.keys)

	t.remainder -= dt
}

// mergeKeys replaces the player's keys with the bot's where overridden.
func mergeKeys(player, bot input.KeyState, o Overrides) input.KeyState {
	keys := player
	if o.Move {
		keys.Forward = bot.Forward
		keys.Left = bot.Left
		keys.Back = bot.Back
		keys.Right = bot.Right
	}
	if o.Hop {
		keys.Jump = bot.Jump
	}
	return keys
}
