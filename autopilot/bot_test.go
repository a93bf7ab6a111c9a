package autopilot

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/input"
	"github.com/oomph-ac/strafebot/movement"
)

var noKeys input.KeyState

func flyingState(speed, x float32) movement.State {
	state := movement.NewState()
	state.Pos = mgl32.Vec3{x, 0, 20}
	state.Vel = mgl32.Vec3{0, speed, 50}
	return state
}

func groundState(vel mgl32.Vec2, x float32) movement.State {
	state := movement.NewState()
	state.Pos = mgl32.Vec3{x, 0, 0}
	state.Vel = mgl32.Vec3{vel.X(), vel.Y(), 0}
	return state
}

// run drives the bot against the simulator and calls observe before every tick.
func run(bot *Bot, profile movement.Profile, state movement.State, ticks int, observe func(before State, state movement.State)) movement.State {
	const dt = 0.01
	for range ticks {
		before := bot.State()
		keys, yaw, pitch := bot.Tick(dt, state, noKeys, profile.Ground.MaxSpeed, 0, 0)
		if observe != nil {
			observe(before, state)
		}
		state.AddRotation(yaw, pitch)
		wish := state.WishDir(keys, 0, 0)
		state = movement.Tick(profile, dt, wish, keys.Jump, keys.IsSideStrafe(), state)
	}
	return state
}

func TestSetupMovesToStaging(t *testing.T) {
	bot := New(Standard, nil)
	state := groundState(mgl32.Vec2{}, 300)
	for _, yaw := range []float32{0, 1, 2, 3, 4, 5, 6} {
		state.Yaw = yaw
		keys, _, _ := bot.Tick(0.01, state, noKeys, 320, 0, 0)
		wish := state.WishDir(keys, 0, 0)
		if wish.X() >= 0 {
			t.Fatalf("yaw=%v: expected to move towards -X, got keys %v wish %v", yaw, keys, wish)
		}
	}

	state = run(bot, movement.VQ3Like, groundState(mgl32.Vec2{}, 300), 250, nil)
	if math32.Abs(state.Pos.X()-StagingX) > StagingTolerance {
		t.Fatalf("expected to reach the staging position, got x=%v", state.Pos.X())
	}
}

func TestSetupSettles(t *testing.T) {
	bot := New(Standard, nil)
	state := groundState(mgl32.Vec2{}, StagingX)
	for i := 0; i < 99; i++ {
		if keys, _, _ := bot.Tick(0.01, state, noKeys, 320, 0, 0); keys.Any() {
			t.Fatalf("expected no keys at the staging position, got %v", keys)
		}
	}
	if !bot.IsSettingUp() {
		t.Fatalf("expected to still be settling, got %v", bot.State())
	}

	// Moving away resets the timer.
	bot.Tick(0.01, groundState(mgl32.Vec2{50, 0}, StagingX), noKeys, 320, 0, 0)
	if s := bot.State().(Setup); s.Elapsed != 0 {
		t.Fatalf("expected settle timer to reset, got %v", s.Elapsed)
	}

	for i := 0; i < 105; i++ {
		bot.Tick(0.01, state, noKeys, 320, 0, 0)
	}
	if _, ok := bot.State().(Takeoff); !ok {
		t.Fatalf("expected takeoff after settling, got %v", bot.State())
	}
}

func TestSetupTurnsToLineup(t *testing.T) {
	bot := New(Standard, nil)
	state := groundState(mgl32.Vec2{}, StagingX)
	state.Pitch = 0.5
	for range 50 {
		_, yaw, pitch := bot.Tick(0.01, state, noKeys, 320, 0, 0)
		state.AddRotation(yaw, pitch)
	}
	if d := math32.Abs(game.NormalizeSigned(state.Yaw - LineupYaw)); d > 1e-3 {
		t.Fatalf("expected lineup yaw, got %v", state.Yaw)
	}
	if math32.Abs(state.Pitch-Horizon) > 1e-3 {
		t.Fatalf("expected horizon pitch, got %v", state.Pitch)
	}
}

func TestTakeoffKeys(t *testing.T) {
	bot := New(Standard, nil)
	bot.TakeOff()

	keys, _, _ := bot.Tick(0.01, groundState(mgl32.Vec2{0, 100}, 0), noKeys, 320, 0, 0)
	if keys != (input.KeyState{Forward: true}) {
		t.Fatalf("expected forward only below the circle jump speed, got %v", keys)
	}
	keys, _, _ = bot.Tick(0.01, groundState(mgl32.Vec2{0, 330}, 0), noKeys, 320, 0, 0)
	if keys != (input.KeyState{Forward: true, Left: true}) {
		t.Fatalf("expected forward and left when circle jumping, got %v", keys)
	}
	if s := bot.State().(Takeoff); s.Turned <= 0 {
		t.Fatalf("expected turn to accumulate, got %v", s.Turned)
	}

	bot.Tick(0.01, groundState(mgl32.Vec2{0, TakeoffSpeedCap + 1}, 0), noKeys, 320, 0, 0)
	if _, ok := bot.State().(Flight); !ok {
		t.Fatalf("expected flight above the takeoff speed cap, got %v", bot.State())
	}
}

func TestFlightDirection(t *testing.T) {
	tests := []struct {
		name      string
		vel       mgl32.Vec2
		x         float32
		previous  bool
		clockwise bool
	}{
		{"left velocity", mgl32.Vec2{-100, 400}, 0, false, true},
		{"right velocity", mgl32.Vec2{100, 400}, 0, true, false},
		{"hysteresis keeps cw", mgl32.Vec2{50, 400}, 0, true, true},
		{"hysteresis keeps ccw", mgl32.Vec2{-50, 400}, 0, false, false},
		{"left boundary", mgl32.Vec2{100, 400}, -600, false, true},
		{"right boundary", mgl32.Vec2{-100, 400}, 600, true, false},
	}
	for _, tt := range tests {
		bot := New(Standard, nil)
		bot.state = Flight{Clockwise: tt.previous}
		keys, _, _ := bot.Tick(0.01, groundState(tt.vel, tt.x), noKeys, 320, 0, 0)
		s := bot.State().(Flight)
		if s.Clockwise != tt.clockwise {
			t.Fatalf("%s: expected clockwise=%t, got %t", tt.name, tt.clockwise, s.Clockwise)
		}
		if !s.Jumped || !keys.Jump {
			t.Fatalf("%s: expected a jump on the ground, got %v", tt.name, keys)
		}
		expected := Standard.Keys(tt.clockwise, noKeys)
		expected.Jump = true
		if keys != expected {
			t.Fatalf("%s: expected keys %v, got %v", tt.name, expected, keys)
		}
	}
}

func TestFlightDirectionOncePerCycle(t *testing.T) {
	bot := New(Standard, nil)
	bot.state = Flight{}
	bot.Tick(0.01, groundState(mgl32.Vec2{-100, 400}, 0), noKeys, 320, 0, 0)
	// Still on the ground, the direction is not picked again.
	bot.Tick(0.01, groundState(mgl32.Vec2{100, 400}, 0), noKeys, 320, 0, 0)
	if s := bot.State().(Flight); !s.Clockwise {
		t.Fatalf("expected direction to be kept within a cycle")
	}

	keys, _, _ := bot.Tick(0.01, flyingState(500, 0), noKeys, 320, 0, 0)
	if s := bot.State().(Flight); s.Jumped {
		t.Fatalf("expected jump flag to clear in the air")
	}
	if keys.Jump {
		t.Fatalf("expected no jump in the air")
	}
}

func TestFlightLosesSpeed(t *testing.T) {
	bot := New(Standard, nil)
	bot.state = Flight{Jumped: true, Clockwise: true}
	bot.Tick(0.01, flyingState(350, 0), noKeys, 320, 0, 0)
	if !bot.IsSettingUp() {
		t.Fatalf("expected setup below 1.1x the speed limit, got %v", bot.State())
	}
}

func TestPlayerKeys(t *testing.T) {
	bot := New(PlayerKeys{}, nil)
	bot.state = Flight{}
	player := input.KeyState{Back: true, Right: true}
	keys, _, _ := bot.Tick(0.01, groundState(mgl32.Vec2{0, 500}, 0), player, 320, 0, 0)
	if keys != (input.KeyState{Back: true, Right: true, Jump: true}) {
		t.Fatalf("expected player keys with jump, got %v", keys)
	}
	keys, _, _ = bot.Tick(0.01, flyingState(500, 0), player, 320, 0, 0)
	if keys != player {
		t.Fatalf("expected player keys in the air, got %v", keys)
	}
}

func TestSetKeyProfileKeepsState(t *testing.T) {
	bot := New(Standard, nil)
	bot.state = Flight{Jumped: true}
	bot.SetKeyProfile(Reverse)
	if _, ok := bot.State().(Flight); !ok {
		t.Fatalf("expected state to be kept, got %v", bot.State())
	}
	if bot.KeyProfile() != KeyProfile(Reverse) {
		t.Fatalf("expected reverse key profile")
	}
}

func TestKeyProfiles(t *testing.T) {
	expected := []string{ProfileStandard, ProfileReverse, ProfileHalfBeatLeft, ProfileHalfBeatRight, ProfilePlayer}
	i := 0
	for el := KeyProfiles().Front(); el != nil; el = el.Next() {
		if el.Key != expected[i] {
			t.Fatalf("expected %q at %d, got %q", expected[i], i, el.Key)
		}
		i++
	}
	p, ok := KeyProfileByName(ProfileHalfBeatRight)
	if !ok || p.Keys(true, noKeys) != (input.KeyState{Right: true}) {
		t.Fatalf("expected half beat right to side strafe clockwise, got %v", p)
	}
}

// TestStateOrdering checks that Flight is only ever entered from Takeoff and only ever left for Setup.
func TestStateOrdering(t *testing.T) {
	bot := New(Standard, nil)
	var last State = bot.State()
	check := func(before State, _ movement.State) {
		after := bot.State()
		if after.Name() == last.Name() {
			return
		}
		switch after.(type) {
		case Flight:
			if _, ok := last.(Takeoff); !ok {
				t.Fatalf("expected flight to follow takeoff, got %v -> %v", last, after)
			}
		case Takeoff:
			if _, ok := last.(Setup); !ok {
				t.Fatalf("expected takeoff to follow setup, got %v -> %v", last, after)
			}
		case Setup:
			if _, ok := last.(Flight); !ok {
				t.Fatalf("expected setup to follow flight, got %v -> %v", last, after)
			}
		}
		last = after
	}
	// Start off the staging position so the bot has to line up first.
	run(bot, movement.VQ3Like, groundState(mgl32.Vec2{}, 0), 1500, check)

	// Starving the run of speed in flight must restage, never restart the takeoff.
	bot = New(Standard, nil)
	bot.state = Flight{}
	state := flyingState(400, 0)
	bot.Tick(0.01, state, noKeys, 1000, 0, 0)
	if !bot.IsSettingUp() {
		t.Fatalf("expected setup, got %v", bot.State())
	}
}

func TestMonotonicGain(t *testing.T) {
	bot := New(Standard, nil)
	state := groundState(mgl32.Vec2{}, StagingX)

	var (
		names  []string
		cycles []float32
	)
	run(bot, movement.VQ3Like, state, 3000, func(before State, state movement.State) {
		after := bot.State()
		if len(names) == 0 || names[len(names)-1] != after.Name() {
			names = append(names, after.Name())
		}
		f, ok := after.(Flight)
		if !ok || !f.Jumped {
			return
		}
		if prev, ok := before.(Flight); !ok || !prev.Jumped {
			cycles = append(cycles, state.HzSpeed())
		}
	})

	if len(names) != 3 || names[0] != "setup" || names[1] != "takeoff" || names[2] != "flight" {
		t.Fatalf("expected setup, takeoff then flight, got %v", names)
	}
	if len(cycles) < 8 {
		t.Fatalf("expected at least 8 cycles, got %d", len(cycles))
	}
	if cycles[0] < FlightMinWarp*movement.VQ3Like.Ground.MaxSpeed {
		t.Fatalf("expected first cycle above %v, got %v", FlightMinWarp*movement.VQ3Like.Ground.MaxSpeed, cycles[0])
	}
	for i := 1; i < len(cycles); i++ {
		if cycles[i] <= cycles[i-1] {
			t.Fatalf("expected speed to increase every cycle, got %v", cycles)
		}
	}
}
