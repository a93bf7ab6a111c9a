package autopilot

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestStrafeTurningNoGain(t *testing.T) {
	wish := mgl32.Vec2{0, 1}
	for _, warp := range []float32{-1, 0, 0.5, 0.99, 1} {
		for _, moveAngle := range []float32{-3, -1, 0, 0.5, 2} {
			for _, clockwise := range []bool{false, true} {
				if turn := StrafeTurning(0.01, moveAngle, wish, warp, 2, clockwise); turn != 0 {
					t.Fatalf("warp=%v: expected no turn, got %v", warp, turn)
				}
			}
		}
	}
}

func TestStrafeTurningDegenerateWish(t *testing.T) {
	for _, wish := range []mgl32.Vec2{{}, {0.5, 0.4}, {0, 0.7}} {
		if turn := StrafeTurning(0.01, 0, wish, 2, 2, false); turn != 0 {
			t.Fatalf("wish=%v: expected no turn, got %v", wish, turn)
		}
	}
}

func TestStrafeTurningTarget(t *testing.T) {
	const dt = 0.01
	warp := float32(2)
	// Velocity and wish both along +Y; the wish must end up optimal+rate*dt away from the velocity.
	offset := OptimalAngle(warp) + FlightTurnRate*dt

	ccw := StrafeTurning(dt, 0, mgl32.Vec2{0, 1}, warp, FlightTurnRate, false)
	if math32.Abs(ccw-offset) > 1e-5 {
		t.Fatalf("expected counter-clockwise turn %v, got %v", offset, ccw)
	}
	cw := StrafeTurning(dt, 0, mgl32.Vec2{0, 1}, warp, FlightTurnRate, true)
	if math32.Abs(cw+offset) > 1e-5 {
		t.Fatalf("expected clockwise turn %v, got %v", -offset, cw)
	}

	// A wish already at the target needs no correction.
	target := mgl32.Vec2{-math32.Sin(offset), math32.Cos(offset)}
	if turn := StrafeTurning(dt, 0, target, warp, FlightTurnRate, false); math32.Abs(turn) > 1e-5 {
		t.Fatalf("expected no correction, got %v", turn)
	}
}

func TestOptimalAngleLimits(t *testing.T) {
	if a := OptimalAngle(1.0001); a > 0.02 {
		t.Fatalf("expected optimal angle near 0 just above warp 1, got %v", a)
	}
	if a := OptimalAngle(1000); math32.Abs(a-math32.Pi/2) > 0.01 {
		t.Fatalf("expected optimal angle near 90° at large warp, got %v", a)
	}
	last := float32(0)
	for warp := float32(1); warp < 10; warp += 0.25 {
		a := OptimalAngle(warp)
		if a < last {
			t.Fatalf("expected optimal angle to grow with warp, got %v after %v", a, last)
		}
		last = a
	}
}

func TestTurnClamp(t *testing.T) {
	bot := New(Standard, nil)
	for _, dt := range []float32{0.0001, 0.001, 0.01, 0.1, 0.2} {
		limit := MaxTurnRate * dt
		for _, s := range []State{Setup{}, Takeoff{}, Flight{}} {
			bot.state = s
			state := flyingState(1000, 0)
			state.Yaw = 2
			state.Pitch = 0.1
			_, yaw, pitch := bot.Tick(dt, state, noKeys, 320, 0, 0)
			if math32.Abs(yaw) > limit+1e-6 || math32.Abs(pitch) > limit+1e-6 {
				t.Fatalf("dt=%v %v: expected turn within %v, got yaw=%v pitch=%v", dt, s, limit, yaw, pitch)
			}
		}
	}
}
