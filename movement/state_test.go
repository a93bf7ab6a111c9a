package movement

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/input"
)

func vecApproxEq(a, b mgl32.Vec2) bool {
	return math32.Abs(a.X()-b.X()) < 1e-4 && math32.Abs(a.Y()-b.Y()) < 1e-4
}

func TestWishDir(t *testing.T) {
	state := NewState()
	diag := float32(math32.Sqrt2 / 2)

	tests := []struct {
		name     string
		keys     input.KeyState
		expected mgl32.Vec2
	}{
		{"none", input.KeyState{}, mgl32.Vec2{}},
		{"forward", input.KeyState{Forward: true}, mgl32.Vec2{0, 1}},
		{"back", input.KeyState{Back: true}, mgl32.Vec2{0, -1}},
		{"left", input.KeyState{Left: true}, mgl32.Vec2{-1, 0}},
		{"right", input.KeyState{Right: true}, mgl32.Vec2{1, 0}},
		{"forward right", input.KeyState{Forward: true, Right: true}, mgl32.Vec2{diag, diag}},
		{"cancel", input.KeyState{Forward: true, Back: true}, mgl32.Vec2{}},
		{"jump only", input.KeyState{Jump: true}, mgl32.Vec2{}},
	}
	for _, tt := range tests {
		if wish := state.WishDir(tt.keys, 0, 0); !vecApproxEq(wish, tt.expected) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.expected, wish)
		}
	}
}

func TestWishDirYaw(t *testing.T) {
	state := NewState()
	// A quarter turn counter-clockwise points forward along -X.
	wish := state.WishDir(input.KeyState{Forward: true}, math32.Pi/2, 0)
	if !vecApproxEq(wish, mgl32.Vec2{-1, 0}) {
		t.Fatalf("expected forward along -X, got %v", wish)
	}
	// Pitch does not tilt the wish direction.
	wish = state.WishDir(input.KeyState{Forward: true}, 0, -1)
	if !vecApproxEq(wish, mgl32.Vec2{0, 1}) {
		t.Fatalf("expected pitch to be ignored, got %v", wish)
	}
}

func TestAddRotation(t *testing.T) {
	state := NewState()
	state.AddRotation(-math32.Pi/2, 10)
	if math32.Abs(state.Yaw-3*math32.Pi/2) > 1e-5 {
		t.Fatalf("expected yaw to wrap to 3π/2, got %v", state.Yaw)
	}
	if state.Pitch != math32.Pi {
		t.Fatalf("expected pitch to clamp to π, got %v", state.Pitch)
	}
	state.AddRotation(0, -20)
	if state.Pitch != 0 {
		t.Fatalf("expected pitch to clamp to 0, got %v", state.Pitch)
	}
}

func TestViewMatrix(t *testing.T) {
	state := NewState()
	state.Pos = mgl32.Vec3{10, 20, 0}
	state.Vel = mgl32.Vec3{100, 0, 0}

	view := state.ViewMatrix(0.1, 0, 0)
	eye := view.Mul4x1(mgl32.Vec4{20, 20, 64, 1})
	if eye.Vec3().Len() > 1e-4 {
		t.Fatalf("expected the extrapolated eye to map to the origin, got %v", eye)
	}
	// Looking along +Y at the horizon, a point ahead is in front of the camera (-Z in view space).
	ahead := view.Mul4x1(mgl32.Vec4{20, 120, 64, 1})
	if math32.Abs(ahead.Z()+100) > 1e-3 {
		t.Fatalf("expected the point 100 units ahead at view z=-100, got %v", ahead)
	}
}

func TestReset(t *testing.T) {
	state := NewState()
	state.Pos = mgl32.Vec3{1, 2, 3}
	state.Vel = mgl32.Vec3{4, 5, 6}
	state.Yaw = 1
	state.Reset()
	if state != NewState() {
		t.Fatalf("expected reset state, got %+v", state)
	}
}
