package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/input"
)

// State is the kinematic state of a single player. Z is up. Yaw is counter-clockwise from the +Y axis
// and wraps at a full turn. Pitch is measured from straight up, so 90° looks at the horizon; it is
// clamped to [0, π].
type State struct {
	Pos mgl32.Vec3
	Vel mgl32.Vec3

	Yaw   float32
	Pitch float32
}

// NewState returns a player at the origin, at rest, looking along +Y at the horizon.
func NewState() State {
	return State{Pitch: math32.Pi / 2}
}

// Reset puts the player back at the origin, at rest, looking along +Y at the horizon.
func (s *State) Reset() {
	*s = NewState()
}

// IsGrounded returns true if the player is touching the floor and not moving away from it.
func (s State) IsGrounded() bool {
	return s.Pos.Z() < game.JumpGroundDist && s.Vel.Z() < game.GroundVelocityTolerance
}

// HzSpeed returns the horizontal speed of the player.
func (s State) HzSpeed() float32 {
	return game.HzLen(s.Vel)
}

// AddRotation turns the view, wrapping yaw and clamping pitch.
func (s *State) AddRotation(yaw, pitch float32) {
	s.Yaw = game.NormalizeAngle(s.Yaw + yaw)
	s.Pitch = game.ClampFloat(s.Pitch+pitch, 0, math32.Pi)
}

// RotationMatrix returns the view rotation with the additional yaw and pitch applied. Its columns are
// the view's right, up and backward axes in world space.
func (s State) RotationMatrix(addYaw, addPitch float32) mgl32.Mat3 {
	yaw := game.NormalizeAngle(s.Yaw + addYaw)
	pitch := game.ClampFloat(s.Pitch+addPitch, 0, math32.Pi)
	return rotationMatrix2DOF(yaw, pitch)
}

func rotationMatrix2DOF(yaw, pitch float32) mgl32.Mat3 {
	s0, c0 := math32.Sin(yaw), math32.Cos(yaw)
	s1, c1 := math32.Sin(pitch), math32.Cos(pitch)
	return mgl32.Mat3{
		c0, s0, 0,
		-s0 * c1, c0 * c1, s1,
		s0 * s1, -c0 * s1, c1,
	}
}

// ViewMatrix returns the world-to-camera transform, extrapolating the position by dt seconds of the
// current velocity.
func (s State) ViewMatrix(dt, addYaw, addPitch float32) mgl32.Mat4 {
	viewRot := s.RotationMatrix(addYaw, addPitch).Transpose()
	eye := s.Pos.Add(s.Vel.Mul(dt)).Add(mgl32.Vec3{0, 0, game.PlayerEyeLevel})
	offset := viewRot.Mul3x1(eye.Mul(-1))
	return mgl32.Mat4FromCols(
		viewRot.Col(0).Vec4(0),
		viewRot.Col(1).Vec4(0),
		viewRot.Col(2).Vec4(0),
		offset.Vec4(1),
	)
}

// WishDir returns the horizontal direction the held keys ask to move in, normalised, or a (near) zero
// vector if the keys cancel out.
func (s State) WishDir(keys input.KeyState, addYaw, addPitch float32) mgl32.Vec2 {
	rotation := s.RotationMatrix(addYaw, addPitch)
	right := rotation.Col(0)
	forward := mgl32.Vec3{0, 0, 1}.Cross(right)

	var wish mgl32.Vec3
	if keys.Forward {
		wish = wish.Add(forward)
	}
	if keys.Left {
		wish = wish.Sub(right)
	}
	if keys.Back {
		wish = wish.Sub(forward)
	}
	if keys.Right {
		wish = wish.Add(right)
	}
	if norm := wish.Len(); norm >= game.MinWishLength {
		wish = wish.Mul(1 / norm)
	}
	return wish.Vec2()
}
