package autopilot

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/game"
)

// minWishLengthSqr is the squared wish length under which the keys are not considered to commit to a
// direction.
const minWishLengthSqr = 0.5

// StrafeTurning returns the view turn that puts the wish direction at the angle of maximum acceleration
// from the velocity, plus turnRate*dt so the turn keeps gaining. moveAngle is the angle of the velocity
// and warp is the speed divided by the speed limit. The result is zero if no gain is possible.
func StrafeTurning(dt, moveAngle float32, wishDir mgl32.Vec2, warp, turnRate float32, clockwise bool) float32 {
	if warp <= 1 || wishDir.Dot(wishDir) <= minWishLengthSqr {
		return 0
	}
	turn := OptimalAngle(warp) + turnRate*dt
	if clockwise {
		turn = -turn
	}
	return game.NormalizeSigned(moveAngle + turn - game.VecAngle(wishDir))
}

// OptimalAngle returns the angle between velocity and wish direction with the largest speed gain for the
// warp factor. It is zero at a warp of 1 and approaches 90° as the warp grows.
func OptimalAngle(warp float32) float32 {
	if warp <= 1 {
		return 0
	}
	return math32.Acos(1 / warp)
}

// maxTurn returns the largest turn allowed in dt seconds.
func maxTurn(dt float32) float32 {
	return MaxTurnRate * dt
}
