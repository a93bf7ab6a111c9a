package game

const (
	// PlayerEyeLevel is the height of the camera above the player's origin.
	PlayerEyeLevel = float32(64.0)
	// PlayerRadius is the horizontal collision radius used by environments.
	PlayerRadius = float32(16.0)

	// JumpGroundDist is the height under which a player may still be grounded.
	JumpGroundDist = float32(0.25)
	// GroundVelocityTolerance is the largest vertical velocity a grounded player may have. It is slightly
	// positive so a tick that has just applied gravity to a resting player is still grounded.
	GroundVelocityTolerance = float32(0.001)

	// StoppedSpeed is the horizontal speed under which friction is skipped.
	StoppedSpeed = float32(0.0001)
	// MinWishLength is the length under which a summed wish vector is treated as no input.
	MinWishLength = float32(0.0001)

	UnitsPerMile = float32(12.0 * 5280.0)
	UnitsPerKm   = float32(39370.1)
	MPHPerUPS    = 3600.0 / UnitsPerMile
	KPHPerUPS    = 3600.0 / UnitsPerKm
)
