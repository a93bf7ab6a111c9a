package env

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/movement"
)

const (
	RunwayLength = float32(16384)
	RunwayWidth  = float32(2048)
	// RunwayWallHeight is the height of the side walls.
	RunwayWallHeight = float32(128)
)

// Runway is a long straight strip between two walls. The ends wrap around, so it is endless.
type Runway struct {
	bounds cube.BBox
}

// NewRunway returns a runway centred on the origin, running along the Y axis.
func NewRunway() *Runway {
	return &Runway{bounds: cube.Box(
		-RunwayWidth/2, -RunwayLength/2, 0,
		RunwayWidth/2, RunwayLength/2, RunwayWallHeight,
	)}
}

func (*Runway) Name() string { return NameRunway }

// Bounds returns the space between the walls.
func (r *Runway) Bounds() cube.BBox {
	return r.bounds
}

func (r *Runway) Interact(state *movement.State) {
	minX, maxX := r.bounds.Min().X(), r.bounds.Max().X()
	if state.Pos.X()-game.PlayerRadius < minX {
		state.Pos[0] = minX + game.PlayerRadius
		state.Vel[0] = max(state.Vel.X(), 0)
	}
	if state.Pos.X()+game.PlayerRadius > maxX {
		state.Pos[0] = maxX - game.PlayerRadius
		state.Vel[0] = min(state.Vel.X(), 0)
	}

	minY, maxY := r.bounds.Min().Y(), r.bounds.Max().Y()
	length := maxY - minY
	if state.Pos.Y() < minY {
		state.Pos[1] += length
	}
	if state.Pos.Y() > maxY {
		state.Pos[1] -= length
	}
}
