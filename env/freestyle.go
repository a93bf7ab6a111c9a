package env

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/movement"
)

const (
	FreestyleSize = float32(8192)
	// FreestyleDensity is the number of obstacles along each side per unit of length.
	FreestyleDensity = float32(0.0015)
	// ObstacleWidth is the base width of an obstacle before scaling.
	ObstacleWidth = float32(128)
)

// Freestyle is an open square field scattered with obstacles. Every edge wraps around to the opposite one.
type Freestyle struct {
	bounds    cube.BBox
	obstacles []Box2D
}

// NewFreestyle returns a field with obstacles placed randomly from the seed. The same seed gives the same
// field, and no obstacle is placed over the origin.
func NewFreestyle(seed uint64) *Freestyle {
	size, density := FreestyleSize, FreestyleDensity
	n := int(size * size * density * density)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	uniform := func(lo, hi float32) float32 {
		return lo + rng.Float32()*(hi-lo)
	}

	type placement struct {
		offset mgl32.Vec2
		scale  float32
	}
	placed := make([]placement, 0, n)
	for len(placed) < n {
		p := placement{
			offset: mgl32.Vec2{uniform(-0.5, 0.5) * FreestyleSize, uniform(-0.5, 0.5) * FreestyleSize},
			scale:  ObstacleWidth * uniform(1.5, 3),
		}
		if p.offset.Len() < math32.Sqrt2*p.scale+game.PlayerRadius {
			continue
		}
		collides := false
		for _, other := range placed {
			if p.offset.Sub(other.offset).Len() <= (p.scale+other.scale)/2 {
				collides = true
				break
			}
		}
		if !collides {
			placed = append(placed, p)
		}
	}

	obstacles := make([]Box2D, 0, n)
	for _, p := range placed {
		transform := mgl32.Translate2D(p.offset.X(), p.offset.Y()).
			Mul3(mgl32.HomogRotate2D(uniform(0, game.FullTurn))).
			Mul3(mgl32.Scale2D(p.scale, p.scale))
		obstacles = append(obstacles, NewBox2D(1, 2*p.scale, transform))
	}
	return NewFreestyleWithObstacles(obstacles)
}

// NewFreestyleWithObstacles returns a field holding the given obstacles.
func NewFreestyleWithObstacles(obstacles []Box2D) *Freestyle {
	h := FreestyleSize / 2
	return &Freestyle{
		bounds:    cube.Box(-h, -h, 0, h, h, 0),
		obstacles: obstacles,
	}
}

func (*Freestyle) Name() string { return NameFreestyle }

// Obstacles returns the obstacles of the field.
func (f *Freestyle) Obstacles() []Box2D {
	return f.obstacles
}

func (f *Freestyle) Interact(state *movement.State) {
	for _, obstacle := range f.obstacles {
		if !obstacle.Bounds().IntersectsWith(game.PlayerBox(state.Pos)) {
			continue
		}
		offset, ok := obstacle.CollideCircle(state.Pos.Vec2(), game.PlayerRadius)
		if !ok || offset.LenSqr() <= 1e-6 {
			continue
		}
		dir := offset.Normalize().Vec3(0)
		state.Vel = state.Vel.Sub(dir.Mul(min(dir.Dot(state.Vel), 0)))
		state.Pos = state.Pos.Add(offset.Vec3(0))
	}

	size := f.bounds.Max().X() - f.bounds.Min().X()
	for axis := range 2 {
		if state.Pos[axis] < f.bounds.Min()[axis] {
			state.Pos[axis] += size
		}
		if state.Pos[axis] > f.bounds.Max()[axis] {
			state.Pos[axis] -= size
		}
	}
}
